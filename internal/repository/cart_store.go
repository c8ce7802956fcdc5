package repository

import (
	"bookstore/internal/domain/model"
	"context"
)

// セッション相当のカート置き場。ユーザーIDをキーにする。
// カートは永続エンティティではないので、実装は揮発で構わない。
type CartStore interface {
	//カートを取得。無ければ空のカートを返す（初回アクセスで空として生まれる）。
	Get(ctx context.Context, userID int64) (model.Cart, error)

	//カートを丸ごと保存
	Put(ctx context.Context, userID int64, cart model.Cart) error

	//カートを破棄。注文確定成功後に呼ぶ。
	Delete(ctx context.Context, userID int64) error
}
