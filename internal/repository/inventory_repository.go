package repository

import (
	"bookstore/internal/domain/model"
	"context"
)

type InventoryRepository interface {
	// 在庫の現在値を設定（管理者の棚卸し）
	SetStock(ctx context.Context, bookID int64, newStock int64) error

	// 在庫が足りるときだけ減算する。足りなければfalse。
	// 判定と減算は1回の条件付きUPDATEで行われ、並行する呼び出しに対して原子的。
	DecrementStock(ctx context.Context, bookID int64, qty int64) (bool, error)

	// 調整履歴の作成
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
