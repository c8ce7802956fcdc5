package repository

import (
	"bookstore/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 公開カタログの一覧検索
type BookListQuery struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Sort     string
}

// 書籍の永続化（保存・取得）だけを約束。
type BookRepository interface {
	//公開中（在庫あり・未削除）の一覧と総件数を返す
	ListPublic(ctx context.Context, q BookListQuery) ([]model.Book, int64, error)

	//IDから1冊取得。削除済みはErrNotFound。
	FindByID(ctx context.Context, bookID int64) (model.Book, error)

	//カテゴリ一覧（公開中のみ）
	ListCategories(ctx context.Context) ([]string, error)

	Create(ctx context.Context, b model.Book) (model.Book, error)
	Update(ctx context.Context, b model.Book) error
	SoftDelete(ctx context.Context, bookID int64) error
}
