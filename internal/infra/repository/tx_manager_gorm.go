package repository

import (
	"context"
	"errors"

	repo "bookstore/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type txReposGorm struct {
	books      repo.BookRepository
	inventory  repo.InventoryRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	auditLogs  repo.AuditLogRepository
}

func (r *txReposGorm) Books() repo.BookRepository           { return r.books }
func (r *txReposGorm) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// 直列化失敗・デッドロックだけ再試行する回数
const txMaxAttempts = 3

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	var err error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		err = tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			//repoはtxを持ったDBで作り直す
			r := &txReposGorm{
				books:      NewBookGormRepository(tx),
				inventory:  NewInventoryGormRepository(tx),
				orders:     NewOrderGormRepository(tx),
				orderItems: NewOrderItemGormRepository(tx),
				auditLogs:  NewAuditLogGormRepository(tx),
			}
			return fn(r)
		})

		//業務エラー（在庫不足など）は再試行しない
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return err
}

// serialization_failure (40001) / deadlock_detected (40P01) のみ対象
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
