package usecase

import (
	"errors"
	"fmt"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 在庫不足。どの本が・いくつ残っていて・いくつ要求されたかを持ち帰る。
// 本がもう存在しない場合も Available=0 の在庫不足として扱う（確定パスの統一ルール）。
type InsufficientStockError struct {
	BookID    int64  `json:"book_id"`
	Title     string `json:"title"`
	Available int64  `json:"available"`
	Requested int64  `json:"requested"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: book=%d available=%d requested=%d",
		e.BookID, e.Available, e.Requested)
}

func NewInsufficientStockError(bookID int64, title string, available, requested int64) error {
	return &InsufficientStockError{
		BookID:    bookID,
		Title:     title,
		Available: available,
		Requested: requested,
	}
}

func AsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var se *InsufficientStockError
	ok := errors.As(err, &se)
	return se, ok
}
