package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
)

type BookUsecase struct {
	bookRepo      repo.BookRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
}

// DI
func NewBookUsecase(
	bookRepo repo.BookRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
) *BookUsecase {
	return &BookUsecase{
		bookRepo:      bookRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

// GET /books の入力DTO
type ListBooksInput struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Sort     string
}

type BookListOutput struct {
	Items      []model.Book `json:"items"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	Categories []string     `json:"categories"`
}

func (u *BookUsecase) ListPublicBooks(ctx context.Context, in ListBooksInput) (BookListOutput, error) {
	if in.Page < 1 {
		return BookListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return BookListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return BookListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	switch in.Sort {
	case "", "title", "price_asc", "price_desc", "rating":
	default:
		return BookListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.bookRepo.ListPublic(ctx, repo.BookListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        strings.TrimSpace(in.Q),
		Category: strings.TrimSpace(in.Category),
		Sort:     in.Sort,
	})
	if err != nil {
		return BookListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	categories, err := u.bookRepo.ListCategories(ctx)
	if err != nil {
		return BookListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return BookListOutput{
		Items:      items,
		Total:      total,
		Page:       in.Page,
		Limit:      in.Limit,
		Categories: categories,
	}, nil
}

func (u *BookUsecase) GetBookDetail(ctx context.Context, bookID int64) (model.Book, error) {
	if bookID <= 0 {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	b, err := u.bookRepo.FindByID(ctx, bookID)
	if err == repo.ErrNotFound {
		return model.Book{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

type AdminBookInput struct {
	Title           string
	Author          string
	ISBN            string
	Price           int64
	StockQuantity   int64
	Category        string
	Description     string
	Publisher       string
	PublicationYear int
	Pages           int
	Language        string
	Rating          float64
}

func (u *BookUsecase) AdminCreateBook(ctx context.Context, adminUserID int64, in AdminBookInput) (int64, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateBookInput(in); err != nil {
		return 0, err
	}

	now := time.Now()
	b, err := u.bookRepo.Create(ctx, model.Book{
		Title:           strings.TrimSpace(in.Title),
		Author:          strings.TrimSpace(in.Author),
		ISBN:            strings.TrimSpace(in.ISBN),
		Price:           in.Price,
		StockQuantity:   in.StockQuantity,
		Category:        strings.TrimSpace(in.Category),
		Description:     in.Description,
		Publisher:       in.Publisher,
		PublicationYear: in.PublicationYear,
		Pages:           in.Pages,
		Language:        defaultLanguage(in.Language),
		Rating:          in.Rating,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b.ID, nil
}

func (u *BookUsecase) AdminUpdateBook(ctx context.Context, adminUserID int64, bookID int64, in AdminBookInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if bookID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid book id")
	}
	if err := validateBookInput(in); err != nil {
		return err
	}

	err := u.bookRepo.Update(ctx, model.Book{
		ID:              bookID,
		Title:           strings.TrimSpace(in.Title),
		Author:          strings.TrimSpace(in.Author),
		ISBN:            strings.TrimSpace(in.ISBN),
		Price:           in.Price,
		StockQuantity:   in.StockQuantity,
		Category:        strings.TrimSpace(in.Category),
		Description:     in.Description,
		Publisher:       in.Publisher,
		PublicationYear: in.PublicationYear,
		Pages:           in.Pages,
		Language:        defaultLanguage(in.Language),
		Rating:          in.Rating,
		UpdatedAt:       time.Now(),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *BookUsecase) AdminDeleteBook(ctx context.Context, adminUserID int64, bookID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if bookID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	err := u.bookRepo.SoftDelete(ctx, bookID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// AdminSetStock は在庫の現在値を設定し、差分履歴と監査ログを残す。
func (u *BookUsecase) AdminSetStock(ctx context.Context, adminUserID int64, bookID int64, newStock int64, reason string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if bookID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid book id")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "reason required")
	}

	//変更前の在庫（before）
	b, err := u.bookRepo.FindByID(ctx, bookID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	beforeJSON := fmt.Sprintf(`{"stock_quantity":%d}`, b.StockQuantity)
	afterJSON := fmt.Sprintf(`{"stock_quantity":%d}`, newStock)

	if err := u.inventoryRepo.SetStock(ctx, bookID, newStock); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//履歴を作成（差分）
	adj := model.InventoryAdjustment{
		BookID:      bookID,
		AdminUserID: adminUserID,
		Delta:       newStock - b.StockQuantity,
		Reason:      strings.TrimSpace(reason),
		CreatedAt:   time.Now(),
	}
	if err := u.inventoryRepo.CreateAdjustment(ctx, adj); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ（UPDATE_STOCK）
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourceBook,
		ResourceID:   bookID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func validateBookInput(in AdminBookInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title required")
	}
	if strings.TrimSpace(in.Author) == "" {
		return NewHTTPError(http.StatusBadRequest, "author required")
	}
	if strings.TrimSpace(in.ISBN) == "" {
		return NewHTTPError(http.StatusBadRequest, "isbn required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.StockQuantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if strings.TrimSpace(in.Category) == "" {
		return NewHTTPError(http.StatusBadRequest, "category required")
	}
	return nil
}

func defaultLanguage(lang string) string {
	if strings.TrimSpace(lang) == "" {
		return "English"
	}
	return lang
}
