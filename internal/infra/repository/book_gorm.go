package repository

import (
	"context"
	"errors"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"gorm.io/gorm"
)

type BookGormRepository struct {
	db *gorm.DB
}

// DI
func NewBookGormRepository(db *gorm.DB) *BookGormRepository {
	return &BookGormRepository{db: db}
}

// 公開一覧。在庫切れは載せない（元サイトと同じ方針）。
func (r *BookGormRepository) ListPublic(ctx context.Context, q repo.BookListQuery) ([]model.Book, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 12
	}

	base := r.db.WithContext(ctx).Model(&model.Book{}).Where("stock_quantity > 0")

	//タイトル・著者・ISBNの部分一致
	if q.Q != "" {
		like := "%" + q.Q + "%"
		base = base.Where("title ILIKE ? OR author ILIKE ? OR isbn ILIKE ?", like, like, like)
	}

	//カテゴリ絞り込み
	if q.Category != "" {
		base = base.Where("category = ?", q.Category)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return []model.Book{}, 0, err
	}

	switch q.Sort {
	case "price_asc":
		base = base.Order("price asc")
	case "price_desc":
		base = base.Order("price desc")
	case "rating":
		base = base.Order("rating desc")
	default:
		base = base.Order("title asc")
	}

	var items []model.Book
	offset := (q.Page - 1) * q.Limit
	if err := base.Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Book{}, 0, err
	}

	return items, total, nil
}

func (r *BookGormRepository) FindByID(ctx context.Context, bookID int64) (model.Book, error) {
	var b model.Book
	err := r.db.WithContext(ctx).Where("id = ?", bookID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Book{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Book{}, err
	}
	return b, nil
}

func (r *BookGormRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Book{}).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	if err != nil {
		return []string{}, err
	}
	return categories, nil
}

func (r *BookGormRepository) Create(ctx context.Context, b model.Book) (model.Book, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return model.Book{}, err
	}
	return b, nil
}

func (r *BookGormRepository) Update(ctx context.Context, b model.Book) error {
	res := r.db.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"title":            b.Title,
			"author":           b.Author,
			"isbn":             b.ISBN,
			"price":            b.Price,
			"stock_quantity":   b.StockQuantity,
			"category":         b.Category,
			"description":      b.Description,
			"publisher":        b.Publisher,
			"publication_year": b.PublicationYear,
			"pages":            b.Pages,
			"language":         b.Language,
			//cover_imageは管理フォームの対象外なので触らない
			"rating":     b.Rating,
			"updated_at": b.UpdatedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 論理削除。過去の注文明細からの参照は残る。
func (r *BookGormRepository) SoftDelete(ctx context.Context, bookID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Book{}, bookID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
