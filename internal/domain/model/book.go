package model

import (
	"time"

	"gorm.io/gorm"
)

// カタログの1冊分。
// 価格は最小通貨単位のint64で持つ（floatは使わない）。
type Book struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title  string `gorm:"type:varchar(200);not null;index" json:"title"`
	Author string `gorm:"type:varchar(100);not null;index" json:"author"`
	ISBN   string `gorm:"type:varchar(13);not null;uniqueIndex" json:"isbn"`

	//価格（最小通貨単位）
	Price int64 `gorm:"not null" json:"price"`

	//在庫数。0未満にはならない。
	//減算は注文確定時の条件付きUPDATEだけが行う。
	StockQuantity int64 `gorm:"not null;default:0" json:"stock_quantity"`

	Category        string  `gorm:"type:varchar(50);not null;index" json:"category"`
	Description     string  `gorm:"type:text" json:"description"`
	Publisher       string  `gorm:"type:varchar(100)" json:"publisher"`
	PublicationYear int     `json:"publication_year"`
	Pages           int     `json:"pages"`
	Language        string  `gorm:"type:varchar(20);default:'English'" json:"language"`
	CoverImage      string  `gorm:"type:varchar(200);default:'default_cover.jpg'" json:"cover_image"`
	Rating          float64 `gorm:"default:0" json:"rating"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// 在庫があるか
func (b Book) IsInStock() bool {
	return b.StockQuantity > 0
}
