package model

import "time"

// 注文の明細。Priceは注文時点の単価スナップショットで、
// あとからカタログの価格が変わっても影響を受けない。
type OrderItem struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  int64 `gorm:"not null;index" json:"order_id"`
	BookID   int64 `gorm:"not null;index" json:"book_id"`
	Quantity int64 `gorm:"not null" json:"quantity"`

	//注文時点の単価（凍結価格）
	Price int64 `gorm:"not null" json:"price"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 小計 = 数量 × 凍結単価
func (i OrderItem) Subtotal() int64 {
	return i.Quantity * i.Price
}
