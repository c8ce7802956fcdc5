package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// 固定enumに入っているか。
// 遷移表は持たない＝管理者はどの状態からどの状態へも上書きできる。
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID     int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64       `gorm:"not null;index" json:"user_id"`
	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//確定時の合計。OrderItemの小計の総和と必ず一致する。
	TotalAmount int64 `gorm:"not null" json:"total_amount"`

	//配送先
	ShippingAddress    string `gorm:"type:text;not null" json:"shipping_address"`
	ShippingCity       string `gorm:"type:varchar(100)" json:"shipping_city"`
	ShippingPostalCode string `gorm:"type:varchar(20)" json:"shipping_postal_code"`
	ShippingPhone      string `gorm:"type:varchar(20)" json:"shipping_phone"`

	//支払い方法はラベルのみ（決済連携はしない）
	PaymentMethod string `gorm:"type:varchar(50);not null" json:"payment_method"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
