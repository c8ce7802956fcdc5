package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
)

// OrderUsecase はカート→注文の確定を担当する（ここが本体）。
type OrderUsecase struct {
	tx    repo.TransactionManager
	carts repo.CartStore
}

func NewOrderUsecase(tx repo.TransactionManager, carts repo.CartStore) *OrderUsecase {
	return &OrderUsecase{tx: tx, carts: carts}
}

type PlaceOrderInput struct {
	ShippingAddress    string
	ShippingCity       string
	ShippingPostalCode string
	ShippingPhone      string
	PaymentMethod      string
}

type OrderItemOutput struct {
	BookID   int64 `json:"book_id"`
	Quantity int64 `json:"quantity"`
	Price    int64 `json:"price"`
	Subtotal int64 `json:"subtotal"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"user_id"`
	Status        string            `json:"status"`
	TotalAmount   int64             `json:"total_amount"`
	PaymentMethod string            `json:"payment_method"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// PlaceOrder はカートを注文に変換する。
// 在庫判定・減算・注文作成は1トランザクション内で全部成立か全部不成立。
// 成功したときだけカートを空にする。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "shipping_address required")
	}

	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		payment = "Cash on Delivery"
	}

	//空カートはトランザクションに入る前に弾く
	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}
	if cart.IsEmpty() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//Lines()はbook_id昇順。重なり合う同時確定が行ロックを同じ順で取るように。
		lines := cart.Lines()

		orderItems := make([]model.OrderItem, 0, len(lines))
		var total int64 = 0
		now := time.Now()

		for _, ln := range lines {
			b, err := r.Books().FindByID(ctx, ln.BookID)
			if err == repo.ErrNotFound {
				//表示パスと違い、確定パスでは消えた本は在庫ゼロ扱いで失敗
				return NewInsufficientStockError(ln.BookID, "", 0, ln.Quantity)
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//判定と減算を1回の条件付きUPDATEで行う。足りなければfalse。
			ok, err := r.Inventory().DecrementStock(ctx, ln.BookID, ln.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				//残数を読み直して報告に載せる（ロールバックされるので読むだけ）
				available := int64(0)
				if cur, err2 := r.Books().FindByID(ctx, ln.BookID); err2 == nil {
					available = cur.StockQuantity
				}
				return NewInsufficientStockError(b.ID, b.Title, available, ln.Quantity)
			}

			//単価はこの瞬間の価格で凍結する
			orderItems = append(orderItems, model.OrderItem{
				BookID:    b.ID,
				Quantity:  ln.Quantity,
				Price:     b.Price,
				CreatedAt: now,
			})

			total += b.Price * ln.Quantity
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:             userID,
			Status:             model.OrderStatusPending,
			TotalAmount:        total,
			ShippingAddress:    strings.TrimSpace(in.ShippingAddress),
			ShippingCity:       strings.TrimSpace(in.ShippingCity),
			ShippingPostalCode: strings.TrimSpace(in.ShippingPostalCode),
			ShippingPhone:      strings.TrimSpace(in.ShippingPhone),
			PaymentMethod:      payment,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:            orderID,
			UserID:        userID,
			Status:        model.OrderStatusPending,
			TotalAmount:   total,
			PaymentMethod: payment,
			CreatedAt:     now,
		}
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		//失敗したらカートはそのまま残す
		return OrderOutput{}, err
	}

	//コミットが通ったときだけカートを空にする
	_ = u.carts.Delete(ctx, userID)

	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			BookID:   it.BookID,
			Quantity: it.Quantity,
			Price:    it.Price,
			Subtotal: it.Subtotal(),
		})
	}

	return OrderOutput{
		ID:            o.ID,
		UserID:        o.UserID,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
