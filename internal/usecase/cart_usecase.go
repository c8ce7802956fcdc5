package usecase

import (
	"context"
	"net/http"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
// カートはセッション相当のCartStoreに置き、永続化しない。
type CartUsecase struct {
	carts    repo.CartStore
	bookRepo repo.BookRepository
}

func NewCartUsecase(carts repo.CartStore, bookRepo repo.BookRepository) *CartUsecase {
	return &CartUsecase{carts: carts, bookRepo: bookRepo}
}

type CartItemResponse struct {
	BookID   int64  `json:"book_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

// Totalは「今の」価格の合計。確定時には凍結価格で計算し直すので、
// 表示との差はあり得る（それでよい）。
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int64              `json:"total"`
}

type AddCartInput struct {
	BookID   int64
	Quantity int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（無ければ空で返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return u.buildCartResponse(ctx, cart)
}

// AddToCart はカートに追加（同一の本は数量加算）。
// ここでは在庫を見ない。在庫が正になるのは確定時だけ。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.BookID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid book_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//実在しない本はお断り（削除済みもここで弾ける）
	if _, err := u.bookRepo.FindByID(ctx, in.BookID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid book")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	cart.Add(in.BookID, in.Quantity)

	if err := u.carts.Put(ctx, userID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return u.buildCartResponse(ctx, cart)
}

// UpdateCartItem は数量を上書きする。0以下は行削除と同じ。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, bookID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if bookID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid book_id")
	}

	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	cart.Update(bookID, in.Quantity)

	if err := u.carts.Put(ctx, userID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return u.buildCartResponse(ctx, cart)
}

// RemoveCartItem は行を消す。元々無くてもエラーにしない。
func (u *CartUsecase) RemoveCartItem(ctx context.Context, userID int64, bookID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if bookID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid book_id")
	}

	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	cart.Remove(bookID)

	if err := u.carts.Put(ctx, userID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}

	return u.buildCartResponse(ctx, cart)
}

// カートの中身を今のカタログで解決する。
// 本が消えていた行は黙って落とす（表示パスの方針。確定パスは落とさず失敗させる）。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cart model.Cart) (CartResponse, error) {
	lines := cart.Lines()

	respItems := make([]CartItemResponse, 0, len(lines))
	var total int64 = 0

	for _, ln := range lines {
		b, err := u.bookRepo.FindByID(ctx, ln.BookID)
		if err == repo.ErrNotFound {
			continue
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		subtotal := b.Price * ln.Quantity
		respItems = append(respItems, CartItemResponse{
			BookID:   b.ID,
			Title:    b.Title,
			Author:   b.Author,
			Price:    b.Price,
			Quantity: ln.Quantity,
			Subtotal: subtotal,
		})

		total += subtotal
	}

	return CartResponse{Items: respItems, Total: total}, nil
}
