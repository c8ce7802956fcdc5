package usecase_test

import (
	"context"
	"testing"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
	"bookstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCartUsecase_GetCart_EmptyWhenNoCart(t *testing.T) {
	ctx := context.Background()

	carts := new(CartStoreMock)
	books := new(BookRepoMock)

	carts.On("Get", mock.Anything, int64(1)).Return(model.NewCart(), nil)

	uc := usecase.NewCartUsecase(carts, books)

	out, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out.Items))
	assert.Equal(t, int64(0), out.Total)
}

func TestCartUsecase_AddToCart_InvalidQuantity(t *testing.T) {
	carts := new(CartStoreMock)
	books := new(BookRepoMock)
	uc := usecase.NewCartUsecase(carts, books)

	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{BookID: 1, Quantity: 0})
	assertErrContains(t, err, "invalid quantity")
}

// 実在しない本は追加できない
func TestCartUsecase_AddToCart_UnknownBook(t *testing.T) {
	ctx := context.Background()

	carts := new(CartStoreMock)
	books := new(BookRepoMock)

	books.On("FindByID", mock.Anything, int64(42)).Return(model.Book{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(carts, books)

	_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{BookID: 42, Quantity: 1})
	assertErrContains(t, err, "invalid book")

	carts.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

// 在庫数はカート追加では見ない。在庫1でも10個入れられる（正すのは確定時）。
func TestCartUsecase_AddToCart_NoStockCheck(t *testing.T) {
	ctx := context.Background()

	carts := new(CartStoreMock)
	books := new(BookRepoMock)

	books.On("FindByID", mock.Anything, int64(1)).Return(model.Book{
		ID:            1,
		Title:         "The Great Gatsby",
		Author:        "F. Scott Fitzgerald",
		Price:         65000,
		StockQuantity: 1,
	}, nil)

	carts.On("Get", mock.Anything, int64(1)).Return(model.NewCart(), nil)
	carts.On("Put", mock.Anything, int64(1), mock.MatchedBy(func(c model.Cart) bool {
		return c.Items[1] == 10
	})).Return(nil)

	uc := usecase.NewCartUsecase(carts, books)

	out, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{BookID: 1, Quantity: 10})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(10), out.Items[0].Quantity)
	assert.Equal(t, int64(650000), out.Total)

	carts.AssertExpectations(t)
}

// 同じ本を2回入れると数量が加算される
func TestCartUsecase_AddToCart_SameBookAccumulates(t *testing.T) {
	ctx := context.Background()

	carts := new(CartStoreMock)
	books := new(BookRepoMock)

	books.On("FindByID", mock.Anything, int64(1)).Return(model.Book{
		ID: 1, Title: "The Great Gatsby", Price: 65000, StockQuantity: 25,
	}, nil)

	existing := model.NewCart()
	existing.Add(1, 2)
	carts.On("Get", mock.Anything, int64(1)).Return(existing, nil)
	carts.On("Put", mock.Anything, int64(1), mock.MatchedBy(func(c model.Cart) bool {
		return c.Items[1] == 5
	})).Return(nil)

	uc := usecase.NewCartUsecase(carts, books)

	out, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{BookID: 1, Quantity: 3})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.Items[0].Quantity)
}

// 数量0以下の上書きは行削除
func TestCartUsecase_UpdateCartItem_ZeroRemovesLine(t *testing.T) {
	ctx := context.Background()

	carts := new(CartStoreMock)
	books := new(BookRepoMock)

	existing := model.NewCart()
	existing.Add(1, 2)
	carts.On("Get", mock.Anything, int64(1)).Return(existing, nil)
	carts.On("Put", mock.Anything, int64(1), mock.MatchedBy(func(c model.Cart) bool {
		return c.IsEmpty()
	})).Return(nil)

	uc := usecase.NewCartUsecase(carts, books)

	out, err := uc.UpdateCartItem(ctx, 1, 1, usecase.UpdateCartItemInput{Quantity: 0})
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out.Items))
}

// 消えた本の行は表示では黙って落とす
func TestCartUsecase_GetCart_DropsVanishedBooks(t *testing.T) {
	ctx := context.Background()

	carts := new(CartStoreMock)
	books := new(BookRepoMock)

	cart := model.NewCart()
	cart.Add(1, 1)
	cart.Add(2, 1)
	carts.On("Get", mock.Anything, int64(1)).Return(cart, nil)

	books.On("FindByID", mock.Anything, int64(1)).Return(model.Book{
		ID: 1, Title: "The Great Gatsby", Price: 65000,
	}, nil)
	books.On("FindByID", mock.Anything, int64(2)).Return(model.Book{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(carts, books)

	out, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(1), out.Items[0].BookID)
	assert.Equal(t, int64(65000), out.Total)
}

func TestCartUsecase_RemoveCartItem_MissingLineIsNoError(t *testing.T) {
	ctx := context.Background()

	carts := new(CartStoreMock)
	books := new(BookRepoMock)

	carts.On("Get", mock.Anything, int64(1)).Return(model.NewCart(), nil)
	carts.On("Put", mock.Anything, int64(1), mock.Anything).Return(nil)

	uc := usecase.NewCartUsecase(carts, books)

	out, err := uc.RemoveCartItem(ctx, 1, 99)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out.Items))
}
