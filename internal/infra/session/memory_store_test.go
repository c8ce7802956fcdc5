package session

import (
	"context"
	"testing"
	"time"

	"bookstore/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCartStore_Get_EmptyOnFirstAccess(t *testing.T) {
	s := NewMemoryCartStore(time.Minute)
	defer s.Close()

	cart, err := s.Get(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestMemoryCartStore_PutAndGet_Roundtrip(t *testing.T) {
	ctx := context.Background()

	s := NewMemoryCartStore(time.Minute)
	defer s.Close()

	cart := model.NewCart()
	cart.Add(1, 2)
	cart.Add(3, 1)

	assert.NoError(t, s.Put(ctx, 7, cart))

	got, err := s.Get(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), got.Items[1])
	assert.Equal(t, int64(1), got.Items[3])
}

// 返ってくるのはコピー。呼び出し側で書き換えてもストアは汚れない。
func TestMemoryCartStore_Get_ReturnsIsolatedCopy(t *testing.T) {
	ctx := context.Background()

	s := NewMemoryCartStore(time.Minute)
	defer s.Close()

	cart := model.NewCart()
	cart.Add(1, 2)
	assert.NoError(t, s.Put(ctx, 7, cart))

	got, _ := s.Get(ctx, 7)
	got.Add(1, 100)

	again, _ := s.Get(ctx, 7)
	assert.Equal(t, int64(2), again.Items[1])
}

func TestMemoryCartStore_Delete(t *testing.T) {
	ctx := context.Background()

	s := NewMemoryCartStore(time.Minute)
	defer s.Close()

	cart := model.NewCart()
	cart.Add(1, 1)
	assert.NoError(t, s.Put(ctx, 7, cart))
	assert.NoError(t, s.Delete(ctx, 7))

	got, err := s.Get(ctx, 7)
	assert.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

// TTL切れのカートは読み出し時に空として扱われる
func TestMemoryCartStore_Get_ExpiredIsEmpty(t *testing.T) {
	ctx := context.Background()

	s := NewMemoryCartStore(10 * time.Millisecond)
	defer s.Close()

	cart := model.NewCart()
	cart.Add(1, 1)
	assert.NoError(t, s.Put(ctx, 7, cart))

	time.Sleep(30 * time.Millisecond)

	got, err := s.Get(ctx, 7)
	assert.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestMemoryCartStore_EvictExpired(t *testing.T) {
	ctx := context.Background()

	s := NewMemoryCartStore(time.Minute)
	defer s.Close()

	cart := model.NewCart()
	cart.Add(1, 1)
	assert.NoError(t, s.Put(ctx, 7, cart))

	//TTLを大きく過ぎた時刻で掃除を起動
	s.evictExpired(time.Now().Add(2 * time.Minute))

	s.mu.Lock()
	_, ok := s.entries[7]
	s.mu.Unlock()
	assert.False(t, ok)
}
