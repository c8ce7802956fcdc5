package session

import (
	"context"
	"sync"
	"time"

	"bookstore/internal/domain/model"
)

type cartEntry struct {
	cart      model.Cart
	expiresAt time.Time
}

// MemoryCartStore はユーザーIDをキーにカートをメモリに置く。
// TTLを過ぎたカートは掃除用goroutineが回収する（セッション切れ相当）。
type MemoryCartStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[int64]cartEntry

	stop     chan struct{}
	stopOnce sync.Once
}

func NewMemoryCartStore(ttl time.Duration) *MemoryCartStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	s := &MemoryCartStore{
		ttl:     ttl,
		entries: map[int64]cartEntry{},
		stop:    make(chan struct{}),
	}

	go s.janitor()
	return s
}

// 無ければ（または期限切れなら）空のカートを返す。
// 返すのはコピーなので呼び出し側が書き換えてもストアは汚れない。
func (s *MemoryCartStore) Get(ctx context.Context, userID int64) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		return model.NewCart(), nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, userID)
		return model.NewCart(), nil
	}

	return e.cart.Copy(), nil
}

// 保存のたびにTTLを延長する（触っている間はセッションが生きる）。
func (s *MemoryCartStore) Put(ctx context.Context, userID int64, cart model.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = cartEntry{
		cart:      cart.Copy(),
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryCartStore) Delete(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userID)
	return nil
}

func (s *MemoryCartStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryCartStore) janitor() {
	t := time.NewTicker(time.Minute)
	defer t.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-t.C:
			s.evictExpired(now)
		}
	}
}

func (s *MemoryCartStore) evictExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}
