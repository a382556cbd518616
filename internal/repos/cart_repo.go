package repos

import (
	"sync"

	"printforge/internal/domain"
)

// CartRepo keeps per-user cart lines in memory. Carts are ephemeral by
// design: a restart drops them, which is acceptable for an in-progress
// selection. Repeated adds of the same product create separate lines;
// display order is add order.
type CartRepo struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartItem
}

func NewCartRepo() *CartRepo {
	return &CartRepo{carts: map[string][]domain.CartItem{}}
}

// Items returns a copy of the user's lines; an unknown user has an empty cart.
func (r *CartRepo) Items(user string) []domain.CartItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines := r.carts[user]
	out := make([]domain.CartItem, len(lines))
	copy(out, lines)
	return out
}

// Add appends a snapshot line. Quantity is validated upstream by the
// dialog; callers must never pass qty < 1.
func (r *CartRepo) Add(user string, p domain.Product, qty int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[user] = append(r.carts[user], domain.CartItem{
		Name:  p.Name,
		Qty:   qty,
		Price: p.Price,
		Model: p.Model,
	})
}

// Clear empties the cart. Idempotent.
func (r *CartRepo) Clear(user string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, user)
}

func (r *CartRepo) Total(user string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, it := range r.carts[user] {
		total += it.LineTotal()
	}
	return total
}

func (r *CartRepo) Len(user string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts[user])
}
