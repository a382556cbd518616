package repos

import (
	"errors"
	"sync"

	"printforge/internal/domain"
)

var ErrOutOfRange = errors.New("position out of range")

// OrderQueue is the operator's FIFO of committed-but-unfulfilled orders.
// Positions are 1-based, matching what operators see in the listing.
// The queue is deliberately not persisted: after a restart the order
// sheet is the source of record and the queue starts empty.
type OrderQueue struct {
	mu     sync.Mutex
	orders []domain.Order
}

func NewOrderQueue() *OrderQueue { return &OrderQueue{} }

func (q *OrderQueue) Enqueue(o domain.Order) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.orders = append(q.orders, o)
}

// List returns a copy in arrival order.
func (q *OrderQueue) List() []domain.Order {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.Order, len(q.orders))
	copy(out, q.orders)
	return out
}

// Complete removes and returns the order at a 1-based position. The queue
// is untouched when the position is out of range.
func (q *OrderQueue) Complete(pos int) (domain.Order, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if pos < 1 || pos > len(q.orders) {
		return domain.Order{}, ErrOutOfRange
	}
	o := q.orders[pos-1]
	q.orders = append(q.orders[:pos-1], q.orders[pos:]...)
	return o, nil
}

// Clear drops every entry. Destructive; meant for an operator who has
// reconciled against the order sheet.
func (q *OrderQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.orders = nil
}

func (q *OrderQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.orders)
}
