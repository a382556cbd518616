package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"printforge/internal/domain"
	"printforge/internal/repos"
)

var ErrEmptyCart = errors.New("cart is empty")

// Sheet is the durable order sink. *repos.OrderSheet implements it; tests
// substitute a failing writer.
type Sheet interface {
	Append(domain.Order) error
}

type OrderService struct {
	Carts *repos.CartRepo
	Sheet Sheet
	Queue *repos.OrderQueue
}

func NewOrderService(carts *repos.CartRepo, sheet Sheet, queue *repos.OrderQueue) *OrderService {
	return &OrderService{Carts: carts, Sheet: sheet, Queue: queue}
}

// Place commits a checkout: mints the Order from the cart snapshot, appends
// it to the sheet, then enqueues it for the operator. The two writes are a
// pair — when the sheet append fails nothing is enqueued and the cart is
// left intact so the user can retry. The sheet append runs without holding
// the queue lock.
func (s *OrderService) Place(user, fullName, phone string) (domain.Order, error) {
	items := s.Carts.Items(user)
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	order := domain.Order{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		FullName:  fullName,
		Phone:     phone,
		Items:     items,
	}

	if err := s.Sheet.Append(order); err != nil {
		return domain.Order{}, err
	}
	s.Queue.Enqueue(order)
	s.Carts.Clear(user)
	return order, nil
}
