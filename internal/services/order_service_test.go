package services_test

import (
	"errors"
	"path/filepath"
	"testing"

	"printforge/internal/domain"
	"printforge/internal/repos"
	"printforge/internal/services"
)

type failingSheet struct{ err error }

func (s failingSheet) Append(domain.Order) error { return s.err }

func newOrderFixture(t *testing.T, sheet services.Sheet) (*services.OrderService, *repos.CartRepo, *repos.OrderQueue) {
	t.Helper()
	carts := repos.NewCartRepo()
	queue := repos.NewOrderQueue()
	if sheet == nil {
		sheet = repos.NewOrderSheet(filepath.Join(t.TempDir(), "orders.csv"), 10)
	}
	return services.NewOrderService(carts, sheet, queue), carts, queue
}

func TestOrderService_PlaceCommitsPair(t *testing.T) {
	sheet := repos.NewOrderSheet(filepath.Join(t.TempDir(), "orders.csv"), 10)
	svc, carts, queue := newOrderFixture(t, sheet)

	carts.Add("u1", domain.Product{ID: 1, Name: "Dragon figurine", Price: 500, Model: "dragon.stl"}, 2)
	carts.Add("u1", domain.Product{ID: 2, Name: "Phone stand", Price: 300, Model: "phone_holder.stl"}, 1)

	order, err := svc.Place("u1", "Ivan Petrov", "+79990001122")
	if err != nil {
		t.Fatal(err)
	}
	if order.ID == "" {
		t.Fatal("order id not minted")
	}
	if order.Total() != 1300 {
		t.Fatalf("want total 1300, got %d", order.Total())
	}

	// durable record and queue entry arrive as a pair
	back, err := sheet.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 {
		t.Fatalf("want 1 sheet row, got %d", len(back))
	}
	if queue.Len() != 1 {
		t.Fatalf("want 1 queue entry, got %d", queue.Len())
	}
	if got := queue.List()[0]; got.ID != order.ID {
		t.Fatalf("queued a different order: %s vs %s", got.ID, order.ID)
	}

	// cart cleared only after a successful commit
	if carts.Len("u1") != 0 {
		t.Fatal("cart not cleared after commit")
	}
}

func TestOrderService_SheetFailureLeavesNoPartialCommit(t *testing.T) {
	svc, carts, queue := newOrderFixture(t, failingSheet{err: errors.New("disk full")})

	carts.Add("u1", domain.Product{ID: 1, Name: "Dragon figurine", Price: 500, Model: "dragon.stl"}, 1)

	if _, err := svc.Place("u1", "Ivan Petrov", "+79990001122"); err == nil {
		t.Fatal("want error from failing sheet")
	}
	if queue.Len() != 0 {
		t.Fatal("nothing may be enqueued when the sheet write fails")
	}
	if carts.Len("u1") != 1 {
		t.Fatal("cart must stay intact when the commit fails")
	}
}

func TestOrderService_EmptyCart(t *testing.T) {
	svc, _, queue := newOrderFixture(t, nil)
	if _, err := svc.Place("u1", "Ivan Petrov", "+79990001122"); err != services.ErrEmptyCart {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
	if queue.Len() != 0 {
		t.Fatal("empty cart must not enqueue")
	}
}

func TestOrderService_OrderIsSnapshot(t *testing.T) {
	svc, carts, queue := newOrderFixture(t, nil)
	p := domain.Product{ID: 1, Name: "Dragon figurine", Price: 500, Model: "dragon.stl"}
	carts.Add("u1", p, 1)

	order, err := svc.Place("u1", "Ivan Petrov", "+79990001122")
	if err != nil {
		t.Fatal(err)
	}

	// later cart activity must not alter the committed order
	carts.Add("u1", p, 9)
	if len(order.Items) != 1 || order.Items[0].Qty != 1 {
		t.Fatalf("committed order mutated: %+v", order.Items)
	}
	if q := queue.List()[0]; len(q.Items) != 1 {
		t.Fatalf("queued order mutated: %+v", q.Items)
	}
}
