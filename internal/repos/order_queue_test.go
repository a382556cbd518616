package repos_test

import (
	"testing"

	"printforge/internal/domain"
	"printforge/internal/repos"
)

func order(name string) domain.Order {
	return domain.Order{ID: name, FullName: name, Phone: "+79990001122"}
}

func TestOrderQueue_FIFOPositions(t *testing.T) {
	q := repos.NewOrderQueue()
	q.Enqueue(order("first"))
	q.Enqueue(order("second"))
	q.Enqueue(order("third"))

	got := q.List()
	if len(got) != 3 || got[0].ID != "first" || got[2].ID != "third" {
		t.Fatalf("bad listing: %+v", got)
	}

	o, err := q.Complete(2)
	if err != nil {
		t.Fatal(err)
	}
	if o.ID != "second" {
		t.Fatalf("want second, got %s", o.ID)
	}
	// later entries shift down by one
	got = q.List()
	if len(got) != 2 || got[0].ID != "first" || got[1].ID != "third" {
		t.Fatalf("bad queue after complete: %+v", got)
	}
}

func TestOrderQueue_CompleteOutOfRange(t *testing.T) {
	q := repos.NewOrderQueue()
	q.Enqueue(order("only"))

	for _, pos := range []int{0, -1, 2} {
		if _, err := q.Complete(pos); err != repos.ErrOutOfRange {
			t.Fatalf("pos %d: want ErrOutOfRange, got %v", pos, err)
		}
	}
	if q.Len() != 1 {
		t.Fatal("failed complete must not mutate the queue")
	}

	if _, err := q.Complete(1); err != nil {
		t.Fatal(err)
	}
	// queue now empty; same command fails
	if _, err := q.Complete(1); err != repos.ErrOutOfRange {
		t.Fatalf("want ErrOutOfRange on empty queue, got %v", err)
	}
}

func TestOrderQueue_Clear(t *testing.T) {
	q := repos.NewOrderQueue()
	q.Enqueue(order("a"))
	q.Enqueue(order("b"))
	q.Clear()
	if q.Len() != 0 {
		t.Fatal("queue not empty after clear")
	}
	q.Clear() // idempotent
}
