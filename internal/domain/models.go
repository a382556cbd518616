package domain

import "time"

// Product is a catalog entry. Prices are whole currency units.
type Product struct {
	ID          int    `db:"id" yaml:"id"`
	Name        string `db:"name" yaml:"name"`
	Price       int    `db:"price" yaml:"price"`
	Model       string `db:"model" yaml:"model"`
	Description string `db:"description" yaml:"description"`
	Image       string `db:"image" yaml:"image,omitempty"`
}

// CartItem is a by-value snapshot of a product taken at add time.
// Later catalog edits never change lines already in a cart.
type CartItem struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price int    `json:"price"`
	Model string `json:"model"`
}

func (it CartItem) LineTotal() int { return it.Qty * it.Price }

// Stage is the point in a user's dialog that decides which inputs are
// currently meaningful.
type Stage int

const (
	StageIdle Stage = iota
	StageAwaitingQuantity
	StageAwaitingFullName
	StageAwaitingPhone
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAwaitingQuantity:
		return "awaiting_quantity"
	case StageAwaitingFullName:
		return "awaiting_full_name"
	case StageAwaitingPhone:
		return "awaiting_phone"
	}
	return "unknown"
}

// Session is the per-user dialog record. PendingProductID is meaningful
// only while Stage is StageAwaitingQuantity; DraftName only once the
// dialog has passed the full-name step.
type Session struct {
	Stage            Stage
	PendingProductID int
	DraftName        string
}

// Order is an immutable committed checkout. Items hold the full cart
// snapshot even when the order sheet truncates the written row.
type Order struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	FullName  string     `json:"fullName"`
	Phone     string     `json:"phone"`
	Items     []CartItem `json:"items"`
}

func (o Order) Total() int {
	total := 0
	for _, it := range o.Items {
		total += it.LineTotal()
	}
	return total
}
