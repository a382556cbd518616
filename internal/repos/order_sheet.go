package repos

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"printforge/internal/domain"
	applog "printforge/internal/log"
)

// DateLayout is the timestamp format written to the sheet.
const DateLayout = "02.01.2006 15:04"

// OrderSheet is the durable, append-only record of committed orders: a CSV
// file with a header row and a fixed number of item slots per row. The file
// is created lazily with its header on the first append. Orders with more
// items than there are slots get the excess dropped from the written row
// (the in-memory Order keeps everything); the drop is logged, not silent.
type OrderSheet struct {
	mu       sync.Mutex
	path     string
	maxItems int
}

func NewOrderSheet(path string, maxItems int) *OrderSheet {
	if maxItems < 1 {
		maxItems = 10
	}
	return &OrderSheet{path: path, maxItems: maxItems}
}

func (s *OrderSheet) header() []string {
	h := []string{"OrderDate", "FullName", "Phone"}
	for i := 1; i <= s.maxItems; i++ {
		h = append(h,
			fmt.Sprintf("ItemName_%d", i),
			fmt.Sprintf("Quantity_%d", i),
			fmt.Sprintf("UnitPrice_%d", i),
			fmt.Sprintf("LineTotal_%d", i),
			fmt.Sprintf("ModelRef_%d", i),
		)
	}
	return h
}

// Append durably writes one order row: open, write, sync, close. A reader
// opening the file between appends never sees a partial row.
func (s *OrderSheet) Append(o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A zero-size file (touch, or a crash before the header landed) still
	// needs its header, so freshness is by size, not existence.
	fresh := false
	if info, err := os.Stat(s.path); err != nil || info.Size() == 0 {
		fresh = true
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("order sheet: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(s.header()); err != nil {
			return fmt.Errorf("order sheet header: %w", err)
		}
	}

	if len(o.Items) > s.maxItems {
		applog.Security(nil, "sheet.truncate", map[string]any{
			"order_id": o.ID, "items": len(o.Items), "slots": s.maxItems,
		})
	}

	row := []string{o.CreatedAt.Format(DateLayout), o.FullName, o.Phone}
	for i := 0; i < s.maxItems; i++ {
		if i < len(o.Items) {
			it := o.Items[i]
			row = append(row, it.Name,
				strconv.Itoa(it.Qty),
				strconv.Itoa(it.Price),
				strconv.Itoa(it.LineTotal()),
				it.Model)
		} else {
			row = append(row, "", "", "", "", "")
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("order sheet row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("order sheet flush: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("order sheet sync: %w", err)
	}
	return nil
}

// ReadAll parses the sheet back into orders (ids are not stored in the
// sheet and come back empty). Used for reconciliation and tests.
func (s *OrderSheet) ReadAll() ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var out []domain.Order
	for _, row := range rows[1:] { // skip header
		if len(row) < 3 {
			continue
		}
		o := domain.Order{FullName: row[1], Phone: row[2]}
		if ts, err := time.ParseInLocation(DateLayout, row[0], time.Local); err == nil {
			o.CreatedAt = ts
		}
		for i := 3; i+4 < len(row); i += 5 {
			if row[i] == "" {
				break
			}
			qty, _ := strconv.Atoi(row[i+1])
			price, _ := strconv.Atoi(row[i+2])
			o.Items = append(o.Items, domain.CartItem{
				Name: row[i], Qty: qty, Price: price, Model: row[i+4],
			})
		}
		out = append(out, o)
	}
	return out, nil
}
