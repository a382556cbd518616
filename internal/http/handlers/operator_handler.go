package handlers

import (
	"github.com/gofiber/fiber/v2"

	"printforge/internal/domain"
	applog "printforge/internal/log"
	"printforge/internal/repos"
	"printforge/internal/validate"
)

type OperatorHandler struct {
	Queue *repos.OrderQueue
	Sheet *repos.OrderSheet
}

type queueEntry struct {
	Position  int    `json:"position"`
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
	ItemCount int    `json:"itemCount"`
	Total     int    `json:"total"`
}

func queueEntries(orders []domain.Order) []queueEntry {
	out := make([]queueEntry, 0, len(orders))
	for i, o := range orders {
		out = append(out, queueEntry{
			Position:  i + 1,
			ID:        o.ID,
			FullName:  o.FullName,
			Phone:     o.Phone,
			CreatedAt: o.CreatedAt.Format(repos.DateLayout),
			ItemCount: len(o.Items),
			Total:     o.Total(),
		})
	}
	return out
}

// GET /operator — HTML queue page.
func (h *OperatorHandler) Page(c *fiber.Ctx) error {
	return c.Render("queue", fiber.Map{"Entries": queueEntries(h.Queue.List())})
}

// GET /operator/queue
func (h *OperatorHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"orders": queueEntries(h.Queue.List())})
}

// POST /operator/queue/:pos/done
func (h *OperatorHandler) Done(c *fiber.Ctx) error {
	pos, ok := validate.Position(c.Params("pos"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "position must be a positive integer"})
	}
	o, err := h.Queue.Complete(pos)
	if err != nil {
		applog.Security(c, "queue.done.out_of_range", map[string]any{"position": pos})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no order at that position"})
	}
	applog.Audit(c, "queue.done", map[string]any{"order_id": o.ID, "position": pos})
	return c.JSON(fiber.Map{"completed": fiber.Map{
		"id": o.ID, "fullName": o.FullName, "phone": o.Phone,
	}})
}

// GET /operator/history — every committed order, read back from the
// sheet. Unlike the queue this survives restarts; it is the
// reconciliation source after a clear.
func (h *OperatorHandler) History(c *fiber.Ctx) error {
	orders, err := h.Sheet.ReadAll()
	if err != nil {
		applog.Error(c, "sheet.read.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not read order sheet"})
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// POST /operator/queue/clear
func (h *OperatorHandler) Clear(c *fiber.Ctx) error {
	n := h.Queue.Len()
	h.Queue.Clear()
	applog.Audit(c, "queue.clear", map[string]any{"dropped": n})
	return c.JSON(fiber.Map{"cleared": n})
}
