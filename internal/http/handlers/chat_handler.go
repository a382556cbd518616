package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "printforge/internal/log"
	"printforge/internal/services"
)

// ChatHandler is the webhook the chat transport calls with inbound user
// events. Every response is a list of messages for the transport to
// render; dialog-level failures (bad quantity, short phone) are ordinary
// messages, not HTTP errors.
type ChatHandler struct {
	Dialog *services.DialogService
}

type chatReply struct {
	Messages []services.Message `json:"messages"`
}

func (h *ChatHandler) user(c *fiber.Ctx) (string, bool) {
	user := c.Params("user")
	if user == "" || len(user) > 64 {
		return "", false
	}
	c.Locals("chatUser", user)
	return user, true
}

// POST /chat/:user/start
func (h *ChatHandler) Start(c *fiber.Ctx) error {
	user, ok := h.user(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad user id"})
	}
	msgs := h.Dialog.Start(user)
	applog.Info(c, "chat.start", nil)
	return c.JSON(chatReply{Messages: msgs})
}

// POST /chat/:user/message
func (h *ChatHandler) Message(c *fiber.Ctx) error {
	user, ok := h.user(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad user id"})
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil || body.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing text"})
	}
	msgs, err := h.Dialog.Text(user, body.Text)
	if err != nil {
		// Infrastructure failure (e.g. order sheet). The user already got
		// a failure message; surface the cause in the log only.
		applog.Error(c, "chat.text.fail", err, nil)
	}
	return c.JSON(chatReply{Messages: msgs})
}

// POST /chat/:user/select
func (h *ChatHandler) Select(c *fiber.Ctx) error {
	user, ok := h.user(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad user id"})
	}
	var body struct {
		ProductID int `json:"productId"`
	}
	if err := c.BodyParser(&body); err != nil || body.ProductID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	msgs := h.Dialog.SelectProduct(user, body.ProductID)
	applog.Info(c, "chat.select", map[string]any{"product_id": body.ProductID})
	return c.JSON(chatReply{Messages: msgs})
}
