package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"printforge/internal/config"
	"printforge/internal/http/handlers"
	"printforge/internal/repos"
)

const (
	testBotToken      = "bot-secret"
	testOperatorToken = "operator-secret"
)

// newApp assembles the app the way main does, against an in-memory
// catalog and a temp order sheet.
func newApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Config{
		DBDSN:         ":memory:",
		OrdersFile:    filepath.Join(t.TempDir(), "orders.csv"),
		MaxOrderItems: 10,
		BotToken:      testBotToken,
		OperatorToken: testOperatorToken,
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg)

	chat := app.Group("/chat", handlers.RequireBearer(cfg.BotToken, "chat"))
	chat.Post("/:user/start", deps.ChatHandler.Start)
	chat.Post("/:user/message", deps.ChatHandler.Message)
	chat.Post("/:user/select", deps.ChatHandler.Select)

	op := app.Group("/operator", handlers.RequireBearer(cfg.OperatorToken, "operator"))
	op.Get("/", deps.OperatorHandler.Page)
	op.Get("/queue", deps.OperatorHandler.List)
	op.Post("/queue/:pos/done", deps.OperatorHandler.Done)
	op.Post("/queue/clear", deps.OperatorHandler.Clear)
	op.Get("/history", deps.OperatorHandler.History)

	return app
}

func request(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

// say sends one chat text and returns the reply messages.
func say(t *testing.T, app *fiber.App, user, text string) []any {
	t.Helper()
	resp, body := request(t, app, "POST", "/chat/"+user+"/message", testBotToken, map[string]any{"text": text})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("message %q: status %d", text, resp.StatusCode)
	}
	msgs, _ := body["messages"].([]any)
	if len(msgs) == 0 {
		t.Fatalf("message %q: empty reply", text)
	}
	return msgs
}
