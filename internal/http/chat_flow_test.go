package handlers_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestChat_RequiresBotToken(t *testing.T) {
	app := newApp(t)

	resp, _ := request(t, app, "POST", "/chat/u1/start", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing token: want 401, got %d", resp.StatusCode)
	}
	resp, _ = request(t, app, "POST", "/chat/u1/start", "wrong", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token: want 401, got %d", resp.StatusCode)
	}
	resp, _ = request(t, app, "POST", "/chat/u1/start", testBotToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("good token: want 200, got %d", resp.StatusCode)
	}
}

func TestChat_MessageValidation(t *testing.T) {
	app := newApp(t)

	resp, _ := request(t, app, "POST", "/chat/u1/message", testBotToken, map[string]any{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty text: want 400, got %d", resp.StatusCode)
	}
	resp, _ = request(t, app, "POST", "/chat/u1/select", testBotToken, map[string]any{"productId": 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad productId: want 400, got %d", resp.StatusCode)
	}
}

func TestChat_EndToEndOrder(t *testing.T) {
	app := newApp(t)
	user := "u1"

	resp, _ := request(t, app, "POST", "/chat/"+user+"/start", testBotToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start: status %d", resp.StatusCode)
	}

	// catalog comes back as one card per seeded product
	msgs := say(t, app, user, "catalog")
	if len(msgs) != 3 {
		t.Fatalf("want 3 catalog cards, got %d", len(msgs))
	}

	// pick product 1 and order two of it
	resp, _ = request(t, app, "POST", "/chat/"+user+"/select", testBotToken, map[string]any{"productId": 1})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select: status %d", resp.StatusCode)
	}
	say(t, app, user, "2")

	// cart shows the running total
	msgs = say(t, app, user, "cart")
	first, _ := msgs[0].(map[string]any)
	if txt, _ := first["text"].(string); !strings.Contains(txt, "Total: 1000") {
		t.Fatalf("want total in cart view, got %q", txt)
	}

	say(t, app, user, "checkout")
	say(t, app, user, "Ivan Petrov")
	msgs = say(t, app, user, "+79990001122")
	first, _ = msgs[0].(map[string]any)
	if txt, _ := first["text"].(string); !strings.Contains(txt, "placed") {
		t.Fatalf("want confirmation, got %q", txt)
	}

	// the operator sees the committed order at position 1
	resp, body := request(t, app, "GET", "/operator/queue", testOperatorToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("queue: status %d", resp.StatusCode)
	}
	orders, _ := body["orders"].([]any)
	if len(orders) != 1 {
		t.Fatalf("want 1 queued order, got %d", len(orders))
	}
	entry, _ := orders[0].(map[string]any)
	if entry["fullName"] != "Ivan Petrov" || entry["position"] != float64(1) || entry["total"] != float64(1000) {
		t.Fatalf("bad queue entry: %+v", entry)
	}

	// and the durable history has it too
	resp, body = request(t, app, "GET", "/operator/history", testOperatorToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history: status %d", resp.StatusCode)
	}
	if orders, _ := body["orders"].([]any); len(orders) != 1 {
		t.Fatalf("want 1 order in history, got %+v", body)
	}
}
