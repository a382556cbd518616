package services

// Button is an inline affordance attached to a message, e.g. the
// add-to-cart button on a catalog card. Action is an opaque payload the
// transport sends back via the select endpoint ("add:<productId>").
type Button struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// Message is one outbound chat message for the transport to render.
type Message struct {
	Text     string   `json:"text"`
	Image    string   `json:"image,omitempty"`
	Buttons  []Button `json:"buttons,omitempty"`
	Keyboard []string `json:"keyboard,omitempty"`
}

// Reply keyboards mirror the two menus of the dialog: the main menu and
// the cart menu shown once the cart has content.
var (
	mainKeyboard = []string{"catalog", "cart"}
	cartKeyboard = []string{"checkout", "clear cart", "catalog"}
)

func text(s string) Message { return Message{Text: s} }

func withKeyboard(s string, kb []string) Message { return Message{Text: s, Keyboard: kb} }
