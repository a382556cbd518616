package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"printforge/internal/domain"
	"printforge/internal/repos"
	"printforge/internal/validate"
)

// DialogService is the per-user conversation state machine. Every inbound
// event resolves to a definite reply; nothing here panics or leaks errors
// to the transport except infrastructure failures, which come back
// alongside the user-facing failure message so the handler can log them.
type DialogService struct {
	Catalog  *CatalogService
	Cart     *CartService
	Sessions *repos.SessionRepo
	Orders   *OrderService

	stages map[domain.Stage]stageHandler
	locks  sync.Map // user -> *sync.Mutex
}

type stageHandler func(user string, sess domain.Session, input string) ([]Message, error)

func NewDialogService(catalog *CatalogService, cart *CartService, sessions *repos.SessionRepo, orders *OrderService) *DialogService {
	d := &DialogService{Catalog: catalog, Cart: cart, Sessions: sessions, Orders: orders}
	// Explicit stage dispatch: every stage has exactly one handler.
	d.stages = map[domain.Stage]stageHandler{
		domain.StageIdle:             d.handleIdle,
		domain.StageAwaitingQuantity: d.handleQuantity,
		domain.StageAwaitingFullName: d.handleFullName,
		domain.StageAwaitingPhone:    d.handlePhone,
	}
	return d
}

// lockUser serializes events for one user. The transport may deliver
// requests for the same user concurrently; without this, two phone
// submissions could both observe AwaitingPhone and commit twice.
// Different users proceed in parallel.
func (d *DialogService) lockUser(user string) func() {
	v, _ := d.locks.LoadOrStore(user, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Start resets the user to a clean idle session and empty cart.
func (d *DialogService) Start(user string) []Message {
	defer d.lockUser(user)()
	d.Sessions.Reset(user)
	d.Cart.Clear(user)
	return []Message{withKeyboard(
		"Hi! I take 3D-print orders.\n"+
			"I can show the catalog, collect items into a cart and place an order "+
			"(full name + phone). Send \"catalog\" to browse.",
		mainKeyboard)}
}

// Text routes free text to the handler registered for the user's stage.
func (d *DialogService) Text(user, input string) ([]Message, error) {
	defer d.lockUser(user)()
	sess := d.Sessions.Get(user)
	// The cart can only be cleared from the main menu; mid-dialog the
	// command is a no-op so a checkout never silently loses its cart.
	if cmd := normalize(input); sess.Stage != domain.StageIdle && (cmd == "clear cart" || cmd == "clear-cart") {
		return []Message{text("You're in the middle of an order step, so the cart was left unchanged. Please answer the question above.")}, nil
	}
	h, ok := d.stages[sess.Stage]
	if !ok {
		// Unknown stage means a corrupted record; recover to idle.
		d.Sessions.Reset(user)
		h = d.handleIdle
		sess = domain.Session{}
	}
	return h(user, sess, input)
}

// SelectProduct handles an add-to-cart button press. Selecting a product
// restarts quantity collection from any stage; draft checkout fields are
// discarded.
func (d *DialogService) SelectProduct(user string, productID int) []Message {
	defer d.lockUser(user)()
	p, err := d.Catalog.Get(productID)
	if err != nil {
		// Stale button. If the user was mid-selection for it, recover to idle.
		sess := d.Sessions.Get(user)
		if sess.Stage == domain.StageAwaitingQuantity && sess.PendingProductID == productID {
			d.Sessions.Reset(user)
		}
		return []Message{withKeyboard("That item is no longer available.", mainKeyboard)}
	}
	d.Sessions.Upsert(user, domain.Session{
		Stage:            domain.StageAwaitingQuantity,
		PendingProductID: p.ID,
	})
	return []Message{text(fmt.Sprintf("How many of %q should I add to the cart? Enter a number.", p.Name))}
}

// ---------- stage handlers ----------

func (d *DialogService) handleIdle(user string, _ domain.Session, input string) ([]Message, error) {
	switch normalize(input) {
	case "catalog":
		return d.catalogCards()
	case "cart":
		return []Message{d.cartMessage(user)}, nil
	case "checkout":
		if d.Cart.Carts.Len(user) == 0 {
			return []Message{withKeyboard("Your cart is empty. Add something from the catalog first.", mainKeyboard)}, nil
		}
		d.Sessions.Upsert(user, domain.Session{Stage: domain.StageAwaitingFullName})
		return []Message{text("To place the order, please enter your full name:")}, nil
	case "clear cart", "clear-cart":
		d.Cart.Clear(user)
		return []Message{withKeyboard("Cart cleared.", mainKeyboard)}, nil
	case "help":
		return []Message{withKeyboard(
			"Commands:\n"+
				"catalog — browse products\n"+
				"cart — show your cart\n"+
				"checkout — place an order\n"+
				"clear cart — empty your cart",
			mainKeyboard)}, nil
	}
	return []Message{withKeyboard(
		"I didn't understand that. Use \"catalog\" or \"cart\", or send \"help\".",
		mainKeyboard)}, nil
}

func (d *DialogService) handleQuantity(user string, sess domain.Session, input string) ([]Message, error) {
	qty, ok := validate.Quantity(input)
	if !ok {
		return []Message{text("Please enter a positive whole number.")}, nil
	}
	p, err := d.Cart.Add(user, sess.PendingProductID, qty)
	if err != nil {
		// Product vanished between selection and quantity. Recover to idle.
		d.Sessions.Reset(user)
		return []Message{withKeyboard("That item is no longer available. Try the catalog again.", mainKeyboard)}, nil
	}
	d.Sessions.Reset(user)
	return []Message{
		text(fmt.Sprintf("Added to cart: %s — %d pcs.", p.Name, qty)),
		d.cartMessage(user),
	}, nil
}

func (d *DialogService) handleFullName(user string, sess domain.Session, input string) ([]Message, error) {
	name, ok := validate.FullName(input)
	if !ok {
		return []Message{text("Please enter your surname and given name (patronymic optional).")}, nil
	}
	sess.DraftName = name
	sess.Stage = domain.StageAwaitingPhone
	d.Sessions.Upsert(user, sess)
	return []Message{text("Please enter your phone number:")}, nil
}

func (d *DialogService) handlePhone(user string, sess domain.Session, input string) ([]Message, error) {
	phone, ok := validate.Phone(input)
	if !ok {
		return []Message{text("That phone number looks too short. Try again:")}, nil
	}

	order, err := d.Orders.Place(user, sess.DraftName, phone)
	if errors.Is(err, ErrEmptyCart) {
		d.Sessions.Reset(user)
		return []Message{withKeyboard("Your cart is empty, nothing to order.", mainKeyboard)}, nil
	}
	if err != nil {
		// Sheet write failed: nothing was enqueued and the cart is intact.
		// Stay at this stage so re-sending the phone retries the commit.
		return []Message{text("Sorry, I couldn't record your order. Please try again in a moment.")}, err
	}

	d.Sessions.Reset(user)
	return []Message{withKeyboard(
		fmt.Sprintf("Thank you! Your order is placed.\nOrder total: %d. We'll call %s.", order.Total(), order.Phone),
		mainKeyboard)}, nil
}

// ---------- rendering ----------

func (d *DialogService) catalogCards() ([]Message, error) {
	products, err := d.Catalog.List()
	if err != nil {
		return []Message{text("The catalog is unavailable right now. Please try again later.")}, err
	}
	msgs := make([]Message, 0, len(products))
	for _, p := range products {
		msgs = append(msgs, Message{
			Text:  fmt.Sprintf("%s\nPrice: %d\n%s\nModel: %s", p.Name, p.Price, p.Description, p.Model),
			Image: p.Image,
			Buttons: []Button{{
				Label:  "Add to cart",
				Action: fmt.Sprintf("add:%d", p.ID),
			}},
		})
	}
	return msgs, nil
}

func (d *DialogService) cartMessage(user string) Message {
	cv := d.Cart.View(user)
	if len(cv.Items) == 0 {
		return withKeyboard("Your cart is empty.", mainKeyboard)
	}
	var b strings.Builder
	for i, it := range cv.Items {
		fmt.Fprintf(&b, "%d. %s — %d pcs × %d = %d\n", i+1, it.Name, it.Qty, it.Price, it.LineTotal())
	}
	fmt.Fprintf(&b, "\nTotal: %d", cv.Total)
	return withKeyboard(b.String(), cartKeyboard)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
