package service

import (
	"context"
	"sync"

	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
)

// OrderGateway submits a finished draft to the backend and returns the
// identifier it assigned.
type OrderGateway interface {
	SubmitOrder(ctx context.Context, draft model.OrderDraft) (int64, error)
}

type CheckoutState int

const (
	CheckoutIdle CheckoutState = iota
	CheckoutSubmitting
)

// CheckoutWorkflow validates and submits an order, then resets state.
// While a submission is in flight further Submit calls are rejected; there
// is no automatic retry.
type CheckoutWorkflow interface {
	Submit(ctx context.Context, contact model.ContactInfo) (int64, error)
	State() CheckoutState
}

func NewCheckoutWorkflow(cart CartService, gateway OrderGateway, dispatcher EventDispatcher, sessionID string) CheckoutWorkflow {
	return &checkoutWorkflow{cart: cart, gateway: gateway, dispatcher: dispatcher, sessionID: sessionID}
}

type checkoutWorkflow struct {
	cart       CartService
	gateway    OrderGateway
	dispatcher EventDispatcher
	sessionID  string

	mu    sync.Mutex
	state CheckoutState
}

func (w *checkoutWorkflow) Submit(ctx context.Context, contact model.ContactInfo) (int64, error) {
	if err := w.enterSubmitting(); err != nil {
		return 0, err
	}
	defer w.leaveSubmitting()

	if w.cart.Len() == 0 {
		return 0, model.ErrEmptyCart
	}
	if !contact.Complete() {
		return 0, model.ErrMissingContactInfo
	}

	draft := model.OrderDraft{Contact: contact, SessionID: w.sessionID}
	for _, entry := range w.cart.Items() {
		draft.Items = append(draft.Items, model.OrderItem{
			ProductID:  entry.ProductID,
			Quantity:   entry.Quantity,
			PriceCents: entry.Product.PriceCents,
		})
	}

	orderID, err := w.gateway.SubmitOrder(ctx, draft)
	if err != nil {
		// Cart and form stay untouched so the user can retry manually.
		return 0, err
	}

	if err := w.cart.Clear(); err != nil {
		return orderID, err
	}

	_ = w.dispatcher.Dispatch(model.OrderPlaced{OrderID: orderID})
	return orderID, nil
}

func (w *checkoutWorkflow) State() CheckoutState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *checkoutWorkflow) enterSubmitting() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == CheckoutSubmitting {
		return model.ErrSubmitInProgress
	}
	w.state = CheckoutSubmitting
	return nil
}

func (w *checkoutWorkflow) leaveSubmitting() {
	w.mu.Lock()
	w.state = CheckoutIdle
	w.mu.Unlock()
}
