// Package checkout turns the cart's totals into a payment order. It is the
// only client component that talks to the payment initiation endpoint; the
// stores themselves never do.
package checkout

import (
	"context"
	"fmt"

	"github.com/kpfoody/foody/internal/client/gateway"
	"github.com/kpfoody/foody/internal/client/models"
	"github.com/kpfoody/foody/internal/client/store"
	"github.com/kpfoody/foody/internal/common"
	"github.com/kpfoody/foody/internal/logging"
)

// Flat order-level adjustments applied on top of the cart subtotal.
const (
	DeliveryFee = 5.00
	Discount    = 0.50
)

// Summary is the payment breakdown shown before ordering.
type Summary struct {
	Items       int
	Subtotal    float64
	DeliveryFee float64
	Discount    float64
	Total       float64
}

// Checkout reads totals from the cart store and initiates orders through the
// payment gateway.
type Checkout struct {
	cart     *store.CartStore
	payments gateway.Payment
	log      logging.Logger
}

func New(cart *store.CartStore, payments gateway.Payment, log logging.Logger) *Checkout {
	return &Checkout{cart: cart, payments: payments, log: log.With("component", "checkout")}
}

// Summary computes the current payment breakdown. Pure read; no remote calls.
func (c *Checkout) Summary() Summary {
	subtotal := c.cart.TotalPrice()
	return Summary{
		Items:       c.cart.TotalItems(),
		Subtotal:    subtotal,
		DeliveryFee: DeliveryFee,
		Discount:    Discount,
		Total:       subtotal + DeliveryFee - Discount,
	}
}

// PlaceOrder initiates payment for the current summary total and returns the
// order reference. The cart is left intact; clearing it after a completed
// payment hand-off is the caller's decision.
func (c *Checkout) PlaceOrder(ctx context.Context) (*models.Order, error) {
	if c.cart.TotalItems() == 0 {
		return nil, fmt.Errorf("%w: cart is empty", common.ErrValidation)
	}

	sum := c.Summary()
	order, err := c.payments.CreateOrder(ctx, sum.Total)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	c.log.Info(ctx, "order created", "order_id", order.ID, "amount", sum.Total)
	return order, nil
}
