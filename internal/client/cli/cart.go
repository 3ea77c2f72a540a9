package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kpfoody/foody/internal/client/models"
	"github.com/kpfoody/foody/internal/common"
)

// parseQuantity converts user input into a quantity. Only whole numbers are
// accepted.
func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", common.ErrInvalidQuantity, s)
	}
	return n, nil
}

// cartLine resolves a 1-based line number from the current cart snapshot.
func (a *App) cartLine(arg string) (*models.CartLine, bool) {
	items := a.cart.Items()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(items) {
		fmt.Println("Pick a cart line by its number (see 'cart')")
		return nil, false
	}
	return &items[n-1], true
}

func (a *App) showCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Cart Empty")
		return
	}

	for i, l := range items {
		fmt.Printf("%2d. %dx %-24s $%.2f\n", i+1, l.Quantity, l.Name, l.Total())
		for _, c := range l.Customizations {
			fmt.Printf("       + %-18s $%.2f\n", c.Name, c.Price)
		}
	}

	sum := a.checkout.Summary()
	fmt.Printf("Total Items (%d)  $%.2f\n", sum.Items, sum.Subtotal)
	fmt.Printf("Delivery Fee     $%.2f\n", sum.DeliveryFee)
	fmt.Printf("Discount        -$%.2f\n", sum.Discount)
	fmt.Printf("Total            $%.2f\n", sum.Total)
}

func (a *App) setQuantity(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: qty <line> <count>")
		return
	}
	line, ok := a.cartLine(args[0])
	if !ok {
		return
	}
	qty, err := parseQuantity(args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	a.cart.UpdateQuantity(line.Key, qty)
}

func (a *App) removeLine(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: remove <line>")
		return
	}
	line, ok := a.cartLine(args[0])
	if !ok {
		return
	}
	a.cart.RemoveItem(line.Key)
	fmt.Printf("Removed %s\n", line.Name)
}

func (a *App) checkoutCart(ctx context.Context) {
	order, err := a.checkout.PlaceOrder(ctx)
	if err != nil {
		fmt.Println("Checkout failed:", err)
		return
	}
	fmt.Printf("Order created: %s ($%.2f)\n", order.ID, order.Amount)
}
