package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kpfoody/foody/internal/client/models"
)

func (a *App) listCategories(ctx context.Context) {
	categories, err := a.catalog.ListCategories(ctx)
	if err != nil {
		fmt.Println("Could not load categories:", err)
		return
	}
	for _, c := range categories {
		fmt.Printf("%-12s %s\n", c.Name, c.Description)
	}
}

// listMenu fetches and prints the menu. An argument matching a category
// name (case-insensitive) filters by that category; anything else is a
// search query. The listing is remembered so 'item' and 'add' can address
// entries by number.
func (a *App) listMenu(ctx context.Context, arg string) {
	categoryID, query := "", ""
	if arg != "" {
		categoryID = a.categoryID(ctx, arg)
		if categoryID == "" {
			query = arg
		}
	}
	items, err := a.catalog.ListMenu(ctx, categoryID, query)
	if err != nil {
		fmt.Println("Could not load menu:", err)
		return
	}
	if len(items) == 0 {
		fmt.Println("No matching items")
		return
	}
	a.lastMenu = items
	for i, item := range items {
		fmt.Printf("%2d. %-24s $%.2f  ★%.1f\n", i+1, item.Name, item.Price, item.Rating)
	}
}

// categoryID resolves a category by its display name; "" when no category
// matches (or the lookup fails, in which case the argument still works as a
// search query).
func (a *App) categoryID(ctx context.Context, name string) string {
	categories, err := a.catalog.ListCategories(ctx)
	if err != nil {
		return ""
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.ID
		}
	}
	return ""
}

// menuEntry resolves a 1-based index from the last listing.
func (a *App) menuEntry(arg string) (*models.MenuItem, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.lastMenu) {
		fmt.Println("Run 'menu' first, then pick an item by its number")
		return nil, false
	}
	return &a.lastMenu[n-1], true
}

func (a *App) showItem(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: item <n>")
		return
	}
	item, ok := a.menuEntry(args[0])
	if !ok {
		return
	}

	fmt.Printf("%s — $%.2f\n%s\n", item.Name, item.Price, item.Description)
	fmt.Printf("★%.1f  %d kcal  %dg protein\n", item.Rating, item.Calories, item.Protein)
	if len(item.Customizations) > 0 {
		fmt.Println("Extras:")
		for i, c := range item.Customizations {
			fmt.Printf("  %d) %-16s +$%.2f\n", i+1, c.Name, c.Price)
		}
	}
}

// addToCart adds a listed item, optionally with extras picked by their
// number from the 'item' view: add 2 1 3
func (a *App) addToCart(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: add <n> [extra numbers...]")
		return
	}
	item, ok := a.menuEntry(args[0])
	if !ok {
		return
	}

	var extras []models.Customization
	for _, arg := range args[1:] {
		i, err := strconv.Atoi(arg)
		if err != nil || i < 1 || i > len(item.Customizations) {
			fmt.Printf("No extra %q on %s\n", arg, item.Name)
			return
		}
		extras = append(extras, item.Customizations[i-1])
	}

	a.cart.AddItem(item.ID, item.Name, item.Price, item.ImageURL, extras)
	fmt.Printf("Added %s to the cart\n", item.Name)
}
