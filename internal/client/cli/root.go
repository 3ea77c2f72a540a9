package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName
	}
	if a.cartCount > 0 {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("cart:%d", a.cartCount)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to Foody (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("foody %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: categories, menu [category|query], item <n>, add <n> [extras...], cart, qty <line> <count>, remove <line>, clear, checkout, profile, whoami, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, categories, menu [category|query], item <n>, add <n> [extras...], cart, exit")
			}
		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.whoami()
		case "categories":
			a.listCategories(ctx)
		case "menu":
			a.listMenu(ctx, strings.Join(args, " "))
		case "item":
			a.showItem(args)
		case "add":
			a.addToCart(args)
		case "cart":
			a.showCart()
		case "qty":
			a.setQuantity(args)
		case "remove":
			a.removeLine(args)
		case "clear":
			a.cart.Clear()
			fmt.Println("Cart cleared")
		case "checkout":
			a.checkoutCart(ctx)
		case "profile":
			a.editProfile(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
