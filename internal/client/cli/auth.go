package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/kpfoody/foody/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, password, and display name, then creates the
// account and signs in through the session store.
//
// The password byte slice is securely wiped before returning. Any I/O or
// store error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, email, string(password), name); err != nil {
		fmt.Println("Registration failed:", err)
		return err
	}

	fmt.Println("Welcome,", name)
	return nil
}

// Login prompts for credentials and signs in through the session store. On
// failure the store keeps its previous state and the error is shown.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	fmt.Println("Signed in")
	return nil
}

// Logout asks the gateway to end the session. A remote failure keeps us
// signed in; the store logs it and the next prompt reflects the state.
func (a *App) Logout(ctx context.Context) {
	a.session.LogoutUser(ctx)
	if a.isLoggedIn() {
		fmt.Println("Logout did not complete; still signed in")
		return
	}
	fmt.Println("Signed out. Your cart is kept.")
}

func (a *App) whoami() {
	st := a.session.State()
	if st.User == nil {
		fmt.Println("Not signed in")
		return
	}
	fmt.Printf("%s <%s>\n", st.User.Name, st.User.Email)
	if st.User.Bio != "" {
		fmt.Println(st.User.Bio)
	}
}
