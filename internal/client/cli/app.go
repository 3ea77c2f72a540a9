// Package cli implements the interactive Foody storefront client: a small
// REPL that drives the session and cart stores and renders their snapshots.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/kpfoody/foody/internal/client/checkout"
	"github.com/kpfoody/foody/internal/client/config"
	"github.com/kpfoody/foody/internal/client/gateway"
	"github.com/kpfoody/foody/internal/client/gateway/httpgw"
	"github.com/kpfoody/foody/internal/client/models"
	"github.com/kpfoody/foody/internal/client/store"
	"github.com/kpfoody/foody/internal/logging"
)

type App struct {
	config   *config.Config
	session  *store.SessionStore
	cart     *store.CartStore
	checkout *checkout.Checkout
	catalog  gateway.Catalog
	log      logging.Logger
	reader   *bufio.Reader

	// REPL display state, refreshed from store snapshots.
	userName  string
	cartCount int

	// last menu listing, so items can be addressed by number
	lastMenu []models.MenuItem
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	gw := httpgw.New(cfg.GatewayBaseURL, cfg.RequestTimeout, log)

	session := store.NewSessionStore(gw, log)
	cart := store.NewCartStore()

	a := &App{
		config:   cfg,
		session:  session,
		cart:     cart,
		checkout: checkout.New(cart, gw, log),
		catalog:  gw,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}

	// The REPL re-renders its prompt from snapshots, the same way a screen
	// would re-render from store state.
	session.Subscribe(func(st store.SessionState) {
		if st.User != nil {
			a.userName = st.User.Name
		} else {
			a.userName = ""
		}
	})
	cart.Subscribe(func(lines []models.CartLine) {
		n := 0
		for _, l := range lines {
			n += l.Quantity
		}
		a.cartCount = n
	})

	return a
}

func (a *App) Run(ctx context.Context) {
	// Resume a previous session if the gateway still has one; failures
	// just leave us signed out.
	a.session.FetchAuthenticatedUser(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.State().Authenticated
}
