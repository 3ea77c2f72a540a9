// Package gateway declares the remote service surfaces the Foody client
// depends on, together with the sentinel errors implementations must map
// their transport failures to.
package gateway

import (
	"context"

	"github.com/kpfoody/foody/internal/client/models"
)

// ProfileFields carries the writable profile attributes. Nil fields are
// omitted from the write.
type ProfileFields struct {
	Name *string `json:"name,omitempty"`
	Bio  *string `json:"bio,omitempty"`
}

// Identity is the identity/profile gateway.
//
// Contract:
//   - GetActiveSession returns ErrUnauthorized when no session is active.
//   - FindProfileByAccountID returns ErrNotFound when no document matches.
//   - WriteProfile must surface a *UnknownAttributeError when the remote
//     schema rejects a field, so callers can retry with a reduced payload.
//
// All methods honor context cancellation; none of them impose their own
// timeout beyond what the transport configures.
type Identity interface {
	CreateAccount(ctx context.Context, email, password, name string) (*models.Account, error)
	StartSession(ctx context.Context, email, password string) (*models.Session, error)
	GetActiveSession(ctx context.Context) (*models.Session, error)
	GetAccount(ctx context.Context) (*models.Account, error)
	EndSession(ctx context.Context) error
	FindProfileByAccountID(ctx context.Context, accountID string) (*models.User, error)
	WriteProfile(ctx context.Context, accountID string, fields ProfileFields) (*models.User, error)
}

// Catalog is the menu/catalog gateway.
type Catalog interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListMenu(ctx context.Context, categoryID, query string) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
}

// Payment is the payment initiation endpoint. It is called by the checkout
// flow only; the stores never talk to it.
type Payment interface {
	CreateOrder(ctx context.Context, amount float64) (*models.Order, error)
}
