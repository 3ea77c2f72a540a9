package httpgw

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kpfoody/foody/internal/client/gateway"
	"github.com/kpfoody/foody/internal/devgateway"
	"github.com/kpfoody/foody/internal/logging"
)

func newTestClient(t *testing.T, opts ...devgateway.Option) *Client {
	t.Helper()
	srv := httptest.NewServer(devgateway.New(opts...).Handler())
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, logging.NewNullLogger())
}

// signUp registers and signs in a fresh account, returning its account id.
func signUp(t *testing.T, c *Client) string {
	t.Helper()
	ctx := context.Background()
	acc, err := c.CreateAccount(ctx, "ann@example.com", "sup3rsecret", "Ann")
	require.NoError(t, err)
	_, err = c.StartSession(ctx, "ann@example.com", "sup3rsecret")
	require.NoError(t, err)
	return acc.ID
}

func TestClient_RegisterLoginFetchRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	accID := signUp(t, c)

	sess, err := c.GetActiveSession(ctx)
	require.NoError(t, err)
	require.Equal(t, accID, sess.AccountID)

	acc, err := c.GetAccount(ctx)
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", acc.Email)

	user, err := c.FindProfileByAccountID(ctx, accID)
	require.NoError(t, err)
	require.Equal(t, "Ann", user.Name)
	require.NotEmpty(t, user.Avatar)
}

func TestClient_NoSessionMapsToUnauthorized(t *testing.T) {
	c := newTestClient(t)

	_, err := c.GetActiveSession(context.Background())
	require.ErrorIs(t, err, gateway.ErrUnauthorized)
}

func TestClient_BadCredentialsMapToUnauthorized(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	signUp(t, c)

	_, err := c.StartSession(ctx, "ann@example.com", "wrong-password")
	require.ErrorIs(t, err, gateway.ErrUnauthorized)
}

func TestClient_EndSessionInvalidatesToken(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	signUp(t, c)

	require.NoError(t, c.EndSession(ctx))

	_, err := c.GetActiveSession(ctx)
	require.ErrorIs(t, err, gateway.ErrUnauthorized)
}

func TestClient_UnknownProfileMapsToNotFound(t *testing.T) {
	c := newTestClient(t)
	signUp(t, c)

	_, err := c.FindProfileByAccountID(context.Background(), "missing-account")
	require.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestClient_WriteProfileName(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	accID := signUp(t, c)

	name := "Annie"
	user, err := c.WriteProfile(ctx, accID, gateway.ProfileFields{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Annie", user.Name)
}

// The default schema has no bio attribute; the write must come back as a
// typed unknown-attribute error naming the field.
func TestClient_WriteProfileBioRejectedByDefaultSchema(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	accID := signUp(t, c)

	name, bio := "Ann", "chef in training"
	_, err := c.WriteProfile(ctx, accID, gateway.ProfileFields{Name: &name, Bio: &bio})

	var unknown *gateway.UnknownAttributeError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "bio", unknown.Field)
}

func TestClient_WriteProfileBioAcceptedWithWideSchema(t *testing.T) {
	c := newTestClient(t, devgateway.WithBioField())
	ctx := context.Background()
	accID := signUp(t, c)

	bio := "chef in training"
	user, err := c.WriteProfile(ctx, accID, gateway.ProfileFields{Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, "chef in training", user.Bio)
}

func TestClient_CatalogQueries(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	categories, err := c.ListCategories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	all, err := c.ListMenu(ctx, "", "")
	require.NoError(t, err)
	require.NotEmpty(t, all)

	burgers, err := c.ListMenu(ctx, "cat-burgers", "")
	require.NoError(t, err)
	require.NotEmpty(t, burgers)
	for _, item := range burgers {
		require.Equal(t, "cat-burgers", item.CategoryID)
	}

	matches, err := c.ListMenu(ctx, "", "pizza")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	item, err := c.GetMenuItem(ctx, all[0].ID)
	require.NoError(t, err)
	require.Equal(t, all[0].Name, item.Name)

	_, err = c.GetMenuItem(ctx, "itm-nope")
	require.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestClient_CreateOrder(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	order, err := c.CreateOrder(ctx, 20.50)
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.InDelta(t, 20.50, order.Amount, 1e-9)

	_, err = c.CreateOrder(ctx, 0)
	require.Error(t, err)
}

func TestClient_UnreachableGatewayMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(devgateway.New().Handler())
	srv.Close() // deliberately dead

	c := New(srv.URL, time.Second, logging.NewNullLogger())
	_, err := c.GetActiveSession(context.Background())
	require.ErrorIs(t, err, gateway.ErrUnavailable)
}
