// Package httpgw implements the gateway interfaces over the hosted services'
// HTTP/JSON API. A single Client serves identity, catalog, and payment
// calls and owns the bearer token of the active session.
package httpgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/kpfoody/foody/internal/client/gateway"
	"github.com/kpfoody/foody/internal/client/models"
	"github.com/kpfoody/foody/internal/logging"
)

// Compile-time interface checks.
var (
	_ gateway.Identity = (*Client)(nil)
	_ gateway.Catalog  = (*Client)(nil)
	_ gateway.Payment  = (*Client)(nil)
)

// Client is an HTTP gateway client. It is safe for concurrent use; the
// session token set by StartSession is attached to every subsequent request
// until EndSession clears it.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     logging.Logger

	mu    sync.Mutex
	token string
}

// New returns a client for the gateway at baseURL (no trailing slash
// required). timeout bounds each request; the stores themselves impose none.
func New(baseURL string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		log:     log.With("component", "httpgw"),
	}
}

func (c *Client) sessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) setSessionToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// do performs one JSON round trip. A nil out discards the response body.
// Transport-level failures map to gateway.ErrUnavailable; HTTP error
// statuses map through mapError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.sessionToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", gateway.ErrUnavailable, err)
	}
	return nil
}

type apiError struct {
	Type    string `json:"type"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// mapError translates an HTTP error response into the gateway's error
// vocabulary. Classification prefers the machine-readable error type over
// status codes so it stays independent of exact message strings.
func (c *Client) mapError(resp *http.Response) error {
	var e apiError
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&e)

	switch {
	case e.Type == "unknown_attribute":
		return &gateway.UnknownAttributeError{Field: e.Field}
	case resp.StatusCode == http.StatusUnauthorized:
		return gateway.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return gateway.ErrNotFound
	}
	if e.Message != "" {
		return fmt.Errorf("gateway: %s", e.Message)
	}
	return fmt.Errorf("gateway: %s", resp.Status)
}

// ---- identity ----

type sessionResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
	Token     string `json:"token"`
}

func (c *Client) CreateAccount(ctx context.Context, email, password, name string) (*models.Account, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	var acc models.Account
	if err := c.do(ctx, http.MethodPost, "/v1/accounts", nil, body, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c *Client) StartSession(ctx context.Context, email, password string) (*models.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/sessions", nil, body, &resp); err != nil {
		return nil, err
	}
	c.setSessionToken(resp.Token)
	return &models.Session{ID: resp.ID, AccountID: resp.AccountID}, nil
}

func (c *Client) GetActiveSession(ctx context.Context) (*models.Session, error) {
	var resp sessionResponse
	if err := c.do(ctx, http.MethodGet, "/v1/sessions/current", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &models.Session{ID: resp.ID, AccountID: resp.AccountID}, nil
}

func (c *Client) GetAccount(ctx context.Context) (*models.Account, error) {
	var acc models.Account
	if err := c.do(ctx, http.MethodGet, "/v1/account", nil, nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c *Client) EndSession(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/v1/sessions/current", nil, nil, nil); err != nil {
		return err
	}
	c.setSessionToken("")
	return nil
}

func (c *Client) FindProfileByAccountID(ctx context.Context, accountID string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/v1/profiles/"+url.PathEscape(accountID), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) WriteProfile(ctx context.Context, accountID string, fields gateway.ProfileFields) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPatch, "/v1/profiles/"+url.PathEscape(accountID), nil, fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ---- catalog ----

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, http.MethodGet, "/v1/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListMenu(ctx context.Context, categoryID, query string) ([]models.MenuItem, error) {
	q := url.Values{}
	if categoryID != "" {
		q.Set("category", categoryID)
	}
	if query != "" {
		q.Set("q", query)
	}
	var out []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/v1/menu", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/v1/menu/"+url.PathEscape(id), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ---- payment ----

type orderResponse struct {
	Success bool          `json:"success"`
	Order   *models.Order `json:"order"`
	Error   string        `json:"error"`
}

func (c *Client) CreateOrder(ctx context.Context, amount float64) (*models.Order, error) {
	body := map[string]float64{"amount": amount}
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/v1/payments/orders", nil, body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Order == nil {
		return nil, fmt.Errorf("gateway: payment rejected: %s", resp.Error)
	}
	return resp.Order, nil
}
