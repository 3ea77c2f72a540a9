// Package devgateway is an in-memory emulation of the hosted identity,
// catalog, and payment services the Foody client talks to. It exists for
// local development and for exercising the HTTP gateway client in tests;
// nothing here is production server logic.
//
// Accounts live in process memory with bcrypt-hashed passwords, sessions are
// jwt-signed bearer tokens that can be revoked, and the catalog is seeded
// from an embedded snapshot. By default the profile schema has no bio
// attribute, matching the hosted deployment and letting clients exercise the
// reduced-payload retry; WithBioField widens the schema.
package devgateway

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kpfoody/foody/internal/client/models"
	"github.com/kpfoody/foody/internal/common"
	"github.com/kpfoody/foody/internal/logging"
)

type account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
}

// Server holds the emulator state. All maps are guarded by mu.
type Server struct {
	log          logging.Logger
	jwtSecret    []byte
	tokenTTL     time.Duration
	bioSupported bool

	mu         sync.Mutex
	accounts   map[string]*account // by account id
	emails     map[string]string   // email -> account id
	profiles   map[string]*models.User
	sessions   map[string]string // session id -> account id
	categories []models.Category
	menu       []models.MenuItem
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithBioField makes the profile schema accept the bio attribute. The
// default schema rejects it with an unknown_attribute error.
func WithBioField() Option {
	return func(s *Server) { s.bioSupported = true }
}

// WithTokenTTL overrides the session token validity (default 24h).
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokenTTL = d }
}

// New returns a seeded emulator with a random signing secret.
func New(opts ...Option) *Server {
	secret, err := common.MakeRandHexString(32)
	if err != nil {
		panic(err)
	}
	s := &Server{
		log:       logging.NewNullLogger(),
		jwtSecret: []byte(secret),
		tokenTTL:  24 * time.Hour,
		accounts:  make(map[string]*account),
		emails:    make(map[string]string),
		profiles:  make(map[string]*models.User),
		sessions:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.categories, s.menu = seedCatalog()
	return s
}

// Handler returns the HTTP surface of the emulator.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Post("/accounts", s.handleCreateAccount)
		r.Post("/sessions", s.handleStartSession)
		r.Get("/sessions/current", s.handleGetSession)
		r.Delete("/sessions/current", s.handleEndSession)
		r.Get("/account", s.handleGetAccount)
		r.Get("/profiles/{accountID}", s.handleGetProfile)
		r.Patch("/profiles/{accountID}", s.handleWriteProfile)
		r.Get("/categories", s.handleListCategories)
		r.Get("/menu", s.handleListMenu)
		r.Get("/menu/{itemID}", s.handleGetMenuItem)
		r.Post("/payments/orders", s.handleCreateOrder)
	})
	return r
}

// ---- helpers ----

type apiError struct {
	Type    string `json:"type"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType, field, message string) {
	writeJSON(w, status, apiError{Type: errType, Field: field, Message: message})
}

// avatarURL mirrors the initials-avatar URLs the hosted service hands out.
func avatarURL(name string) string {
	return "https://cloud.foody.dev/v1/avatars/initials?name=" + url.QueryEscape(name)
}

// authAccount resolves the bearer token on r to a live session. It returns
// false after writing a 401 when the token is missing, invalid, expired, or
// revoked.
func (s *Server) authAccount(w http.ResponseWriter, r *http.Request) (accountID, sessionID string, ok bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "", "missing bearer token")
		return "", "", false
	}

	claims, err := parseSessionToken(token, s.jwtSecret)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "", "invalid session token")
		return "", "", false
	}

	s.mu.Lock()
	live := s.sessions[claims.SessionID] == claims.AccountID
	s.mu.Unlock()
	if !live {
		writeError(w, http.StatusUnauthorized, "unauthorized", "", "session terminated")
		return "", "", false
	}
	return claims.AccountID, claims.SessionID, true
}

// ---- identity handlers ----

type createAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "", "malformed JSON body")
		return
	}
	switch {
	case !strings.Contains(req.Email, "@"):
		writeError(w, http.StatusBadRequest, "validation", "email", "invalid email address")
		return
	case len(req.Password) < 8:
		writeError(w, http.StatusBadRequest, "validation", "password", "password must be at least 8 characters")
		return
	case strings.TrimSpace(req.Name) == "":
		writeError(w, http.StatusBadRequest, "validation", "name", "name must not be empty")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "", "hashing failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.emails[req.Email]; exists {
		writeError(w, http.StatusConflict, "conflict", "email", "account already exists")
		return
	}

	acc := &account{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	s.accounts[acc.ID] = acc
	s.emails[acc.Email] = acc.ID
	s.profiles[acc.ID] = &models.User{
		AccountID: acc.ID,
		Email:     acc.Email,
		Name:      acc.Name,
		Avatar:    avatarURL(acc.Name),
	}

	s.log.Info(r.Context(), "account created", "account_id", acc.ID)
	writeJSON(w, http.StatusCreated, models.Account{ID: acc.ID, Email: acc.Email, Name: acc.Name})
}

type startSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
	Token     string `json:"token,omitempty"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "", "malformed JSON body")
		return
	}

	s.mu.Lock()
	accID, exists := s.emails[req.Email]
	var acc *account
	if exists {
		acc = s.accounts[accID]
	}
	s.mu.Unlock()

	if acc == nil || bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "", "invalid credentials")
		return
	}

	sessID := uuid.NewString()
	token, err := newSessionToken(sessID, acc.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "", "token signing failed")
		return
	}

	s.mu.Lock()
	s.sessions[sessID] = acc.ID
	s.mu.Unlock()

	s.log.Info(r.Context(), "session started", "account_id", acc.ID)
	writeJSON(w, http.StatusCreated, sessionResponse{ID: sessID, AccountID: acc.ID, Token: token})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	accountID, sessionID, ok := s.authAccount(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: sessionID, AccountID: accountID})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	_, sessionID, ok := s.authAccount(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	accountID, _, ok := s.authAccount(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	acc := s.accounts[accountID]
	s.mu.Unlock()
	if acc == nil {
		writeError(w, http.StatusNotFound, "not_found", "", "account not found")
		return
	}
	writeJSON(w, http.StatusOK, models.Account{ID: acc.ID, Email: acc.Email, Name: acc.Name})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.authAccount(w, r); !ok {
		return
	}
	accountID := chi.URLParam(r, "accountID")

	s.mu.Lock()
	profile := s.profiles[accountID]
	s.mu.Unlock()
	if profile == nil {
		writeError(w, http.StatusNotFound, "not_found", "", "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleWriteProfile(w http.ResponseWriter, r *http.Request) {
	callerID, _, ok := s.authAccount(w, r)
	if !ok {
		return
	}
	accountID := chi.URLParam(r, "accountID")
	if accountID != callerID {
		writeError(w, http.StatusForbidden, "forbidden", "", "cannot write another account's profile")
		return
	}

	// Decode into a raw map so unknown attributes are detected the way the
	// hosted schema rejects them, not silently dropped.
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "", "malformed JSON body")
		return
	}
	for key := range fields {
		if key == "name" || (key == "bio" && s.bioSupported) {
			continue
		}
		writeError(w, http.StatusBadRequest, "unknown_attribute", key, "unknown attribute: "+key)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	profile := s.profiles[accountID]
	if profile == nil {
		writeError(w, http.StatusNotFound, "not_found", "", "profile not found")
		return
	}

	if raw, ok := fields["name"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil || strings.TrimSpace(name) == "" {
			writeError(w, http.StatusBadRequest, "validation", "name", "name must be a non-empty string")
			return
		}
		profile.Name = name
		profile.Avatar = avatarURL(name)
	}
	if raw, ok := fields["bio"]; ok {
		var bio string
		if err := json.Unmarshal(raw, &bio); err != nil {
			writeError(w, http.StatusBadRequest, "validation", "bio", "bio must be a string")
			return
		}
		profile.Bio = bio
	}

	writeJSON(w, http.StatusOK, profile)
}
