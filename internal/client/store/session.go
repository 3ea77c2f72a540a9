// Package store contains the client-side application state: the session
// store tracking authentication against the identity/profile gateway, and
// the cart store aggregating the in-progress order. Each store owns a single
// snapshot of state, mutates it only through its own operations, and pushes
// every committed snapshot to subscribers.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kpfoody/foody/internal/client/gateway"
	"github.com/kpfoody/foody/internal/client/models"
	"github.com/kpfoody/foody/internal/common"
	"github.com/kpfoody/foody/internal/logging"
)

// SessionState is the full observable state of the session store.
//
// Invariant: whenever Loading is false, Authenticated == (User != nil).
// While an operation is in flight, Loading is true and the other two fields
// keep their pre-transition values; no partial update is ever visible.
type SessionState struct {
	Authenticated bool
	User          *models.User
	Loading       bool
}

// SessionStore owns authentication state and the current user profile.
//
// Operations serialize on a single in-flight lock, so a slow
// FetchAuthenticatedUser can never overwrite the state a just-finished Login
// committed. Snapshot reads do not block in-flight operations.
type SessionStore struct {
	identity gateway.Identity
	log      logging.Logger

	opMu sync.Mutex // serializes operations end to end, remote calls included

	mu    sync.RWMutex // guards state and subs
	state SessionState
	subs  []func(SessionState)
}

// NewSessionStore returns a store in its initial state: signed out, with
// Loading set pending the first FetchAuthenticatedUser.
func NewSessionStore(identity gateway.Identity, log logging.Logger) *SessionStore {
	return &SessionStore{
		identity: identity,
		log:      log.With("component", "session-store"),
		state:    SessionState{Loading: true},
	}
}

// State returns the current snapshot. The contained User is a copy and safe
// to retain.
func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// Subscribe registers fn to be called with a snapshot after every commit,
// including Loading flips. Callbacks run synchronously on the operation's
// goroutine and must not call back into the store.
func (s *SessionStore) Subscribe(fn func(SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// FetchAuthenticatedUser queries the gateway for an active session and, if
// one exists, the associated profile. Any failure degrades to the signed-out
// state; this operation never returns an error to its caller.
func (s *SessionStore) FetchAuthenticatedUser(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading(true)

	sess, err := s.identity.GetActiveSession(ctx)
	if err != nil || sess == nil {
		if err != nil && !errors.Is(err, gateway.ErrUnauthorized) {
			s.log.Warn(ctx, "session check failed, treating as signed out", "error", err)
		}
		s.commit(SessionState{})
		return
	}

	user, err := s.identity.FindProfileByAccountID(ctx, sess.AccountID)
	if err != nil || user == nil {
		if err != nil && !errors.Is(err, gateway.ErrNotFound) {
			s.log.Warn(ctx, "profile lookup failed, treating as signed out", "error", err)
		}
		s.commit(SessionState{})
		return
	}

	s.commit(SessionState{Authenticated: true, User: user})
}

// Login starts a remote session with the given credentials and loads the
// profile. On any failure the previous auth state stays untouched and the
// error is returned for the UI to surface. Inputs are assumed non-empty;
// validation is the caller's responsibility.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading(true)

	if _, err := s.identity.StartSession(ctx, email, password); err != nil {
		s.setLoading(false)
		return fmt.Errorf("start session: %w", err)
	}
	return s.commitProfile(ctx)
}

// Register creates a remote account plus profile, then behaves like a
// successful Login. The same propagation contract applies on failure.
func (s *SessionStore) Register(ctx context.Context, email, password, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading(true)

	if _, err := s.identity.CreateAccount(ctx, email, password, name); err != nil {
		s.setLoading(false)
		return fmt.Errorf("create account: %w", err)
	}
	if _, err := s.identity.StartSession(ctx, email, password); err != nil {
		s.setLoading(false)
		return fmt.Errorf("start session: %w", err)
	}
	return s.commitProfile(ctx)
}

// LogoutUser requests remote session termination. Logout is not optimistic:
// on failure the local state is left unchanged and the user stays signed in,
// with the failure absorbed and logged. Loading is reset either way.
func (s *SessionStore) LogoutUser(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading(true)

	if err := s.identity.EndSession(ctx); err != nil {
		s.log.Warn(ctx, "logout failed, keeping local session", "error", err)
		s.setLoading(false)
		return
	}
	s.commit(SessionState{})
}

// UpdateUser sends the supplied profile fields to the gateway. If the remote
// schema rejects the optional bio field, the write is retried once without
// it; the committed user then keeps the caller-supplied bio regardless, so
// the UI never appears to lose an edit the user just made. Any other failure
// is returned with the auth state unchanged.
func (s *SessionStore) UpdateUser(ctx context.Context, patch models.UserPatch) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	cur := s.State()
	if cur.User == nil {
		return common.ErrNotAuthenticated
	}
	if patch.Name != nil {
		if err := validateName(*patch.Name); err != nil {
			return err
		}
	}

	s.setLoading(true)

	fields := gateway.ProfileFields{Name: patch.Name, Bio: patch.Bio}
	remote, err := s.identity.WriteProfile(ctx, cur.User.AccountID, fields)

	var unknown *gateway.UnknownAttributeError
	if err != nil && patch.Bio != nil && errors.As(err, &unknown) && unknown.Field == "bio" {
		s.log.Info(ctx, "remote schema has no bio field, retrying without it")
		remote, err = s.identity.WriteProfile(ctx, cur.User.AccountID, gateway.ProfileFields{Name: patch.Name})
	}
	if err != nil {
		s.setLoading(false)
		return fmt.Errorf("write profile: %w", err)
	}

	merged := *remote
	if patch.Bio != nil {
		// The client is authoritative for bio even when the remote cannot
		// persist it.
		merged.Bio = *patch.Bio
	}
	s.commit(SessionState{Authenticated: true, User: &merged})
	return nil
}

// commitProfile loads the signed-in account's profile and commits the
// signed-in state. Caller holds opMu and has set Loading.
func (s *SessionStore) commitProfile(ctx context.Context) error {
	acct, err := s.identity.GetAccount(ctx)
	if err != nil {
		s.setLoading(false)
		return fmt.Errorf("get account: %w", err)
	}
	user, err := s.identity.FindProfileByAccountID(ctx, acct.ID)
	if err == nil && user == nil {
		err = gateway.ErrNotFound
	}
	if err != nil {
		s.setLoading(false)
		return fmt.Errorf("find profile: %w", err)
	}
	s.commit(SessionState{Authenticated: true, User: user})
	return nil
}

// commit replaces the snapshot (Loading false) and notifies subscribers.
func (s *SessionStore) commit(next SessionState) {
	next.Loading = false
	s.publish(next)
}

// setLoading flips only the busy flag, keeping the pre-transition auth
// fields visible.
func (s *SessionStore) setLoading(v bool) {
	s.mu.RLock()
	next := s.state
	s.mu.RUnlock()
	next.Loading = v
	s.publish(next)
}

func (s *SessionStore) publish(next SessionState) {
	next = cloneState(next)
	s.mu.Lock()
	s.state = next
	subs := make([]func(SessionState), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

func cloneState(st SessionState) SessionState {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

func validateName(name string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", common.ErrValidation)
	}
	return nil
}
