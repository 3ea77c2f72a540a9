package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kpfoody/foody/internal/client/gateway"
	"github.com/kpfoody/foody/internal/client/models"
	"github.com/kpfoody/foody/internal/common"
	"github.com/kpfoody/foody/internal/logging"
)

// ---- fake gateway ----

// fakeIdentity implements gateway.Identity for unit tests. Call arguments
// are recorded so tests can assert on what the store actually sent.
type fakeIdentity struct {
	GetActiveSessionRet *models.Session
	GetActiveSessionErr error

	GetAccountRet *models.Account
	GetAccountErr error

	CreateAccountRet *models.Account
	CreateAccountErr error

	StartSessionRet *models.Session
	StartSessionErr error

	EndSessionErr error

	FindProfileRet *models.User
	FindProfileErr error

	// WriteProfileErrs is consumed one per call; nil entries mean success
	// returning WriteProfileRet.
	WriteProfileRet  *models.User
	WriteProfileErrs []error

	GetActiveSessionCalls int
	FindProfileCalls      int
	LastFindProfileID     string

	LastCreateEmail string
	LastCreateName  string
	LastStartEmail  string

	WriteProfileCalls  int
	LastWriteAccountID string
	WriteFieldsHistory []gateway.ProfileFields
}

func (f *fakeIdentity) CreateAccount(ctx context.Context, email, password, name string) (*models.Account, error) {
	f.LastCreateEmail = email
	f.LastCreateName = name
	return f.CreateAccountRet, f.CreateAccountErr
}

func (f *fakeIdentity) StartSession(ctx context.Context, email, password string) (*models.Session, error) {
	f.LastStartEmail = email
	return f.StartSessionRet, f.StartSessionErr
}

func (f *fakeIdentity) GetActiveSession(ctx context.Context) (*models.Session, error) {
	f.GetActiveSessionCalls++
	return f.GetActiveSessionRet, f.GetActiveSessionErr
}

func (f *fakeIdentity) GetAccount(ctx context.Context) (*models.Account, error) {
	return f.GetAccountRet, f.GetAccountErr
}

func (f *fakeIdentity) EndSession(ctx context.Context) error { return f.EndSessionErr }

func (f *fakeIdentity) FindProfileByAccountID(ctx context.Context, accountID string) (*models.User, error) {
	f.FindProfileCalls++
	f.LastFindProfileID = accountID
	return f.FindProfileRet, f.FindProfileErr
}

func (f *fakeIdentity) WriteProfile(ctx context.Context, accountID string, fields gateway.ProfileFields) (*models.User, error) {
	f.WriteProfileCalls++
	f.LastWriteAccountID = accountID
	f.WriteFieldsHistory = append(f.WriteFieldsHistory, fields)

	var err error
	if len(f.WriteProfileErrs) > 0 {
		err = f.WriteProfileErrs[0]
		f.WriteProfileErrs = f.WriteProfileErrs[1:]
	}
	if err != nil {
		return nil, err
	}
	return f.WriteProfileRet, nil
}

func testUser() *models.User {
	return &models.User{AccountID: "acc-1", Email: "ann@example.com", Name: "Ann", Avatar: "https://img/a.png"}
}

// blockingIdentity parks GetActiveSession until released, so a test can
// hold a fetch in flight while other operations queue behind it.
type blockingIdentity struct {
	fakeIdentity
	entered chan struct{}
	release chan struct{}
}

func (b *blockingIdentity) GetActiveSession(ctx context.Context) (*models.Session, error) {
	close(b.entered)
	<-b.release
	return b.fakeIdentity.GetActiveSession(ctx)
}

func newStore(f gateway.Identity) *SessionStore {
	return NewSessionStore(f, logging.NewNullLogger())
}

func str(s string) *string { return &s }

// seedSignedIn drives the store into a signed-in state through the public
// API so tests do not poke at internals.
func seedSignedIn(t *testing.T, s *SessionStore, f *fakeIdentity) {
	t.Helper()
	f.GetActiveSessionRet = &models.Session{ID: "s-1", AccountID: "acc-1"}
	f.FindProfileRet = testUser()
	s.FetchAuthenticatedUser(context.Background())
	require.True(t, s.State().Authenticated)
}

// ---- TESTS ----

func TestSessionStore_InitialStateIsLoadingSignedOut(t *testing.T) {
	s := newStore(&fakeIdentity{})
	st := s.State()
	require.True(t, st.Loading)
	require.False(t, st.Authenticated)
	require.Nil(t, st.User)
}

func TestFetchAuthenticatedUser_Success(t *testing.T) {
	f := &fakeIdentity{
		GetActiveSessionRet: &models.Session{ID: "s-1", AccountID: "acc-1"},
		FindProfileRet:      testUser(),
	}
	s := newStore(f)

	s.FetchAuthenticatedUser(context.Background())

	st := s.State()
	require.False(t, st.Loading)
	require.True(t, st.Authenticated)
	require.Equal(t, "Ann", st.User.Name)
	require.Equal(t, "acc-1", f.LastFindProfileID)
	require.Equal(t, 1, f.GetActiveSessionCalls)
	require.Equal(t, 1, f.FindProfileCalls)
}

func TestFetchAuthenticatedUser_NoSessionSignsOut(t *testing.T) {
	f := &fakeIdentity{GetActiveSessionErr: gateway.ErrUnauthorized}
	s := newStore(f)

	s.FetchAuthenticatedUser(context.Background())

	st := s.State()
	require.False(t, st.Loading)
	require.False(t, st.Authenticated)
	require.Nil(t, st.User)
	// No profile lookup without a session.
	require.Zero(t, f.FindProfileCalls)
}

func TestFetchAuthenticatedUser_NetworkFailureDegradesToSignedOut(t *testing.T) {
	f := &fakeIdentity{GetActiveSessionErr: gateway.ErrUnavailable}
	s := newStore(f)

	// Must not panic and must not surface the failure.
	s.FetchAuthenticatedUser(context.Background())

	st := s.State()
	require.False(t, st.Loading)
	require.False(t, st.Authenticated)
	require.Nil(t, st.User)
}

func TestFetchAuthenticatedUser_MissingProfileSignsOut(t *testing.T) {
	f := &fakeIdentity{
		GetActiveSessionRet: &models.Session{ID: "s-1", AccountID: "acc-1"},
		FindProfileErr:      gateway.ErrNotFound,
	}
	s := newStore(f)

	s.FetchAuthenticatedUser(context.Background())

	st := s.State()
	require.False(t, st.Authenticated)
	require.Nil(t, st.User)
}

func TestLogin_Success(t *testing.T) {
	f := &fakeIdentity{
		StartSessionRet: &models.Session{ID: "s-1", AccountID: "acc-1"},
		GetAccountRet:   &models.Account{ID: "acc-1", Email: "ann@example.com"},
		FindProfileRet:  testUser(),
	}
	s := newStore(f)

	require.NoError(t, s.Login(context.Background(), "ann@example.com", "secret"))

	st := s.State()
	require.True(t, st.Authenticated)
	require.Equal(t, "Ann", st.User.Name)
	require.False(t, st.Loading)
	require.Equal(t, "ann@example.com", f.LastStartEmail)
}

func TestLogin_FailurePropagatesAndLeavesStateUntouched(t *testing.T) {
	f := &fakeIdentity{StartSessionErr: gateway.ErrUnauthorized}
	s := newStore(f)

	err := s.Login(context.Background(), "ann@example.com", "wrong")
	require.ErrorIs(t, err, gateway.ErrUnauthorized)

	st := s.State()
	require.False(t, st.Loading)
	require.False(t, st.Authenticated)
	require.Nil(t, st.User)
}

func TestLogin_ProfileFetchFailurePropagates(t *testing.T) {
	f := &fakeIdentity{
		StartSessionRet: &models.Session{ID: "s-1", AccountID: "acc-1"},
		GetAccountErr:   gateway.ErrUnavailable,
	}
	s := newStore(f)

	err := s.Login(context.Background(), "ann@example.com", "secret")
	require.ErrorIs(t, err, gateway.ErrUnavailable)
	require.False(t, s.State().Authenticated)
	require.False(t, s.State().Loading)
}

func TestRegister_Success(t *testing.T) {
	f := &fakeIdentity{
		CreateAccountRet: &models.Account{ID: "acc-1", Email: "ann@example.com", Name: "Ann"},
		StartSessionRet:  &models.Session{ID: "s-1", AccountID: "acc-1"},
		GetAccountRet:    &models.Account{ID: "acc-1"},
		FindProfileRet:   testUser(),
	}
	s := newStore(f)

	require.NoError(t, s.Register(context.Background(), "ann@example.com", "secret", "Ann"))

	st := s.State()
	require.True(t, st.Authenticated)
	require.Equal(t, "Ann", f.LastCreateName)
}

func TestRegister_EmptyNameFailsValidation(t *testing.T) {
	f := &fakeIdentity{}
	s := newStore(f)

	err := s.Register(context.Background(), "ann@example.com", "secret", " ")
	require.ErrorIs(t, err, common.ErrValidation)
	// Nothing was sent remotely.
	require.Empty(t, f.LastCreateEmail)
}

func TestLogout_SuccessSignsOut(t *testing.T) {
	f := &fakeIdentity{}
	s := newStore(f)
	seedSignedIn(t, s, f)

	s.LogoutUser(context.Background())

	st := s.State()
	require.False(t, st.Loading)
	require.False(t, st.Authenticated)
	require.Nil(t, st.User)
}

func TestLogout_FailureKeepsLocalSession(t *testing.T) {
	f := &fakeIdentity{}
	s := newStore(f)
	seedSignedIn(t, s, f)

	f.EndSessionErr = gateway.ErrUnavailable
	s.LogoutUser(context.Background())

	st := s.State()
	require.False(t, st.Loading)
	require.True(t, st.Authenticated)
	require.Equal(t, "Ann", st.User.Name)
}

func TestUpdateUser_RequiresSignedInUser(t *testing.T) {
	f := &fakeIdentity{GetActiveSessionErr: gateway.ErrUnauthorized}
	s := newStore(f)
	s.FetchAuthenticatedUser(context.Background())

	err := s.UpdateUser(context.Background(), models.UserPatch{Name: str("Ann")})
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
	require.Zero(t, f.WriteProfileCalls)
}

func TestUpdateUser_SuccessCommitsRemoteResult(t *testing.T) {
	f := &fakeIdentity{}
	s := newStore(f)
	seedSignedIn(t, s, f)

	updated := testUser()
	updated.Name = "Annie"
	f.WriteProfileRet = updated

	require.NoError(t, s.UpdateUser(context.Background(), models.UserPatch{Name: str("Annie")}))

	st := s.State()
	require.Equal(t, "Annie", st.User.Name)
	require.Equal(t, "acc-1", f.LastWriteAccountID)
	require.Equal(t, 1, f.WriteProfileCalls)
}

// The remote schema has no bio attribute: exactly two write attempts occur
// (full payload, then name only) and the committed user keeps the bio the
// caller supplied.
func TestUpdateUser_BioFallbackRetainsLocalBio(t *testing.T) {
	f := &fakeIdentity{}
	s := newStore(f)
	seedSignedIn(t, s, f)

	remote := testUser()
	remote.Name = "Ann"
	remote.Bio = "" // remote cannot store a bio
	f.WriteProfileRet = remote
	f.WriteProfileErrs = []error{&gateway.UnknownAttributeError{Field: "bio"}}

	err := s.UpdateUser(context.Background(), models.UserPatch{Name: str("Ann"), Bio: str("x")})
	require.NoError(t, err)

	require.Equal(t, 2, f.WriteProfileCalls)
	require.NotNil(t, f.WriteFieldsHistory[0].Bio)
	require.Nil(t, f.WriteFieldsHistory[1].Bio, "retry must drop the bio field")

	st := s.State()
	require.Equal(t, "Ann", st.User.Name)
	require.Equal(t, "x", st.User.Bio)
	require.False(t, st.Loading)
}

func TestUpdateUser_UnknownAttributeWithoutBioPropagates(t *testing.T) {
	f := &fakeIdentity{}
	s := newStore(f)
	seedSignedIn(t, s, f)

	f.WriteProfileErrs = []error{&gateway.UnknownAttributeError{Field: "bio"}}

	err := s.UpdateUser(context.Background(), models.UserPatch{Name: str("Ann")})
	var unknown *gateway.UnknownAttributeError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, 1, f.WriteProfileCalls, "no retry when the caller sent no bio")
}

func TestUpdateUser_OtherFailureLeavesUserUnchanged(t *testing.T) {
	f := &fakeIdentity{}
	s := newStore(f)
	seedSignedIn(t, s, f)

	f.WriteProfileErrs = []error{gateway.ErrUnavailable}

	err := s.UpdateUser(context.Background(), models.UserPatch{Name: str("Annie"), Bio: str("x")})
	require.ErrorIs(t, err, gateway.ErrUnavailable)
	require.Equal(t, 1, f.WriteProfileCalls, "unavailable is not a schema mismatch, no retry")

	st := s.State()
	require.Equal(t, "Ann", st.User.Name)
	require.Empty(t, st.User.Bio)
	require.False(t, st.Loading)
}

func TestUpdateUser_TooShortNameFailsValidation(t *testing.T) {
	f := &fakeIdentity{}
	s := newStore(f)
	seedSignedIn(t, s, f)

	err := s.UpdateUser(context.Background(), models.UserPatch{Name: str("A")})
	require.ErrorIs(t, err, common.ErrValidation)
	require.Zero(t, f.WriteProfileCalls)
}

// A fetch still waiting on the gateway must not overwrite the state a login
// committed after it started: operations serialize, so the stale fetch
// finishes (and commits signed-out) before the login runs at all.
func TestFetchAuthenticatedUser_SlowFetchDoesNotOverwriteLogin(t *testing.T) {
	f := &blockingIdentity{
		fakeIdentity: fakeIdentity{
			GetActiveSessionErr: gateway.ErrUnauthorized,
			StartSessionRet:     &models.Session{ID: "s-1", AccountID: "acc-1"},
			GetAccountRet:       &models.Account{ID: "acc-1"},
			FindProfileRet:      testUser(),
		},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := newStore(f)

	fetchDone := make(chan struct{})
	go func() {
		defer close(fetchDone)
		s.FetchAuthenticatedUser(context.Background())
	}()
	<-f.entered

	loginDone := make(chan error, 1)
	go func() {
		loginDone <- s.Login(context.Background(), "ann@example.com", "secret")
	}()

	// Let the login queue behind the in-flight fetch, then unblock the
	// gateway so the fetch can finish.
	time.Sleep(20 * time.Millisecond)
	close(f.release)

	require.NoError(t, <-loginDone)
	<-fetchDone

	st := s.State()
	require.False(t, st.Loading)
	require.True(t, st.Authenticated, "login result must survive the stale fetch")
	require.Equal(t, "Ann", st.User.Name)
}

func TestSessionStore_SubscriberSeesLoadingFlipAndCommit(t *testing.T) {
	f := &fakeIdentity{GetActiveSessionErr: gateway.ErrUnauthorized}
	s := newStore(f)

	var seen []SessionState
	s.Subscribe(func(st SessionState) { seen = append(seen, st) })

	s.FetchAuthenticatedUser(context.Background())

	require.Len(t, seen, 2)
	require.True(t, seen[0].Loading)
	require.False(t, seen[1].Loading)
	require.False(t, seen[1].Authenticated)
}

// The invariant Loading==false => Authenticated == (User != nil) must hold
// on every published snapshot.
func TestSessionStore_SnapshotInvariant(t *testing.T) {
	f := &fakeIdentity{
		StartSessionRet: &models.Session{ID: "s-1", AccountID: "acc-1"},
		GetAccountRet:   &models.Account{ID: "acc-1"},
		FindProfileRet:  testUser(),
	}
	s := newStore(f)

	check := func(st SessionState) {
		if !st.Loading {
			require.Equal(t, st.Authenticated, st.User != nil)
		}
	}
	s.Subscribe(check)

	require.NoError(t, s.Login(context.Background(), "ann@example.com", "secret"))
	s.LogoutUser(context.Background())
	s.FetchAuthenticatedUser(context.Background())
}
