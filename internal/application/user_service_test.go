package application

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-todo-api/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-api/internal/domain/repository"
	"github.com/oksasatya/go-todo-api/pkg/helpers"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]entity.User        // by id
	emails map[string]string             // email -> id
	grants map[string][]entity.TokenGrant // by user id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]entity.User),
		emails: make(map[string]string),
		grants: make(map[string][]entity.TokenGrant),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dup := f.emails[u.Email]; dup {
		return repo.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	f.users[u.ID] = *u
	f.emails[u.Email] = u.ID
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) AppendToken(_ context.Context, userID string, grant entity.TokenGrant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.grants[userID] = append(f.grants[userID], grant)
	return nil
}

func (f *fakeUserRepo) GetByToken(_ context.Context, userID, token, access string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.grants[userID] {
		if g.Token == token && g.Access == access {
			u := f.users[userID]
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func newUserService(f *fakeUserRepo) *UserService {
	return NewUserService(f, helpers.NewJWTManager("test-secret", 0), nil, nil)
}

func TestRegister_InvalidInput(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	svc := newUserService(f)

	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"bad email", "not-an-email", "password123", ErrInvalidEmail},
		{"empty email", "", "password123", ErrInvalidEmail},
		{"short password", "a@b.com", "12345", ErrShortPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tc.email, tc.password)
			require.ErrorIs(t, err, tc.want)
		})
	}
	require.Empty(t, f.users, "failed registrations must persist nothing")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	svc := newUserService(f)

	_, _, err := svc.Register(context.Background(), "dup@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "dup@example.com", "different-pass")
	require.ErrorIs(t, err, ErrDuplicateEmail)
	require.Len(t, f.users, 1)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	svc := newUserService(f)

	u, token, err := svc.Register(context.Background(), "  user@example.com ", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "user@example.com", u.Email, "email is trimmed before persisting")
	require.NotEmpty(t, token)

	// stored as a salted hash, never plaintext
	stored := f.users[u.ID]
	require.NotEqual(t, "password123", stored.Password)
	require.True(t, helpers.CompareHashAndPassword(stored.Password, "password123"))

	pub := u.Public()
	require.Equal(t, u.ID, pub.ID)
	require.Equal(t, u.Email, pub.Email)
}

func TestIssueAuthToken_AppendsMonotonically(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	svc := newUserService(f)

	u, _, err := svc.Register(context.Background(), "tokens@example.com", "password123")
	require.NoError(t, err)
	require.Len(t, f.grants[u.ID], 1)

	second, err := svc.IssueAuthToken(context.Background(), u)
	require.NoError(t, err)
	require.NotEmpty(t, second)
	require.Len(t, f.grants[u.ID], 2)
	for _, g := range f.grants[u.ID] {
		require.Equal(t, entity.AccessAuth, g.Access)
	}
}

func TestFindByToken(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	svc := newUserService(f)

	u, token, err := svc.Register(context.Background(), "find@example.com", "password123")
	require.NoError(t, err)

	got, err := svc.FindByToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, u.Email, got.Email)
}

func TestFindByToken_BadSignature(t *testing.T) {
	t.Parallel()

	svc := newUserService(newFakeUserRepo())

	_, err := svc.FindByToken(context.Background(), "garbage.token.value")
	require.ErrorIs(t, err, ErrInvalidToken)

	// signed by someone else's secret
	other := helpers.NewJWTManager("other-secret", 0)
	forged, err := other.GenerateAuthToken("some-user", entity.AccessAuth)
	require.NoError(t, err)
	_, err = svc.FindByToken(context.Background(), forged)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestFindByToken_ValidSignatureNoGrant(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	svc := newUserService(f)

	_, _, err := svc.Register(context.Background(), "revoked@example.com", "password123")
	require.NoError(t, err)

	// a well-signed token with no stored grant, e.g. the user record is gone
	stray, err := svc.JWT.GenerateAuthToken(uuid.NewString(), entity.AccessAuth)
	require.NoError(t, err)

	_, err = svc.FindByToken(context.Background(), stray)
	require.ErrorIs(t, err, ErrNoTokenGrant)
}

func TestFindByToken_WrongAccessTag(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	svc := newUserService(f)

	u, _, err := svc.Register(context.Background(), "tag@example.com", "password123")
	require.NoError(t, err)

	// well-signed but carrying a different access tag: the signature holds,
	// so the failure is the missing grant, not an invalid token
	tok, err := svc.JWT.GenerateAuthToken(u.ID, "refresh")
	require.NoError(t, err)

	_, err = svc.FindByToken(context.Background(), tok)
	require.ErrorIs(t, err, ErrNoTokenGrant)
}
