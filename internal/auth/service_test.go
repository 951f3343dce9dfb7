package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildforge/buildforge/internal/user"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	byEmail map[string]*user.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*user.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, email, passwordHash, name string) (*user.User, error) {
	if _, exists := s.byEmail[email]; exists {
		return nil, user.ErrDuplicateEmail
	}
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.byEmail[email] = u
	return u, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserStore) {
	t.Helper()
	tokenService, err := NewPasetoService(testKey())
	require.NoError(t, err)
	store := newFakeUserStore()
	return NewService(store, tokenService, time.Hour), store
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and issues token", func(t *testing.T) {
		svc, store := newTestService(t)

		u, token, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.Equal(t, "Alice", u.Name)
		assert.NotEmpty(t, token)

		// Stored hash must not be the plaintext password
		stored := store.byEmail["alice@example.com"]
		assert.NotEqual(t, "password123", stored.PasswordHash)
		assert.Contains(t, stored.PasswordHash, "$argon2id$")

		claims, err := svc.tokenService.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, u.ID.String(), claims.Subject)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, store := newTestService(t)

		_, _, err := svc.Register(ctx, "bob@example.com", "password123", "Bob")
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, "bob@example.com", "different-pass", "Bob 2")
		assert.ErrorIs(t, err, user.ErrDuplicateEmail)
		assert.Len(t, store.byEmail, 1)
	})

	t.Run("validates input", func(t *testing.T) {
		svc, _ := newTestService(t)

		cases := []struct {
			name     string
			email    string
			password string
			wantErr  error
		}{
			{"missing email", "", "password123", ErrEmailRequired},
			{"malformed email", "not-an-email", "password123", ErrInvalidEmailFormat},
			{"missing password", "carol@example.com", "", ErrPasswordRequired},
			{"short password", "carol@example.com", "short", ErrPasswordTooShort},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, _, err := svc.Register(ctx, tc.email, tc.password, "Carol")
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("returns user and token for valid credentials", func(t *testing.T) {
		svc, _ := newTestService(t)

		registered, _, err := svc.Register(ctx, "dave@example.com", "password123", "Dave")
		require.NoError(t, err)

		u, token, err := svc.Login(ctx, "dave@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, _, err := svc.Register(ctx, "erin@example.com", "password123", "Erin")
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, "erin@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, _, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects empty credentials", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, _, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_PasswordHashing(t *testing.T) {
	svc, _ := newTestService(t)

	hash, err := svc.hashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, svc.verifyPassword(hash, "correct horse battery staple"))
	assert.False(t, svc.verifyPassword(hash, "incorrect horse"))
	assert.False(t, svc.verifyPassword("not-a-valid-hash", "anything"))

	// Same password hashes differently thanks to the random salt
	hash2, err := svc.hashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}
