package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/buildforge/buildforge/internal/user"
)

// TokenService defines the interface for token creation and validation.
type TokenService interface {
	CreateToken(userID uuid.UUID, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserStore is the slice of user persistence the auth service needs.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, name string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
