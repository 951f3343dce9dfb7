package project

import (
	"time"

	"github.com/google/uuid"
)

// DefaultName is used when a project is created without a name.
const DefaultName = "Untitled Project"

// Project is a named collection of components owned by one user.
// Components holds owned component ids in insertion order; the order is
// display/generation order.
type Project struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Components  []string  `json:"components"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateFields is a partial update; nil fields retain their prior value.
type UpdateFields struct {
	Name        *string
	Description *string
}
