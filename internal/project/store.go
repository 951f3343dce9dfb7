package project

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound covers both a missing project and a project owned by a
// different user; callers cannot distinguish the two.
var ErrNotFound = errors.New("project not found")

// Store defines project persistence. All operations are scoped to the
// owning user.
type Store interface {
	List(ctx context.Context, userID uuid.UUID) ([]Project, error)
	Create(ctx context.Context, userID uuid.UUID, name, description string) (*Project, error)
	Get(ctx context.Context, userID, projectID uuid.UUID) (*Project, error)
	Update(ctx context.Context, userID, projectID uuid.UUID, fields UpdateFields) (*Project, error)
	// Delete removes the project and every component referencing it as one
	// atomic operation.
	Delete(ctx context.Context, userID, projectID uuid.UUID) error
}
