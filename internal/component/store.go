package component

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound means the component does not exist within the given project.
// A missing or unowned parent project surfaces as project.ErrNotFound.
var ErrNotFound = errors.New("component not found")

// Store defines component persistence. Mutations keep the parent project's
// component-id list in sync atomically.
type Store interface {
	Add(ctx context.Context, userID, projectID uuid.UUID, params AddParams) (*Component, error)
	Update(ctx context.Context, userID, projectID, componentID uuid.UUID, fields UpdateFields) (*Component, error)
	Delete(ctx context.Context, userID, projectID, componentID uuid.UUID) error
	// ListByProject returns the project's components in unspecified order;
	// callers that need display order arrange them by the project's
	// component-id list.
	ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]Component, error)
}
