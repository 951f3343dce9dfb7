package component

import (
	"time"

	"github.com/google/uuid"
)

// Component is a typed UI element belonging to one project. Type is a
// free-form tag; the generator recognizes header, hero, text and form and
// renders nothing for anything else.
type Component struct {
	ID         uuid.UUID      `json:"id"`
	ProjectID  uuid.UUID      `json:"project_id"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Content    string         `json:"content"`
	Position   Position       `json:"position"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Position is the visual editor placement; generation ignores it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AddParams carries the fields for creating a component. Nil Properties and
// Position get their defaults (empty mapping, origin).
type AddParams struct {
	Type       string
	Properties map[string]any
	Content    string
	Position   *Position
}

// UpdateFields is a partial update; nil fields retain their prior value.
type UpdateFields struct {
	Properties map[string]any
	Content    *string
	Position   *Position
}
