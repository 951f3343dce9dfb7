package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the database model for registered users. Rows are only ever
// inserted; nothing in the system mutates or deletes a user after signup.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Name         string    `bun:"name,notnull,default:''"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Project is the database model for builder projects. Components holds the
// ids of owned components in insertion order; it is kept in sync with the
// components table inside the same transaction on every mutation.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	UserID      uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description,notnull,default:''"`
	Components  []string  `bun:"components,array,type:text[]"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Component is the database model for UI components placed on a project.
type Component struct {
	bun.BaseModel `bun:"table:components,alias:c"`

	ID         uuid.UUID      `bun:"id,pk,type:uuid"`
	ProjectID  uuid.UUID      `bun:"project_id,notnull,type:uuid"`
	Type       string         `bun:"type,notnull"`
	Properties map[string]any `bun:"properties,type:jsonb"`
	Content    string         `bun:"content,notnull,default:''"`
	Position   Position       `bun:"position,type:jsonb"`
	CreatedAt  time.Time      `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt  time.Time      `bun:"updated_at,notnull,default:current_timestamp"`
}

// Position is the editor canvas placement of a component. It is carried
// through storage untouched; code generation ignores it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
