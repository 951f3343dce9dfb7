package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/buildforge/buildforge/internal/database"
)

// Repository handles project persistence in Postgres
type Repository struct {
	db *bun.DB
}

var _ Store = (*Repository)(nil)

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// List returns all projects owned by the user, in arbitrary order
func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]Project, error) {
	var dbProjects []database.Project
	err := r.db.NewSelect().
		Model(&dbProjects).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]Project, 0, len(dbProjects))
	for i := range dbProjects {
		projects = append(projects, *mapDBProjectToModel(&dbProjects[i]))
	}
	return projects, nil
}

// Create inserts a new project with an empty component list
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, name, description string) (*Project, error) {
	now := time.Now()
	dbProject := &database.Project{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Components:  []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.NewInsert().
		Model(dbProject).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return mapDBProjectToModel(dbProject), nil
}

// Get retrieves a project by id, scoped to the owning user
func (r *Repository) Get(ctx context.Context, userID, projectID uuid.UUID) (*Project, error) {
	dbProject := new(database.Project)
	err := r.db.NewSelect().
		Model(dbProject).
		Where("id = ?", projectID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return mapDBProjectToModel(dbProject), nil
}

// Update applies a partial update; omitted fields retain their prior value
func (r *Repository) Update(ctx context.Context, userID, projectID uuid.UUID, fields UpdateFields) (*Project, error) {
	q := r.db.NewUpdate().
		Model((*database.Project)(nil)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", projectID).
		Where("user_id = ?", userID)

	if fields.Name != nil {
		q = q.Set("name = ?", *fields.Name)
	}
	if fields.Description != nil {
		q = q.Set("description = ?", *fields.Description)
	}

	result, err := q.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.Get(ctx, userID, projectID)
}

// Delete removes the project and cascades to all its components. Both
// deletions run in one transaction so the caller never observes orphans.
func (r *Repository) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewDelete().
			Model((*database.Project)(nil)).
			Where("id = ?", projectID).
			Where("user_id = ?", userID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrNotFound
		}

		_, err = tx.NewDelete().
			Model((*database.Component)(nil)).
			Where("project_id = ?", projectID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete project components: %w", err)
		}

		return nil
	})
}

// mapDBProjectToModel converts database model to domain model
func mapDBProjectToModel(dbp *database.Project) *Project {
	components := dbp.Components
	if components == nil {
		components = []string{}
	}
	return &Project{
		ID:          dbp.ID,
		UserID:      dbp.UserID,
		Name:        dbp.Name,
		Description: dbp.Description,
		Components:  components,
		CreatedAt:   dbp.CreatedAt,
		UpdatedAt:   dbp.UpdatedAt,
	}
}
