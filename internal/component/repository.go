package component

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/buildforge/buildforge/internal/database"
	"github.com/buildforge/buildforge/internal/project"
)

// Repository handles component persistence in Postgres. Every mutation that
// touches both the component row and the parent project's component-id list
// runs in a single transaction.
type Repository struct {
	db *bun.DB
}

var _ Store = (*Repository)(nil)

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Add creates a component and appends its id to the parent project's list
func (r *Repository) Add(ctx context.Context, userID, projectID uuid.UUID, params AddParams) (*Component, error) {
	properties := params.Properties
	if properties == nil {
		properties = map[string]any{}
	}
	position := database.Position{}
	if params.Position != nil {
		position = database.Position{X: params.Position.X, Y: params.Position.Y}
	}

	now := time.Now()
	dbComponent := &database.Component{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Type:       params.Type,
		Properties: properties,
		Content:    params.Content,
		Position:   position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := projectOwned(ctx, tx, userID, projectID); err != nil {
			return err
		}

		if _, err := tx.NewInsert().Model(dbComponent).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert component: %w", err)
		}

		_, err := tx.NewUpdate().
			Model((*database.Project)(nil)).
			Set("components = array_append(components, ?)", dbComponent.ID.String()).
			Set("updated_at = ?", now).
			Where("id = ?", projectID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to append component to project: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return mapDBComponentToModel(dbComponent), nil
}

// Update applies a partial update; omitted fields retain their prior value.
// The parent project's updated_at is bumped in the same transaction so the
// project timestamp always reflects its latest component state.
func (r *Repository) Update(ctx context.Context, userID, projectID, componentID uuid.UUID, fields UpdateFields) (*Component, error) {
	var updated *Component

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := projectOwned(ctx, tx, userID, projectID); err != nil {
			return err
		}

		now := time.Now()
		q := tx.NewUpdate().
			Model((*database.Component)(nil)).
			Set("updated_at = ?", now).
			Where("id = ?", componentID).
			Where("project_id = ?", projectID)

		if fields.Properties != nil {
			q = q.Set("properties = ?", fields.Properties)
		}
		if fields.Content != nil {
			q = q.Set("content = ?", *fields.Content)
		}
		if fields.Position != nil {
			q = q.Set("position = ?", database.Position{X: fields.Position.X, Y: fields.Position.Y})
		}

		result, err := q.Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update component: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrNotFound
		}

		_, err = tx.NewUpdate().
			Model((*database.Project)(nil)).
			Set("updated_at = ?", now).
			Where("id = ?", projectID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to touch project: %w", err)
		}

		dbComponent := new(database.Component)
		err = tx.NewSelect().
			Model(dbComponent).
			Where("id = ?", componentID).
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("failed to reload component: %w", err)
		}

		updated = mapDBComponentToModel(dbComponent)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the component and pulls its id from the project's list in
// one transaction, so no dangling id is ever observable.
func (r *Repository) Delete(ctx context.Context, userID, projectID, componentID uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := projectOwned(ctx, tx, userID, projectID); err != nil {
			return err
		}

		result, err := tx.NewDelete().
			Model((*database.Component)(nil)).
			Where("id = ?", componentID).
			Where("project_id = ?", projectID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete component: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrNotFound
		}

		_, err = tx.NewUpdate().
			Model((*database.Project)(nil)).
			Set("components = array_remove(components, ?)", componentID.String()).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", projectID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to remove component from project: %w", err)
		}

		return nil
	})
}

// ListByProject returns all components of an owned project
func (r *Repository) ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]Component, error) {
	if err := projectOwned(ctx, r.db, userID, projectID); err != nil {
		return nil, err
	}

	var dbComponents []database.Component
	err := r.db.NewSelect().
		Model(&dbComponents).
		Where("project_id = ?", projectID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}

	components := make([]Component, 0, len(dbComponents))
	for i := range dbComponents {
		components = append(components, *mapDBComponentToModel(&dbComponents[i]))
	}
	return components, nil
}

// projectOwned verifies the project exists and belongs to the user
func projectOwned(ctx context.Context, db bun.IDB, userID, projectID uuid.UUID) error {
	exists, err := db.NewSelect().
		Model((*database.Project)(nil)).
		Where("id = ?", projectID).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check project ownership: %w", err)
	}
	if !exists {
		return project.ErrNotFound
	}
	return nil
}

// mapDBComponentToModel converts database model to domain model
func mapDBComponentToModel(dbc *database.Component) *Component {
	properties := dbc.Properties
	if properties == nil {
		properties = map[string]any{}
	}
	return &Component{
		ID:         dbc.ID,
		ProjectID:  dbc.ProjectID,
		Type:       dbc.Type,
		Properties: properties,
		Content:    dbc.Content,
		Position:   Position{X: dbc.Position.X, Y: dbc.Position.Y},
		CreatedAt:  dbc.CreatedAt,
		UpdatedAt:  dbc.UpdatedAt,
	}
}
