package store

import (
	"context"
	"database/sql"
	"fmt"

	"brewhouse/api"
	"brewhouse/common"
)

type ingredientRaw struct {
	ID    string
	Kind  api.IngredientKind
	Name  string
	Color string
}

func (raw *ingredientRaw) toIngredient() *api.Ingredient {
	return &api.Ingredient{
		ID:    raw.ID,
		Name:  raw.Name,
		Color: raw.Color,
	}
}

// FindIngredientList returns every document of one ingredient collection in insertion order.
// It always reads the database: the catalog may be edited by another process.
func (s *Store) FindIngredientList(ctx context.Context, kind api.IngredientKind) ([]*api.Ingredient, error) {
	if !kind.Valid() {
		return nil, &common.Error{Code: common.Invalid, Err: fmt.Errorf("invalid ingredient kind %q", kind)}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	rawList, err := findIngredientList(ctx, tx, kind)
	if err != nil {
		return nil, err
	}

	return toIngredientList(rawList), nil
}

func (s *Store) UpsertIngredient(ctx context.Context, upsert *api.IngredientUpsert) (*api.Ingredient, error) {
	if err := upsert.Validate(); err != nil {
		return nil, &common.Error{Code: common.Invalid, Err: err}
	}
	if upsert.ID == "" {
		upsert.ID = common.GenUUID()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	raw, err := upsertIngredient(ctx, tx, upsert)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}

	return raw.toIngredient(), nil
}

func (s *Store) DeleteIngredient(ctx context.Context, delete *api.IngredientDelete) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FormatError(err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM ingredient WHERE kind = ? AND id = ?`, delete.Kind, delete.ID)
	if err != nil {
		return FormatError(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return &common.Error{Code: common.NotFound, Err: fmt.Errorf("ingredient %s/%s not found", delete.Kind, delete.ID)}
	}

	if err := tx.Commit(); err != nil {
		return FormatError(err)
	}

	return nil
}

func upsertIngredient(ctx context.Context, tx *sql.Tx, upsert *api.IngredientUpsert) (*ingredientRaw, error) {
	query := `
		INSERT INTO ingredient (
			id, kind, name, color
		)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE
		SET
			name = EXCLUDED.name,
			color = EXCLUDED.color
		WHERE kind = EXCLUDED.kind
		RETURNING id, kind, name, color
	`
	var raw ingredientRaw
	if err := tx.QueryRowContext(ctx, query, upsert.ID, upsert.Kind, upsert.Name, upsert.Color).Scan(
		&raw.ID,
		&raw.Kind,
		&raw.Name,
		&raw.Color,
	); err != nil {
		if common.ErrorCode(FormatError(err)) == common.NotFound {
			// The conflicting id belongs to another collection, so the WHERE clause skipped the update.
			return nil, &common.Error{Code: common.Conflict, Err: fmt.Errorf("ingredient id %s is used by another collection", upsert.ID)}
		}
		return nil, FormatError(err)
	}
	return &raw, nil
}

func findIngredientList(ctx context.Context, tx *sql.Tx, kind api.IngredientKind) ([]*ingredientRaw, error) {
	query := `
		SELECT
			id,
			kind,
			name,
			color
		FROM ingredient
		WHERE kind = ?
		ORDER BY rowid ASC
	`
	rows, err := tx.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, FormatError(err)
	}
	defer rows.Close()

	list := make([]*ingredientRaw, 0)
	for rows.Next() {
		var raw ingredientRaw
		if err := rows.Scan(
			&raw.ID,
			&raw.Kind,
			&raw.Name,
			&raw.Color,
		); err != nil {
			return nil, FormatError(err)
		}
		list = append(list, &raw)
	}

	if err := rows.Err(); err != nil {
		return nil, FormatError(err)
	}

	return list, nil
}

func toIngredientList(rawList []*ingredientRaw) []*api.Ingredient {
	list := make([]*api.Ingredient, 0, len(rawList))
	for _, raw := range rawList {
		list = append(list, raw.toIngredient())
	}
	return list
}
