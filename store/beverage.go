package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"brewhouse/api"
	"brewhouse/common"
)

type beverageRaw struct {
	ID string

	// Standard fields
	CreatedTs int64
	UpdatedTs int64

	// Domain specific fields
	UID     string
	Name    string
	Temp    api.Temperature
	Base    api.Ingredient
	Syrup   api.Ingredient
	Creamer api.Ingredient
}

func (raw *beverageRaw) toBeverage() *api.Beverage {
	return &api.Beverage{
		ID: raw.ID,

		UID:     raw.UID,
		Name:    raw.Name,
		Temp:    raw.Temp,
		Base:    raw.Base,
		Syrup:   raw.Syrup,
		Creamer: raw.Creamer,
	}
}

// UpsertBeverage writes the beverage document at upsert.ID, replacing any document already there.
// Live queries watching the owner are notified after the write commits.
func (s *Store) UpsertBeverage(ctx context.Context, upsert *api.BeverageUpsert) (*api.Beverage, error) {
	if err := upsert.Validate(); err != nil {
		return nil, &common.Error{Code: common.Invalid, Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	beverageRaw, err := upsertBeverage(ctx, tx, upsert)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}

	s.watchers.notify(beverageRaw.UID)
	return beverageRaw.toBeverage(), nil
}

// FindBeverageList returns the beverages matching find ordered by name.
func (s *Store) FindBeverageList(ctx context.Context, find *api.BeverageFind) ([]*api.Beverage, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	beverageRawList, err := findBeverageList(ctx, tx, find)
	if err != nil {
		return nil, err
	}

	list := make([]*api.Beverage, 0, len(beverageRawList))
	for _, raw := range beverageRawList {
		list = append(list, raw.toBeverage())
	}
	return list, nil
}

func upsertBeverage(ctx context.Context, tx *sql.Tx, upsert *api.BeverageUpsert) (*beverageRaw, error) {
	base, err := json.Marshal(upsert.Base)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal base")
	}
	syrup, err := json.Marshal(upsert.Syrup)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal syrup")
	}
	creamer, err := json.Marshal(upsert.Creamer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal creamer")
	}

	query := `
		INSERT INTO beverage (
			id,
			uid,
			name,
			temp,
			base,
			syrup,
			creamer
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE
		SET
			updated_ts = strftime('%s', 'now'),
			uid = EXCLUDED.uid,
			name = EXCLUDED.name,
			temp = EXCLUDED.temp,
			base = EXCLUDED.base,
			syrup = EXCLUDED.syrup,
			creamer = EXCLUDED.creamer
		RETURNING id, uid, name, temp, base, syrup, creamer, created_ts, updated_ts
	`
	row := tx.QueryRowContext(ctx, query,
		upsert.ID,
		upsert.UID,
		upsert.Name,
		upsert.Temp,
		string(base),
		string(syrup),
		string(creamer),
	)
	return scanBeverage(row)
}

func findBeverageList(ctx context.Context, tx *sql.Tx, find *api.BeverageFind) ([]*beverageRaw, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}

	query := `
		SELECT
			id,
			uid,
			name,
			temp,
			base,
			syrup,
			creamer,
			created_ts,
			updated_ts
		FROM beverage
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY name ASC, id ASC
	`
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, FormatError(err)
	}
	defer rows.Close()

	beverageRawList := make([]*beverageRaw, 0)
	for rows.Next() {
		beverageRaw, err := scanBeverage(rows)
		if err != nil {
			return nil, err
		}
		beverageRawList = append(beverageRawList, beverageRaw)
	}

	if err := rows.Err(); err != nil {
		return nil, FormatError(err)
	}

	return beverageRawList, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBeverage(row rowScanner) (*beverageRaw, error) {
	var beverageRaw beverageRaw
	var base, syrup, creamer string
	if err := row.Scan(
		&beverageRaw.ID,
		&beverageRaw.UID,
		&beverageRaw.Name,
		&beverageRaw.Temp,
		&base,
		&syrup,
		&creamer,
		&beverageRaw.CreatedTs,
		&beverageRaw.UpdatedTs,
	); err != nil {
		return nil, FormatError(err)
	}

	if err := json.Unmarshal([]byte(base), &beverageRaw.Base); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal base of beverage %s", beverageRaw.ID)
	}
	if err := json.Unmarshal([]byte(syrup), &beverageRaw.Syrup); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal syrup of beverage %s", beverageRaw.ID)
	}
	if err := json.Unmarshal([]byte(creamer), &beverageRaw.Creamer); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal creamer of beverage %s", beverageRaw.ID)
	}
	return &beverageRaw, nil
}
