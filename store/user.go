package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"brewhouse/api"
	"brewhouse/common"
)

type userRaw struct {
	ID int

	// Standard fields
	CreatedTs int64
	UpdatedTs int64

	// Domain specific fields
	UID          string
	Name         string
	Nickname     string
	PasswordHash string
}

func (raw *userRaw) toUser() *api.User {
	return &api.User{
		ID: raw.ID,

		CreatedTs: raw.CreatedTs,
		UpdatedTs: raw.UpdatedTs,

		UID:          raw.UID,
		Name:         raw.Name,
		Nickname:     raw.Nickname,
		PasswordHash: raw.PasswordHash,
	}
}

func (s *Store) CreateUser(ctx context.Context, create *api.UserCreate) (*api.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	userRaw, err := createUser(ctx, tx, create)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}

	s.userCache.Store(userRaw.ID, userRaw)
	user := userRaw.toUser()
	return user, nil
}

func createUser(ctx context.Context, tx *sql.Tx, create *api.UserCreate) (*userRaw, error) {
	query := `
		INSERT INTO user (
			uid,
			username,
			nickname,
			password_hash
		)
		VALUES (?, ?, ?, ?)
		RETURNING id, uid, username, nickname, password_hash, created_ts, updated_ts
	`
	var userRaw userRaw
	if err := tx.QueryRowContext(ctx, query,
		create.UID,
		create.Name,
		create.Nickname,
		create.PasswordHash,
	).Scan(
		&userRaw.ID,
		&userRaw.UID,
		&userRaw.Name,
		&userRaw.Nickname,
		&userRaw.PasswordHash,
		&userRaw.CreatedTs,
		&userRaw.UpdatedTs,
	); err != nil {
		return nil, FormatError(err)
	}

	return &userRaw, nil
}

func (s *Store) FindUserList(ctx context.Context, find *api.UserFind) ([]*api.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	userRawList, err := findUserList(ctx, tx, find)
	if err != nil {
		return nil, err
	}

	list := []*api.User{}
	for _, raw := range userRawList {
		list = append(list, raw.toUser())
	}

	return list, nil
}

func (s *Store) FindUser(ctx context.Context, find *api.UserFind) (*api.User, error) {
	if find.ID != nil {
		if user, ok := s.userCache.Load(*find.ID); ok {
			return user.(*userRaw).toUser(), nil
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	list, err := findUserList(ctx, tx, find)
	if err != nil {
		return nil, err
	}

	if len(list) == 0 {
		return nil, &common.Error{Code: common.NotFound, Err: fmt.Errorf("not found user with filter %+v", find)}
	}

	userRaw := list[0]
	s.userCache.Store(userRaw.ID, userRaw)
	user := userRaw.toUser()
	return user, nil
}

func findUserList(ctx context.Context, tx *sql.Tx, find *api.UserFind) ([]*userRaw, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "username = ?"), append(args, *v)
	}

	query := `
		SELECT
			id,
			uid,
			username,
			nickname,
			password_hash,
			created_ts,
			updated_ts
		FROM user
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC, id DESC
	`
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, FormatError(err)
	}
	defer rows.Close()

	userRawList := make([]*userRaw, 0)
	for rows.Next() {
		var userRaw userRaw
		if err := rows.Scan(
			&userRaw.ID,
			&userRaw.UID,
			&userRaw.Name,
			&userRaw.Nickname,
			&userRaw.PasswordHash,
			&userRaw.CreatedTs,
			&userRaw.UpdatedTs,
		); err != nil {
			return nil, FormatError(err)
		}
		userRawList = append(userRawList, &userRaw)
	}

	if err := rows.Err(); err != nil {
		return nil, FormatError(err)
	}

	return userRawList, nil
}
