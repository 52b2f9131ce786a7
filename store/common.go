package store

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"brewhouse/common"
)

// FormatError converts low level database errors into application errors.
func FormatError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &common.Error{Code: common.NotFound, Err: errors.New("data not found")}
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return &common.Error{Code: common.Conflict, Err: err}
	}

	return err
}
