package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"brewhouse/common/log"
	"brewhouse/service/profile"
	"brewhouse/service/version"

	// Register the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migration
var migrationFS embed.FS

//go:embed seed
var seedFS embed.FS

const latestSchemaFileName = "migration/LATEST.sql"

type DB struct {
	// sqlite db connection instance
	DBInstance *sql.DB
	profile    *profile.Profile
}

// NewDB returns a new instance of DB associated with the given datasource name.
func NewDB(profile *profile.Profile) *DB {
	db := &DB{
		profile: profile,
	}
	return db
}

func (db *DB) Open(ctx context.Context) (err error) {
	// Ensure a DSN is set before attempting to open the database.
	if db.profile.DSN == "" {
		return errors.New("dsn required")
	}

	// Connect to the database with some sane settings:
	// - No shared-cache: it's obsolete; WAL journal mode is a better solution.
	// - No foreign key constraints: documents embed their references.
	// - Journal mode set to WAL: it's the recommended journal mode for most applications
	//   as it prevents locking issues.
	// - Busy timeout set so live queries reading next to a writer back off instead of failing.
	sqliteDB, err := sql.Open("sqlite3", db.profile.DSN+"?_foreign_keys=0&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return errors.Wrapf(err, "failed to open db with dsn: %s", db.profile.DSN)
	}
	db.DBInstance = sqliteDB

	initialized, err := db.isInitialized(ctx)
	if err != nil {
		return err
	}
	currentSchemaVersion := version.GetSchemaVersion(db.profile.Version)

	if !initialized {
		if err := db.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := db.UpsertMigrationHistory(ctx, &MigrationHistoryUpsert{
			Version: currentSchemaVersion,
		}); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
	} else {
		migrationHistoryList, err := db.FindMigrationHistoryList(ctx, &MigrationHistoryFind{})
		if err != nil {
			return errors.Wrap(err, "failed to find migration history")
		}
		latestSchemaVersion := ""
		for _, migrationHistory := range migrationHistoryList {
			if latestSchemaVersion == "" || version.IsVersionGreaterThan(migrationHistory.Version, latestSchemaVersion) {
				latestSchemaVersion = migrationHistory.Version
			}
		}
		if latestSchemaVersion != "" && version.IsVersionGreaterThan(latestSchemaVersion, currentSchemaVersion) {
			return errors.Errorf("database schema %s is newer than this release (%s)", latestSchemaVersion, currentSchemaVersion)
		}
		if latestSchemaVersion == "" || version.IsVersionGreaterThan(currentSchemaVersion, latestSchemaVersion) {
			// No incremental migration scripts exist yet; record the schema version.
			if _, err := db.UpsertMigrationHistory(ctx, &MigrationHistoryUpsert{
				Version: currentSchemaVersion,
			}); err != nil {
				return errors.Wrap(err, "failed to upsert migration history")
			}
		}
	}

	// Seed the default catalog in non-prod modes.
	if db.profile.IsDev() {
		if err := db.seed(ctx); err != nil {
			return errors.Wrap(err, "failed to seed")
		}
	}

	return nil
}

func (db *DB) isInitialized(ctx context.Context) (bool, error) {
	var name string
	err := db.DBInstance.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", "migration_history").Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to check migration history table")
	}
	return true, nil
}

func (db *DB) applyLatestSchema(ctx context.Context) error {
	buf, err := migrationFS.ReadFile(latestSchemaFileName)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema %q", latestSchemaFileName)
	}
	log.Info("applying latest schema", zap.String("dsn", db.profile.DSN))
	return db.execute(ctx, string(buf))
}

func (db *DB) seed(ctx context.Context) error {
	filenames, err := fs.Glob(seedFS, "seed/*.sql")
	if err != nil {
		return errors.Wrap(err, "failed to read seed files")
	}
	sort.Strings(filenames)

	for _, filename := range filenames {
		buf, err := seedFS.ReadFile(filename)
		if err != nil {
			return errors.Wrapf(err, "failed to read seed file, filename=%s", filename)
		}
		if err := db.execute(ctx, string(buf)); err != nil {
			return errors.Wrapf(err, "seed error: %s", filename)
		}
	}
	return nil
}

// execute runs a single SQL statement within a transaction.
func (db *DB) execute(ctx context.Context, stmt string) error {
	tx, err := db.DBInstance.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to execute statement, err: %w", err)
	}

	return tx.Commit()
}

func (db *DB) Close() error {
	if db.DBInstance == nil {
		return nil
	}
	return db.DBInstance.Close()
}
