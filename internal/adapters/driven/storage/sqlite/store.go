package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sqlitedrv "modernc.org/sqlite"

	"github.com/inah-tools/archivo/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/ports/driven"
)

// DatabaseFile is the name of the index file inside the data directory.
const DatabaseFile = "archivo.db"

var (
	registerOnce sync.Once
	errRegister  error
)

// registerFunctions installs the SQL functions the store relies on.
// Registration is process-wide and may only happen once per name.
func registerFunctions() error {
	registerOnce.Do(func() {
		errRegister = sqlitedrv.RegisterDeterministicScalarFunction("fold", 1, foldFunc)
	})
	return errRegister
}

// foldFunc implements fold(x): Unicode case folding of a text value.
func foldFunc(_ *sqlitedrv.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return domain.FoldCase(v), nil
	case []byte:
		return domain.FoldCase(string(v)), nil
	default:
		return domain.FoldCase(fmt.Sprint(v)), nil
	}
}

// Store is a SQLite-backed document index.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if absent) the index in dataDir and applies any
// pending migrations. If dataDir is empty, defaults to ~/.archivo.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".archivo")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	if err := registerFunctions(); err != nil {
		return nil, fmt.Errorf("registering sql functions: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(context.Background(), migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// migrate runs all pending migrations, recording each applied version.
func (s *Store) migrate(ctx context.Context, fsys fs.FS) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_documents.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(ctx, version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(ctx context.Context, version int, script string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// EnsureSchema creates the documents table if it does not exist.
func (d *documentStore) EnsureSchema(ctx context.Context) error {
	return d.store.migrate(ctx, migrations.FS)
}

// ReplaceAll swaps the whole index for records in one transaction.
func (d *documentStore) ReplaceAll(ctx context.Context, records []domain.DocumentRecord) error {
	if err := d.replaceAll(ctx, records); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexingFailed, err)
	}
	return nil
}

func (d *documentStore) replaceAll(ctx context.Context, records []domain.DocumentRecord) error {
	tx, err := d.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (document_name, site_name, region_name, full_path)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(full_path) DO UPDATE SET
			document_name = excluded.document_name,
			site_name = excluded.site_name,
			region_name = excluded.region_name
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.DocumentName, r.SiteName, r.RegionName, r.FullPath); err != nil {
			return fmt.Errorf("inserting %s: %w", r.FullPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Search returns the records whose document, site, or region name contains
// query, ignoring case.
func (d *documentStore) Search(ctx context.Context, query string) (domain.ResultSet, error) {
	results, err := d.search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQueryFailed, err)
	}
	return results, nil
}

func (d *documentStore) search(ctx context.Context, query string) (domain.ResultSet, error) {
	const columns = `SELECT document_name, site_name, region_name, full_path FROM documents`
	const order = ` ORDER BY region_name, site_name, document_name, full_path`

	var (
		rows *sql.Rows
		err  error
	)
	if query == "" {
		rows, err = d.store.db.QueryContext(ctx, columns+order)
	} else {
		pattern := "%" + escapeLike(domain.FoldCase(query)) + "%"
		rows, err = d.store.db.QueryContext(ctx, columns+`
			WHERE fold(document_name) LIKE ? ESCAPE '\'
			   OR fold(site_name) LIKE ? ESCAPE '\'
			   OR fold(region_name) LIKE ? ESCAPE '\'`+order, pattern, pattern, pattern)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := domain.ResultSet{}
	for rows.Next() {
		var r domain.DocumentRecord
		if err := rows.Scan(&r.DocumentName, &r.SiteName, &r.RegionName, &r.FullPath); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Count returns the number of indexed documents.
func (d *documentStore) Count(ctx context.Context) (int, error) {
	var n int
	err := d.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: counting documents: %w", domain.ErrQueryFailed, err)
	}
	return n, nil
}

// escapeLike makes LIKE wildcards in s match literally under ESCAPE '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
