package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/veridata-labs/veridata-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed run history store.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.RunStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.veridata/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".veridata", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
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

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveRun records a completed audit run.
func (s *Store) SaveRun(ctx context.Context, run *domain.RunRecord) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}

	findingsJSON, err := json.Marshal(run.Findings)
	if err != nil {
		return fmt.Errorf("marshalling findings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source_path, created_at, rows, columns,
			critical, errors, warnings, info, assessment, findings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SourcePath, run.CreatedAt, run.Rows, run.Columns,
		run.Summary.Critical, run.Summary.Errors, run.Summary.Warnings, run.Summary.Info,
		run.Assessment.String(), string(findingsJSON))

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. Findings are
// omitted from listings.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		return nil, domain.ErrInvalidInput
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_path, created_at, rows, columns,
			critical, errors, warnings, info, assessment
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var run domain.RunRecord
		var assessment string
		if err := rows.Scan(&run.ID, &run.SourcePath, &run.CreatedAt,
			&run.Rows, &run.Columns,
			&run.Summary.Critical, &run.Summary.Errors,
			&run.Summary.Warnings, &run.Summary.Info, &assessment); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Summary.Total = run.Summary.Critical + run.Summary.Errors +
			run.Summary.Warnings + run.Summary.Info
		if run.Assessment, err = domain.ParseAssessment(assessment); err != nil {
			return nil, fmt.Errorf("parsing assessment %q: %w", assessment, err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// GetRun returns a single run with its full finding list.
func (s *Store) GetRun(ctx context.Context, id string) (*domain.RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_path, created_at, rows, columns,
			critical, errors, warnings, info, assessment, findings
		FROM runs WHERE id = ?
	`, id)

	var run domain.RunRecord
	var assessment, findingsJSON string
	err := row.Scan(&run.ID, &run.SourcePath, &run.CreatedAt,
		&run.Rows, &run.Columns,
		&run.Summary.Critical, &run.Summary.Errors,
		&run.Summary.Warnings, &run.Summary.Info, &assessment, &findingsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Summary.Total = run.Summary.Critical + run.Summary.Errors +
		run.Summary.Warnings + run.Summary.Info
	if run.Assessment, err = domain.ParseAssessment(assessment); err != nil {
		return nil, fmt.Errorf("parsing assessment %q: %w", assessment, err)
	}
	if err := json.Unmarshal([]byte(findingsJSON), &run.Findings); err != nil {
		return nil, fmt.Errorf("unmarshaling findings: %w", err)
	}

	return &run, nil
}
