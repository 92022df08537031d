package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"autoglm-helper/app/domains"

	"github.com/golang-migrate/migrate/v4"
	sqlitedriver "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Store represents the SQLite storage implementation
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the SQLite database at dbPath and migrates it
func NewStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := dbPath + "?_journal_mode=WAL&_foreign_keys=1&_busy_timeout=5000"

	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// runMigrations applies the embedded migrations on a dedicated connection
func runMigrations(dsn string) error {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()

	driver, err := sqlitedriver.WithInstance(db, &sqlitedriver.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ListCommands returns all commands, most recently updated first
func (s *Store) ListCommands(ctx context.Context) ([]domains.Command, error) {
	query := `
		SELECT id, title, content, updated_at, last_result, last_run_at
		FROM commands
		ORDER BY updated_at DESC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	commands := []domains.Command{}
	for rows.Next() {
		cmd, err := scanCommand(rows)
		if err != nil {
			return nil, err
		}
		commands = append(commands, *cmd)
	}
	return commands, rows.Err()
}

// GetCommand retrieves a command by ID, returning nil if it does not exist
func (s *Store) GetCommand(ctx context.Context, id string) (*domains.Command, error) {
	query := `
		SELECT id, title, content, updated_at, last_result, last_run_at
		FROM commands
		WHERE id = ?
	`
	cmd, err := scanCommand(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cmd, nil
}

// SaveCommand inserts the command or replaces the row with the same ID
func (s *Store) SaveCommand(ctx context.Context, cmd *domains.Command) error {
	query := `
		INSERT INTO commands (id, title, content, updated_at, last_result, last_run_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			updated_at = excluded.updated_at,
			last_result = excluded.last_result,
			last_run_at = excluded.last_run_at
	`
	_, err := s.db.ExecContext(ctx, query,
		cmd.ID, cmd.Title, cmd.Content, cmd.UpdatedAt.UnixMilli(), cmd.LastResult, toMillis(cmd.LastRunAt),
	)
	return err
}

// DeleteCommand removes a command; deleting a missing ID is not an error
func (s *Store) DeleteCommand(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM commands WHERE id = ?`, id)
	return err
}

// InsertHistory appends a history entry
func (s *Store) InsertHistory(ctx context.Context, entry *domains.CommandHistory) error {
	query := `
		INSERT INTO command_history (id, command_id, content_snapshot, result, message, source, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.CommandID, entry.ContentSnapshot, entry.Result, entry.Message, entry.Source, entry.Timestamp.UnixMilli(),
	)
	return err
}

// ListHistory returns the history of a command, newest first
func (s *Store) ListHistory(ctx context.Context, commandID string) ([]domains.CommandHistory, error) {
	query := `
		SELECT id, command_id, content_snapshot, result, message, source, timestamp
		FROM command_history
		WHERE command_id = ?
		ORDER BY timestamp DESC, rowid DESC
	`
	rows, err := s.db.QueryContext(ctx, query, commandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []domains.CommandHistory{}
	for rows.Next() {
		var entry domains.CommandHistory
		var ts int64
		if err := rows.Scan(
			&entry.ID, &entry.CommandID, &entry.ContentSnapshot, &entry.Result, &entry.Message, &entry.Source, &ts,
		); err != nil {
			return nil, err
		}
		entry.Timestamp = time.UnixMilli(ts)
		history = append(history, entry)
	}
	return history, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCommand(row rowScanner) (*domains.Command, error) {
	var cmd domains.Command
	var updatedAt int64
	var lastRunAt sql.NullInt64
	if err := row.Scan(&cmd.ID, &cmd.Title, &cmd.Content, &updatedAt, &cmd.LastResult, &lastRunAt); err != nil {
		return nil, err
	}
	cmd.UpdatedAt = time.UnixMilli(updatedAt)
	if lastRunAt.Valid {
		t := time.UnixMilli(lastRunAt.Int64)
		cmd.LastRunAt = &t
	}
	return &cmd, nil
}

func toMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
