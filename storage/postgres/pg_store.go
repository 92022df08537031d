package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"autoglm-helper/app/domains"

	"github.com/golang-migrate/migrate/v4"
	postgresdriver "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Store represents the Postgres storage implementation
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Postgres store and migrates the schema.
// The database must already exist.
func NewStore(connString string) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(connString); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{pool: pool}, nil
}

// runMigrations runs the embedded migrations through the pgx database/sql adapter
func runMigrations(connString string) error {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()

	driver, err := postgresdriver.WithInstance(db, &postgresdriver.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close closes the connection pool
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping checks the connection pool
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// ListCommands returns all commands, most recently updated first
func (s *Store) ListCommands(ctx context.Context) ([]domains.Command, error) {
	query := `
		SELECT id, title, content, updated_at, last_result, last_run_at
		FROM commands
		ORDER BY updated_at DESC, id ASC
	`
	rows, err := s.pool.Query(ctx, query)
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
		WHERE id = $1
	`
	cmd, err := scanCommand(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
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
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at,
			last_result = EXCLUDED.last_result,
			last_run_at = EXCLUDED.last_run_at
	`
	_, err := s.pool.Exec(ctx, query,
		cmd.ID, cmd.Title, cmd.Content, cmd.UpdatedAt.UnixMilli(), cmd.LastResult, toMillis(cmd.LastRunAt),
	)
	return err
}

// DeleteCommand removes a command; deleting a missing ID is not an error
func (s *Store) DeleteCommand(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM commands WHERE id = $1`, id)
	return err
}

// InsertHistory appends a history entry
func (s *Store) InsertHistory(ctx context.Context, entry *domains.CommandHistory) error {
	query := `
		INSERT INTO command_history (id, command_id, content_snapshot, result, message, source, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.pool.Exec(ctx, query,
		entry.ID, entry.CommandID, entry.ContentSnapshot, entry.Result, entry.Message, entry.Source, entry.Timestamp.UnixMilli(),
	)
	return err
}

// ListHistory returns the history of a command, newest first
func (s *Store) ListHistory(ctx context.Context, commandID string) ([]domains.CommandHistory, error) {
	query := `
		SELECT id, command_id, content_snapshot, result, message, source, timestamp
		FROM command_history
		WHERE command_id = $1
		ORDER BY timestamp DESC, seq DESC
	`
	rows, err := s.pool.Query(ctx, query, commandID)
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

func scanCommand(row pgx.Row) (*domains.Command, error) {
	var cmd domains.Command
	var updatedAt int64
	var lastRunAt *int64
	if err := row.Scan(&cmd.ID, &cmd.Title, &cmd.Content, &updatedAt, &cmd.LastResult, &lastRunAt); err != nil {
		return nil, err
	}
	cmd.UpdatedAt = time.UnixMilli(updatedAt)
	if lastRunAt != nil {
		t := time.UnixMilli(*lastRunAt)
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
