package save

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"tilequest/internal/world"
)

// PostgresStore keeps snapshots in a PostgreSQL table as JSONB.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the database and prepares the schema.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		turn INTEGER NOT NULL,
		state JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := ps.db.Exec(schema)
	return err
}

// Save upserts s under key.
func (ps *PostgresStore) Save(key string, s world.Snapshot) error {
	state, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", key, err)
	}

	query := `
	INSERT INTO snapshots (key, turn, state)
	VALUES ($1, $2, $3)
	ON CONFLICT (key)
	DO UPDATE SET turn = $2, state = $3, updated_at = NOW()
	`
	if _, err := ps.db.Exec(query, key, s.Turn, string(state)); err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

// Load returns the snapshot stored under key.
func (ps *PostgresStore) Load(key string) (world.Snapshot, error) {
	var state string
	err := ps.db.QueryRow(`SELECT state FROM snapshots WHERE key = $1`, key).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return world.Snapshot{}, fmt.Errorf("load %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return world.Snapshot{}, fmt.Errorf("load snapshot %q: %w", key, err)
	}

	var s world.Snapshot
	if err := json.Unmarshal([]byte(state), &s); err != nil {
		return world.Snapshot{}, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return s, nil
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
