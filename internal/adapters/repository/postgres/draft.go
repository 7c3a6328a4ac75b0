// Package postgres provides a PostgreSQL-backed draft saver.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexusflow/floweditor/internal/core/canvas"
	"github.com/nexusflow/floweditor/internal/core/draft"
	"github.com/nexusflow/floweditor/pkg/serialization"
)

// DraftSaver implements the draft.Saver interface for PostgreSQL.
type DraftSaver struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
	tableName  string
}

// canvasSnapshot is the serialized portion of a draft row.
type canvasSnapshot struct {
	Nodes []*canvas.Node `json:"nodes" msgpack:"nodes"`
	Edges []*canvas.Edge `json:"edges" msgpack:"edges"`
}

// NewDraftSaver creates a new PostgreSQL draft saver.
func NewDraftSaver(pool *pgxpool.Pool, serializer *serialization.Serializer) *DraftSaver {
	if serializer == nil {
		serializer = serialization.DefaultSerializer()
	}
	return &DraftSaver{
		pool:       pool,
		serializer: serializer,
		tableName:  "drafts",
	}
}

// EnsureSchema creates the drafts table when it does not exist yet.
func (s *DraftSaver) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key         TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			max_steps   INTEGER NOT NULL,
			snapshot    BYTEA NOT NULL,
			saved_at    TIMESTAMPTZ NOT NULL,
			version     TEXT NOT NULL
		)
	`, s.tableName)
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create drafts table: %w", err)
	}
	return nil
}

// Save stores a draft in PostgreSQL.
func (s *DraftSaver) Save(ctx context.Context, d *draft.Draft) error {
	if d == nil {
		return draft.ErrNilDraft
	}
	if err := d.Validate(); err != nil {
		return err
	}

	snapshot, err := s.serializer.Serialize(canvasSnapshot{Nodes: d.Nodes, Edges: d.Edges})
	if err != nil {
		return fmt.Errorf("failed to serialize draft snapshot: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (key, name, description, max_steps, snapshot, saved_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (key) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			max_steps = EXCLUDED.max_steps,
			snapshot = EXCLUDED.snapshot,
			saved_at = EXCLUDED.saved_at,
			version = EXCLUDED.version
	`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		d.Key, d.Name, d.Description, d.MaxSteps, snapshot, d.SavedAt, d.Version)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Load retrieves a draft by key.
func (s *DraftSaver) Load(ctx context.Context, key string) (*draft.Draft, error) {
	if key == "" {
		return nil, draft.ErrInvalidDraftKey
	}

	query := fmt.Sprintf(`
		SELECT key, name, description, max_steps, snapshot, saved_at, version
		FROM %s
		WHERE key = $1
	`, s.tableName)

	row := s.pool.QueryRow(ctx, query, key)
	d, err := s.scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, draft.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return d, nil
}

// List retrieves drafts matching the filter, newest first.
func (s *DraftSaver) List(ctx context.Context, filter draft.Filter) ([]*draft.Draft, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT key, name, description, max_steps, snapshot, saved_at, version
		FROM %s
	`, s.tableName)
	var args []any
	arg := 1
	if filter.Since != nil {
		query += fmt.Sprintf(" WHERE saved_at >= $%d", arg)
		args = append(args, *filter.Since)
		arg++
	}
	query += " ORDER BY saved_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", arg)
		args = append(args, filter.Limit)
		arg++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", arg)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*draft.Draft
	for rows.Next() {
		d, err := s.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drafts: %w", err)
	}
	return drafts, nil
}

// Delete removes a draft by key.
func (s *DraftSaver) Delete(ctx context.Context, key string) error {
	if key == "" {
		return draft.ErrInvalidDraftKey
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE key = $1", s.tableName)
	if _, err := s.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *DraftSaver) scanRow(row rowScanner) (*draft.Draft, error) {
	var (
		d        draft.Draft
		snapshot []byte
		savedAt  time.Time
	)
	err := row.Scan(&d.Key, &d.Name, &d.Description, &d.MaxSteps, &snapshot, &savedAt, &d.Version)
	if err != nil {
		return nil, err
	}
	d.SavedAt = savedAt

	var snap canvasSnapshot
	if err := s.serializer.Deserialize(snapshot, &snap); err != nil {
		return nil, fmt.Errorf("failed to deserialize draft snapshot: %w", err)
	}
	d.Nodes = snap.Nodes
	d.Edges = snap.Edges
	if d.Nodes == nil {
		d.Nodes = []*canvas.Node{}
	}
	return &d, nil
}
