// Package sqlite provides a SQLite-backed draft saver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nexusflow/floweditor/internal/core/canvas"
	"github.com/nexusflow/floweditor/internal/core/draft"
	"github.com/nexusflow/floweditor/pkg/serialization"
	_ "modernc.org/sqlite"
)

// canvasSnapshot is the serialized portion of a draft row.
type canvasSnapshot struct {
	Nodes []*canvas.Node `json:"nodes" msgpack:"nodes"`
	Edges []*canvas.Edge `json:"edges" msgpack:"edges"`
}

func snapshotOf(d *draft.Draft) canvasSnapshot {
	return canvasSnapshot{Nodes: d.Nodes, Edges: d.Edges}
}

// DraftSaver implements the draft.Saver interface for SQLite.
type DraftSaver struct {
	db         *sql.DB
	serializer *serialization.Serializer
	tableName  string
}

// NewDraftSaver creates a new SQLite draft saver.
func NewDraftSaver(db *sql.DB, serializer *serialization.Serializer) *DraftSaver {
	if serializer == nil {
		serializer = serialization.DefaultSerializer()
	}
	return &DraftSaver{
		db:         db,
		serializer: serializer,
		tableName:  "drafts",
	}
}

// WithTableName allows overriding the default table name with validation.
// Only alphanumeric and underscore are permitted to prevent SQL injection via identifiers.
func (s *DraftSaver) WithTableName(name string) *DraftSaver {
	if isSafeIdent(name) {
		s.tableName = name
	}
	return s
}

func isSafeIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}

// EnsureSchema creates the drafts table when it does not exist yet.
func (s *DraftSaver) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key         TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			max_steps   INTEGER NOT NULL,
			snapshot    BLOB NOT NULL,
			saved_at    INTEGER NOT NULL,
			version     TEXT NOT NULL
		)
	`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create drafts table: %w", err)
	}
	return nil
}

// Save stores a draft in SQLite, replacing any prior draft with the key.
func (s *DraftSaver) Save(ctx context.Context, d *draft.Draft) error {
	if d == nil {
		return draft.ErrNilDraft
	}
	if err := d.Validate(); err != nil {
		return err
	}

	// The canvas snapshot (nodes and edges) travels through the serializer;
	// scalar metadata stays queryable as plain columns.
	snapshot, err := s.serializer.Serialize(snapshotOf(d))
	if err != nil {
		return fmt.Errorf("failed to serialize draft snapshot: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (key, name, description, max_steps, snapshot, saved_at, version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		d.Key, d.Name, d.Description, d.MaxSteps, snapshot, d.SavedAt.Unix(), d.Version)
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
		WHERE key = ?
	`, s.tableName)

	d, err := s.scanRow(s.db.QueryRowContext(ctx, query, key))
	if err == sql.ErrNoRows {
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
	if filter.Since != nil {
		query += " WHERE saved_at >= ?"
		args = append(args, filter.Since.Unix())
	}
	query += " ORDER BY saved_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET; -1 means unbounded.
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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
	query := fmt.Sprintf("DELETE FROM %s WHERE key = ?", s.tableName)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
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
		savedAt  int64
	)
	err := row.Scan(&d.Key, &d.Name, &d.Description, &d.MaxSteps, &snapshot, &savedAt, &d.Version)
	if err != nil {
		return nil, err
	}
	d.SavedAt = time.Unix(savedAt, 0)

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
