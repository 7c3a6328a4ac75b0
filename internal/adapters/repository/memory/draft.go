// Package memory provides a thread-safe in-memory draft saver, suitable
// for tests and single-process editor sessions.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nexusflow/floweditor/internal/core/draft"
	"github.com/nexusflow/floweditor/pkg/serialization"
)

// DraftSaver implements draft.Saver with serialized in-memory storage.
// Drafts are stored as encoded bytes so callers cannot mutate a stored
// snapshot through shared slices
// PRINCIPLES:
// - KISS: Simple map with proper concurrency
// - DIP: Implements the draft.Saver interface
type DraftSaver struct {
	mu         sync.RWMutex
	drafts     map[string][]byte
	serializer *serialization.Serializer
}

// NewDraftSaver creates an in-memory draft saver.
func NewDraftSaver(serializer *serialization.Serializer) *DraftSaver {
	if serializer == nil {
		serializer = serialization.DefaultSerializer()
	}
	return &DraftSaver{
		drafts:     make(map[string][]byte),
		serializer: serializer,
	}
}

// Save persists a draft, replacing any prior draft with the same key.
func (s *DraftSaver) Save(ctx context.Context, d *draft.Draft) error {
	if d == nil {
		return draft.ErrNilDraft
	}
	if err := d.Validate(); err != nil {
		return err
	}
	data, err := s.serializer.Serialize(d)
	if err != nil {
		return fmt.Errorf("failed to serialize draft: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.Key] = data
	return nil
}

// Load retrieves a draft by key.
func (s *DraftSaver) Load(ctx context.Context, key string) (*draft.Draft, error) {
	if key == "" {
		return nil, draft.ErrInvalidDraftKey
	}
	s.mu.RLock()
	data, ok := s.drafts[key]
	s.mu.RUnlock()
	if !ok {
		return nil, draft.ErrDraftNotFound
	}
	var d draft.Draft
	if err := s.serializer.Deserialize(data, &d); err != nil {
		return nil, fmt.Errorf("failed to deserialize draft: %w", err)
	}
	return &d, nil
}

// List returns drafts matching the filter, newest first.
func (s *DraftSaver) List(ctx context.Context, filter draft.Filter) ([]*draft.Draft, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	encoded := make([][]byte, 0, len(s.drafts))
	for _, data := range s.drafts {
		encoded = append(encoded, data)
	}
	s.mu.RUnlock()

	out := make([]*draft.Draft, 0, len(encoded))
	for _, data := range encoded {
		var d draft.Draft
		if err := s.serializer.Deserialize(data, &d); err != nil {
			return nil, fmt.Errorf("failed to deserialize draft: %w", err)
		}
		if filter.Since != nil && d.SavedAt.Before(*filter.Since) {
			continue
		}
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Delete removes a draft by key. Deleting an unknown key is a no-op.
func (s *DraftSaver) Delete(ctx context.Context, key string) error {
	if key == "" {
		return draft.ErrInvalidDraftKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, key)
	return nil
}
