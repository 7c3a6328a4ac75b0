package services

import (
	"context"
	"fmt"
	"time"

	"github.com/nexusflow/floweditor/internal/app/usecases"
	"github.com/nexusflow/floweditor/internal/core/draft"
)

// UnsavedDraftKey keys drafts of flows that were never persisted remotely.
const UnsavedDraftKey = "unsaved"

// DraftVersion tags the snapshot format for forward compatibility.
const DraftVersion = "1.0"

// DraftService implements draft snapshot and restore over a draft.Saver
// PRINCIPLES:
// - SRP: Manages draft persistence for editor sessions
// - DIP: Depends on the draft.Saver abstraction
type DraftService struct {
	saver draft.Saver
}

// NewDraftService creates a new draft service
func NewDraftService(saver draft.Saver) *DraftService {
	return &DraftService{saver: saver}
}

// Snapshot persists the session's current canvas and metadata as a draft,
// keyed by the persisted flow id or UnsavedDraftKey.
func (s *DraftService) Snapshot(ctx context.Context, session *Session) (string, error) {
	key := session.FlowID()
	if key == "" {
		key = UnsavedDraftKey
	}
	meta := session.Meta()
	d := &draft.Draft{
		Key:         key,
		Name:        meta.Name,
		Description: meta.Description,
		MaxSteps:    meta.MaxSteps,
		Nodes:       session.Canvas().Nodes(),
		Edges:       session.Canvas().Edges(),
		SavedAt:     time.Now(),
		Version:     DraftVersion,
	}
	if err := s.saver.Save(ctx, d); err != nil {
		return "", fmt.Errorf("failed to save draft: %w", err)
	}
	return key, nil
}

// Restore replaces the session state with a stored draft.
func (s *DraftService) Restore(ctx context.Context, session *Session, key string) error {
	d, err := s.saver.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load draft: %w", err)
	}
	session.Canvas().Restore(d.Nodes, d.Edges)
	session.SetMeta(usecases.FlowMeta{
		Name:        d.Name,
		Description: d.Description,
		MaxSteps:    d.MaxSteps,
	})
	return nil
}

// List returns stored drafts matching the filter.
func (s *DraftService) List(ctx context.Context, filter draft.Filter) ([]*draft.Draft, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.saver.List(ctx, filter)
}

// Discard removes a stored draft, e.g. after a successful remote save.
func (s *DraftService) Discard(ctx context.Context, key string) error {
	return s.saver.Delete(ctx, key)
}
