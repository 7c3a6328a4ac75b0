// Package services implements the editor session: selection and property
// binding, save/test/load orchestration against the external flow service,
// and local draft persistence.
package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/nexusflow/floweditor/internal/app/dto"
	"github.com/nexusflow/floweditor/internal/app/usecases"
	"github.com/nexusflow/floweditor/internal/core/canvas"
	"github.com/nexusflow/floweditor/internal/core/flow"
	"github.com/nexusflow/floweditor/internal/infrastructure/metrics"
)

// Session is one editing session over one flow. It owns the canvas, the
// exclusive selection, and the transient bridge state (busy flags, the
// persisted flow id). Flow configurations are derived on demand and
// discarded after use; bridge responses never overwrite canvas state
// PRINCIPLES:
// - SRP: Orchestration only; topology lives in canvas, translation in usecases
// - DIP: Depends on the FlowService abstraction, not on HTTP
type Session struct {
	mu       sync.RWMutex
	canvas   *canvas.Canvas
	meta     usecases.FlowMeta
	flowID   string
	selected string

	// Independent busy flags, one per bridge operation. Save and test may
	// legally run concurrently; the flags only disable their own trigger.
	saving  atomic.Bool
	testing atomic.Bool
	loading atomic.Bool

	// generation discards bridge responses that arrive after the session
	// moved on (reset or a newer load).
	generation atomic.Int64

	service usecases.FlowService
	logger  *zap.Logger
}

// NewSession creates a session over an empty canvas.
func NewSession(service usecases.FlowService, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		canvas:  canvas.New(),
		meta:    usecases.FlowMeta{Name: flow.DefaultName, MaxSteps: flow.DefaultMaxSteps},
		service: service,
		logger:  logger,
	}
}

// Canvas exposes the underlying graph store.
func (s *Session) Canvas() *canvas.Canvas { return s.canvas }

// Meta returns the current flow metadata.
func (s *Session) Meta() usecases.FlowMeta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// SetMeta replaces the flow metadata. Bounds are checked at save/test time,
// not here, so the user can type freely.
func (s *Session) SetMeta(meta usecases.FlowMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = meta
}

// FlowID returns the persisted flow id, empty for never-saved flows.
func (s *Session) FlowID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flowID
}

// Apply dispatches a typed editor command into the graph store and the
// selection. Commands never reach the translator or the bridge.
func (s *Session) Apply(cmd usecases.Command) error {
	switch c := cmd.(type) {
	case usecases.DropNode:
		canvas.NewAgentNode(s.canvas, c.AgentType, c.Position)
		return nil
	case usecases.SelectNode:
		if _, err := s.canvas.Node(c.ID); err != nil {
			return err
		}
		s.mu.Lock()
		s.selected = c.ID
		s.mu.Unlock()
		return nil
	case usecases.ClearSelection:
		s.mu.Lock()
		s.selected = ""
		s.mu.Unlock()
		return nil
	case usecases.PatchNode:
		return s.canvas.UpdateNode(c.ID, c.Patch)
	case usecases.DeleteNode:
		s.canvas.RemoveNode(c.ID)
		s.mu.Lock()
		if s.selected == c.ID {
			s.selected = ""
		}
		s.mu.Unlock()
		return nil
	case usecases.ConnectNodes:
		if _, err := s.canvas.Node(c.Source); err != nil {
			return fmt.Errorf("connect source: %w", err)
		}
		if _, err := s.canvas.Node(c.Target); err != nil {
			return fmt.Errorf("connect target: %w", err)
		}
		s.canvas.AddEdge(canvas.EdgeParams{
			ID:     canvas.NewEdgeID(c.Source, c.Target),
			Source: c.Source,
			Target: c.Target,
		})
		return nil
	case usecases.MoveNode:
		return s.canvas.MoveNode(c.ID, c.Position)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

// Selected returns the currently selected node, if any. The property panel
// is populated from this snapshot.
func (s *Session) Selected() (*canvas.Node, bool) {
	s.mu.RLock()
	id := s.selected
	s.mu.RUnlock()
	if id == "" {
		return nil, false
	}
	node, err := s.canvas.Node(id)
	if err != nil {
		return nil, false
	}
	return node, true
}

// BuildConfig derives a fire-and-forget flow configuration snapshot.
func (s *Session) BuildConfig() *flow.Config {
	return usecases.BuildFlowConfig(s.canvas, s.Meta())
}

// Save persists the current flow: create when the session has no flow id,
// update otherwise. Structural validation runs locally first; on violation
// the request is never issued and the canvas is untouched.
func (s *Session) Save(ctx context.Context) (string, error) {
	if !s.saving.CompareAndSwap(false, true) {
		return "", ErrSaveInFlight
	}
	defer s.saving.Store(false)

	cfg := s.BuildConfig()
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}

	gen := s.generation.Load()
	flowID := s.FlowID()

	metrics.IncBridgeRequest("save")
	var (
		resp *dto.SaveFlowResponse
		err  error
	)
	if flowID == "" {
		resp, err = s.service.CreateFlow(ctx, cfg)
	} else {
		resp, err = s.service.UpdateFlow(ctx, flowID, cfg)
	}
	if err != nil {
		metrics.IncBridgeError("save")
		s.logger.Warn("flow save failed", zap.String("flow_id", flowID), zap.Error(err))
		return "", fmt.Errorf("save flow: %w", err)
	}
	if s.generation.Load() != gen {
		// The session was reset or reloaded while the save was in flight.
		return "", ErrStaleResponse
	}

	id := resp.Ref()
	s.mu.Lock()
	s.flowID = id
	s.mu.Unlock()
	return id, nil
}

// Test executes the current configuration against a single query without
// persisting it. It shares validation with Save but needs no flow id.
func (s *Session) Test(ctx context.Context, query string) (*dto.ExecuteResponse, error) {
	if !s.testing.CompareAndSwap(false, true) {
		return nil, ErrTestInFlight
	}
	defer s.testing.Store(false)

	if query == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidation, dto.ErrMissingInput)
	}
	cfg := s.BuildConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	gen := s.generation.Load()
	metrics.IncBridgeRequest("test")
	resp, err := s.service.ExecuteConfig(ctx, cfg, query)
	if err != nil {
		metrics.IncBridgeError("test")
		s.logger.Warn("flow test failed", zap.Error(err))
		return nil, fmt.Errorf("test flow: %w", err)
	}
	if s.generation.Load() != gen {
		return nil, ErrStaleResponse
	}
	return resp, nil
}

// LoadFlow fetches a persisted flow and replaces the session state with the
// translated canvas. A response that arrives after a newer load or reset is
// discarded.
func (s *Session) LoadFlow(ctx context.Context, flowID string) error {
	if flowID == "" {
		return fmt.Errorf("%w: %w", ErrValidation, dto.ErrMissingFlowID)
	}
	if !s.loading.CompareAndSwap(false, true) {
		return ErrLoadInFlight
	}
	defer s.loading.Store(false)

	gen := s.generation.Add(1)

	metrics.IncBridgeRequest("load")
	payload, err := s.service.GetFlow(ctx, flowID)
	if err != nil {
		metrics.IncBridgeError("load")
		s.logger.Warn("flow load failed", zap.String("flow_id", flowID), zap.Error(err))
		return fmt.Errorf("load flow: %w", err)
	}
	if s.generation.Load() != gen {
		return ErrStaleResponse
	}

	loaded, meta := usecases.CanvasFromFlow(payload)
	s.canvas.Restore(loaded.Nodes(), loaded.Edges())
	s.mu.Lock()
	s.meta = meta
	s.flowID = flowID
	s.selected = ""
	s.mu.Unlock()
	return nil
}

// Saving reports whether a save is in flight.
func (s *Session) Saving() bool { return s.saving.Load() }

// Testing reports whether a test is in flight.
func (s *Session) Testing() bool { return s.testing.Load() }

// Loading reports whether a load is in flight.
func (s *Session) Loading() bool { return s.loading.Load() }

// Reset discards the session state and invalidates in-flight responses.
func (s *Session) Reset() {
	s.generation.Add(1)
	s.canvas.Reset()
	s.mu.Lock()
	s.meta = usecases.FlowMeta{Name: flow.DefaultName, MaxSteps: flow.DefaultMaxSteps}
	s.flowID = ""
	s.selected = ""
	s.mu.Unlock()
}
