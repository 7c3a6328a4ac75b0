package floweditor

import (
	"context"

	"go.uber.org/zap"

	memoryrepo "github.com/nexusflow/floweditor/internal/adapters/repository/memory"
	"github.com/nexusflow/floweditor/internal/app/dto"
	"github.com/nexusflow/floweditor/internal/app/services"
	"github.com/nexusflow/floweditor/internal/app/usecases"
	corecanvas "github.com/nexusflow/floweditor/internal/core/canvas"
	"github.com/nexusflow/floweditor/internal/core/draft"
	coreflow "github.com/nexusflow/floweditor/internal/core/flow"
)

// Re-export core types for convenience
type Node = corecanvas.Node
type NodeData = corecanvas.NodeData
type DataPatch = corecanvas.DataPatch
type Edge = corecanvas.Edge
type Position = corecanvas.Position
type FlowConfig = coreflow.Config
type AgentConfig = coreflow.AgentConfig
type FlowMeta = usecases.FlowMeta
type ExecuteResponse = dto.ExecuteResponse
type TraceEntry = dto.TraceEntry

// Re-export editor commands
type Command = usecases.Command
type DropNode = usecases.DropNode
type SelectNode = usecases.SelectNode
type ClearSelection = usecases.ClearSelection
type PatchNode = usecases.PatchNode
type DeleteNode = usecases.DeleteNode
type ConnectNodes = usecases.ConnectNodes
type MoveNode = usecases.MoveNode

// Editor is a simple façade over one editing session. Drafts default to
// in-memory storage; a durable saver and a custom logger can be injected
// through options.
type Editor struct {
	session *services.Session
	drafts  *services.DraftService
}

// EditorOption configures an Editor.
type EditorOption func(*editorDeps)

type editorDeps struct {
	saver  draft.Saver
	logger *zap.Logger
}

// WithDraftSaver replaces the default in-memory draft store, e.g. with the
// SQLite or PostgreSQL saver selected by configuration.
func WithDraftSaver(s draft.Saver) EditorOption {
	return func(d *editorDeps) { d.saver = s }
}

// WithLogger replaces the default production logger.
func WithLogger(l *zap.Logger) EditorOption {
	return func(d *editorDeps) { d.logger = l }
}

// NewEditor constructs an editor talking to the given flow service.
func NewEditor(service usecases.FlowService, opts ...EditorOption) *Editor {
	deps := editorDeps{}
	for _, opt := range opts {
		opt(&deps)
	}
	if deps.saver == nil {
		deps.saver = memoryrepo.NewDraftSaver(nil)
	}
	if deps.logger == nil {
		deps.logger, _ = zap.NewProduction()
	}
	return &Editor{
		session: services.NewSession(service, deps.logger),
		drafts:  services.NewDraftService(deps.saver),
	}
}

// Apply dispatches a typed editor command.
func (e *Editor) Apply(cmd Command) error {
	return e.session.Apply(cmd)
}

// Selected returns the currently selected node, if any.
func (e *Editor) Selected() (*Node, bool) {
	return e.session.Selected()
}

// Meta returns the current flow metadata.
func (e *Editor) Meta() FlowMeta { return e.session.Meta() }

// SetMeta replaces the flow metadata.
func (e *Editor) SetMeta(meta FlowMeta) { e.session.SetMeta(meta) }

// Nodes returns the canvas nodes in insertion order.
func (e *Editor) Nodes() []*Node { return e.session.Canvas().Nodes() }

// Edges returns the canvas edges in insertion order.
func (e *Editor) Edges() []*Edge { return e.session.Canvas().Edges() }

// BuildConfig derives a flow configuration snapshot from the canvas.
func (e *Editor) BuildConfig() *FlowConfig { return e.session.BuildConfig() }

// Save persists the flow remotely and returns its id.
func (e *Editor) Save(ctx context.Context) (string, error) {
	return e.session.Save(ctx)
}

// Test executes the current configuration against a single query.
func (e *Editor) Test(ctx context.Context, query string) (*ExecuteResponse, error) {
	return e.session.Test(ctx, query)
}

// Load replaces the editor state with a persisted flow.
func (e *Editor) Load(ctx context.Context, flowID string) error {
	return e.session.LoadFlow(ctx, flowID)
}

// SnapshotDraft stores the current canvas as a local draft.
func (e *Editor) SnapshotDraft(ctx context.Context) (string, error) {
	return e.drafts.Snapshot(ctx, e.session)
}

// RestoreDraft replaces the editor state with a stored draft.
func (e *Editor) RestoreDraft(ctx context.Context, key string) error {
	return e.drafts.Restore(ctx, e.session, key)
}
