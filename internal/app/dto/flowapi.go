package dto

import (
	"github.com/nexusflow/floweditor/internal/core/canvas"
	"github.com/nexusflow/floweditor/internal/core/flow"
)

// FlowSummary is one entry of the flow listing endpoint.
type FlowSummary struct {
	ID          string `json:"id,omitempty"`
	FlowID      string `json:"flow_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Ref returns the flow identifier regardless of which field the service
// populated.
func (s *FlowSummary) Ref() string {
	if s.ID != "" {
		return s.ID
	}
	return s.FlowID
}

// FlowPayload is the response of the get-flow endpoint. Nodes and edges are
// optional: a payload without them carries no visual layout and the canvas
// must be synthesized from the agent list.
type FlowPayload struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Config      PayloadConfig  `json:"config"`
	Nodes       []*canvas.Node `json:"nodes,omitempty"`
	Edges       []*canvas.Edge `json:"edges,omitempty"`
}

// PayloadConfig is the executable part of a persisted flow.
type PayloadConfig struct {
	Agents   []flow.AgentConfig `json:"agents"`
	MaxSteps int                `json:"max_steps"`
}

// HasLayout reports whether the payload carries explicit node/edge
// collections.
func (p *FlowPayload) HasLayout() bool {
	return len(p.Nodes) > 0
}

// SaveFlowRequest is the body of the create and update endpoints.
type SaveFlowRequest struct {
	FlowConfig *flow.Config `json:"flow_config"`
}

// SaveFlowResponse carries the persisted flow identifier. The service
// answers with either "id" or "flow_id" depending on the endpoint version.
type SaveFlowResponse struct {
	ID     string `json:"id,omitempty"`
	FlowID string `json:"flow_id,omitempty"`
}

// Ref returns whichever identifier field the service populated.
func (r *SaveFlowResponse) Ref() string {
	if r.ID != "" {
		return r.ID
	}
	return r.FlowID
}

// ExecuteConfigRequest executes an unsaved flow configuration against a
// single input without persisting it.
type ExecuteConfigRequest struct {
	FlowConfig *flow.Config `json:"flow_config"`
	Input      string       `json:"input"`
}

// ExecuteFlowRequest executes a saved flow by id.
type ExecuteFlowRequest struct {
	Input   string         `json:"input" validate:"required"`
	Options map[string]any `json:"options,omitempty"`
}

// ExecuteResponse is the result of either execute endpoint.
type ExecuteResponse struct {
	Output         any          `json:"output"`
	ExecutionTrace []TraceEntry `json:"execution_trace"`
}

// Capability describes one entry of the capability catalog.
type Capability struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DeployFlowRequest is the body of the deploy endpoint.
type DeployFlowRequest struct {
	FlowID      string `json:"flow_id" validate:"required"`
	Version     string `json:"version" validate:"required"`
	Description string `json:"description,omitempty"`
}

// Deployment is the descriptor returned by the deploy endpoint.
type Deployment struct {
	ID         string `json:"id,omitempty"`
	FlowID     string `json:"flow_id"`
	Version    string `json:"version"`
	Status     string `json:"status,omitempty"`
	DeployedAt string `json:"deployed_at,omitempty"`
}
