package usecases

import (
	"github.com/nexusflow/floweditor/internal/app/dto"
	"github.com/nexusflow/floweditor/internal/core/canvas"
	"github.com/nexusflow/floweditor/internal/core/flow"
)

// FlowMeta carries the top-level flow metadata that lives outside the
// canvas: the canvas owns topology, the meta owns identity and bounds.
type FlowMeta struct {
	Name        string
	Description string
	MaxSteps    int
}

// Layout synthesis constants: deterministic fallback positions for
// configurations that carry no visual layout.
const (
	layoutBaseX = 100.0
	layoutBaseY = 100.0
	layoutStepX = 250.0
	layoutStepY = 50.0
)

// DelegationLabel is the label attached to synthesized delegation edges.
const DelegationLabel = "delegates"

// BuildFlowConfig derives a flow configuration snapshot from the canvas.
// The function is pure and idempotent: calling it twice without intervening
// canvas mutation yields structurally identical output.
//
// Only agent-kind nodes contribute. AgentID is omitted for ids synthesized
// by the node factory, so editor-generated ids never leak into persisted
// configurations. CanDelegate is always true and Tools always empty; edge
// topology does not influence the agent configs, delegation is decided by
// the execution service from can_delegate alone.
func BuildFlowConfig(c *canvas.Canvas, meta FlowMeta) *flow.Config {
	nodes := c.AgentNodes()
	agents := make([]flow.AgentConfig, 0, len(nodes))
	for _, n := range nodes {
		provider, name := flow.SplitModel(n.Data.Model)
		agent := flow.AgentConfig{
			Name:          n.Data.Label,
			Capabilities:  copyStrings(n.Data.Capabilities),
			ModelProvider: provider,
			ModelName:     name,
			SystemMessage: n.Data.SystemMessage,
			Temperature:   n.Data.Temperature,
			ToolNames:     copyStrings(n.Data.ToolNames),
			CanDelegate:   true,
		}
		if !n.HasSynthesizedID() {
			agent.AgentID = n.ID
		}
		agents = append(agents, agent)
	}
	return &flow.Config{
		Name:        meta.Name,
		Description: meta.Description,
		Agents:      agents,
		MaxSteps:    meta.MaxSteps,
		Tools:       map[string]any{},
	}
}

// CanvasFromFlow builds canvas state from a persisted flow payload.
//
// A payload that already carries node/edge collections is restored
// verbatim. Otherwise one node is synthesized per agent at deterministic
// positions, and the agents are wired into a linear delegation chain: a
// flat ordered list has no graph topology, so the minimal predictable
// default is a chain the user can immediately see and rearrange.
func CanvasFromFlow(payload *dto.FlowPayload) (*canvas.Canvas, FlowMeta) {
	meta := FlowMeta{
		Name:        payload.Name,
		Description: payload.Description,
		MaxSteps:    payload.Config.MaxSteps,
	}
	if meta.Name == "" {
		meta.Name = flow.DefaultName
	}
	if meta.MaxSteps == 0 {
		meta.MaxSteps = flow.DefaultMaxSteps
	}

	c := canvas.New()
	if payload.HasLayout() {
		c.Restore(payload.Nodes, payload.Edges)
		return c, meta
	}

	agents := payload.Config.Agents
	nodes := make([]*canvas.Node, 0, len(agents))
	for i, agent := range agents {
		id := agent.AgentID
		if id == "" {
			id = canvas.NewNodeID()
		}
		nodes = append(nodes, &canvas.Node{
			ID:   id,
			Kind: canvas.NodeKindAgent,
			Position: canvas.Position{
				X: layoutBaseX + layoutStepX*float64(i),
				Y: layoutBaseY + layoutStepY*float64(i),
			},
			Data: canvas.NodeData{
				Label:         agent.Name,
				Capabilities:  copyStrings(agent.Capabilities),
				Model:         flow.CombineModel(agent.ModelProvider, agent.ModelName),
				SystemMessage: agent.SystemMessage,
				Temperature:   agent.Temperature,
				ToolNames:     copyStrings(agent.ToolNames),
			},
		})
	}

	// Default topology: n-1 edges chaining each agent to the next in order.
	edges := make([]*canvas.Edge, 0, max(len(nodes)-1, 0))
	for i := 0; i+1 < len(nodes); i++ {
		edges = append(edges, &canvas.Edge{
			ID:       "edge-" + nodes[i].ID + "-" + nodes[i+1].ID,
			Source:   nodes[i].ID,
			Target:   nodes[i+1].ID,
			Animated: true,
			Label:    DelegationLabel,
		})
	}

	c.Restore(nodes, edges)
	return c, meta
}

func copyStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
