package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusflow/floweditor/internal/app/dto"
	"github.com/nexusflow/floweditor/internal/core/canvas"
	"github.com/nexusflow/floweditor/internal/core/flow"
)

func persistedNode(id, label, model string) *canvas.Node {
	return &canvas.Node{
		ID:   id,
		Kind: canvas.NodeKindAgent,
		Data: canvas.NodeData{
			Label:        label,
			Model:        model,
			Capabilities: []string{"search"},
			Temperature:  0.7,
			ToolNames:    []string{"browser"},
		},
	}
}

func TestBuildFlowConfig(t *testing.T) {
	c := canvas.New()
	c.AddNode(persistedNode("agent-uuid-1", "Researcher", "anthropic/claude-3-opus"))
	factoryNode := canvas.NewAgentNode(c, "Agent", canvas.Position{})
	meta := FlowMeta{Name: "research", Description: "desc", MaxSteps: 12}

	cfg := BuildFlowConfig(c, meta)

	require.Len(t, cfg.Agents, 2)
	assert.Equal(t, "research", cfg.Name)
	assert.Equal(t, "desc", cfg.Description)
	assert.Equal(t, 12, cfg.MaxSteps)
	assert.NotNil(t, cfg.Tools)
	assert.Empty(t, cfg.Tools)

	first := cfg.Agents[0]
	assert.Equal(t, "Researcher", first.Name)
	assert.Equal(t, "anthropic", first.ModelProvider)
	assert.Equal(t, "claude-3-opus", first.ModelName)
	assert.True(t, first.CanDelegate)

	// Factory-synthesized ids must not leak into persisted configs
	second := cfg.Agents[1]
	assert.Empty(t, second.AgentID)
	assert.True(t, factoryNode.HasSynthesizedID())

	t.Run("agent_id kept only for non-synthesized ids", func(t *testing.T) {
		// "agent-uuid-1" carries the synthesized prefix, so it is dropped too
		assert.Empty(t, first.AgentID)

		c2 := canvas.New()
		c2.AddNode(persistedNode("9d1c7b9e-1111-4f6e-8b0f-abc123", "Writer", "openai/gpt-4"))
		cfg2 := BuildFlowConfig(c2, meta)
		require.Len(t, cfg2.Agents, 1)
		assert.Equal(t, "9d1c7b9e-1111-4f6e-8b0f-abc123", cfg2.Agents[0].AgentID)
	})
}

func TestBuildFlowConfig_Idempotent(t *testing.T) {
	c := canvas.New()
	c.AddNode(persistedNode("id-a", "A", "openai/gpt-4"))
	c.AddNode(persistedNode("id-b", "B", "openai/gpt-4"))
	meta := FlowMeta{Name: "f", MaxSteps: 10}

	first := BuildFlowConfig(c, meta)
	second := BuildFlowConfig(c, meta)
	assert.Equal(t, first, second)
}

func TestBuildFlowConfig_IgnoresNonAgentNodes(t *testing.T) {
	c := canvas.New()
	c.AddNode(&canvas.Node{ID: "note-1", Kind: canvas.NodeKind("note")})
	cfg := BuildFlowConfig(c, FlowMeta{Name: "f", MaxSteps: 10})
	assert.Empty(t, cfg.Agents)
}

func TestCanvasFromFlow_ChainSynthesis(t *testing.T) {
	payload := &dto.FlowPayload{
		Name:        "pipeline",
		Description: "three stage",
		Config: dto.PayloadConfig{
			MaxSteps: 25,
			Agents: []flow.AgentConfig{
				{Name: "A", ModelProvider: "openai", ModelName: "gpt-4", Temperature: 0.7},
				{Name: "B", ModelProvider: "anthropic", ModelName: "claude-3-opus", Temperature: 0.2},
				{Name: "C", ModelProvider: "openai", ModelName: "gpt-4", Temperature: 0.9},
			},
		},
	}

	c, meta := CanvasFromFlow(payload)

	assert.Equal(t, "pipeline", meta.Name)
	assert.Equal(t, 25, meta.MaxSteps)

	nodes := c.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, canvas.Position{X: 100, Y: 100}, nodes[0].Position)
	assert.Equal(t, canvas.Position{X: 350, Y: 150}, nodes[1].Position)
	assert.Equal(t, canvas.Position{X: 600, Y: 200}, nodes[2].Position)
	assert.Equal(t, "anthropic/claude-3-opus", nodes[1].Data.Model)

	edges := c.Edges()
	require.Len(t, edges, 2, "n agents produce n-1 chain edges")
	assert.Equal(t, nodes[0].ID, edges[0].Source)
	assert.Equal(t, nodes[1].ID, edges[0].Target)
	assert.Equal(t, nodes[1].ID, edges[1].Source)
	assert.Equal(t, nodes[2].ID, edges[1].Target)
	for _, e := range edges {
		assert.True(t, e.Animated)
		assert.Equal(t, DelegationLabel, e.Label)
	}
}

func TestCanvasFromFlow_PreservesPersistedIDs(t *testing.T) {
	payload := &dto.FlowPayload{
		Name: "f",
		Config: dto.PayloadConfig{
			MaxSteps: 10,
			Agents: []flow.AgentConfig{
				{Name: "A", AgentID: "persisted-1", Temperature: 0.5},
				{Name: "B", Temperature: 0.5},
			},
		},
	}

	c, _ := CanvasFromFlow(payload)
	nodes := c.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "persisted-1", nodes[0].ID)
	assert.True(t, nodes[1].HasSynthesizedID(), "absent agent_id falls back to a synthesized id")
}

func TestCanvasFromFlow_VerbatimLayout(t *testing.T) {
	payload := &dto.FlowPayload{
		Name:   "laid-out",
		Config: dto.PayloadConfig{MaxSteps: 10},
		Nodes: []*canvas.Node{
			{ID: "n1", Kind: canvas.NodeKindAgent, Position: canvas.Position{X: 5, Y: 5}},
			{ID: "n2", Kind: canvas.NodeKindAgent, Position: canvas.Position{X: 9, Y: 9}},
		},
		Edges: []*canvas.Edge{
			{ID: "e1", Source: "n2", Target: "n1", Animated: false},
		},
	}

	c, _ := CanvasFromFlow(payload)

	nodes := c.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, canvas.Position{X: 5, Y: 5}, nodes[0].Position)

	edges := c.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, "n2", edges[0].Source)
	assert.False(t, edges[0].Animated, "explicit layout is not rewritten")
}

func TestCanvasFromFlow_MetadataDefaults(t *testing.T) {
	c, meta := CanvasFromFlow(&dto.FlowPayload{})
	assert.Equal(t, flow.DefaultName, meta.Name)
	assert.Equal(t, "", meta.Description)
	assert.Equal(t, flow.DefaultMaxSteps, meta.MaxSteps)
	assert.Empty(t, c.Nodes())
	assert.Empty(t, c.Edges())
}

// Round trip: config -> canvas -> config is stable up to the agent_id
// presence rule (ids synthesized during loading must not reappear).
func TestRoundTripStability(t *testing.T) {
	original := &dto.FlowPayload{
		Name:        "rt",
		Description: "round trip",
		Config: dto.PayloadConfig{
			MaxSteps: 30,
			Agents: []flow.AgentConfig{
				{
					Name:          "A",
					AgentID:       "persisted-a",
					Capabilities:  []string{"search", "math"},
					ModelProvider: "anthropic",
					ModelName:     "claude-3-opus",
					SystemMessage: "be thorough",
					Temperature:   0.3,
					ToolNames:     []string{"browser"},
					CanDelegate:   true,
				},
				{
					Name:          "B",
					Capabilities:  []string{},
					ModelProvider: "openai",
					ModelName:     "gpt-4",
					Temperature:   0.8,
					ToolNames:     []string{},
					CanDelegate:   true,
				},
			},
		},
	}

	c, meta := CanvasFromFlow(original)
	derived := BuildFlowConfig(c, meta)

	assert.Equal(t, original.Name, derived.Name)
	assert.Equal(t, original.Description, derived.Description)
	assert.Equal(t, original.Config.MaxSteps, derived.MaxSteps)
	require.Len(t, derived.Agents, 2)

	// Agent A came with a persisted id and keeps it
	assert.Equal(t, original.Config.Agents[0], derived.Agents[0])

	// Agent B had no persisted id; the id synthesized during loading must
	// not reappear as agent_id
	wantB := original.Config.Agents[1]
	gotB := derived.Agents[1]
	assert.Empty(t, gotB.AgentID)
	gotB.AgentID = ""
	assert.Equal(t, wantB, gotB)
}
