// Package flow provides the layout-free, backend-executable flow
// configuration entities following Clean Architecture principles with zero
// external dependencies.
package flow

import "strings"

// Bounds enforced at every save/test boundary. Out-of-range values are
// rejected, never clamped.
const (
	MinSteps = 1
	MaxSteps = 50

	MinTemperature = 0.0
	MaxTemperature = 1.0
)

// Defaults applied when loading a configuration with absent metadata.
const (
	DefaultName     = "Untitled Flow"
	DefaultMaxSteps = 10

	DefaultModelProvider = "openai"
	DefaultModelName     = "gpt-4"
)

// Config is the canonical persisted/executable representation of a flow.
// Instances are recomputed on demand from the canvas and discarded after
// use; they are never stored as canonical state.
type Config struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Agents      []AgentConfig  `json:"agents"`
	MaxSteps    int            `json:"max_steps"`
	Tools       map[string]any `json:"tools"` // reserved, currently always empty
}

// AgentConfig is the executable configuration of a single agent. It is
// derived from canvas node data, never hand-edited directly.
type AgentConfig struct {
	Name          string   `json:"name"`
	AgentID       string   `json:"agent_id,omitempty"` // only for persisted identifiers
	Capabilities  []string `json:"capabilities"`
	ModelProvider string   `json:"model_provider"`
	ModelName     string   `json:"model_name"`
	SystemMessage string   `json:"system_message"`
	Temperature   float64  `json:"temperature"`
	ToolNames     []string `json:"tool_names"`
	CanDelegate   bool     `json:"can_delegate"` // always true, reserved for per-agent override
}

// SplitModel splits a combined "provider/name" model string on the first
// slash. Missing parts fall back to the openai/gpt-4 defaults.
func SplitModel(model string) (provider, name string) {
	provider, name = DefaultModelProvider, DefaultModelName
	if model == "" {
		return provider, name
	}
	i := strings.Index(model, "/")
	if i < 0 {
		// No separator: treat the whole string as the provider.
		return model, name
	}
	if p := model[:i]; p != "" {
		provider = p
	}
	if n := model[i+1:]; n != "" {
		name = n
	}
	return provider, name
}

// CombineModel joins provider and name back into the combined model string.
func CombineModel(provider, name string) string {
	if provider == "" {
		provider = DefaultModelProvider
	}
	if name == "" {
		name = DefaultModelName
	}
	return provider + "/" + name
}

// Validate enforces the structural invariants that must hold before a
// configuration crosses the save/test boundary.
// PRINCIPLES:
// - SRP: Single responsibility - validation only
// - KISS: Simple validation rules, easy to understand
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Agents) == 0 {
		return ErrNoAgents
	}
	if c.MaxSteps < MinSteps || c.MaxSteps > MaxSteps {
		return ErrMaxStepsOutOfRange
	}
	for i := range c.Agents {
		if err := c.Agents[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single agent's structural invariants.
func (a *AgentConfig) Validate() error {
	if a.Temperature < MinTemperature || a.Temperature > MaxTemperature {
		return ErrTemperatureOutOfRange
	}
	return nil
}
