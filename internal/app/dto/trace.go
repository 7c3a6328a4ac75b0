package dto

// TraceEntryType tags one step of an execution trace.
type TraceEntryType string

const (
	TraceStart          TraceEntryType = "start"
	TraceAgentExecution TraceEntryType = "agent_execution"
	TraceDelegation     TraceEntryType = "delegation"
	TraceToolExecution  TraceEntryType = "tool_execution"
	TraceComplete       TraceEntryType = "complete"
)

// TraceEntry is one ordered record of a flow execution, produced by the
// external service and only consumed here. The payload fields are
// type-dependent: start carries input, delegation carries decision,
// agent/tool execution and complete carry output.
type TraceEntry struct {
	Type      TraceEntryType `json:"type"`
	Step      int            `json:"step"` // 1-based
	Timestamp string         `json:"timestamp"`
	AgentID   string         `json:"agent_id,omitempty"`
	AgentName string         `json:"agent_name,omitempty"`
	Input     any            `json:"input,omitempty"`
	Decision  any            `json:"decision,omitempty"`
	Output    any            `json:"output,omitempty"`
}

// Known reports whether the entry type is one of the documented tags.
func (t TraceEntryType) Known() bool {
	switch t {
	case TraceStart, TraceAgentExecution, TraceDelegation, TraceToolExecution, TraceComplete:
		return true
	}
	return false
}
