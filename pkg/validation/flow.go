package validation

import (
	"strconv"

	coreflow "github.com/nexusflow/floweditor/internal/core/flow"
)

// ValidateFlowConfig produces a field-level report for a flow
// configuration. The session uses the domain sentinels in core/flow to
// gate save and test; this report is for UI surfaces that want per-field
// messages. Out-of-range values are reported, never clamped.
func ValidateFlowConfig(cfg *coreflow.Config) error {
	if cfg == nil {
		return ValidationErrors{{Field: "flow_config", Message: "flow config is nil"}}
	}

	var errs ValidationErrors
	if err := cfg.Validate(); err != nil {
		switch err {
		case coreflow.ErrEmptyName:
			errs = append(errs, ValidationError{Field: "name", Value: cfg.Name, Message: "flow name is required"})
		case coreflow.ErrNoAgents:
			errs = append(errs, ValidationError{Field: "agents", Value: len(cfg.Agents), Message: "at least one agent is required"})
		case coreflow.ErrMaxStepsOutOfRange:
			errs = append(errs, ValidationError{Field: "max_steps", Value: cfg.MaxSteps, Message: "must be between 1 and 50"})
		default:
			// Fall through to the per-agent scan below for a precise field.
		}
	}

	for i, agent := range cfg.Agents {
		if agent.Temperature < coreflow.MinTemperature || agent.Temperature > coreflow.MaxTemperature {
			errs = append(errs, ValidationError{
				Field:   agentField(i, "temperature"),
				Value:   agent.Temperature,
				Message: "must be between 0 and 1",
			})
		}
		if agent.Name == "" {
			errs = append(errs, ValidationError{
				Field:   agentField(i, "name"),
				Value:   agent.Name,
				Message: "agent name is required",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func agentField(i int, field string) string {
	return "agents[" + strconv.Itoa(i) + "]." + field
}
