package usecases

import (
	"context"

	"github.com/nexusflow/floweditor/internal/app/dto"
	"github.com/nexusflow/floweditor/internal/core/flow"
)

// FlowService defines the boundary to the external flow execution and
// persistence service
// PRINCIPLES:
// - SRP: Only responsible for remote flow operations
// - DIP: The editor session depends on this abstraction, not on HTTP
type FlowService interface {
	// ListFlows returns summaries of persisted flows.
	ListFlows(ctx context.Context) ([]dto.FlowSummary, error)

	// GetFlow fetches a persisted flow, with or without visual layout.
	GetFlow(ctx context.Context, flowID string) (*dto.FlowPayload, error)

	// CreateFlow persists a new flow configuration.
	CreateFlow(ctx context.Context, cfg *flow.Config) (*dto.SaveFlowResponse, error)

	// UpdateFlow replaces a persisted flow configuration (last-write-wins).
	UpdateFlow(ctx context.Context, flowID string, cfg *flow.Config) (*dto.SaveFlowResponse, error)

	// DeleteFlow removes a persisted flow.
	DeleteFlow(ctx context.Context, flowID string) error

	// ExecuteConfig runs an unsaved configuration against a single input.
	ExecuteConfig(ctx context.Context, cfg *flow.Config, input string) (*dto.ExecuteResponse, error)

	// ExecuteFlow runs a saved flow by id.
	ExecuteFlow(ctx context.Context, flowID string, req *dto.ExecuteFlowRequest) (*dto.ExecuteResponse, error)

	// ListCapabilities returns the capability catalog.
	ListCapabilities(ctx context.Context) ([]dto.Capability, error)

	// DeployFlow promotes a persisted flow to a deployed version.
	DeployFlow(ctx context.Context, req *dto.DeployFlowRequest) (*dto.Deployment, error)
}
