package http

import (
	"github.com/fyrsmithlabs/clusterpilot/internal/diagnosis"
	"github.com/fyrsmithlabs/clusterpilot/internal/planner"
)

// CommandRequest is the request body for POST /api/v1/command.
type CommandRequest struct {
	// Input is the free-form operator request.
	Input string `json:"input"`

	// Namespace, when set, is used for tools that accept a namespace and
	// where the operator's text did not name one.
	Namespace string `json:"namespace,omitempty"`
}

// CommandResponse is the response body for POST /api/v1/command.
type CommandResponse struct {
	Success     bool              `json:"success"`
	Data        *planner.Decision `json:"data,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// DiagnoseRequest is the request body for POST /api/v1/diagnose.
// Either Logs or Lines must be provided.
type DiagnoseRequest struct {
	Logs     string   `json:"logs,omitempty"`
	Lines    []string `json:"lines,omitempty"`
	Resource string   `json:"resource,omitempty"`
}

// DiagnoseResponse is the response body for POST /api/v1/diagnose.
type DiagnoseResponse struct {
	Success bool              `json:"success"`
	Data    *diagnosis.Result `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// ToolInfo is one catalog entry in the GET /api/v1/tools response.
type ToolInfo struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Result           string   `json:"result"`
	PresentationHint string   `json:"presentation_hint"`
	Arguments        string   `json:"arguments"`
	Examples         []string `json:"examples,omitempty"`
}

// ToolsResponse is the response body for GET /api/v1/tools.
type ToolsResponse struct {
	Tools []ToolInfo `json:"tools"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
