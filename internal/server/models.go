package server

import (
	"sandboxdash/internal/interfaces"
	"sandboxdash/internal/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error" example:"Resource not found"`
	RequestID string `json:"request_id,omitempty" example:"cr1p0h3b5v8g00a1b2c0"`
}

// HealthResponse is returned by /health
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Version string `json:"version" example:"0.1.0"`
}

// System Status API models

// SystemStatusResponse represents the overall dashboard status
type SystemStatusResponse struct {
	Status   string          `json:"status" example:"healthy"`
	Version  string          `json:"version" example:"0.1.0"`
	Uptime   string          `json:"uptime" example:"2h30m15s"`
	InFlight string          `json:"in_flight_clone,omitempty"`
	Backends []BackendHealth `json:"backends"`
}

// BackendHealth is the outcome of probing one dependency
type BackendHealth struct {
	Name      string `json:"name" example:"virsh-sandbox"`
	Status    string `json:"status" example:"healthy"`
	LatencyMS int64  `json:"latency_ms" example:"12"`
	Error     string `json:"error,omitempty"`
}

// VM API models

// VMsResponse represents the VM listing
type VMsResponse struct {
	VMs   []types.VM `json:"vms"`
	Total int        `json:"total" example:"3"`
}

// CloneVMRequest optionally names the VM for notifications
type CloneVMRequest struct {
	Name string `json:"name" example:"ubuntu-base"`
}

// CloneAcceptedResponse is returned once a clone has been started
type CloneAcceptedResponse struct {
	Message string `json:"message" example:"Clone requested"`
	UUID    string `json:"uuid" example:"4b1c2a9e-8f3d-4c55-9d7e-0a1b2c3d4e5f"`
	Status  string `json:"status" example:"cloning"`
}

// ClonesResponse lists recorded clone requests
type ClonesResponse struct {
	Clones   []interfaces.CloneRecord `json:"clones"`
	Total    int                      `json:"total" example:"2"`
	InFlight string                   `json:"in_flight,omitempty"`
}

// Tmux API models

// SessionsResponse represents the tmux session listing
type SessionsResponse struct {
	Sessions []types.TmuxSession `json:"sessions"`
	Total    int                 `json:"total" example:"4"`
}
