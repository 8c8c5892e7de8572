// Package interfaces provides common interface definitions used throughout sandboxdash.
// The server, the CLI and the clone tracker depend on these rather than on the
// concrete backend clients so tests can swap in fakes.
package interfaces

import (
	"context"
	"time"

	"sandboxdash/internal/types"
)

// VMService is the virsh sandbox surface the dashboard consumes
type VMService interface {
	VMLister
	SandboxCloner
}

// VMLister lists VMs
type VMLister interface {
	ListVMs(ctx context.Context) ([]types.VM, error)
}

// SandboxCloner issues clone requests
type SandboxCloner interface {
	CreateSandbox(ctx context.Context, uuid string) (*types.SandboxCloneResponse, error)
}

// SessionService is the tmux client surface the dashboard consumes
type SessionService interface {
	ListSessions(ctx context.Context) ([]types.TmuxSession, error)
	GetSession(ctx context.Context, id string) (*types.TmuxSessionDetail, error)
}

// Pinger is implemented by backends that can be probed for reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a health check function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// CloneStatus is the lifecycle of a recorded clone request
type CloneStatus string

const (
	ClonePending   CloneStatus = "pending"
	CloneSucceeded CloneStatus = "succeeded"
	CloneFailed    CloneStatus = "failed"
)

// CloneRecord is one entry of the clone activity log
type CloneRecord struct {
	ID         string      `json:"id" db:"id"`
	VMUUID     string      `json:"vm_uuid" db:"vm_uuid"`
	VMName     string      `json:"vm_name" db:"vm_name"`
	Status     CloneStatus `json:"status" db:"status"`
	Error      string      `json:"error,omitempty" db:"error"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	FinishedAt *time.Time  `json:"finished_at,omitempty" db:"finished_at"`
}

// CloneRecorder persists clone activity
type CloneRecorder interface {
	Create(ctx context.Context, record *CloneRecord) error
	Finish(ctx context.Context, id string, status CloneStatus, errMsg string) error
	ListRecent(ctx context.Context, limit int) ([]CloneRecord, error)
	// Get fails with a NOT_FOUND DashError for an unknown id
	Get(ctx context.Context, id string) (*CloneRecord, error)
}
