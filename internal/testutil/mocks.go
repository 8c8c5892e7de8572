package testutil

import (
	"context"

	"sandboxdash/internal/interfaces"
	"sandboxdash/internal/types"

	"github.com/stretchr/testify/mock"
)

var (
	_ interfaces.VMService      = (*MockVMService)(nil)
	_ interfaces.SessionService = (*MockSessionService)(nil)
)

// MockVMService is a mock of the virsh sandbox client
type MockVMService struct {
	mock.Mock
}

func (m *MockVMService) ListVMs(ctx context.Context) ([]types.VM, error) {
	args := m.Called(ctx)
	vms, _ := args.Get(0).([]types.VM)
	return vms, args.Error(1)
}

func (m *MockVMService) CreateSandbox(ctx context.Context, uuid string) (*types.SandboxCloneResponse, error) {
	args := m.Called(ctx, uuid)
	resp, _ := args.Get(0).(*types.SandboxCloneResponse)
	return resp, args.Error(1)
}

// MockSessionService is a mock of the tmux client
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) ListSessions(ctx context.Context) ([]types.TmuxSession, error) {
	args := m.Called(ctx)
	sessions, _ := args.Get(0).([]types.TmuxSession)
	return sessions, args.Error(1)
}

func (m *MockSessionService) GetSession(ctx context.Context, id string) (*types.TmuxSessionDetail, error) {
	args := m.Called(ctx, id)
	detail, _ := args.Get(0).(*types.TmuxSessionDetail)
	return detail, args.Error(1)
}

// MockPinger is a mock reachability probe
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
