package clone

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"sandboxdash/internal/errors"
	"sandboxdash/internal/interfaces"
	"sandboxdash/internal/notify"
	"sandboxdash/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingCloner holds every CreateSandbox call until its uuid is released
type blockingCloner struct {
	mu      sync.Mutex
	gates   map[string]chan error
	started chan string
}

func newBlockingCloner() *blockingCloner {
	return &blockingCloner{
		gates:   make(map[string]chan error),
		started: make(chan string, 8),
	}
}

func (c *blockingCloner) gate(uuid string) chan error {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.gates[uuid]
	if !ok {
		g = make(chan error, 1)
		c.gates[uuid] = g
	}
	return g
}

func (c *blockingCloner) release(uuid string, err error) {
	c.gate(uuid) <- err
}

func (c *blockingCloner) CreateSandbox(ctx context.Context, uuid string) (*types.SandboxCloneResponse, error) {
	c.started <- uuid
	select {
	case err := <-c.gate(uuid):
		if err != nil {
			return nil, err
		}
		return &types.SandboxCloneResponse{UUID: uuid + "-clone"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type memoryRecorder struct {
	mu      sync.Mutex
	records map[string]*interfaces.CloneRecord
}

func (r *memoryRecorder) Create(ctx context.Context, record *interfaces.CloneRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.records == nil {
		r.records = make(map[string]*interfaces.CloneRecord)
	}
	record.ID = fmt.Sprintf("rec-%d", len(r.records)+1)
	record.Status = interfaces.ClonePending
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *memoryRecorder) Finish(ctx context.Context, id string, status interfaces.CloneStatus, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return fmt.Errorf("clone request not found")
	}
	rec.Status = status
	rec.Error = errMsg
	return nil
}

func (r *memoryRecorder) ListRecent(ctx context.Context, limit int) ([]interfaces.CloneRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]interfaces.CloneRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *memoryRecorder) Get(ctx context.Context, id string) (*interfaces.CloneRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, errors.New(errors.ErrNotFound, "clone request not found")
	}
	cp := *rec
	return &cp, nil
}

func waitStarted(t *testing.T, c *blockingCloner, uuid string) {
	t.Helper()
	select {
	case got := <-c.started:
		require.Equal(t, uuid, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("clone of %s never started", uuid)
	}
}

func TestTracker_InFlightUntilSettled(t *testing.T) {
	cloner := newBlockingCloner()
	hub := notify.NewHub()
	events, cancel := hub.Subscribe()
	defer cancel()

	tracker := NewTracker(cloner, hub)
	vm := types.VM{Name: "ubuntu-base", UUID: "uuid-a"}

	require.NoError(t, tracker.Start(vm))
	waitStarted(t, cloner, "uuid-a")

	assert.True(t, tracker.IsCloning("uuid-a"))
	assert.False(t, tracker.IsCloning("uuid-b"), "other rows stay enabled")
	assert.Equal(t, "uuid-a", tracker.InFlight())

	cloner.release("uuid-a", nil)
	tracker.Wait()

	assert.False(t, tracker.IsCloning("uuid-a"))
	assert.Empty(t, tracker.InFlight())

	n := <-events
	assert.Equal(t, notify.KindCloneSettled, n.Kind)
	assert.Equal(t, notify.LevelSuccess, n.Level)
	assert.Equal(t, "uuid-a", n.Subject)
	assert.Contains(t, n.Message, "ubuntu-base")
}

func TestTracker_FailureClearsAndNotifies(t *testing.T) {
	cloner := newBlockingCloner()
	hub := notify.NewHub()
	events, cancel := hub.Subscribe()
	defer cancel()

	tracker := NewTracker(cloner, hub)
	require.NoError(t, tracker.Start(types.VM{Name: "debian", UUID: "uuid-d"}))
	waitStarted(t, cloner, "uuid-d")

	cloner.release("uuid-d", fmt.Errorf("boom"))
	tracker.Wait()

	assert.Empty(t, tracker.InFlight())
	n := <-events
	assert.Equal(t, notify.LevelError, n.Level)
	assert.Equal(t, "Failed to clone debian: boom", n.Message)
}

func TestTracker_ReplacedInFlightNotClearedByEarlierSettle(t *testing.T) {
	cloner := newBlockingCloner()
	tracker := NewTracker(cloner, notify.NewHub())

	require.NoError(t, tracker.Start(types.VM{Name: "a", UUID: "uuid-a"}))
	waitStarted(t, cloner, "uuid-a")
	require.NoError(t, tracker.Start(types.VM{Name: "b", UUID: "uuid-b"}))
	waitStarted(t, cloner, "uuid-b")

	assert.Equal(t, "uuid-b", tracker.InFlight())

	cloner.release("uuid-a", nil)
	assert.Eventually(t, func() bool {
		return len(tracker.hub.Recent()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, tracker.IsCloning("uuid-b"))

	cloner.release("uuid-b", nil)
	tracker.Wait()
	assert.Empty(t, tracker.InFlight())
}

func TestTracker_StartRejectsEmptyUUID(t *testing.T) {
	tracker := NewTracker(newBlockingCloner(), notify.NewHub())

	err := tracker.Start(types.VM{Name: "nameless"})
	require.Error(t, err)
	assert.Empty(t, tracker.InFlight())
	assert.False(t, tracker.IsCloning(""))
}

func TestTracker_RecordsOutcome(t *testing.T) {
	cloner := newBlockingCloner()
	recorder := &memoryRecorder{}
	tracker := NewTracker(cloner, nil, WithRecorder(recorder))

	cloner.release("uuid-r", fmt.Errorf("backend returned status 500"))
	_, err := tracker.Clone(context.Background(), types.VM{Name: "r", UUID: "uuid-r"})
	require.Error(t, err)

	records, err := recorder.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, interfaces.CloneFailed, records[0].Status)
	assert.Equal(t, "backend returned status 500", records[0].Error)
}

func TestTracker_TimeoutSettlesAsFailure(t *testing.T) {
	cloner := newBlockingCloner()
	hub := notify.NewHub()
	tracker := NewTracker(cloner, hub, WithTimeout(20*time.Millisecond))

	require.NoError(t, tracker.Start(types.VM{Name: "slow", UUID: "uuid-s"}))
	tracker.Wait()

	assert.Empty(t, tracker.InFlight())
	recent := hub.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, notify.LevelError, recent[0].Level)
}
