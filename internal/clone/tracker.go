// Package clone issues sandbox clone requests and tracks the one the
// dashboard currently shows as in flight.
package clone

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"sandboxdash/internal/constants"
	"sandboxdash/internal/errors"
	"sandboxdash/internal/interfaces"
	"sandboxdash/internal/logger"
	"sandboxdash/internal/notify"
	"sandboxdash/internal/types"
)

// Tracker runs clone mutations and remembers a single in-flight VM uuid.
// Starting a second clone replaces the tracked uuid; the first request still
// runs to completion but no longer disables its row.
type Tracker struct {
	cloner   interfaces.SandboxCloner
	recorder interfaces.CloneRecorder
	hub      *notify.Hub

	baseCtx context.Context
	timeout time.Duration

	mu       sync.Mutex
	inFlight string
	wg       sync.WaitGroup
}

// Option configures a Tracker
type Option func(*Tracker)

// WithRecorder persists every clone request
func WithRecorder(r interfaces.CloneRecorder) Option {
	return func(t *Tracker) { t.recorder = r }
}

// WithBaseContext binds background clones to ctx so shutdown cancels them
func WithBaseContext(ctx context.Context) Option {
	return func(t *Tracker) { t.baseCtx = ctx }
}

// WithTimeout bounds each clone request
func WithTimeout(d time.Duration) Option {
	return func(t *Tracker) { t.timeout = d }
}

// NewTracker creates a tracker publishing settle notifications to hub
func NewTracker(cloner interfaces.SandboxCloner, hub *notify.Hub, opts ...Option) *Tracker {
	t := &Tracker{
		cloner:  cloner,
		hub:     hub,
		baseCtx: context.Background(),
		timeout: constants.DefaultHTTPClientTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// InFlight returns the uuid currently shown as cloning, or ""
func (t *Tracker) InFlight() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight
}

// IsCloning reports whether uuid is the in-flight clone
func (t *Tracker) IsCloning(uuid string) bool {
	if uuid == "" {
		return false
	}
	return t.InFlight() == uuid
}

// Start marks vm as in flight and clones it in the background
func (t *Tracker) Start(vm types.VM) error {
	if strings.TrimSpace(vm.UUID) == "" {
		return errors.InvalidInput("uuid", "must not be empty")
	}

	t.mu.Lock()
	t.inFlight = vm.UUID
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(t.baseCtx, t.timeout)
		defer cancel()

		resp, err := t.Clone(ctx, vm)
		t.settle(vm, resp, err)
	}()

	return nil
}

// Clone issues the clone request synchronously and records it. It does not
// touch the in-flight marker or publish notifications.
func (t *Tracker) Clone(ctx context.Context, vm types.VM) (*types.SandboxCloneResponse, error) {
	if strings.TrimSpace(vm.UUID) == "" {
		return nil, errors.InvalidInput("uuid", "must not be empty")
	}

	log := logger.WithContext(ctx).WithFields(logger.Fields{
		"vm_uuid": vm.UUID,
		"vm_name": vm.Name,
	})

	var record *interfaces.CloneRecord
	if t.recorder != nil {
		record = &interfaces.CloneRecord{VMUUID: vm.UUID, VMName: vm.Name}
		if err := t.recorder.Create(ctx, record); err != nil {
			log.WithError(err).Warn("Failed to record clone request")
			record = nil
		}
	}

	log.Info("Requesting sandbox clone")
	resp, err := t.cloner.CreateSandbox(ctx, vm.UUID)

	if record != nil {
		status, msg := interfaces.CloneSucceeded, ""
		if err != nil {
			status, msg = interfaces.CloneFailed, err.Error()
		}
		// the request context may already be done; the log entry should still land
		finishCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if ferr := t.recorder.Finish(finishCtx, record.ID, status, msg); ferr != nil {
			log.WithError(ferr).Warn("Failed to record clone outcome")
		}
		cancel()
	}

	if err != nil {
		log.WithError(err).Warn("Sandbox clone failed")
		return nil, err
	}

	log.Info("Sandbox clone requested")
	return resp, nil
}

// Wait blocks until every background clone has settled
func (t *Tracker) Wait() {
	t.wg.Wait()
}

func (t *Tracker) settle(vm types.VM, resp *types.SandboxCloneResponse, err error) {
	t.mu.Lock()
	if t.inFlight == vm.UUID {
		t.inFlight = ""
	}
	t.mu.Unlock()

	if t.hub == nil {
		return
	}

	name := vm.Name
	if name == "" {
		name = vm.UUID
	}

	n := notify.Notification{
		Kind:    notify.KindCloneSettled,
		Subject: vm.UUID,
	}
	if err != nil {
		n.Level = notify.LevelError
		n.Message = fmt.Sprintf("Failed to clone %s: %v", name, err)
	} else {
		n.Level = notify.LevelSuccess
		n.Message = fmt.Sprintf("Clone of %s requested", name)
		if resp != nil && resp.Name != "" {
			n.Message = fmt.Sprintf("Clone of %s requested (%s)", name, resp.Name)
		}
	}
	t.hub.Publish(n)
}
