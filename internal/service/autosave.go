package service

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/workflow"
)

// DefaultAutoSaveDelay is the quiet period before a scheduled save commits.
const DefaultAutoSaveDelay = 250 * time.Millisecond

type pendingSave struct {
	id  string
	cmd workflow.SaveGateCommand
}

// AutoSaver debounces draft saves. At most one save is pending: every
// Schedule replaces the previous one, and only the latest fires. Commits are
// recorded as "edit" events.
type AutoSaver struct {
	svc     BRPService
	delay   time.Duration
	ctx     context.Context
	onError func(error)

	mu      sync.Mutex
	idle    *sync.Cond // signalled on mu when running drops to zero
	pending *pendingSave
	timer   *time.Timer
	gen     uint64
	stopped bool
	running int
}

// NewAutoSaver returns an AutoSaver committing through svc. onError receives
// failures of timer-driven commits and may be nil.
func NewAutoSaver(ctx context.Context, svc BRPService, delay time.Duration, onError func(error)) *AutoSaver {
	if delay <= 0 {
		delay = DefaultAutoSaveDelay
	}
	if onError == nil {
		onError = func(error) {}
	}
	a := &AutoSaver{svc: svc, delay: delay, ctx: ctx, onError: onError}
	a.idle = sync.NewCond(&a.mu)
	return a
}

// Schedule queues a save of cmd for record id, superseding any pending one.
func (a *AutoSaver) Schedule(id string, cmd workflow.SaveGateCommand) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	gen := a.gen
	a.pending = &pendingSave{id: id, cmd: cmd}
	a.timer = time.AfterFunc(a.delay, func() { a.fire(gen) })
}

// Pending reports whether a save is waiting for its timer.
func (a *AutoSaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

func (a *AutoSaver) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || a.pending == nil || a.stopped {
		a.mu.Unlock()
		return
	}
	p := a.take()
	a.running++
	a.mu.Unlock()

	if err := a.commit(a.ctx, p); err != nil {
		a.onError(err)
	}

	a.mu.Lock()
	a.running--
	if a.running == 0 {
		a.idle.Broadcast()
	}
	a.mu.Unlock()
}

// waitIdle blocks until no timer-driven commit is running. Callers hold mu.
func (a *AutoSaver) waitIdle() {
	for a.running > 0 {
		a.idle.Wait()
	}
}

// take clears the pending save. Callers hold mu.
func (a *AutoSaver) take() *pendingSave {
	p := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.gen++
	return p
}

// Flush commits the pending save now, if any, and waits for timer-driven
// commits already running.
func (a *AutoSaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	p := a.take()
	a.waitIdle()
	a.mu.Unlock()

	if p == nil {
		return nil
	}
	return a.commit(ctx, p)
}

// Stop drops the pending save and waits for running commits. Later
// Schedule calls are ignored.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	a.take()
	a.stopped = true
	a.waitIdle()
	a.mu.Unlock()
}

func (a *AutoSaver) commit(ctx context.Context, p *pendingSave) error {
	_, err := a.svc.Save(ctx, p.id, p.cmd, domain.ActionEdit)
	return err
}
