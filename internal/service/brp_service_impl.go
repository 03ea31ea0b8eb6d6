package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/pack"
	"github.com/alexanderramin/brp/internal/store"
	"github.com/alexanderramin/brp/internal/workflow"
)

type brpService struct {
	store    *store.Store
	machine  *workflow.Machine
	now      func() time.Time
	observer UseCaseObserver

	// mu serializes load-mutate-save cycles so the auto-saver and a
	// foreground command never interleave.
	mu sync.Mutex
}

// NewBRPService wires the use cases to a store. A nil clock uses UTC wall time.
func NewBRPService(st *store.Store, now func() time.Time, observers ...UseCaseObserver) BRPService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &brpService{
		store:    st,
		machine:  workflow.NewMachine(now),
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// observe reports a use case to the observer; call it deferred.
func (s *brpService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func notFound(id string) error {
	return fmt.Errorf("BRP %s: %w", id, domain.ErrNotFound)
}

// mutate loads the collection, runs fn on the record and persists the
// result whenever fn reports a change, even if fn also returns an error.
func (s *brpService) mutate(ctx context.Context, id string, fn func(c *domain.Collection, r *domain.BRP) (bool, error)) (*domain.BRP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.store.Load(ctx)
	r := c.Find(id)
	if r == nil {
		return nil, notFound(id)
	}
	changed, fnErr := fn(c, r)
	if changed {
		if err := s.store.Save(ctx, c); err != nil {
			return nil, err
		}
	}
	return r.Clone(), fnErr
}

func (s *brpService) Create(ctx context.Context, req CreateRequest) (rec *domain.BRP, err error) {
	startedAt := time.Now()
	fields := map[string]any{"title": req.Title}
	defer func() { s.observe(ctx, "create", startedAt, fields, err) }()

	title := strings.TrimSpace(req.Title)
	number := strings.TrimSpace(req.ProjectNumber)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if number == "" {
		return nil, ErrProjectNumberRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.store.Load(ctx)
	r := domain.NewBRP(s.store.NextID(c), title, number, req.ProgrammeType, req.Status, s.now())
	c.Records = append(c.Records, r)
	c.SetLastOpened(r.ID)
	s.store.RecordEvent(c, r, domain.ActionCreate, domain.EventMeta{
		Gate: r.Gate, Title: r.Title, ProjectNumber: r.ProjectNumber,
	})
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	fields["id"] = r.ID
	return r.Clone(), nil
}

// Get returns a synchronized copy of the record without persisting anything.
func (s *brpService) Get(ctx context.Context, id string) (*domain.BRP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.store.Load(ctx).Find(id)
	if r == nil {
		return nil, notFound(id)
	}
	out := r.Clone()
	out.SyncDerivedLists()
	return out, nil
}

// Open makes id the current record and persists its synchronized lists.
func (s *brpService) Open(ctx context.Context, id string) (*domain.BRP, error) {
	return s.mutate(ctx, id, func(c *domain.Collection, r *domain.BRP) (bool, error) {
		c.SetLastOpened(r.ID)
		r.SyncDerivedLists()
		return true, nil
	})
}

func (s *brpService) Resume(ctx context.Context) (*domain.BRP, error) {
	s.mu.Lock()
	c := s.store.Load(ctx)
	s.mu.Unlock()

	r := c.LastOpened()
	if r == nil {
		return nil, ErrNothingToResume
	}
	return s.Open(ctx, r.ID)
}

func (s *brpService) List(ctx context.Context) ([]*domain.BRP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.store.Load(ctx).SortedByID()), nil
}

// Recent returns records by last update, newest first. limit <= 0 means all.
func (s *brpService) Recent(ctx context.Context, limit int) ([]*domain.BRP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.store.Load(ctx).SortedByUpdated()
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return cloneAll(recs), nil
}

func (s *brpService) Search(ctx context.Context, query string) ([]*domain.BRP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.store.Load(ctx).Search(query)), nil
}

func (s *brpService) Save(ctx context.Context, id string, cmd workflow.SaveGateCommand, action domain.Action) (rec *domain.BRP, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id, "action": string(action)}
	defer func() { s.observe(ctx, "save", startedAt, fields, err) }()

	return s.mutate(ctx, id, func(c *domain.Collection, r *domain.BRP) (bool, error) {
		res, err := s.machine.Save(r, cmd, action)
		if err != nil {
			return false, err
		}
		fields["gate"] = r.Gate
		s.record(c, r, res)
		return true, nil
	})
}

// Advance persists the implicit save even when validation fails; the
// returned error is then a *workflow.ValidationError.
func (s *brpService) Advance(ctx context.Context, id string, cmd workflow.SaveGateCommand) (rec *domain.BRP, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "advance", startedAt, fields, err) }()

	return s.mutate(ctx, id, func(c *domain.Collection, r *domain.BRP) (bool, error) {
		res, err := s.machine.Advance(r, cmd)
		fields["from_gate"] = res.FromGate
		fields["to_gate"] = res.ToGate
		s.record(c, r, res)
		return res.Mutated(), err
	})
}

func (s *brpService) MoveBack(ctx context.Context, id string, cmd workflow.SaveGateCommand) (rec *domain.BRP, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "move-back", startedAt, fields, err) }()

	return s.mutate(ctx, id, func(c *domain.Collection, r *domain.BRP) (bool, error) {
		res, err := s.machine.MoveBack(r, cmd)
		fields["from_gate"] = res.FromGate
		fields["to_gate"] = res.ToGate
		s.record(c, r, res)
		return res.Mutated(), err
	})
}

func (s *brpService) Close(ctx context.Context, id string, cmd workflow.SaveGateCommand) (rec *domain.BRP, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id, "status": string(cmd.Status)}
	defer func() { s.observe(ctx, "close", startedAt, fields, err) }()

	return s.mutate(ctx, id, func(c *domain.Collection, r *domain.BRP) (bool, error) {
		res, err := s.machine.Close(r, cmd)
		s.record(c, r, res)
		return res.Mutated(), err
	})
}

func (s *brpService) record(c *domain.Collection, r *domain.BRP, res workflow.Result) {
	if res.Mutated() {
		c.SetLastOpened(r.ID)
	}
	for _, step := range res.Steps {
		s.store.RecordEvent(c, r, step.Action, step.Meta)
	}
}

func (s *brpService) History(ctx context.Context, id string) ([]domain.Event, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.History, nil
}

// Audit returns the newest limit audit entries, oldest first. limit <= 0 means all.
func (s *brpService) Audit(ctx context.Context, limit int) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	audit := s.store.Load(ctx).Audit
	if limit > 0 && len(audit) > limit {
		audit = audit[len(audit)-limit:]
	}
	return append([]domain.Event(nil), audit...), nil
}

func (s *brpService) Stats(ctx context.Context) (pack.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pack.Portfolio(s.store.Load(ctx).Records), nil
}

// Pack builds the governance pack and records that it was viewed or printed.
func (s *brpService) Pack(ctx context.Context, id string, action domain.Action) (*pack.Pack, error) {
	if action == "" {
		action = domain.ActionGovernanceView
	}
	r, err := s.mutate(ctx, id, func(c *domain.Collection, r *domain.BRP) (bool, error) {
		s.store.RecordEvent(c, r, action, domain.EventMeta{Gate: r.Gate, From: "cli"})
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	p := pack.Build(r)
	return &p, nil
}

func (s *brpService) Export(ctx context.Context, w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Export(ctx, w)
}

func (s *brpService) Import(ctx context.Context, r io.Reader) (n int, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "import", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.store.Import(ctx, r)
	if err != nil {
		return 0, err
	}
	fields["records"] = len(c.Records)
	return len(c.Records), nil
}

func (s *brpService) Reset(ctx context.Context) (err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "reset", startedAt, nil, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Reset(ctx)
}

func cloneAll(recs []*domain.BRP) []*domain.BRP {
	out := make([]*domain.BRP, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Clone())
	}
	return out
}
