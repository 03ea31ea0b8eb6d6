// Package workflow implements the seven-gate state machine. It mutates
// records in memory and reports the events to record; persistence is the
// caller's concern.
package workflow

import (
	"time"

	"github.com/alexanderramin/brp/internal/domain"
)

// Step is an event the caller must record after a transition.
type Step struct {
	Action domain.Action
	Meta   domain.EventMeta
}

// Result reports what a transition did. Steps is non-empty whenever the
// record was mutated, including an Advance that failed validation after its
// implicit save.
type Result struct {
	FromGate int
	ToGate   int
	Steps    []Step
}

// Mutated reports whether the record changed and must be persisted.
func (res Result) Mutated() bool {
	return len(res.Steps) > 0
}

// Machine applies gate transitions using an injected clock.
type Machine struct {
	now func() time.Time
}

// NewMachine returns a Machine. A nil clock uses time.Now in UTC.
func NewMachine(now func() time.Time) *Machine {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Machine{now: now}
}

// Save applies cmd to the current gate without validation. action is
// ActionSaveDraft for explicit saves and ActionEdit for auto-save commits.
func (m *Machine) Save(r *domain.BRP, cmd SaveGateCommand, action domain.Action) (Result, error) {
	if action == "" {
		action = domain.ActionSaveDraft
	}
	if err := cmd.apply(r); err != nil {
		return Result{}, err
	}
	r.Touch(m.now())
	gate := r.Gate
	return Result{
		FromGate: gate,
		ToGate:   gate,
		Steps:    []Step{{Action: action, Meta: domain.EventMeta{Gate: gate}}},
	}, nil
}

// Advance saves cmd, validates the current gate and, when it passes, moves
// the record to the next gate and synchronizes its derived lists.
func (m *Machine) Advance(r *domain.BRP, cmd SaveGateCommand) (Result, error) {
	if r.Gate >= domain.FinalGate {
		return Result{}, ErrFinalGate
	}
	res, err := m.Save(r, cmd, domain.ActionAutoSave)
	if err != nil {
		return Result{}, err
	}
	// Gate rules that walk derived rows must see one row per current entity,
	// not just the rows the command carried.
	r.SyncDerivedLists()
	if err := Validate(r); err != nil {
		return res, err
	}

	from := r.Gate
	r.Gate = domain.ClampGate(from + 1)
	r.Touch(m.now())
	r.SyncDerivedLists()

	res.ToGate = r.Gate
	res.Steps = append(res.Steps, Step{
		Action: domain.ActionAdvance,
		Meta:   domain.EventMeta{FromGate: from, ToGate: r.Gate},
	})
	return res, nil
}

// MoveBack saves cmd without validation and returns the record to the
// previous gate.
func (m *Machine) MoveBack(r *domain.BRP, cmd SaveGateCommand) (Result, error) {
	if r.Gate <= domain.FirstGate {
		return Result{}, ErrFirstGate
	}
	if err := cmd.apply(r); err != nil {
		return Result{}, err
	}

	from := r.Gate
	r.Gate = domain.ClampGate(from - 1)
	r.Touch(m.now())
	return Result{
		FromGate: from,
		ToGate:   r.Gate,
		Steps: []Step{{
			Action: domain.ActionMovePrev,
			Meta:   domain.EventMeta{FromGate: from, ToGate: r.Gate},
		}},
	}, nil
}

// Close saves cmd at gate 7 and validates the closeout policy against the
// requested status. The gate does not change.
func (m *Machine) Close(r *domain.BRP, cmd SaveGateCommand) (Result, error) {
	if r.Gate != domain.FinalGate {
		return Result{}, ErrNotFinalGate
	}
	if err := cmd.apply(r); err != nil {
		return Result{}, err
	}
	requested := r.Status
	r.Touch(m.now())
	res := Result{
		FromGate: r.Gate,
		ToGate:   r.Gate,
		Steps:    []Step{{Action: domain.ActionAutoSave, Meta: domain.EventMeta{Gate: r.Gate}}},
	}
	if err := validateGate(r, r.Gate, requested); err != nil {
		return res, err
	}
	res.Steps = append(res.Steps, Step{
		Action: domain.ActionCloseout,
		Meta:   domain.EventMeta{Gate: r.Gate, Status: requested},
	})
	return res, nil
}
