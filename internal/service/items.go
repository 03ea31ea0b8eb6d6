package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/brp/internal/domain"
)

// AddItem appends an empty row of the given kind. New benefits point at the
// first outcome and new KPIs at the first benefit.
func (s *brpService) AddItem(ctx context.Context, id string, kind domain.ItemKind) (*domain.BRP, error) {
	if !domain.ValidItemKinds[kind] {
		return nil, fmt.Errorf("%q: %w", kind, domain.ErrUnknownKind)
	}
	return s.mutate(ctx, id, func(c *domain.Collection, r *domain.BRP) (bool, error) {
		if err := checkEditGate(r, kind); err != nil {
			return false, err
		}
		g2 := &r.G2
		action := domain.ActionGate2Add
		switch kind {
		case domain.KindOutcome:
			if len(g2.Outcomes) >= domain.MaxOutcomes {
				return false, fmt.Errorf("at most %d outcomes: %w", domain.MaxOutcomes, domain.ErrLimitReached)
			}
			g2.Outcomes = append(g2.Outcomes, domain.Outcome{ID: domain.NewEntityID(domain.PrefixOutcome)})
		case domain.KindOption:
			if len(g2.Options) >= domain.MaxOptions {
				return false, fmt.Errorf("at most %d options: %w", domain.MaxOptions, domain.ErrLimitReached)
			}
			g2.Options = append(g2.Options, domain.Option{ID: domain.NewEntityID(domain.PrefixOption)})
		case domain.KindBenefit:
			b := domain.Benefit{ID: domain.NewEntityID(domain.PrefixBenefit)}
			if len(g2.Outcomes) > 0 {
				b.OutcomeID = g2.Outcomes[0].ID
			}
			g2.Benefits = append(g2.Benefits, b)
		case domain.KindKPI:
			k := domain.KPI{ID: domain.NewEntityID(domain.PrefixKPI)}
			if len(g2.Benefits) > 0 {
				k.BenefitID = g2.Benefits[0].ID
			}
			g2.KPIs = append(g2.KPIs, k)
		case domain.KindRole:
			g2.Roles = append(g2.Roles, domain.Role{RoleType: "Project Manager"})
		case domain.KindTransition:
			r.G5.Transitions = append(r.G5.Transitions, domain.Transition{})
			action = domain.ActionGate5Add
		}
		s.afterItemEdit(c, r, action, domain.EventMeta{Kind: kind})
		return true, nil
	})
}

// RemoveItem deletes the row at index. Rows of later gates that referenced a
// removed benefit or KPI are pruned by the following synchronization.
func (s *brpService) RemoveItem(ctx context.Context, id string, kind domain.ItemKind, index int) (*domain.BRP, error) {
	if !domain.ValidItemKinds[kind] {
		return nil, fmt.Errorf("%q: %w", kind, domain.ErrUnknownKind)
	}
	return s.mutate(ctx, id, func(c *domain.Collection, r *domain.BRP) (bool, error) {
		if err := checkEditGate(r, kind); err != nil {
			return false, err
		}
		g2 := &r.G2
		var err error
		action := domain.ActionGate2Remove
		switch kind {
		case domain.KindOutcome:
			g2.Outcomes, err = removeAt(g2.Outcomes, index)
		case domain.KindOption:
			g2.Options, err = removeAt(g2.Options, index)
		case domain.KindBenefit:
			g2.Benefits, err = removeAt(g2.Benefits, index)
		case domain.KindKPI:
			g2.KPIs, err = removeAt(g2.KPIs, index)
		case domain.KindRole:
			g2.Roles, err = removeAt(g2.Roles, index)
		case domain.KindTransition:
			r.G5.Transitions, err = removeAt(r.G5.Transitions, index)
			action = domain.ActionGate5Remove
		}
		if err != nil {
			return false, fmt.Errorf("%s %d: %w", kind, index, err)
		}
		s.afterItemEdit(c, r, action, domain.EventMeta{Kind: kind, Index: domain.IntPtr(index)})
		return true, nil
	})
}

// SetOptionSelected marks the option at index as selected or not.
func (s *brpService) SetOptionSelected(ctx context.Context, id string, index int, selected bool) (*domain.BRP, error) {
	return s.mutate(ctx, id, func(c *domain.Collection, r *domain.BRP) (bool, error) {
		if err := checkEditGate(r, domain.KindOption); err != nil {
			return false, err
		}
		if index < 0 || index >= len(r.G2.Options) {
			return false, fmt.Errorf("option %d: %w", index, domain.ErrIndexOutOfRange)
		}
		r.G2.Options[index].Selected = selected
		s.afterItemEdit(c, r, domain.ActionGate2Update, domain.EventMeta{
			Kind:     domain.KindOptionSelected,
			Index:    domain.IntPtr(index),
			Selected: domain.BoolPtr(selected),
		})
		return true, nil
	})
}

// checkEditGate allows list edits only on the gate that owns the list, so
// later gates cannot undo what an earlier gate validated.
func checkEditGate(r *domain.BRP, kind domain.ItemKind) error {
	if want := kind.Gate(); r.Gate != want {
		return fmt.Errorf("%s rows belong to gate %d, BRP %s is at gate %d: %w",
			kind, want, r.ID, r.Gate, domain.ErrWrongGate)
	}
	return nil
}

func (s *brpService) afterItemEdit(c *domain.Collection, r *domain.BRP, action domain.Action, meta domain.EventMeta) {
	r.Touch(s.now())
	r.SyncDerivedLists()
	c.SetLastOpened(r.ID)
	s.store.RecordEvent(c, r, action, meta)
}

func removeAt[T any](items []T, index int) ([]T, error) {
	if index < 0 || index >= len(items) {
		return items, domain.ErrIndexOutOfRange
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...), nil
}
