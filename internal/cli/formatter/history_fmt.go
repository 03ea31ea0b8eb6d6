package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// DescribeEvent renders an event action with its meta as a short phrase.
func DescribeEvent(e domain.Event) string {
	m := e.Meta
	switch e.Action {
	case domain.ActionCreate:
		return fmt.Sprintf("Created %q (%s)", m.Title, m.ProjectNumber)
	case domain.ActionSeeded:
		return "Created (demo data)"
	case domain.ActionAdvance:
		return fmt.Sprintf("Advanced G%d → G%d", m.FromGate, m.ToGate)
	case domain.ActionMovePrev:
		return fmt.Sprintf("Moved back G%d → G%d", m.FromGate, m.ToGate)
	case domain.ActionCloseout:
		return fmt.Sprintf("Closed out as %s", m.Status)
	case domain.ActionSaveDraft:
		return fmt.Sprintf("Saved draft at G%d", m.Gate)
	case domain.ActionAutoSave:
		return fmt.Sprintf("Auto-saved at G%d", m.Gate)
	case domain.ActionEdit:
		return fmt.Sprintf("Edited G%d", m.Gate)
	case domain.ActionGate2Add, domain.ActionGate5Add:
		return fmt.Sprintf("Added %s", m.Kind)
	case domain.ActionGate2Remove, domain.ActionGate5Remove:
		if m.Index != nil {
			return fmt.Sprintf("Removed %s #%d", m.Kind, *m.Index)
		}
		return fmt.Sprintf("Removed %s", m.Kind)
	case domain.ActionGate2Update:
		if m.Kind == domain.KindOptionSelected && m.Index != nil && m.Selected != nil {
			verb := "Deselected"
			if *m.Selected {
				verb = "Selected"
			}
			return fmt.Sprintf("%s option #%d", verb, *m.Index)
		}
		return "Updated Gate 2"
	case domain.ActionGovernanceView:
		return "Viewed governance pack"
	case domain.ActionGovernancePrint:
		return "Printed governance pack"
	default:
		return string(e.Action)
	}
}

// FormatHistory renders one record's history, newest first.
func FormatHistory(id string, events []domain.Event, now time.Time) string {
	if len(events) == 0 {
		return RenderBox("History "+id, Dim("No events recorded."))
	}
	rows := make([][]string, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		rows = append(rows, []string{
			e.At.Format("2006-01-02 15:04:05"),
			Dim(HumanTimestampFrom(e.At, now)),
			actionStyle(e.Action).Render(string(e.Action)),
			DescribeEvent(e),
		})
	}
	return RenderBox("History "+id, RenderTable([]string{"AT", "", "ACTION", "DETAIL"}, rows))
}

// FormatAudit renders the portfolio audit trail, newest first.
func FormatAudit(events []domain.Event) string {
	if len(events) == 0 {
		return RenderBox("Audit trail", Dim("No events recorded."))
	}
	rows := make([][]string, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		rows = append(rows, []string{
			e.At.Format("2006-01-02 15:04:05"),
			Dim(e.BRPID),
			actionStyle(e.Action).Render(string(e.Action)),
			DescribeEvent(e),
		})
	}
	return RenderBox("Audit trail", strings.TrimRight(RenderTable([]string{"AT", "BRP", "ACTION", "DETAIL"}, rows), "\n"))
}

func actionStyle(a domain.Action) lipgloss.Style {
	switch a {
	case domain.ActionAdvance, domain.ActionCloseout:
		return StyleGreen
	case domain.ActionMovePrev, domain.ActionGate2Remove, domain.ActionGate5Remove:
		return StyleYellow
	case domain.ActionCreate, domain.ActionSeeded:
		return StyleBlue
	default:
		return StyleDim
	}
}
