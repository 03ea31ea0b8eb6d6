package workflow

import (
	"github.com/alexanderramin/brp/internal/domain"
)

// SaveGateCommand carries the edited payload of one gate. Only the payload
// matching Gate is applied; nil means "no field changes". Gate 0 targets the
// record's current gate.
type SaveGateCommand struct {
	Gate int

	G1 *domain.Gate1Data
	G2 *domain.Gate2Data
	G3 *domain.Gate3Data
	G4 *domain.Gate4Data
	G5 *domain.Gate5Data
	G6 *domain.Gate6Data
	G7 *domain.Gate7Data

	// Status is the closeout status chosen at gate 7.
	Status domain.Status
}

// CommandFor returns a command pre-filled with a copy of r's current gate
// payload, ready to be edited and applied.
func CommandFor(r *domain.BRP) SaveGateCommand {
	cmd := SaveGateCommand{Gate: r.Gate}
	switch r.Gate {
	case 1:
		g := r.G1
		cmd.G1 = &g
	case 2:
		g := r.G2
		g.Outcomes = append([]domain.Outcome{}, g.Outcomes...)
		g.Options = append([]domain.Option{}, g.Options...)
		g.Benefits = append([]domain.Benefit{}, g.Benefits...)
		g.KPIs = append([]domain.KPI{}, g.KPIs...)
		g.Roles = append([]domain.Role{}, g.Roles...)
		cmd.G2 = &g
	case 3:
		g := r.G3
		g.BenefitReporting = append([]domain.ReportingRow{}, g.BenefitReporting...)
		cmd.G3 = &g
	case 4:
		g := r.G4
		g.KPIActuals = append([]domain.KPIActual{}, g.KPIActuals...)
		cmd.G4 = &g
	case 5:
		g := r.G5
		g.KPIActuals = append([]domain.KPIActual{}, g.KPIActuals...)
		g.Transitions = append([]domain.Transition{}, g.Transitions...)
		cmd.G5 = &g
	case 6:
		g := r.G6
		g.KPIActuals = append([]domain.KPIActual{}, g.KPIActuals...)
		g.Realized = append([]domain.RealizationRow{}, g.Realized...)
		cmd.G6 = &g
	case 7:
		g := r.G7
		g.KPIActuals = append([]domain.KPIActual{}, g.KPIActuals...)
		g.Realized = append([]domain.RealizationRow{}, g.Realized...)
		cmd.G7 = &g
		cmd.Status = r.Status
	}
	return cmd
}

// apply copies the command payload into r without validating it.
func (cmd SaveGateCommand) apply(r *domain.BRP) error {
	gate := cmd.Gate
	if gate == 0 {
		gate = r.Gate
	}
	if gate != r.Gate {
		return ErrGateMismatch
	}

	switch gate {
	case 1:
		if cmd.G1 != nil {
			r.G1 = *cmd.G1
			r.Title = domain.CoalesceStr(r.G1.ProjectName, r.Title)
			r.ProjectNumber = domain.CoalesceStr(r.G1.ProjectNumber, r.ProjectNumber)
			if r.G1.ProjectOrProgramme != "" {
				r.ProgrammeType = r.G1.ProjectOrProgramme
			}
			if r.G1.BRPStatus != "" {
				r.Status = r.G1.BRPStatus
			}
		}
	case 2:
		if cmd.G2 != nil {
			r.G2 = *cmd.G2
		}
		r.G2.NormalizeIDs()
	case 3:
		if cmd.G3 != nil {
			r.G3 = *cmd.G3
		}
	case 4:
		if cmd.G4 != nil {
			r.G4 = *cmd.G4
		}
	case 5:
		if cmd.G5 != nil {
			r.G5 = *cmd.G5
		}
	case 6:
		if cmd.G6 != nil {
			r.G6 = *cmd.G6
		}
	case 7:
		if cmd.G7 != nil {
			r.G7 = *cmd.G7
		}
		if cmd.Status != "" {
			r.Status = cmd.Status
		}
	}
	r.Normalize()
	return nil
}

// Clone returns a deep copy of cmd. Edits to the copy's payload never reach
// the original.
func (cmd SaveGateCommand) Clone() SaveGateCommand {
	out := cmd
	if cmd.G1 != nil {
		g := *cmd.G1
		out.G1 = &g
	}
	if cmd.G2 != nil {
		g := *cmd.G2
		g.Outcomes = append([]domain.Outcome{}, g.Outcomes...)
		g.Options = append([]domain.Option{}, g.Options...)
		g.Benefits = append([]domain.Benefit{}, g.Benefits...)
		g.KPIs = append([]domain.KPI{}, g.KPIs...)
		g.Roles = append([]domain.Role{}, g.Roles...)
		out.G2 = &g
	}
	if cmd.G3 != nil {
		g := *cmd.G3
		g.BenefitReporting = append([]domain.ReportingRow{}, g.BenefitReporting...)
		out.G3 = &g
	}
	if cmd.G4 != nil {
		g := *cmd.G4
		g.KPIActuals = append([]domain.KPIActual{}, g.KPIActuals...)
		out.G4 = &g
	}
	if cmd.G5 != nil {
		g := *cmd.G5
		g.KPIActuals = append([]domain.KPIActual{}, g.KPIActuals...)
		g.Transitions = append([]domain.Transition{}, g.Transitions...)
		out.G5 = &g
	}
	if cmd.G6 != nil {
		g := *cmd.G6
		g.KPIActuals = append([]domain.KPIActual{}, g.KPIActuals...)
		g.Realized = append([]domain.RealizationRow{}, g.Realized...)
		out.G6 = &g
	}
	if cmd.G7 != nil {
		g := *cmd.G7
		g.KPIActuals = append([]domain.KPIActual{}, g.KPIActuals...)
		g.Realized = append([]domain.RealizationRow{}, g.Realized...)
		out.G7 = &g
	}
	return out
}
