package workflow

import (
	"fmt"

	"github.com/alexanderramin/brp/internal/domain"
)

// Validate checks the advance policy of the record's current gate and
// returns the first unmet requirement, or nil.
func Validate(r *domain.BRP) error {
	return validateGate(r, r.Gate, r.Status)
}

// validateGate is fail-fast: checks run in a fixed order and only the
// first failure is reported. requested is the status asked for at gate 7.
func validateGate(r *domain.BRP, gate int, requested domain.Status) error {
	switch gate {
	case 1:
		g := r.G1
		switch {
		case domain.Blank(g.ProjectName):
			return required(1, "g1.projectName", "Project Name is required.")
		case domain.Blank(g.ProjectNumber):
			return required(1, "g1.projectNumber", "Project Number is required.")
		case domain.Blank(g.ProjectDescription):
			return required(1, "g1.projectDescription", "Project Description is required to advance to Gate 2.")
		case domain.Blank(g.SponsorName):
			return required(1, "g1.sponsorName", "Project Sponsor Name is required.")
		case domain.Blank(g.BusinessOwnerName):
			return required(1, "g1.businessOwnerName", "Business Owner Name is required.")
		case g.GovernanceReportingDate.IsZero():
			return required(1, "g1.governanceReportingDate", "Upcoming governance reporting date is required.")
		}
	case 2:
		return validateGate2(&r.G2)
	case 3:
		if r.G3.GovernanceReportingDate.IsZero() {
			return required(3, "g3.governanceReportingDate", "Upcoming governance reporting date is required.")
		}
		if len(r.G2.Benefits) > 0 {
			for _, row := range r.G3.BenefitReporting {
				if row.FirstReportingDate.IsZero() || row.Frequency == "" || row.ExpectedRealizationDate.IsZero() {
					return required(3, "g3.benefitReporting",
						"Fill all benefit reporting fields (first date, frequency, expected realization) to advance.")
				}
			}
		}
	case 4, 6:
		if r.GovernanceDate(gate).IsZero() {
			return required(gate, gateField(gate, "governanceReportingDate"), "Upcoming governance reporting date is required.")
		}
	case 5:
		if r.G5.GovernanceReportingDate.IsZero() {
			return required(5, "g5.governanceReportingDate", "Upcoming governance reporting date is required.")
		}
		for _, t := range r.G5.Transitions {
			if !t.Complete() {
				return required(5, "g5.transitions",
					"Complete each transition row (activity, accountable, target date) or remove it.")
			}
		}
	case 7:
		if domain.Blank(string(requested)) {
			return required(7, "status", "Set BRP status.")
		}
		if requested == domain.StatusComplete && domain.Blank(r.G7.Signoff) {
			return required(7, "g7.signoff", "Add governance sign-off / closeout notes to mark Complete.")
		}
	}
	return nil
}

func validateGate2(g *domain.Gate2Data) error {
	switch {
	case len(g.Outcomes) == 0:
		return required(2, "g2.outcomes", "Add at least one outcome to advance.")
	case len(g.Options) == 0:
		return required(2, "g2.options", "Add at least one project option to advance.")
	case len(g.Benefits) == 0:
		return required(2, "g2.benefits", "Add at least one benefit to advance.")
	case len(g.KPIs) == 0:
		return required(2, "g2.kpis", "Add at least one KPI to advance.")
	case g.GovernanceReportingDate.IsZero():
		return required(2, "g2.governanceReportingDate", "Upcoming governance reporting date is required.")
	}
	for _, o := range g.Outcomes {
		if domain.Blank(o.Name) {
			return required(2, "g2.outcomes.name", "Every outcome must have a name.")
		}
	}
	for _, o := range g.Options {
		if domain.Blank(o.Name) || domain.Blank(o.Description) {
			return required(2, "g2.options.name", "Every option needs a name and description.")
		}
	}
	for _, b := range g.Benefits {
		if domain.Blank(b.Name) || domain.Blank(b.Type) {
			return required(2, "g2.benefits.name", "Every benefit needs a name and type.")
		}
	}
	for _, k := range g.KPIs {
		if domain.Blank(k.Name) || domain.Blank(k.Unit) {
			return required(2, "g2.kpis.name", "Every KPI needs a name and unit.")
		}
	}
	return nil
}

func gateField(gate int, name string) string {
	return fmt.Sprintf("g%d.%s", gate, name)
}
