// Package pack projects records into read-only governance packs and
// portfolio statistics. Nothing here mutates a record.
package pack

import (
	"time"

	"github.com/alexanderramin/brp/internal/domain"
)

// Pack is the flattened governance summary of one record.
type Pack struct {
	ID             string
	Title          string
	ProjectNumber  string
	ProgrammeType  domain.ProgrammeType
	Gate           domain.GateDef
	Status         domain.Status
	Progress       int
	GovernanceDate domain.Date
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Identification Identification

	Outcomes    []OutcomeLine
	Options     []domain.Option
	Benefits    []BenefitLine
	KPIs        []KPILine
	Reporting   []ReportingLine
	Realization []RealizationLine
	Transitions []domain.Transition
	Roles       []domain.Role

	Lessons string
	Signoff string
}

// Identification is the gate-1 block of the pack.
type Identification struct {
	Description       string
	ProgrammeName     string
	Sponsor           string
	SponsorOrg        string
	BusinessOwner     string
	BusinessOwnerOrg  string
	Implementer       string
	ImplementerOrg    string
	DepartmentsAgency string
}

type OutcomeLine struct {
	ID        string
	Name      string
	Alignment string
	Benefits  []string
}

type BenefitLine struct {
	ID      string
	Name    string
	Type    string
	Owner   string
	Outcome string
	KPIs    []string
}

type KPILine struct {
	ID           string
	Name         string
	Unit         string
	Benefit      string
	Baseline     string
	Target       string
	LatestValue  string
	LatestDate   domain.Date
	LatestAtGate int
}

type ReportingLine struct {
	BenefitID               string
	Benefit                 string
	FirstReportingDate      domain.Date
	Frequency               domain.Frequency
	ExpectedRealizationDate domain.Date
}

type RealizationLine struct {
	BenefitID string
	Benefit   string
	Realized  bool
	Date      domain.Date
}

// Build projects r into a governance pack. Derived lists are synchronized
// on a copy; r is never modified.
func Build(r *domain.BRP) Pack {
	rec := r.Clone()
	rec.SyncDerivedLists()

	p := Pack{
		ID:             rec.ID,
		Title:          rec.Title,
		ProjectNumber:  rec.ProjectNumber,
		ProgrammeType:  rec.ProgrammeType,
		Gate:           domain.Gate(rec.Gate),
		Status:         rec.DeriveStatus(),
		Progress:       rec.Progress(),
		GovernanceDate: governanceDate(rec),
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
		Identification: Identification{
			Description:       rec.G1.ProjectDescription,
			ProgrammeName:     rec.G1.ProgrammeName,
			Sponsor:           rec.G1.SponsorName,
			SponsorOrg:        rec.G1.SponsorOrg,
			BusinessOwner:     rec.G1.BusinessOwnerName,
			BusinessOwnerOrg:  rec.G1.BusinessOwnerOrg,
			Implementer:       rec.G1.ImplementerName,
			ImplementerOrg:    rec.G1.ImplementerOrg,
			DepartmentsAgency: rec.G1.DepartmentsAgencies,
		},
		Options:     rec.G2.Options,
		Transitions: rec.G5.Transitions,
		Roles:       rec.G2.Roles,
		Lessons:     rec.Lessons(),
		Signoff:     rec.G7.Signoff,
	}

	outcomeNames := make(map[string]string, len(rec.G2.Outcomes))
	for _, o := range rec.G2.Outcomes {
		outcomeNames[o.ID] = o.Name
	}
	benefitNames := make(map[string]string, len(rec.G2.Benefits))
	for _, b := range rec.G2.Benefits {
		benefitNames[b.ID] = b.Name
	}

	for _, o := range rec.G2.Outcomes {
		line := OutcomeLine{ID: o.ID, Name: o.Name, Alignment: alignment(o)}
		for _, b := range rec.G2.Benefits {
			if b.OutcomeID == o.ID {
				line.Benefits = append(line.Benefits, b.Name)
			}
		}
		p.Outcomes = append(p.Outcomes, line)
	}

	for _, b := range rec.G2.Benefits {
		line := BenefitLine{
			ID: b.ID, Name: b.Name, Type: b.Type, Owner: b.Owner,
			Outcome: outcomeNames[b.OutcomeID],
		}
		for _, k := range rec.G2.KPIs {
			if k.BenefitID == b.ID {
				line.KPIs = append(line.KPIs, k.Name)
			}
		}
		p.Benefits = append(p.Benefits, line)
	}

	latest := LatestKPIActuals(rec)
	for _, k := range rec.G2.KPIs {
		a := latest[k.ID]
		p.KPIs = append(p.KPIs, KPILine{
			ID: k.ID, Name: k.Name, Unit: k.Unit,
			Benefit:      benefitNames[k.BenefitID],
			Baseline:     k.Baseline,
			Target:       k.TargetByOption,
			LatestValue:  a.Value,
			LatestDate:   a.Date,
			LatestAtGate: a.Gate,
		})
	}

	for _, row := range rec.G3.BenefitReporting {
		p.Reporting = append(p.Reporting, ReportingLine{
			BenefitID:               row.BenefitID,
			Benefit:                 benefitNames[row.BenefitID],
			FirstReportingDate:      row.FirstReportingDate,
			Frequency:               row.Frequency,
			ExpectedRealizationDate: row.ExpectedRealizationDate,
		})
	}

	realized := rec.G6.Realized
	if rec.Gate >= domain.FinalGate {
		realized = rec.G7.Realized
	}
	if rec.Gate >= 6 {
		for _, row := range realized {
			p.Realization = append(p.Realization, RealizationLine{
				BenefitID: row.BenefitID,
				Benefit:   benefitNames[row.BenefitID],
				Realized:  row.Realized,
				Date:      row.ActualRealizationDate,
			})
		}
	}
	return p
}

// governanceDate is the current gate's upcoming governance date, falling
// back to the gate-1 date.
func governanceDate(r *domain.BRP) domain.Date {
	if d := r.GovernanceDate(r.Gate); !d.IsZero() {
		return d
	}
	return r.G1.GovernanceReportingDate
}

func alignment(o domain.Outcome) string {
	switch {
	case o.AlignmentDoc != "" && o.AlignmentSection != "":
		return o.AlignmentDoc + ", " + o.AlignmentSection
	default:
		return domain.CoalesceStr(o.AlignmentDoc, o.AlignmentSection)
	}
}
