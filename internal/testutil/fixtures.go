package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/brp/internal/domain"
)

var testRecordCounter atomic.Int64

// FixedNow is the reference clock used by fixtures.
var FixedNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// BRPOption customizes a test record.
type BRPOption func(*domain.BRP)

func WithID(id string) BRPOption {
	return func(r *domain.BRP) {
		r.ID = id
	}
}

func WithGate(g int) BRPOption {
	return func(r *domain.BRP) {
		r.Gate = g
	}
}

func WithStatus(s domain.Status) BRPOption {
	return func(r *domain.BRP) {
		r.Status = s
	}
}

func WithUpdatedAt(t time.Time) BRPOption {
	return func(r *domain.BRP) {
		r.UpdatedAt = t
	}
}

// WithBenefit appends an outcome (when none exists) and a benefit.
func WithBenefit(id, name string) BRPOption {
	return func(r *domain.BRP) {
		if len(r.G2.Outcomes) == 0 {
			r.G2.Outcomes = append(r.G2.Outcomes, domain.Outcome{ID: "O000001", Name: "Outcome"})
		}
		r.G2.Benefits = append(r.G2.Benefits, domain.Benefit{
			ID: id, OutcomeID: r.G2.Outcomes[0].ID, Name: name, Type: "Efficiency",
		})
	}
}

// WithKPI appends a KPI tied to benefitID.
func WithKPI(id, benefitID, name string) BRPOption {
	return func(r *domain.BRP) {
		r.G2.KPIs = append(r.G2.KPIs, domain.KPI{
			ID: id, BenefitID: benefitID, Name: name, Unit: "%",
			Baseline: "10", TargetByOption: "20",
		})
	}
}

// WithGovernanceDates fills the governance date of every gate.
func WithGovernanceDates(d domain.Date) BRPOption {
	return func(r *domain.BRP) {
		r.G1.GovernanceReportingDate = d
		r.G2.GovernanceReportingDate = d
		r.G3.GovernanceReportingDate = d
		r.G4.GovernanceReportingDate = d
		r.G5.GovernanceReportingDate = d
		r.G6.GovernanceReportingDate = d
		r.G7.GovernanceReportingDate = d
	}
}

// NewTestBRP builds a gate-1 record created at FixedNow.
func NewTestBRP(title string, opts ...BRPOption) *domain.BRP {
	n := testRecordCounter.Add(1)
	r := domain.NewBRP(domain.FormatRecordID(int(n)), title, "PN-"+domain.FormatRecordID(int(n)),
		domain.TypeProject, domain.StatusDraft, FixedNow)
	for _, opt := range opts {
		opt(r)
	}
	return r.Normalize()
}

// FillGate1 sets every field gate 1 requires to advance.
func FillGate1(r *domain.BRP) {
	r.G1.ProjectName = domain.CoalesceStr(r.G1.ProjectName, r.Title, "Project")
	r.G1.ProjectNumber = domain.CoalesceStr(r.G1.ProjectNumber, r.ProjectNumber, "PN-1")
	r.G1.ProjectDescription = "Replace the legacy case system"
	r.G1.SponsorName = "Sam Sponsor"
	r.G1.BusinessOwnerName = "Olive Owner"
	r.G1.GovernanceReportingDate = "2025-01-15"
}

// FillGate2 gives the record one complete outcome, option, benefit and KPI.
func FillGate2(r *domain.BRP) {
	r.G2.Outcomes = []domain.Outcome{{ID: "O000001", Name: "Faster service"}}
	r.G2.Options = []domain.Option{{ID: "P000001", Name: "Build", Description: "In-house build", Selected: true}}
	r.G2.Benefits = []domain.Benefit{{ID: "B000001", OutcomeID: "O000001", Name: "Reduced wait", Type: "Efficiency"}}
	r.G2.KPIs = []domain.KPI{{ID: "K000001", BenefitID: "B000001", Name: "Wait time", Unit: "days", Baseline: "30", TargetByOption: "10"}}
	r.G2.GovernanceReportingDate = "2025-02-15"
}

// FillGate3 completes the reporting schedule for the current benefits.
func FillGate3(r *domain.BRP) {
	r.SyncDerivedLists()
	for i := range r.G3.BenefitReporting {
		r.G3.BenefitReporting[i].FirstReportingDate = "2025-06-30"
		r.G3.BenefitReporting[i].Frequency = domain.FrequencyQuarterly
		r.G3.BenefitReporting[i].ExpectedRealizationDate = "2026-06-30"
	}
	r.G3.GovernanceReportingDate = "2025-03-15"
}

// FillThrough fills the advance requirements of gates 1..last.
func FillThrough(r *domain.BRP, last int) {
	for g := domain.FirstGate; g <= last; g++ {
		switch g {
		case 1:
			FillGate1(r)
		case 2:
			FillGate2(r)
		case 3:
			FillGate3(r)
		case 4:
			r.G4.GovernanceReportingDate = "2025-04-15"
		case 5:
			r.G5.GovernanceReportingDate = "2025-05-15"
		case 6:
			r.G6.GovernanceReportingDate = "2025-06-15"
		case 7:
			r.G7.GovernanceReportingDate = "2025-07-15"
			r.G7.Signoff = "Closed by the sponsor"
		}
	}
}

// NewBRPAtGate returns a record positioned at gate g with every earlier gate filled.
func NewBRPAtGate(title string, g int) *domain.BRP {
	r := NewTestBRP(title)
	FillThrough(r, g-1)
	r.Gate = domain.ClampGate(g)
	r.SyncDerivedLists()
	return r
}
