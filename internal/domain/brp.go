package domain

import (
	"fmt"
	"strings"
	"time"
)

// BRP is a Benefits Realization Plan: the single record type, advanced
// through seven gates.
type BRP struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	ProjectNumber string        `json:"projectNumber"`
	ProgrammeType ProgrammeType `json:"programmeType"`
	Gate          int           `json:"gate"`
	Status        Status        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	G1 Gate1Data `json:"g1"`
	G2 Gate2Data `json:"g2"`
	G3 Gate3Data `json:"g3"`
	G4 Gate4Data `json:"g4"`
	G5 Gate5Data `json:"g5"`
	G6 Gate6Data `json:"g6"`
	G7 Gate7Data `json:"g7"`

	History []Event `json:"history"`
}

// Gate1Data holds identification fields.
type Gate1Data struct {
	ProjectName             string        `json:"projectName"`
	ProjectNumber           string        `json:"projectNumber"`
	ProjectOrProgramme      ProgrammeType `json:"projectOrProgramme,omitempty"`
	ProjectDescription      string        `json:"projectDescription"`
	ProgrammeName           string        `json:"programmeName,omitempty"`
	BRPStatus               Status        `json:"brpStatus,omitempty"`
	SponsorName             string        `json:"sponsorName"`
	SponsorOrg              string        `json:"sponsorOrg,omitempty"`
	BusinessOwnerName       string        `json:"businessOwnerName"`
	BusinessOwnerOrg        string        `json:"businessOwnerOrg,omitempty"`
	ImplementerName         string        `json:"implementerName,omitempty"`
	ImplementerOrg          string        `json:"implementerOrg,omitempty"`
	DepartmentsAgencies     string        `json:"departmentsAgencies,omitempty"`
	GovernanceReportingDate Date          `json:"governanceReportingDate"`
}

// Gate2Data owns the outcome, option, benefit and KPI lists that every later
// gate references by ID.
type Gate2Data struct {
	Outcomes                []Outcome `json:"outcomes"`
	Options                 []Option  `json:"options"`
	Benefits                []Benefit `json:"benefits"`
	KPIs                    []KPI     `json:"kpis"`
	Roles                   []Role    `json:"roles"`
	GovernanceReportingDate Date      `json:"governanceReportingDate"`
}

type Outcome struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	AlignmentDoc     string `json:"alignmentDoc,omitempty"`
	AlignmentSection string `json:"alignmentSection,omitempty"`
}

type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Selected    bool   `json:"selected"`
}

type Benefit struct {
	ID        string `json:"id"`
	OutcomeID string `json:"outcomeId,omitempty"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Owner     string `json:"owner,omitempty"`
}

type KPI struct {
	ID                  string `json:"id"`
	BenefitID           string `json:"benefitId,omitempty"`
	Name                string `json:"name"`
	Unit                string `json:"unit"`
	Baseline            string `json:"baseline,omitempty"`
	BaselineAssumptions string `json:"baselineAssumptions,omitempty"`
	TargetByOption      string `json:"targetByOption,omitempty"`
	TargetAssumptions   string `json:"targetAssumptions,omitempty"`
}

type Role struct {
	RoleType       string `json:"roleType"`
	Responsibility string `json:"responsibility,omitempty"`
	Name           string `json:"name"`
}

// Gate3Data holds the benefit reporting schedule.
type Gate3Data struct {
	BenefitReporting        []ReportingRow `json:"benefitReporting"`
	GovernanceReportingDate Date           `json:"governanceReportingDate"`
}

type ReportingRow struct {
	BenefitID               string    `json:"benefitId"`
	FirstReportingDate      Date      `json:"firstReportingDate"`
	Frequency               Frequency `json:"frequency"`
	ExpectedRealizationDate Date      `json:"expectedRealizationDate"`
}

type KPIActual struct {
	KPIID       string `json:"kpiId"`
	ActualValue string `json:"actualValue"`
	ActualDate  Date   `json:"actualDate"`
}

type RealizationRow struct {
	BenefitID             string `json:"benefitId"`
	Realized              bool   `json:"realized"`
	ActualRealizationDate Date   `json:"actualRealizationDate"`
}

type Transition struct {
	Activity      string `json:"activity"`
	Accountable   string `json:"accountable"`
	TargetEndDate Date   `json:"targetEndDate"`
}

// Complete reports whether every transition field is filled in.
func (t Transition) Complete() bool {
	return !Blank(t.Activity) && !Blank(t.Accountable) && !t.TargetEndDate.IsZero()
}

type Gate4Data struct {
	KPIActuals              []KPIActual `json:"kpiActuals"`
	Lessons                 string      `json:"lessons"`
	GovernanceReportingDate Date        `json:"governanceReportingDate"`
}

type Gate5Data struct {
	KPIActuals              []KPIActual  `json:"kpiActuals"`
	Lessons                 string       `json:"lessons"`
	Transitions             []Transition `json:"transitions"`
	GovernanceReportingDate Date         `json:"governanceReportingDate"`
}

type Gate6Data struct {
	KPIActuals              []KPIActual      `json:"kpiActuals"`
	Realized                []RealizationRow `json:"realized"`
	Lessons                 string           `json:"lessons"`
	GovernanceReportingDate Date             `json:"governanceReportingDate"`
}

type Gate7Data struct {
	KPIActuals              []KPIActual      `json:"kpiActuals"`
	Realized                []RealizationRow `json:"realized"`
	Lessons                 string           `json:"lessons"`
	Signoff                 string           `json:"signoff"`
	GovernanceReportingDate Date             `json:"governanceReportingDate"`
}

// NewBRP builds a gate-1 record with the minimal identification fields set.
func NewBRP(id, title, projectNumber string, kind ProgrammeType, status Status, now time.Time) *BRP {
	if kind == "" {
		kind = TypeProject
	}
	if status == "" {
		status = StatusDraft
	}
	r := &BRP{
		ID:            id,
		Title:         title,
		ProjectNumber: projectNumber,
		ProgrammeType: kind,
		Gate:          FirstGate,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
		G1: Gate1Data{
			ProjectName:        title,
			ProjectNumber:      projectNumber,
			ProjectOrProgramme: kind,
			BRPStatus:          status,
		},
	}
	return r.Normalize()
}

// Normalize replaces nil slices with empty ones and clamps the gate.
// It returns r for chaining.
func (r *BRP) Normalize() *BRP {
	r.Gate = ClampGate(r.Gate)
	if r.G2.Outcomes == nil {
		r.G2.Outcomes = []Outcome{}
	}
	if r.G2.Options == nil {
		r.G2.Options = []Option{}
	}
	if r.G2.Benefits == nil {
		r.G2.Benefits = []Benefit{}
	}
	if r.G2.KPIs == nil {
		r.G2.KPIs = []KPI{}
	}
	if r.G2.Roles == nil {
		r.G2.Roles = []Role{}
	}
	if r.G3.BenefitReporting == nil {
		r.G3.BenefitReporting = []ReportingRow{}
	}
	if r.G4.KPIActuals == nil {
		r.G4.KPIActuals = []KPIActual{}
	}
	if r.G5.KPIActuals == nil {
		r.G5.KPIActuals = []KPIActual{}
	}
	if r.G5.Transitions == nil {
		r.G5.Transitions = []Transition{}
	}
	if r.G6.KPIActuals == nil {
		r.G6.KPIActuals = []KPIActual{}
	}
	if r.G6.Realized == nil {
		r.G6.Realized = []RealizationRow{}
	}
	if r.G7.KPIActuals == nil {
		r.G7.KPIActuals = []KPIActual{}
	}
	if r.G7.Realized == nil {
		r.G7.Realized = []RealizationRow{}
	}
	if r.History == nil {
		r.History = []Event{}
	}
	return r
}

// DeriveStatus computes the display status. It never mutates r.
func (r *BRP) DeriveStatus() Status {
	if strings.EqualFold(string(r.Status), string(StatusComplete)) {
		return StatusComplete
	}
	if r.Gate >= FinalGate {
		return StatusComplete
	}
	if !r.UpdatedAt.IsZero() && !r.CreatedAt.IsZero() && !r.UpdatedAt.Equal(r.CreatedAt) {
		return StatusInProgress
	}
	return StatusDraft
}

// Touch stamps updatedAt and re-derives the stored status.
func (r *BRP) Touch(now time.Time) {
	r.UpdatedAt = now
	r.Status = r.DeriveStatus()
}

// Progress returns the completion percentage for the current gate.
func (r *BRP) Progress() int {
	return ProgressPercent(r.Gate)
}

// GovernanceDate returns the governance reporting date of gate g.
func (r *BRP) GovernanceDate(g int) Date {
	switch ClampGate(g) {
	case 1:
		return r.G1.GovernanceReportingDate
	case 2:
		return r.G2.GovernanceReportingDate
	case 3:
		return r.G3.GovernanceReportingDate
	case 4:
		return r.G4.GovernanceReportingDate
	case 5:
		return r.G5.GovernanceReportingDate
	case 6:
		return r.G6.GovernanceReportingDate
	default:
		return r.G7.GovernanceReportingDate
	}
}

// KPIActuals returns the actuals row set of gate g (4..7), or nil.
func (r *BRP) KPIActuals(g int) []KPIActual {
	switch g {
	case 4:
		return r.G4.KPIActuals
	case 5:
		return r.G5.KPIActuals
	case 6:
		return r.G6.KPIActuals
	case 7:
		return r.G7.KPIActuals
	}
	return nil
}

// Lessons returns the lessons-learned text most relevant to the current gate.
func (r *BRP) Lessons() string {
	switch {
	case r.Gate >= 7:
		return r.G7.Lessons
	case r.Gate == 6:
		return r.G6.Lessons
	case r.Gate == 5:
		return r.G5.Lessons
	default:
		return r.G4.Lessons
	}
}

// FindBenefit returns the g2 benefit with the given ID.
func (r *BRP) FindBenefit(id string) (Benefit, bool) {
	for _, b := range r.G2.Benefits {
		if b.ID == id {
			return b, true
		}
	}
	return Benefit{}, false
}

// FindKPI returns the g2 KPI with the given ID.
func (r *BRP) FindKPI(id string) (KPI, bool) {
	for _, k := range r.G2.KPIs {
		if k.ID == id {
			return k, true
		}
	}
	return KPI{}, false
}

// Clone returns a copy of r whose slices can be mutated without touching r.
func (r *BRP) Clone() *BRP {
	c := *r
	c.G2.Outcomes = cloneSlice(r.G2.Outcomes)
	c.G2.Options = cloneSlice(r.G2.Options)
	c.G2.Benefits = cloneSlice(r.G2.Benefits)
	c.G2.KPIs = cloneSlice(r.G2.KPIs)
	c.G2.Roles = cloneSlice(r.G2.Roles)
	c.G3.BenefitReporting = cloneSlice(r.G3.BenefitReporting)
	c.G4.KPIActuals = cloneSlice(r.G4.KPIActuals)
	c.G5.KPIActuals = cloneSlice(r.G5.KPIActuals)
	c.G5.Transitions = cloneSlice(r.G5.Transitions)
	c.G6.KPIActuals = cloneSlice(r.G6.KPIActuals)
	c.G6.Realized = cloneSlice(r.G6.Realized)
	c.G7.KPIActuals = cloneSlice(r.G7.KPIActuals)
	c.G7.Realized = cloneSlice(r.G7.Realized)
	c.History = cloneSlice(r.History)
	return &c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

// Label returns "ID - Title" for pickers and messages.
func (r *BRP) Label() string {
	if r.Title == "" {
		return r.ID
	}
	return fmt.Sprintf("%s - %s", r.ID, r.Title)
}
