package domain

import "strings"

type Status string

const (
	StatusDraft      Status = "Draft"
	StatusInProgress Status = "In Progress"
	StatusComplete   Status = "Complete"
)

// ParseStatus accepts any casing of the three canonical status labels.
func ParseStatus(s string) (Status, bool) {
	for _, st := range []Status{StatusDraft, StatusInProgress, StatusComplete} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

type ProgrammeType string

const (
	TypeProject   ProgrammeType = "Project"
	TypeProgramme ProgrammeType = "Programme"
)

type Frequency string

const (
	FrequencyMonthly   Frequency = "Monthly"
	FrequencyQuarterly Frequency = "Quarterly"
	FrequencyAnnually  Frequency = "Annually"
)

// ReportingFrequencies lists the accepted reporting cadences in display order.
var ReportingFrequencies = []Frequency{FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually}

// Organizations is the canonical set of sponsor / owner / implementer orgs.
var Organizations = []string{
	"ADM(Mat)", "ADM(IM)", "ADM(Fin)", "ADM(HR-Civ)", "CIO / IM Group",
	"Project Management Office (PMO)", "Other",
}

// RoleTypes is the canonical set of gate-2 role types.
var RoleTypes = []string{
	"Project Leader", "Project Sponsor", "Project Implementer",
	"Project Director", "Project Manager", "Business Owner",
}

// ItemKind names a repeatable row collection that can be edited in place.
type ItemKind string

const (
	KindOutcome    ItemKind = "outcome"
	KindOption     ItemKind = "option"
	KindBenefit    ItemKind = "benefit"
	KindKPI        ItemKind = "kpi"
	KindRole       ItemKind = "role"
	KindTransition ItemKind = "transition"
)

// ValidItemKinds is the set of kinds accepted by list-editing operations.
var ValidItemKinds = map[ItemKind]bool{
	KindOutcome: true, KindOption: true, KindBenefit: true,
	KindKPI: true, KindRole: true, KindTransition: true,
}

// Gate returns the gate whose screen owns rows of kind k, or 0 for an
// unknown kind.
func (k ItemKind) Gate() int {
	switch k {
	case KindOutcome, KindOption, KindBenefit, KindKPI, KindRole, KindOptionSelected:
		return 2
	case KindTransition:
		return 5
	}
	return 0
}

const (
	MaxOutcomes = 6
	MaxOptions  = 4
)

// KindOptionSelected tags gate2_update events that toggle an option.
const KindOptionSelected ItemKind = "option_selected"
