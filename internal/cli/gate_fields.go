package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/workflow"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldLongText
	fieldDate
	fieldChoice
	fieldBool
)

// boundField is one editable gate field wired to its storage inside a
// SaveGateCommand payload. Exactly one of Text or Flag is set.
type boundField struct {
	Key     string
	Label   string
	Kind    fieldKind
	Choices []string
	// Group names the row the field belongs to; empty for scalar fields.
	Group string

	Text *string
	Flag *bool
}

// Value renders the current value as text.
func (f boundField) Value() string {
	if f.Flag != nil {
		return strconv.FormatBool(*f.Flag)
	}
	return *f.Text
}

// Set parses v according to the field kind and stores it.
func (f boundField) Set(v string) error {
	v = strings.TrimSpace(v)
	switch f.Kind {
	case fieldBool:
		b, err := parseYesNo(v)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Key, err)
		}
		*f.Flag = b
		return nil
	case fieldDate:
		if err := validateOptionalDate(v); err != nil {
			return fmt.Errorf("%s: %w", f.Key, err)
		}
	case fieldChoice:
		if v == "" {
			break
		}
		canonical, ok := matchChoice(f.Choices, v)
		if !ok {
			return fmt.Errorf("%s: %q is not one of %s", f.Key, v, strings.Join(f.Choices, ", "))
		}
		v = canonical
	}
	*f.Text = v
	return nil
}

func parseYesNo(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "y", "yes":
		return true, nil
	case "n", "no", "":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("expected yes or no, got %q", v)
	}
	return b, nil
}

func matchChoice(choices []string, v string) (string, bool) {
	for _, c := range choices {
		if strings.EqualFold(c, v) {
			return c, true
		}
	}
	return "", false
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if !domain.Date(s).Valid() {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func textField(key, label string, kind fieldKind, p *string) boundField {
	return boundField{Key: key, Label: label, Kind: kind, Text: p}
}

func dateField(key, label string, p *domain.Date) boundField {
	return boundField{Key: key, Label: label, Kind: fieldDate, Text: (*string)(p)}
}

func choiceField(key, label string, choices []string, p *string) boundField {
	return boundField{Key: key, Label: label, Kind: fieldChoice, Choices: choices, Text: p}
}

func boolField(key, label string, p *bool) boundField {
	return boundField{Key: key, Label: label, Kind: fieldBool, Flag: p}
}

func rowKey(list string, i int, field string) string {
	return fmt.Sprintf("%s.%d.%s", list, i, field)
}

var (
	programmeChoices = []string{string(domain.TypeProject), string(domain.TypeProgramme)}
	statusChoices    = []string{string(domain.StatusDraft), string(domain.StatusInProgress), string(domain.StatusComplete)}
)

func frequencyChoices() []string {
	out := make([]string, len(domain.ReportingFrequencies))
	for i, f := range domain.ReportingFrequencies {
		out[i] = string(f)
	}
	return out
}

// bindGateFields returns every editable field of the payload selected by
// cmd.Gate, in display order. Row fields carry "list.index.field" keys.
// lookup is used to label derived rows with benefit and KPI names.
func bindGateFields(cmd *workflow.SaveGateCommand, lookup *domain.BRP) []boundField {
	switch cmd.Gate {
	case 1:
		return bindGate1(cmd.G1)
	case 2:
		return bindGate2(cmd.G2)
	case 3:
		return bindGate3(cmd.G3, lookup)
	case 4:
		g := cmd.G4
		fields := bindActuals(g.KPIActuals, lookup)
		return append(fields,
			textField("lessons", "Lessons learned", fieldLongText, &g.Lessons),
			dateField("governanceReportingDate", "Governance reporting date", &g.GovernanceReportingDate))
	case 5:
		g := cmd.G5
		fields := bindActuals(g.KPIActuals, lookup)
		for i := range g.Transitions {
			t := &g.Transitions[i]
			group := fmt.Sprintf("Transition %d", i+1)
			fields = append(fields,
				withGroup(textField(rowKey("transitions", i, "activity"), "Activity", fieldText, &t.Activity), group),
				withGroup(textField(rowKey("transitions", i, "accountable"), "Accountable", fieldText, &t.Accountable), group),
				withGroup(dateField(rowKey("transitions", i, "targetEndDate"), "Target end date", &t.TargetEndDate), group))
		}
		return append(fields,
			textField("lessons", "Lessons learned", fieldLongText, &g.Lessons),
			dateField("governanceReportingDate", "Governance reporting date", &g.GovernanceReportingDate))
	case 6:
		g := cmd.G6
		fields := append(bindActuals(g.KPIActuals, lookup), bindRealized(g.Realized, lookup)...)
		return append(fields,
			textField("lessons", "Lessons learned", fieldLongText, &g.Lessons),
			dateField("governanceReportingDate", "Governance reporting date", &g.GovernanceReportingDate))
	case 7:
		g := cmd.G7
		fields := append(bindActuals(g.KPIActuals, lookup), bindRealized(g.Realized, lookup)...)
		return append(fields,
			textField("lessons", "Lessons learned", fieldLongText, &g.Lessons),
			textField("signoff", "Sign-off / closeout", fieldLongText, &g.Signoff),
			choiceField("status", "Closeout status", statusChoices, (*string)(&cmd.Status)),
			dateField("governanceReportingDate", "Governance reporting date", &g.GovernanceReportingDate))
	}
	return nil
}

func withGroup(f boundField, group string) boundField {
	f.Group = group
	return f
}

func bindGate1(g *domain.Gate1Data) []boundField {
	orgs := domain.Organizations
	return []boundField{
		textField("projectName", "Project name", fieldText, &g.ProjectName),
		textField("projectNumber", "Project number", fieldText, &g.ProjectNumber),
		choiceField("projectOrProgramme", "Project or programme", programmeChoices, (*string)(&g.ProjectOrProgramme)),
		textField("programmeName", "Programme name", fieldText, &g.ProgrammeName),
		textField("projectDescription", "Project description", fieldLongText, &g.ProjectDescription),
		choiceField("brpStatus", "BRP status", statusChoices, (*string)(&g.BRPStatus)),
		textField("sponsorName", "Sponsor name", fieldText, &g.SponsorName),
		choiceField("sponsorOrg", "Sponsor organization", orgs, &g.SponsorOrg),
		textField("businessOwnerName", "Business owner name", fieldText, &g.BusinessOwnerName),
		choiceField("businessOwnerOrg", "Business owner organization", orgs, &g.BusinessOwnerOrg),
		textField("implementerName", "Implementer name", fieldText, &g.ImplementerName),
		choiceField("implementerOrg", "Implementer organization", orgs, &g.ImplementerOrg),
		textField("departmentsAgencies", "Departments / agencies", fieldText, &g.DepartmentsAgencies),
		dateField("governanceReportingDate", "Governance reporting date", &g.GovernanceReportingDate),
	}
}

func bindGate2(g *domain.Gate2Data) []boundField {
	outcomeIDs := make([]string, 0, len(g.Outcomes))
	for _, o := range g.Outcomes {
		outcomeIDs = append(outcomeIDs, o.ID)
	}
	benefitIDs := make([]string, 0, len(g.Benefits))
	for _, b := range g.Benefits {
		benefitIDs = append(benefitIDs, b.ID)
	}

	var fields []boundField
	for i := range g.Outcomes {
		o := &g.Outcomes[i]
		group := fmt.Sprintf("Outcome %d %s", i+1, o.ID)
		fields = append(fields,
			withGroup(textField(rowKey("outcomes", i, "name"), "Name", fieldText, &o.Name), group),
			withGroup(textField(rowKey("outcomes", i, "alignmentDoc"), "Alignment document", fieldText, &o.AlignmentDoc), group),
			withGroup(textField(rowKey("outcomes", i, "alignmentSection"), "Alignment section", fieldText, &o.AlignmentSection), group))
	}
	for i := range g.Options {
		o := &g.Options[i]
		group := fmt.Sprintf("Option %d %s", i+1, o.ID)
		fields = append(fields,
			withGroup(textField(rowKey("options", i, "name"), "Name", fieldText, &o.Name), group),
			withGroup(textField(rowKey("options", i, "description"), "Description", fieldLongText, &o.Description), group),
			withGroup(boolField(rowKey("options", i, "selected"), "Selected", &o.Selected), group))
	}
	for i := range g.Benefits {
		b := &g.Benefits[i]
		group := fmt.Sprintf("Benefit %d %s", i+1, b.ID)
		fields = append(fields,
			withGroup(textField(rowKey("benefits", i, "name"), "Name", fieldText, &b.Name), group),
			withGroup(textField(rowKey("benefits", i, "type"), "Type", fieldText, &b.Type), group),
			withGroup(textField(rowKey("benefits", i, "owner"), "Owner", fieldText, &b.Owner), group),
			withGroup(choiceField(rowKey("benefits", i, "outcomeId"), "Outcome", outcomeIDs, &b.OutcomeID), group))
	}
	for i := range g.KPIs {
		k := &g.KPIs[i]
		group := fmt.Sprintf("KPI %d %s", i+1, k.ID)
		fields = append(fields,
			withGroup(textField(rowKey("kpis", i, "name"), "Name", fieldText, &k.Name), group),
			withGroup(textField(rowKey("kpis", i, "unit"), "Unit", fieldText, &k.Unit), group),
			withGroup(textField(rowKey("kpis", i, "baseline"), "Baseline", fieldText, &k.Baseline), group),
			withGroup(textField(rowKey("kpis", i, "baselineAssumptions"), "Baseline assumptions", fieldLongText, &k.BaselineAssumptions), group),
			withGroup(textField(rowKey("kpis", i, "targetByOption"), "Target by option", fieldText, &k.TargetByOption), group),
			withGroup(textField(rowKey("kpis", i, "targetAssumptions"), "Target assumptions", fieldLongText, &k.TargetAssumptions), group),
			withGroup(choiceField(rowKey("kpis", i, "benefitId"), "Benefit", benefitIDs, &k.BenefitID), group))
	}
	for i := range g.Roles {
		r := &g.Roles[i]
		group := fmt.Sprintf("Role %d", i+1)
		fields = append(fields,
			withGroup(choiceField(rowKey("roles", i, "roleType"), "Role type", domain.RoleTypes, &r.RoleType), group),
			withGroup(textField(rowKey("roles", i, "name"), "Name", fieldText, &r.Name), group),
			withGroup(textField(rowKey("roles", i, "responsibility"), "Responsibility", fieldText, &r.Responsibility), group))
	}
	return append(fields, dateField("governanceReportingDate", "Governance reporting date", &g.GovernanceReportingDate))
}

func bindGate3(g *domain.Gate3Data, lookup *domain.BRP) []boundField {
	var fields []boundField
	for i := range g.BenefitReporting {
		row := &g.BenefitReporting[i]
		group := "Benefit " + benefitLabel(lookup, row.BenefitID)
		fields = append(fields,
			withGroup(dateField(rowKey("reporting", i, "firstReportingDate"), "First reporting date", &row.FirstReportingDate), group),
			withGroup(choiceField(rowKey("reporting", i, "frequency"), "Frequency", frequencyChoices(), (*string)(&row.Frequency)), group),
			withGroup(dateField(rowKey("reporting", i, "expectedRealizationDate"), "Expected realization date", &row.ExpectedRealizationDate), group))
	}
	return append(fields, dateField("governanceReportingDate", "Governance reporting date", &g.GovernanceReportingDate))
}

func bindActuals(rows []domain.KPIActual, lookup *domain.BRP) []boundField {
	var fields []boundField
	for i := range rows {
		a := &rows[i]
		group := "KPI " + kpiLabel(lookup, a.KPIID)
		fields = append(fields,
			withGroup(textField(rowKey("actuals", i, "actualValue"), "Actual value", fieldText, &a.ActualValue), group),
			withGroup(dateField(rowKey("actuals", i, "actualDate"), "Actual date", &a.ActualDate), group))
	}
	return fields
}

func bindRealized(rows []domain.RealizationRow, lookup *domain.BRP) []boundField {
	var fields []boundField
	for i := range rows {
		row := &rows[i]
		group := "Realization " + benefitLabel(lookup, row.BenefitID)
		fields = append(fields,
			withGroup(boolField(rowKey("realized", i, "realized"), "Realized", &row.Realized), group),
			withGroup(dateField(rowKey("realized", i, "actualRealizationDate"), "Actual realization date", &row.ActualRealizationDate), group))
	}
	return fields
}

func benefitLabel(r *domain.BRP, id string) string {
	if r != nil {
		if b, ok := r.FindBenefit(id); ok && !domain.Blank(b.Name) {
			return b.Name
		}
	}
	return id
}

func kpiLabel(r *domain.BRP, id string) string {
	if r != nil {
		if k, ok := r.FindKPI(id); ok && !domain.Blank(k.Name) {
			return k.Name
		}
	}
	return id
}

// applyAssignments parses "key=value" pairs and stores them into fields.
func applyAssignments(fields []boundField, assignments []string) error {
	byKey := make(map[string]boundField, len(fields))
	for _, f := range fields {
		byKey[strings.ToLower(f.Key)] = f
	}
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q: expected key=value", a)
		}
		f, ok := byKey[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			return fmt.Errorf("unknown field %q for this gate (valid: %s)", key, strings.Join(fieldKeys(fields), ", "))
		}
		if err := f.Set(value); err != nil {
			return err
		}
	}
	return nil
}

func fieldKeys(fields []boundField) []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	sort.Strings(keys)
	return keys
}
