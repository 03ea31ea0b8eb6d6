package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const listProgressWidth = 10

// FormatBRPList renders records as a table inside a bordered box.
func FormatBRPList(title string, records []*domain.BRP, now time.Time) string {
	headers := []string{"ID", "TITLE", "PROJECT #", "GATE", "STATUS", "PROGRESS", "UPDATED"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			Dim(r.ID),
			Bold(Truncate(r.Title, 40)),
			OrDash(r.ProjectNumber),
			GateBadge(r.Gate),
			StatusPill(r.DeriveStatus()),
			RenderProgress(r.Progress(), listProgressWidth),
			HumanTimestampFrom(r.UpdatedAt, now),
		})
	}
	return RenderBox(title, RenderTable(headers, rows))
}

// FormatBRPCreated is the one-line confirmation printed by create.
func FormatBRPCreated(r *domain.BRP) string {
	return fmt.Sprintf("Created BRP %s %s (%s)", StyleHeader.Render(r.ID), Bold(r.Title), GateBadge(r.Gate))
}

// FormatGateMove reports a gate transition such as "000001  G1 → G2".
func FormatGateMove(r *domain.BRP, from int) string {
	if from == r.Gate {
		return fmt.Sprintf("Saved %s at %s", StyleHeader.Render(r.ID), GateBadge(r.Gate))
	}
	return fmt.Sprintf("%s  %s → %s", StyleHeader.Render(r.ID), GateBadge(from), GateBadge(r.Gate))
}

// FormatBRP renders the record header followed by the current gate's data.
func FormatBRP(r *domain.BRP) string {
	return FormatBRPAtGate(r, r.Gate)
}

// FormatBRPAtGate renders the record header followed by gate g's data.
func FormatBRPAtGate(r *domain.BRP, g int) string {
	def := domain.Gate(g)

	var b strings.Builder
	b.WriteString(StyleBold.Render(r.Title) + "  " + Dim(r.ID) + "\n")
	b.WriteString(RenderFields([][2]string{
		{"Project #", r.ProjectNumber},
		{"Type", string(r.ProgrammeType)},
		{"Status", StatusPill(r.DeriveStatus())},
		{"Gate", GateBadge(r.Gate)},
		{"Progress", RenderProgress(r.Progress(), listProgressWidth)},
		{"Updated", r.UpdatedAt.Format("2006-01-02 15:04")},
	}))
	b.WriteString("\n")
	b.WriteString(Header(def.Name) + "\n")
	b.WriteString(Dim(def.Phase+" · "+def.Body) + "\n\n")
	b.WriteString(formatGateBody(r, def.Number))
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

func formatGateBody(r *domain.BRP, g int) string {
	switch g {
	case 1:
		return formatGate1(r.G1)
	case 2:
		return formatGate2(r.G2)
	case 3:
		return formatGate3(r)
	case 4:
		return formatActuals(r, r.G4.KPIActuals) + formatLessons(r.G4.Lessons, r.G4.GovernanceReportingDate)
	case 5:
		return formatActuals(r, r.G5.KPIActuals) + formatTransitions(r.G5.Transitions) +
			formatLessons(r.G5.Lessons, r.G5.GovernanceReportingDate)
	case 6:
		return formatActuals(r, r.G6.KPIActuals) + formatRealization(r, r.G6.Realized) +
			formatLessons(r.G6.Lessons, r.G6.GovernanceReportingDate)
	default:
		return formatActuals(r, r.G7.KPIActuals) + formatRealization(r, r.G7.Realized) +
			formatLessons(r.G7.Lessons, r.G7.GovernanceReportingDate) +
			RenderFields([][2]string{{"Sign-off", r.G7.Signoff}})
	}
}

func withOrg(name, org string) string {
	if strings.TrimSpace(org) == "" {
		return name
	}
	return name + Dim(" ("+org+")")
}

func formatGate1(g domain.Gate1Data) string {
	return RenderFields([][2]string{
		{"Project name", g.ProjectName},
		{"Project number", g.ProjectNumber},
		{"Project/Programme", string(g.ProjectOrProgramme)},
		{"Programme name", g.ProgrammeName},
		{"Description", g.ProjectDescription},
		{"BRP status", string(g.BRPStatus)},
		{"Sponsor", withOrg(g.SponsorName, g.SponsorOrg)},
		{"Business owner", withOrg(g.BusinessOwnerName, g.BusinessOwnerOrg)},
		{"Implementer", withOrg(g.ImplementerName, g.ImplementerOrg)},
		{"Departments", g.DepartmentsAgencies},
		{"Governance date", DateText(g.GovernanceReportingDate)},
	})
}

func formatGate2(g domain.Gate2Data) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(fmt.Sprintf("Outcomes (%d/%d)", len(g.Outcomes), domain.MaxOutcomes)) + "\n")
	rows := make([][]string, 0, len(g.Outcomes))
	for i, o := range g.Outcomes {
		rows = append(rows, []string{fmt.Sprint(i), Dim(o.ID), OrDash(o.Name), OrDash(o.AlignmentDoc), OrDash(o.AlignmentSection)})
	}
	b.WriteString(RenderTable([]string{"#", "ID", "NAME", "ALIGNMENT DOC", "SECTION"}, rows) + "\n")

	b.WriteString(StyleBold.Render(fmt.Sprintf("Options (%d/%d)", len(g.Options), domain.MaxOptions)) + "\n")
	rows = rows[:0]
	for i, o := range g.Options {
		sel := Dim("○")
		if o.Selected {
			sel = StyleGreen.Render("●")
		}
		rows = append(rows, []string{fmt.Sprint(i), Dim(o.ID), sel, OrDash(o.Name), OrDash(Truncate(o.Description, 40))})
	}
	b.WriteString(RenderTable([]string{"#", "ID", "SEL", "NAME", "DESCRIPTION"}, rows) + "\n")

	b.WriteString(StyleBold.Render("Benefits") + "\n")
	rows = rows[:0]
	for i, ben := range g.Benefits {
		rows = append(rows, []string{fmt.Sprint(i), Dim(ben.ID), OrDash(ben.Name), OrDash(ben.Type), OrDash(ben.Owner), Dim(ben.OutcomeID)})
	}
	b.WriteString(RenderTable([]string{"#", "ID", "NAME", "TYPE", "OWNER", "OUTCOME"}, rows) + "\n")

	b.WriteString(StyleBold.Render("KPIs") + "\n")
	rows = rows[:0]
	for i, k := range g.KPIs {
		rows = append(rows, []string{fmt.Sprint(i), Dim(k.ID), OrDash(k.Name), OrDash(k.Unit), OrDash(k.Baseline), OrDash(k.TargetByOption), Dim(k.BenefitID)})
	}
	b.WriteString(RenderTable([]string{"#", "ID", "NAME", "UNIT", "BASELINE", "TARGET", "BENEFIT"}, rows) + "\n")

	b.WriteString(StyleBold.Render("Roles") + "\n")
	rows = rows[:0]
	for i, r := range g.Roles {
		rows = append(rows, []string{fmt.Sprint(i), OrDash(r.RoleType), OrDash(r.Name), OrDash(r.Responsibility)})
	}
	b.WriteString(RenderTable([]string{"#", "ROLE", "NAME", "RESPONSIBILITY"}, rows) + "\n")

	b.WriteString(RenderFields([][2]string{{"Governance date", DateText(g.GovernanceReportingDate)}}))
	return b.String()
}

func benefitName(r *domain.BRP, id string) string {
	if ben, ok := r.FindBenefit(id); ok && !domain.Blank(ben.Name) {
		return ben.Name
	}
	return id
}

func formatGate3(r *domain.BRP) string {
	rows := make([][]string, 0, len(r.G3.BenefitReporting))
	for i, row := range r.G3.BenefitReporting {
		rows = append(rows, []string{
			fmt.Sprint(i),
			benefitName(r, row.BenefitID),
			DateText(row.FirstReportingDate),
			OrDash(string(row.Frequency)),
			DateText(row.ExpectedRealizationDate),
		})
	}
	var b strings.Builder
	b.WriteString(StyleBold.Render("Benefit reporting") + "\n")
	if len(rows) == 0 {
		b.WriteString(Dim("No benefits defined at Gate 2.") + "\n\n")
	} else {
		b.WriteString(RenderTable([]string{"#", "BENEFIT", "FIRST REPORT", "FREQUENCY", "EXPECTED"}, rows) + "\n")
	}
	b.WriteString(RenderFields([][2]string{{"Governance date", DateText(r.G3.GovernanceReportingDate)}}))
	return b.String()
}

func formatActuals(r *domain.BRP, actuals []domain.KPIActual) string {
	rows := make([][]string, 0, len(actuals))
	for i, a := range actuals {
		name, unit := a.KPIID, ""
		if k, ok := r.FindKPI(a.KPIID); ok {
			name, unit = domain.CoalesceStr(k.Name, k.ID), k.Unit
		}
		rows = append(rows, []string{fmt.Sprint(i), name, OrDash(a.ActualValue), Dim(unit), DateText(a.ActualDate)})
	}
	var b strings.Builder
	b.WriteString(StyleBold.Render("KPI actuals") + "\n")
	if len(rows) == 0 {
		b.WriteString(Dim("No KPIs defined at Gate 2.") + "\n\n")
		return b.String()
	}
	b.WriteString(RenderTable([]string{"#", "KPI", "ACTUAL", "UNIT", "DATE"}, rows) + "\n")
	return b.String()
}

func formatTransitions(ts []domain.Transition) string {
	rows := make([][]string, 0, len(ts))
	for i, t := range ts {
		rows = append(rows, []string{fmt.Sprint(i), OrDash(t.Activity), OrDash(t.Accountable), DateText(t.TargetEndDate)})
	}
	var b strings.Builder
	b.WriteString(StyleBold.Render("Transition activities") + "\n")
	if len(rows) == 0 {
		b.WriteString(Dim("None yet.") + "\n\n")
		return b.String()
	}
	b.WriteString(RenderTable([]string{"#", "ACTIVITY", "ACCOUNTABLE", "TARGET END"}, rows) + "\n")
	return b.String()
}

func formatRealization(r *domain.BRP, rows []domain.RealizationRow) string {
	cells := make([][]string, 0, len(rows))
	for i, row := range rows {
		cells = append(cells, []string{fmt.Sprint(i), benefitName(r, row.BenefitID), YesNo(row.Realized), DateText(row.ActualRealizationDate)})
	}
	var b strings.Builder
	b.WriteString(StyleBold.Render("Benefit realization") + "\n")
	if len(cells) == 0 {
		b.WriteString(Dim("No benefits defined at Gate 2.") + "\n\n")
		return b.String()
	}
	b.WriteString(RenderTable([]string{"#", "BENEFIT", "REALIZED", "DATE"}, cells) + "\n")
	return b.String()
}

func formatLessons(lessons string, date domain.Date) string {
	return RenderFields([][2]string{
		{"Lessons", lipgloss.NewStyle().Width(60).Render(lessons)},
		{"Governance date", DateText(date)},
	})
}
