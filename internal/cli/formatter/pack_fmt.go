package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/brp/internal/pack"
)

// FormatPack renders the governance pack for one record.
func FormatPack(p pack.Pack) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Title) + "  " + Dim(p.ID) + "\n")
	b.WriteString(RenderFields([][2]string{
		{"Project #", p.ProjectNumber},
		{"Type", string(p.ProgrammeType)},
		{"Gate", fmt.Sprintf("%s %s", GateBadge(p.Gate.Number), Dim(p.Gate.Phase))},
		{"Status", StatusPill(p.Status)},
		{"Progress", RenderProgress(p.Progress, 20)},
		{"Governance date", DateText(p.GovernanceDate)},
	}))

	id := p.Identification
	b.WriteString("\n" + Header("Identification") + "\n")
	b.WriteString(RenderFields([][2]string{
		{"Description", id.Description},
		{"Programme", id.ProgrammeName},
		{"Sponsor", withOrg(id.Sponsor, id.SponsorOrg)},
		{"Business owner", withOrg(id.BusinessOwner, id.BusinessOwnerOrg)},
		{"Implementer", withOrg(id.Implementer, id.ImplementerOrg)},
		{"Departments", id.DepartmentsAgency},
	}))

	b.WriteString("\n" + Header("Outcomes") + "\n")
	rows := [][]string{}
	for _, o := range p.Outcomes {
		rows = append(rows, []string{OrDash(o.Name), OrDash(o.Alignment), OrDash(strings.Join(o.Benefits, ", "))})
	}
	b.WriteString(tableOrNone([]string{"OUTCOME", "ALIGNMENT", "BENEFITS"}, rows))

	b.WriteString("\n" + Header("Options") + "\n")
	rows = [][]string{}
	for _, o := range p.Options {
		rows = append(rows, []string{OrDash(o.Name), YesNo(o.Selected), OrDash(Truncate(o.Description, 50))})
	}
	b.WriteString(tableOrNone([]string{"OPTION", "SELECTED", "DESCRIPTION"}, rows))

	b.WriteString("\n" + Header("Benefits") + "\n")
	rows = [][]string{}
	for _, ben := range p.Benefits {
		rows = append(rows, []string{OrDash(ben.Name), OrDash(ben.Type), OrDash(ben.Owner), OrDash(ben.Outcome), OrDash(strings.Join(ben.KPIs, ", "))})
	}
	b.WriteString(tableOrNone([]string{"BENEFIT", "TYPE", "OWNER", "OUTCOME", "KPIS"}, rows))

	b.WriteString("\n" + Header("KPIs") + "\n")
	rows = [][]string{}
	for _, k := range p.KPIs {
		latest := Dim("--")
		if k.LatestValue != "" {
			latest = fmt.Sprintf("%s %s", k.LatestValue, Dim(fmt.Sprintf("(%s, G%d)", k.LatestDate, k.LatestAtGate)))
		}
		rows = append(rows, []string{OrDash(k.Name), OrDash(k.Unit), OrDash(k.Benefit), OrDash(k.Baseline), OrDash(k.Target), latest})
	}
	b.WriteString(tableOrNone([]string{"KPI", "UNIT", "BENEFIT", "BASELINE", "TARGET", "LATEST"}, rows))

	b.WriteString("\n" + Header("Reporting schedule") + "\n")
	rows = [][]string{}
	for _, r := range p.Reporting {
		rows = append(rows, []string{OrDash(r.Benefit), DateText(r.FirstReportingDate), OrDash(string(r.Frequency)), DateText(r.ExpectedRealizationDate)})
	}
	b.WriteString(tableOrNone([]string{"BENEFIT", "FIRST REPORT", "FREQUENCY", "EXPECTED"}, rows))

	if len(p.Realization) > 0 {
		b.WriteString("\n" + Header("Realization") + "\n")
		rows = [][]string{}
		for _, r := range p.Realization {
			rows = append(rows, []string{OrDash(r.Benefit), YesNo(r.Realized), DateText(r.Date)})
		}
		b.WriteString(RenderTable([]string{"BENEFIT", "REALIZED", "DATE"}, rows))
	}

	if len(p.Transitions) > 0 {
		b.WriteString("\n" + Header("Transition activities") + "\n")
		rows = [][]string{}
		for _, t := range p.Transitions {
			rows = append(rows, []string{OrDash(t.Activity), OrDash(t.Accountable), DateText(t.TargetEndDate)})
		}
		b.WriteString(RenderTable([]string{"ACTIVITY", "ACCOUNTABLE", "TARGET END"}, rows))
	}

	if len(p.Roles) > 0 {
		b.WriteString("\n" + Header("Roles") + "\n")
		rows = [][]string{}
		for _, r := range p.Roles {
			rows = append(rows, []string{OrDash(r.RoleType), OrDash(r.Name), OrDash(r.Responsibility)})
		}
		b.WriteString(RenderTable([]string{"ROLE", "NAME", "RESPONSIBILITY"}, rows))
	}

	b.WriteString("\n" + Header("Lessons learned") + "\n")
	b.WriteString(OrDash(p.Lessons) + "\n")
	if p.Signoff != "" {
		b.WriteString("\n" + Header("Sign-off") + "\n")
		b.WriteString(p.Signoff + "\n")
	}

	return RenderBox("Governance pack", strings.TrimRight(b.String(), "\n"))
}

func tableOrNone(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return Dim("None recorded.") + "\n"
	}
	return RenderTable(headers, rows)
}
