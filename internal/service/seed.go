package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/brp/internal/domain"
)

type seedKPI struct {
	name, baseline, target, unit string
}

type seedBRP struct {
	title, number  string
	kind           domain.ProgrammeType
	gate           int
	status         domain.Status
	createdDaysAgo int
	updatedDaysAgo int
	leadOrg        string
	outcomes       []string
	benefits       []string
	owners         []string
	kpis           []seedKPI
}

var demoSeeds = []seedBRP{
	{
		title: "Fleet Logistics Digital Uplift", number: "GOV-FLT-2026-02", kind: domain.TypeProject,
		gate: 6, status: domain.StatusInProgress, createdDaysAgo: 120, updatedDaysAgo: 7,
		leadOrg:  "Project Management Office (PMO)",
		outcomes: []string{"Faster materiel tracking", "Lower manual workload", "Improved auditability"},
		benefits: []string{"Reduce shipment processing time", "Improve inventory accuracy"},
		owners:   []string{"Logistics Ops", "Supply Chain"},
		kpis:     []seedKPI{{"Average processing time (hrs)", "18", "10", "hrs"}, {"Inventory variance (%)", "7", "3", "%"}},
	},
	{
		title: "Secure Network Segmentation Refresh", number: "GOV-CYB-2025-11", kind: domain.TypeProject,
		gate: 4, status: domain.StatusInProgress, createdDaysAgo: 90, updatedDaysAgo: 20,
		leadOrg:  "CIO / IM Group",
		outcomes: []string{"Reduced lateral movement risk", "Clearer service boundaries"},
		benefits: []string{"Reduce critical incidents"},
		owners:   []string{"Cyber Operations"},
		kpis:     []seedKPI{{"High severity incidents / qtr", "6", "3", "count"}},
	},
	{
		title: "Base Infrastructure Renewal - Phase 1", number: "GOV-INF-2026-01", kind: domain.TypeProgramme,
		gate: 5, status: domain.StatusInProgress, createdDaysAgo: 160, updatedDaysAgo: 14,
		leadOrg:  "ADM(Mat)",
		outcomes: []string{"Safer facilities", "Reduced unplanned downtime"},
		benefits: []string{"Reduce emergency maintenance"},
		owners:   []string{"Facilities"},
		kpis:     []seedKPI{{"Unplanned downtime (hrs/mo)", "42", "25", "hrs"}},
	},
	{
		title: "HR Case Management Modernization", number: "GOV-HR-2025-09", kind: domain.TypeProject,
		gate: 3, status: domain.StatusInProgress, createdDaysAgo: 60, updatedDaysAgo: 2,
		leadOrg:  "ADM(HR-Civ)",
		outcomes: []string{"Faster case resolution", "Better service tracking"},
		benefits: []string{"Reduce average case resolution time"},
		owners:   []string{"HR Service Centre"},
		kpis:     []seedKPI{{"Average resolution time (days)", "14", "9", "days"}},
	},
	{
		title: "Financial Controls Automation", number: "GOV-FIN-2025-08", kind: domain.TypeProject,
		gate: 7, status: domain.StatusComplete, createdDaysAgo: 220, updatedDaysAgo: 35,
		leadOrg:  "ADM(Fin)",
		outcomes: []string{"Fewer manual corrections", "Improved monthly close"},
		benefits: []string{"Reduce reconciliation effort"},
		owners:   []string{"Finance Ops"},
		kpis:     []seedKPI{{"Close cycle time (days)", "8", "5", "days"}},
	},
	{
		title: "Training Delivery Platform Upgrade", number: "GOV-TRN-2026-03", kind: domain.TypeProject,
		gate: 2, status: domain.StatusDraft, createdDaysAgo: 14, updatedDaysAgo: 14,
		leadOrg:  "Other",
		outcomes: []string{"Improved learner access", "More consistent reporting"},
	},
	{
		title: "Records & Retention Standardization", number: "GOV-IM-2025-12", kind: domain.TypeProgramme,
		gate: 1, status: domain.StatusDraft, createdDaysAgo: 5, updatedDaysAgo: 5,
		leadOrg:  "ADM(IM)",
		outcomes: []string{"Clearer retention rules", "Reduced duplication"},
	},
	{
		title: "Procurement Workflow Simplification", number: "GOV-PRC-2025-10", kind: domain.TypeProject,
		gate: 6, status: domain.StatusInProgress, createdDaysAgo: 110, updatedDaysAgo: 9,
		leadOrg:  "ADM(Mat)",
		outcomes: []string{"Shorter cycle time", "Better visibility of approvals"},
		benefits: []string{"Reduce average procurement cycle time"},
		owners:   []string{"Procurement"},
		kpis:     []seedKPI{{"Cycle time (days)", "32", "22", "days"}},
	},
}

// Seed fills an empty store with demo records. It returns how many records
// were created; a store that already holds records is left untouched.
func (s *brpService) Seed(ctx context.Context) (n int, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "seed", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.store.Load(ctx)
	if len(c.Records) > 0 {
		fields["skipped"] = true
		return 0, nil
	}

	now := s.now()
	for _, seed := range demoSeeds {
		r := buildSeed(seed, s.store.NextID(c), now)
		c.Records = append(c.Records, r)
		s.store.RecordEvent(c, r, domain.ActionSeeded, domain.EventMeta{Gate: r.Gate, Status: r.Status, From: "seed"})
		r.History[len(r.History)-1].At = r.CreatedAt // backdated; the audit entry keeps the seeding time
	}
	c.SetLastOpened(c.Records[0].ID)

	if err := s.store.Save(ctx, c); err != nil {
		return 0, err
	}
	fields["records"] = len(demoSeeds)
	return len(demoSeeds), nil
}

func buildSeed(seed seedBRP, id string, now time.Time) *domain.BRP {
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	dateAgo := func(d int) domain.Date { return domain.Date(daysAgo(d).Format(domain.DateLayout)) }

	r := domain.NewBRP(id, seed.title, seed.number, seed.kind, seed.status, daysAgo(seed.createdDaysAgo))
	r.Gate = domain.ClampGate(seed.gate)
	r.UpdatedAt = daysAgo(seed.updatedDaysAgo)

	r.G1.SponsorName = "Taylor Singh"
	r.G1.SponsorOrg = seed.leadOrg
	r.G1.BusinessOwnerName = "Alex Morgan"
	r.G1.BusinessOwnerOrg = seed.leadOrg
	r.G1.ProjectDescription = joinFirst(seed.outcomes, 2)
	r.G1.GovernanceReportingDate = dateAgo(seed.createdDaysAgo - 30)

	for i, name := range seed.outcomes {
		r.G2.Outcomes = append(r.G2.Outcomes, domain.Outcome{ID: seedID(domain.PrefixOutcome, id, i), Name: name})
	}
	r.G2.Options = []domain.Option{
		{ID: seedID(domain.PrefixOption, id, 0), Name: "Option A", Description: "Incremental enhancement", Selected: true},
		{ID: seedID(domain.PrefixOption, id, 1), Name: "Option B", Description: "Full replacement"},
	}
	r.G2.Roles = []domain.Role{
		{RoleType: "Project Leader", Name: "Alex Morgan", Responsibility: seed.leadOrg},
		{RoleType: "Project Sponsor", Name: "Taylor Singh", Responsibility: seed.leadOrg},
	}
	for i, name := range seed.benefits {
		b := domain.Benefit{ID: seedID(domain.PrefixBenefit, id, i), Name: name, Type: "Efficiency"}
		if len(r.G2.Outcomes) > 0 {
			b.OutcomeID = r.G2.Outcomes[0].ID
		}
		if i < len(seed.owners) {
			b.Owner = seed.owners[i]
		}
		r.G2.Benefits = append(r.G2.Benefits, b)
	}
	for i, k := range seed.kpis {
		kpi := domain.KPI{
			ID: seedID(domain.PrefixKPI, id, i), Name: k.name, Unit: k.unit,
			Baseline: k.baseline, TargetByOption: k.target,
		}
		if len(r.G2.Benefits) > 0 {
			kpi.BenefitID = r.G2.Benefits[min(i, len(r.G2.Benefits)-1)].ID
		}
		r.G2.KPIs = append(r.G2.KPIs, kpi)
	}
	r.SyncDerivedLists()

	for i := range r.G3.BenefitReporting {
		r.G3.BenefitReporting[i].FirstReportingDate = dateAgo(max(1, seed.updatedDaysAgo-3))
		r.G3.BenefitReporting[i].ExpectedRealizationDate = dateAgo(seed.updatedDaysAgo - 120)
	}
	if r.Gate > 4 {
		for i, k := range seed.kpis {
			base, _ := strconv.ParseFloat(k.baseline, 64)
			r.G4.KPIActuals[i].ActualValue = strconv.Itoa(int(base*0.85 + 0.5))
			r.G4.KPIActuals[i].ActualDate = dateAgo(seed.updatedDaysAgo)
		}
		r.G4.Lessons = "Pilot implementation validated assumptions; next phase focuses on adoption and reporting consistency."
	}
	if r.Gate == domain.FinalGate {
		r.G7.Signoff = "Closed and archived; benefits tracking transitioned to operations."
	}
	return r
}

func seedID(prefix, recordID string, i int) string {
	return fmt.Sprintf("%s%s%d", prefix, recordID[1:], i)
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, " / ")
}
