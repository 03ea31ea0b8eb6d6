package pack

import (
	"testing"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestKPIActuals(t *testing.T) {
	tests := []struct {
		name      string
		rows      map[int]domain.KPIActual
		wantValue string
		wantGate  int
	}{
		{
			name: "highest date wins",
			rows: map[int]domain.KPIActual{
				4: {KPIID: "K1", ActualValue: "10", ActualDate: "2025-06-01"},
				5: {KPIID: "K1", ActualValue: "12", ActualDate: "2025-03-01"},
			},
			wantValue: "10", wantGate: 4,
		},
		{
			name: "equal dates take the last gate scanned",
			rows: map[int]domain.KPIActual{
				4: {KPIID: "K1", ActualValue: "10", ActualDate: "2025-06-01"},
				6: {KPIID: "K1", ActualValue: "11", ActualDate: "2025-06-01"},
			},
			wantValue: "11", wantGate: 6,
		},
		{
			name: "missing dates take the last gate scanned",
			rows: map[int]domain.KPIActual{
				5: {KPIID: "K1", ActualValue: "7"},
				7: {KPIID: "K1", ActualValue: "8"},
			},
			wantValue: "8", wantGate: 7,
		},
		{
			name: "dated beats undated",
			rows: map[int]domain.KPIActual{
				4: {KPIID: "K1", ActualValue: "3", ActualDate: "2024-01-01"},
				7: {KPIID: "K1", ActualValue: "4"},
			},
			wantValue: "3", wantGate: 4,
		},
		{
			name: "valid date beats malformed",
			rows: map[int]domain.KPIActual{
				4: {KPIID: "K1", ActualValue: "3", ActualDate: "2024-01-01"},
				5: {KPIID: "K1", ActualValue: "4", ActualDate: "June"},
			},
			wantValue: "3", wantGate: 4,
		},
		{
			name: "chronological not lexical",
			rows: map[int]domain.KPIActual{
				4: {KPIID: "K1", ActualValue: "late", ActualDate: "2025-12-01"},
				5: {KPIID: "K1", ActualValue: "early", ActualDate: "2025-02-01"},
			},
			wantValue: "late", wantGate: 4,
		},
		{
			name: "empty values ignored",
			rows: map[int]domain.KPIActual{
				4: {KPIID: "K1", ActualValue: "5", ActualDate: "2025-01-01"},
				5: {KPIID: "K1", ActualValue: " ", ActualDate: "2025-09-01"},
			},
			wantValue: "5", wantGate: 4,
		},
		{
			name: "empty rows never win a tie",
			rows: map[int]domain.KPIActual{
				4: {KPIID: "K1", ActualValue: "5"},
				7: {KPIID: "K1"},
			},
			wantValue: "5", wantGate: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testutil.NewTestBRP("x")
			for g, row := range tt.rows {
				switch g {
				case 4:
					r.G4.KPIActuals = []domain.KPIActual{row}
				case 5:
					r.G5.KPIActuals = []domain.KPIActual{row}
				case 6:
					r.G6.KPIActuals = []domain.KPIActual{row}
				case 7:
					r.G7.KPIActuals = []domain.KPIActual{row}
				}
			}

			got := LatestKPIActuals(r)
			require.Contains(t, got, "K1")
			assert.Equal(t, tt.wantValue, got["K1"].Value)
			assert.Equal(t, tt.wantGate, got["K1"].Gate)
		})
	}
}

func TestLatestKPIActuals_NoActuals(t *testing.T) {
	r := testutil.NewBRPAtGate("x", 5)
	assert.Empty(t, LatestKPIActuals(r))
}

func TestBuild_ProjectsRecord(t *testing.T) {
	r := testutil.NewBRPAtGate("Fleet uplift", 5)
	r.G2.Roles = []domain.Role{{RoleType: "Project Sponsor", Name: "Taylor"}}
	r.G4.KPIActuals[0] = domain.KPIActual{KPIID: "K000001", ActualValue: "22", ActualDate: "2025-04-01"}
	r.G4.Lessons = "g4 lessons"
	r.G5.Lessons = "g5 lessons"
	r.G5.GovernanceReportingDate = "2025-05-20"

	p := Build(r)

	assert.Equal(t, r.ID, p.ID)
	assert.Equal(t, 5, p.Gate.Number)
	assert.Equal(t, 67, p.Progress)
	assert.Equal(t, domain.Date("2025-05-20"), p.GovernanceDate)
	assert.Equal(t, "Sam Sponsor", p.Identification.Sponsor)
	assert.Equal(t, "g5 lessons", p.Lessons)

	require.Len(t, p.Outcomes, 1)
	assert.Equal(t, []string{"Reduced wait"}, p.Outcomes[0].Benefits)
	require.Len(t, p.Benefits, 1)
	assert.Equal(t, "Faster service", p.Benefits[0].Outcome)
	assert.Equal(t, []string{"Wait time"}, p.Benefits[0].KPIs)

	require.Len(t, p.KPIs, 1)
	assert.Equal(t, "22", p.KPIs[0].LatestValue)
	assert.Equal(t, domain.Date("2025-04-01"), p.KPIs[0].LatestDate)
	assert.Equal(t, "Reduced wait", p.KPIs[0].Benefit)

	require.Len(t, p.Reporting, 1)
	assert.Equal(t, "Reduced wait", p.Reporting[0].Benefit)
	assert.Empty(t, p.Realization, "realization only shows from gate 6")
	assert.Len(t, p.Roles, 1)
}

func TestBuild_GovernanceDateFallsBackToGate1(t *testing.T) {
	r := testutil.NewBRPAtGate("x", 4)
	r.G4.GovernanceReportingDate = ""

	assert.Equal(t, r.G1.GovernanceReportingDate, Build(r).GovernanceDate)
}

func TestBuild_RealizationAtFinalGateUsesGate7(t *testing.T) {
	r := testutil.NewBRPAtGate("x", 7)
	r.G6.Realized[0].Realized = false
	r.G7.Realized[0] = domain.RealizationRow{BenefitID: "B000001", Realized: true, ActualRealizationDate: "2025-09-09"}

	p := Build(r)
	require.Len(t, p.Realization, 1)
	assert.True(t, p.Realization[0].Realized)
	assert.Equal(t, domain.StatusComplete, p.Status)
}

func TestBuild_DoesNotMutateRecord(t *testing.T) {
	r := testutil.NewBRPAtGate("x", 3)
	r.G2.Benefits = append(r.G2.Benefits, domain.Benefit{ID: "B000002", Name: "New"})
	before := r.Clone()

	p := Build(r)

	assert.Len(t, p.Reporting, 2, "pack sees synchronized rows")
	if diff := cmp.Diff(before, r); diff != "" {
		t.Errorf("Build mutated the record (-before +after):\n%s", diff)
	}
}
