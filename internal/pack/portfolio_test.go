package pack

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNum(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"18", 18, true},
		{"$1,200", 1200, true},
		{"7 %", 7, true},
		{"-3.5", -3.5, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ToNum(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPortfolio_Empty(t *testing.T) {
	st := Portfolio(nil)
	assert.Equal(t, 0, st.Total)
	assert.Zero(t, st.AverageGate)
	assert.Equal(t, 0, st.StatusPercent(domain.StatusDraft))
	assert.Empty(t, st.KPIs)
}

func TestPortfolio_Counts(t *testing.T) {
	later := testutil.FixedNow.AddDate(0, 0, 1)
	records := []*domain.BRP{
		testutil.NewTestBRP("draft"),
		testutil.NewTestBRP("active", testutil.WithGate(3), testutil.WithUpdatedAt(later)),
		testutil.NewTestBRP("active2", testutil.WithGate(3), testutil.WithUpdatedAt(later)),
		testutil.NewTestBRP("done", testutil.WithGate(7)),
	}

	st := Portfolio(records)

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 1, st.ByStatus[domain.StatusDraft])
	assert.Equal(t, 2, st.ByStatus[domain.StatusInProgress])
	assert.Equal(t, 1, st.ByStatus[domain.StatusComplete])
	assert.Equal(t, 50, st.StatusPercent(domain.StatusInProgress))
	assert.Equal(t, [7]int{1, 0, 2, 0, 0, 0, 1}, st.ByGate)
	assert.Equal(t, 25, st.GatePercent(7))
	assert.Equal(t, 0, st.GatePercent(9))
	assert.InDelta(t, 3.5, st.AverageGate, 1e-9)
}

func TestPortfolio_KPIAveragesByName(t *testing.T) {
	a := testutil.NewTestBRP("a",
		testutil.WithBenefit("B1", "b"),
		testutil.WithKPI("K1", "B1", "Cycle time"))
	a.G2.KPIs[0].Baseline = "30 days"
	a.G2.KPIs[0].TargetByOption = "20"
	a.G4.KPIActuals = []domain.KPIActual{{KPIID: "K1", ActualValue: "25", ActualDate: "2025-01-01"}}

	b := testutil.NewTestBRP("b",
		testutil.WithBenefit("B1", "b"),
		testutil.WithKPI("K9", "B1", "Cycle time"))
	b.G2.KPIs[0].Baseline = "10"
	b.G2.KPIs[0].TargetByOption = "n/a"

	st := Portfolio([]*domain.BRP{a, b})

	require.Len(t, st.KPIs, 1)
	k := st.KPIs[0]
	assert.Equal(t, "Cycle time", k.Name)
	assert.InDelta(t, 20, k.Baseline, 1e-9)
	assert.Equal(t, 2, k.BaselineCount)
	assert.InDelta(t, 20, k.Target, 1e-9)
	assert.Equal(t, 1, k.TargetCount)
	assert.InDelta(t, 25, k.Actual, 1e-9)
	assert.Equal(t, 1, k.ActualCount)
}

func TestPortfolio_KPISeriesCapped(t *testing.T) {
	r := testutil.NewTestBRP("x", testutil.WithBenefit("B1", "b"))
	for i := 0; i < 9; i++ {
		testutil.WithKPI(fmt.Sprintf("K%d", i), "B1", fmt.Sprintf("KPI %d", i))(r)
	}

	st := Portfolio([]*domain.BRP{r})
	require.Len(t, st.KPIs, MaxKPISeries)
	assert.Equal(t, "KPI 0", st.KPIs[0].Name, "first seen order is kept")
}
