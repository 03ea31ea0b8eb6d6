package cli

import (
	"testing"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/testutil"
	"github.com/alexanderramin/brp/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commandWithGate1 returns a command carrying r's gate-1 payload.
func commandWithGate1(r *domain.BRP) workflow.SaveGateCommand {
	g := r.G1
	return workflow.SaveGateCommand{Gate: 1, G1: &g}
}

func fieldByKey(t *testing.T, fields []boundField, key string) boundField {
	t.Helper()
	for _, f := range fields {
		if f.Key == key {
			return f
		}
	}
	t.Fatalf("no field %q in %v", key, fieldKeys(fields))
	return boundField{}
}

func TestBindGateFields_EveryGateHasGovernanceDate(t *testing.T) {
	for g := domain.FirstGate; g <= domain.FinalGate; g++ {
		r := testutil.NewBRPAtGate("x", g)
		cmd := workflow.CommandFor(r)
		fields := bindGateFields(&cmd, r)
		require.NotEmpty(t, fields, "gate %d", g)
		f := fieldByKey(t, fields, "governanceReportingDate")
		assert.Equal(t, fieldDate, f.Kind)
	}
}

func TestBindGateFields_WritesIntoCommand(t *testing.T) {
	r := testutil.NewBRPAtGate("x", 3)
	cmd := workflow.CommandFor(r)
	fields := bindGateFields(&cmd, r)

	require.NoError(t, applyAssignments(fields, []string{
		"reporting.0.frequency=annually",
		"reporting.0.firstReportingDate=2025-09-30",
		"GOVERNANCEREPORTINGDATE=2025-04-01",
	}))
	assert.Equal(t, domain.FrequencyAnnually, cmd.G3.BenefitReporting[0].Frequency)
	assert.Equal(t, domain.Date("2025-09-30"), cmd.G3.BenefitReporting[0].FirstReportingDate)
	assert.Equal(t, domain.Date("2025-04-01"), cmd.G3.GovernanceReportingDate)
	assert.Equal(t, domain.FrequencyQuarterly, r.G3.BenefitReporting[0].Frequency, "record untouched")
}

func TestBindGateFields_GroupsLabelDerivedRows(t *testing.T) {
	r := testutil.NewBRPAtGate("x", 6)
	cmd := workflow.CommandFor(r)
	fields := bindGateFields(&cmd, r)

	actual := fieldByKey(t, fields, "actuals.0.actualValue")
	assert.Equal(t, "KPI Wait time", actual.Group)
	realized := fieldByKey(t, fields, "realized.0.realized")
	assert.Equal(t, "Realization Reduced wait", realized.Group)
	assert.Equal(t, fieldBool, realized.Kind)
}

func TestBindGateFields_Gate7Status(t *testing.T) {
	r := testutil.NewBRPAtGate("x", 7)
	cmd := workflow.CommandFor(r)
	fields := bindGateFields(&cmd, r)

	require.NoError(t, applyAssignments(fields, []string{"status=in progress", "signoff=Done"}))
	assert.Equal(t, domain.StatusInProgress, cmd.Status)
	assert.Equal(t, "Done", cmd.G7.Signoff)
}

func TestBoundField_Set(t *testing.T) {
	var text string
	var flag bool

	date := boundField{Key: "d", Kind: fieldDate, Text: &text}
	require.NoError(t, date.Set(" 2025-02-28 "))
	assert.Equal(t, "2025-02-28", text)
	require.NoError(t, date.Set(""))
	assert.Error(t, date.Set("2025-02-30"))

	b := boundField{Key: "b", Kind: fieldBool, Flag: &flag}
	for _, v := range []string{"yes", "Y", "true", "1"} {
		require.NoError(t, b.Set(v))
		assert.True(t, flag, v)
	}
	require.NoError(t, b.Set("no"))
	assert.False(t, flag)
	assert.Error(t, b.Set("maybe"))
	assert.Equal(t, "false", b.Value())
}

func TestFieldPages(t *testing.T) {
	fields := []boundField{
		{Key: "a", Group: "Row 1"}, {Key: "b", Group: "Row 1"},
		{Key: "c", Group: "Row 2"},
		{Key: "d"},
	}
	pages := fieldPages(fields)
	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 2)
	assert.Equal(t, "d", pages[2][0].Key)
	assert.Empty(t, fieldPages(nil))
}

func TestGateActions(t *testing.T) {
	values := func(g int) []string {
		var out []string
		for _, o := range gateActions(g) {
			out = append(out, o.Value)
		}
		return out
	}
	assert.Equal(t, []string{actionNext, actionSave, actionPack, actionQuit}, values(1))
	assert.Contains(t, values(2), actionAdd)
	assert.Contains(t, values(5), actionRemove)
	assert.Equal(t, []string{actionClose, actionSave, actionBack, actionPack, actionQuit}, values(7))
}
