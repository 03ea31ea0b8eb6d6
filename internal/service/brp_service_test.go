package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/testutil"
	"github.com/alexanderramin/brp/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBRPService_Create(t *testing.T) {
	obs := &recordingObserver{}
	svc, st := setupService(t, obs)
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateRequest{
		Title: "  Fleet uplift ", ProjectNumber: "GOV-1", ProgrammeType: domain.TypeProgramme,
	})
	require.NoError(t, err)
	assert.Equal(t, "000001", r.ID)
	assert.Equal(t, "Fleet uplift", r.Title)
	assert.Equal(t, 1, r.Gate)
	assert.Equal(t, domain.StatusDraft, r.Status)
	assert.Equal(t, domain.TypeProgramme, r.G1.ProjectOrProgramme)
	require.Len(t, r.History, 1)
	assert.Equal(t, domain.ActionCreate, r.History[0].Action)
	assert.Equal(t, "GOV-1", r.History[0].Meta.ProjectNumber)

	c := st.Load(ctx)
	require.NotNil(t, c.LastOpenedID)
	assert.Equal(t, r.ID, *c.LastOpenedID)
	assert.Len(t, c.Audit, 1)
	assert.Equal(t, []string{"create"}, obs.names())
}

func TestBRPService_CreateRequiresIdentification(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{ProjectNumber: "x"})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(ctx, CreateRequest{Title: "x", ProjectNumber: "  "})
	assert.ErrorIs(t, err, ErrProjectNumberRequired)
}

func TestBRPService_IDsAreSequential(t *testing.T) {
	svc, _ := setupService(t)

	assert.Equal(t, "000001", createTestBRP(t, svc, "a"))
	assert.Equal(t, "000002", createTestBRP(t, svc, "b"))
	assert.Equal(t, "000003", createTestBRP(t, svc, "c"))
}

func TestBRPService_NotFound(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Advance(ctx, "999999", workflow.SaveGateCommand{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Pack(ctx, "999999", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBRPService_Gate1Advance(t *testing.T) {
	svc, st := setupService(t)
	ctx := context.Background()
	id := createTestBRP(t, svc, "Records")

	r, err := svc.Get(ctx, id)
	require.NoError(t, err)
	cmd := workflow.CommandFor(r)
	cmd.G1.ProjectDescription = "Standardize retention"
	cmd.G1.SponsorName = "Taylor"
	cmd.G1.BusinessOwnerName = "Alex"
	cmd.G1.GovernanceReportingDate = "2025-05-01"

	r, err = svc.Advance(ctx, id, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Gate)
	assert.Equal(t, domain.StatusInProgress, r.Status)

	last := r.History[len(r.History)-1]
	assert.Equal(t, domain.ActionAdvance, last.Action)
	assert.Equal(t, 1, last.Meta.FromGate)
	assert.Equal(t, 2, last.Meta.ToGate)

	persisted := st.Load(ctx).Find(id)
	assert.Equal(t, 2, persisted.Gate)
}

func TestBRPService_FailedAdvanceKeepsDraft(t *testing.T) {
	svc, st := setupService(t)
	ctx := context.Background()
	id := createTestBRP(t, svc, "x")

	r, _ := svc.Get(ctx, id)
	cmd := workflow.CommandFor(r)
	cmd.G1.SponsorName = "Taylor"

	r, err := svc.Advance(ctx, id, cmd)
	var verr *workflow.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "g1.projectDescription", verr.Field)
	require.NotNil(t, r)
	assert.Equal(t, 1, r.Gate)

	persisted := st.Load(ctx).Find(id)
	assert.Equal(t, 1, persisted.Gate)
	assert.Equal(t, "Taylor", persisted.G1.SponsorName, "implicit save is persisted")
	actions := make([]domain.Action, 0, len(persisted.History))
	for _, e := range persisted.History {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []domain.Action{domain.ActionCreate, domain.ActionAutoSave}, actions)
}

func TestBRPService_MoveBackAndFirstGate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	id := createTestBRP(t, svc, "x")

	_, err := svc.MoveBack(ctx, id, workflow.SaveGateCommand{})
	assert.ErrorIs(t, err, workflow.ErrFirstGate)

	r, _ := svc.Get(ctx, id)
	testutil.FillGate1(r)
	cmd := workflow.CommandFor(r)
	_, err = svc.Advance(ctx, id, cmd)
	require.NoError(t, err)

	r, err = svc.MoveBack(ctx, id, workflow.SaveGateCommand{})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Gate)
	assert.Equal(t, domain.ActionMovePrev, r.History[len(r.History)-1].Action)
}

func TestBRPService_SaveRecordsDraftEvent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	id := createTestBRP(t, svc, "x")

	r, err := svc.Save(ctx, id, workflow.SaveGateCommand{}, domain.ActionSaveDraft)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Gate)
	last := r.History[len(r.History)-1]
	assert.Equal(t, domain.ActionSaveDraft, last.Action)
	assert.Equal(t, 1, last.Meta.Gate)

	_, err = svc.Save(ctx, id, workflow.SaveGateCommand{Gate: 2}, domain.ActionSaveDraft)
	assert.ErrorIs(t, err, workflow.ErrGateMismatch)
}

func TestBRPService_OpenSetsLastOpenedAndSyncs(t *testing.T) {
	svc, st := setupService(t)
	ctx := context.Background()
	first := createTestBRP(t, svc, "first")
	createTestBRP(t, svc, "second")

	// Write a benefit straight into the document with no derived rows.
	c := st.Load(ctx)
	r := c.Find(first)
	testutil.FillGate2(r)
	r.G3.BenefitReporting = nil
	require.NoError(t, st.Save(ctx, c))

	got, err := svc.Get(ctx, first)
	require.NoError(t, err)
	assert.Len(t, got.G3.BenefitReporting, 1, "Get synchronizes its copy")
	assert.Empty(t, st.Load(ctx).Find(first).G3.BenefitReporting, "Get does not persist")

	opened, err := svc.Open(ctx, first)
	require.NoError(t, err)
	assert.Len(t, opened.G3.BenefitReporting, 1)

	after := st.Load(ctx)
	assert.Len(t, after.Find(first).G3.BenefitReporting, 1)
	assert.Equal(t, first, *after.LastOpenedID)

	resumed, err := svc.Resume(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, resumed.ID)
}

func TestBRPService_ResumeEmpty(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Resume(context.Background())
	assert.ErrorIs(t, err, ErrNothingToResume)
}

func TestBRPService_ListRecentSearch(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createTestBRP(t, svc, "Alpha")
	b := createTestBRP(t, svc, "Beta")
	_, err := svc.Save(ctx, a, workflow.SaveGateCommand{}, "")
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a, all[0].ID)

	recent, err := svc.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, a, recent[0].ID, "the most recently saved record comes first")

	hits, err := svc.Search(ctx, "bet")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, b, hits[0].ID)

	hits, err = svc.Search(ctx, "PN-")
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestBRPService_ReturnsCopies(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	id := createTestBRP(t, svc, "x")

	r, err := svc.Get(ctx, id)
	require.NoError(t, err)
	r.Title = "mutated"

	again, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "x", again.Title)
}

func TestBRPService_PackRecordsEvent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	id := createTestBRP(t, svc, "x")

	p, err := svc.Pack(ctx, id, domain.ActionGovernancePrint)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)

	hist, err := svc.History(ctx, id)
	require.NoError(t, err)
	last := hist[len(hist)-1]
	assert.Equal(t, domain.ActionGovernancePrint, last.Action)
	assert.Equal(t, 1, last.Meta.Gate)
}

func TestBRPService_AuditLimit(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	id := createTestBRP(t, svc, "x")
	for i := 0; i < 4; i++ {
		_, err := svc.Save(ctx, id, workflow.SaveGateCommand{}, "")
		require.NoError(t, err)
	}

	all, err := svc.Audit(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	tail, err := svc.Audit(ctx, 2)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, all[4].ID, tail[1].ID)
}

func TestBRPService_CloseAtFinalGate(t *testing.T) {
	svc, st := setupService(t)
	ctx := context.Background()

	c := st.Load(ctx)
	r := testutil.NewBRPAtGate("Closing", 7)
	r.ID = st.NextID(c)
	c.Records = append(c.Records, r)
	require.NoError(t, st.Save(ctx, c))

	got, _ := svc.Get(ctx, r.ID)
	cmd := workflow.CommandFor(got)
	cmd.Status = domain.StatusComplete
	_, err := svc.Close(ctx, r.ID, cmd)
	assert.ErrorIs(t, err, workflow.ErrValidation)

	cmd.G7.Signoff = "Approved at board"
	closed, err := svc.Close(ctx, r.ID, cmd)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, closed.Status)
	assert.Equal(t, domain.ActionCloseout, closed.History[len(closed.History)-1].Action)
}

func TestBRPService_ResetExportImport(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	createTestBRP(t, svc, "a")
	createTestBRP(t, svc, "b")

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf))

	require.NoError(t, svc.Reset(ctx))
	list, _ := svc.List(ctx)
	assert.Empty(t, list)
	assert.Equal(t, "000003", createTestBRP(t, svc, "c"), "counter survives reset")

	n, err := svc.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	list, _ = svc.List(ctx)
	assert.Len(t, list, 2)
	assert.Equal(t, "000004", createTestBRP(t, svc, "d"), "import never lowers the counter")
}

func TestBRPService_StatsAndSeed(t *testing.T) {
	obs := &recordingObserver{}
	svc, _ := setupService(t, obs)
	ctx := context.Background()

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(demoSeeds), n)

	n, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "seeding a non-empty store is a no-op")

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(demoSeeds), st.Total)
	assert.Equal(t, 1, st.ByGate[6], "one seeded record sits at gate 7")
	assert.NotEmpty(t, st.KPIs)

	resumed, err := svc.Resume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "000001", resumed.ID)
	assert.Contains(t, obs.names(), "seed")
}

func TestSeed_RecordsSatisfyInvariants(t *testing.T) {
	for i, seed := range demoSeeds {
		r := buildSeed(seed, domain.FormatRecordID(i+1), testutil.FixedNow)
		assert.Equal(t, seed.gate, r.Gate)
		assert.Len(t, r.G3.BenefitReporting, len(r.G2.Benefits), seed.title)
		assert.Len(t, r.G7.KPIActuals, len(r.G2.KPIs), seed.title)
		for _, k := range r.G2.KPIs {
			assert.Regexp(t, `^K[0-9A-F]{6}$`, k.ID)
		}
		assert.True(t, r.UpdatedAt.After(r.CreatedAt) || r.UpdatedAt.Equal(r.CreatedAt), seed.title)
	}
}
