package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/repository"
	"github.com/alexanderramin/brp/internal/service"
	"github.com/alexanderramin/brp/internal/store"
	"github.com/alexanderramin/brp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	clock := &tickingClock{t: testutil.FixedNow}
	st := store.New(repository.NewSQLiteDocumentRepo(testutil.NewTestDB(t)), store.WithClock(clock.Now))
	return &App{
		BRPs: service.NewBRPService(st, clock.Now),
		Now:  clock.Now,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr with ANSI removed.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

func mustExecute(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, out)
	return out
}

func createViaCLI(t *testing.T, app *App, title string) {
	t.Helper()
	mustExecute(t, app, "create", "--title", title, "--number", "PN-"+title)
}

func TestCreateListShow(t *testing.T) {
	app := testApp(t)

	out := mustExecute(t, app, "create", "--title", "Payroll Modernization", "--number", "PN-77", "--type", "programme")
	assert.Contains(t, out, "Created BRP 000001 Payroll Modernization")

	out = mustExecute(t, app, "list")
	assert.Contains(t, out, "000001")
	assert.Contains(t, out, "PN-77")

	out = mustExecute(t, app, "show", "1")
	assert.Contains(t, out, "GATE 1 - IDENTIFICATION")
	assert.Contains(t, out, "Programme")
}

func TestCreate_RequiresFlags(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "create", "--title", "x")
	assert.ErrorContains(t, err, `required flag(s) "number" not set`)

	_, err = executeCmd(t, app, "create", "--title", " ", "--number", "1")
	assert.ErrorIs(t, err, service.ErrTitleRequired)

	_, err = executeCmd(t, app, "create", "--title", "a", "--number", "1", "--type", "portfolio")
	assert.ErrorContains(t, err, "invalid type")
}

func TestListEmpty(t *testing.T) {
	app := testApp(t)
	assert.Contains(t, mustExecute(t, app, "list"), "No BRPs found.")
	assert.Contains(t, mustExecute(t, app, "search", "zzz"), `No BRPs match "zzz".`)
}

func TestShow_UnknownID(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "show", "42")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = executeCmd(t, app, "show", "abc")
	assert.ErrorContains(t, err, "invalid BRP ID")
}

func TestResume_NothingOpened(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "resume")
	assert.ErrorIs(t, err, service.ErrNothingToResume)
}

func TestGateNext_ReportsFirstMissingField(t *testing.T) {
	app := testApp(t)
	createViaCLI(t, app, "alpha")

	_, err := executeCmd(t, app, "gate", "next")
	assert.ErrorContains(t, err, "Project Description is required to advance to Gate 2.")
	assert.ErrorContains(t, err, "g1.projectDescription")

	r, err := app.BRPs.Get(context.Background(), "000001")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Gate)
}

func TestGateNext_WithAssignments(t *testing.T) {
	app := testApp(t)
	createViaCLI(t, app, "alpha")

	out := mustExecute(t, app, "gate", "next", "000001",
		"--set", "projectDescription=Replace the payroll system",
		"--set", "sponsorName=Sam Sponsor",
		"--set", "sponsorOrg=adm(fin)",
		"--set", "businessOwnerName=Olive Owner",
		"--set", "governanceReportingDate=2025-01-15",
	)
	assert.Contains(t, out, "G1 Identification → G2 ID Updates")

	r, err := app.BRPs.Get(context.Background(), "000001")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Gate)
	assert.Equal(t, "ADM(Fin)", r.G1.SponsorOrg, "choices are canonicalized")
}

func TestGateSave_RejectsBadAssignments(t *testing.T) {
	app := testApp(t)
	createViaCLI(t, app, "alpha")

	tests := []struct {
		set  string
		want string
	}{
		{"nonsense", "expected key=value"},
		{"nope=1", `unknown field "nope"`},
		{"governanceReportingDate=15/01/2025", "use YYYY-MM-DD format"},
		{"brpStatus=Finished", "is not one of"},
	}
	for _, tt := range tests {
		t.Run(tt.set, func(t *testing.T) {
			_, err := executeCmd(t, app, "gate", "save", "1", "--set", tt.set)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestGateSave_ExpectedGateGuard(t *testing.T) {
	app := testApp(t)
	createViaCLI(t, app, "alpha")

	_, err := executeCmd(t, app, "gate", "save", "1", "--gate", "3")
	assert.ErrorContains(t, err, "is at gate 1, not gate 3")

	_, err = executeCmd(t, app, "gate", "save", "1", "--gate", "9")
	assert.ErrorContains(t, err, "gate must be a number from 1 to 7")

	out := mustExecute(t, app, "gate", "save", "1", "--gate", "1", "--set", "sponsorName=Sam")
	assert.Contains(t, out, "Saved 000001 at G1 Identification")
}

func TestGateBack_AtFirstGate(t *testing.T) {
	app := testApp(t)
	createViaCLI(t, app, "alpha")
	_, err := executeCmd(t, app, "gate", "back", "1")
	assert.ErrorContains(t, err, "already at the first gate")
}

func TestGateClose_OnlyAtFinalGate(t *testing.T) {
	app := testApp(t)
	createViaCLI(t, app, "alpha")
	_, err := executeCmd(t, app, "gate", "close", "1")
	assert.ErrorContains(t, err, "close out is only available at Gate 7")

	_, err = executeCmd(t, app, "gate", "close", "1", "--status", "done")
	assert.ErrorContains(t, err, "invalid status")
}

func TestItemCommands(t *testing.T) {
	app := testApp(t)
	createViaCLI(t, app, "alpha")
	ctx := context.Background()

	r, err := app.BRPs.Get(ctx, "000001")
	require.NoError(t, err)
	testutil.FillGate1(r)
	cmd := commandWithGate1(r)
	_, err = app.BRPs.Advance(ctx, r.ID, cmd)
	require.NoError(t, err)

	assert.Contains(t, mustExecute(t, app, "item", "add", "outcome", "--id", "1"), "Added outcome to 000001 (1 total)")
	assert.Contains(t, mustExecute(t, app, "item", "add", "option"), "Added option")
	assert.Contains(t, mustExecute(t, app, "item", "select", "0"), "Selected option #0")

	out := mustExecute(t, app, "gate", "fields", "1")
	assert.Contains(t, out, "outcomes.0.name")
	assert.Contains(t, out, "options.0.selected")

	assert.Contains(t, mustExecute(t, app, "item", "remove", "outcome", "0"), "(0 left)")

	_, err = executeCmd(t, app, "item", "remove", "outcome", "3")
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	_, err = executeCmd(t, app, "item", "add", "widget")
	assert.ErrorContains(t, err, "unknown item kind")

	_, err = executeCmd(t, app, "item", "add", "transition")
	assert.ErrorIs(t, err, domain.ErrWrongGate)
	assert.ErrorContains(t, err, "transition rows can only be edited at Gate 5")
}

func TestItemCommands_RejectedAfterGate2(t *testing.T) {
	app := testApp(t)
	createViaCLI(t, app, "alpha")

	_, err := executeCmd(t, app, "item", "add", "benefit")
	assert.ErrorIs(t, err, domain.ErrWrongGate)
	assert.ErrorContains(t, err, "benefit rows can only be edited at Gate 2")

	_, err = executeCmd(t, app, "item", "select", "0")
	assert.ErrorContains(t, err, "option rows can only be edited at Gate 2")
}

func TestPackAndHistory(t *testing.T) {
	app := testApp(t)
	createViaCLI(t, app, "alpha")

	out := mustExecute(t, app, "pack", "1")
	assert.Contains(t, out, "GOVERNANCE PACK")
	mustExecute(t, app, "pack", "1", "--print")

	out = mustExecute(t, app, "view", "1")
	assert.Contains(t, out, "GOVERNANCE PACK", "non-interactive view falls back to plain output")

	out = mustExecute(t, app, "history", "1")
	assert.Contains(t, out, "governance_print")
	assert.Contains(t, out, "governance_view")
	assert.Contains(t, out, `Created "alpha" (PN-alpha)`)

	out = mustExecute(t, app, "audit", "-n", "1")
	assert.Contains(t, out, "governance_view")
	assert.NotContains(t, out, "create")
}

func TestSeedAndStats(t *testing.T) {
	app := testApp(t)
	assert.Contains(t, mustExecute(t, app, "stats"), "No BRPs yet")

	out := mustExecute(t, app, "seed")
	assert.Regexp(t, `Seeded \d+ demo BRPs`, out)
	assert.Contains(t, mustExecute(t, app, "seed"), "nothing seeded")

	out = mustExecute(t, app, "stats")
	assert.Contains(t, out, "BY GATE")
	assert.Contains(t, out, "KPI AVERAGES")
}

func TestExportResetImport(t *testing.T) {
	app := testApp(t)
	createViaCLI(t, app, "alpha")
	createViaCLI(t, app, "beta")

	path := filepath.Join(t.TempDir(), "brp.json")
	mustExecute(t, app, "export", "-o", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"idCounter": 2`)

	_, err = executeCmd(t, app, "reset")
	assert.ErrorIs(t, err, errResetNotConfirmed)

	assert.Contains(t, mustExecute(t, app, "reset", "--yes"), "All BRPs deleted.")
	assert.Contains(t, mustExecute(t, app, "list"), "No BRPs found.")

	assert.Contains(t, mustExecute(t, app, "import", path), "Imported 2 BRPs.")
	assert.Contains(t, mustExecute(t, app, "search", "beta"), "000002")
}

func TestWizard_RequiresTerminal(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "wizard")
	assert.ErrorContains(t, err, "interactive terminal")
}
