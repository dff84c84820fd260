package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/docket/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataset = `CaseNo,Offense,Vulnerable,AgeofCase,BailMatter,UnderTrial
CR-1,Heinous,None,10,No,No
CR-2,Serious,Woman,2,Yes,Yes
CR-3,Moderate,Senior Citizen,1,No,No
CR-4,Petty,None,1,No,No
`

// newTestApp returns an App over a temp CSV dataset and a sqlite ledger path.
func newTestApp(t *testing.T, source string) (*App, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	dataset := filepath.Join(dir, "cases.csv")
	require.NoError(t, os.WriteFile(dataset, []byte(testDataset), 0o600))

	cfg := config.New()
	cfg.Source = source
	cfg.DatasetPath = dataset
	cfg.LedgerPath = filepath.Join(dir, "docket.db")
	cfg.AdjournmentRate = 0

	out := &bytes.Buffer{}
	return &App{Out: out, Err: io.Discard, Config: cfg}, out
}

func execute(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestDashboardCmd(t *testing.T) {
	app, out := newTestApp(t, config.SourceCSV)

	require.NoError(t, execute(t, app, "dashboard"))

	text := out.String()
	assert.Contains(t, text, "total 3")
	assert.Contains(t, text, "79.00")
	assert.Contains(t, text, "41.00")
	assert.Contains(t, text, "Rejected records (1)")
	assert.Contains(t, text, "CR-4")
	assert.Less(t, strings.Index(text, "CR-2"), strings.Index(text, "CR-1"))
}

func TestDashboardCmdLimit(t *testing.T) {
	app, out := newTestApp(t, config.SourceCSV)

	require.NoError(t, execute(t, app, "dashboard", "--limit", "1"))

	text := out.String()
	assert.Contains(t, text, "CR-2")
	assert.NotContains(t, text, "CR-3")
	assert.Equal(t, 1, strings.Count(text, "Pending"))
}

func TestAllocateCmd(t *testing.T) {
	app, out := newTestApp(t, config.SourceCSV)

	require.NoError(t, execute(t, app, "allocate"))

	text := out.String()
	assert.Contains(t, text, "capacity 5")
	assert.Contains(t, text, "unassigned 0")
	assert.Contains(t, text, "Justice Sharma")
	assert.Contains(t, text, "Justice Khan")
}

func TestSimulateCmd(t *testing.T) {
	app, out := newTestApp(t, config.SourceCSV)

	require.NoError(t, execute(t, app, "simulate", "--days", "2", "--seed", "7"))

	text := out.String()
	assert.Contains(t, text, "Day 1")
	assert.Contains(t, text, "Day 2")
	assert.Contains(t, text, "disposed: CR-3")
	assert.Contains(t, text, "disposed 1")
}

func TestSimulateCmdRejectsBadFlags(t *testing.T) {
	app, _ := newTestApp(t, config.SourceCSV)
	assert.Error(t, execute(t, app, "simulate", "--days", "0"))

	app, _ = newTestApp(t, config.SourceCSV)
	assert.Error(t, execute(t, app, "simulate", "--rate", "2"))
}

func TestAddCmdCSV(t *testing.T) {
	app, out := newTestApp(t, config.SourceCSV)

	require.NoError(t, execute(t, app,
		"add", "--case-no", "CR-9", "--offense", "Heinous", "--vulnerable", "Child",
		"--age", "20", "--bail", "Yes", "--under-trial", "Yes"))
	assert.Contains(t, out.String(), "Filed CR-9 with score 100.00 at rank 1")

	data, err := os.ReadFile(app.Config.DatasetPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CR-9,Heinous,Child,20,Yes,Yes")

	app.Out = &bytes.Buffer{}
	assert.Error(t, execute(t, app, "add", "--case-no", "CR-9", "--offense", "Moderate", "--age", "1"))
}

func TestAddCmdRejectsInvalid(t *testing.T) {
	app, _ := newTestApp(t, config.SourceCSV)

	err := execute(t, app, "add", "--case-no", "CR-9", "--offense", "Petty", "--age", "1")
	assert.Error(t, err)

	err = execute(t, app, "add", "--offense", "Heinous", "--age", "1")
	assert.Error(t, err)
}

func TestAddCmdSQLite(t *testing.T) {
	app, _ := newTestApp(t, config.SourceSQLite)

	require.NoError(t, execute(t, app, "add", "--case-no", "L-1", "--offense", "Serious", "--age", "5"))

	out := &bytes.Buffer{}
	app.Out = out
	require.NoError(t, execute(t, app, "dashboard"))
	assert.Contains(t, out.String(), "L-1")
	assert.Contains(t, out.String(), "total 1")
}

func TestDaysCmd(t *testing.T) {
	app, _ := newTestApp(t, config.SourceSQLite)
	require.NoError(t, execute(t, app, "add", "--case-no", "L-1", "--offense", "Moderate", "--age", "5"))
	require.NoError(t, execute(t, app, "simulate", "--days", "2", "--seed", "3"))

	out := &bytes.Buffer{}
	app.Out = out
	require.NoError(t, execute(t, app, "days"))

	text := out.String()
	assert.Contains(t, text, "Day Log")
	assert.Contains(t, text, "days 2")
	assert.Contains(t, text, "L-1")
}

func TestDaysCmdErrors(t *testing.T) {
	app, _ := newTestApp(t, config.SourceCSV)
	assert.Error(t, execute(t, app, "days"))

	app, _ = newTestApp(t, config.SourceSQLite)
	assert.Error(t, execute(t, app, "days"))
	assert.Error(t, execute(t, app, "days", "--session", "missing"))
}
