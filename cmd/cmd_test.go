package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/moolah/internal/config"
	"github.com/theirongolddev/moolah/internal/scenario"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const householdTOML = `
name = "household"
start = 2024-01-01
initial_value = 1000

[[deltas]]
name = "rent"
kind = "monthly"
value = -800
start = 2024-01-01
end = 2024-12-31
month_day = 1

[[deltas]]
name = "bonus"
value = 250
on = 2024-01-10
`

// isolate points config and data at temp dirs and clears flag state left by
// earlier runs.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{config.EnvLogLevel, config.EnvLogOut, config.EnvDB, config.EnvScenario, config.EnvHorizon} {
		t.Setenv(k, "")
	}

	flagScenario, flagDB, flagID, flagStart, flagLogLevel = "", "", "", "", ""
	flagDays, flagQuiet, flagAll = 0, false, false
	log = zerolog.Nop()
	return dir
}

func writeScenario(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "household.toml")
	require.NoError(t, os.WriteFile(path, []byte(householdTOML), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := execute()
	return out.String(), err
}

func TestForecastCommand(t *testing.T) {
	path := writeScenario(t, isolate(t))

	out, err := run(t, "forecast", "-q", "-s", path, "--days", "40")
	require.NoError(t, err)

	assert.Contains(t, out, "FORECAST")
	assert.Contains(t, out, "2024-01-10")
	assert.Contains(t, out, "bonus")
	assert.Contains(t, out, "-$350.00", "final balance after two rents and the bonus")
	assert.NotContains(t, out, "2024-01-02", "event rows only without --all")

	out, err = run(t, "-q", "-s", path, "--days", "40", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-02")
	assert.Contains(t, out, "2024-02-10")
}

func TestLogOutputFile(t *testing.T) {
	dir := isolate(t)
	path := writeScenario(t, dir)
	logPath := filepath.Join(dir, "logs", "moolah.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0o750))
	t.Setenv(config.EnvLogOut, logPath)

	_, err := run(t, "forecast", "--log-level", "debug", "-s", path, "--days", "40")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "forecast computed")
	assert.Contains(t, string(data), "component=cmd")
	assert.NotContains(t, string(data), "\x1b[", "file output is not colored")

	// A failing command still releases the file.
	flagScenario = ""
	_, err = run(t, "forecast", "--log-level", "debug")
	require.ErrorIs(t, err, errNoScenario)
	_, isFile := logCloser.(*os.File)
	assert.False(t, isFile, "log file left open after a failed command")
}

func TestForecastCommand_StartOverride(t *testing.T) {
	path := writeScenario(t, isolate(t))

	out, err := run(t, "forecast", "-q", "-s", path, "--days", "10", "--start", "2024-01-05")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-05")
	assert.NotContains(t, out, "rent", "the January rent falls before the overridden start")

	_, err = run(t, "forecast", "-q", "-s", path, "--start", "soon")
	assert.Error(t, err)
}

func TestForecastCommand_NoScenario(t *testing.T) {
	isolate(t)
	_, err := run(t, "forecast", "-q")
	assert.ErrorIs(t, err, errNoScenario)
}

func TestDeltasCommand(t *testing.T) {
	path := writeScenario(t, isolate(t))

	out, err := run(t, "deltas", "-q", "-s", path, "--days", "40")
	require.NoError(t, err)
	for _, s := range []string{"rent", "monthly", "bonus", "once", "exact", "-$1,600.00", "+$250.00"} {
		assert.Contains(t, out, s)
	}
	assert.Contains(t, out, "-$1,350.00", "net flow")
}

func TestStoreCommands(t *testing.T) {
	dir := isolate(t)
	path := writeScenario(t, dir)
	db := filepath.Join(dir, "store.db")

	out, err := run(t, "store", "save", "-q", "-s", path, "--db", db)
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = run(t, "store", "list", "-q", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "household")

	flagScenario = ""
	out, err = run(t, "forecast", "-q", "--db", db, "--id", "household", "--days", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "-$350.00")

	flagID = ""
	out, err = run(t, "store", "rm", "-q", "--db", db, "household")
	require.NoError(t, err)
	assert.Contains(t, out, id)

	out, err = run(t, "store", "ls", "-q", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No saved scenarios")
}

func TestConfigCommand(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvHorizon, "90")

	out, err := run(t, "config", "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "using defaults")
	assert.Contains(t, out, "Horizon days: 90")
	assert.Contains(t, out, "flexoki-dark")
}

func TestAppendRecord(t *testing.T) {
	path := writeScenario(t, isolate(t))

	sc, err := scenario.Load(path)
	require.NoError(t, err)

	rec := scenario.Record{Name: "refund", Kind: scenario.KindOnce, Value: 40,
		On: scenario.NewDate(civil.Date{Year: 2024, Month: 3, Day: 3})}
	require.NoError(t, appendRecord(sc, source{path: path}, rec))

	reloaded, err := scenario.Load(path)
	require.NoError(t, err)
	require.Len(t, reloaded.Deltas, 3)
	assert.Equal(t, "refund", reloaded.Deltas[2].Name)

	bad := scenario.Record{Name: "", Kind: scenario.KindOnce, Value: 1}
	assert.Error(t, appendRecord(sc, source{path: path}, bad))
	assert.Len(t, sc.Deltas, 3, "a rejected record is not kept")
}

func TestLoadPrediction_TodayFallback(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "open.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: open\ninitial_value: 10\n"), 0o600))

	orig := today
	t.Cleanup(func() { today = orig })
	today = func() civil.Date { return civil.Date{Year: 2030, Month: 6, Day: 1} }

	flagScenario = path
	p, _, _, err := loadPrediction()
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2030, Month: 6, Day: 1}, p.Start())
}

func TestHelpers(t *testing.T) {
	isolate(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "plans", "a.toml"), expandHome("~/plans/a.toml"))
	assert.Equal(t, "/tmp/a.toml", expandHome("/tmp/a.toml"))
	assert.Equal(t, "~user/a.toml", expandHome("~user/a.toml"))

	cfg.General.HorizonDays = 120
	assert.Equal(t, 120, horizonDays())
	flagDays = 7
	assert.Equal(t, 7, horizonDays())

	series := make([]float64, 100)
	for i := range series {
		series[i] = float64(i)
	}
	got := sampleValues(series, 10)
	require.Len(t, got, 10)
	assert.Equal(t, 0.0, got[0])
	assert.Equal(t, 99.0, got[9])
	assert.Len(t, sampleValues(series[:5], 10), 5)
}
