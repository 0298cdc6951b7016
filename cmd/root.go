package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/moolah/internal/config"
	"github.com/theirongolddev/moolah/internal/logging"
	"github.com/theirongolddev/moolah/internal/prediction"
	"github.com/theirongolddev/moolah/internal/scenario"
	"github.com/theirongolddev/moolah/internal/store"
	"github.com/theirongolddev/moolah/internal/tui/theme"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagScenario string
	flagDB       string
	flagID       string
	flagStart    string
	flagDays     int
	flagQuiet    bool
	flagLogLevel string
)

// Set up once per invocation by PersistentPreRunE.
var (
	cfg       config.Config
	log       zerolog.Logger
	logCloser io.Closer = io.NopCloser(nil)

	// today is the fallback forecast start. Tests replace it.
	today = func() civil.Date { return civil.DateOf(time.Now()) }
)

var errNoScenario = errors.New("no scenario: pass --scenario or --id, or set general.scenario with `moolah setup`")

var rootCmd = &cobra.Command{
	Use:   "moolah",
	Short: "Balance forecasts from scheduled income and expenses",
	Long: "Forecast an account balance from a scenario of one-time and recurring\n" +
		"deltas, with an uncertainty range for every date.",
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
	RunE:              runForecast,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree and then releases the log output, whether or
// not the command failed.
func execute() error {
	err := rootCmd.Execute()
	closeErr := logCloser.Close()
	logCloser = io.NopCloser(nil)
	if err != nil {
		return err
	}
	return closeErr
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagScenario, "scenario", "s", "", "Scenario file (.toml, .yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Scenario store database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagID, "id", "", "Load the scenario from the store by id or name")
	rootCmd.PersistentFlags().StringVar(&flagStart, "start", "", "Forecast start date, YYYY-MM-DD (default scenario start, else today)")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Forecast horizon in days (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func initRuntime(_ *cobra.Command, _ []string) error {
	var err error
	if cfg, err = config.Load(); err != nil {
		return err
	}

	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagQuiet {
		level = zerolog.LevelErrorValue
	}

	log, logCloser, err = logging.New(logging.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: expandHome(cfg.Log.Output),
	})
	if err != nil {
		return err
	}
	log = log.With().Str("component", "cmd").Logger()

	theme.SetActive(cfg.Appearance.Theme)
	return nil
}

// horizonDays is --days when given, else the configured horizon.
func horizonDays() int {
	if flagDays > 0 {
		return flagDays
	}
	return cfg.General.HorizonDays
}

func parseStart() (civil.Date, bool, error) {
	if flagStart == "" {
		return civil.Date{}, false, nil
	}
	d, err := civil.ParseDate(flagStart)
	if err != nil {
		return civil.Date{}, false, fmt.Errorf("--start: %w", err)
	}
	return d, true, nil
}

// expandHome resolves a leading ~/ against the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func openStore() (*store.Store, error) {
	path := flagDB
	if path == "" {
		path = cfg.DBPath()
	}
	st, err := store.Open(expandHome(path))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	log.Debug().Str("path", path).Msg("store opened")
	return st, nil
}

// resolveID accepts either a stored scenario's id or its name.
func resolveID(st *store.Store, idOrName string) string {
	if id, err := st.FindByName(idOrName); err == nil {
		return id
	}
	return idOrName
}

// scenarioPath is the file named by --scenario or the config, if any.
func scenarioPath() string {
	if flagScenario != "" {
		return expandHome(flagScenario)
	}
	return expandHome(cfg.General.Scenario)
}

// source is where a loaded scenario came from, so edits can be written back.
type source struct {
	path string // scenario file, when loaded from disk
	id   string // store id, when loaded with --id
}

func (s source) String() string {
	if s.id != "" {
		return "store:" + s.id
	}
	return s.path
}

// loadScenario resolves the scenario from --id, --scenario or the config, in
// that order.
func loadScenario() (*scenario.Scenario, source, error) {
	if flagID != "" {
		st, err := openStore()
		if err != nil {
			return nil, source{}, err
		}
		defer st.Close()

		id := resolveID(st, flagID)
		sc, err := st.LoadScenario(id)
		if err != nil {
			return nil, source{}, err
		}
		if err := sc.Normalize(); err != nil {
			return nil, source{}, err
		}
		log.Debug().Str("id", id).Int("deltas", len(sc.Deltas)).Msg("scenario loaded from store")
		return sc, source{id: id}, nil
	}

	path := scenarioPath()
	if path == "" {
		return nil, source{}, errNoScenario
	}
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, source{}, err
	}
	log.Debug().Str("path", path).Int("deltas", len(sc.Deltas)).Msg("scenario loaded")
	return sc, source{path: path}, nil
}

// loadPrediction loads the scenario and builds its prediction. --start
// overrides the scenario's own start without changing the returned scenario;
// today fills in when neither is set.
func loadPrediction() (*prediction.Prediction, *scenario.Scenario, source, error) {
	sc, src, err := loadScenario()
	if err != nil {
		return nil, nil, source{}, err
	}
	start, ok, err := parseStart()
	if err != nil {
		return nil, nil, source{}, err
	}
	view := *sc
	if ok {
		view.Start = scenario.NewDate(start)
	}
	p, err := view.Prediction(today())
	if err != nil {
		return nil, nil, source{}, fmt.Errorf("%s: %w", src, err)
	}
	return p, sc, src, nil
}

// appendRecord adds rec to the scenario and writes it back where it came from.
func appendRecord(sc *scenario.Scenario, src source, rec scenario.Record) error {
	sc.Deltas = append(sc.Deltas, rec)
	if err := sc.Normalize(); err != nil {
		sc.Deltas = sc.Deltas[:len(sc.Deltas)-1]
		return err
	}

	if src.id != "" {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if _, err := st.SaveScenario(sc); err != nil {
			return err
		}
		log.Info().Str("id", src.id).Str("delta", rec.Name).Msg("delta stored")
		return nil
	}

	if err := scenario.Save(src.path, sc); err != nil {
		return err
	}
	log.Info().Str("path", src.path).Str("delta", rec.Name).Msg("delta saved")
	return nil
}
