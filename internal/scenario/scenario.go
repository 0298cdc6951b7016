// Package scenario reads and writes forecast scenarios: a starting balance and
// the delta records that are turned into a prediction.
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Scenario is the on-disk form of a prediction.
type Scenario struct {
	Name         string   `toml:"name" yaml:"name" validate:"required"`
	Start        Date     `toml:"start,omitempty" yaml:"start,omitempty"`
	InitialValue float64  `toml:"initial_value" yaml:"initial_value"`
	Deltas       []Record `toml:"deltas" yaml:"deltas" validate:"dive"`
}

// Kind names a delta schedule.
type Kind string

const (
	KindOnce    Kind = "once"
	KindCustom  Kind = "custom"
	KindDaily   Kind = "daily"
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
	KindYearly  Kind = "yearly"
)

// Kinds lists every schedule kind in display order.
var Kinds = []Kind{KindOnce, KindCustom, KindDaily, KindWeekly, KindMonthly, KindYearly}

// Record describes one delta. Which schedule fields are read depends on Kind.
type Record struct {
	Name        string             `toml:"name" yaml:"name" validate:"required"`
	Kind        Kind               `toml:"kind" yaml:"kind" default:"once" validate:"oneof=once custom daily weekly monthly yearly"`
	Value       float64            `toml:"value" yaml:"value"`
	Start       Date               `toml:"start,omitempty" yaml:"start,omitempty"`
	End         Date               `toml:"end,omitempty" yaml:"end,omitempty"`
	On          Date               `toml:"on,omitempty" yaml:"on,omitempty"`
	Dates       []Date             `toml:"dates,omitempty" yaml:"dates,omitempty"`
	Weekday     string             `toml:"weekday,omitempty" yaml:"weekday,omitempty"`
	MonthDay    int                `toml:"month_day,omitempty" yaml:"month_day,omitempty"`
	Skip        int                `toml:"skip,omitempty" yaml:"skip,omitempty" validate:"gte=0"`
	Uncertainty *UncertaintyRecord `toml:"uncertainty,omitempty" yaml:"uncertainty,omitempty"`
}

// UncertaintyRecord is the on-disk form of an uncertainty. Balanced reads Unit
// and Amount, unbalanced reads the Low/High pairs, and bounds reads Low and
// High as absolute values.
type UncertaintyRecord struct {
	Mode     string  `toml:"mode" yaml:"mode" validate:"required,oneof=balanced unbalanced bounds"`
	Unit     string  `toml:"unit,omitempty" yaml:"unit,omitempty" default:"dollars" validate:"oneof=dollars percent"`
	Amount   float64 `toml:"amount,omitempty" yaml:"amount,omitempty"`
	LowUnit  string  `toml:"low_unit,omitempty" yaml:"low_unit,omitempty" default:"dollars" validate:"oneof=dollars percent"`
	Low      float64 `toml:"low,omitempty" yaml:"low,omitempty"`
	HighUnit string  `toml:"high_unit,omitempty" yaml:"high_unit,omitempty" default:"dollars" validate:"oneof=dollars percent"`
	High     float64 `toml:"high,omitempty" yaml:"high,omitempty"`
}

// Format is a scenario file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown scenario format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads, defaults and validates a scenario file.
func Load(path string) (*Scenario, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes data in the given format, then applies defaults and validates.
func Parse(data []byte, format Format) (*Scenario, error) {
	s := &Scenario{}
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), s); err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown scenario format %q", format)
	}
	if err := s.Normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// Normalize applies defaults and validates the scenario in place.
func (s *Scenario) Normalize() error {
	if err := defaults.Set(s); err != nil {
		return fmt.Errorf("applying defaults: %w", err)
	}
	return Validate(s)
}

// Encode writes the scenario in the given format.
func (s *Scenario) Encode(format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown scenario format %q", format)
	}
	return buf.Bytes(), nil
}

// Save writes the scenario to path, creating parent directories. The format
// follows the file extension.
func Save(path string, s *Scenario) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := s.Encode(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating scenario dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}
