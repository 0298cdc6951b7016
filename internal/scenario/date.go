package scenario

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"gopkg.in/yaml.v3"
)

// Date is a calendar date that reads and writes as a bare TOML local date or a
// YAML scalar. The zero value means "not set".
type Date struct {
	civil.Date
}

// NewDate wraps d.
func NewDate(d civil.Date) Date { return Date{Date: d} }

// Set reports whether the date was given.
func (d Date) Set() bool { return d.Date != civil.Date{} }

// UnmarshalTOML accepts both local dates and quoted strings.
func (d *Date) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case time.Time:
		d.Date = civil.DateOf(x)
		return nil
	case string:
		return d.parse(x)
	default:
		return fmt.Errorf("expected a date, got %T", v)
	}
}

// MarshalTOML writes a bare local date.
func (d Date) MarshalTOML() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a date", n.Line)
	}
	return d.parse(n.Value)
}

func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Date) parse(s string) error {
	parsed, err := civil.ParseDate(s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	d.Date = parsed
	return nil
}

func dates(ds []Date) []civil.Date {
	out := make([]civil.Date, len(ds))
	for i, d := range ds {
		out[i] = d.Date
	}
	return out
}
