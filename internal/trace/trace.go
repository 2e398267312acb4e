// Package trace records and replays touch interactions as YAML files.
//
// A trace is a timed sequence of touch samples. Traces captured from a
// live device make gesture tuning reproducible: the same interaction
// can be replayed against different threshold profiles, or plotted to
// inspect the contact paths.
package trace

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"touchsense/internal/touch"
)

// Contact is one contact position inside a sample.
type Contact struct {
	ID       int      `yaml:"id"`
	X        float64  `yaml:"x"`
	Y        float64  `yaml:"y"`
	Pressure *float64 `yaml:"pressure,omitempty"`
}

// Sample is one timed frame of the interaction. AtMs is the offset from
// the start of the trace.
type Sample struct {
	AtMs     int64     `yaml:"at_ms"`
	Phase    string    `yaml:"phase"`
	Contacts []Contact `yaml:"contacts,omitempty"`
}

// Trace is a recorded interaction.
type Trace struct {
	Name    string   `yaml:"name,omitempty"`
	Profile string   `yaml:"profile,omitempty"`
	Samples []Sample `yaml:"samples"`
}

// Parse decodes a YAML trace. Unknown fields are rejected so a typo in a
// hand-written trace fails loudly instead of silently dropping data.
func Parse(data []byte) (*Trace, error) {
	var tr Trace
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tr); err != nil {
		return nil, fmt.Errorf("parsing trace: %w", err)
	}
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	return &tr, nil
}

// Load reads and parses a trace file.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return Parse(data)
}

// Save writes the trace as YAML.
func (tr *Trace) Save(path string) error {
	data, err := yaml.Marshal(tr)
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Validate checks phases and sample ordering.
func (tr *Trace) Validate() error {
	if len(tr.Samples) == 0 {
		return fmt.Errorf("trace has no samples")
	}

	var prevMs int64
	for i, s := range tr.Samples {
		if _, err := touch.ParsePhase(s.Phase); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		if s.AtMs < 0 {
			return fmt.Errorf("sample %d: negative offset %d", i, s.AtMs)
		}
		if s.AtMs < prevMs {
			return fmt.Errorf("sample %d: offset %d before previous sample at %d",
				i, s.AtMs, prevMs)
		}
		prevMs = s.AtMs
	}
	return nil
}

// DurationMs is the offset of the last sample.
func (tr *Trace) DurationMs() int64 {
	if len(tr.Samples) == 0 {
		return 0
	}
	return tr.Samples[len(tr.Samples)-1].AtMs
}

// Points converts a sample's contacts to normalized points stamped with
// the sample's offset.
func (s Sample) Points() []touch.Point {
	if len(s.Contacts) == 0 {
		return nil
	}
	pts := make([]touch.Point, len(s.Contacts))
	for i, c := range s.Contacts {
		p := touch.Point{ID: c.ID, X: c.X, Y: c.Y, TimestampMs: s.AtMs}
		if c.Pressure != nil {
			p.Pressure = *c.Pressure
			p.HasPressure = true
		}
		pts[i] = p
	}
	return pts
}
