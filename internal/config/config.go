package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile is a named bundle of timing/distance/velocity thresholds
// governing classification, plus the security policy applied to
// emitted events.
type Profile struct {
	Name      string          `yaml:"-"`
	Tap       TapConfig       `yaml:"tap"`
	DoubleTap DoubleTapConfig `yaml:"double_tap"`
	LongPress LongPressConfig `yaml:"long_press"`
	Swipe     SwipeConfig     `yaml:"swipe"`
	Pinch     PinchConfig     `yaml:"pinch"`
	Rotate    RotateConfig    `yaml:"rotate"`
	Shake     ShakeConfig     `yaml:"shake"`
	Force     ForceConfig     `yaml:"force"`
	Momentum  MomentumConfig  `yaml:"momentum"`
	Security  SecurityConfig  `yaml:"security"`
}

type TapConfig struct {
	MaxDurationMs       int     `yaml:"max_duration_ms"`
	MovementTolerancePx float64 `yaml:"movement_tolerance_px"`
}

type DoubleTapConfig struct {
	TimeoutMs  int     `yaml:"timeout_ms"`
	DistancePx float64 `yaml:"distance_px"`
}

type LongPressConfig struct {
	DelayMs int `yaml:"delay_ms"`
}

type SwipeConfig struct {
	MinDistancePx float64 `yaml:"min_distance_px"`
	MinVelocity   float64 `yaml:"min_velocity"` // px per ms
	MaxDurationMs int     `yaml:"max_duration_ms"`
}

type PinchConfig struct {
	// ScaleThreshold is the minimum |scale - 1| before a two-finger
	// move commits as pinch.
	ScaleThreshold float64 `yaml:"scale_threshold"`
}

type RotateConfig struct {
	AngleThresholdDeg float64 `yaml:"angle_threshold_deg"`
}

type ShakeConfig struct {
	MinReversals   int     `yaml:"min_reversals"`
	WindowMs       int     `yaml:"window_ms"`
	MinAmplitudePx float64 `yaml:"min_amplitude_px"`
}

type ForceConfig struct {
	Threshold float64 `yaml:"threshold"`
}

type MomentumConfig struct {
	Enabled bool `yaml:"enabled"`
	// DecayRate is the exponential decay constant per millisecond.
	DecayRate float64 `yaml:"decay_rate"`
	// StopThreshold is the velocity magnitude (px/ms) below which
	// momentum stops.
	StopThreshold float64 `yaml:"stop_threshold"`
}

// SecurityConfig lists gesture types (by wire name, e.g. "long_press")
// that downstream consumers must treat specially. The classifier only
// tags emitted events; enforcement is a consumer responsibility.
type SecurityConfig struct {
	Sensitive           []string `yaml:"sensitive"`
	RequireConfirmation []string `yaml:"require_confirmation"`
}

// gestureNames is the closed set of gesture type names accepted in
// security policy lists. Kept in sync with the gesture package enum.
var gestureNames = map[string]bool{
	"force_press": true,
	"pinch":       true,
	"rotate":      true,
	"shake":       true,
	"swipe":       true,
	"pan":         true,
	"long_press":  true,
	"tap":         true,
	"double_tap":  true,
}

// Default returns the default threshold profile.
func Default() Profile {
	return Profile{
		Name:      "default",
		Tap:       TapConfig{MaxDurationMs: 200, MovementTolerancePx: 10},
		DoubleTap: DoubleTapConfig{TimeoutMs: 300, DistancePx: 50},
		LongPress: LongPressConfig{DelayMs: 500},
		Swipe:     SwipeConfig{MinDistancePx: 50, MinVelocity: 0.3, MaxDurationMs: 300},
		Pinch:     PinchConfig{ScaleThreshold: 0.1},
		Rotate:    RotateConfig{AngleThresholdDeg: 15},
		Shake:     ShakeConfig{MinReversals: 3, WindowMs: 800, MinAmplitudePx: 30},
		Force:     ForceConfig{Threshold: 0.75},
		Momentum:  MomentumConfig{Enabled: true, DecayRate: 0.004, StopThreshold: 0.01},
	}
}

// builtins constructs the closed set of named profiles. Each profile
// fully specifies every threshold.
func builtins() map[string]Profile {
	def := Default()

	accessibility := def
	accessibility.Name = "accessibility"
	accessibility.Tap = TapConfig{MaxDurationMs: 350, MovementTolerancePx: 15}
	accessibility.DoubleTap = DoubleTapConfig{TimeoutMs: 450, DistancePx: 60}
	accessibility.LongPress = LongPressConfig{DelayMs: 700}
	accessibility.Swipe = SwipeConfig{MinDistancePx: 60, MinVelocity: 0.2, MaxDurationMs: 450}

	security := def
	security.Name = "security-sensitive"
	security.Tap = TapConfig{MaxDurationMs: 200, MovementTolerancePx: 5}
	security.DoubleTap = DoubleTapConfig{TimeoutMs: 250, DistancePx: 30}
	security.LongPress = LongPressConfig{DelayMs: 800}
	security.Momentum = MomentumConfig{Enabled: false, DecayRate: 0.004, StopThreshold: 0.01}
	security.Security = SecurityConfig{
		Sensitive:           []string{"long_press", "double_tap", "force_press"},
		RequireConfirmation: []string{"long_press", "force_press"},
	}

	navigation := def
	navigation.Name = "navigation"
	navigation.Swipe = SwipeConfig{MinDistancePx: 40, MinVelocity: 0.25, MaxDurationMs: 350}
	navigation.Momentum = MomentumConfig{Enabled: true, DecayRate: 0.003, StopThreshold: 0.008}

	pinEntry := def
	pinEntry.Name = "pin-entry"
	pinEntry.Tap = TapConfig{MaxDurationMs: 250, MovementTolerancePx: 8}
	pinEntry.DoubleTap = DoubleTapConfig{TimeoutMs: 200, DistancePx: 20}
	pinEntry.LongPress = LongPressConfig{DelayMs: 800}
	pinEntry.Momentum = MomentumConfig{Enabled: false, DecayRate: 0.004, StopThreshold: 0.01}
	pinEntry.Security = SecurityConfig{
		Sensitive:           []string{"tap", "long_press"},
		RequireConfirmation: []string{"long_press"},
	}

	return map[string]Profile{
		def.Name:           def,
		accessibility.Name: accessibility,
		security.Name:      security,
		navigation.Name:    navigation,
		pinEntry.Name:      pinEntry,
	}
}

// Named returns the built-in profile with the given name.
func Named(name string) (Profile, error) {
	p, ok := builtins()[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (available: %v)", name, Names())
	}
	return p, nil
}

// Names lists the built-in profile names in sorted order.
func Names() []string {
	b := builtins()
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// overlayDoc is the on-disk shape of a profile overlay file.
type overlayDoc struct {
	Profile   string    `yaml:"profile"`
	Overrides yaml.Node `yaml:"overrides"`
}

// LoadOverlay reads a partial threshold override file and merges it over
// the named base profile. Unknown keys anywhere in the file are rejected.
func LoadOverlay(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read overlay file: %w", err)
	}
	return ParseOverlay(data)
}

// ParseOverlay merges overlay bytes over the base profile they name.
func ParseOverlay(data []byte) (Profile, error) {
	var doc overlayDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Profile{}, fmt.Errorf("failed to parse overlay: %w", err)
	}

	if doc.Profile == "" {
		doc.Profile = "default"
	}
	base, err := Named(doc.Profile)
	if err != nil {
		return Profile{}, err
	}

	// Decoding strictly onto a prefilled copy of the base gives merge
	// semantics: absent keys keep base values, unknown keys error out.
	merged := struct {
		Profile   string   `yaml:"profile"`
		Overrides *Profile `yaml:"overrides"`
	}{Overrides: &base}
	dec = yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&merged); err != nil {
		return Profile{}, fmt.Errorf("failed to parse overlay: %w", err)
	}

	base.Name = doc.Profile
	if err := base.Validate(); err != nil {
		return Profile{}, fmt.Errorf("overlay validation failed: %w", err)
	}
	return base, nil
}

// Validate checks that every threshold is usable.
func (p Profile) Validate() error {
	if p.Tap.MaxDurationMs <= 0 {
		return fmt.Errorf("tap.max_duration_ms must be positive")
	}
	if p.Tap.MovementTolerancePx <= 0 {
		return fmt.Errorf("tap.movement_tolerance_px must be positive")
	}
	if p.DoubleTap.TimeoutMs <= 0 {
		return fmt.Errorf("double_tap.timeout_ms must be positive")
	}
	if p.DoubleTap.DistancePx <= 0 {
		return fmt.Errorf("double_tap.distance_px must be positive")
	}
	if p.LongPress.DelayMs <= 0 {
		return fmt.Errorf("long_press.delay_ms must be positive")
	}
	if p.Swipe.MinDistancePx <= 0 || p.Swipe.MaxDurationMs <= 0 {
		return fmt.Errorf("swipe thresholds must be positive")
	}
	if p.Swipe.MinVelocity < 0 {
		return fmt.Errorf("swipe.min_velocity must not be negative")
	}
	if p.Pinch.ScaleThreshold <= 0 {
		return fmt.Errorf("pinch.scale_threshold must be positive")
	}
	if p.Rotate.AngleThresholdDeg <= 0 {
		return fmt.Errorf("rotate.angle_threshold_deg must be positive")
	}
	if p.Shake.MinReversals < 2 {
		return fmt.Errorf("shake.min_reversals must be at least 2")
	}
	if p.Shake.WindowMs <= 0 || p.Shake.MinAmplitudePx <= 0 {
		return fmt.Errorf("shake thresholds must be positive")
	}
	if p.Force.Threshold <= 0 || p.Force.Threshold > 1 {
		return fmt.Errorf("force.threshold must be in (0, 1]")
	}
	if p.Momentum.Enabled && (p.Momentum.DecayRate <= 0 || p.Momentum.StopThreshold <= 0) {
		return fmt.Errorf("momentum decay_rate and stop_threshold must be positive")
	}
	for _, name := range p.Security.Sensitive {
		if !gestureNames[name] {
			return fmt.Errorf("security.sensitive: unknown gesture type %q", name)
		}
	}
	for _, name := range p.Security.RequireConfirmation {
		if !gestureNames[name] {
			return fmt.Errorf("security.require_confirmation: unknown gesture type %q", name)
		}
	}
	return nil
}

// Exists checks if an overlay file exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
