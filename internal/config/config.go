package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/vedantwpatil/shake-to-enlarge/internal/cursor"
	"github.com/vedantwpatil/shake-to-enlarge/internal/hotkey"
	"github.com/vedantwpatil/shake-to-enlarge/internal/overlay"
	"github.com/vedantwpatil/shake-to-enlarge/internal/tracking"
)

// Keys shared by command-line flags and SHAKE_* environment variables.
const (
	KeyPreset    = "preset"
	KeyInterval  = "interval"
	KeyDistance  = "distance"
	KeyEdges     = "edges"
	KeyPolicy    = "policy"
	KeyWidth     = "width"
	KeyHeight    = "height"
	KeyDelay     = "delay"
	KeyKinds     = "kinds"
	KeyFilter    = "filter"
	KeyOnError   = "on-error"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyTray      = "tray"
	KeyHotkey    = "hotkey"
	KeyDryRun    = "dry-run"
)

const (
	EnvPrefix     = "SHAKE"
	DefaultPreset = "refined"

	maxCursorSize = 1024
)

type Config struct {
	Preset    string
	Detection DetectionConfig
	Overlay   OverlayConfig
	Logging   LoggingConfig
	Tray      TrayConfig
	// DryRun swaps the system cursor registry for an in-memory one.
	DryRun bool
}

type DetectionConfig struct {
	Interval time.Duration
	Distance int
	Edges    int
	Policy   string
}

type OverlayConfig struct {
	Width   int
	Height  int
	Delay   time.Duration
	Kinds   []string
	Filter  string
	OnError string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type TrayConfig struct {
	Enabled bool
	Tooltip string
	// Hotkey is the exit combination; empty disables it.
	Hotkey string
}

var presets = map[string]func() *Config{
	"classic": func() *Config {
		cfg := base()
		cfg.Preset = "classic"
		cfg.Detection.Distance = 100
		cfg.Detection.Edges = 5
		cfg.Detection.Policy = string(tracking.PolicyLegacy)
		cfg.Overlay.Delay = 1000 * time.Millisecond
		cfg.Overlay.Kinds = []string{"arrow", "ibeam"}
		return cfg
	},
	"refined": func() *Config {
		cfg := base()
		cfg.Preset = "refined"
		cfg.Detection.Distance = 75
		cfg.Detection.Edges = 3
		cfg.Detection.Policy = string(tracking.PolicyReversal)
		cfg.Overlay.Delay = 1500 * time.Millisecond
		cfg.Overlay.Kinds = []string{"arrow", "ibeam", "up", "cross", "hand", "wait"}
		return cfg
	},
}

func base() *Config {
	return &Config{
		Detection: DetectionConfig{
			Interval: 50 * time.Millisecond,
		},
		Overlay: OverlayConfig{
			Width:   256,
			Height:  256,
			Filter:  "nearest",
			OnError: string(overlay.Abort),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Tray: TrayConfig{
			Enabled: true,
			Tooltip: "ShakeToEnlarge",
			Hotkey:  hotkey.DefaultCombo,
		},
	}
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return presets[DefaultPreset]()
}

// Preset returns a fresh copy of the named parameter set.
func Preset(name string) (*Config, error) {
	build, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return build(), nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewViper returns a viper instance reading SHAKE_* environment variables,
// e.g. SHAKE_DISTANCE or SHAKE_ON_ERROR.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load starts from the selected preset and applies every key explicitly set in
// v, then validates the result.
func Load(v *viper.Viper) (*Config, error) {
	name := DefaultPreset
	if v.IsSet(KeyPreset) {
		name = v.GetString(KeyPreset)
	}
	cfg, err := Preset(name)
	if err != nil {
		return nil, err
	}

	if v.IsSet(KeyInterval) {
		cfg.Detection.Interval = v.GetDuration(KeyInterval)
	}
	if v.IsSet(KeyDistance) {
		cfg.Detection.Distance = v.GetInt(KeyDistance)
	}
	if v.IsSet(KeyEdges) {
		cfg.Detection.Edges = v.GetInt(KeyEdges)
	}
	if v.IsSet(KeyPolicy) {
		cfg.Detection.Policy = v.GetString(KeyPolicy)
	}
	if v.IsSet(KeyWidth) {
		cfg.Overlay.Width = v.GetInt(KeyWidth)
	}
	if v.IsSet(KeyHeight) {
		cfg.Overlay.Height = v.GetInt(KeyHeight)
	}
	if v.IsSet(KeyDelay) {
		cfg.Overlay.Delay = v.GetDuration(KeyDelay)
	}
	if v.IsSet(KeyKinds) {
		cfg.Overlay.Kinds = splitList(v.GetStringSlice(KeyKinds))
	}
	if v.IsSet(KeyFilter) {
		cfg.Overlay.Filter = v.GetString(KeyFilter)
	}
	if v.IsSet(KeyOnError) {
		cfg.Overlay.OnError = v.GetString(KeyOnError)
	}
	if v.IsSet(KeyLogLevel) {
		cfg.Logging.Level = v.GetString(KeyLogLevel)
	}
	if v.IsSet(KeyLogFormat) {
		cfg.Logging.Format = v.GetString(KeyLogFormat)
	}
	if v.IsSet(KeyTray) {
		cfg.Tray.Enabled = v.GetBool(KeyTray)
	}
	if v.IsSet(KeyHotkey) {
		cfg.Tray.Hotkey = v.GetString(KeyHotkey)
	}
	if v.IsSet(KeyDryRun) {
		cfg.DryRun = v.GetBool(KeyDryRun)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList accepts both repeated values and comma-separated ones.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Detection.Interval <= 0 {
		errs = append(errs, errors.New("interval must be positive"))
	}
	if c.Detection.Distance < 0 {
		errs = append(errs, errors.New("distance must not be negative"))
	}
	if c.Detection.Edges < 1 {
		errs = append(errs, errors.New("edges must be at least 1"))
	}
	if _, err := tracking.ParsePolicy(c.Detection.Policy); err != nil {
		errs = append(errs, err)
	}

	if c.Overlay.Width <= 0 || c.Overlay.Height <= 0 || c.Overlay.Width > maxCursorSize || c.Overlay.Height > maxCursorSize {
		errs = append(errs, fmt.Errorf("cursor size %dx%d out of range (1..%d)", c.Overlay.Width, c.Overlay.Height, maxCursorSize))
	}
	if c.Overlay.Delay <= 0 {
		errs = append(errs, errors.New("delay must be positive"))
	}
	if len(c.Overlay.Kinds) == 0 {
		errs = append(errs, errors.New("at least one cursor kind is required"))
	} else if _, err := cursor.ParseKinds(c.Overlay.Kinds); err != nil {
		errs = append(errs, err)
	}
	if _, err := cursor.ParseFilter(c.Overlay.Filter); err != nil {
		errs = append(errs, err)
	}
	if _, err := overlay.ParseFailurePolicy(c.Overlay.OnError); err != nil {
		errs = append(errs, err)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil || c.Logging.Level == "" {
		errs = append(errs, fmt.Errorf("unsupported log level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unsupported log format %q", c.Logging.Format))
	}

	if c.Tray.Hotkey != "" {
		if _, err := hotkey.ParseCombo(c.Tray.Hotkey); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Thresholds returns the detector settings.
func (c *Config) Thresholds() tracking.Thresholds {
	return tracking.Thresholds{
		Distance: c.Detection.Distance,
		Edges:    c.Detection.Edges,
		Policy:   tracking.Policy(c.Detection.Policy),
	}
}

// OverlayOptions resolves the overlay settings into controller options.
func (c *Config) OverlayOptions(log zerolog.Logger) (overlay.Options, error) {
	kinds, err := cursor.ParseKinds(c.Overlay.Kinds)
	if err != nil {
		return overlay.Options{}, err
	}
	return overlay.Options{
		Kinds:   kinds,
		Width:   c.Overlay.Width,
		Height:  c.Overlay.Height,
		Delay:   c.Overlay.Delay,
		OnError: overlay.FailurePolicy(c.Overlay.OnError),
		Logger:  log,
	}, nil
}
