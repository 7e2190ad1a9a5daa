package trajectory

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/Genius6942/pathgen/waypoint"
	"github.com/npillmayer/schuko"
)

// Algorithm names a trajectory generator.
type Algorithm string

// Known generators.
const (
	CatmullRom         Algorithm = "catmull-rom"
	CubicSpline        Algorithm = "cubic-spline"
	CatmullRomProfiled Algorithm = "catmull-rom-profiled"
)

// Algorithms lists all known generators.
var Algorithms = []Algorithm{CubicSpline, CatmullRom, CatmullRomProfiled}

var (
	// ErrUnknownAlgorithm indicates a configuration naming no known generator.
	ErrUnknownAlgorithm = errors.New("unknown path algorithm")
	// ErrSetting indicates a configuration value which is not a number.
	ErrSetting = errors.New("invalid setting")
)

// Defaults for robot and path settings.
const (
	DefaultMaxVelocity     = 24.0
	DefaultMaxAcceleration = 12.0
	DefaultDistanceBetween = 1.0
	DefaultCurvatureFactor = 3.0
	DefaultBackground      = "over-under"
)

// MinDistanceBetween is the smallest sampling step. Finer steps are raised to
// it, keeping the number of samples per field unit bounded.
const MinDistanceBetween = 0.05

// Config holds generator settings together with the project settings an
// editor keeps alongside. Background, Autosave and Flags are passed through
// unchanged.
type Config struct {
	Algorithm       Algorithm                    `json:"algorithm"`
	MaxVelocity     float64                      `json:"maxVelocity,omitempty"`
	MaxAcceleration float64                      `json:"maxAcceleration,omitempty"`
	DistanceBetween float64                      `json:"distanceBetween,omitempty"`
	CurvatureFactor float64                      `json:"k,omitempty"`
	SmoothJoints    bool                         `json:"smoothJoints,omitempty"`
	Background      string                       `json:"background"`
	Autosave        bool                         `json:"autosave"`
	Flags           map[string]waypoint.FlagKind `json:"flags"`
}

// DefaultConfig returns a configuration with default settings.
func DefaultConfig() Config {
	return Config{
		Algorithm:       CubicSpline,
		MaxVelocity:     DefaultMaxVelocity,
		MaxAcceleration: DefaultMaxAcceleration,
		DistanceBetween: DefaultDistanceBetween,
		CurvatureFactor: DefaultCurvatureFactor,
		Background:      DefaultBackground,
		Flags:           map[string]waypoint.FlagKind{},
	}
}

// Normalized returns a copy of cfg with defaults in place of missing,
// non-positive or non-finite settings. The sampling step is at least
// MinDistanceBetween. An unknown algorithm is left for the
// generator lookup to report.
func (cfg Config) Normalized() Config {
	if cfg.Algorithm == "" {
		cfg.Algorithm = CubicSpline
	}
	cfg.MaxVelocity = positive(cfg.MaxVelocity, DefaultMaxVelocity)
	cfg.MaxAcceleration = positive(cfg.MaxAcceleration, DefaultMaxAcceleration)
	cfg.DistanceBetween = math.Max(positive(cfg.DistanceBetween, DefaultDistanceBetween), MinDistanceBetween)
	cfg.CurvatureFactor = positive(cfg.CurvatureFactor, DefaultCurvatureFactor)
	if cfg.Flags == nil {
		cfg.Flags = map[string]waypoint.FlagKind{}
	}
	return cfg
}

func positive(x, deflt float64) float64 {
	if !(x > 0) || math.IsInf(x, 0) {
		return deflt
	}
	return x
}

// Valid checks if cfg names a known algorithm.
func (cfg Config) Valid() error {
	for _, a := range Algorithms {
		if cfg.Algorithm == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.Algorithm)
}

// Configuration keys recognized by ApplySettings.
const (
	KeyMaxVelocity     = "bot.maxvelocity"
	KeyMaxAcceleration = "bot.maxacceleration"
	KeyDistanceBetween = "path.distancebetween"
	KeyCurvatureFactor = "path.k"
	KeyAlgorithm       = "path.algorithm"
	KeySmoothJoints    = "path.smoothjoints"
)

// ApplySettings overlays cfg with the settings found in conf. Keys not set in
// conf leave cfg untouched. Numbers are read as strings, as configuration
// files do not distinguish integers from decimals.
func ApplySettings(cfg Config, conf schuko.Configuration) (Config, error) {
	if conf == nil {
		return cfg, nil
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{KeyMaxVelocity, &cfg.MaxVelocity},
		{KeyMaxAcceleration, &cfg.MaxAcceleration},
		{KeyDistanceBetween, &cfg.DistanceBetween},
		{KeyCurvatureFactor, &cfg.CurvatureFactor},
	}
	for _, f := range floats {
		if !conf.IsSet(f.key) {
			continue
		}
		x, err := strconv.ParseFloat(conf.GetString(f.key), 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s = %q", ErrSetting, f.key, conf.GetString(f.key))
		}
		*f.dst = x
	}
	if conf.IsSet(KeyAlgorithm) {
		cfg.Algorithm = Algorithm(conf.GetString(KeyAlgorithm))
		if err := cfg.Valid(); err != nil {
			return cfg, err
		}
	}
	if conf.IsSet(KeySmoothJoints) {
		cfg.SmoothJoints = conf.GetBool(KeySmoothJoints)
	}
	tracer().Debugf("settings: %s, v = %g, a = %g, d = %g, k = %g", cfg.Algorithm,
		cfg.MaxVelocity, cfg.MaxAcceleration, cfg.DistanceBetween, cfg.CurvatureFactor)
	return cfg, nil
}
