package config

import (
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned for values that cannot drive a sweep.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the defaults of an evaluation run. Command-line flags
// override every field.
type Config struct {
	Probs      []float64
	Trials     int
	Seed       int64
	Workers    int
	Confidence float64
	Out        string // report base path; empty prints to stdout only
}

// Default returns the built-in defaults: p = 0.1..0.5, 10000 trials per point.
func Default() *Config {
	return &Config{
		Probs:      []float64{0.1, 0.2, 0.3, 0.4, 0.5},
		Trials:     10000,
		Seed:       42,
		Workers:    0,
		Confidence: 0.95,
	}
}

// Load reads HAMMING_* settings from the environment, falling back to the
// given dotenv files (default ".env"). A missing default file is not an
// error; a missing explicit file is.
func Load(files ...string) (*Config, error) {
	fileVals := map[string]string{}
	if len(files) == 0 {
		vals, err := godotenv.Read()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, "failed to read .env")
		}
		if vals != nil {
			fileVals = vals
		}
	} else {
		vals, err := godotenv.Read(files...)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", strings.Join(files, ","))
		}
		fileVals = vals
	}
	env := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}

	cfg := Default()
	var err error
	if v, ok := env("HAMMING_PROBS"); ok {
		if cfg.Probs, err = ParseProbs(v); err != nil {
			return nil, errors.Wrap(err, "HAMMING_PROBS")
		}
	}
	if cfg.Trials, err = getEnvIntOrDefault(env, "HAMMING_TRIALS", cfg.Trials); err != nil {
		return nil, err
	}
	if cfg.Seed, err = getEnvInt64OrDefault(env, "HAMMING_SEED", cfg.Seed); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvIntOrDefault(env, "HAMMING_WORKERS", cfg.Workers); err != nil {
		return nil, err
	}
	if cfg.Confidence, err = getEnvFloatOrDefault(env, "HAMMING_CONFIDENCE", cfg.Confidence); err != nil {
		return nil, err
	}
	cfg.Out = getEnvOrDefault(env, "HAMMING_OUT", cfg.Out)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks ranges.
func (c *Config) Validate() error {
	if len(c.Probs) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no flip probabilities")
	}
	for _, p := range c.Probs {
		if p < 0 || p > 1 {
			return errors.Wrapf(ErrInvalidConfig, "flip probability %v outside [0,1]", p)
		}
	}
	if c.Trials <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "trials must be positive, got %d", c.Trials)
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "workers must not be negative, got %d", c.Workers)
	}
	if c.Confidence <= 0 || c.Confidence >= 1 {
		return errors.Wrapf(ErrInvalidConfig, "confidence %v outside (0,1)", c.Confidence)
	}
	return nil
}

// ParseProbs parses a comma-separated list of probabilities.
func ParseProbs(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "bad probability %q", p)
		}
		if f < 0 || f > 1 {
			return nil, errors.Wrapf(ErrInvalidConfig, "probability %v outside [0,1]", f)
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "empty probability list")
	}
	return out, nil
}

type lookupFunc func(string) (string, bool)

func getEnvOrDefault(env lookupFunc, key, def string) string {
	if v, ok := env(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(env lookupFunc, key string, def int) (int, error) {
	v, ok := env(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidConfig, "%s=%q is not an integer", key, v)
	}
	return n, nil
}

func getEnvInt64OrDefault(env lookupFunc, key string, def int64) (int64, error) {
	v, ok := env(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidConfig, "%s=%q is not an integer", key, v)
	}
	return n, nil
}

func getEnvFloatOrDefault(env lookupFunc, key string, def float64) (float64, error) {
	v, ok := env(key)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidConfig, "%s=%q is not a number", key, v)
	}
	return f, nil
}
