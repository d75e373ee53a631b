// Package meta holds the self-play configuration shared by search, training and evaluation.
package meta

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Capacity      int     `yaml:"capacity"`       // Replay buffer size
	NumExplores   int     `yaml:"num_explores"`   // Simulations per move
	Temperature   float64 `yaml:"temperature"`    // Visit count exponent 1/T for policy targets
	SampleAction  bool    `yaml:"sample_action"`  // Sample moves from the policy target instead of playing the most visited
	Steps         int     `yaml:"steps"`          // Replay entries to gather per batch
	Alpha         float64 `yaml:"alpha"`          // Dirichlet concentration
	NoisyExplore  bool    `yaml:"noisy_explore"`  // Mix Dirichlet noise into root priors
	CPuct         float64 `yaml:"c_puct"`         // Exploration constant
	NoiseFraction float64 `yaml:"noise_fraction"` // Weight of the noise in the mix
	MaxPlies      int     `yaml:"max_plies"`      // Abort games longer than this, 0 for no limit
	Seed          uint64  `yaml:"seed"`
}

func Default() Config {
	return Config{
		Capacity:      100_000,
		NumExplores:   100,
		Temperature:   1.0,
		SampleAction:  true,
		Steps:         1_000,
		Alpha:         1.0,
		NoisyExplore:  true,
		CPuct:         4.0,
		NoiseFraction: 0.25,
		MaxPlies:      0,
		Seed:          1,
	}
}

// Load reads a YAML file on top of the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	err = decoder.Decode(&cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.NumExplores <= 0:
		return fmt.Errorf("%w: num_explores must be positive, got %d", ErrInvalidConfig, c.NumExplores)
	case c.Temperature <= 0:
		return fmt.Errorf("%w: temperature must be positive, got %g", ErrInvalidConfig, c.Temperature)
	case c.Steps <= 0:
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	case c.NoisyExplore && c.Alpha <= 0:
		return fmt.Errorf("%w: alpha must be positive, got %g", ErrInvalidConfig, c.Alpha)
	case c.CPuct <= 0:
		return fmt.Errorf("%w: c_puct must be positive, got %g", ErrInvalidConfig, c.CPuct)
	case c.NoiseFraction < 0 || c.NoiseFraction > 1:
		return fmt.Errorf("%w: noise_fraction must be within [0, 1], got %g", ErrInvalidConfig, c.NoiseFraction)
	case c.MaxPlies < 0:
		return fmt.Errorf("%w: max_plies cannot be negative, got %d", ErrInvalidConfig, c.MaxPlies)
	}
	return nil
}
