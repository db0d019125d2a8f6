package config

import (
	"fmt"
	"os"
	"strconv"

	"benritz/ytm/internal/logging"
	"benritz/ytm/internal/types"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ENV_LOG_LEVEL      = "YTM_LOG_LEVEL"
	ENV_AWS_PROFILE    = "YTM_AWS_PROFILE"
	ENV_TOLERANCE      = "YTM_TOLERANCE"
	ENV_MAX_ITERATIONS = "YTM_MAX_ITERATIONS"
)

type Config struct {
	Solver types.SolverConfig `yaml:"solver"`
	Bond   struct {
		PeriodsPerYear int `yaml:"periods_per_year" default:"2" validate:"gte=1"`
	} `yaml:"bond"`
	Log logging.Config `yaml:"log"`
	AWS struct {
		Profile string `yaml:"profile" default:"default"`
		Region  string `yaml:"region"`
	} `yaml:"aws"`
}

// Load reads an optional YAML file, applies defaults then environment overrides.
// A .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(ENV_LOG_LEVEL); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv(ENV_AWS_PROFILE); v != "" {
		cfg.AWS.Profile = v
	}

	if v := os.Getenv(ENV_TOLERANCE); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", ENV_TOLERANCE, err)
		}
		cfg.Solver.Tolerance = t
	}

	if v := os.Getenv(ENV_MAX_ITERATIONS); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", ENV_MAX_ITERATIONS, err)
		}
		cfg.Solver.MaxIterations = i
	}

	return nil
}
