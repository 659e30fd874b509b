// Package config loads the linebalance TOML configuration.
//
// The file has one table per concern:
//
//	[solver]
//	seed = 1
//	iterations = 100
//	workers = 1
//
//	[cache]
//	backend = "file"        # file, redis or none
//	dir = ""                # defaults to $XDG_CACHE_HOME/linebalance
//	redis_addr = "localhost:6379"
//
//	[store]
//	backend = "none"        # none, memory or mongo
//	mongo_uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//
// Missing keys keep their defaults from [Default]. Unknown keys are an error
// so that typos do not silently fall back to defaults.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/linebalance/pkg/errors"
	"github.com/matzehuels/linebalance/pkg/pipeline"
)

// EnvPath overrides the default config file location.
const EnvPath = "LINEBALANCE_CONFIG"

const appName = "linebalance"

// Config is the complete configuration.
type Config struct {
	Solver SolverConfig `toml:"solver"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// SolverConfig holds the default pipeline options.
type SolverConfig struct {
	Seed       uint64 `toml:"seed" validate:"gte=1"`
	Iterations int    `toml:"iterations" validate:"gte=1"`
	Workers    int    `toml:"workers" validate:"gte=1,lte=1024"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend" validate:"oneof=file redis none"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db" validate:"gte=0"`
	Prefix        string `toml:"prefix"`
}

// StoreConfig selects the run archive backend.
type StoreConfig struct {
	Backend    string `toml:"backend" validate:"oneof=none memory mongo"`
	MongoURI   string `toml:"mongo_uri" validate:"required_if=Backend mongo"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `toml:"addr" validate:"required,hostname_port"`
	ReadTimeout  time.Duration `toml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `toml:"write_timeout" validate:"gt=0"`
	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `toml:"max_body_bytes" validate:"gt=0"`
	// MaxIterations caps the iterations a request may ask for.
	MaxIterations int `toml:"max_iterations" validate:"gte=1"`
	// MaxTasks caps the task count of submitted instances. It is checked
	// before the n×n matrices are allocated.
	MaxTasks int `toml:"max_tasks" validate:"gte=1"`
	// Jobs bounds concurrently running solves.
	Jobs int `toml:"jobs" validate:"gte=1"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			Seed:       pipeline.DefaultSeed,
			Iterations: pipeline.DefaultIterations,
			Workers:    pipeline.DefaultWorkers,
		},
		Cache: CacheConfig{Backend: "file"},
		Store: StoreConfig{Backend: "none"},
		Server: ServerConfig{
			Addr:          ":8080",
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  5 * time.Minute,
			MaxBodyBytes:  8 << 20,
			MaxIterations: 100_000,
			MaxTasks:      2_000,
			Jobs:          4,
		},
	}
}

// Load reads the config file at path on top of [Default]. An empty path
// uses [DefaultPath] and tolerates a missing file; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, cfg.Validate()
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML text on top of [Default].
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %s", undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field constraint and reports the first violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errors.New(errors.ErrCodeInvalidConfig, "%s: failed %q constraint (value %v)",
			strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config.")), fe.Tag(), fe.Value())
	}
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
}

// Options converts the solver table to pipeline options.
func (s SolverConfig) Options() pipeline.Options {
	return pipeline.Options{Seed: s.Seed, Iterations: s.Iterations, Workers: s.Workers}
}

// DefaultPath returns $LINEBALANCE_CONFIG or the XDG location
// ~/.config/linebalance/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the configured cache directory or the XDG default
// ~/.cache/linebalance.
func (c CacheConfig) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
