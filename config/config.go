// Package config loads run configuration for the solver binaries.
//
// Configuration is layered: built-in defaults, then an optional config file
// (any format viper understands, selected by extension), then environment
// variables with the VOLTROUTE_ prefix (dots become underscores, e.g.
// VOLTROUTE_SERVER_ADDR). The merged result is validated before use.
//
// The algorithm packages never read configuration themselves; binaries
// translate a validated Config into ga.Options via SolverOptions.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/voltroute/voltroute/fitness"
	"github.com/voltroute/voltroute/ga"
)

// Config is the top-level configuration of the voltroute binaries.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Solver SolverConfig `mapstructure:"solver"`
}

// ServerConfig holds the HTTP listener parameters of cmd/api.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"          validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// SolveTimeout bounds a single solve request end to end.
	SolveTimeout time.Duration `mapstructure:"solve_timeout"`
}

// LogConfig selects log level, format and optional rotating file output.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`

	// File enables rotating file output when non-empty; stderr otherwise.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"  validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups"  validate:"min=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=0"`
}

// SolverConfig mirrors ga.Options plus the energy model in file-friendly form.
type SolverConfig struct {
	Population     int     `mapstructure:"population"      validate:"min=1"`
	Generations    int     `mapstructure:"generations"     validate:"min=1"`
	EliteSize      int     `mapstructure:"elite_size"      validate:"min=0"`
	TournamentSize int     `mapstructure:"tournament_size" validate:"min=1"`
	CrossoverRate  float64 `mapstructure:"crossover_rate"  validate:"min=0,max=1"`
	MutationRate   float64 `mapstructure:"mutation_rate"   validate:"min=0,max=1"`
	Beta           float64 `mapstructure:"beta"            validate:"min=0"`
	Seed           int64   `mapstructure:"seed"`
	Workers        int     `mapstructure:"workers"`

	// BatteryCapacity 0 defers to the instance's ENERGY_CAPACITY header.
	BatteryCapacity float64 `mapstructure:"battery_capacity" validate:"min=0"`
	ConsumptionRate float64 `mapstructure:"consumption_rate" validate:"gt=0"`
	ChargingRate    float64 `mapstructure:"charging_rate"    validate:"min=0"`
	DistanceWeight  float64 `mapstructure:"distance_weight"  validate:"min=0"`
	ChargingWeight  float64 `mapstructure:"charging_weight"  validate:"min=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	var opts ga.Options
	opts = ga.DefaultOptions()

	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			SolveTimeout: 60 * time.Second,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Solver: SolverConfig{
			Population:      opts.PopulationSize,
			Generations:     opts.Generations,
			EliteSize:       opts.EliteSize,
			TournamentSize:  opts.TournamentSize,
			CrossoverRate:   opts.CrossoverRate,
			MutationRate:    opts.MutationRate,
			Beta:            opts.Beta,
			BatteryCapacity: opts.Fitness.BatteryCapacity,
			ConsumptionRate: opts.Fitness.ConsumptionRate,
			ChargingRate:    opts.Fitness.ChargingRate,
			DistanceWeight:  opts.Fitness.DistanceWeight,
			ChargingWeight:  opts.Fitness.ChargingWeight,
		},
	}
}

// Load merges defaults, the optional config file at path (skipped when path
// is empty) and VOLTROUTE_ environment variables, then validates the result.
func Load(path string) (Config, error) {
	var cfg Config
	cfg = Default()

	v := viper.New()
	v.SetEnvPrefix("VOLTROUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: validation: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key with viper so AutomaticEnv can override
// fields that never appear in a config file.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.solve_timeout", cfg.Server.SolveTimeout)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", cfg.Log.MaxBackups)
	v.SetDefault("log.max_age_days", cfg.Log.MaxAgeDays)

	v.SetDefault("solver.population", cfg.Solver.Population)
	v.SetDefault("solver.generations", cfg.Solver.Generations)
	v.SetDefault("solver.elite_size", cfg.Solver.EliteSize)
	v.SetDefault("solver.tournament_size", cfg.Solver.TournamentSize)
	v.SetDefault("solver.crossover_rate", cfg.Solver.CrossoverRate)
	v.SetDefault("solver.mutation_rate", cfg.Solver.MutationRate)
	v.SetDefault("solver.beta", cfg.Solver.Beta)
	v.SetDefault("solver.seed", cfg.Solver.Seed)
	v.SetDefault("solver.workers", cfg.Solver.Workers)
	v.SetDefault("solver.battery_capacity", cfg.Solver.BatteryCapacity)
	v.SetDefault("solver.consumption_rate", cfg.Solver.ConsumptionRate)
	v.SetDefault("solver.charging_rate", cfg.Solver.ChargingRate)
	v.SetDefault("solver.distance_weight", cfg.Solver.DistanceWeight)
	v.SetDefault("solver.charging_weight", cfg.Solver.ChargingWeight)
}

// SolverOptions translates the solver section into driver options.
func (c Config) SolverOptions() ga.Options {
	return ga.Options{
		PopulationSize: c.Solver.Population,
		Generations:    c.Solver.Generations,
		EliteSize:      c.Solver.EliteSize,
		TournamentSize: c.Solver.TournamentSize,
		CrossoverRate:  c.Solver.CrossoverRate,
		MutationRate:   c.Solver.MutationRate,
		Beta:           c.Solver.Beta,
		Seed:           c.Solver.Seed,
		Workers:        c.Solver.Workers,
		Fitness: fitness.Params{
			BatteryCapacity: c.Solver.BatteryCapacity,
			ConsumptionRate: c.Solver.ConsumptionRate,
			ChargingRate:    c.Solver.ChargingRate,
			DistanceWeight:  c.Solver.DistanceWeight,
			ChargingWeight:  c.Solver.ChargingWeight,
		},
	}
}

// SlogLevel maps the configured level string onto slog's leveler.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
