package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Retrain  RetrainConfig  `mapstructure:"retrain" validate:"required"`
	Plan     PlanConfig     `mapstructure:"plan" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// RetrainConfig controls the periodic interval-model retraining job.
type RetrainConfig struct {
	// Enabled turns the background retrain job on. With it off the engine
	// runs on the deterministic estimator alone.
	Enabled bool `mapstructure:"enabled"`

	// IntervalMinutes is how often the trainer re-fits the interval model.
	IntervalMinutes int `mapstructure:"interval_minutes" validate:"required,gt=0"`
}

// PlanConfig controls study plan generation.
type PlanConfig struct {
	// TimeoutSeconds bounds a single plan generation; on expiry the
	// fallback plan is returned instead of an error.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}
