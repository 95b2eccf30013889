// Package config loads the YAML properties file that describes a
// relgraph deployment's database connection, dialect, and migration
// settings.
package config

// Config is the full properties file shape.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Migration MigrationConfig `mapstructure:"migration" yaml:"migration"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Dev       bool            `mapstructure:"dev" yaml:"dev"`
}

// LogConfig describes the slog handler the CLI builds its logx.Logger from.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug | info | warn | error
	Format string `mapstructure:"format" yaml:"format"` // json | text
	Stats  bool   `mapstructure:"stats" yaml:"stats"`   // wrap the driver with query statistics collection
}

// DatabaseConfig describes the pooled data source a Driver is opened
// against.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" yaml:"driver"` // postgres | mysql | h2 | default
	DSN             string `mapstructure:"dsn" yaml:"dsn"`
	MaxOpenConns    int    `mapstructure:"max-open-conns" yaml:"max-open-conns"`
	MaxIdleConns    int    `mapstructure:"max-idle-conns" yaml:"max-idle-conns"`
	ConnMaxLifetime string `mapstructure:"conn-max-lifetime" yaml:"conn-max-lifetime"`
}

// MigrationConfig describes how schema migrations are applied.
type MigrationConfig struct {
	Dir        string `mapstructure:"dir" yaml:"dir"`
	CreateDrop bool   `mapstructure:"create-drop" yaml:"create-drop"`
}

// DefaultConfig returns a Config with the engine's baseline defaults,
// overridden by whatever the properties file and environment supply.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          "default",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: "30m",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
