package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/gjrich/cintel-04-local/internal/db"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Database db.Config
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// DatasetConfig selects and parameterizes the dataset provider.
type DatasetConfig struct {
	Source string // "file" or "postgres"
	Path   string // dataset file for the file source
}

// Default returns the configuration used when no file or env overrides
// are present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Dataset: DatasetConfig{
			Source: "file",
			Path:   "testdata/penguins.csv",
		},
		Database: db.DefaultConfig(),
	}
}

// Load reads config.yaml from configPath, applying env overrides with
// the PENGUIN prefix (PENGUIN_SERVER_ADDR, PENGUIN_DATABASE_HOST, ...).
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("PENGUIN")

	v.BindEnv("server.addr")
	v.BindEnv("dataset.source")
	v.BindEnv("dataset.path")
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Just log it, use defaults + env
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("server.addr") {
		cfg.Server.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("dataset.source") {
		cfg.Dataset.Source = v.GetString("dataset.source")
	}
	if v.IsSet("dataset.path") {
		cfg.Dataset.Path = v.GetString("dataset.path")
	}
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}

	return cfg, nil
}
