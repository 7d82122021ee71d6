// Package config loads settings from an optional YAML file and BLOGLIST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Storage drivers accepted in storage.driver.
const (
	DriverBadger = "badger"
	DriverMongo  = "mongo"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
	Storage StorageConfig `yaml:"storage"`
	Posts   PostsConfig   `yaml:"posts"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AuthConfig holds the token secret and password hashing cost.
type AuthConfig struct {
	Secret string `yaml:"secret"`
	// TokenTTL of 0 issues tokens without expiry.
	TokenTTL   time.Duration `yaml:"token_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

// StorageConfig selects the backend and carries the settings of each.
type StorageConfig struct {
	Driver string       `yaml:"driver"`
	Badger BadgerConfig `yaml:"badger"`
	Mongo  MongoConfig  `yaml:"mongo"`
}

// BadgerConfig locates the embedded database. An empty Path keeps it in memory.
type BadgerConfig struct {
	Path      string `yaml:"path"`
	BackupDir string `yaml:"backup_dir"`
}

// MongoConfig points at a MongoDB server.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// PostsConfig toggles post behaviour.
type PostsConfig struct {
	OwnerOnlyUpdate bool `yaml:"owner_only_update"`
}

// LogConfig sets the logrus level and formatter ("text" or "json").
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":3003", ShutdownTimeout: 10 * time.Second},
		Storage: StorageConfig{
			Driver: DriverBadger,
			Badger: BadgerConfig{Path: "data/badger", BackupDir: "data/backups"},
			Mongo:  MongoConfig{URI: "mongodb://localhost:27017", Database: "bloglist"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults, when path is not empty, and then applies
// environment overrides. The result is not validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	c.Server.Addr = envString("BLOGLIST_ADDR", c.Server.Addr)
	c.Auth.Secret = envString("SECRET", c.Auth.Secret)
	c.Auth.Secret = envString("BLOGLIST_SECRET", c.Auth.Secret)
	c.Storage.Driver = envString("BLOGLIST_STORAGE", c.Storage.Driver)
	c.Storage.Badger.Path = envString("BLOGLIST_BADGER_PATH", c.Storage.Badger.Path)
	c.Storage.Mongo.URI = envString("BLOGLIST_MONGO_URI", c.Storage.Mongo.URI)
	c.Storage.Mongo.Database = envString("BLOGLIST_MONGO_DB", c.Storage.Mongo.Database)
	c.Log.Level = envString("BLOGLIST_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envString("BLOGLIST_LOG_FORMAT", c.Log.Format)

	var err error
	if c.Auth.TokenTTL, err = envDuration("BLOGLIST_TOKEN_TTL", c.Auth.TokenTTL); err != nil {
		return err
	}
	if c.Posts.OwnerOnlyUpdate, err = envBool("BLOGLIST_OWNER_ONLY_UPDATE", c.Posts.OwnerOnlyUpdate); err != nil {
		return err
	}
	return nil
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	if c.Auth.Secret == "" {
		return errors.New("auth secret is not set (BLOGLIST_SECRET)")
	}
	switch c.Storage.Driver {
	case DriverBadger, DriverMongo:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Auth.TokenTTL < 0 {
		return errors.New("token ttl must not be negative")
	}
	return nil
}

// NewLogger builds the logger described by the log section.
func (c Config) NewLogger() (*logrus.Logger, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	switch c.Log.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return log, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
