package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Logging LoggingConfig `yaml:"logging"`
	Listing ListingConfig `yaml:"listing"`
	Kafka   KafkaConfig   `yaml:"kafka"`
}

type ServerConfig struct {
	Addr                string   `yaml:"addr"`
	CORSOrigins         []string `yaml:"cors_origins"`
	ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
	// TimeoutSeconds bounds connect/ping and every single store round trip.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ListingConfig controls pagination defaults of GET /api/posts.
type ListingConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// KafkaConfig enables publishing of post lifecycle events.
// When Enabled is false the server runs without a broker.
type KafkaConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Brokers    string `yaml:"brokers"`
	Topic      string `yaml:"topic"`
	Partitions int    `yaml:"partitions"`
	// GroupID is the consumer group of the post activity consumer.
	GroupID string `yaml:"group_id"`
}

var config *AppConfig

// Default returns the configuration used when no config.yaml is present.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Addr:                ":5000",
			CORSOrigins:         []string{"*"},
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017/blog",
			Database:       "blog",
			TimeoutSeconds: 10,
		},
		Logging: LoggingConfig{Level: "info"},
		Listing: ListingConfig{DefaultLimit: 10, MaxLimit: 100},
		Kafka: KafkaConfig{
			Topic:      "blog.post.events",
			Partitions: 1,
			GroupID:    "blog-post-activity",
		},
	}
}

func InitApp() {
	c, err := Load(GetBasePath())
	if err != nil {
		panic(err)
	}
	config = &c
}

// Load reads .env and config.yaml from dir on top of Default and applies
// environment overrides. A missing config.yaml is not an error.
func Load(dir string) (AppConfig, error) {
	// load environment variables
	_ = godotenv.Load(filepath.Join(dir, ENV_FILE))

	c := Default()
	data, err := os.ReadFile(filepath.Join(dir, CONFIG_FILE))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return AppConfig{}, fmt.Errorf("parse %s: %w", CONFIG_FILE, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return AppConfig{}, err
	}

	applyEnv(&c)
	fillDefaults(&c)
	return c, nil
}

func applyEnv(c *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("MONGODB_DB"); v != "" {
		c.Mongo.Database = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("KAFKA_GROUP_ID"); v != "" {
		c.Kafka.GroupID = v
	}
	if v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); v != "" {
		c.Kafka.Brokers = v
		c.Kafka.Enabled = true
	}
}

// fillDefaults restores zero values a partial config.yaml may have left behind.
func fillDefaults(c *AppConfig) {
	d := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.ReadTimeoutSeconds <= 0 {
		c.Server.ReadTimeoutSeconds = d.Server.ReadTimeoutSeconds
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		c.Server.WriteTimeoutSeconds = d.Server.WriteTimeoutSeconds
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = d.Mongo.URI
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = d.Mongo.Database
	}
	if c.Mongo.TimeoutSeconds <= 0 {
		c.Mongo.TimeoutSeconds = d.Mongo.TimeoutSeconds
	}
	if c.Listing.DefaultLimit <= 0 {
		c.Listing.DefaultLimit = d.Listing.DefaultLimit
	}
	if c.Listing.MaxLimit <= 0 {
		c.Listing.MaxLimit = d.Listing.MaxLimit
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = d.Kafka.Topic
	}
	if c.Kafka.Partitions <= 0 {
		c.Kafka.Partitions = d.Kafka.Partitions
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = d.Kafka.GroupID
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd
}
