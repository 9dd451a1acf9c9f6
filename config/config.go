package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Tracking TrackingConfig `mapstructure:"tracking"`
	Gate     GateConfig     `mapstructure:"gate"`
	Storage  StorageConfig  `mapstructure:"storage"`
	DB       DBConfig       `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"gt=0,lte=65535"`
}

type TrackingConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"gt=0"`
}

type GateConfig struct {
	EntryPath string `mapstructure:"entry_path" validate:"required,startswith=/"`
}

// StorageConfig picks the backend for each store.
type StorageConfig struct {
	Directory    string `mapstructure:"directory" validate:"oneof=static postgres"`
	Visitors     string `mapstructure:"visitors" validate:"oneof=memory redis"`
	Trail        string `mapstructure:"trail" validate:"oneof=memory mongo"`
	PublishRedis bool   `mapstructure:"publish_redis"`
}

type DBConfig struct {
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// DSN returns the URL form golang-migrate and lib/pq both accept.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("tracking.interval", "3s")
	v.SetDefault("gate.entry_path", "/enter")
	v.SetDefault("storage.directory", "static")
	v.SetDefault("storage.visitors", "memory")
	v.SetDefault("storage.trail", "memory")
	v.SetDefault("storage.publish_redis", false)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.dbname", "tracker")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.migrations_path", "file://database/migrations")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "tracking")
}

// Load reads config.yaml from path (a file or a directory), applies defaults
// and environment overrides such as SERVER_PORT or DB_HOST, and validates the
// result. A missing file in a directory search is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		v.SetConfigFile(path)
	} else {
		if path == "" {
			path = "."
		}
		v.SetConfigName("config")
		v.AddConfigPath(path)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and backend-specific requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Storage.Directory == "postgres" && (c.DB.Host == "" || c.DB.DBName == "") {
		return errors.New("invalid config: postgres directory needs db.host and db.dbname")
	}
	if (c.Storage.Visitors == "redis" || c.Storage.PublishRedis) && c.Redis.Addr == "" {
		return errors.New("invalid config: redis backends need redis.addr")
	}
	if c.Storage.Trail == "mongo" && c.Mongo.URI == "" {
		return errors.New("invalid config: mongo trail needs mongo.uri")
	}
	return nil
}
