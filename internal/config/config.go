package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends understood by the server.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds every setting of the server.  Values are layered:
// defaults, then an optional YAML file, then environment variables, and
// finally command line flags bound by the cmd package.
type Config struct {
	Env             string        `yaml:"env,omitempty"`
	HTTPAddr        string        `yaml:"httpAddr,omitempty"`
	GRPCAddr        string        `yaml:"grpcAddr,omitempty"`
	MCPAddr         string        `yaml:"mcpAddr,omitempty"`
	APIPrefix       string        `yaml:"apiPrefix,omitempty"`
	AllowedOrigins  []string      `yaml:"allowedOrigins,omitempty"`
	Storage         string        `yaml:"storage,omitempty"`
	Seed            bool          `yaml:"seed"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty"`
	Redis           RedisConfig   `yaml:"redis,omitempty"`
	TLS             TLSConfig     `yaml:"tls,omitempty"`
}

// RedisConfig configures the Redis storage backend.
type RedisConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Key      string `yaml:"key,omitempty"`
	TLS      bool   `yaml:"tls,omitempty"`
}

// TLSConfig configures mutual TLS for the gRPC listener.
type TLSConfig struct {
	MTLS     bool   `yaml:"mtls,omitempty"`
	CertFile string `yaml:"cert,omitempty"`
	KeyFile  string `yaml:"key,omitempty"`
	CAFile   string `yaml:"ca,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Env:      "Production",
		HTTPAddr: "0.0.0.0:8080",
		GRPCAddr: "0.0.0.0:9090",
		AllowedOrigins: []string{
			"http://localhost:4200",
			"https://localhost:4200",
		},
		Storage:         StorageMemory,
		Seed:            true,
		ShutdownTimeout: 5 * time.Second,
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
			Key:  "users",
		},
	}
}

// FileNames lists the config files looked up by Load, in order.
var FileNames = []string{"userdir.yml", "userdir.yaml"}

// Load builds a Config from defaults, the first config file found in dir
// and the process environment.  A missing config file is not an error.
func Load(dir string) (Config, error) {
	cfg := Default()
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
		break
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads one explicit config file on top of the defaults and
// the environment.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.Env, "APP_ENV")
	setString(&c.HTTPAddr, "HTTP_ADDR")
	setString(&c.GRPCAddr, "GRPC_ADDR")
	setString(&c.MCPAddr, "MCP_ADDR")
	setString(&c.APIPrefix, "API_PREFIX")
	setString(&c.Storage, "STORAGE")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Redis.Key, "REDIS_KEY")
	if v := getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = strings.Split(v, ",")
	}
	var errs []error
	if v := getenv("REDIS_TLS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("REDIS_TLS: %w", err))
		}
		c.Redis.TLS = b
	}
	if v := getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
		}
		c.ShutdownTimeout = d
	}
	return errors.Join(errs...)
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.Storage {
	case StorageMemory, StorageRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage))
	}
	if c.HTTPAddr == "" && c.GRPCAddr == "" && c.MCPAddr == "" {
		errs = append(errs, errors.New("at least one listen address is required"))
	}
	if c.APIPrefix != "" && (!strings.HasPrefix(c.APIPrefix, "/") || strings.HasSuffix(c.APIPrefix, "/")) {
		errs = append(errs, fmt.Errorf("api prefix %q must start with / and not end with /", c.APIPrefix))
	}
	if c.TLS.MTLS && (c.TLS.CertFile == "" || c.TLS.KeyFile == "" || c.TLS.CAFile == "") {
		errs = append(errs, errors.New("mtls mode requires --cert, --key, and --ca"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout))
	}
	if c.Storage == StorageRedis && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis storage requires a redis address"))
	}
	return errors.Join(errs...)
}
