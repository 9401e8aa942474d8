// Package config 配置管理：yaml 文件 + BLOG_ 前缀环境变量覆盖
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix 环境变量前缀，BLOG_DATABASE_HOST => database.host
const EnvPrefix = "BLOG_"

var (
	Conf *AppConfig
	once sync.Once
)

// AppConfig 应用配置结构
type AppConfig struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Log       LogConfig       `koanf:"log"`
	CORS      CORSConfig      `koanf:"cors"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	Mode string `koanf:"mode"` // debug, release, test

	// 配置中以秒为单位，解析后换算到下面的 Duration
	ReadTimeoutSec     int `koanf:"read_timeout"`
	WriteTimeoutSec    int `koanf:"write_timeout"`
	ShutdownTimeoutSec int `koanf:"shutdown_timeout"`

	ReadTimeout     time.Duration `koanf:"-"`
	WriteTimeout    time.Duration `koanf:"-"`
	ShutdownTimeout time.Duration `koanf:"-"`
}

// Addr host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver       string `koanf:"driver"` // postgres, sqlite
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	SSLMode      bool   `koanf:"sslmode"`
	LogLevel     string `koanf:"log_level"` // 数据库日志级别
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
	Path         string `koanf:"path"`         // sqlite 文件
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, text
}

type CORSConfig struct {
	AllowOrigins []string `koanf:"allow_origins"`
}

type TelemetryConfig struct {
	Endpoint    string  `koanf:"endpoint"` // OTLP/HTTP，为空则关闭 tracing
	ServiceName string  `koanf:"service_name"`
	SampleRatio float64 `koanf:"sample_ratio"`
}

// Load 加载配置文件
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// 首先加载 .env 文件到环境变量
		if envErr := godotenv.Load(); envErr != nil {
			slog.Debug("no .env file loaded", "err", envErr)
		}

		Conf, err = parse(koanf.New("."), configPath)
	})

	return err
}

func parse(k *koanf.Koanf, configPath string) (*AppConfig, error) {
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// 加载环境变量（会覆盖配置文件）
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	conf := &AppConfig{}
	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	setDefaults(conf)

	// 转换时间单位
	conf.Server.ReadTimeout = time.Duration(conf.Server.ReadTimeoutSec) * time.Second
	conf.Server.WriteTimeout = time.Duration(conf.Server.WriteTimeoutSec) * time.Second
	conf.Server.ShutdownTimeout = time.Duration(conf.Server.ShutdownTimeoutSec) * time.Second

	return conf, nil
}

// envKey BLOG_DATABASE_MAX_OPEN_CONNS => database.max_open_conns
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}

func setDefaults(c *AppConfig) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.ReadTimeoutSec <= 0 {
		c.Server.ReadTimeoutSec = 10
	}
	if c.Server.WriteTimeoutSec <= 0 {
		c.Server.WriteTimeoutSec = 30
	}
	if c.Server.ShutdownTimeoutSec <= 0 {
		c.Server.ShutdownTimeoutSec = 5
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "blog"
	}
	if c.Telemetry.SampleRatio <= 0 || c.Telemetry.SampleRatio > 1 {
		c.Telemetry.SampleRatio = 1
	}
}
