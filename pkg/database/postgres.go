package database

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresConfig 生产环境数据库
type PostgresConfig struct {
	ServiceName string // 日志中的服务名
	Username    string
	Password    string
	Host        string
	Port        int
	Database    string
	SSLMode     bool   // true => sslmode=require
	LogLevel    string // silent, error, warn, info

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// InitPostgres 打开连接并配置连接池，未填写的字段使用默认值
func InitPostgres(config *PostgresConfig) (*gorm.DB, error) {
	if config == nil {
		return nil, fmt.Errorf("postgres config is nil")
	}
	setDefaults(config)

	db, err := gorm.Open(postgres.Open(buildDSN(config)), gormConfig(config.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("connect postgres %s: %w", net.JoinHostPort(config.Host, strconv.Itoa(config.Port)), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	pool{
		maxIdle:  config.MaxIdleConns,
		maxOpen:  config.MaxOpenConns,
		lifetime: config.ConnMaxLifetime,
	}.apply(sqlDB)

	slog.Info("database connected",
		"service", serviceName(config.ServiceName),
		"driver", "postgres",
		"host", config.Host,
		"port", config.Port,
		"database", config.Database,
	)
	return db, nil
}

func setDefaults(c *PostgresConfig) {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 10
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 100
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = time.Hour
	}
}

// buildDSN 会话时区固定为 UTC
func buildDSN(c *PostgresConfig) string {
	sslmode := "disable"
	if c.SSLMode {
		sslmode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		c.Host, c.Username, c.Password, c.Database, c.Port, sslmode)
}
