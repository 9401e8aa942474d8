package database

import (
	"database/sql"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gorm 日志级别
var logLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

// newLogger gorm 日志走 slog；按 id/名称查不到是正常分支，不记录
func newLogger(level string) logger.Interface {
	lvl, ok := logLevels[level]
	if !ok {
		lvl = logger.Info
	}

	return logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  lvl,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// gormConfig TranslateError 让唯一约束冲突统一表现为 gorm.ErrDuplicatedKey，时间一律按 UTC 写入
func gormConfig(level string) *gorm.Config {
	return &gorm.Config{
		Logger:         newLogger(level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// pool 连接池参数，零值不设置
type pool struct {
	maxIdle  int
	maxOpen  int
	lifetime time.Duration
}

func (p pool) apply(sqlDB *sql.DB) {
	if p.maxIdle > 0 {
		sqlDB.SetMaxIdleConns(p.maxIdle)
	}
	if p.maxOpen > 0 {
		sqlDB.SetMaxOpenConns(p.maxOpen)
	}
	if p.lifetime > 0 {
		sqlDB.SetConnMaxLifetime(p.lifetime)
	}
}

func serviceName(name string) string {
	if name == "" {
		return "unknown-service"
	}
	return name
}
