package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteConfig 本地开发与测试使用的 SQLite 配置
type SQLiteConfig struct {
	ServiceName  string
	Path         string // 文件路径，或 file:xxx?mode=memory 形式的内存库
	LogLevel     string
	MaxOpenConns int
}

// InitSQLite 打开 SQLite 数据库，外键约束总是开启。
func InitSQLite(config *SQLiteConfig) (*gorm.DB, error) {
	if config == nil {
		return nil, fmt.Errorf("sqlite config is nil")
	}
	if config.Path == "" {
		config.Path = "blog.db"
	}
	if config.LogLevel == "" {
		config.LogLevel = "warn"
	}
	// SQLite 只允许一个写者
	if config.MaxOpenConns == 0 {
		config.MaxOpenConns = 1
	}

	if !strings.HasPrefix(config.Path, "file:") {
		if dir := filepath.Dir(config.Path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create database directory %s: %w", dir, err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(buildSQLiteDSN(config.Path)), gormConfig(config.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", config.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	pool{maxOpen: config.MaxOpenConns}.apply(sqlDB)

	slog.Info("database connected", "service", serviceName(config.ServiceName), "driver", "sqlite", "path", config.Path)
	return db, nil
}

func buildSQLiteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}
