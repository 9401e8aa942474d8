package database

import (
	"fmt"
	"time"

	"terminal-terrace/blog/config"
	"terminal-terrace/blog/internal/model"
	"terminal-terrace/blog/pkg/database"

	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDatabase 按配置打开数据库并迁移表结构
func InitDatabase() error {
	db, err := Open(config.Conf.Database)
	if err != nil {
		return err
	}

	// 初始化数据库表
	if err := model.InitTable(db); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}

	DB = db
	return nil
}

// Open 根据 driver 选择 postgres 或 sqlite
func Open(conf config.DatabaseConfig) (*gorm.DB, error) {
	// 设置默认日志级别
	logLevel := conf.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	switch conf.Driver {
	case "sqlite":
		return database.InitSQLite(&database.SQLiteConfig{
			ServiceName:  "blog",
			Path:         conf.Path,
			LogLevel:     logLevel,
			MaxOpenConns: 1,
		})
	case "postgres", "":
		return database.InitPostgres(&database.PostgresConfig{
			ServiceName:     "blog",
			Username:        conf.Username,
			Password:        conf.Password,
			Host:            conf.Host,
			Port:            conf.Port,
			Database:        conf.Database,
			SSLMode:         conf.SSLMode,
			LogLevel:        logLevel,
			MaxIdleConns:    conf.MaxIdleConns,
			MaxOpenConns:    conf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(conf.MaxLifetime) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return DB
}

// Close 关闭底层连接池
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
