package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resumeapi/internal/config"
)

// InitDatabase 根据配置打开 SQLite 或 PostgreSQL，并返回 GORM 数据库实例。
// 该实例可并发使用，由所有请求共享。
func InitDatabase(cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	dialector := postgres.Open(cfg.DSN())
	if cfg.IsSQLite() {
		dialector = sqlite.Open(cfg.DSN())
	}

	level := logger.Warn
	if cfg.Verbose {
		level = logger.Info
	}

	db, err := Open(dialector, log, level)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap db: %w", err)
	}

	if cfg.IsSQLite() {
		// one writer; also keeps ":memory:" databases on a single connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// Open 封装 gorm.Open，接入 slog 日志并开启驱动错误转换。
func Open(dialector gorm.Dialector, log *slog.Logger, level logger.LogLevel) (*gorm.DB, error) {
	if log == nil {
		log = slog.Default()
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(log, level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}
