package database

import (
	"context"
	"fmt"
	"time"

	"leo-chat/config"
	"leo-chat/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DSN builds the libpq connection string for cfg.
func DSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
}

// Connect opens the pool and blocks until Postgres answers a ping, retrying every
// cfg.DBRetryInterval. It returns early only when ctx is done.
func Connect(ctx context.Context, cfg *config.Config, l *logger.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}
	if cfg.AppMode == "debug" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	for {
		db, err := open(ctx, DSN(cfg), gormCfg)
		if err == nil {
			l.Infof("database connection established")
			return db, nil
		}
		l.Errorf("database not ready, retrying in %s: %v", cfg.DBRetryInterval, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBRetryInterval):
		}
	}
}

func open(ctx context.Context, dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// HealthCheck pings the pool behind db.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
