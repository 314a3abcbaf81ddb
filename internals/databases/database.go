package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"surveyhub_backend/internals/configs"
	"surveyhub_backend/internals/logger"
)

func ConnectDB(cfg configs.DBConfig) (*gorm.DB, error) {
	logger.Infof("connecting to PostgreSQL at %s:%s/%s", cfg.Host, cfg.Port, cfg.Name)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // works behind PgBouncer transaction pooling
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(cfg.SlowThreshold),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	TunePool(db, cfg)
	logger.Info("DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.DBConfig) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warnf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

// WarmUp fills the pool in the background once the server is starting.
func WarmUp(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			logger.Warnf("warm-up ping err: %v", err)
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
