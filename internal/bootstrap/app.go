package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gopherblog/internal/config"
	mysqlClient "gopherblog/internal/platform/mysql"
	sqliteClient "gopherblog/internal/platform/sqlite"
	"gopherblog/internal/repository"
)

type App struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *zap.Logger

	StartedAt time.Time
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("database ready",
		zap.String("driver", cfg.Database.Driver),
		zap.String("sqlite_path", cfg.Database.SQLitePath),
	)

	return &App{
		Config:    cfg,
		DB:        db,
		Logger:    logger,
		StartedAt: time.Now(),
	}, nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		return sqliteClient.New(ctx, cfg.Database.SQLitePath)
	case config.DriverMySQL:
		return mysqlClient.New(ctx, cfg.MySQLDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return closeErr
}
