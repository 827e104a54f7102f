package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverPGX      = "pgx"
	DriverMySQL    = "mysql"
)

type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdle     time.Duration
	ConnMaxLifetime time.Duration
	// PingTimeout bounds the wait for the database to come up.
	PingTimeout time.Duration
}

// Writer receives gorm's slow query and error reports.
type Writer interface {
	Printf(format string, args ...any)
}

// Open connects with the configured driver, waits until the server answers
// and wraps the pool in gorm.
func Open(ctx context.Context, cfg Config, writer Writer) (*gorm.DB, error) {
	dsn, err := normalizeDSN(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := waitForPing(ctx, sqlDB, cfg.PingTimeout, writer); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	gormConfig := &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	if writer != nil {
		gormConfig.Logger = gormlogger.New(writer, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(dialector(cfg.Driver, sqlDB), gormConfig)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("init gorm: %w", err)
	}
	return db, nil
}

func dialector(driver string, conn *sql.DB) gorm.Dialector {
	if driver == DriverMySQL {
		return mysql.New(mysql.Config{Conn: conn})
	}
	return postgres.New(postgres.Config{Conn: conn})
}

// normalizeDSN validates the driver and forces time parsing on MySQL so
// timestamps scan into time.Time.
func normalizeDSN(driver, dsn string) (string, error) {
	switch driver {
	case DriverPostgres, DriverPGX:
		return dsn, nil
	case DriverMySQL:
		parsed, err := mysqldriver.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("parse mysql dsn: %w", err)
		}
		parsed.ParseTime = true
		parsed.Loc = time.UTC
		return parsed.FormatDSN(), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func waitForPing(ctx context.Context, db *sql.DB, timeout time.Duration, writer Writer) error {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	backoff := 500 * time.Millisecond
	for {
		err := db.PingContext(ctx)
		if err == nil {
			return nil
		}
		if writer != nil {
			writer.Printf("database not ready yet: %v", err)
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(backoff):
		}
		if backoff < 5*time.Second {
			backoff *= 2
		}
	}
}
