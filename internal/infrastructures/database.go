package infrastructures

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/safatanc/promotion-core/internal/app/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// NewDatabase opens the store selected by DATABASE_DRIVER and creates the
// schema for every persisted model.
func NewDatabase(config *AppConfig, logger *logrus.Logger) (*gorm.DB, error) {
	dialector, err := newDialector(config.DATABASE_DRIVER, config.DATABASE_URL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if config.DATABASE_DRIVER == DriverSQLite {
		// SQLite allows a single writer; queue on the pool instead of failing with SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else if config.DATABASE_MAX_OPEN_CONNS > 0 {
		sqlDB.SetMaxOpenConns(config.DATABASE_MAX_OPEN_CONNS)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.WithField("driver", config.DATABASE_DRIVER).Info("database initialized")
	return db, nil
}

// Migrate creates or updates the tables of every persisted model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Promotion{}, &models.AuditLog{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func newDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverPostgres, "":
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
