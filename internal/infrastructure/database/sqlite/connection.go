package sqlite

import (
	"drnote/internal/domain/entity"
	"drnote/internal/pkg/logger"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormWriter routes GORM's log output through the application logger.
type gormWriter struct {
	log logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Debug(fmt.Sprintf(format, args...))
}

// Open opens the SQLite database at dsn and migrates the schema.
// SQLite allows a single writer, so the pool is limited to one connection.
func Open(dsn string, log logger.Logger) (*gorm.DB, error) {
	newLogger := gormlogger.New(
		gormWriter{log: log},
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true, // Not-found is a normal outcome for lookups
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	log.Info(fmt.Sprintf("Connected to database %s and migrated schema.", dsn))
	return db, nil
}

// AutoMigrate automatically migrates the database schema for the defined entities.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Patient{},
		&entity.Appointment{},
		&entity.Note{},
		&entity.Prescription{},
		&entity.PendingReminder{},
		&entity.DeliveredReminder{},
		&entity.NotificationSetting{},
	)
	if err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	return nil
}

// Close closes the database connection if it's open.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}
	return sqlDB.Close()
}
