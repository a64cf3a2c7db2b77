package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kisan/entities"
)

const memoryPath = ":memory:"

// Open connects to the SQLite document store at path. ":memory:" gives a
// private in-process store, used by tests and throwaway runs.
func Open(path string) (*gorm.DB, error) {
	return open(path, newLogger(log.New(os.Stdout, "\r\n", log.LstdFlags)))
}

// newLogger reports slow queries and errors. Missing rows are an expected
// outcome of lookups such as login by email, so they are not logged.
func newLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func open(path string, lg logger.Interface) (*gorm.DB, error) {
	dsn := path
	if path != memoryPath && !strings.Contains(path, "?") {
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  lg,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if path == memoryPath {
		// every new connection to :memory: is a new, empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates every collection's table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.User{},
		&entities.CropDiagnosis{},
		&entities.MarketPrice{},
		&entities.Conversation{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// OpenMigrated is Open followed by Migrate.
func OpenMigrated(path string) (*gorm.DB, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
