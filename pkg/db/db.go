package db

import (
	"database/sql"
	"fmt"
	"seotda-server/internal/config"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // needed
	"github.com/sirupsen/logrus"
)

var (
	instance *sql.DB
	lock     sync.Mutex
)

// Instance returns a database instance
func Instance() *sql.DB {
	lock.Lock()
	defer lock.Unlock()

	if instance == nil {
		db, err := Open(config.Instance().PGDSN)
		if err != nil {
			panic(err)
		}

		instance = db
	}

	return instance
}

// Open connects to postgres and verifies the connection
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("no database dsn configured")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	return db, nil
}

// Migrate runs the migrations found in migrationsPath
func Migrate(db *sql.DB, migrationsPath string) error {
	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

// Scanner is an interface that sql should've provided
type Scanner interface {
	Scan(...interface{}) error
}
