package db

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"shed-server/internal/config"

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
		LoadInstance()
	}

	return instance
}

// LoadInstance will load the database instance
// It panics if the database cannot be reached
func LoadInstance() {
	dbh, err := Open(config.Instance().PGDSN)
	if err != nil {
		panic(err)
	}

	instance = dbh
}

// Open connects to the database and verifies the connection
func Open(dsn string) (*sql.DB, error) {
	dbh, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := dbh.Ping(); err != nil {
		_ = dbh.Close()
		return nil, err
	}

	return dbh, nil
}

// Migrate runs the migrations against the instance
func Migrate() error {
	return MigrateDB(Instance(), config.Instance().MigrationsPath)
}

// MigrateDB runs the migrations found in migrationsPath against dbh
func MigrateDB(dbh *sql.DB, migrationsPath string) error {
	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(dbh, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}

// Rollback rolls back the transaction and logs a failure
func Rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
