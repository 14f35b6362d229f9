package main

import (
	"database/sql"
	"time"

	"shed-server/pkg/db"

	"github.com/sirupsen/logrus"
)

func main() {
	waitForDB()
	if err := db.Migrate(); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

// waitForDB blocks until the database accepts connections
func waitForDB() {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			dbh := func() *sql.DB {
				defer func() { _ = recover() }()
				return db.Instance()
			}()

			if dbh != nil {
				return
			}

			logrus.Debug("waiting for database")
			time.Sleep(time.Millisecond * 500)
		}
	}
}
