package database

import (
	"embed"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/colegio-app/colegio/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func Open() (*sqlx.DB, error) {
	conf := core.Conf
	engine := conf.GetString("database.engine")

	sslMode := "require"
	if conf.GetBool("database.disableTLS") {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   engine,
		User:     url.UserPassword(conf.GetString("database.user"), conf.GetString("database.password")),
		Host:     conf.GetString("database.host") + ":" + conf.GetString("database.port"),
		Path:     conf.GetString("database.name"),
		RawQuery: q.Encode(),
	}

	db, err := sqlx.Open(engine, u.String())
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db); err != nil {
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// RunMigrations runs an arbitrary goose command against the embedded
// migrations. Used by the operator CLI.
func RunMigrations(command string, db *sqlx.DB, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	return goose.Run(command, db.DB, "migrations", args...)
}

func Migrate(db *sqlx.DB) error {
	if err := RunMigrations("up", db); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
