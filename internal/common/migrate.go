package common

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies every pending migration found at source (e.g. "file://migrations") to the named
// database. The migrations create the collection indexes the services rely on.
func Migrate(source, URI, dbName string) error {
	m, err := newMigrate(source, URI, dbName)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func newMigrate(source, URI, dbName string) (*migrate.Migrate, error) {
	dsn, err := databaseURI(URI, dbName)
	if err != nil {
		return nil, err
	}

	m, err := migrate.New(source, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}

	return m, nil
}

// databaseURI puts the database name into the path of a mongodb connection string, which is where
// the migrate driver looks for it.
func databaseURI(URI, dbName string) (string, error) {
	u, err := url.Parse(URI)
	if err != nil {
		return "", fmt.Errorf("invalid mongodb URI: %w", err)
	}

	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return "", fmt.Errorf("invalid mongodb URI scheme %q", u.Scheme)
	}

	u.Path = "/" + dbName

	return u.String(), nil
}
