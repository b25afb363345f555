// Package db provides the database driver factory.
package db

import (
	"github.com/pkg/errors"

	"github.com/acadassist/acadassist/internal/profile"
	"github.com/acadassist/acadassist/store"
	"github.com/acadassist/acadassist/store/db/postgres"
	"github.com/acadassist/acadassist/store/db/sqlite"
)

// NewDBDriver creates a new database driver based on the profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	switch profile.Driver {
	case "postgres":
		return postgres.NewDB(profile)
	case "sqlite":
		return sqlite.NewDB(profile)
	default:
		return nil, errors.Errorf("unsupported driver %q", profile.Driver)
	}
}
