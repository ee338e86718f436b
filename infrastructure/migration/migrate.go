package migration

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

// Migrate aplica todas as migrações pendentes no banco apontado pelo DSN.
func Migrate(dsn string) error {
	driver, err := iofs.New(FS, ".")
	if err != nil {
		return err
	}
	defer driver.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", driver, dsn)
	if err != nil {
		return err
	}
	defer mg.Close()

	_, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}

	if dirty {
		return errors.New("banco de dados em estado dirty, intervenção manual necessária")
	}

	if err = mg.Migrate(Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	logrus.Info("Migrações do banco de dados aplicadas com sucesso")

	return nil
}
