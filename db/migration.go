package db

import (
	dbmodels "ptw-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	tables := []struct {
		name  string
		model interface{}
	}{
		{"Department", &dbmodels.Department{}},
		{"User", &dbmodels.User{}},
		{"JobPermit", &dbmodels.JobPermit{}},
		{"PermitToWork", &dbmodels.PermitToWork{}},
		{"PermitHistory", &dbmodels.PermitHistory{}},
		{"PermitAttachment", &dbmodels.PermitAttachment{}},
		{"Notification", &dbmodels.Notification{}},
	}
	for _, table := range tables {
		if err := DB.AutoMigrate(table.model); err != nil {
			return errors.Wrapf(err, "error migrating %s", table.name)
		}
	}
	log.Info("migrations finished")
	return nil
}
