package repository

import (
	"pageant/config"
)

func AutoMigrate() error {
	return config.DatabaseConnection().AutoMigrate(
		&Event{},
		&Judge{},
		&Contestant{},
		&Criterion{},
		&Score{},
		&ManualFinalistSelection{},
	)
}
