package config

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var enumQueries = []string{
	`CREATE TYPE pageant.phase AS ENUM ('PRELIMINARY', 'FINAL')`,
	`CREATE TYPE pageant.event_status AS ENUM ('ACTIVE', 'ARCHIVED')`,
	`CREATE TYPE pageant.tie_breaking_strategy AS ENUM ('INCLUDE_TIES', 'TOTAL_SCORE', 'CONTESTANT_NUMBER', 'MANUAL_SELECTION')`,
	`CREATE TYPE pageant.sex AS ENUM ('MALE', 'FEMALE')`,
}

var (
	db     *gorm.DB
	onceDB sync.Once
)

func DatabaseConnection() *gorm.DB {
	onceDB.Do(func() {
		cfg := Env()
		var err error
		db, err = InitDB(cfg.DatabaseHost, cfg.DatabasePort, cfg.PostgresUser, cfg.PostgresPassword, cfg.DatabaseName)
		if err != nil {
			panic(err)
		}
	})
	return db
}

func InitDB(host, port, user, password, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "pageant.",
			SingularTable: false,
		},
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	x := db.Exec(`CREATE SCHEMA IF NOT EXISTS pageant`)
	if x.Error != nil {
		return nil, x.Error
	}
	for _, query := range enumQueries {
		x := db.Exec(query)
		if x.Error != nil {
			if strings.Contains(x.Error.Error(), "already exists") {
				continue
			}
			return nil, x.Error
		}
	}
	return db, nil
}
