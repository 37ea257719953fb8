package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DataBase *gorm.DB

func ConnectDatabase() error {
	db, err := NewDatabase()
	if err != nil {
		return err
	}

	DataBase = db

	return nil
}

func NewDatabase() (*gorm.DB, error) {
	var dialector gorm.Dialector

	var sslmode string
	if Environment.DatabaseSSLMode == "disable" {
		sslmode = "disable"
	} else {
		sslmode = "require"
	}

	dsn := "host=" + Environment.DatabaseHost +
		" port=" + Environment.DatabasePort +
		" user=" + Environment.DatabaseUser +
		" password=" + Environment.DatabasePass +
		" dbname=" + Environment.DatabaseName +
		" sslmode=" + sslmode

	dialector = postgres.Open(dsn)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newLogger,
	})

	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// PingDatabase reports whether the pool can reach the server within two seconds.
func PingDatabase(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}
