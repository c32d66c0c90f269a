package database

import (
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewGorm() (*gorm.DB, error) {
	dsn := viper.GetString("database.dsn")
	if len(dsn) == 0 {
		return nil, fmt.Errorf("database dsn is not configured")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open database connection: %v", err)
	}

	return conn, nil
}
