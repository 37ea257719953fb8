package main

import (
	"fmt"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/models"
)

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := models.Migrate(config.DataBase); err != nil {
		config.Logger.Fatalf("Migrate: %v", err)
	}

	if _, err := models.CurrentFeeConfig(config.DataBase); err != nil {
		config.Logger.Fatalf("Seed fee config: %v", err)
	}

	config.Logger.Info("Database migrated")
}
