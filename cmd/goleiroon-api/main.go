package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/routes"
)

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}
	defer config.InfluxDB.Close()

	r := routes.SetupRouter()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		config.Logger.Info("Shutting down goleiroon-api")
		if err := r.Shutdown(); err != nil {
			config.Logger.Errorf("Shutdown: %v", err)
		}
	}()

	config.Logger.Infof("goleiroon-api listening on %s", config.Environment.APIListen)
	if err := r.Listen(config.Environment.APIListen); err != nil {
		config.Logger.Fatalf("Listen: %v", err)
	}
}
