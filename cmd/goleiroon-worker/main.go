package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/mq_client"
	"github.com/goleiroon/goleiroon/services/push_service"
	"github.com/goleiroon/goleiroon/workers/engines"
)

func CreateWorker(id string) engines.Worker {
	switch id {
	case "notification":
		return engines.NewNotificationWorker(push_service.NewClient(config.Environment.ExpoPushURL))
	case engines.ExpiryWatcherName:
		return engines.NewExpiryWatcher()
	default:
		return nil
	}
}

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}
	defer config.InfluxDB.Close()

	if config.Nats == nil {
		config.Logger.Fatal("goleiroon-worker needs NATS_URL")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ARVG := os.Args[1:]

	for _, id := range ARVG {
		worker := CreateWorker(id)
		binding := mq_client.GetBinding(id)
		if worker == nil || binding == nil {
			config.Logger.Errorf("Unknown worker: %s", id)
			continue
		}

		config.Logger.Infof("Start goleiroon-worker: %s", id)

		if runner, ok := worker.(engines.Runner); ok {
			go runner.Run(ctx)
		}

		name := id
		_, err := mq_client.Subscribe(binding, func(m *nats.Msg) {
			if err := worker.Process(m.Data); err != nil {
				config.Logger.WithField("worker", name).Errorf("Worker error: %v", err)
			}
		})
		if err != nil {
			config.Logger.Fatalf("Subscribe %s: %v", id, err)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	config.Logger.Info("Shutting down goleiroon-worker")
	if err := config.Nats.Drain(); err != nil {
		config.Logger.Errorf("Drain: %v", err)
	}
}
