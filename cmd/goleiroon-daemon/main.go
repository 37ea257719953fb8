package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/jobs"
	"github.com/goleiroon/goleiroon/jobs/cron"
	"github.com/goleiroon/goleiroon/workers/daemons"
)

func CreateWorker(id string) daemons.Worker {
	switch id {
	case "cron_job":
		return daemons.NewCronJob()
	case cron.ConvocationExpiryJobName:
		return daemons.NewCronJob(jobs.Job(&cron.ConvocationExpiryJob{}))
	case cron.CoinReleaseJobName:
		return daemons.NewCronJob(jobs.Job(&cron.CoinReleaseJob{}))
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

	ARVG := os.Args[1:]
	if len(ARVG) == 0 {
		ARVG = []string{"cron_job"}
	}

	var wg sync.WaitGroup
	for _, id := range ARVG {
		worker := CreateWorker(id)
		if worker == nil {
			config.Logger.Errorf("Unknown daemon: %s", id)
			continue
		}

		config.Logger.Infof("Start goleiroon-daemon: %s", id)

		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Start()
		}()
	}

	wg.Wait()
}
