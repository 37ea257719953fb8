package cron

import (
	"time"

	"github.com/jasonlvhit/gocron"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/metrics"
	"github.com/goleiroon/goleiroon/models"
)

const CoinReleaseJobName = "coin_release"

// CoinReleaseJob pays goalkeepers for accepted games the organizer never confirmed.
type CoinReleaseJob struct {
}

func (j *CoinReleaseJob) Process() {
	s := gocron.NewScheduler()
	s.Every(config.App.Jobs.ReleaseSweepMinutes).Minutes().Do(func() {
		j.Run(models.Now())
	})
	<-s.Start()
}

func (j *CoinReleaseJob) Run(now time.Time) (released int, failed int) {
	ids, err := models.ReleasableConvocationIDs(now)
	if err != nil {
		config.Logger.Errorf("%s: failed to list convocations: %v", CoinReleaseJobName, err)
		metrics.RecordJobRun(CoinReleaseJobName, false)
		return 0, 0
	}

	for _, id := range ids {
		changed, err := models.ReleaseConvocation(id, now)
		if err != nil {
			failed++
			metrics.RecordJobItem(CoinReleaseJobName, false)
			config.Logger.WithField("convocacao_id", id).Errorf("%s: %v", CoinReleaseJobName, err)
			continue
		}
		if changed {
			released++
			metrics.RecordJobItem(CoinReleaseJobName, true)
		}
	}

	if released > 0 || failed > 0 {
		config.Logger.Infof("%s: released %d convocations, %d failed", CoinReleaseJobName, released, failed)
	}
	metrics.RecordJobRun(CoinReleaseJobName, failed == 0)

	return released, failed
}
