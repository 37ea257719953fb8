package cron

import (
	"time"

	"github.com/jasonlvhit/gocron"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/metrics"
	"github.com/goleiroon/goleiroon/models"
)

const ConvocationExpiryJobName = "convocation_expiry"

// ConvocationExpiryJob turns pending convocations past their acceptance window into
// perdida and refunds the organizer.
type ConvocationExpiryJob struct {
}

func (j *ConvocationExpiryJob) Process() {
	s := gocron.NewScheduler()
	s.Every(config.App.Jobs.ExpirySweepSeconds).Seconds().Do(func() {
		j.Run(models.Now())
	})
	<-s.Start()
}

// Run expires every overdue convocation, each in its own transaction.
func (j *ConvocationExpiryJob) Run(now time.Time) (expired int, failed int) {
	ids, err := models.ExpiredConvocationIDs(now)
	if err != nil {
		config.Logger.Errorf("%s: failed to list convocations: %v", ConvocationExpiryJobName, err)
		metrics.RecordJobRun(ConvocationExpiryJobName, false)
		return 0, 0
	}

	for _, id := range ids {
		changed, err := models.ExpireConvocation(id, now)
		if err != nil {
			failed++
			metrics.RecordJobItem(ConvocationExpiryJobName, false)
			config.Logger.WithField("convocacao_id", id).Errorf("%s: %v", ConvocationExpiryJobName, err)
			continue
		}
		if changed {
			expired++
			metrics.RecordJobItem(ConvocationExpiryJobName, true)
		}
	}

	if expired > 0 || failed > 0 {
		config.Logger.Infof("%s: expired %d convocations, %d failed", ConvocationExpiryJobName, expired, failed)
	}
	metrics.RecordJobRun(ConvocationExpiryJobName, failed == 0)

	return expired, failed
}
