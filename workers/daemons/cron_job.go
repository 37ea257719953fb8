package daemons

import (
	"sync"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/jobs"
	"github.com/goleiroon/goleiroon/jobs/cron"
)

type Worker interface {
	Start()
	Stop()
}

// CronJob keeps the scheduled sweeps alive, restarting any job whose scheduler returns.
type CronJob struct {
	mu      sync.Mutex
	running bool
	Jobs    []jobs.Job
	wg      sync.WaitGroup
}

func NewCronJob(js ...jobs.Job) *CronJob {
	if len(js) == 0 {
		js = []jobs.Job{&cron.ConvocationExpiryJob{}, &cron.CoinReleaseJob{}}
	}

	return &CronJob{running: true, Jobs: js}
}

func (c *CronJob) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}

func (c *CronJob) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.running = false
}

func (c *CronJob) Start() {
	for _, job := range c.Jobs {
		c.wg.Add(1)
		go c.Process(job)
	}

	c.wg.Wait()
}

func (c *CronJob) Process(job jobs.Job) {
	defer c.wg.Done()

	for c.Running() {
		func() {
			defer func() {
				if r := recover(); r != nil {
					config.Logger.Errorf("cron job %T panicked: %v", job, r)
				}
			}()

			job.Process()
		}()
	}
}
