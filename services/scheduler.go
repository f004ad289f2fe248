// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// ScheduledJob is one recurring background task.
type ScheduledJob struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context) error
}

// StartScheduler runs the given jobs on their intervals until the returned
// scheduler is shut down.
func StartScheduler(ctx context.Context, jobs ...ScheduledJob) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	for _, job := range jobs {
		job := job
		_, err := sched.NewJob(
			gocron.DurationJob(job.Every),
			gocron.NewTask(func() {
				if err := job.Run(ctx); err != nil {
					log.Printf("[SCHED] ❌ %s failed: %v", job.Name, err)
				}
			}),
		)
		if err != nil {
			return nil, err
		}
		log.Printf("[SCHED] ✅ %s scheduled every %s", job.Name, job.Every)
	}

	sched.Start()
	return sched, nil
}
