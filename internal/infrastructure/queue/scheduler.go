package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Scheduler registers periodic maintenance jobs.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, password string, db int) *Scheduler {
	return &Scheduler{
		scheduler: asynq.NewScheduler(
			asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
			&asynq.SchedulerOpts{
				Location: time.UTC,
				LogLevel: asynq.InfoLevel,
			},
		),
	}
}

// RegisterJobs wires all periodic jobs. The rating audit re-derives every
// book's aggregate from its reviews, converging any drift left by the
// non-transactional mutate-then-recompute window.
func (s *Scheduler) RegisterJobs() error {
	payload, err := json.Marshal(RatingAuditPayload{})
	if err != nil {
		return err
	}

	// Nightly at 03:00 UTC.
	if _, err := s.scheduler.Register("0 3 * * *", asynq.NewTask(TypeRatingAudit, payload)); err != nil {
		return fmt.Errorf("register %s: %w", TypeRatingAudit, err)
	}

	return nil
}

func (s *Scheduler) Run() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
