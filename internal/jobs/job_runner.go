package jobs

import (
	"sendika-backend/internal/config"
	"sendika-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email   service.EmailService
	Member  service.MemberService
	Payment service.PaymentService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (j *JobRunner) Config() *config.Config {
	return j.config
}

// RunAllMonthlyJobs runs every monthly job in sequence
func (j *JobRunner) RunAllMonthlyJobs() {
	j.SendDuesReminders()
	j.TakeAccountingSnapshot()
}
