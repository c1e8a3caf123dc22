package jobs

import (
	"context"
	"time"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/logger"
)

// SendDuesReminders mails every active member who has no recorded payment
// for the current period. Runs monthly.
func (j *JobRunner) SendDuesReminders() {
	ctx := context.Background()
	now := time.Now()
	month := int32(now.Month())
	year := int32(now.Year())

	logger.Info("starting dues reminder job", "month", month, "year", year)

	active := domain.MemberStatusActive
	members, err := j.services.Member.List(ctx, &active)
	if err != nil {
		logger.Error("dues reminder job: failed to list active members", "error", err)
		return
	}

	payments, _, err := j.services.Payment.AggregateForAccounting(ctx, domain.PaymentFilter{
		Month: &month,
		Year:  &year,
	})
	if err != nil {
		logger.Error("dues reminder job: failed to load period payments", "error", err)
		return
	}
	paid := make(map[int32]bool, len(payments))
	for _, p := range payments {
		paid[p.MemberID] = true
	}

	var sent int
	for _, m := range members {
		if paid[m.ID] || m.Email == "" {
			continue
		}
		if err := j.services.Email.SendDuesReminder(ctx, m.Email, m.FullName(), month, year); err != nil {
			logger.Warn("dues reminder mail failed", "member_id", m.ID, "error", err)
			continue
		}
		sent++
	}

	logger.Info("dues reminder job completed", "active_members", len(members), "reminders_sent", sent)
}
