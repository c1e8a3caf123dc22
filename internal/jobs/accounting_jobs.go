package jobs

import (
	"context"
	"time"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/logger"
)

// TakeAccountingSnapshot logs the roll-up for the previous period so the
// monthly totals are captured even before accounting signs payments off.
func (j *JobRunner) TakeAccountingSnapshot() {
	ctx := context.Background()
	prev := time.Now().AddDate(0, -1, 0)
	month := int32(prev.Month())
	year := int32(prev.Year())

	_, summary, err := j.services.Payment.AggregateForAccounting(ctx, domain.PaymentFilter{
		Month: &month,
		Year:  &year,
	})
	if err != nil {
		logger.Error("accounting snapshot job failed", "month", month, "year", year, "error", err)
		return
	}

	logger.Info("accounting snapshot",
		"month", month,
		"year", year,
		"total_amount", summary.TotalAmount.StringFixed(2),
		"approved_amount", summary.ApprovedAmount.StringFixed(2),
		"pending_count", summary.PendingCount,
		"payment_count", summary.PaymentCount,
	)
}
