package worker

import (
	"errors"
	"log/slog"

	"contact-form-backend/internal/domain"
	"contact-form-backend/pkg/email"
)

// LogOutcomes drains outcomes until the channel closes, logging each one.
// Failed deliveries end here: they are not retried or reported to the submitter.
func LogOutcomes(logger *slog.Logger, outcomes <-chan domain.DeliveryOutcome) {
	for o := range outcomes {
		attrs := []any{
			"task_id", o.TaskID.String(),
			"recipient", o.Recipient,
			"duration", o.FinishedAt.Sub(o.StartedAt),
		}

		switch {
		case o.Err == nil:
			logger.Info("confirmation email sent", attrs...)
		case errors.Is(o.Err, email.ErrAuthentication):
			logger.Error("confirmation email dropped: relay rejected credentials", append(attrs, "error", o.Err)...)
		default:
			logger.Error("confirmation email dropped: delivery failed", append(attrs, "error", o.Err)...)
		}
	}
}
