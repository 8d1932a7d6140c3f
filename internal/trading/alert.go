package trading

import (
	"context"

	"go.uber.org/zap"

	"github.com/rxtech-lab/trendscout/internal/logger"
	"github.com/rxtech-lab/trendscout/internal/metrics"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// AlertSink receives positions that need operator attention.
type AlertSink interface {
	Critical(ctx context.Context, alert *errors.UnprotectedPositionError)
}

// LogAlertSink logs alerts at error level and counts them.
type LogAlertSink struct {
	logger  *logger.Logger
	metrics *metrics.Recorder
}

func NewLogAlertSink(log *logger.Logger, recorder *metrics.Recorder) *LogAlertSink {
	return &LogAlertSink{
		logger:  log.Named("alert"),
		metrics: recorder,
	}
}

func (s *LogAlertSink) Critical(_ context.Context, alert *errors.UnprotectedPositionError) {
	s.metrics.CriticalAlert()
	s.logger.Error("CRITICAL: position is open without full protection, manual action required",
		zap.String("symbol", alert.Symbol),
		zap.String("attempt_id", alert.AttemptID),
		zap.String("entry_order_id", alert.EntryOrderID),
		zap.String("failed_leg", alert.FailedLeg),
		zap.Error(alert.Cause),
	)
}
