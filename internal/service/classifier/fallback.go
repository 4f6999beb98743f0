package classifier

import (
	"context"
	"errors"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// FallbackClassifier tries the primary classifier and answers with the
// fallback whenever the primary is missing, fails or runs past the timeout.
type FallbackClassifier struct {
	primary  SymptomClassifier
	fallback SymptomClassifier
	timeout  time.Duration
	log      *logrus.Logger
	metrics  *metrics.SchedulingMetrics
}

func NewFallbackClassifier(
	primary SymptomClassifier,
	fallback SymptomClassifier,
	timeout time.Duration,
	log *logrus.Logger,
	m *metrics.SchedulingMetrics,
) *FallbackClassifier {
	return &FallbackClassifier{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		log:      log,
		metrics:  m,
	}
}

func (c *FallbackClassifier) Classify(ctx context.Context, symptoms string) (*entity.TriageResult, error) {
	if c.primary == nil {
		c.metrics.ObserveClassifierFallback("unavailable")
		return c.fallback.Classify(ctx, symptoms)
	}

	primaryCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		primaryCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.primary.Classify(primaryCtx, symptoms)
	if err == nil && result != nil {
		return result, nil
	}

	reason := "error"
	if errors.Is(err, context.DeadlineExceeded) {
		reason = "timeout"
	}
	c.log.Warnf("Primary classifier failed, using keyword fallback (%s): %+v", reason, err)
	c.metrics.ObserveClassifierFallback(reason)

	return c.fallback.Classify(ctx, symptoms)
}
