package validate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/overflow"
)

// Measurer is the overflow side of an evaluation.
type Measurer interface {
	Measure(ctx context.Context, n models.Notification, fonts []models.Font) ([]overflow.Measurement, error)
}

// Result is the outcome of evaluating one notification. Each evaluation
// replaces the previous result entirely.
type Result struct {
	HasError       bool
	Reasons        []string
	FieldViolation bool
	Overflow       bool
	Measurements   []overflow.Measurement
}

// OverflowReason formats the line-count entry of a result.
func OverflowReason(total, max int) string {
	return fmt.Sprintf("Line count exceeded (%d / %d)", total, max)
}

// Validator is the entry point called after every edit of a notification.
type Validator struct {
	measurer Measurer
	logger   *zap.Logger
}

func New(m Measurer, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{measurer: m, logger: logger}
}

// Evaluate combines the field rules and the overflow check:
// HasError = field violation OR overflow in any font.
func (v *Validator) Evaluate(ctx context.Context, n models.Notification, fonts []models.Font) (Result, error) {
	res := Result{Reasons: ExplainRequiredFieldViolations(n)}
	res.FieldViolation = len(res.Reasons) > 0

	ms, err := v.measurer.Measure(ctx, n, fonts)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate %s: %w", n.ID, err)
	}
	res.Measurements = ms
	if worst, ok := overflow.Worst(ms); ok {
		res.Overflow = true
		res.Reasons = append(res.Reasons, OverflowReason(worst.Total(), worst.MaxLines))
	}
	res.HasError = res.FieldViolation || res.Overflow

	if res.HasError {
		v.logger.Debug("notification invalid",
			zap.String("id", n.ID),
			zap.String("level", string(n.Level)),
			zap.Strings("reasons", res.Reasons))
	}
	return res, nil
}

// Apply writes the derived error flag back into n.
func Apply(n models.Notification, r Result) models.Notification {
	n.HasError = r.HasError
	return n
}
