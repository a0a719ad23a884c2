package grading

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/store"
)

const (
	ModeThreshold = "threshold"
	ModeAdaptive  = "adaptive"
)

// Source supplies the evaluator to use for a given operation kind.
type Source interface {
	EvaluatorFor(ctx context.Context, kind problemgen.Kind) (Evaluator, error)
}

// Static returns the same evaluator for every kind.
type Static struct {
	Evaluator Evaluator
}

func (s Static) EvaluatorFor(context.Context, problemgen.Kind) (Evaluator, error) {
	return s.Evaluator, nil
}

// Adaptive builds a TimedEvaluator per kind from completed-deck history.
type Adaptive struct {
	Analytics store.Analytics
	Window    store.Window
}

func (a Adaptive) EvaluatorFor(ctx context.Context, kind problemgen.Kind) (Evaluator, error) {
	stats, err := a.Analytics.TimeStatistics(ctx, kind, a.Window)
	if err != nil {
		return nil, fmt.Errorf("load time statistics for %s: %w", kind, err)
	}
	return TimeStatsEvaluator(stats), nil
}

// NewSource picks the evaluator source for mode. Adaptive mode requires
// analytics; threshold mode uses cfg.
func NewSource(mode string, cfg Config, analytics store.Analytics) (Source, error) {
	switch mode {
	case "", ModeThreshold:
		return Static{Evaluator: NewThresholdEvaluator(cfg)}, nil
	case ModeAdaptive:
		if analytics == nil {
			return nil, errors.New("adaptive grading requires analytics")
		}
		return Adaptive{Analytics: analytics, Window: store.AllTime()}, nil
	default:
		return nil, fmt.Errorf("unknown grading mode %q", mode)
	}
}
