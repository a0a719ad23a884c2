package grading

import (
	"time"

	"github.com/abhisek/mathdrill/internal/spacedrep"
	"github.com/abhisek/mathdrill/internal/store"
)

const (
	// DefaultFastThreshold is the default upper bound (exclusive) for a perfect grade.
	DefaultFastThreshold = 2 * time.Second

	// DefaultSlowThreshold is the default upper bound (inclusive) for a good grade.
	DefaultSlowThreshold = 5 * time.Second

	// FallbackMean and FallbackStdev seed TimedEvaluator when no history exists.
	FallbackMean  = 3.0
	FallbackStdev = 2.0
)

// Evaluator maps an answer's correctness and elapsed seconds to an SM-2 grade.
// Implementations are deterministic and have no side effects.
type Evaluator interface {
	Evaluate(correct bool, elapsed float64) spacedrep.Grade
}

// Config holds the response time thresholds for ThresholdEvaluator.
type Config struct {
	FastThreshold time.Duration
	SlowThreshold time.Duration
}

// DefaultConfig returns the 2s / 5s thresholds.
func DefaultConfig() Config {
	return Config{
		FastThreshold: DefaultFastThreshold,
		SlowThreshold: DefaultSlowThreshold,
	}
}

// ThresholdEvaluator grades correct answers by fixed response time bands.
type ThresholdEvaluator struct {
	Config Config
}

// NewThresholdEvaluator returns an evaluator using cfg, filling zero
// thresholds with the defaults.
func NewThresholdEvaluator(cfg Config) ThresholdEvaluator {
	if cfg.FastThreshold <= 0 {
		cfg.FastThreshold = DefaultFastThreshold
	}
	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = DefaultSlowThreshold
	}
	return ThresholdEvaluator{Config: cfg}
}

func (e ThresholdEvaluator) Evaluate(correct bool, elapsed float64) spacedrep.Grade {
	if !correct {
		return spacedrep.GradeBlackout
	}
	switch {
	case elapsed < e.Config.FastThreshold.Seconds():
		return spacedrep.GradePerfect
	case elapsed <= e.Config.SlowThreshold.Seconds():
		return spacedrep.GradeGood
	default:
		return spacedrep.GradeHard
	}
}

// TimedEvaluator grades correct answers relative to the learner's own
// historical response time distribution.
type TimedEvaluator struct {
	Mean  float64
	Stdev float64
}

func (e TimedEvaluator) Evaluate(correct bool, elapsed float64) spacedrep.Grade {
	if !correct {
		return spacedrep.GradeBlackout
	}
	switch {
	case elapsed >= e.Mean+3*e.Stdev:
		return spacedrep.GradeHard
	case elapsed >= e.Mean+e.Stdev:
		return spacedrep.GradeGood
	default:
		return spacedrep.GradePerfect
	}
}

// TimeStatsEvaluator builds a TimedEvaluator from aggregated history.
// The variance is sumsq/n - mean², clamped at zero. Nil or empty stats fall
// back to FallbackMean and FallbackStdev.
func TimeStatsEvaluator(stats *store.TimeStats) TimedEvaluator {
	if stats == nil || stats.Count == 0 {
		return TimedEvaluator{Mean: FallbackMean, Stdev: FallbackStdev}
	}
	return TimedEvaluator{Mean: stats.Sum / float64(stats.Count), Stdev: stats.Stdev()}
}
