package grading

import (
	"math"
	"testing"
	"time"

	"github.com/abhisek/mathdrill/internal/spacedrep"
	"github.com/abhisek/mathdrill/internal/store"
)

func TestThresholdEvaluator(t *testing.T) {
	e := NewThresholdEvaluator(DefaultConfig())

	tests := []struct {
		name    string
		correct bool
		elapsed float64
		want    spacedrep.Grade
	}{
		{"fast correct", true, 1.5, spacedrep.GradePerfect},
		{"zero elapsed", true, 0, spacedrep.GradePerfect},
		{"exactly fast threshold", true, 2.0, spacedrep.GradeGood},
		{"medium correct", true, 3.5, spacedrep.GradeGood},
		{"exactly slow threshold", true, 5.0, spacedrep.GradeGood},
		{"slow correct", true, 5.01, spacedrep.GradeHard},
		{"very slow correct", true, 120, spacedrep.GradeHard},
		{"fast incorrect", false, 0.5, spacedrep.GradeBlackout},
		{"slow incorrect", false, 30, spacedrep.GradeBlackout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Evaluate(tt.correct, tt.elapsed); got != tt.want {
				t.Errorf("Evaluate(%v, %v) = %v, want %v", tt.correct, tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestThresholdEvaluator_CustomConfig(t *testing.T) {
	e := NewThresholdEvaluator(Config{FastThreshold: time.Second, SlowThreshold: 3 * time.Second})

	if got := e.Evaluate(true, 1.5); got != spacedrep.GradeGood {
		t.Errorf("Evaluate(true, 1.5) = %v, want %v", got, spacedrep.GradeGood)
	}
	if got := e.Evaluate(true, 3.5); got != spacedrep.GradeHard {
		t.Errorf("Evaluate(true, 3.5) = %v, want %v", got, spacedrep.GradeHard)
	}
}

func TestNewThresholdEvaluator_FillsDefaults(t *testing.T) {
	e := NewThresholdEvaluator(Config{})
	if e.Config != DefaultConfig() {
		t.Errorf("Config = %+v, want %+v", e.Config, DefaultConfig())
	}
}

func TestTimedEvaluator(t *testing.T) {
	e := TimedEvaluator{Mean: 3, Stdev: 1}

	tests := []struct {
		correct bool
		elapsed float64
		want    spacedrep.Grade
	}{
		{true, 2.0, spacedrep.GradePerfect},
		{true, 3.99, spacedrep.GradePerfect},
		{true, 4.0, spacedrep.GradeGood},
		{true, 5.99, spacedrep.GradeGood},
		{true, 6.0, spacedrep.GradeHard},
		{true, 60, spacedrep.GradeHard},
		{false, 1.0, spacedrep.GradeBlackout},
	}
	for _, tt := range tests {
		if got := e.Evaluate(tt.correct, tt.elapsed); got != tt.want {
			t.Errorf("Evaluate(%v, %v) = %v, want %v", tt.correct, tt.elapsed, got, tt.want)
		}
	}
}

func TestTimeStatsEvaluator(t *testing.T) {
	t.Run("nil stats uses fallback", func(t *testing.T) {
		e := TimeStatsEvaluator(nil)
		if e.Mean != FallbackMean || e.Stdev != FallbackStdev {
			t.Errorf("TimeStatsEvaluator(nil) = %+v, want mean %v stdev %v", e, FallbackMean, FallbackStdev)
		}
	})

	t.Run("population stdev", func(t *testing.T) {
		// times 1, 2, 3: mean 2, variance 14/3 - 4 = 2/3
		e := TimeStatsEvaluator(&store.TimeStats{Count: 3, Sum: 6, SumSquares: 14})
		if math.Abs(e.Mean-2) > 1e-9 {
			t.Errorf("Mean = %v, want 2", e.Mean)
		}
		want := math.Sqrt(2.0 / 3.0)
		if math.Abs(e.Stdev-want) > 1e-9 {
			t.Errorf("Stdev = %v, want %v", e.Stdev, want)
		}
	})

	t.Run("negative variance clamps to zero", func(t *testing.T) {
		e := TimeStatsEvaluator(&store.TimeStats{Count: 2, Sum: 4, SumSquares: 7.9999999})
		if e.Stdev != 0 {
			t.Errorf("Stdev = %v, want 0", e.Stdev)
		}
	})
}
