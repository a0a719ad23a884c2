package spacedrep

import (
	"errors"
	"fmt"
)

// Grade is the SM-2 recall quality, 0 (blackout) to 5 (perfect).
type Grade int

const (
	GradeBlackout      Grade = 0 // no recall
	GradeIncorrect     Grade = 1 // wrong, answer recognized once shown
	GradeIncorrectEasy Grade = 2 // wrong, but close
	GradeHard          Grade = 3 // correct with serious difficulty
	GradeGood          Grade = 4 // correct after hesitation
	GradePerfect       Grade = 5 // correct and fast
)

// PassingGrade is the lowest grade that counts as a successful recall.
const PassingGrade = GradeHard

// ErrGradeOutOfRange matches any *GradeError.
var ErrGradeOutOfRange = errors.New("grade out of range")

// GradeError reports a grade outside 0-5.
type GradeError struct {
	Grade Grade
}

func (e *GradeError) Error() string {
	return fmt.Sprintf("grade %d out of range 0-5", int(e.Grade))
}

func (e *GradeError) Is(target error) bool { return target == ErrGradeOutOfRange }

// Valid reports whether g is within 0-5.
func (g Grade) Valid() bool {
	return g >= GradeBlackout && g <= GradePerfect
}

// Passed reports whether g is in the success band.
func (g Grade) Passed() bool {
	return g >= PassingGrade
}

func (g Grade) String() string {
	switch g {
	case GradeBlackout:
		return "blackout"
	case GradeIncorrect:
		return "incorrect"
	case GradeIncorrectEasy:
		return "incorrect-easy"
	case GradeHard:
		return "hard"
	case GradeGood:
		return "good"
	case GradePerfect:
		return "perfect"
	default:
		return fmt.Sprintf("grade(%d)", int(g))
	}
}
