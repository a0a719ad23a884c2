package problemgen

import (
	"errors"
	"strconv"
	"strings"
)

// ErrEmptyAnswer is returned when the learner submits nothing.
var ErrEmptyAnswer = errors.New("empty answer")

// ParseAnswer converts learner input to an integer.
//
// Normalization rules:
// - Whitespace is trimmed
// - A leading "+" is allowed
// - Leading zeros are ignored ("007" is 7)
// - Digit group separators ("1,024" or "1 024") are ignored
func ParseAnswer(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrEmptyAnswer
	}
	s = strings.TrimPrefix(s, "+")
	s = strings.NewReplacer(",", "", " ", "", "_", "").Replace(s)

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &AnswerError{Input: input}
	}
	return n, nil
}

// AnswerError reports input that is not a whole number.
type AnswerError struct {
	Input string
}

func (e *AnswerError) Error() string {
	return "not a whole number: " + strconv.Quote(e.Input)
}
