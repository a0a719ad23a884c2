package problemgen

import (
	"errors"
	"testing"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"56", 56},
		{" 56 ", 56},
		{"+56", 56},
		{"007", 7},
		{"1,024", 1024},
		{"9 801", 9801},
		{"-3", -3},
	}
	for _, tt := range tests {
		got, err := ParseAnswer(tt.in)
		if err != nil {
			t.Errorf("ParseAnswer(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAnswer(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseAnswer_Invalid(t *testing.T) {
	if _, err := ParseAnswer("   "); !errors.Is(err, ErrEmptyAnswer) {
		t.Errorf("blank input error = %v, want ErrEmptyAnswer", err)
	}

	for _, in := range []string{"abc", "5.5", "1/2", "12a"} {
		_, err := ParseAnswer(in)
		var ae *AnswerError
		if !errors.As(err, &ae) {
			t.Errorf("ParseAnswer(%q) error = %v, want *AnswerError", in, err)
		}
	}
}
