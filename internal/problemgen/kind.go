package problemgen

import (
	"fmt"
	"strings"
)

// Kind is the arithmetic operation a problem exercises. The string values
// are what the store persists.
type Kind string

const (
	KindAdd      Kind = "ADD"
	KindMultiply Kind = "MULTIPLY"
)

// Kinds returns every supported kind in display order.
func Kinds() []Kind {
	return []Kind{KindAdd, KindMultiply}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindAdd || k == KindMultiply
}

// Symbol returns the operator shown to the learner.
func (k Kind) Symbol() string {
	switch k {
	case KindAdd:
		return "+"
	case KindMultiply:
		return "×"
	default:
		return "?"
	}
}

// DisplayName returns a human-friendly name.
func (k Kind) DisplayName() string {
	switch k {
	case KindAdd:
		return "Addition"
	case KindMultiply:
		return "Multiplication"
	default:
		return string(k)
	}
}

// Apply computes the result of the operation.
func (k Kind) Apply(a, b int) int {
	switch k {
	case KindAdd:
		return a + b
	case KindMultiply:
		return a * b
	default:
		panic(fmt.Sprintf("problemgen: unknown kind %q", string(k)))
	}
}

// KindError is returned by ParseKind for unrecognized input.
type KindError struct {
	Input string
}

func (e *KindError) Error() string {
	return fmt.Sprintf("unknown operation kind %q (want add or multiply)", e.Input)
}

// ParseKind accepts the persisted names, short names and operator symbols.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "addition", "plus", "+":
		return KindAdd, nil
	case "multiply", "multiplication", "mul", "times", "x", "*", "×":
		return KindMultiply, nil
	}
	return "", &KindError{Input: s}
}
