package problemgen

import (
	"fmt"
	"math/rand"
	"time"
)

// Operand bounds: one or two decimal digits.
const (
	MinOperand = 1
	MaxOperand = 99
)

// Problem is a freshly generated, not yet persisted arithmetic problem.
type Problem struct {
	Kind     Kind
	Operand1 int
	Operand2 int
	Result   int
}

// String renders the prompt, e.g. "7 × 8".
func (p Problem) String() string {
	return fmt.Sprintf("%d %s %d", p.Operand1, p.Kind.Symbol(), p.Operand2)
}

// Generator produces random problems. It is not safe for concurrent use;
// the drill loop is single-threaded.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator drawing from src. A nil src seeds from the
// current time.
func New(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(src)}
}

// Generate returns one problem of the given kind with both operands drawn
// uniformly from [MinOperand, MaxOperand].
func (g *Generator) Generate(kind Kind) Problem {
	a := g.operand()
	b := g.operand()
	return Problem{
		Kind:     kind,
		Operand1: a,
		Operand2: b,
		Result:   kind.Apply(a, b),
	}
}

// GenerateBlock returns n fresh problems of the given kind.
func (g *Generator) GenerateBlock(n int, kind Kind) []Problem {
	if n <= 0 {
		return []Problem{}
	}
	out := make([]Problem, n)
	for i := range out {
		out[i] = g.Generate(kind)
	}
	return out
}

func (g *Generator) operand() int {
	return MinOperand + g.rng.Intn(MaxOperand-MinOperand+1)
}
