package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput for whole-number answers.
type AnswerInput struct {
	Model     textinput.Model
	MaxDigits int
	marked    bool
	correct   bool
}

// NewAnswerInput creates a focused input accepting at most maxDigits digits.
func NewAnswerInput(placeholder string, maxDigits int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxDigits > 0 {
		ti.CharLimit = maxDigits
	}

	return AnswerInput{
		Model:     ti,
		MaxDigits: maxDigits,
	}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages. Printable keys other than digits are dropped.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.marked {
		return a, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the input, followed by a check or cross once marked.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.marked {
		if a.correct {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Mark freezes the input and records whether the answer was correct.
func (a *AnswerInput) Mark(correct bool) {
	a.marked = true
	a.correct = correct
}

// Reset clears the value and the mark for the next question.
func (a *AnswerInput) Reset() {
	a.Model.SetValue("")
	a.marked = false
	a.correct = false
}
