package drill

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/summary"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
)

// maxAnswerDigits fits the largest product of two operands (99 × 99).
const maxAnswerDigits = 5

// DrillScreen runs one deck: it shows each question, times it, and submits
// the answer to the orchestrator.
type DrillScreen struct {
	deps  screen.Deps
	kind  problemgen.Kind
	sess  *session.Session
	input components.AnswerInput
	watch session.Stopwatch

	// last is the result being shown as feedback, nil while answering.
	last        *session.Result
	hint        string
	quitConfirm bool
	errMsg      string

	gen      int
	tickedAt time.Time
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)

// New creates a DrillScreen for a deck of kind.
func New(deps screen.Deps, kind problemgen.Kind) *DrillScreen {
	return &DrillScreen{
		deps:  deps,
		kind:  kind,
		input: components.NewAnswerInput("Type your answer...", maxAnswerDigits),
	}
}

func (s *DrillScreen) Init() tea.Cmd {
	orch := s.deps.Orchestrator
	kind := s.kind
	return func() tea.Msg {
		sess, err := orch.Start(context.Background(), kind)
		return deckStartedMsg{Session: sess, Err: err}
	}
}

func (s *DrillScreen) Title() string {
	return s.kind.DisplayName() + " Drill"
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.sess == nil:
		return nil
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon deck"},
			{Key: "N", Description: "Keep going"},
		}
	case s.last != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deckStartedMsg:
		if msg.Err != nil {
			s.deps.Log().Error("start deck", zap.String("kind", string(s.kind)), zap.Error(msg.Err))
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.sess = msg.Session
		return s, s.nextQuestion()

	case tickMsg:
		if msg.Gen != s.gen || !s.answering() {
			return s, nil
		}
		s.tickedAt = s.deps.Now()
		return s, s.tick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.answering() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// answering reports whether a question is on screen awaiting input.
func (s *DrillScreen) answering() bool {
	return s.sess != nil && s.errMsg == "" && !s.quitConfirm && s.last == nil &&
		s.watch.Running() && s.sess.Phase == session.PhaseInProgress
}

// nextQuestion resets the input and starts timing the current slot.
func (s *DrillScreen) nextQuestion() tea.Cmd {
	s.last = nil
	s.hint = ""
	s.input.Reset()
	s.gen++
	s.tickedAt = s.deps.Now()
	s.watch.Begin(s.tickedAt)
	return tea.Batch(s.input.Init(), s.tick())
}

func (s *DrillScreen) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{Gen: gen, At: t}
	})
}

func (s *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.sess == nil {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			return s.abandon()
		case "n", "N", "esc":
			s.quitConfirm = false
			s.tickedAt = s.deps.Now()
			s.watch.Resume(s.tickedAt)
			s.gen++
			return s, s.tick()
		}
		return s, nil
	}

	// Feedback: any key moves on.
	if s.last != nil {
		if s.sess.Phase == session.PhaseCompleted {
			next := summary.New(s.deps, s.sess)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
		return s, s.nextQuestion()
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		s.watch.Pause(s.deps.Now())
		return s, nil
	case "enter":
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.hint = ""
	return s, cmd
}

// submit grades the typed answer. The elapsed time runs from when the
// question was shown, minus any time spent in the quit dialog.
func (s *DrillScreen) submit() (screen.Screen, tea.Cmd) {
	value, err := problemgen.ParseAnswer(s.input.Value())
	if err != nil {
		s.hint = "Enter a whole number"
		return s, nil
	}
	_, idx := s.sess.Current()
	if idx < 0 {
		return s, nil
	}

	elapsed, _ := s.watch.End(s.deps.Now())
	res, err := s.deps.Orchestrator.Submit(context.Background(), s.sess, idx, value, elapsed.Seconds())
	if err != nil {
		s.deps.Log().Error("submit answer",
			zap.String("session_id", s.sess.ID),
			zap.Int("deck_id", s.sess.DeckID),
			zap.Int("slot", idx),
			zap.Error(err))
		s.errMsg = err.Error()
		return s, nil
	}

	s.last = res
	s.input.Mark(res.Correct)
	return s, nil
}

func (s *DrillScreen) abandon() (screen.Screen, tea.Cmd) {
	s.quitConfirm = false
	if err := s.deps.Orchestrator.Abandon(context.Background(), s.sess); err != nil {
		s.deps.Log().Error("abandon deck", zap.Int("deck_id", s.sess.DeckID), zap.Error(err))
		s.errMsg = err.Error()
		return s, nil
	}
	return s, func() tea.Msg { return router.PopScreenMsg{} }
}
