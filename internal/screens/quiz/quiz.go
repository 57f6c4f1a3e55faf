// Package quiz is the interactive quiz screen. It renders the session
// controller's state and turns its outcomes into commands.
package quiz

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordquiz/internal/audio"
	"github.com/abhisek/wordquiz/internal/feedback"
	"github.com/abhisek/wordquiz/internal/mode"
	"github.com/abhisek/wordquiz/internal/practice"
	"github.com/abhisek/wordquiz/internal/router"
	"github.com/abhisek/wordquiz/internal/screen"
	"github.com/abhisek/wordquiz/internal/session"
	"github.com/abhisek/wordquiz/internal/store"
	"github.com/abhisek/wordquiz/internal/ui/components"
	"github.com/abhisek/wordquiz/internal/ui/layout"
	"github.com/abhisek/wordquiz/internal/ui/theme"
)

const (
	defaultTimeout = 10 * time.Second
	journalTimeout = 2 * time.Second
	audioTimeout   = 15 * time.Second
	coachTimeout   = 60 * time.Second
	inputWidth     = 40
)

// WordEditor removes words from the learner's word list.
type WordEditor interface {
	DeleteWord(ctx context.Context, word string) (string, error)
}

// Deps are the collaborators of the quiz screen. Editor, Coach and Journal
// are optional.
type Deps struct {
	Backend session.Backend
	Editor  WordEditor
	Player  audio.Player
	Coach   practice.Coach
	Journal store.EventRepo

	// RunID groups the journal events of one program run.
	RunID string

	Options session.Options

	// Mode is the mode selected once the session is established.
	Mode mode.Mode

	// Timeout bounds every backend request.
	Timeout time.Duration

	Logger *slog.Logger
}

type dialogKind int

const (
	dialogNotice dialogKind = iota
	dialogDecision
	dialogQuit
	dialogDelete
)

// QuizScreen implements screen.Screen for a quiz session.
type QuizScreen struct {
	deps    Deps
	ctrl    *session.Controller
	logger  *slog.Logger
	input   components.TextInput
	spinner spinner.Model

	busy      bool
	started   bool
	startMode mode.Mode
	fatal     error

	status    string
	feedback  *feedback.Feedback
	hint      string
	practice  string
	pronounce string

	dialog          *components.Dialog
	dialogKind      dialogKind
	pendingReinit   bool
	pendingDecision *session.Decision
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a quiz screen. The session is established by Init.
func New(deps Deps) *QuizScreen {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Options.Logger == nil {
		deps.Options.Logger = logger
	}
	if deps.Player == nil {
		deps.Player = audio.Noop{}
	}
	if deps.Timeout <= 0 {
		deps.Timeout = defaultTimeout
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = sp.Style.Foreground(theme.Accent)

	return &QuizScreen{
		deps:      deps,
		ctrl:      session.NewController(deps.Options),
		logger:    logger,
		input:     components.NewTextInput(mode.Words.Spec().Placeholder, inputWidth),
		spinner:   sp,
		startMode: deps.Mode,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(
		s.run(s.ctrl.Init()),
		s.input.Init(),
	)
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// CapturesEscape reports that Esc is handled by the screen itself.
func (s *QuizScreen) CapturesEscape() bool { return true }

// Session returns a snapshot of the session state.
func (s *QuizScreen) Session() session.Session {
	return s.ctrl.Session()
}

func (s *QuizScreen) HeaderStatus() layout.HeaderStatus {
	sess := s.ctrl.Session()
	st := layout.HeaderStatus{
		Mode:        sess.Mode.Label(),
		Accuracy:    sess.Accuracy,
		HasAccuracy: sess.HasAccuracy,
	}
	if len(sess.Set) > 0 {
		st.Progress = "Word " + s.ctrl.Stats().WordLabel
	}
	return st
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.fatal != nil {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.dialog != nil {
		switch s.dialogKind {
		case dialogNotice:
			return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
		case dialogDecision:
			return []layout.KeyHint{
				{Key: "Y", Description: "Review"},
				{Key: "N", Description: "Skip"},
			}
		default:
			return []layout.KeyHint{
				{Key: "Y", Description: "Yes"},
				{Key: "N", Description: "No"},
			}
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "^N/^B", Description: "Next/Back"},
		{Key: "Tab", Description: "Mode"},
	}
	if s.ctrl.Session().Mode.Spec().Verdict {
		hints = append(hints,
			layout.KeyHint{Key: "^T", Description: "Hint"},
			layout.KeyHint{Key: "^P", Description: "Say"},
			layout.KeyHint{Key: "^G", Description: "Next group"},
		)
	} else {
		hints = append(hints, layout.KeyHint{Key: "^Y", Description: "Examples"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case opResultMsg:
		return s, s.handleResult(msg.Result)

	case autoAdvanceMsg:
		op, err := s.ctrl.AutoAdvance(msg.Token)
		if err != nil {
			return s, nil
		}
		return s, s.run(op)

	case audioDoneMsg:
		if msg.Err != nil && s.isCurrent(msg.Word) {
			s.pronounce = audio.FallbackText(msg.Word)
		}
		return s, nil

	case practiceMsg:
		if !s.isCurrent(msg.Word) {
			return s, nil
		}
		if msg.Err != nil {
			s.status = "AI practice failed: " + msg.Err.Error()
			return s, nil
		}
		s.practice = msg.Text
		return s, nil

	case deleteWordMsg:
		return s, s.handleDeleted(msg)

	case spinner.TickMsg:
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Halted session: retry or leave.
	if s.fatal != nil {
		switch key {
		case "r", "R":
			s.fatal = nil
			return s, s.run(s.ctrl.Init())
		case "esc", "q":
			return s, popScreen
		}
		return s, nil
	}

	if s.dialog != nil {
		return s, s.handleDialogKey(msg)
	}

	switch key {
	case "esc":
		s.openDialog(dialogQuit, components.NewDialog("Quit", "End this session?",
			components.Button{Label: "Yes", Key: "y"},
			components.Button{Label: "No", Key: "n"}))
		return s, nil
	case "enter":
		return s, s.submit()
	case "ctrl+n":
		return s, s.advance()
	case "ctrl+b":
		if s.ctrl.GoBack() {
			s.busy = false
			s.clearWord()
		}
		return s, nil
	case "tab":
		return s, s.switchMode(s.ctrl.Session().Mode.Next())
	case "shift+tab":
		return s, s.switchMode(s.ctrl.Session().Mode.Prev())
	case "ctrl+p":
		return s, s.pronounceCurrent()
	case "ctrl+t":
		s.showHint()
		return s, nil
	case "ctrl+r":
		op, err := s.ctrl.RepeatGroup()
		return s, s.runOrReport(op, err)
	case "ctrl+g":
		op, err := s.ctrl.NextGroup()
		return s, s.runOrReport(op, err)
	case "ctrl+o":
		cat := s.ctrl.CycleCategory()
		if cat == "" {
			cat = "all words"
		}
		s.status = "Next group category: " + cat
		return s, nil
	case "ctrl+x":
		s.confirmDelete()
		return s, nil
	case "ctrl+y":
		return s, s.generateSentences()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	d, _ := s.dialog.Update(msg)
	if !d.Done() {
		s.dialog = &d
		return nil
	}
	s.dialog = nil
	yes := d.Chosen() == 0

	switch s.dialogKind {
	case dialogNotice:
		if dec := s.pendingDecision; dec != nil {
			s.pendingDecision = nil
			s.openDecision(dec)
			return nil
		}
		if s.pendingReinit {
			s.pendingReinit = false
			return s.run(s.ctrl.Init())
		}

	case dialogDecision:
		choice := session.ChoiceSkipReview
		if yes {
			choice = session.ChoiceStartReview
		}
		op, err := s.ctrl.Decide(choice)
		return s.runOrReport(op, err)

	case dialogQuit:
		if yes {
			sess := s.ctrl.Session()
			return tea.Batch(
				s.journalSession(sess, store.ActionComplete, "quit"),
				popScreen,
			)
		}

	case dialogDelete:
		if yes {
			return s.deleteCurrent()
		}
	}
	return nil
}

// submit checks the typed answer. In modes without a verdict the input is a
// practice sentence reviewed by the coach.
func (s *QuizScreen) submit() tea.Cmd {
	if !s.ctrl.Session().Mode.Spec().Verdict {
		return s.reviewSentence()
	}
	op, err := s.ctrl.Submit(s.input.Value())
	return s.runOrReport(op, err)
}

func (s *QuizScreen) advance() tea.Cmd {
	op, err := s.ctrl.Advance()
	if err != nil {
		s.report(err)
		return nil
	}
	if op == nil {
		s.busy = false
		s.clearWord()
		return nil
	}
	return s.run(op)
}

func (s *QuizScreen) switchMode(m mode.Mode) tea.Cmd {
	op, err := s.ctrl.SwitchMode(m)
	if err != nil {
		s.report(err)
		return nil
	}
	if op != nil {
		return s.run(op)
	}
	// Local switch, no request.
	s.busy = false
	s.clearWord()
	s.status = ""
	return s.journalSession(s.ctrl.Session(), store.ActionModeSwitch, string(m))
}

func (s *QuizScreen) runOrReport(op *session.Op, err error) tea.Cmd {
	if err != nil {
		s.report(err)
		return nil
	}
	return s.run(op)
}

// report shows a local validation failure in the status line.
func (s *QuizScreen) report(err error) {
	switch {
	case errors.Is(err, session.ErrEmptyInput):
		s.status = "Type an answer first."
	case errors.Is(err, session.ErrNoVerdict):
		s.status = "Not available in " + s.ctrl.Session().Mode.Label() + " mode."
	case errors.Is(err, session.ErrNoWord):
		s.status = "No word loaded."
	case errors.Is(err, session.ErrNotReady):
		s.status = "Still loading..."
	default:
		s.status = err.Error()
	}
}

// run executes op in the background and feeds the result back to Update.
func (s *QuizScreen) run(op *session.Op) tea.Cmd {
	if op == nil {
		return nil
	}
	s.busy = true
	backend, timeout := s.deps.Backend, s.deps.Timeout
	return tea.Batch(
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return opResultMsg{Result: op.Run(ctx, backend)}
		},
		s.spinner.Tick,
	)
}

func (s *QuizScreen) handleResult(r session.Result) tea.Cmd {
	out := s.ctrl.Apply(r)
	if out.Stale {
		return nil
	}
	s.busy = false
	op := r.Op
	sess := s.ctrl.Session()

	if out.Fatal != nil {
		s.fatal = out.Fatal
		s.dialog = nil
		return s.journalSession(sess, store.ActionError, out.Fatal.Error())
	}

	var cmds []tea.Cmd

	if out.Changed && out.Feedback == nil {
		s.clearWord()
	}
	if out.Feedback != nil {
		s.feedback = out.Feedback
		s.hint = ""
		s.input.Mark(out.Feedback.Correct)
	}
	if out.Status != "" {
		s.status = out.Status
	}
	if out.Warning != nil {
		s.status = "The server sent a response this client does not understand."
	}

	if out.Answer != nil {
		cmds = append(cmds, s.journalAnswer(sess, out.Answer))
	}
	if out.Pronounce != "" {
		cmds = append(cmds, s.play(out.Pronounce))
	}

	if out.Err == nil && out.Changed {
		cmds = append(cmds, s.journalOp(sess, op))
	}

	switch {
	case out.Err != nil:
		s.pendingDecision = out.Decision
		s.openDialog(dialogNotice, components.NewNotice("Something went wrong", out.Err.Error()))
	case out.Decision != nil:
		s.openDecision(out.Decision)
	case out.Notice != "":
		s.pendingReinit = out.Reinit
		s.openDialog(dialogNotice, components.NewNotice("", out.Notice))
		if out.Reinit {
			cmds = append(cmds, s.journalSession(sess, store.ActionComplete, out.Notice))
		}
	case out.Reinit:
		cmds = append(cmds, s.run(s.ctrl.Init()))
	}

	next := out.Next
	if op.Kind == session.OpInit && !s.started {
		s.started = true
		if s.startMode != "" && s.startMode != mode.Words && next == nil {
			if sw, err := s.ctrl.SwitchMode(s.startMode); err == nil && sw != nil {
				next = sw
			} else if err == nil {
				s.clearWord()
			}
		}
	}
	if next != nil {
		cmds = append(cmds, s.run(next))
	}

	if out.AdvanceAfter > 0 {
		token := out.AdvanceToken
		cmds = append(cmds, tea.Tick(out.AdvanceAfter, func(time.Time) tea.Msg {
			return autoAdvanceMsg{Token: token}
		}))
	}

	return tea.Batch(cmds...)
}

func (s *QuizScreen) openDialog(kind dialogKind, d components.Dialog) {
	s.dialogKind = kind
	s.dialog = &d
}

func (s *QuizScreen) openDecision(dec *session.Decision) {
	s.openDialog(dialogDecision, components.NewDialog("Review", dec.Message,
		components.Button{Label: "Start review", Key: "y"},
		components.Button{Label: "Skip", Key: "n"}))
}

// clearWord resets everything shown for the previous word.
func (s *QuizScreen) clearWord() {
	s.feedback = nil
	s.hint = ""
	s.practice = ""
	s.pronounce = ""
	s.input.Reset()
	s.input.SetPlaceholder(s.ctrl.Session().Mode.Spec().Placeholder)
}

func (s *QuizScreen) isCurrent(word string) bool {
	w, ok := s.ctrl.Current()
	return ok && w.Word == word
}

func (s *QuizScreen) showHint() {
	w, ok := s.ctrl.Current()
	if !ok {
		s.report(session.ErrNoWord)
		return
	}
	hint := "Starts with \"" + w.FirstLetter() + "\""
	if w.Example != "" {
		hint = feedback.Emphasize(w.Example, w.Word).Masked() + "\n" + hint
	}
	s.hint = hint
}

func (s *QuizScreen) pronounceCurrent() tea.Cmd {
	w, ok := s.ctrl.Current()
	if !ok {
		s.report(session.ErrNoWord)
		return nil
	}
	return s.play(w.Word)
}

func (s *QuizScreen) play(word string) tea.Cmd {
	player := s.deps.Player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), audioTimeout)
		defer cancel()
		return audioDoneMsg{Word: word, Err: player.Play(ctx, word)}
	}
}

func (s *QuizScreen) generateSentences() tea.Cmd {
	if s.deps.Coach == nil {
		s.status = "AI practice is not configured."
		return nil
	}
	w, ok := s.ctrl.Current()
	if !ok {
		s.report(session.ErrNoWord)
		return nil
	}
	s.status = "Generating examples..."
	coach := s.deps.Coach
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), coachTimeout)
		defer cancel()
		text, err := coach.Sentences(ctx, w)
		return practiceMsg{Word: w.Word, Text: text, Err: err}
	}
}

func (s *QuizScreen) reviewSentence() tea.Cmd {
	if s.deps.Coach == nil {
		s.status = "AI practice is not configured."
		return nil
	}
	w, ok := s.ctrl.Current()
	if !ok {
		s.report(session.ErrNoWord)
		return nil
	}
	sentence := s.input.Value()
	if strings.TrimSpace(sentence) == "" {
		s.report(session.ErrEmptyInput)
		return nil
	}
	s.status = "Checking your sentence..."
	coach := s.deps.Coach
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), coachTimeout)
		defer cancel()
		text, err := coach.Review(ctx, w, sentence)
		return practiceMsg{Word: w.Word, Text: text, Err: err}
	}
}

func (s *QuizScreen) confirmDelete() {
	if s.deps.Editor == nil {
		s.status = "Deleting words is not available."
		return
	}
	w, ok := s.ctrl.Current()
	if !ok {
		s.report(session.ErrNoWord)
		return
	}
	s.openDialog(dialogDelete, components.NewDialog("Delete word",
		"Remove \""+w.Word+"\" from your word list?",
		components.Button{Label: "Delete", Key: "y"},
		components.Button{Label: "Cancel", Key: "n"}))
}

func (s *QuizScreen) deleteCurrent() tea.Cmd {
	w, ok := s.ctrl.Current()
	if !ok {
		return nil
	}
	editor, timeout := s.deps.Editor, s.deps.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		msg, err := editor.DeleteWord(ctx, w.Word)
		return deleteWordMsg{Word: w.Word, Message: msg, Err: err}
	}
}

func (s *QuizScreen) handleDeleted(msg deleteWordMsg) tea.Cmd {
	if msg.Err != nil {
		s.openDialog(dialogNotice, components.NewNotice("Something went wrong", "delete word failed: "+msg.Err.Error()))
		return nil
	}
	s.status = msg.Message
	if s.status == "" {
		s.status = "Deleted \"" + msg.Word + "\"."
	}
	if !s.isCurrent(msg.Word) {
		return nil
	}
	return s.advance()
}

func popScreen() tea.Msg { return router.PopScreenMsg{} }
