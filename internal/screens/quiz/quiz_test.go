package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordquiz/internal/api"
	"github.com/abhisek/wordquiz/internal/audio"
	"github.com/abhisek/wordquiz/internal/mode"
	"github.com/abhisek/wordquiz/internal/router"
	"github.com/abhisek/wordquiz/internal/session"
	"github.com/abhisek/wordquiz/internal/store"
	"github.com/abhisek/wordquiz/internal/words"
)

// mockBackend serves a fixed set and records calls.
type mockBackend struct {
	mu    sync.Mutex
	calls []string

	initErr     error
	set         words.Set
	transitions []*api.Transition
	nextErr     error
}

func newMockBackend(n int) *mockBackend {
	set := make(words.Set, n)
	for i := range set {
		set[i] = words.Word{
			Word:    fmt.Sprintf("w%d", i),
			Meaning: fmt.Sprintf("meaning %d", i),
			Example: fmt.Sprintf("I like w%d a lot.", i),
		}
	}
	return &mockBackend{set: set}
}

func (m *mockBackend) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockBackend) called(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *mockBackend) Init(context.Context) (*api.InitResponse, error) {
	m.record("init")
	if m.initErr != nil {
		return nil, m.initErr
	}
	return &api.InitResponse{SessionID: "s1", CurrentSet: m.set, TotalWordsCount: 40}, nil
}

func (m *mockBackend) CheckAnswer(_ context.Context, _ api.SessionID, input string, w words.Word, _ string) (*api.Verdict, error) {
	m.record("check-answer")
	return &api.Verdict{IsCorrect: input == w.Word, Accuracy: 75}, nil
}

func (m *mockBackend) NextWord(_ context.Context, _ api.SessionID, index int) (*api.Transition, error) {
	m.record("next-word")
	if m.nextErr != nil {
		return nil, m.nextErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.transitions) > 0 {
		tr := m.transitions[0]
		m.transitions = m.transitions[1:]
		return tr, nil
	}
	next := index + 1
	return &api.Transition{Action: api.ActionNextWord, Index: &next}, nil
}

func (m *mockBackend) LoadSheet(_ context.Context, endpoint string, _ api.SessionID) (*api.SheetResponse, error) {
	m.record(endpoint)
	set := words.Set{{Word: "go", Meaning: "가다", PastTense: "went"}, {Word: "eat", Meaning: "먹다", PastTense: "ate"}}
	return &api.SheetResponse{CurrentSet: set}, nil
}

func (m *mockBackend) NextGroup(context.Context, api.SessionID, string, string) (*api.GroupResponse, error) {
	m.record("next-nine-words")
	return &api.GroupResponse{CurrentSet: words.Set{{Word: "new", Meaning: "새로운"}}}, nil
}

func (m *mockBackend) RepeatGroup(context.Context, api.SessionID) (*api.GroupResponse, error) {
	m.record("repeat-nine-words")
	return &api.GroupResponse{CurrentSet: m.set}, nil
}

func (m *mockBackend) StartReview(context.Context, api.SessionID, string) (*api.Transition, error) {
	m.record("start_review")
	return &api.Transition{CurrentSet: words.Set{{Word: "w1", Meaning: "meaning 1"}}}, nil
}

func (m *mockBackend) SkipReview(context.Context, api.SessionID, string) (*api.Transition, error) {
	m.record("skip_review")
	return &api.Transition{CurrentSet: m.set}, nil
}

// mockJournal records appended events. Queries are not used by the screen.
type mockJournal struct {
	store.EventRepo

	mu       sync.Mutex
	answers  []store.AnswerEventData
	sessions []store.SessionEventData
}

func (m *mockJournal) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, data)
	return nil
}

func (m *mockJournal) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, data)
	return nil
}

func (m *mockJournal) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.sessions {
		out = append(out, e.Action)
	}
	return out
}

type mockCoach struct {
	reviewed []string
}

func (c *mockCoach) Sentences(_ context.Context, w words.Word) (string, error) {
	return "1. Sentence with " + w.Word, nil
}

func (c *mockCoach) Review(_ context.Context, w words.Word, sentence string) (string, error) {
	c.reviewed = append(c.reviewed, sentence)
	return "Nice sentence!", nil
}

type mockEditor struct {
	deleted []string
}

func (e *mockEditor) DeleteWord(_ context.Context, word string) (string, error) {
	e.deleted = append(e.deleted, word)
	return "Word deleted.", nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// exec runs cmd, giving up on commands that wait, such as cursor blinks.
func exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

// drain runs cmd and every command it produces, feeding messages back to
// the screen. Spinner ticks are dropped. Messages that are not consumed by
// the screen are returned.
func drain(t *testing.T, s *QuizScreen, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var other []tea.Msg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("command loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := exec(c).(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case router.PopScreenMsg:
			other = append(other, msg)
		default:
			_, next := s.Update(msg)
			queue = append(queue, next)
		}
	}
	return other
}

func send(t *testing.T, s *QuizScreen, msg tea.Msg) []tea.Msg {
	t.Helper()
	_, cmd := s.Update(msg)
	return drain(t, s, cmd)
}

// typeText types into the answer input. Cursor blink commands are dropped.
func typeText(t *testing.T, s *QuizScreen, text string) {
	t.Helper()
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

type fixture struct {
	screen  *QuizScreen
	backend *mockBackend
	journal *mockJournal
	player  *audio.Recorder
	coach   *mockCoach
	editor  *mockEditor
}

func newFixture(t *testing.T, configure func(*Deps)) *fixture {
	t.Helper()
	f := &fixture{
		backend: newMockBackend(3),
		journal: &mockJournal{},
		player:  &audio.Recorder{},
		coach:   &mockCoach{},
		editor:  &mockEditor{},
	}
	deps := Deps{
		Backend: f.backend,
		Editor:  f.editor,
		Player:  f.player,
		Coach:   f.coach,
		Journal: f.journal,
		RunID:   "run-1",
	}
	if configure != nil {
		configure(&deps)
	}
	f.screen = New(deps)
	drain(t, f.screen, f.screen.Init())
	return f
}

func TestQuizScreen_Title(t *testing.T) {
	s := New(Deps{Backend: newMockBackend(1)})
	if s.Title() != "Quiz" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz")
	}
}

func TestQuizScreen_InitLoadsFirstWord(t *testing.T) {
	f := newFixture(t, nil)

	sess := f.screen.Session()
	if sess.ID != "s1" || len(sess.Set) != 3 || sess.Cursor.Index != 0 {
		t.Fatalf("session = %+v", sess)
	}
	view := f.screen.View(100, 30)
	if !strings.Contains(view, "meaning 0") {
		t.Errorf("view does not show the prompt:\n%s", view)
	}
	if got := f.journal.actions(); len(got) != 1 || got[0] != store.ActionStart {
		t.Errorf("journal actions = %v, want [start]", got)
	}
}

func TestQuizScreen_LoadingView(t *testing.T) {
	s := New(Deps{Backend: newMockBackend(1)})
	if !strings.Contains(s.View(80, 24), "Starting your session") {
		t.Error("expected loading view before init")
	}
}

func TestQuizScreen_EmptyAnswerIsLocal(t *testing.T) {
	f := newFixture(t, nil)

	send(t, f.screen, specialKey(tea.KeyEnter))

	if n := f.backend.called("check-answer"); n != 0 {
		t.Errorf("check-answer calls = %d, want 0", n)
	}
	if f.screen.status != "Type an answer first." {
		t.Errorf("status = %q", f.screen.status)
	}
}

func TestQuizScreen_CorrectAnswer(t *testing.T) {
	f := newFixture(t, nil)

	typeText(t, f.screen, "w0")
	send(t, f.screen, specialKey(tea.KeyEnter))

	if f.screen.feedback == nil || !f.screen.feedback.Correct {
		t.Fatalf("feedback = %+v, want correct", f.screen.feedback)
	}
	if !f.screen.Session().AwaitingAdvance {
		t.Error("expected session to await advance")
	}
	if got := f.player.Words(); len(got) != 1 || got[0] != "w0" {
		t.Errorf("played = %v, want [w0]", got)
	}
	if len(f.journal.answers) != 1 || !f.journal.answers[0].Correct || f.journal.answers[0].RunID != "run-1" {
		t.Errorf("journal answers = %+v", f.journal.answers)
	}
	if st := f.screen.HeaderStatus(); !st.HasAccuracy || st.Accuracy != 75 {
		t.Errorf("header status = %+v", st)
	}

	view := f.screen.View(100, 30)
	if !strings.Contains(view, "Correct!") {
		t.Errorf("view missing verdict:\n%s", view)
	}
	if !strings.Contains(view, "translate.google.com") {
		t.Error("view missing translate link")
	}

	// Enter again advances.
	send(t, f.screen, specialKey(tea.KeyEnter))
	if idx := f.screen.Session().Cursor.Index; idx != 1 {
		t.Errorf("index = %d, want 1", idx)
	}
	if f.screen.feedback != nil {
		t.Error("feedback should be cleared for the next word")
	}
}

func TestQuizScreen_IncorrectAnswerStays(t *testing.T) {
	f := newFixture(t, nil)

	typeText(t, f.screen, "nope")
	send(t, f.screen, specialKey(tea.KeyEnter))

	if f.screen.feedback == nil || f.screen.feedback.Correct {
		t.Fatalf("feedback = %+v, want incorrect", f.screen.feedback)
	}
	if f.screen.Session().Cursor.Index != 0 {
		t.Error("incorrect answer must not advance")
	}
	if !strings.Contains(f.screen.View(100, 30), "Not quite.") {
		t.Error("view missing incorrect verdict")
	}
}

func TestQuizScreen_AutoAdvance(t *testing.T) {
	f := newFixture(t, func(d *Deps) { d.Options.AutoAdvance = time.Millisecond })

	typeText(t, f.screen, "w0")
	send(t, f.screen, specialKey(tea.KeyEnter))

	if idx := f.screen.Session().Cursor.Index; idx != 1 {
		t.Errorf("index = %d, want 1 after auto advance", idx)
	}
	if n := f.backend.called("next-word"); n != 1 {
		t.Errorf("next-word calls = %d, want 1", n)
	}
}

func TestQuizScreen_StaleResultIgnored(t *testing.T) {
	f := newFixture(t, nil)
	s := f.screen

	// Issue a check, then an advance before the check returns.
	s.input.SetValue("w0")
	_, checkCmd := s.Update(specialKey(tea.KeyEnter))
	_, advanceCmd := s.Update(ctrlKey('n'))

	drain(t, s, advanceCmd)
	drain(t, s, checkCmd)

	if s.feedback != nil {
		t.Error("stale check result should be dropped")
	}
	if s.Session().Cursor.Index != 1 {
		t.Errorf("index = %d, want 1", s.Session().Cursor.Index)
	}
	if s.busy {
		t.Error("screen should not be busy after the latest result")
	}
}

func TestQuizScreen_GoBack(t *testing.T) {
	f := newFixture(t, nil)

	send(t, f.screen, ctrlKey('b'))
	if f.screen.Session().Cursor.Index != 0 {
		t.Fatal("go back at the first word must be a no-op")
	}

	send(t, f.screen, ctrlKey('n'))
	send(t, f.screen, ctrlKey('b'))
	if idx := f.screen.Session().Cursor.Index; idx != 0 {
		t.Errorf("index = %d, want 0", idx)
	}
}

func TestQuizScreen_ReviewDecision(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.transitions = []*api.Transition{{Action: api.ActionEnterReview, Message: "Review now?"}}

	send(t, f.screen, ctrlKey('n'))

	if f.screen.dialog == nil || f.screen.dialogKind != dialogDecision {
		t.Fatal("expected review decision dialog")
	}
	if !strings.Contains(f.screen.View(100, 30), "Review now?") {
		t.Error("decision dialog should show the message")
	}

	send(t, f.screen, keyPress('y'))

	if n := f.backend.called("start_review"); n != 1 {
		t.Errorf("start_review calls = %d, want 1", n)
	}
	sess := f.screen.Session()
	if sess.Review.Phase != session.ReviewActive {
		t.Errorf("review phase = %v, want active", sess.Review.Phase)
	}
	if len(sess.Set) != 1 || sess.Set[0].Word != "w1" {
		t.Errorf("set = %v, want review set", sess.Set)
	}
}

func TestQuizScreen_ActionErrorNotice(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.nextErr = errors.New("connection refused")

	send(t, f.screen, ctrlKey('n'))

	if f.screen.dialog == nil || f.screen.dialogKind != dialogNotice {
		t.Fatal("expected error notice")
	}
	if !strings.Contains(f.screen.dialog.Message, "next word failed") {
		t.Errorf("notice = %q, want the failed action named", f.screen.dialog.Message)
	}
	if f.screen.Session().Cursor.Index != 0 {
		t.Error("failed action must leave state unchanged")
	}

	send(t, f.screen, specialKey(tea.KeyEnter))
	if f.screen.dialog != nil {
		t.Error("enter should dismiss the notice")
	}
}

func TestQuizScreen_SetCompleteReinitializes(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.transitions = []*api.Transition{{Action: api.ActionSetComplete, Message: "All done here"}}

	send(t, f.screen, ctrlKey('n'))
	if f.screen.dialog == nil || f.screen.dialog.Message != "All done here" {
		t.Fatalf("dialog = %+v, want set complete notice", f.screen.dialog)
	}
	if n := f.backend.called("init"); n != 1 {
		t.Fatalf("init calls = %d before acknowledgement, want 1", n)
	}

	send(t, f.screen, specialKey(tea.KeyEnter))
	if n := f.backend.called("init"); n != 2 {
		t.Errorf("init calls = %d, want 2", n)
	}
	actions := f.journal.actions()
	if len(actions) < 2 || actions[1] != store.ActionComplete {
		t.Errorf("journal actions = %v, want complete recorded", actions)
	}
}

func TestQuizScreen_FatalInitRetry(t *testing.T) {
	f := newFixture(t, func(d *Deps) {
		d.Backend.(*mockBackend).initErr = errors.New("server down")
	})
	if f.screen.fatal == nil {
		t.Fatal("expected fatal init error")
	}
	if !strings.Contains(f.screen.View(80, 24), "server down") {
		t.Error("error view should show the cause")
	}

	// Other keys are ignored while halted.
	send(t, f.screen, ctrlKey('n'))
	if n := f.backend.called("next-word"); n != 0 {
		t.Errorf("next-word calls = %d while halted, want 0", n)
	}

	f.backend.initErr = nil
	send(t, f.screen, keyPress('r'))
	if f.screen.fatal != nil {
		t.Errorf("fatal = %v after retry", f.screen.fatal)
	}
	if len(f.screen.Session().Set) != 3 {
		t.Error("retry should establish the session")
	}
}

func TestQuizScreen_FatalEscPops(t *testing.T) {
	f := newFixture(t, func(d *Deps) {
		d.Backend.(*mockBackend).initErr = errors.New("server down")
	})

	msgs := send(t, f.screen, specialKey(tea.KeyEscape))
	if len(msgs) != 1 {
		t.Errorf("expected a pop message, got %v", msgs)
	}
}

func TestQuizScreen_QuitConfirm(t *testing.T) {
	f := newFixture(t, nil)

	send(t, f.screen, specialKey(tea.KeyEscape))
	if f.screen.dialog == nil || f.screen.dialogKind != dialogQuit {
		t.Fatal("expected quit confirmation")
	}
	send(t, f.screen, keyPress('n'))
	if f.screen.dialog != nil {
		t.Fatal("expected quit confirmation to be dismissed")
	}

	send(t, f.screen, specialKey(tea.KeyEscape))
	msgs := send(t, f.screen, keyPress('y'))
	if len(msgs) != 1 {
		t.Errorf("expected a pop message, got %v", msgs)
	}
	actions := f.journal.actions()
	if actions[len(actions)-1] != store.ActionComplete {
		t.Errorf("journal actions = %v, want complete last", actions)
	}
}

func TestQuizScreen_TabSwitchesMode(t *testing.T) {
	f := newFixture(t, nil)
	typeText(t, f.screen, "draft")

	send(t, f.screen, specialKey(tea.KeyTab))

	if n := f.backend.called("load-ed-sheet"); n != 1 {
		t.Errorf("load-ed-sheet calls = %d, want 1", n)
	}
	sess := f.screen.Session()
	if sess.Mode != mode.PastTense || sess.Cursor.Index != 0 {
		t.Errorf("mode = %q index = %d", sess.Mode, sess.Cursor.Index)
	}
	if f.screen.input.Value() != "" {
		t.Error("unsent answer should be discarded on mode switch")
	}
	if f.screen.input.Model.Placeholder != mode.PastTense.Spec().Placeholder {
		t.Errorf("placeholder = %q", f.screen.input.Model.Placeholder)
	}
}

func TestQuizScreen_TabDuringStartup(t *testing.T) {
	b := newMockBackend(3)
	s := New(Deps{Backend: b})
	initCmd := s.Init()

	send(t, s, specialKey(tea.KeyTab))
	if s.status != "Still loading..." {
		t.Errorf("status = %q", s.status)
	}
	if n := b.called("load-ed-sheet"); n != 0 {
		t.Errorf("load-ed-sheet calls = %d before init, want 0", n)
	}

	drain(t, s, initCmd)

	if s.fatal != nil {
		t.Fatalf("fatal after startup: %v", s.fatal)
	}
	sess := s.Session()
	if sess.ID != "s1" || len(sess.Set) != 3 || sess.Mode != mode.Words {
		t.Errorf("session = %+v", sess)
	}
	send(t, s, specialKey(tea.KeyTab))
	if s.Session().Mode != mode.PastTense {
		t.Errorf("mode after init = %q, want ed", s.Session().Mode)
	}
}

func TestQuizScreen_StartModeAndAIPractice(t *testing.T) {
	f := newFixture(t, func(d *Deps) { d.Mode = mode.AiPractice })

	if f.screen.Session().Mode != mode.AiPractice {
		t.Fatalf("mode = %q, want ai", f.screen.Session().Mode)
	}

	typeText(t, f.screen, "I eat w0.")
	send(t, f.screen, specialKey(tea.KeyEnter))

	if len(f.coach.reviewed) != 1 || f.coach.reviewed[0] != "I eat w0." {
		t.Errorf("reviewed = %v", f.coach.reviewed)
	}
	if f.screen.practice != "Nice sentence!" {
		t.Errorf("practice = %q", f.screen.practice)
	}
	if n := f.backend.called("check-answer"); n != 0 {
		t.Errorf("check-answer calls = %d in AI practice, want 0", n)
	}

	send(t, f.screen, ctrlKey('y'))
	if !strings.Contains(f.screen.practice, "Sentence with w0") {
		t.Errorf("practice = %q, want generated sentences", f.screen.practice)
	}

	// Advancing is local and clears the practice output.
	send(t, f.screen, ctrlKey('n'))
	if f.screen.Session().Cursor.Index != 1 || f.screen.practice != "" {
		t.Errorf("index = %d practice = %q", f.screen.Session().Cursor.Index, f.screen.practice)
	}
}

func TestQuizScreen_Hint(t *testing.T) {
	f := newFixture(t, nil)

	send(t, f.screen, ctrlKey('t'))

	if !strings.Contains(f.screen.hint, "I like __ a lot.") {
		t.Errorf("hint = %q, want masked example", f.screen.hint)
	}
	if !strings.Contains(f.screen.hint, `Starts with "w"`) {
		t.Errorf("hint = %q, want first letter", f.screen.hint)
	}
}

func TestQuizScreen_AudioFallback(t *testing.T) {
	f := newFixture(t, func(d *Deps) { d.Player = &audio.Recorder{Err: errors.New("no player")} })

	send(t, f.screen, ctrlKey('p'))

	if f.screen.pronounce != "Pronunciation: w0" {
		t.Errorf("pronounce = %q", f.screen.pronounce)
	}
}

func TestQuizScreen_DeleteWord(t *testing.T) {
	f := newFixture(t, nil)

	send(t, f.screen, ctrlKey('x'))
	if f.screen.dialog == nil || f.screen.dialogKind != dialogDelete {
		t.Fatal("expected delete confirmation")
	}
	send(t, f.screen, keyPress('y'))

	if len(f.editor.deleted) != 1 || f.editor.deleted[0] != "w0" {
		t.Errorf("deleted = %v", f.editor.deleted)
	}
	if f.screen.Session().Cursor.Index != 1 {
		t.Error("expected to move past the deleted word")
	}
}

func TestQuizScreen_NextGroupAndCategory(t *testing.T) {
	f := newFixture(t, nil)

	send(t, f.screen, ctrlKey('o'))
	if !strings.Contains(f.screen.status, "all words") {
		t.Errorf("status = %q", f.screen.status)
	}

	send(t, f.screen, ctrlKey('g'))
	if n := f.backend.called("next-nine-words"); n != 1 {
		t.Errorf("next-nine-words calls = %d, want 1", n)
	}
	if set := f.screen.Session().Set; len(set) != 1 || set[0].Word != "new" {
		t.Errorf("set = %v", set)
	}
}

func TestQuizScreen_KeyHints(t *testing.T) {
	f := newFixture(t, nil)
	if len(f.screen.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
	send(t, f.screen, specialKey(tea.KeyEscape))
	hints := f.screen.KeyHints()
	if len(hints) != 2 || hints[0].Key != "Y" {
		t.Errorf("hints = %v, want Y/N", hints)
	}
}
