package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordquiz/internal/router"
	"github.com/abhisek/wordquiz/internal/screen"
	"github.com/abhisek/wordquiz/internal/store"
	"github.com/abhisek/wordquiz/internal/ui/layout"
	"github.com/abhisek/wordquiz/internal/ui/theme"
)

const (
	runLimit    = 50
	answerLimit = 5000
)

type historyLoadedMsg struct {
	Runs   []store.RunSummary
	Missed map[string][]string // runID → missed words
	Err    error
}

// HistoryScreen displays past quiz runs and the words missed in each.
type HistoryScreen struct {
	eventRepo store.EventRepo
	runs      []store.RunSummary
	missed    map[string][]string
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		return load(context.Background(), repo)
	}
}

func load(ctx context.Context, repo store.EventRepo) historyLoadedMsg {
	runs, err := repo.RunSummaries(ctx, runLimit)
	if err != nil {
		return historyLoadedMsg{Err: err}
	}

	// Answer events come newest first; missed words are listed in the
	// order they were first missed.
	answers, err := repo.QueryAnswerEvents(ctx, store.QueryOpts{Limit: answerLimit})
	if err != nil {
		return historyLoadedMsg{Runs: runs, Missed: map[string][]string{}}
	}
	missed := make(map[string][]string)
	seen := make(map[string]bool)
	for i := len(answers) - 1; i >= 0; i-- {
		a := answers[i]
		key := a.RunID + "\x00" + a.Word
		if a.Correct || seen[key] {
			continue
		}
		seen[key] = true
		missed[a.RunID] = append(missed[a.RunID], a.Word)
	}
	return historyLoadedMsg{Runs: runs, Missed: missed}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Missed words"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.runs = msg.Runs
			s.missed = msg.Missed
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.runs)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.runs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, run := range s.runs {
		dateStr := run.Started.Format("Jan 02, 2006 15:04")
		d := run.Ended.Sub(run.Started)
		durationStr := fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)

		var accuracy float64
		if run.Attempts > 0 {
			accuracy = float64(run.Correct) / float64(run.Attempts) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d answers  %s",
			prefix, dateStr, durationStr, run.Attempts,
			lipgloss.NewStyle().Foreground(accuracyColor(accuracy)).Render(fmt.Sprintf("%.0f%% correct", accuracy)))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			words := s.missed[run.RunID]
			text := "    No missed words"
			if len(words) > 0 {
				text = "    Missed: " + strings.Join(words, ", ")
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
					Width(min(width-8, 70)).Render(text)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func accuracyColor(pct float64) color.Color {
	switch {
	case pct >= 90:
		return theme.Success
	case pct >= 70:
		return theme.Secondary
	case pct >= 50:
		return theme.Accent
	default:
		return theme.Error
	}
}
