package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordquiz/internal/mode"
	"github.com/abhisek/wordquiz/internal/router"
	"github.com/abhisek/wordquiz/internal/screen"
	"github.com/abhisek/wordquiz/internal/screens/history"
	"github.com/abhisek/wordquiz/internal/store"
	"github.com/abhisek/wordquiz/internal/ui/components"
	"github.com/abhisek/wordquiz/internal/ui/layout"
)

// QuizFactory builds a quiz screen starting in the given mode.
type QuizFactory func(m mode.Mode) screen.Screen

// Stats summarizes the journal for the stats bar.
type Stats struct {
	Loaded     bool
	Attempts   int
	Correct    int
	MostMissed string
}

// Accuracy returns the share of correct answers as a percentage.
func (s Stats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Attempts)
}

type statsLoadedMsg struct {
	Stats Stats
}

// UpdateAvailableMsg reports a newer release than the running binary.
type UpdateAvailableMsg struct {
	Version string
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu          components.Menu
	menuLabels    []string
	disabled      map[int]bool
	eventRepo     store.EventRepo
	stats         Stats
	mascotVariant MascotVariant
	latest        string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. eventRepo may be nil when the journal is
// disabled; history is then unavailable.
func New(newQuiz QuizFactory, eventRepo store.EventRepo) *HomeScreen {
	var items []components.MenuItem
	for _, m := range mode.All() {
		items = append(items, components.MenuItem{
			Label: strings.ToUpper(m.Label()),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: newQuiz(m)}
				}
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "HISTORY",
			Disabled: eventRepo == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(eventRepo)}
				}
			},
		},
		components.MenuItem{
			Label:  "QUIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	labels := make([]string, len(items))
	disabled := make(map[int]bool)
	for i, item := range items {
		labels[i] = item.Label
		if item.Disabled {
			disabled[i] = true
		}
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		menuLabels: labels,
		disabled:   disabled,
		eventRepo:  eventRepo,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.eventRepo == nil {
		return nil
	}
	repo := h.eventRepo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return statsLoadedMsg{Stats: loadStats(ctx, repo)}
	}
}

// loadStats aggregates the journal. Query errors leave the stats unloaded.
func loadStats(ctx context.Context, repo store.EventRepo) Stats {
	modes, err := repo.ModeSummaries(ctx)
	if err != nil {
		return Stats{}
	}
	st := Stats{Loaded: true}
	for _, m := range modes {
		st.Attempts += m.Attempts
		st.Correct += m.Correct
	}
	if missed, err := repo.MostMissed(ctx, 1); err == nil && len(missed) > 0 {
		st.MostMissed = missed[0].Word
	}
	return st
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.stats = msg.Stats
		h.mascotVariant = mascotFor(msg.Stats)
		return h, nil
	case UpdateAvailableMsg:
		h.latest = msg.Version
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 100

	// All sections share a uniform content width so they line up.
	cw := contentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))
	}
	if h.latest != "" {
		sections = append(sections, renderUpdateNote(h.latest, cw))
	}

	content := strings.Join(sections, "\n\n")

	return renderCabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
