package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordquiz/internal/feedback"
	"github.com/abhisek/wordquiz/internal/session"
	"github.com/abhisek/wordquiz/internal/ui/components"
	"github.com/abhisek/wordquiz/internal/ui/theme"
)

const maxDialogWidth = 60

func (s *QuizScreen) View(width, height int) string {
	if s.fatal != nil {
		return renderError(width, height, s.fatal.Error())
	}
	if s.dialog != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			s.dialog.View(min(maxDialogWidth, width-4)))
	}
	sess := s.ctrl.Session()
	if len(sess.Set) == 0 {
		return s.renderLoading(width, height)
	}
	return s.renderQuestionView(width, height)
}

// renderQuestionView renders the prompt, the answer input and everything
// shown for the current word.
func (s *QuizScreen) renderQuestionView(width, height int) string {
	sess := s.ctrl.Session()
	spec := sess.Mode.Spec()
	st := s.ctrl.Stats()
	w, _ := s.ctrl.Current()

	var b strings.Builder

	// Info line.
	category := sess.Category
	if category == "" {
		category = "all words"
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", spec.Label))
	if sess.Review.Phase != session.ReviewInactive {
		infoLeft += lipgloss.NewStyle().Foreground(theme.Accent).Render("  review: " + sess.Review.Phase.String())
	}

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Word %s  Set %s  #%d  %s", st.WordLabel, st.SetLabel, st.Absolute, category))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	// Prompt.
	prompt := spec.DisplayMeaning(w.Meaning)
	if !spec.Verdict {
		prompt = w.Word + "  ·  " + w.Meaning
	}
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(prompt))
	b.WriteString("\n\n")

	// Input.
	label := "Answer: "
	if !spec.Verdict {
		label = "Sentence: "
	}
	b.WriteString(center.Render(label + s.input.View()))
	b.WriteString("\n\n")

	if s.feedback != nil {
		b.WriteString(s.renderFeedback(width, w.TranslateURL()))
		b.WriteString("\n")
	}

	for _, extra := range []string{s.hint, s.pronounce, s.practice} {
		if extra == "" {
			continue
		}
		block := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(extra)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
		b.WriteString("\n\n")
	}

	// Progress within the set.
	pct := 0.0
	if st.SetSize > 0 {
		pct = float64(st.WordNumber) / float64(st.SetSize)
	}
	bar := components.NewProgressBar("Progress", pct, true, min(width-8, 60)).View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
	b.WriteString("\n\n")

	b.WriteString(s.renderStatus(width))

	return b.String()
}

// renderFeedback renders the verdict of the last answer.
func (s *QuizScreen) renderFeedback(width int, link string) string {
	fb := s.feedback
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	if fb.Correct {
		b.WriteString(center.Inherit(theme.Correct).Render(fb.Headline))
	} else {
		b.WriteString(center.Inherit(theme.Incorrect).Render(fb.Headline))
	}
	b.WriteString("\n")

	for _, row := range fb.Rows {
		b.WriteString(center.Render(renderLine(row)))
		b.WriteString("\n")
	}
	b.WriteString(center.Render(theme.Link.Render(link)))
	b.WriteString("\n")
	return b.String()
}

// renderLine styles one feedback row, emphasizing the target word.
func renderLine(row feedback.Row) string {
	base := theme.Body
	switch row.Kind {
	case feedback.KindAnswer:
		base = theme.Body.Bold(true)
	case feedback.KindMeaning, feedback.KindTranslation:
		base = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	var b strings.Builder
	for _, seg := range row.Line {
		if seg.Emphasis {
			b.WriteString(theme.Emphasis.Render(seg.Text))
		} else {
			b.WriteString(base.Render(seg.Text))
		}
	}
	return b.String()
}

func (s *QuizScreen) renderStatus(width int) string {
	text := s.status
	if s.busy {
		text = s.spinner.View() + " " + text
	}
	if text == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(text)
}

// renderLoading renders the state before the first working set arrives.
func (s *QuizScreen) renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + s.spinner.View() + " Starting your session...")
}

// renderError renders a halted session.
func renderError(width, height int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press R to retry or Esc to go back.", errMsg))
}
