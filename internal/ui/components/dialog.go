package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordquiz/internal/ui/theme"
)

// Button is one choice of a Dialog. Key is an optional shortcut that
// selects and confirms the button in one press.
type Button struct {
	Label string
	Key   string
}

// View renders the button.
func (b Button) View(active bool) string {
	label := b.Label
	if active {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}

// Dialog is a modal message with a row of buttons. A dialog without buttons
// is a notice dismissed with enter, space or esc.
type Dialog struct {
	Title   string
	Message string
	Buttons []Button
	Focused int

	chosen int
	done   bool
}

// NewDialog creates a dialog focused on the first button.
func NewDialog(title, message string, buttons ...Button) Dialog {
	return Dialog{Title: title, Message: message, Buttons: buttons, chosen: -1}
}

// NewNotice creates a dialog that only needs acknowledgement.
func NewNotice(title, message string) Dialog {
	return NewDialog(title, message)
}

// Update handles navigation and confirmation keys.
func (d Dialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || d.done {
		return d, nil
	}
	key := kmsg.String()

	if len(d.Buttons) == 0 {
		switch key {
		case "enter", "space", " ", "esc":
			d.done = true
		}
		return d, nil
	}

	for i, b := range d.Buttons {
		if b.Key != "" && key == b.Key {
			d.Focused = i
			d.chosen = i
			d.done = true
			return d, nil
		}
	}

	switch key {
	case "left", "h", "shift+tab":
		if d.Focused > 0 {
			d.Focused--
		}
	case "right", "l", "tab":
		if d.Focused < len(d.Buttons)-1 {
			d.Focused++
		}
	case "enter":
		d.chosen = d.Focused
		d.done = true
	}
	return d, nil
}

// Done reports whether the dialog was confirmed or dismissed.
func (d Dialog) Done() bool { return d.done }

// Chosen returns the index of the confirmed button, or -1 for a notice.
func (d Dialog) Chosen() int { return d.chosen }

// View renders the dialog as a bordered card of the given width.
func (d Dialog) View(width int) string {
	var parts []string
	if d.Title != "" {
		parts = append(parts, theme.Title.Render(d.Title))
	}
	parts = append(parts, theme.Body.Width(width-6).Align(lipgloss.Center).Render(d.Message))

	if len(d.Buttons) > 0 {
		buttons := make([]string, len(d.Buttons))
		for i, b := range d.Buttons {
			buttons[i] = b.View(i == d.Focused)
		}
		parts = append(parts, "", lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(buttons, "  ")))
	} else {
		parts = append(parts, "", theme.Hint.Render("Press Enter to continue"))
	}

	return theme.Card.
		Width(width).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}
