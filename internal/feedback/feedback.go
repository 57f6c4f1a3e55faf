// Package feedback turns an answer verdict into mode specific display text.
// It produces styled segments; rendering them is left to the UI.
package feedback

import (
	"strings"
	"unicode/utf8"

	"github.com/abhisek/wordquiz/internal/mode"
	"github.com/abhisek/wordquiz/internal/words"
)

// Segment is a run of text, optionally emphasized.
type Segment struct {
	Text     string
	Emphasis bool
}

// Line is one display line made of segments.
type Line []Segment

// String returns the line text without styling.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Masked returns the line text with emphasized segments replaced by
// underscores, one per rune.
func (l Line) Masked() string {
	var b strings.Builder
	for _, s := range l {
		if !s.Emphasis {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(strings.Repeat("_", utf8.RuneCountInString(s.Text)))
	}
	return b.String()
}

// Kind tags a line so the UI can style it.
type Kind int

const (
	KindAnswer Kind = iota
	KindExample
	KindMeaning
	KindTranslation
)

// Row is a tagged line.
type Row struct {
	Kind Kind
	Line Line
}

// Feedback is the rendered result of one answer check.
type Feedback struct {
	Correct  bool
	Headline string
	Rows     []Row
}

// Text returns all rows joined by newlines, unstyled.
func (f Feedback) Text() string {
	lines := make([]string, 0, len(f.Rows))
	for _, r := range f.Rows {
		lines = append(lines, r.Line.String())
	}
	return strings.Join(lines, "\n")
}

const (
	headlineCorrect   = "Correct!"
	headlineIncorrect = "Not quite."
)

// Render builds the feedback for a verdict on w in mode m.
func Render(m mode.Mode, w words.Word, correct bool) Feedback {
	fb := Feedback{Correct: correct, Headline: headlineIncorrect}
	if correct {
		fb.Headline = headlineCorrect
	}

	switch m.Spec().Template {
	case mode.TemplateBasePast:
		answer := w.Word
		if w.PastTense != "" {
			answer += " → " + w.PastTense
		}
		fb.Rows = append(fb.Rows, plain(KindAnswer, answer))

	case mode.TemplateBaseOnly:
		fb.Rows = append(fb.Rows, plain(KindAnswer, w.Word))

	case mode.TemplateExample:
		fb.Rows = append(fb.Rows, plain(KindAnswer, w.Word))
		if !correct {
			break
		}
		if w.Example != "" {
			fb.Rows = append(fb.Rows, Row{Kind: KindExample, Line: Emphasize(w.Example, w.Word)})
		}
		if w.Meaning != "" {
			fb.Rows = append(fb.Rows, Row{Kind: KindMeaning, Line: Emphasize(w.Meaning, w.Word)})
		}
		if w.ExampleKR != "" {
			fb.Rows = append(fb.Rows, plain(KindTranslation, w.ExampleKR))
		}

	case mode.TemplateNone:
	}
	return fb
}

func plain(k Kind, text string) Row {
	return Row{Kind: k, Line: Line{{Text: text}}}
}
