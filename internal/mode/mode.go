// Package mode holds the static table of practice modes and the rules each
// one applies to answers, prompts and feedback.
package mode

import (
	"fmt"
	"unicode/utf8"
)

// Mode is a practice variant. Its value is the name used on the wire.
type Mode string

const (
	Words      Mode = "Words"
	PastTense  Mode = "ed"
	Dictionary Mode = "yb"
	Numbers    Mode = "numbers"
	AiPractice Mode = "ai"
)

// DefaultGroupSize is the number of words in one fetched group.
const DefaultGroupSize = 10

// Ellipsis is appended to truncated meanings.
const Ellipsis = "..."

// Template selects how answer feedback is rendered.
type Template int

const (
	// TemplateExample shows the base form and, on success, the example
	// sentence with the word emphasized.
	TemplateExample Template = iota
	// TemplateBasePast shows the base and past tense forms.
	TemplateBasePast
	// TemplateBaseOnly shows the base form only.
	TemplateBaseOnly
	// TemplateNone means the mode has no verdict feedback.
	TemplateNone
)

// Spec describes the fixed behaviour of one mode.
type Spec struct {
	Mode  Mode
	Label string

	// SheetEndpoint is the API endpoint that loads the mode's word sheet.
	// Empty when the mode works on the current set.
	SheetEndpoint string

	// RequiresSecondField is set when answers carry a past tense form.
	RequiresSecondField bool

	// Separator splits the base and second field in a typed answer.
	Separator string

	// MeaningLimit is the display budget for meanings, 0 for unlimited.
	MeaningLimit int

	Template  Template
	GroupSize int

	// Verdict reports whether the mode uses the check/advance flow.
	Verdict bool

	Placeholder string
}

var registry = []Spec{
	{
		Mode:          Words,
		Label:         "Words",
		SheetEndpoint: "load-words-sheet",
		Template:      TemplateExample,
		GroupSize:     DefaultGroupSize,
		Verdict:       true,
		Placeholder:   "Type the English word",
	},
	{
		Mode:                PastTense,
		Label:               "Past tense",
		SheetEndpoint:       "load-ed-sheet",
		RequiresSecondField: true,
		Separator:           "/",
		Template:            TemplateBasePast,
		GroupSize:           DefaultGroupSize,
		Verdict:             true,
		Placeholder:         "base/past (e.g. go/went)",
	},
	{
		Mode:          Dictionary,
		Label:         "Dictionary",
		SheetEndpoint: "load-yb-sheet",
		MeaningLimit:  40,
		Template:      TemplateBaseOnly,
		GroupSize:     DefaultGroupSize,
		Verdict:       true,
		Placeholder:   "Type the English word",
	},
	{
		Mode:          Numbers,
		Label:         "Numbers",
		SheetEndpoint: "load-numbers-sheet",
		Template:      TemplateExample,
		GroupSize:     DefaultGroupSize,
		Verdict:       true,
		Placeholder:   "Type the number in English",
	},
	{
		Mode:        AiPractice,
		Label:       "AI practice",
		Template:    TemplateNone,
		GroupSize:   DefaultGroupSize,
		Placeholder: "Write a sentence using the word",
	},
}

// All returns the modes in menu order.
func All() []Mode {
	out := make([]Mode, len(registry))
	for i, s := range registry {
		out[i] = s.Mode
	}
	return out
}

// Lookup returns the spec for m.
func Lookup(m Mode) (Spec, bool) {
	for _, s := range registry {
		if s.Mode == m {
			return s, true
		}
	}
	return Spec{}, false
}

// Spec returns the spec for m, falling back to Words for unknown modes.
func (m Mode) Spec() Spec {
	if s, ok := Lookup(m); ok {
		return s
	}
	return registry[0]
}

// Label returns the human readable name of m.
func (m Mode) Label() string { return m.Spec().Label }

// Parse converts a wire name into a Mode.
func Parse(name string) (Mode, error) {
	if _, ok := Lookup(Mode(name)); !ok {
		return "", fmt.Errorf("unknown mode %q", name)
	}
	return Mode(name), nil
}

// Next returns the mode after m in menu order, wrapping around.
func (m Mode) Next() Mode { return m.step(1) }

// Prev returns the mode before m in menu order, wrapping around.
func (m Mode) Prev() Mode { return m.step(-1) }

func (m Mode) step(d int) Mode {
	idx := 0
	for i, s := range registry {
		if s.Mode == m {
			idx = i
			break
		}
	}
	n := len(registry)
	return registry[((idx+d)%n+n)%n].Mode
}

// DisplayMeaning applies the mode's truncation policy to a meaning. When the
// meaning exceeds the limit it is cut so that content plus ellipsis fill the
// limit exactly.
func (s Spec) DisplayMeaning(meaning string) string {
	return Truncate(meaning, s.MeaningLimit)
}

// Truncate shortens text to limit runes, ending with Ellipsis when cut.
// A limit of 0 disables truncation.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	keep := limit - utf8.RuneCountInString(Ellipsis)
	if keep < 0 {
		keep = 0
	}
	runes := []rune(text)
	return string(runes[:keep]) + Ellipsis
}
