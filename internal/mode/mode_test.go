package mode

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDictionaryTruncation(t *testing.T) {
	spec := Dictionary.Spec()

	tests := []struct {
		name    string
		meaning string
		want    string
	}{
		{"short", "a small animal", "a small animal"},
		{"exactly 40", strings.Repeat("a", 40), strings.Repeat("a", 40)},
		{"41 chars", strings.Repeat("b", 41), strings.Repeat("b", 37) + "..."},
		{"long", strings.Repeat("가", 60), strings.Repeat("가", 37) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := spec.DisplayMeaning(tt.meaning)
			if got != tt.want {
				t.Errorf("DisplayMeaning() = %q, want %q", got, tt.want)
			}
			if n := utf8.RuneCountInString(got); n > 40 {
				t.Errorf("display length = %d, want <= 40", n)
			}
		})
	}
}

func TestOnlyDictionaryTruncates(t *testing.T) {
	long := strings.Repeat("x", 80)
	for _, m := range All() {
		got := m.Spec().DisplayMeaning(long)
		if m == Dictionary {
			if got == long {
				t.Errorf("%s: meaning not truncated", m)
			}
			continue
		}
		if got != long {
			t.Errorf("%s: meaning truncated to %q", m, got)
		}
	}
}

func TestRegistry(t *testing.T) {
	if !PastTense.Spec().RequiresSecondField {
		t.Error("past tense should require a second field")
	}
	if PastTense.Spec().Separator != "/" {
		t.Errorf("separator = %q, want /", PastTense.Spec().Separator)
	}
	if AiPractice.Spec().Verdict {
		t.Error("ai practice should not use the verdict flow")
	}
	if AiPractice.Spec().SheetEndpoint != "" {
		t.Error("ai practice should not load a sheet")
	}
	wantEndpoints := map[Mode]string{
		Words:      "load-words-sheet",
		PastTense:  "load-ed-sheet",
		Dictionary: "load-yb-sheet",
		Numbers:    "load-numbers-sheet",
	}
	for m, want := range wantEndpoints {
		if got := m.Spec().SheetEndpoint; got != want {
			t.Errorf("%s endpoint = %q, want %q", m, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	m, err := Parse("yb")
	if err != nil || m != Dictionary {
		t.Errorf("Parse(yb) = %q, %v", m, err)
	}
	if _, err := Parse("klingon"); err == nil {
		t.Error("Parse should reject unknown modes")
	}
}

func TestNextPrevWrap(t *testing.T) {
	all := All()
	last := all[len(all)-1]
	if got := last.Next(); got != all[0] {
		t.Errorf("Next of last = %q, want %q", got, all[0])
	}
	if got := all[0].Prev(); got != last {
		t.Errorf("Prev of first = %q, want %q", got, last)
	}
	for _, m := range all {
		if m.Next().Prev() != m {
			t.Errorf("Next/Prev not inverse for %q", m)
		}
	}
}
