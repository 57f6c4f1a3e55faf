// Package words defines the vocabulary items served by the quiz backend.
package words

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Word is a single vocabulary item. Words are never mutated after they are
// received; a new set replaces the old one wholesale.
type Word struct {
	// Word is the answer and the identity of the item within a set.
	Word string `json:"word" validate:"required"`

	// Meaning is the prompt shown to the learner.
	Meaning string `json:"meaning"`

	// Example is an optional sentence using the word.
	Example string `json:"example,omitempty"`

	// ExampleKR is an optional Korean translation of Example.
	ExampleKR string `json:"example_kr,omitempty"`

	// PastTense is present only for words served in past tense mode.
	PastTense string `json:"past_tense,omitempty"`

	// Category is the sheet category the word belongs to, when known.
	Category string `json:"category,omitempty"`
}

// TranslateURL links to an English to Korean translation of the word.
func (w Word) TranslateURL() string {
	return "https://translate.google.com/?sl=en&tl=ko&text=" + url.QueryEscape(w.Word)
}

// FirstLetter returns the first letter of the answer, used for hints.
func (w Word) FirstLetter() string {
	for _, r := range strings.TrimSpace(w.Word) {
		return string(r)
	}
	return ""
}

// Set is an ordered working set of words.
type Set []Word

// Len returns the number of words in the set.
func (s Set) Len() int { return len(s) }

// At returns the word at i and whether i was in range.
func (s Set) At(i int) (Word, bool) {
	if i < 0 || i >= len(s) {
		return Word{}, false
	}
	return s[i], true
}

// Clone returns a copy of the set that shares no backing array with s.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	copy(out, s)
	return out
}

// Index returns the position of the word with the given identity, or -1.
func (s Set) Index(word string) int {
	for i, w := range s {
		if w.Word == word {
			return i
		}
	}
	return -1
}

var validate = validator.New()

// Validate checks that every word in the set carries an identity.
func (s Set) Validate() error {
	for i, w := range s {
		if err := validate.Struct(w); err != nil {
			return fmt.Errorf("word %d: %w", i, err)
		}
	}
	return nil
}
