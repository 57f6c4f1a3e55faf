// Package session implements the quiz session state machine. It owns the
// session identity, the active mode, the working set and cursor, and the
// review cycle. Backend I/O is expressed as Ops the caller runs; results are
// applied back through the Controller, which turns them into Outcomes the UI
// renders.
package session

import (
	"github.com/abhisek/wordquiz/internal/api"
	"github.com/abhisek/wordquiz/internal/mode"
	"github.com/abhisek/wordquiz/internal/words"
)

// Session is the complete client side state of one quiz session.
type Session struct {
	// ID is the opaque identity issued by init, echoed on every call.
	ID api.SessionID

	// Mode is the active practice mode.
	Mode mode.Mode

	// Set is the active working set. It is replaced wholesale, never edited.
	Set words.Set

	// Cursor tracks the position within Set.
	Cursor Cursor

	// Review is the review cycle state.
	Review ReviewState

	// Accuracy is the last accuracy percentage reported by the backend.
	Accuracy float64

	// HasAccuracy is false until the first answer is checked.
	HasAccuracy bool

	// Categories lists the categories offered by the backend.
	Categories []string

	// Category is the category used when loading the next group.
	Category string

	// CompletedCount is the backend's count of completed words.
	CompletedCount int

	// Message is the latest informational message from the backend.
	Message string

	// AwaitingAdvance is set after a correct answer; the next submit
	// advances instead of checking again.
	AwaitingAdvance bool

	// Halted is set after an initialization failure. No further
	// operations are accepted.
	Halted bool
}

// Current returns the word under the cursor.
func (s *Session) Current() (words.Word, bool) {
	return s.Set.At(s.Cursor.Index)
}

// Snapshot returns a copy of the session that shares no slices with s.
func (s *Session) Snapshot() Session {
	out := *s
	out.Set = s.Set.Clone()
	out.Review.Set = s.Review.Set.Clone()
	out.Categories = append([]string(nil), s.Categories...)
	return out
}
