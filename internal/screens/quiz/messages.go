package quiz

import (
	"github.com/abhisek/wordquiz/internal/session"
)

// opResultMsg carries the result of a backend request back to Update.
type opResultMsg struct {
	Result session.Result
}

// autoAdvanceMsg fires after the auto-advance delay of a correct answer.
type autoAdvanceMsg struct {
	Token uint64
}

// audioDoneMsg reports the end of a pronunciation attempt.
type audioDoneMsg struct {
	Word string
	Err  error
}

// practiceMsg carries generated sentences or sentence feedback.
type practiceMsg struct {
	Word string
	Text string
	Err  error
}

// deleteWordMsg reports the result of deleting a word.
type deleteWordMsg struct {
	Word    string
	Message string
	Err     error
}
