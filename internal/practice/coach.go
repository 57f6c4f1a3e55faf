// Package practice backs the free-form AI practice mode: the learner asks
// for example sentences with the current word and submits their own
// sentence for feedback. Neither call touches the quiz session state.
package practice

import (
	"context"
	"errors"
	"strings"

	"github.com/abhisek/wordquiz/internal/words"
)

// ErrEmptySentence is returned when a sentence to review is blank.
var ErrEmptySentence = errors.New("write a sentence first")

// Coach produces example sentences and sentence feedback.
type Coach interface {
	// Sentences returns example sentences using w, one per line.
	Sentences(ctx context.Context, w words.Word) (string, error)

	// Review returns feedback on a learner sentence using w.
	Review(ctx context.Context, w words.Word, sentence string) (string, error)
}

// SentenceService is the backend half of the AI practice endpoints.
type SentenceService interface {
	GenerateSentences(ctx context.Context, word string) (string, error)
	CheckSentence(ctx context.Context, word, sentence string) (string, error)
}

// ServerCoach delegates to the backend's AI endpoints.
type ServerCoach struct {
	svc SentenceService
}

// NewServerCoach creates a coach backed by svc.
func NewServerCoach(svc SentenceService) *ServerCoach {
	return &ServerCoach{svc: svc}
}

// Sentences asks the backend for example sentences.
func (c *ServerCoach) Sentences(ctx context.Context, w words.Word) (string, error) {
	return c.svc.GenerateSentences(ctx, w.Word)
}

// Review asks the backend to check sentence.
func (c *ServerCoach) Review(ctx context.Context, w words.Word, sentence string) (string, error) {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return "", ErrEmptySentence
	}
	return c.svc.CheckSentence(ctx, w.Word, sentence)
}

var (
	_ Coach = (*ServerCoach)(nil)
	_ Coach = (*LLMCoach)(nil)
)
