// Package audio plays word pronunciations. Playback is fire-and-forget:
// callers show FallbackText when Play fails.
package audio

import (
	"context"
	"errors"
	"sync"
)

// ErrNoPlayer is returned when no audio command is available.
var ErrNoPlayer = errors.New("no audio player available")

// Player pronounces a word.
type Player interface {
	Play(ctx context.Context, word string) error
}

// Fetcher retrieves the audio stream for a word.
type Fetcher interface {
	Audio(ctx context.Context, word string) ([]byte, error)
}

// FallbackText is shown when a word cannot be played.
func FallbackText(word string) string {
	return "Pronunciation: " + word
}

// Noop is a Player that does nothing.
type Noop struct{}

// Play does nothing.
func (Noop) Play(context.Context, string) error { return nil }

// TextOnly is a Player for muted or soundless setups. Every word falls back
// to FallbackText.
type TextOnly struct{}

// Play returns ErrNoPlayer.
func (TextOnly) Play(context.Context, string) error { return ErrNoPlayer }

// Recorder is a Player that records requested words and returns Err.
type Recorder struct {
	Err error

	mu    sync.Mutex
	words []string
}

// Play records word.
func (r *Recorder) Play(_ context.Context, word string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.words = append(r.words, word)
	return r.Err
}

// Words returns the words played so far.
func (r *Recorder) Words() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.words...)
}
