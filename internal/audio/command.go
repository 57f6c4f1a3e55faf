package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// FilePlaceholder in a command line is replaced by the audio file path.
// Without it the path is appended.
const FilePlaceholder = "{file}"

// ErrNoCommand is returned when no player command is configured.
var ErrNoCommand = errors.New("no audio player command configured")

// Runner executes a command line.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// CommandPlayer fetches audio through the backend, caches it, and plays it
// with an external command such as "mpg123 -q" or "afplay".
type CommandPlayer struct {
	fetcher Fetcher
	cache   *Cache
	command []string
	run     Runner
	logger  *slog.Logger
}

// CommandOption configures a CommandPlayer.
type CommandOption func(*CommandPlayer)

// WithRunner replaces the command runner.
func WithRunner(r Runner) CommandOption {
	return func(p *CommandPlayer) { p.run = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) CommandOption {
	return func(p *CommandPlayer) { p.logger = l }
}

// NewCommandPlayer creates a player running command for each word.
func NewCommandPlayer(f Fetcher, cache *Cache, command string, opts ...CommandOption) *CommandPlayer {
	p := &CommandPlayer{
		fetcher: f,
		cache:   cache,
		command: strings.Fields(command),
		run:     execRunner,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play fetches and plays word.
func (p *CommandPlayer) Play(ctx context.Context, word string) error {
	if len(p.command) == 0 {
		return ErrNoCommand
	}
	path, err := p.cache.Path(ctx, word, p.fetcher)
	if err != nil {
		p.logger.Warn("audio unavailable", "word", word, "error", err)
		return err
	}

	args := make([]string, 0, len(p.command))
	replaced := false
	for _, a := range p.command[1:] {
		if strings.Contains(a, FilePlaceholder) {
			a = strings.ReplaceAll(a, FilePlaceholder, path)
			replaced = true
		}
		args = append(args, a)
	}
	if !replaced {
		args = append(args, path)
	}

	if err := p.run(ctx, p.command[0], args...); err != nil {
		p.logger.Warn("audio playback failed", "word", word, "command", p.command[0], "error", err)
		return fmt.Errorf("play %q: %w", word, err)
	}
	return nil
}

// knownPlayers are tried in order by DefaultCommand.
var knownPlayers = []string{"mpg123 -q", "mpv --no-video --really-quiet", "ffplay -nodisp -autoexit -loglevel quiet", "afplay"}

var lookPath = exec.LookPath

// DefaultCommand returns the first known player found on PATH, or "".
func DefaultCommand() string {
	for _, cmd := range knownPlayers {
		if _, err := lookPath(strings.Fields(cmd)[0]); err == nil {
			return cmd
		}
	}
	return ""
}
