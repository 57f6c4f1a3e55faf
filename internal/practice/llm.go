package practice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/wordquiz/internal/llm"
	"github.com/abhisek/wordquiz/internal/words"
)

// Purposes recorded with every LLM request. Each has its own token budget.
const (
	PurposeSentences = "example-sentences"
	PurposeFeedback  = "sentence-feedback"
)

// LLMCoach generates sentences and feedback locally through an LLM provider.
type LLMCoach struct {
	provider llm.Provider
	cfg      Config
}

// NewLLMCoach creates a coach backed by provider.
func NewLLMCoach(provider llm.Provider, cfg Config) *LLMCoach {
	return &LLMCoach{provider: provider, cfg: cfg}
}

type sentencesOutput struct {
	Sentences []struct {
		English string `json:"english"`
		Korean  string `json:"korean"`
	} `json:"sentences"`
}

type feedbackOutput struct {
	Correct    bool   `json:"correct"`
	Feedback   string `json:"feedback"`
	Suggestion string `json:"suggestion"`
}

// Sentences returns numbered example sentences, each followed by its
// translation on the next line.
func (c *LLMCoach) Sentences(ctx context.Context, w words.Word) (string, error) {
	var out sentencesOutput
	if err := c.generate(ctx, PurposeSentences, SentencesSchema, buildSentencesMessage(w, c.cfg.Sentences), &out); err != nil {
		return "", fmt.Errorf("sentence generation: %w", err)
	}

	var b strings.Builder
	for i, s := range out.Sentences {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, s.English)
		if s.Korean != "" {
			fmt.Fprintf(&b, "\n   %s", s.Korean)
		}
	}
	return b.String(), nil
}

// Review returns feedback on sentence.
func (c *LLMCoach) Review(ctx context.Context, w words.Word, sentence string) (string, error) {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return "", ErrEmptySentence
	}
	var out feedbackOutput
	if err := c.generate(ctx, PurposeFeedback, FeedbackSchema, buildReviewMessage(w, sentence), &out); err != nil {
		return "", fmt.Errorf("sentence review: %w", err)
	}

	verdict := "Needs work."
	if out.Correct {
		verdict = "Nice sentence!"
	}
	text := verdict + " " + out.Feedback
	if out.Suggestion != "" && !strings.EqualFold(strings.TrimSpace(out.Suggestion), sentence) {
		text += "\nTry: " + out.Suggestion
	}
	return text, nil
}

func (c *LLMCoach) generate(ctx context.Context, purpose string, schema *llm.Schema, userMsg string, out any) error {
	req := llm.Request{
		Purpose: purpose,
		System:  systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      schema,
		MaxTokens:   c.cfg.budget(purpose),
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
