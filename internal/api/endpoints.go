package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/abhisek/wordquiz/internal/words"
)

// Login authenticates the client. The session cookie is kept in the jar.
func (c *Client) Login(ctx context.Context, username, password string, remember bool) error {
	var resp statusResponse
	err := c.post(ctx, "login", loginRequest{Username: username, Password: password, Remember: remember}, &resp)
	if err != nil {
		return err
	}
	if msg, failed := resp.failed(); failed {
		return &ServiceError{Endpoint: "login", Message: msg}
	}
	return nil
}

// Init starts a session and returns its first working set.
func (c *Client) Init(ctx context.Context) (*InitResponse, error) {
	var resp InitResponse
	if err := c.get(ctx, "init", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckAnswer submits a raw answer for the word and returns the verdict.
func (c *Client) CheckAnswer(ctx context.Context, id SessionID, input string, w words.Word, mode string) (*Verdict, error) {
	var resp Verdict
	req := checkAnswerRequest{SessionID: id, UserInput: input, WordData: w, Mode: mode}
	if err := c.post(ctx, "check-answer", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NextWord asks the backend what follows the word at index.
func (c *Client) NextWord(ctx context.Context, id SessionID, index int) (*Transition, error) {
	var resp Transition
	if err := c.post(ctx, "next-word", nextWordRequest{SessionID: id, CurrentIndex: index}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoadSheet loads a mode's word sheet through its endpoint.
func (c *Client) LoadSheet(ctx context.Context, endpoint string, id SessionID) (*SheetResponse, error) {
	if !strings.HasPrefix(endpoint, "load-") {
		return nil, fmt.Errorf("%q is not a sheet endpoint", endpoint)
	}
	var resp SheetResponse
	if err := c.post(ctx, endpoint, sessionRequest{SessionID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NextGroup loads the next group of words, optionally within a category.
func (c *Client) NextGroup(ctx context.Context, id SessionID, category, mode string) (*GroupResponse, error) {
	var resp GroupResponse
	req := groupRequest{SessionID: id, Category: category, Mode: mode}
	if err := c.post(ctx, "next-nine-words", req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &ServiceError{Endpoint: "next-nine-words", Message: resp.Error}
	}
	return &resp, nil
}

// RepeatGroup reloads the current group from its start.
func (c *Client) RepeatGroup(ctx context.Context, id SessionID) (*GroupResponse, error) {
	var resp GroupResponse
	if err := c.post(ctx, "repeat-nine-words", sessionRequest{SessionID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartReview begins the review cycle and returns its working set.
func (c *Client) StartReview(ctx context.Context, id SessionID, mode string) (*Transition, error) {
	return c.review(ctx, "start_review", id, mode)
}

// SkipReview skips the review cycle and returns the next working set.
func (c *Client) SkipReview(ctx context.Context, id SessionID, mode string) (*Transition, error) {
	return c.review(ctx, "skip_review", id, mode)
}

func (c *Client) review(ctx context.Context, endpoint string, id SessionID, mode string) (*Transition, error) {
	var resp Transition
	if err := c.post(ctx, endpoint, reviewRequest{SessionID: id, Mode: mode}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddWord adds a word to the backend store and returns its message.
func (c *Client) AddWord(ctx context.Context, word, meaning string) (string, error) {
	req := addWordRequest{Word: strings.TrimSpace(word), Meaning: strings.TrimSpace(meaning)}
	if err := c.validate.Struct(req); err != nil {
		return "", fmt.Errorf("add-word: %w", err)
	}
	return c.status(ctx, "add-word", req)
}

// DeleteWord removes a word from the backend store and returns its message.
func (c *Client) DeleteWord(ctx context.Context, word string) (string, error) {
	req := deleteWordRequest{Word: strings.TrimSpace(word)}
	if err := c.validate.Struct(req); err != nil {
		return "", fmt.Errorf("delete-word: %w", err)
	}
	return c.status(ctx, "delete-word", req)
}

func (c *Client) status(ctx context.Context, endpoint string, req any) (string, error) {
	var resp statusResponse
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return "", err
	}
	if msg, failed := resp.failed(); failed {
		return "", &ServiceError{Endpoint: endpoint, Message: msg}
	}
	return resp.Message, nil
}

// Categories lists the word categories known to the backend.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "get-categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Words lists every word in the backend store.
func (c *Client) Words(ctx context.Context) (words.Set, error) {
	var out words.Set
	if err := c.get(ctx, "get-words", nil, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, &MalformedError{Endpoint: "get-words", Err: err}
	}
	return out, nil
}

// Audio fetches the pronunciation of word as an audio stream.
func (c *Client) Audio(ctx context.Context, word string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "play-audio", url.Values{"word": {word}}, nil)
}

// GenerateSentences asks the backend AI for example sentences using word.
func (c *Client) GenerateSentences(ctx context.Context, word string) (string, error) {
	var resp statusResponse
	if err := c.post(ctx, "ai-generate-sentences", sentenceRequest{Word: word}, &resp); err != nil {
		return "", err
	}
	if msg, failed := resp.failed(); failed {
		return "", &ServiceError{Endpoint: "ai-generate-sentences", Message: msg}
	}
	return resp.Sentences, nil
}

// CheckSentence asks the backend AI to review a sentence using word.
func (c *Client) CheckSentence(ctx context.Context, word, sentence string) (string, error) {
	var resp statusResponse
	req := sentenceRequest{Word: word, Sentence: sentence}
	if err := c.post(ctx, "ai-check-sentence", req, &resp); err != nil {
		return "", err
	}
	if msg, failed := resp.failed(); failed {
		return "", &ServiceError{Endpoint: "ai-check-sentence", Message: msg}
	}
	return resp.Feedback, nil
}
