package api

import (
	"bytes"
	"encoding/json"

	"github.com/abhisek/wordquiz/internal/words"
)

// SessionID is the opaque session identity issued by init. The backend may
// encode it as a string or a number; it is always echoed back as received.
type SessionID string

// UnmarshalJSON accepts both string and numeric identities.
func (s *SessionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = SessionID(v)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = SessionID(n.String())
	return nil
}

// String returns the identity.
func (s SessionID) String() string { return string(s) }

// Progress is the server side progress summary.
type Progress struct {
	CompletedCount    int `json:"completed_count"`
	CurrentGroupIndex int `json:"current_group_index"`
}

// Action tags returned by next-word and the review endpoints.
const (
	ActionNextWord        = "next_word"
	ActionNextSet         = "next_set"
	ActionRepeatIncorrect = "repeat_incorrect"
	ActionSetComplete     = "set_complete"
	ActionEnterReview     = "enter_review"
	ActionReviewComplete  = "review_complete"
	ActionAllComplete     = "all_complete"
)

// InitResponse is the payload of the init endpoint.
type InitResponse struct {
	SessionID         SessionID `json:"session_id" validate:"required"`
	CurrentSet        words.Set `json:"current_set" validate:"required,min=1,dive"`
	Categories        []string  `json:"categories"`
	TotalWordsCount   int       `json:"total_words_count" validate:"gte=0"`
	CurrentGroupIndex int       `json:"current_group_index" validate:"gte=0"`
	TotalGroups       int       `json:"total_groups"`
	UserProgress      Progress  `json:"user_progress"`
	ReviewMode        bool      `json:"review_mode"`
	Message           string    `json:"message"`
}

type sessionRequest struct {
	SessionID SessionID `json:"session_id"`
}

type checkAnswerRequest struct {
	SessionID SessionID  `json:"session_id"`
	UserInput string     `json:"user_input"`
	WordData  words.Word `json:"word_data"`
	Mode      string     `json:"mode"`
}

// Verdict is the backend's judgement of one answer.
type Verdict struct {
	IsCorrect bool    `json:"is_correct"`
	Accuracy  float64 `json:"accuracy" validate:"gte=0,lte=100"`
}

type nextWordRequest struct {
	SessionID    SessionID `json:"session_id"`
	CurrentIndex int       `json:"current_index"`
}

// Transition is a server driven state change. Fields beyond Action are
// present depending on the action tag.
type Transition struct {
	Action            string    `json:"action"`
	Index             *int      `json:"index"`
	CurrentSet        words.Set `json:"current_set" validate:"omitempty,dive"`
	CurrentGroupIndex *int      `json:"current_group_index"`
	TotalGroups       int       `json:"total_groups"`
	ReviewMode        bool      `json:"review_mode"`
	Message           string    `json:"message"`
}

// SheetResponse is the payload of the load-*-sheet endpoints.
type SheetResponse struct {
	CurrentSet        words.Set `json:"current_set" validate:"required,min=1,dive"`
	TotalWordsCount   int       `json:"total_words_count"`
	CurrentGroupIndex *int      `json:"current_group_index"`
	TotalGroups       int       `json:"total_groups"`
	UserProgress      Progress  `json:"user_progress"`
	ReviewMode        bool      `json:"review_mode"`
	Message           string    `json:"message"`
}

type groupRequest struct {
	SessionID SessionID `json:"session_id"`
	Category  string    `json:"category,omitempty"`
	Mode      string    `json:"mode"`
}

// GroupResponse is the payload of next-nine-words and repeat-nine-words.
type GroupResponse struct {
	CurrentSet        words.Set `json:"current_set" validate:"required,min=1,dive"`
	CurrentGroupIndex *int      `json:"current_group_index"`
	ReviewMode        bool      `json:"review_mode"`
	Message           string    `json:"message"`
	Error             string    `json:"error"`
}

type reviewRequest struct {
	SessionID SessionID `json:"session_id"`
	Mode      string    `json:"mode"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type addWordRequest struct {
	Word    string `json:"word" validate:"required"`
	Meaning string `json:"meaning" validate:"required"`
}

type deleteWordRequest struct {
	Word string `json:"word" validate:"required"`
}

type sentenceRequest struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence,omitempty"`
}

// statusResponse is the common {success, message, error} envelope.
type statusResponse struct {
	Success   *bool  `json:"success"`
	Message   string `json:"message"`
	Error     string `json:"error"`
	Sentences string `json:"sentences"`
	Feedback  string `json:"feedback"`
}

func (r statusResponse) failed() (string, bool) {
	if r.Success != nil && !*r.Success {
		msg := r.Error
		if msg == "" {
			msg = r.Message
		}
		if msg == "" {
			msg = "request failed"
		}
		return msg, true
	}
	return "", false
}
