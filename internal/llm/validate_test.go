package llm_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/wordquiz/internal/llm"
	"github.com/abhisek/wordquiz/internal/practice"
)

func TestSchemaValidate_Sentences(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		ok    bool
	}{
		{
			name:  "two sentences",
			reply: `{"sentences":[{"english":"I run every morning.","korean":"나는 매일 아침 달린다."},{"english":"She runs a shop.","korean":"그녀는 가게를 운영한다."}]}`,
			ok:    true,
		},
		{name: "no sentences", reply: `{"sentences":[]}`},
		{name: "missing translation", reply: `{"sentences":[{"english":"I run."}]}`},
		{name: "extra field", reply: `{"sentences":[{"english":"I run.","korean":"달린다.","level":"A1"}]}`},
		{name: "sentences as strings", reply: `{"sentences":["I run every morning."]}`},
		{name: "not json", reply: `1. I run every morning.`},
		{name: "empty", reply: ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := practice.SentencesSchema.Validate(json.RawMessage(tt.reply))
			if tt.ok {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			var invalid *llm.InvalidOutputError
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, want InvalidOutputError", err)
			}
			if invalid.Schema != "example-sentences" || string(invalid.Content) != tt.reply {
				t.Errorf("error = %+v", invalid)
			}
		})
	}
}

func TestSchemaValidate_Feedback(t *testing.T) {
	valid := `{"correct":false,"feedback":"Use the past tense.","suggestion":"I ran yesterday."}`
	if err := practice.FeedbackSchema.Validate(json.RawMessage(valid)); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for _, reply := range []string{
		`{"correct":"no","feedback":"Use the past tense.","suggestion":""}`,
		`{"correct":true,"feedback":"Good."}`,
		`{"correct":true,"feedback":"Good.","suggestion":"","score":3}`,
	} {
		if err := practice.FeedbackSchema.Validate(json.RawMessage(reply)); err == nil {
			t.Errorf("Validate(%s) passed", reply)
		}
	}
}

func TestSchemaValidate_NilSchema(t *testing.T) {
	var s *llm.Schema
	if err := s.Validate(json.RawMessage(`"free text"`)); err != nil {
		t.Fatalf("nil schema rejected a reply: %v", err)
	}
}

func TestSchemaValidate_BrokenDefinition(t *testing.T) {
	s := &llm.Schema{
		Name:       "broken",
		Definition: map[string]any{"type": "sentence"},
	}
	for range 2 {
		err := s.Validate(json.RawMessage(`{}`))
		var invalid *llm.InvalidOutputError
		if !errors.As(err, &invalid) {
			t.Fatalf("err = %v, want InvalidOutputError", err)
		}
	}
}
