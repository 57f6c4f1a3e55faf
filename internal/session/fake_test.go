package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/wordquiz/internal/api"
	"github.com/abhisek/wordquiz/internal/words"
)

// fakeBackend serves scripted responses and records every call.
type fakeBackend struct {
	calls []string

	initErr    error
	set        words.Set
	categories []string

	verdicts    map[string]bool // word -> correct
	checkInputs []string

	transitions []*api.Transition // served in order by NextWord
	sheets      map[string]words.Set
	review      *api.Transition
	reviewErr   error
}

func newFakeBackend(n int) *fakeBackend {
	return &fakeBackend{set: makeSet("w", n), verdicts: map[string]bool{}}
}

func makeSet(prefix string, n int) words.Set {
	set := make(words.Set, n)
	for i := range set {
		set[i] = words.Word{Word: fmt.Sprintf("%s%d", prefix, i), Meaning: fmt.Sprintf("meaning %d", i)}
	}
	return set
}

func (f *fakeBackend) Init(ctx context.Context) (*api.InitResponse, error) {
	f.calls = append(f.calls, "init")
	if f.initErr != nil {
		return nil, f.initErr
	}
	return &api.InitResponse{
		SessionID:         "sess-1",
		CurrentSet:        f.set,
		Categories:        f.categories,
		TotalWordsCount:   100,
		CurrentGroupIndex: 1,
		Message:           "welcome back",
	}, nil
}

func (f *fakeBackend) CheckAnswer(ctx context.Context, id api.SessionID, input string, w words.Word, mode string) (*api.Verdict, error) {
	f.calls = append(f.calls, "check-answer")
	f.checkInputs = append(f.checkInputs, input)
	correct, ok := f.verdicts[w.Word]
	if !ok {
		correct = input == w.Word
	}
	return &api.Verdict{IsCorrect: correct, Accuracy: 50}, nil
}

func (f *fakeBackend) NextWord(ctx context.Context, id api.SessionID, index int) (*api.Transition, error) {
	f.calls = append(f.calls, "next-word")
	if len(f.transitions) > 0 {
		tr := f.transitions[0]
		f.transitions = f.transitions[1:]
		return tr, nil
	}
	next := index + 1
	return &api.Transition{Action: api.ActionNextWord, Index: &next}, nil
}

func (f *fakeBackend) LoadSheet(ctx context.Context, endpoint string, id api.SessionID) (*api.SheetResponse, error) {
	f.calls = append(f.calls, endpoint)
	set, ok := f.sheets[endpoint]
	if !ok {
		set = makeSet(endpoint, 10)
	}
	group := 0
	return &api.SheetResponse{CurrentSet: set, TotalWordsCount: 50, CurrentGroupIndex: &group}, nil
}

func (f *fakeBackend) NextGroup(ctx context.Context, id api.SessionID, category, mode string) (*api.GroupResponse, error) {
	f.calls = append(f.calls, "next-nine-words:"+category)
	group := 3
	return &api.GroupResponse{CurrentSet: makeSet("g", 9), CurrentGroupIndex: &group, Message: "group 4"}, nil
}

func (f *fakeBackend) RepeatGroup(ctx context.Context, id api.SessionID) (*api.GroupResponse, error) {
	f.calls = append(f.calls, "repeat-nine-words")
	return &api.GroupResponse{CurrentSet: f.set}, nil
}

func (f *fakeBackend) StartReview(ctx context.Context, id api.SessionID, mode string) (*api.Transition, error) {
	f.calls = append(f.calls, "start_review")
	return f.reviewResponse()
}

func (f *fakeBackend) SkipReview(ctx context.Context, id api.SessionID, mode string) (*api.Transition, error) {
	f.calls = append(f.calls, "skip_review")
	return f.reviewResponse()
}

func (f *fakeBackend) reviewResponse() (*api.Transition, error) {
	if f.reviewErr != nil {
		return nil, f.reviewErr
	}
	if f.review != nil {
		return f.review, nil
	}
	return &api.Transition{}, nil
}

var errBackendDown = errors.New("connection refused")
