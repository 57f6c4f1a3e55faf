package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordquiz/internal/words"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("localhost:5000")
	require.Error(t, err)
}

func TestInit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/init", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(w, http.StatusOK, map[string]any{
			"session_id":          "abc-123",
			"current_set":         []map[string]string{{"word": "cat", "meaning": "고양이"}},
			"categories":          []string{"animals"},
			"total_words_count":   120,
			"current_group_index": 2,
			"user_progress":       map[string]int{"completed_count": 20},
			"review_mode":         false,
			"message":             "welcome",
		})
	})
	c := newTestClient(t, mux)

	resp, err := c.Init(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SessionID("abc-123"), resp.SessionID)
	assert.Equal(t, words.Set{{Word: "cat", Meaning: "고양이"}}, resp.CurrentSet)
	assert.Equal(t, []string{"animals"}, resp.Categories)
	assert.Equal(t, 120, resp.TotalWordsCount)
	assert.Equal(t, 2, resp.CurrentGroupIndex)
	assert.Equal(t, 20, resp.UserProgress.CompletedCount)
}

func TestInitMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"empty set", `{"session_id":"x","current_set":[]}`},
		{"missing session", `{"current_set":[{"word":"cat"}]}`},
		{"word without identity", `{"session_id":"x","current_set":[{"meaning":"m"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			}))
			_, err := c.Init(context.Background())
			var malformed *MalformedError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, "init", malformed.Endpoint)
		})
	}
}

func TestSessionIDNumeric(t *testing.T) {
	var resp InitResponse
	err := json.Unmarshal([]byte(`{"session_id": 1712345678.123, "current_set": [{"word":"a"}]}`), &resp)
	require.NoError(t, err)
	assert.Equal(t, SessionID("1712345678.123"), resp.SessionID)
}

func TestCheckAnswerRequest(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/check-answer", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "s1", req["session_id"])
		assert.Equal(t, "go/went", req["user_input"])
		assert.Equal(t, "ed", req["mode"])
		wordData := req["word_data"].(map[string]any)
		assert.Equal(t, "go", wordData["word"])
		assert.Equal(t, "went", wordData["past_tense"])

		writeJSON(w, http.StatusOK, map[string]any{"is_correct": true, "accuracy": 87.5})
	}))

	v, err := c.CheckAnswer(context.Background(), "s1", "go/went", words.Word{Word: "go", PastTense: "went"}, "ed")
	require.NoError(t, err)
	assert.True(t, v.IsCorrect)
	assert.InDelta(t, 87.5, v.Accuracy, 0.001)
}

func TestNextWordTransitions(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req nextWordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.CurrentIndex < 9 {
			writeJSON(w, http.StatusOK, map[string]any{"action": "next_word", "index": req.CurrentIndex + 1})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"action":      "repeat_incorrect",
			"current_set": []map[string]string{{"word": "dog"}},
			"message":     "again",
		})
	}))

	tr, err := c.NextWord(context.Background(), "s1", 3)
	require.NoError(t, err)
	assert.Equal(t, ActionNextWord, tr.Action)
	require.NotNil(t, tr.Index)
	assert.Equal(t, 4, *tr.Index)

	tr, err = c.NextWord(context.Background(), "s1", 9)
	require.NoError(t, err)
	assert.Equal(t, ActionRepeatIncorrect, tr.Action)
	assert.Equal(t, "again", tr.Message)
	assert.Len(t, tr.CurrentSet, 1)
}

func TestHTTPErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Session not found"})
	}))

	_, err := c.NextWord(context.Background(), "gone", 0)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Session not found", httpErr.Message)
	assert.Equal(t, "next-word", httpErr.Endpoint)
}

func TestLoginRedirectIsUnauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/init", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>login</html>")
	})
	c := newTestClient(t, mux)

	_, err := c.Init(context.Background())
	assert.True(t, errors.Is(err, ErrUnauthorized), "got %v", err)
}

func TestLoginKeepsCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Username != "kim" || req.Password != "pw" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "bad"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "ok", Path: "/"})
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	mux.HandleFunc("/api/get-categories", func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("session"); err != nil || ck.Value != "ok" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		writeJSON(w, http.StatusOK, []string{"food", "travel"})
	})
	c := newTestClient(t, mux)

	err := c.Login(context.Background(), "kim", "nope", false)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Categories(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, c.Login(context.Background(), "kim", "pw", true))
	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"food", "travel"}, cats)
}

func TestTimeoutIsRequestFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.RepeatGroup(context.Background(), "s1")
	require.Error(t, err)
}

func TestWithHTTPClientLeavesCallerClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/init", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	shared := &http.Client{Timeout: 30 * time.Second}
	c, err := New(srv.URL, WithHTTPClient(shared))
	require.NoError(t, err)

	_, err = c.Init(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.Nil(t, shared.CheckRedirect)
	assert.Nil(t, shared.Jar)
	assert.Equal(t, 30*time.Second, shared.Timeout)
	assert.Equal(t, 30*time.Second, c.http.Timeout)
}

func TestWithTimeoutAnyOrder(t *testing.T) {
	for name, opts := range map[string][]Option{
		"timeout first": {WithTimeout(3 * time.Second), WithHTTPClient(&http.Client{})},
		"timeout last":  {WithHTTPClient(&http.Client{}), WithTimeout(3 * time.Second)},
		"no client":     {WithTimeout(3 * time.Second)},
	} {
		t.Run(name, func(t *testing.T) {
			c, err := New("http://localhost:5000", opts...)
			require.NoError(t, err)
			assert.Equal(t, 3*time.Second, c.http.Timeout)
			assert.NotNil(t, c.http.Jar)
			assert.NotNil(t, c.http.CheckRedirect)
		})
	}
}

func TestAIEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ai-generate-sentences", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "sentences": "1. I run.\n2. We run."})
	})
	mux.HandleFunc("/api/ai-check-sentence", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"success": false, "error": "AI unavailable"})
	})
	c := newTestClient(t, mux)

	out, err := c.GenerateSentences(context.Background(), "run")
	require.NoError(t, err)
	assert.Contains(t, out, "We run.")

	_, err = c.CheckSentence(context.Background(), "run", "I runs.")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "AI unavailable", httpErr.Message)
}

func TestServiceFailureFlag(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "quota"})
	}))
	_, err := c.GenerateSentences(context.Background(), "run")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "quota", svcErr.Message)
}

func TestAudio(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/play-audio", r.URL.Path)
		assert.Equal(t, "hello world", r.URL.Query().Get("word"))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3fake"))
	}))
	data, err := c.Audio(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3fake"), data)
}

func TestAddWordValidatesLocally(t *testing.T) {
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "added"})
	}))

	_, err := c.AddWord(context.Background(), "  ", "meaning")
	require.Error(t, err)
	assert.False(t, called)

	msg, err := c.AddWord(context.Background(), "apple", "사과")
	require.NoError(t, err)
	assert.Equal(t, "added", msg)
	assert.True(t, called)
}

func TestLoadSheetRejectsOtherEndpoints(t *testing.T) {
	c, err := New("http://localhost:1")
	require.NoError(t, err)
	_, err = c.LoadSheet(context.Background(), "init", "s1")
	require.Error(t, err)
}
