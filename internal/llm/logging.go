package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/wordquiz/internal/store"
)

// RequestLog persists LLM request records. The journal implements it.
type RequestLog interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every attempt in the application log and, when a
// RequestLog is set, in the journal for `wordquiz llm stats`.
type LoggingProvider struct {
	inner  Provider
	name   string
	reqLog RequestLog
}

// WithLogging wraps p. name is the provider name stored with each record.
func WithLogging(p Provider, name string, reqLog RequestLog) Provider {
	return &LoggingProvider{inner: p, name: name, reqLog: reqLog}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     orUnknown(req.Purpose),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		slog.Warn("llm request failed", "purpose", data.Purpose, "model", data.Model, "latency", latency, "error", err)
	} else {
		slog.Info("llm request", "purpose", data.Purpose, "model", data.Model, "latency", latency,
			"input_tokens", data.InputTokens, "output_tokens", data.OutputTokens)
	}

	if l.reqLog != nil {
		if logErr := l.reqLog.AppendLLMRequest(ctx, data); logErr != nil {
			slog.Warn("journal llm request", "error", logErr)
		}
	}
	return resp, err
}

// transcript renders req as shown by `wordquiz llm view`.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema %s, max %d tokens]\n%s\n", req.Schema.Name, req.maxTokens(), def)
		}
	}
	return b.String()
}
