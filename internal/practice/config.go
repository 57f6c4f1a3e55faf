package practice

// Config holds LLM generation settings for the local coach.
type Config struct {
	// Sentences is how many example sentences to ask for.
	Sentences int
	// SentenceTokens is the reply budget per requested sentence, which
	// covers the English line and its translation.
	SentenceTokens int
	// FeedbackTokens is the reply budget for a sentence review.
	FeedbackTokens int
	Temperature    float64
}

// DefaultConfig returns sensible defaults for sentence coaching.
func DefaultConfig() Config {
	return Config{
		Sentences:      3,
		SentenceTokens: 160,
		FeedbackTokens: 320,
		Temperature:    0.7,
	}
}

// budget is the token cap for a request with the given purpose.
func (c Config) budget(purpose string) int {
	switch purpose {
	case PurposeSentences:
		return max(c.Sentences, 1) * c.SentenceTokens
	case PurposeFeedback:
		return c.FeedbackTokens
	}
	return 0
}
