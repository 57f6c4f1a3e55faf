package practice

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordquiz/internal/words"
)

const systemPrompt = `You are a friendly English tutor for Korean-speaking learners building their vocabulary. Keep language simple and natural.`

func describeWord(b *strings.Builder, w words.Word) {
	fmt.Fprintf(b, "Word: %s\n", w.Word)
	if w.Meaning != "" {
		fmt.Fprintf(b, "Meaning: %s\n", w.Meaning)
	}
	if w.PastTense != "" {
		fmt.Fprintf(b, "Past tense: %s\n", w.PastTense)
	}
	if w.Example != "" {
		fmt.Fprintf(b, "Known example: %s\n", w.Example)
	}
}

func buildSentencesMessage(w words.Word, n int) string {
	var b strings.Builder
	describeWord(&b, w)
	fmt.Fprintf(&b, `
Instructions:
Write %d short, everyday sentences that use the word in the meaning above.
Do not reuse the known example. Give a Korean translation for each sentence.
`, n)
	return b.String()
}

func buildReviewMessage(w words.Word, sentence string) string {
	var b strings.Builder
	describeWord(&b, w)
	fmt.Fprintf(&b, "Learner sentence: %s\n", sentence)
	b.WriteString(`
Instructions:
Check whether the learner used the word correctly and the sentence is grammatical.
Give short, encouraging feedback. If something is wrong, suggest a corrected sentence.
`)
	return b.String()
}
