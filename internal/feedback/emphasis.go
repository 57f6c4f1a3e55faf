package feedback

import "unicode"

// Emphasize splits text into segments, marking every whole-word,
// case-insensitive occurrence of target. A match must start and end on a
// word boundary, so "cat" never matches inside "category".
func Emphasize(text, target string) Line {
	pattern := []rune(target)
	if len(pattern) == 0 {
		return Line{{Text: text}}
	}

	runes := []rune(text)
	var line Line
	start := 0
	for i := 0; i < len(runes); {
		if boundaryBefore(runes, i) {
			if n := matchAt(runes, i, pattern); n > 0 && boundaryAfter(runes, i+n) {
				if i > start {
					line = append(line, Segment{Text: string(runes[start:i])})
				}
				line = append(line, Segment{Text: string(runes[i : i+n]), Emphasis: true})
				i += n
				start = i
				continue
			}
		}
		i++
	}
	if start < len(runes) || len(line) == 0 {
		line = append(line, Segment{Text: string(runes[start:])})
	}
	return line
}

// Matches reports whether text contains a whole-word occurrence of target.
func Matches(text, target string) bool {
	for _, s := range Emphasize(text, target) {
		if s.Emphasis {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundaryBefore(runes []rune, i int) bool {
	return i == 0 || !isWordRune(runes[i-1])
}

func boundaryAfter(runes []rune, i int) bool {
	return i >= len(runes) || !isWordRune(runes[i])
}

// matchAt returns the number of runes matched at i, or 0.
func matchAt(runes []rune, i int, pattern []rune) int {
	if len(runes)-i < len(pattern) {
		return 0
	}
	for j, p := range pattern {
		if !equalFold(runes[i+j], p) {
			return 0
		}
	}
	return len(pattern)
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	return unicode.ToLower(a) == unicode.ToLower(b)
}
