package grading

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Placeholder replaces a redacted name.
const Placeholder = "[NAME]"

type token struct {
	text string
	word bool
}

// Redact replaces the student's full name and first name with Placeholder.
// Matching is whole-word and case-insensitive. The full name matches as
// written, and also when its words are separated by any run of whitespace or
// initial periods, so "A.J. Lee" and "a j lee" are both caught. A one-letter
// first name (an initial) is only redacted as part of the full name.
// Nicknames and misspellings are not detected.
func Redact(text, fullName string) string {
	fullName = strings.Join(strings.Fields(fullName), " ")
	if fullName == "" || text == "" {
		return text
	}
	text = replaceWhole(text, fullName)

	fold := cases.Fold()
	var nameParts []string
	for _, t := range tokenize(fullName) {
		if t.word {
			nameParts = append(nameParts, fold.String(t.text))
		}
	}
	if len(nameParts) == 0 {
		return text
	}
	first := nameParts[0]
	if utf8.RuneCountInString(first) < 2 {
		first = ""
	}

	tokens := tokenize(text)
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(tokens); {
		t := tokens[i]
		if !t.word {
			b.WriteString(t.text)
			i++
			continue
		}
		if n := matchName(tokens[i:], nameParts, fold); n > 0 {
			b.WriteString(Placeholder)
			i += n
			continue
		}
		if first != "" && fold.String(t.text) == first {
			b.WriteString(Placeholder)
		} else {
			b.WriteString(t.text)
		}
		i++
	}
	return b.String()
}

// replaceWhole replaces case-insensitive occurrences of name that are not
// part of a longer word.
func replaceWhole(text, name string) string {
	var b strings.Builder
	n := len(name)
	for i := 0; i < len(text); {
		if i+n <= len(text) && strings.EqualFold(text[i:i+n], name) &&
			!wordBefore(text, i) && !wordAfter(text, i+n) {
			b.WriteString(Placeholder)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		b.WriteString(text[i : i+size])
		i += size
	}
	return b.String()
}

func wordBefore(s string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return i > 0 && isWordRune(r)
}

func wordAfter(s string, i int) bool {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return i < len(s) && isWordRune(r)
}

// matchName returns how many tokens the full name spans at the head of tokens,
// or 0 when it does not match there. Single-word names never match here; the
// first-name check covers them.
func matchName(tokens []token, parts []string, fold cases.Caser) int {
	if len(parts) < 2 {
		return 0
	}
	pos := 0
	for i, part := range parts {
		if i > 0 {
			if pos >= len(tokens) || tokens[pos].word || !nameSeparator(tokens[pos].text) {
				return 0
			}
			pos++
		}
		if pos >= len(tokens) || !tokens[pos].word || fold.String(tokens[pos].text) != part {
			return 0
		}
		pos++
	}
	return pos
}

// nameSeparator reports whether s may sit between two words of a name:
// whitespace and periods only, at least one of them.
func nameSeparator(s string) bool {
	return s != "" && strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '.'
	}) == ""
}

// tokenize splits s into alternating word and non-word runs. Apostrophes and
// hyphens inside a word belong to it, so "O'Neil" and "Mary-Jane" stay whole.
func tokenize(s string) []token {
	var (
		tokens []token
		cur    []rune
		inWord bool
	)
	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, token{text: string(cur), word: inWord})
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		isWord := isWordRune(r)
		if !isWord && inWord && isJoiner(r) && i+1 < len(runes) && isWordRune(runes[i+1]) {
			isWord = true
		}
		if isWord != inWord {
			flush()
			inWord = isWord
		}
		cur = append(cur, r)
	}
	flush()
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isJoiner(r rune) bool {
	return r == '\'' || r == '’' || r == '-'
}
