package keywords

import (
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"sort"
	"strings"
	"unicode"
)

const (
	MaxKeywords     = 10
	dynamicKeywords = 5
	minTokenLength  = 3
)

// Extract returns up to MaxKeywords distinct keywords for a posting description: the five most
// frequent significant words first, followed by curated vocabulary terms in the order they occur.
func Extract(description string) []string {
	if description == "" {
		return []string{}
	}

	tokens := Tokenize(description)

	dynamic := rankByFrequency(significant(tokens))
	if len(dynamic) > dynamicKeywords {
		dynamic = dynamic[:dynamicKeywords]
	}

	curated := lo.Filter(tokens, func(token string, _ int) bool {
		return curatedVocabulary[token]
	})

	keywords := lo.Uniq(append(dynamic, curated...))
	if len(keywords) > MaxKeywords {
		keywords = keywords[:MaxKeywords]
	}
	return keywords
}

// Tokenize lowercases text and splits it into runs of letters and digits.
// An apostrophe between two word characters is kept, so contractions stay one token.
func Tokenize(text string) []string {
	// cases.Caser is stateful and cannot be shared between goroutines
	lower := []rune(cases.Lower(language.English).String(text))

	var tokens []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}

	for i, r := range lower {
		switch {
		case isWordRune(r):
			word.WriteRune(r)
		case isApostrophe(r) && word.Len() > 0 && i+1 < len(lower) && isWordRune(lower[i+1]):
			word.WriteRune('\'')
		default:
			flush()
		}
	}
	flush()

	return tokens
}

func significant(tokens []string) []string {
	return lo.Filter(tokens, func(token string, _ int) bool {
		return len([]rune(token)) >= minTokenLength && !stopWords[token]
	})
}

// rankByFrequency orders distinct tokens by count, highest first. Equal counts keep the order
// of first occurrence.
func rankByFrequency(tokens []string) []string {
	counts := make(map[string]int, len(tokens))
	var ranked []string
	for _, token := range tokens {
		if counts[token] == 0 {
			ranked = append(ranked, token)
		}
		counts[token]++
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	return ranked
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}
