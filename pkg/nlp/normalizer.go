package nlp

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var contractions = []struct {
	from string
	to   string
}{
	{"won't", "will not"},
	{"can't", "cannot"},
	{"let's", "let us"},
	{"n't", " not"},
	{"'re", " are"},
	{"'ve", " have"},
	{"'ll", " will"},
	{"'d", " would"},
	{"'m", " am"},
}

var questionWords = map[string]bool{
	"what": true, "when": true, "where": true, "which": true, "who": true,
	"how": true, "why": true, "can": true, "could": true, "do": true,
	"does": true, "is": true, "are": true, "will": true, "would": true,
}

var defaultStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "am": true,
	"i": true, "me": true, "my": true, "you": true, "your": true, "we": true,
	"to": true, "for": true, "of": true, "in": true, "on": true, "at": true,
	"and": true, "or": true, "it": true, "this": true, "that": true,
	"please": true, "pls": true, "plz": true, "do": true, "does": true,
	"with": true, "be": true, "can": true, "would": true, "could": true,
	"like": true, "want": true, "need": true, "some": true, "any": true,
	"there": true, "here": true, "have": true, "has": true, "s": true,
}

type Normalizer struct {
	stopWords map[string]bool
}

func NewNormalizer() *Normalizer {
	return &Normalizer{stopWords: defaultStopWords}
}

// Normalize lower-cases, expands contractions, folds accents and reduces
// punctuation runs to single spaces.
func (n *Normalizer) Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.NewReplacer("’", "'", "‘", "'").Replace(text)
	for _, c := range contractions {
		text = strings.ReplaceAll(text, c.from, c.to)
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		result = text
	}

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	return strings.Join(strings.Fields(result), " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func (n *Normalizer) Tokens(normalized string) []string {
	var tokens []string
	for _, word := range strings.Fields(normalized) {
		if len(word) > 1 && !n.stopWords[word] {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func (n *Normalizer) IsStopWord(word string) bool {
	return n.stopWords[strings.ToLower(word)]
}

func (n *Normalizer) IsQuestion(raw, normalized string) bool {
	if strings.HasSuffix(strings.TrimSpace(raw), "?") {
		return true
	}
	first, _, _ := strings.Cut(normalized, " ")
	return questionWords[first]
}

// Similarity scores two strings in [0,1] after normalization: 1 for equal,
// length ratio for containment, otherwise Levenshtein based.
func (n *Normalizer) Similarity(a, b string) float64 {
	normA := strings.ReplaceAll(n.Normalize(a), " ", "")
	normB := strings.ReplaceAll(n.Normalize(b), " ", "")

	if normA == normB {
		return 1.0
	}
	if normA == "" || normB == "" {
		return 0.0
	}

	if strings.Contains(normA, normB) || strings.Contains(normB, normA) {
		shorter, longer := normA, normB
		if len(normA) > len(normB) {
			shorter, longer = normB, normA
		}
		return float64(len(shorter)) / float64(len(longer))
	}

	distance := levenshteinDistance(normA, normB)
	maxLen := math.Max(float64(len(normA)), float64(len(normB)))
	return math.Max(0, 1.0-(float64(distance)/maxLen))
}

func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
