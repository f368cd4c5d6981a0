// ABOUTME: Content metrics computed at ingestion: word count, reading time,
// ABOUTME: Flesch reading ease, and frequency-based keyword extraction
package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Reading speed used for the reading-time estimate.
const wordsPerMinute = 200

// Cap on extracted keywords per item.
const maxKeywords = 10

// Metrics is the informational analysis payload stored with an item.
// Nothing in the classification or selection path consults it.
type Metrics struct {
	Keywords           []string
	WordCount          int
	SentenceCount      int
	ReadingTimeMinutes int
	ReadabilityScore   float64
}

var wordPattern = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9'\-\.]*`)

var sentencePattern = regexp.MustCompile(`[.!?]+(\s|$)`)

// Analyze computes metrics over plain text. HTML should be flattened
// with ExtractText first.
func Analyze(text string) Metrics {
	text = strings.TrimSpace(text)
	if text == "" {
		return Metrics{}
	}

	words := wordPattern.FindAllString(text, -1)
	wordCount := len(words)

	sentenceCount := len(sentencePattern.FindAllString(text, -1))
	if sentenceCount == 0 && wordCount > 0 {
		sentenceCount = 1
	}

	m := Metrics{
		WordCount:     wordCount,
		SentenceCount: sentenceCount,
		Keywords:      extractKeywords(words),
	}

	if wordCount > 0 {
		m.ReadingTimeMinutes = int(math.Max(1, math.Ceil(float64(wordCount)/wordsPerMinute)))
		m.ReadabilityScore = fleschScore(words, sentenceCount)
	}

	return m
}

// fleschScore is the Flesch reading ease formula over a syllable
// heuristic, clamped to [0,100].
func fleschScore(words []string, sentences int) float64 {
	if len(words) == 0 || sentences == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	avgSentenceLen := float64(len(words)) / float64(sentences)
	avgSyllables := float64(syllables) / float64(len(words))

	score := 206.835 - 1.015*avgSentenceLen - 84.6*avgSyllables

	return math.Max(0, math.Min(100, score))
}

// countSyllables approximates syllables by counting vowel groups after
// stripping silent suffixes. Always at least one.
func countSyllables(word string) int {
	word = strings.ToLower(word)

	word = strings.TrimSuffix(word, "e")
	word = strings.TrimSuffix(word, "ed")
	word = strings.TrimSuffix(word, "es")

	count := 0
	prevVowel := false

	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if count < 1 {
		return 1
	}

	return count
}

// extractKeywords returns the most frequent non-stop-word terms,
// ties broken alphabetically for determinism. Acronyms keep their
// case; everything else is lowered.
func extractKeywords(words []string) []string {
	freq := make(map[string]int)
	display := make(map[string]string)

	for _, w := range words {
		term := strings.Trim(w, ".-'")
		key := strings.ToLower(term)
		if len(key) <= 2 || stopWords[key] || isNumeric(key) {
			continue
		}

		freq[key]++

		if term == strings.ToUpper(term) && len(term) <= 5 {
			display[key] = term
		} else if _, ok := display[key]; !ok {
			display[key] = key
		}
	}

	type kw struct {
		term  string
		count int
	}

	ranked := make([]kw, 0, len(freq))
	for term, count := range freq {
		ranked = append(ranked, kw{term, count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].term < ranked[j].term
	})

	n := len(ranked)
	if n > maxKeywords {
		n = maxKeywords
	}

	out := make([]string, 0, n)
	for _, k := range ranked[:n] {
		out = append(out, display[k.term])
	}

	return out
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return len(s) > 0
}

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "has": true,
	"have": true, "had": true, "was": true, "were": true, "with": true,
	"this": true, "that": true, "these": true, "those": true, "from": true,
	"they": true, "their": true, "them": true, "then": true, "than": true,
	"its": true, "it's": true, "into": true, "onto": true, "out": true,
	"our": true, "your": true, "his": true, "her": true, "she": true,
	"him": true, "will": true, "would": true, "could": true, "should": true,
	"been": true, "being": true, "does": true, "did": true, "doing": true,
	"about": true, "above": true, "after": true, "before": true, "below": true,
	"between": true, "both": true, "each": true, "few": true, "more": true,
	"most": true, "other": true, "some": true, "such": true, "only": true,
	"own": true, "same": true, "too": true, "very": true, "just": true,
	"also": true, "when": true, "where": true, "which": true, "while": true,
	"who": true, "whom": true, "why": true, "how": true, "what": true,
	"there": true, "here": true, "over": true, "under": true, "again": true,
	"once": true, "during": true, "because": true, "until": true, "against": true,
	"through": true, "new": true, "now": true, "says": true, "said": true,
}
