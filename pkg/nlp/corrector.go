package nlp

import (
	"strings"
)

const DefaultCorrectionThreshold = 0.7

// Correction records a single token rewrite.
type Correction struct {
	From  string
	To    string
	Score float64
}

type SpellingCorrector struct {
	threshold float64
	protected map[string]bool
	// OnCorrect is called for every rewritten token when set.
	OnCorrect func(c Correction)
}

// NewSpellingCorrector returns a corrector that never rewrites the protected
// words. A threshold <= 0 falls back to DefaultCorrectionThreshold.
func NewSpellingCorrector(threshold float64, protected ...string) *SpellingCorrector {
	if threshold <= 0 {
		threshold = DefaultCorrectionThreshold
	}

	p := make(map[string]bool, len(protected))
	for _, w := range protected {
		p[strings.ToLower(w)] = true
	}

	return &SpellingCorrector{
		threshold: threshold,
		protected: p,
	}
}

func (c *SpellingCorrector) Correct(text string, vocabulary []string) string {
	words := strings.Fields(strings.ToLower(text))
	if len(vocabulary) == 0 {
		return strings.Join(words, " ")
	}

	corrected := make([]string, 0, len(words))
	for _, word := range words {
		corrected = append(corrected, c.correctWord(word, vocabulary))
	}
	return strings.Join(corrected, " ")
}

func (c *SpellingCorrector) correctWord(word string, vocabulary []string) string {
	if len([]rune(word)) < 3 || isNumeric(word) || c.protected[word] {
		return word
	}

	best := ""
	bestScore := 0.0
	for _, candidate := range vocabulary {
		score := Similarity(word, candidate)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	if best == "" || bestScore < c.threshold {
		return word
	}

	best = strings.ToLower(best)
	if best != word && c.OnCorrect != nil {
		c.OnCorrect(Correction{From: word, To: best, Score: bestScore})
	}
	return best
}
