package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrect(t *testing.T) {
	vocabulary := []string{"banana", "paneer", "oats", "chicken curry"}
	c := NewSpellingCorrector(0, ReservedWords()...)

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "near miss is rewritten", text: "calories in bananna", want: "calories in banana"},
		{name: "lower-cases", text: "Calories in PANEER", want: "calories in paneer"},
		{name: "far tokens stay", text: "calories in pizza", want: "calories in pizza"},
		{name: "short tokens stay", text: "ot", want: "ot"},
		{name: "numbers stay", text: "2 banana", want: "2 banana"},
		{name: "keywords are protected", text: "give me more", want: "give me more"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Correct(tt.text, vocabulary))
		})
	}
}

func TestCorrectIsDeterministicOnTies(t *testing.T) {
	c := NewSpellingCorrector(0.5)

	// "dal" and "daa" share the same distance from "dax"; the first entry wins.
	got := c.Correct("dax", []string{"dal", "daa"})
	assert.Equal(t, "dal", got)
}

func TestCorrectReportsCorrections(t *testing.T) {
	var seen []Correction
	c := NewSpellingCorrector(0)
	c.OnCorrect = func(cr Correction) { seen = append(seen, cr) }

	c.Correct("panner", []string{"paneer"})

	if assert.Len(t, seen, 1) {
		assert.Equal(t, "panner", seen[0].From)
		assert.Equal(t, "paneer", seen[0].To)
		assert.GreaterOrEqual(t, seen[0].Score, DefaultCorrectionThreshold)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Café", "cafe"))
	assert.InDelta(t, 0.8333, Similarity("banan", "banana"), 0.001)
	assert.Equal(t, 0.0, Similarity("", "abc"))
}
