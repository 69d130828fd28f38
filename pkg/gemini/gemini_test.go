package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGemini struct {
	answer string
	err    error
	prompt string
	ctxErr error
}

func (f *fakeGemini) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	f.ctxErr = ctx.Err()
	return f.answer, f.err
}

func (f *fakeGemini) Close() {}

func TestNounTaggerParsesAnswer(t *testing.T) {
	fake := &fakeGemini{answer: " Paneer Tikka, dal.\n"}
	tagger := NewNounTagger(fake, 0, nil)

	nouns, err := tagger.Tag(context.Background(), "calories in paneer tikka and dal")

	require.NoError(t, err)
	assert.Equal(t, []string{"paneer tikka", "dal"}, nouns)
	assert.True(t, strings.Contains(fake.prompt, "calories in paneer tikka and dal"))
}

func TestNounTaggerNone(t *testing.T) {
	tagger := NewNounTagger(&fakeGemini{answer: "NONE"}, 0, nil)

	nouns, err := tagger.Tag(context.Background(), "hello")

	require.NoError(t, err)
	assert.Empty(t, nouns)
}

func TestNounTaggerPropagatesErrors(t *testing.T) {
	tagger := NewNounTagger(&fakeGemini{err: errors.New("quota")}, 0, nil)

	_, err := tagger.Tag(context.Background(), "banana")
	assert.Error(t, err)

	_, err = NewNounTagger(nil, 0, nil).Tag(context.Background(), "banana")
	assert.Error(t, err)
}

func TestNounTaggerHonoursCallerContext(t *testing.T) {
	fake := &fakeGemini{answer: "banana"}
	tagger := NewNounTagger(fake, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tagger.Tag(ctx, "banana")
	require.NoError(t, err)
	assert.ErrorIs(t, fake.ctxErr, context.Canceled)
}
