package templates

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChooseReturnsAVariant(t *testing.T) {
	s := New(WithRand(rand.New(rand.NewSource(1))))

	for _, category := range []Category{Greeting, Goodbye, Fallback, Hydration, BMIBMR, DietTip, AskFoodName} {
		got := s.Choose(category)
		assert.Contains(t, s.Variants(category), got, category)
	}
}

func TestChooseUnknownCategory(t *testing.T) {
	s := New()
	assert.Equal(t, Unknown, s.Choose(Category("does_not_exist")))
}

func TestWithTemplates(t *testing.T) {
	s := New(WithTemplates(Greeting, "only one"))

	assert.Equal(t, "only one", s.Choose(Greeting))
	assert.Equal(t, []string{"only one"}, s.Variants(Greeting))
}

func TestChooseCoversAllVariants(t *testing.T) {
	s := New(WithRand(rand.New(rand.NewSource(42))))
	seen := map[string]bool{}

	for i := 0; i < 500; i++ {
		seen[s.Choose(Goodbye)] = true
	}

	assert.Len(t, seen, len(s.Variants(Goodbye)))
}

func TestIntn(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.Intn(0))
	for i := 0; i < 20; i++ {
		n := s.Intn(3)
		assert.True(t, n >= 0 && n < 3)
	}
}
