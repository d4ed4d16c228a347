package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordquest/internal/content"
)

func testWords(n int) []content.Word {
	words := make([]content.Word, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, content.Word{
			Word:    fmt.Sprintf("word-%d", i),
			Meaning: fmt.Sprintf("뜻-%d", i),
			Level:   1,
		})
	}
	return words
}

func testGenerator(catalog []content.Word) *Generator {
	return &Generator{
		rnd:     rand.New(rand.NewSource(42)),
		catalog: catalog,
	}
}

func TestBuildQuestionShape(t *testing.T) {
	catalog := testWords(12)
	g := testGenerator(catalog)

	questions := g.Build(catalog, 5)

	require.Len(t, questions, 5)
	for _, q := range questions {
		assert.Len(t, q.Options, OptionCount)
		require.GreaterOrEqual(t, q.CorrectIndex, 0)
		require.Less(t, q.CorrectIndex, len(q.Options))

		// Options are unique and the flagged one is the real answer.
		seen := make(map[string]bool)
		for _, opt := range q.Options {
			assert.False(t, seen[opt], "duplicate option %q", opt)
			seen[opt] = true
		}
		want := q.Word.Meaning
		if q.Type == TypeMeaningToWord {
			want = q.Word.Word
		}
		assert.Equal(t, want, q.Options[q.CorrectIndex])
	}
}

func TestBuildLimitsCount(t *testing.T) {
	catalog := testWords(12)
	g := testGenerator(catalog)

	assert.Len(t, g.Build(catalog, 3), 3)
	assert.Len(t, g.Build(catalog[:2], 5), 2)
}

func TestBuildUsesTranslationTypesOnly(t *testing.T) {
	catalog := testWords(12)
	g := testGenerator(catalog)

	for i := 0; i < 20; i++ {
		for _, q := range g.Build(catalog, 5) {
			assert.Contains(t, []Type{TypeWordToMeaning, TypeMeaningToWord}, q.Type)
		}
	}
}

func TestBuildFillsDistractorsFromCatalog(t *testing.T) {
	catalog := testWords(12)
	g := testGenerator(catalog)

	// A one-word session cannot supply distractors on its own.
	questions := g.Build(catalog[:1], 1)

	require.Len(t, questions, 1)
	assert.Len(t, questions[0].Options, OptionCount)
}
