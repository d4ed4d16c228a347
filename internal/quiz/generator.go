// Package quiz generates multiple-choice vocabulary questions for the
// presentation layer from catalog words.
package quiz

import (
	"math/rand"
	"time"

	"github.com/example/wordquest/internal/content"
)

// Type is the kind of question shown to the learner
type Type string

const (
	// Show the English word, choose the Korean meaning
	TypeWordToMeaning Type = "word-to-meaning"
	// Show the Korean meaning, choose the English word
	TypeMeaningToWord Type = "meaning-to-word"
	// Play the word's audio, choose the Korean meaning
	TypeListening Type = "listening"
)

var questionTypes = []Type{TypeWordToMeaning, TypeMeaningToWord, TypeListening}

// OptionCount is the number of answer options per question
const OptionCount = 4

// Question is one generated quiz question
type Question struct {
	Word         content.Word
	Type         Type
	Options      []string
	CorrectIndex int
}

// Generator builds quiz questions, drawing distractors from the session
// pool first and from the full catalog when the pool is too small.
type Generator struct {
	rnd     *rand.Rand
	catalog []content.Word
}

// NewGenerator creates a generator backed by the full vocabulary catalog
func NewGenerator(catalog []content.Word) *Generator {
	return &Generator{
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		catalog: catalog,
	}
}

// Build generates up to count questions over the given words
func (g *Generator) Build(words []content.Word, count int) []Question {
	pool := make([]content.Word, len(words))
	copy(pool, words)
	g.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > count {
		pool = pool[:count]
	}

	questions := make([]Question, 0, len(pool))
	for _, word := range pool {
		// TODO: include TypeListening here once the bot can attach audio
		// clips; until then only the two translation types are selected.
		qt := questionTypes[g.rnd.Intn(2)]
		questions = append(questions, g.build(word, words, qt))
	}
	return questions
}

func (g *Generator) build(word content.Word, session []content.Word, qt Type) Question {
	correct := answerFor(word, qt)

	options := append(g.distractors(word, session, qt), correct)
	correctIndex := len(options) - 1

	// Shuffle while tracking where the correct answer lands
	g.rnd.Shuffle(len(options), func(i, j int) {
		if i == correctIndex {
			correctIndex = j
		} else if j == correctIndex {
			correctIndex = i
		}
		options[i], options[j] = options[j], options[i]
	})

	return Question{
		Word:         word,
		Type:         qt,
		Options:      options,
		CorrectIndex: correctIndex,
	}
}

// distractors picks wrong answers for a word: session words first, then
// the full catalog, deduplicated against the correct answer and each
// other.
func (g *Generator) distractors(word content.Word, session []content.Word, qt Type) []string {
	correct := answerFor(word, qt)
	seen := map[string]bool{correct: true}
	picked := make([]string, 0, OptionCount-1)

	pools := [][]content.Word{session, g.catalog}
	for _, pool := range pools {
		shuffled := make([]content.Word, len(pool))
		copy(shuffled, pool)
		g.rnd.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		for _, w := range shuffled {
			if len(picked) >= OptionCount-1 {
				return picked
			}
			if w.Word == word.Word {
				continue
			}
			option := answerFor(w, qt)
			if seen[option] {
				continue
			}
			seen[option] = true
			picked = append(picked, option)
		}
	}
	return picked
}

func answerFor(w content.Word, qt Type) string {
	if qt == TypeMeaningToWord {
		return w.Word
	}
	return w.Meaning
}
