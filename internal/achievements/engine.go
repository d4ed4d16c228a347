package achievements

import "time"

// Category groups achievements by the ledger field their requirement reads
type Category string

const (
	CategoryStreak     Category = "streak"
	CategoryVocabulary Category = "vocabulary"
	CategoryStory      Category = "story"
	CategoryAccuracy   Category = "accuracy"
	CategorySpecial    Category = "special"
)

// MinAccuracySample is the minimum number of answered quizzes before any
// accuracy achievement can unlock. Without it a single correct answer
// would count as 100% accuracy.
const MinAccuracySample = 10

// Definition describes one unlockable achievement from the catalog
type Definition struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	TitleKorean string   `json:"title_korean,omitempty"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`
	Requirement int      `json:"requirement"`
}

// Snapshot is the read-only view of learner progress the engine
// evaluates requirements against.
type Snapshot struct {
	Level          int
	CurrentStreak  int
	MasteredWords  int
	StoriesRead    int
	TotalQuizzes   int
	CorrectAnswers int
}

// Unlock is one newly unlocked achievement with its unlock time
type Unlock struct {
	Definition
	UnlockedAt time.Time `json:"unlocked_at"`
}

// Predicate decides a special-category achievement from a snapshot
type Predicate func(Snapshot) bool

// Engine evaluates a fixed achievement catalog against progress snapshots.
// Catalog order is evaluation order, so simultaneous unlocks are emitted
// deterministically.
type Engine struct {
	catalog []Definition
	special map[string]Predicate
}

// NewEngine creates an engine for the given catalog with the built-in
// special predicates registered.
func NewEngine(catalog []Definition) *Engine {
	e := &Engine{
		catalog: catalog,
		special: make(map[string]Predicate),
	}
	e.RegisterSpecial("level-10", func(s Snapshot) bool {
		return s.Level >= 10
	})
	return e
}

// RegisterSpecial installs the predicate for a special-category
// achievement id, replacing any previous one.
func (e *Engine) RegisterSpecial(id string, p Predicate) {
	e.special[id] = p
}

// Evaluate walks the catalog in order and returns every achievement that
// is satisfied by the snapshot and not yet in unlocked. The caller owns
// the unlocked set; evaluating twice without a state change between
// returns nothing the second time.
func (e *Engine) Evaluate(s Snapshot, unlocked map[string]bool, now time.Time) []Unlock {
	var result []Unlock
	for _, def := range e.catalog {
		if unlocked[def.ID] {
			continue
		}
		if e.satisfied(def, s) {
			result = append(result, Unlock{Definition: def, UnlockedAt: now})
		}
	}
	return result
}

// Catalog returns the engine's achievement catalog in evaluation order.
func (e *Engine) Catalog() []Definition {
	return e.catalog
}

func (e *Engine) satisfied(def Definition, s Snapshot) bool {
	switch def.Category {
	case CategoryStreak:
		return s.CurrentStreak >= def.Requirement
	case CategoryVocabulary:
		return s.MasteredWords >= def.Requirement
	case CategoryStory:
		return s.StoriesRead >= def.Requirement
	case CategoryAccuracy:
		if s.TotalQuizzes < MinAccuracySample {
			return false
		}
		accuracy := float64(s.CorrectAnswers) / float64(s.TotalQuizzes) * 100
		return accuracy >= float64(def.Requirement)
	case CategorySpecial:
		p, ok := e.special[def.ID]
		return ok && p(s)
	}
	return false
}
