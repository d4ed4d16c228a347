package progress

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/wordquest/internal/spaced_repetition"
	"github.com/example/wordquest/internal/storage"
)

// CurrentVersion is the schema version written to storage. Version 1
// documents stored a school grade (4-6) instead of a starting level and
// are migrated on load. Newer versions than this refuse to load.
const CurrentVersion = 2

// Stats holds the learner's aggregate counters. Level is a stored cache
// of floor(totalXP/100)+1 and is recomputed on every XP change; it is
// never set independently.
type Stats struct {
	TotalXP           int    `json:"total_xp"`
	Level             int    `json:"level"`
	CurrentStreak     int    `json:"current_streak"`
	LongestStreak     int    `json:"longest_streak"`
	LastActiveDate    string `json:"last_active_date"`
	TotalQuizzes      int    `json:"total_quizzes"`
	CorrectAnswers    int    `json:"correct_answers"`
	TotalStoriesRead  int    `json:"total_stories_read"`
	TotalWordsLearned int    `json:"total_words_learned"`
}

// StoryProgress tracks one story's reading and quiz state
type StoryProgress struct {
	StoryID           string         `json:"story_id"`
	CurrentChapter    int            `json:"current_chapter"`
	CompletedChapters []int          `json:"completed_chapters"`
	QuizScores        map[string]int `json:"quiz_scores"`
	Completed         bool           `json:"completed"`
	CompletedAt       string         `json:"completed_at,omitempty"`
}

// UnlockRecord is one unlocked achievement id with its unlock time
type UnlockRecord struct {
	ID         string `json:"id"`
	UnlockedAt string `json:"unlocked_at"`
}

// State is the full persisted ledger document. Items keeps the SM-2
// scheduling state per word, including words already promoted to the
// mastered list; mastered words are excluded from review but their
// scheduling history stays available.
type State struct {
	Initialized bool                                      `json:"initialized"`
	UserName    string                                    `json:"user_name"`
	StartLevel  int                                       `json:"start_level"`
	CreatedAt   string                                    `json:"created_at,omitempty"`
	Stats       Stats                                     `json:"stats"`
	Stories     map[string]*StoryProgress                 `json:"stories"`
	Items       map[string]*spaced_repetition.ReviewItem  `json:"items"`
	Mastered    []string                                  `json:"mastered_words"`
	Unlocked    []UnlockRecord                            `json:"unlocked_achievements"`
}

func defaultState() State {
	return State{
		StartLevel: 1,
		Stats: Stats{
			Level: 1,
		},
		Stories:  make(map[string]*StoryProgress),
		Items:    make(map[string]*spaced_repetition.ReviewItem),
		Mastered: make([]string, 0),
		Unlocked: make([]UnlockRecord, 0),
	}
}

func decodeState(doc *storage.Document) (State, error) {
	if doc.Version > CurrentVersion {
		return State{}, fmt.Errorf("unsupported progress version %d (newest known is %d)", doc.Version, CurrentVersion)
	}

	var st State
	if err := json.Unmarshal(doc.Data, &st); err != nil {
		return State{}, fmt.Errorf("failed to decode progress: %v", err)
	}

	if doc.Version < 2 {
		var legacy struct {
			Grade int `json:"grade"`
		}
		if err := json.Unmarshal(doc.Data, &legacy); err == nil {
			st.StartLevel = levelForGrade(legacy.Grade)
		}
	}

	if st.Stories == nil {
		st.Stories = make(map[string]*StoryProgress)
	}
	if st.Items == nil {
		st.Items = make(map[string]*spaced_repetition.ReviewItem)
	}
	if st.Mastered == nil {
		st.Mastered = make([]string, 0)
	}
	if st.Unlocked == nil {
		st.Unlocked = make([]UnlockRecord, 0)
	}
	return st, nil
}

// levelForGrade maps the legacy school-grade field onto a starting level
func levelForGrade(grade int) int {
	switch grade {
	case 4:
		return 2
	case 5:
		return 3
	case 6:
		return 4
	default:
		return 2
	}
}

// LevelForXP derives the display level from total XP: 100 XP per level,
// starting at level 1.
func LevelForXP(xp int) int {
	return xp/100 + 1
}

// isNextDay reports whether today is exactly the calendar day after last.
// A gap, an unparseable date, or a clock that moved backward all report
// false, which resets the streak rather than leaving it ambiguous.
func isNextDay(last, today string) bool {
	prev, err := time.Parse(spaced_repetition.DateLayout, last)
	if err != nil {
		return false
	}
	cur, err := time.Parse(spaced_repetition.DateLayout, today)
	if err != nil {
		return false
	}
	return cur.Sub(prev) == 24*time.Hour
}
