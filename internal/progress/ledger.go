// Package progress implements the ledger that owns all persisted learner
// state: XP and level, daily streaks, story progress, the vocabulary
// learning and mastered sets, and achievement unlocks. Ledger operations
// are the only way this state changes; each one updates the in-memory
// state first and mirrors it to storage best-effort.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/wordquest/internal/achievements"
	"github.com/example/wordquest/internal/spaced_repetition"
	"github.com/example/wordquest/internal/storage"
)

// XP awarded by ledger operations
const (
	XPQuizCorrect     = 10
	XPQuizPerfect     = 50
	XPChapterComplete = 100
	XPStoryComplete   = 500
	XPDailyLogin      = 20
	XPStreakBonus     = 10 // per day of streak
	XPWordMastered    = 25
)

// A word is promoted from learning to mastered once it has this many
// consecutive successful reviews and its easiness factor is back at the
// default or above.
const (
	MasteryRepetitions = 5
	MasteryEasiness    = 2.5
)

// Ledger is the aggregate holding one learner's progress. It is designed
// for a single writer; the in-memory state is the source of truth and
// storage is a best-effort mirror.
type Ledger struct {
	store  storage.Store
	key    string
	engine *achievements.Engine
	state  State
	now    func() time.Time
}

// Open loads the ledger stored under key, migrating old documents if
// needed, or starts a fresh one when nothing is stored yet. A document
// with a newer schema version than this build understands is an error.
func Open(store storage.Store, key string, engine *achievements.Engine) (*Ledger, error) {
	l := &Ledger{
		store:  store,
		key:    key,
		engine: engine,
		state:  defaultState(),
		now:    time.Now,
	}

	doc, err := store.Load(key)
	if errors.Is(err, storage.ErrNotFound) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %v", err)
	}

	state, err := decodeState(doc)
	if err != nil {
		return nil, err
	}
	l.state = state
	return l, nil
}

// Initialized reports whether onboarding has run
func (l *Ledger) Initialized() bool {
	return l.state.Initialized
}

// Initialize sets the onboarding fields and resets all stats to their
// defaults. Calling it again overwrites the previous profile.
func (l *Ledger) Initialize(name string, startLevel int) {
	st := defaultState()
	st.Initialized = true
	st.UserName = name
	st.StartLevel = startLevel
	st.CreatedAt = l.now().Format(time.RFC3339)
	st.Stats.LastActiveDate = l.today()
	l.state = st
	l.persist()
}

// Reset wipes all progress back to the uninitialized defaults
func (l *Ledger) Reset() {
	l.state = defaultState()
	l.persist()
}

// AwardXP adds XP, recomputes the level and returns any achievements the
// new state unlocks. Negative amounts are ignored; total XP never
// decreases.
func (l *Ledger) AwardXP(amount int) []achievements.Unlock {
	unlocks := l.addXP(amount)
	l.persist()
	return unlocks
}

// RecordDailyLogin applies the daily streak rules for an app-open event.
// The first call of a calendar day extends or restarts the streak and
// awards login XP plus the streak bonus; later calls the same day are
// no-ops.
func (l *Ledger) RecordDailyLogin() []achievements.Unlock {
	today := l.today()
	if l.state.Stats.LastActiveDate == today {
		return nil
	}

	streak := 1
	if isNextDay(l.state.Stats.LastActiveDate, today) {
		streak = l.state.Stats.CurrentStreak + 1
	}
	l.state.Stats.CurrentStreak = streak
	if streak > l.state.Stats.LongestStreak {
		l.state.Stats.LongestStreak = streak
	}
	l.state.Stats.LastActiveDate = today

	xp := XPDailyLogin
	if streak > 1 {
		xp += XPStreakBonus * streak
	}
	unlocks := l.addXP(xp)
	l.persist()
	return unlocks
}

// RecordQuizAnswer tallies one quiz answer and awards XP for a correct
// one. Achievements are re-evaluated either way: crossing the minimum
// quiz sample can unlock accuracy achievements even on a wrong answer.
func (l *Ledger) RecordQuizAnswer(correct bool) []achievements.Unlock {
	l.state.Stats.TotalQuizzes++
	var unlocks []achievements.Unlock
	if correct {
		l.state.Stats.CorrectAnswers++
		unlocks = l.addXP(XPQuizCorrect)
	} else {
		unlocks = l.evaluate()
	}
	l.persist()
	return unlocks
}

// CompleteChapter records a finished chapter and its quiz score, advances
// the reading position, and awards chapter XP plus a bonus for a perfect
// score. Re-completing a chapter does not duplicate it in the completed
// set.
func (l *Ledger) CompleteChapter(storyID string, chapterIndex, quizScore int) []achievements.Unlock {
	sp := l.story(storyID)
	if !containsInt(sp.CompletedChapters, chapterIndex) {
		sp.CompletedChapters = append(sp.CompletedChapters, chapterIndex)
	}
	sp.CurrentChapter = chapterIndex + 1
	sp.QuizScores[fmt.Sprintf("chapter-%d", chapterIndex)] = quizScore

	xp := XPChapterComplete
	if quizScore == 100 {
		xp += XPQuizPerfect
	}
	unlocks := l.addXP(xp)
	l.persist()
	return unlocks
}

// CompleteStory marks a story finished, counts it and awards story XP
func (l *Ledger) CompleteStory(storyID string) []achievements.Unlock {
	sp := l.story(storyID)
	sp.Completed = true
	sp.CompletedAt = l.now().Format(time.RFC3339)
	l.state.Stats.TotalStoriesRead++

	unlocks := l.addXP(XPStoryComplete)
	l.persist()
	return unlocks
}

// BeginLearningWord puts a word under spaced repetition with the default
// scheduling parameters. Words already tracked, learning or mastered,
// are left untouched.
func (l *Ledger) BeginLearningWord(wordID, word, meaning string) {
	if _, ok := l.state.Items[wordID]; ok {
		return
	}
	item := spaced_repetition.NewReviewItem(wordID, word, meaning, l.now())
	l.state.Items[wordID] = &item
	l.state.Stats.TotalWordsLearned++
	l.persist()
}

// ReviewWord applies one review outcome to a tracked word: the scheduler
// computes the new parameters and the mastery policy promotes the word
// out of the learning set when it holds. Reviewing an unknown or already
// mastered word is a no-op.
func (l *Ledger) ReviewWord(wordID string, correct bool, difficulty spaced_repetition.Difficulty) []achievements.Unlock {
	item, ok := l.state.Items[wordID]
	if !ok || l.isMastered(wordID) {
		return nil
	}

	quality := spaced_repetition.QualityFor(correct, difficulty)
	*item = spaced_repetition.Schedule(*item, quality, l.now())

	var unlocks []achievements.Unlock
	if item.Repetitions >= MasteryRepetitions && item.EasinessFactor >= MasteryEasiness {
		l.state.Mastered = append(l.state.Mastered, wordID)
		unlocks = l.addXP(XPWordMastered)
	}
	l.persist()
	return unlocks
}

// Tracking reports whether a word is already under study, learning or
// mastered.
func (l *Ledger) Tracking(wordID string) bool {
	if _, ok := l.state.Items[wordID]; ok {
		return true
	}
	return l.isMastered(wordID)
}

// DueWords returns the learning-set items due for review on asOf,
// hardest first. Mastered words are never due.
func (l *Ledger) DueWords(asOf time.Time) []spaced_repetition.ReviewItem {
	cutoff := asOf.Format(spaced_repetition.DateLayout)
	var due []spaced_repetition.ReviewItem
	for _, item := range l.state.Items {
		if l.isMastered(item.WordID) {
			continue
		}
		if item.NextReviewAt <= cutoff {
			due = append(due, *item)
		}
	}
	spaced_repetition.SortDue(due)
	return due
}

// Snapshot is a read-only view of the ledger for display
type Snapshot struct {
	UserName       string
	StartLevel     int
	TotalXP        int
	Level          int
	CurrentStreak  int
	LongestStreak  int
	LastActiveDate string
	TotalQuizzes   int
	CorrectAnswers int
	StoriesRead    int
	LearningWords  int
	MasteredWords  int
	DueToday       int
}

// Snapshot returns the current display view of the ledger
func (l *Ledger) Snapshot() Snapshot {
	st := l.state.Stats
	return Snapshot{
		UserName:       l.state.UserName,
		StartLevel:     l.state.StartLevel,
		TotalXP:        st.TotalXP,
		Level:          st.Level,
		CurrentStreak:  st.CurrentStreak,
		LongestStreak:  st.LongestStreak,
		LastActiveDate: st.LastActiveDate,
		TotalQuizzes:   st.TotalQuizzes,
		CorrectAnswers: st.CorrectAnswers,
		StoriesRead:    st.TotalStoriesRead,
		LearningWords:  len(l.state.Items) - len(l.state.Mastered),
		MasteredWords:  len(l.state.Mastered),
		DueToday:       len(l.DueWords(l.now())),
	}
}

// Unlocked returns the unlock history in unlock order
func (l *Ledger) Unlocked() []UnlockRecord {
	out := make([]UnlockRecord, len(l.state.Unlocked))
	copy(out, l.state.Unlocked)
	return out
}

// StoryProgress returns a copy of the progress for one story, or nil if
// the story was never started.
func (l *Ledger) StoryProgress(storyID string) *StoryProgress {
	sp, ok := l.state.Stories[storyID]
	if !ok {
		return nil
	}
	cp := *sp
	return &cp
}

func (l *Ledger) addXP(amount int) []achievements.Unlock {
	if amount < 0 {
		amount = 0
	}
	l.state.Stats.TotalXP += amount
	l.state.Stats.Level = LevelForXP(l.state.Stats.TotalXP)
	return l.evaluate()
}

func (l *Ledger) evaluate() []achievements.Unlock {
	unlocked := make(map[string]bool, len(l.state.Unlocked))
	for _, u := range l.state.Unlocked {
		unlocked[u.ID] = true
	}

	snap := achievements.Snapshot{
		Level:          l.state.Stats.Level,
		CurrentStreak:  l.state.Stats.CurrentStreak,
		MasteredWords:  len(l.state.Mastered),
		StoriesRead:    l.state.Stats.TotalStoriesRead,
		TotalQuizzes:   l.state.Stats.TotalQuizzes,
		CorrectAnswers: l.state.Stats.CorrectAnswers,
	}

	unlocks := l.engine.Evaluate(snap, unlocked, l.now())
	for _, u := range unlocks {
		l.state.Unlocked = append(l.state.Unlocked, UnlockRecord{
			ID:         u.ID,
			UnlockedAt: u.UnlockedAt.Format(time.RFC3339),
		})
	}
	return unlocks
}

func (l *Ledger) story(storyID string) *StoryProgress {
	sp, ok := l.state.Stories[storyID]
	if !ok {
		sp = &StoryProgress{
			StoryID:           storyID,
			CompletedChapters: make([]int, 0),
			QuizScores:        make(map[string]int),
		}
		l.state.Stories[storyID] = sp
	}
	return sp
}

func (l *Ledger) isMastered(wordID string) bool {
	for _, id := range l.state.Mastered {
		if id == wordID {
			return true
		}
	}
	return false
}

func (l *Ledger) today() string {
	return l.now().Format(spaced_repetition.DateLayout)
}

func (l *Ledger) persist() {
	data, err := json.Marshal(l.state)
	if err != nil {
		log.Printf("failed to encode progress for %s: %v", l.key, err)
		return
	}
	if err := l.store.Save(l.key, &storage.Document{Version: CurrentVersion, Data: data}); err != nil {
		log.Printf("failed to persist progress for %s: %v", l.key, err)
	}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
