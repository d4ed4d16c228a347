package progress

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordquest/internal/achievements"
	"github.com/example/wordquest/internal/spaced_repetition"
	"github.com/example/wordquest/internal/storage"
)

func testEngine() *achievements.Engine {
	return achievements.NewEngine([]achievements.Definition{
		{ID: "streak-3", Title: "Warming Up", Category: achievements.CategoryStreak, Requirement: 3},
		{ID: "words-1", Title: "First Word", Category: achievements.CategoryVocabulary, Requirement: 1},
		{ID: "story-1", Title: "First Story", Category: achievements.CategoryStory, Requirement: 1},
		{ID: "accuracy-90", Title: "Sharp Shooter", Category: achievements.CategoryAccuracy, Requirement: 90},
	})
}

// openTestLedger returns a ledger backed by an in-memory store with a
// controllable clock.
func openTestLedger(t *testing.T) (*Ledger, *storage.MemoryStore, *time.Time) {
	t.Helper()
	store := storage.NewMemoryStore()
	l, err := Open(store, "progress:test", testEngine())
	require.NoError(t, err)

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }
	return l, store, &clock
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1000, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestInitialize(t *testing.T) {
	l, _, _ := openTestLedger(t)

	assert.False(t, l.Initialized())
	l.Initialize("Jiho", 3)

	snap := l.Snapshot()
	assert.True(t, l.Initialized())
	assert.Equal(t, "Jiho", snap.UserName)
	assert.Equal(t, 3, snap.StartLevel)
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, 0, snap.TotalXP)
	assert.Equal(t, "2026-03-01", snap.LastActiveDate)
}

func TestAwardXPRecomputesLevel(t *testing.T) {
	l, _, _ := openTestLedger(t)
	l.Initialize("Jiho", 1)

	l.AwardXP(99)
	assert.Equal(t, 1, l.Snapshot().Level)

	l.AwardXP(1)
	assert.Equal(t, 2, l.Snapshot().Level)
	assert.Equal(t, 100, l.Snapshot().TotalXP)
}

func TestAwardXPNegativeIgnored(t *testing.T) {
	l, _, _ := openTestLedger(t)
	l.Initialize("Jiho", 1)
	l.AwardXP(50)

	l.AwardXP(-30)

	assert.Equal(t, 50, l.Snapshot().TotalXP)
}

func TestDailyLoginSameDayNoOp(t *testing.T) {
	l, _, _ := openTestLedger(t)
	l.Initialize("Jiho", 1)

	// Initialize already stamped today as the last active date.
	unlocks := l.RecordDailyLogin()

	assert.Nil(t, unlocks)
	assert.Equal(t, 0, l.Snapshot().TotalXP)
	assert.Equal(t, 0, l.Snapshot().CurrentStreak)
}

func TestDailyLoginStreak(t *testing.T) {
	l, _, clock := openTestLedger(t)
	l.Initialize("Jiho", 1)

	*clock = clock.AddDate(0, 0, 1)
	l.RecordDailyLogin()
	snap := l.Snapshot()
	assert.Equal(t, 1, snap.CurrentStreak)
	assert.Equal(t, XPDailyLogin, snap.TotalXP, "no bonus on a one-day streak")

	*clock = clock.AddDate(0, 0, 1)
	l.RecordDailyLogin()
	snap = l.Snapshot()
	assert.Equal(t, 2, snap.CurrentStreak)
	assert.Equal(t, 2, snap.LongestStreak)
	assert.Equal(t, 2*XPDailyLogin+2*XPStreakBonus, snap.TotalXP)

	// A missed day restarts the streak but keeps the longest.
	*clock = clock.AddDate(0, 0, 3)
	l.RecordDailyLogin()
	snap = l.Snapshot()
	assert.Equal(t, 1, snap.CurrentStreak)
	assert.Equal(t, 2, snap.LongestStreak)
	assert.GreaterOrEqual(t, snap.LongestStreak, snap.CurrentStreak)
}

func TestDailyLoginClockMovedBackward(t *testing.T) {
	l, _, clock := openTestLedger(t)
	l.Initialize("Jiho", 1)

	*clock = clock.AddDate(0, 0, 1)
	l.RecordDailyLogin()
	*clock = clock.AddDate(0, 0, 1)
	l.RecordDailyLogin()
	require.Equal(t, 2, l.Snapshot().CurrentStreak)

	*clock = clock.AddDate(0, 0, -5)
	l.RecordDailyLogin()

	snap := l.Snapshot()
	assert.Equal(t, 1, snap.CurrentStreak)
	assert.Equal(t, 2, snap.LongestStreak)
}

func TestDailyLoginStreakAchievement(t *testing.T) {
	l, _, clock := openTestLedger(t)
	l.Initialize("Jiho", 1)

	var unlocks []achievements.Unlock
	for i := 0; i < 3; i++ {
		*clock = clock.AddDate(0, 0, 1)
		unlocks = l.RecordDailyLogin()
	}

	require.Len(t, unlocks, 1)
	assert.Equal(t, "streak-3", unlocks[0].ID)
}

func TestRecordQuizAnswer(t *testing.T) {
	l, _, _ := openTestLedger(t)
	l.Initialize("Jiho", 1)

	l.RecordQuizAnswer(true)
	l.RecordQuizAnswer(false)

	snap := l.Snapshot()
	assert.Equal(t, 2, snap.TotalQuizzes)
	assert.Equal(t, 1, snap.CorrectAnswers)
	assert.Equal(t, XPQuizCorrect, snap.TotalXP, "wrong answers award nothing")
}

func TestAccuracyAchievementNeedsMinimumSample(t *testing.T) {
	l, _, _ := openTestLedger(t)
	l.Initialize("Jiho", 1)

	// 9/9 is above 90% but below the minimum sample of 10 quizzes.
	for i := 0; i < 9; i++ {
		unlocks := l.RecordQuizAnswer(true)
		assert.Empty(t, unlocks)
	}

	// The tenth answer crosses the sample gate at exactly 90%, even
	// though the answer itself is wrong.
	unlocks := l.RecordQuizAnswer(false)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "accuracy-90", unlocks[0].ID)

	// Already unlocked, never returned again.
	assert.Empty(t, l.RecordQuizAnswer(true))
	assert.Len(t, l.Unlocked(), 1)
}

func TestCompleteChapter(t *testing.T) {
	l, _, _ := openTestLedger(t)
	l.Initialize("Jiho", 1)

	l.CompleteChapter("the-lion-and-the-mouse", 0, 80)

	sp := l.StoryProgress("the-lion-and-the-mouse")
	require.NotNil(t, sp)
	assert.Equal(t, []int{0}, sp.CompletedChapters)
	assert.Equal(t, 1, sp.CurrentChapter)
	assert.Equal(t, 80, sp.QuizScores["chapter-0"])
	assert.Equal(t, XPChapterComplete, l.Snapshot().TotalXP)

	// Redoing the chapter updates the score without duplicating it.
	l.CompleteChapter("the-lion-and-the-mouse", 0, 100)
	sp = l.StoryProgress("the-lion-and-the-mouse")
	assert.Equal(t, []int{0}, sp.CompletedChapters)
	assert.Equal(t, 100, sp.QuizScores["chapter-0"])
	assert.Equal(t, 2*XPChapterComplete+XPQuizPerfect, l.Snapshot().TotalXP)
}

func TestCompleteStory(t *testing.T) {
	l, _, _ := openTestLedger(t)
	l.Initialize("Jiho", 1)

	unlocks := l.CompleteStory("the-lion-and-the-mouse")

	snap := l.Snapshot()
	assert.Equal(t, 1, snap.StoriesRead)
	assert.Equal(t, XPStoryComplete, snap.TotalXP)
	sp := l.StoryProgress("the-lion-and-the-mouse")
	require.NotNil(t, sp)
	assert.True(t, sp.Completed)
	assert.NotEmpty(t, sp.CompletedAt)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "story-1", unlocks[0].ID)
}

func TestBeginLearningWordIdempotent(t *testing.T) {
	l, _, _ := openTestLedger(t)
	l.Initialize("Jiho", 1)

	l.BeginLearningWord("brave", "brave", "용감한")
	l.BeginLearningWord("brave", "brave", "용감한")

	snap := l.Snapshot()
	assert.Equal(t, 1, snap.LearningWords)
	assert.True(t, l.Tracking("brave"))
	assert.False(t, l.Tracking("forest"))
}

func TestReviewUnknownWordNoOp(t *testing.T) {
	l, _, _ := openTestLedger(t)
	l.Initialize("Jiho", 1)

	unlocks := l.ReviewWord("ghost", true, spaced_repetition.DifficultyEasy)

	assert.Nil(t, unlocks)
	assert.Equal(t, 0, l.Snapshot().TotalXP)
}

func TestMasteryPromotion(t *testing.T) {
	l, _, clock := openTestLedger(t)
	l.Initialize("Jiho", 1)
	l.BeginLearningWord("brave", "brave", "용감한")

	var unlocks []achievements.Unlock
	for i := 0; i < MasteryRepetitions; i++ {
		*clock = clock.AddDate(0, 0, 1)
		unlocks = l.ReviewWord("brave", true, spaced_repetition.DifficultyEasy)
	}

	snap := l.Snapshot()
	assert.Equal(t, 1, snap.MasteredWords)
	assert.Equal(t, 0, snap.LearningWords)
	assert.Equal(t, XPWordMastered, snap.TotalXP)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "words-1", unlocks[0].ID)

	// Mastered words are out of rotation for good.
	assert.Empty(t, l.DueWords(clock.AddDate(1, 0, 0)))
	assert.Nil(t, l.ReviewWord("brave", true, spaced_repetition.DifficultyEasy))
	assert.Equal(t, 1, l.Snapshot().MasteredWords)
}

func TestDueWords(t *testing.T) {
	l, _, clock := openTestLedger(t)
	l.Initialize("Jiho", 1)
	l.BeginLearningWord("brave", "brave", "용감한")
	l.BeginLearningWord("forest", "forest", "숲")

	// New words are due the day they are added.
	require.Len(t, l.DueWords(*clock), 2)

	l.ReviewWord("brave", true, spaced_repetition.DifficultyEasy)

	due := l.DueWords(*clock)
	require.Len(t, due, 1)
	assert.Equal(t, "forest", due[0].WordID)

	// Both come back once the reviewed word's next date passes.
	assert.Len(t, l.DueWords(clock.AddDate(0, 0, 1)), 2)
}

func TestPersistenceRoundTrip(t *testing.T) {
	l, store, clock := openTestLedger(t)
	l.Initialize("Jiho", 2)
	l.BeginLearningWord("brave", "brave", "용감한")
	l.ReviewWord("brave", true, spaced_repetition.DifficultyMedium)
	l.CompleteChapter("the-lion-and-the-mouse", 0, 100)
	*clock = clock.AddDate(0, 0, 1)
	l.RecordDailyLogin()

	reopened, err := Open(store, "progress:test", testEngine())
	require.NoError(t, err)

	assert.Equal(t, l.state, reopened.state)
}

func TestOpenMigratesGradeDocuments(t *testing.T) {
	tests := []struct {
		grade     int
		wantLevel int
	}{
		{4, 2},
		{5, 3},
		{6, 4},
		{9, 2},
	}
	for _, tt := range tests {
		store := storage.NewMemoryStore()
		data, err := json.Marshal(map[string]interface{}{
			"initialized": true,
			"user_name":   "Jiho",
			"grade":       tt.grade,
			"stats":       map[string]interface{}{"total_xp": 120, "level": 2},
		})
		require.NoError(t, err)
		require.NoError(t, store.Save("progress:test", &storage.Document{Version: 1, Data: data}))

		l, err := Open(store, "progress:test", testEngine())
		require.NoError(t, err)

		snap := l.Snapshot()
		assert.Equal(t, tt.wantLevel, snap.StartLevel, "grade=%d", tt.grade)
		assert.Equal(t, 120, snap.TotalXP)
		assert.NotNil(t, l.state.Items)
		assert.NotNil(t, l.state.Stories)
	}
}

func TestOpenRefusesNewerVersions(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save("progress:test", &storage.Document{Version: CurrentVersion + 1, Data: []byte("{}")}))

	_, err := Open(store, "progress:test", testEngine())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported progress version")
}

func TestReset(t *testing.T) {
	l, store, _ := openTestLedger(t)
	l.Initialize("Jiho", 1)
	l.AwardXP(300)

	l.Reset()

	assert.False(t, l.Initialized())
	assert.Equal(t, 0, l.Snapshot().TotalXP)

	reopened, err := Open(store, "progress:test", testEngine())
	require.NoError(t, err)
	assert.False(t, reopened.Initialized())
}
