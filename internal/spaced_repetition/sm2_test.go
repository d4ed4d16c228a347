package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func TestQualityFor(t *testing.T) {
	tests := []struct {
		name       string
		correct    bool
		difficulty Difficulty
		want       Quality
	}{
		{"correct easy", true, DifficultyEasy, QualityPerfect},
		{"correct medium", true, DifficultyMedium, QualityCorrectHesitation},
		{"correct hard", true, DifficultyHard, QualityCorrectDifficult},
		{"incorrect easy", false, DifficultyEasy, QualityIncorrectFamiliar},
		{"incorrect medium", false, DifficultyMedium, QualityIncorrect},
		{"incorrect hard", false, DifficultyHard, QualityBlackout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QualityFor(tt.correct, tt.difficulty))
		})
	}
}

func TestNewReviewItemDefaults(t *testing.T) {
	item := NewReviewItem("brave", "brave", "용감한", today)

	assert.Equal(t, "brave", item.WordID)
	assert.Equal(t, DefaultEasinessFactor, item.EasinessFactor)
	assert.Equal(t, 1, item.IntervalDays)
	assert.Equal(t, 0, item.Repetitions)
	assert.Equal(t, "2026-03-01", item.NextReviewAt)
	assert.Empty(t, item.LastReviewedAt)
}

func TestSchedulePerfectLadder(t *testing.T) {
	item := NewReviewItem("brave", "brave", "용감한", today)

	item = Schedule(item, QualityPerfect, today)
	assert.Equal(t, 1, item.Repetitions)
	assert.Equal(t, 1, item.IntervalDays)
	assert.InDelta(t, 2.6, item.EasinessFactor, 1e-9)
	assert.Equal(t, "2026-03-02", item.NextReviewAt)
	assert.Equal(t, "2026-03-01", item.LastReviewedAt)

	item = Schedule(item, QualityPerfect, today.AddDate(0, 0, 1))
	assert.Equal(t, 2, item.Repetitions)
	assert.Equal(t, 6, item.IntervalDays)
	assert.InDelta(t, 2.7, item.EasinessFactor, 1e-9)

	// Third pass grows the interval from the pre-review easiness factor:
	// round(6 * 2.7) = 16
	item = Schedule(item, QualityPerfect, today.AddDate(0, 0, 7))
	assert.Equal(t, 3, item.Repetitions)
	assert.Equal(t, 16, item.IntervalDays)
	assert.InDelta(t, 2.8, item.EasinessFactor, 1e-9)
	assert.Equal(t, "2026-03-24", item.NextReviewAt)
}

func TestScheduleLapseResets(t *testing.T) {
	item := ReviewItem{
		WordID:         "forest",
		EasinessFactor: 2.8,
		IntervalDays:   16,
		Repetitions:    3,
	}

	updated := Schedule(item, QualityIncorrect, today)

	assert.Equal(t, 0, updated.Repetitions)
	assert.Equal(t, 1, updated.IntervalDays)
	assert.InDelta(t, 2.26, updated.EasinessFactor, 1e-9)
	assert.Equal(t, "2026-03-02", updated.NextReviewAt)
}

func TestScheduleEasinessFloor(t *testing.T) {
	item := NewReviewItem("gnaw", "gnaw", "갉아먹다", today)

	for i := 0; i < 10; i++ {
		item = Schedule(item, QualityBlackout, today.AddDate(0, 0, i))
		require.GreaterOrEqual(t, item.EasinessFactor, MinEasinessFactor)
	}
	assert.Equal(t, MinEasinessFactor, item.EasinessFactor)
}

func TestScheduleIsPure(t *testing.T) {
	item := ReviewItem{
		WordID:         "net",
		EasinessFactor: 2.5,
		IntervalDays:   6,
		Repetitions:    2,
		NextReviewAt:   "2026-03-01",
	}
	original := item

	first := Schedule(item, QualityCorrectHesitation, today)
	second := Schedule(item, QualityCorrectHesitation, today)

	assert.Equal(t, first, second)
	assert.Equal(t, original, item, "input must not be mutated")
}

func TestSortDue(t *testing.T) {
	items := []ReviewItem{
		{WordID: "seen-hard", Repetitions: 2, EasinessFactor: 1.5, NextReviewAt: "2026-03-01"},
		{WordID: "new", Repetitions: 0, EasinessFactor: 2.5, NextReviewAt: "2026-03-01"},
		{WordID: "seen-easy", Repetitions: 2, EasinessFactor: 2.9, NextReviewAt: "2026-02-20"},
		{WordID: "seen-hard-overdue", Repetitions: 4, EasinessFactor: 1.5, NextReviewAt: "2026-02-10"},
	}

	SortDue(items)

	ids := []string{items[0].WordID, items[1].WordID, items[2].WordID, items[3].WordID}
	assert.Equal(t, []string{"new", "seen-hard-overdue", "seen-hard", "seen-easy"}, ids)
}
