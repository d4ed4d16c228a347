package spaced_repetition

import (
	"math"
	"sort"
	"time"
)

// DateLayout is the calendar-date format used for all review dates.
// Scheduling works at day granularity; time of day is never stored.
const DateLayout = "2006-01-02"

const (
	// DefaultEasinessFactor is the starting EF for a new item
	DefaultEasinessFactor = 2.5
	// MinEasinessFactor is the floor below which EF never drops
	MinEasinessFactor = 1.3
	// PassThreshold separates successful recalls from lapses
	PassThreshold = 3
)

// Quality represents the quality of a recall in SM-2
type Quality int

const (
	// Complete blackout, unable to recall
	QualityBlackout Quality = 0
	// Incorrect response but remembered upon seeing the correct answer
	QualityIncorrect Quality = 1
	// Incorrect response but the correct answer felt familiar
	QualityIncorrectFamiliar Quality = 2
	// Correct response but required significant effort
	QualityCorrectDifficult Quality = 3
	// Correct response after some hesitation
	QualityCorrectHesitation Quality = 4
	// Perfect response with no hesitation
	QualityPerfect Quality = 5
)

// Difficulty is the learner's subjective rating of a review
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QualityFor maps an answer outcome and a subjective difficulty rating
// onto the 0-5 SM-2 quality scale.
func QualityFor(correct bool, difficulty Difficulty) Quality {
	if correct {
		switch difficulty {
		case DifficultyEasy:
			return QualityPerfect
		case DifficultyHard:
			return QualityCorrectDifficult
		default:
			return QualityCorrectHesitation
		}
	}
	switch difficulty {
	case DifficultyEasy:
		return QualityIncorrectFamiliar
	case DifficultyHard:
		return QualityBlackout
	default:
		return QualityIncorrect
	}
}

// ReviewItem holds the SM-2 scheduling state for one vocabulary word
type ReviewItem struct {
	WordID         string  `json:"word_id"`
	Word           string  `json:"word"`
	Meaning        string  `json:"meaning"`
	EasinessFactor float64 `json:"easiness_factor"`
	IntervalDays   int     `json:"interval_days"`
	Repetitions    int     `json:"repetitions"` // consecutive successful reviews since last lapse
	NextReviewAt   string  `json:"next_review_at"`
	LastReviewedAt string  `json:"last_reviewed_at,omitempty"`
}

// NewReviewItem creates scheduling state for a word that enters the
// learning set. The item is due immediately.
func NewReviewItem(wordID, word, meaning string, today time.Time) ReviewItem {
	return ReviewItem{
		WordID:         wordID,
		Word:           word,
		Meaning:        meaning,
		EasinessFactor: DefaultEasinessFactor,
		IntervalDays:   1,
		Repetitions:    0,
		NextReviewAt:   today.Format(DateLayout),
	}
}

// Schedule applies one SM-2 review to an item and returns the updated copy.
// It is a pure function: the only time source is the caller-supplied today.
//
// A passing quality grows the interval along the classic ladder
// (1 day, 6 days, then round(interval*EF)); a lapse resets repetitions
// and schedules the item for tomorrow. The interval uses the EF from
// before this review; the EF adjustment is applied afterwards.
func Schedule(item ReviewItem, quality Quality, today time.Time) ReviewItem {
	updated := item

	if quality >= PassThreshold {
		switch item.Repetitions {
		case 0:
			updated.IntervalDays = 1
		case 1:
			updated.IntervalDays = 6
		default:
			updated.IntervalDays = int(math.Round(float64(item.IntervalDays) * item.EasinessFactor))
		}
		updated.Repetitions = item.Repetitions + 1
	} else {
		updated.Repetitions = 0
		updated.IntervalDays = 1
	}

	q := float64(quality)
	ef := item.EasinessFactor + (0.1 - (5.0-q)*(0.08+(5.0-q)*0.02))
	if ef < MinEasinessFactor {
		ef = MinEasinessFactor
	}
	updated.EasinessFactor = ef

	updated.NextReviewAt = today.AddDate(0, 0, updated.IntervalDays).Format(DateLayout)
	updated.LastReviewedAt = today.Format(DateLayout)

	return updated
}

// SortDue orders due items for a review session: words never reviewed come
// first, then the hardest words (lowest EF), then the most overdue.
func SortDue(items []ReviewItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Repetitions == 0 && items[j].Repetitions > 0 {
			return true
		}
		if items[j].Repetitions == 0 && items[i].Repetitions > 0 {
			return false
		}
		if items[i].EasinessFactor != items[j].EasinessFactor {
			return items[i].EasinessFactor < items[j].EasinessFactor
		}
		return items[i].NextReviewAt < items[j].NextReviewAt
	})
}
