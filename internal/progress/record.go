// Package progress tracks per-item learning performance and persists it.
package progress

import "time"

const (
	MinDifficulty = 0
	MaxDifficulty = 10

	// MasteredStreak is the streak from which an item counts as mastered.
	MasteredStreak = 3
	// DifficultThreshold is the difficulty from which an item counts as difficult.
	DifficultThreshold = 7
)

// PerformanceRecord holds the learning statistics of one item.
type PerformanceRecord struct {
	CorrectCount   int        `yaml:"correct_count"`
	IncorrectCount int        `yaml:"incorrect_count"`
	Streak         int        `yaml:"streak"`
	Difficulty     int        `yaml:"difficulty"`
	LastSeenAt     *time.Time `yaml:"last_seen_at,omitempty"`
	NextReviewAt   *time.Time `yaml:"next_review_at,omitempty"`
	TotalTimeMs    int64      `yaml:"total_time_ms"`
	ReviewCount    int        `yaml:"review_count"`
}

// IntervalFor returns how long to wait before the next review.
// The rules are evaluated in order; a word answered wrong more often than
// right always comes back within 4 hours.
func IntervalFor(correctCount, incorrectCount, streak int) time.Duration {
	var hours int
	switch {
	case incorrectCount > correctCount:
		hours = 4
	case streak == 0:
		hours = 12
	case streak == 1:
		hours = 24
	case streak == 2:
		hours = 72
	case streak == 3:
		hours = 168
	case streak == 4:
		hours = 336
	default:
		hours = 720
	}
	return time.Duration(hours) * time.Hour
}

// applyAnswer updates the record for one answer given at now.
func (r *PerformanceRecord) applyAnswer(correct bool, elapsedMs int64, now time.Time) {
	if correct {
		r.CorrectCount++
		r.Streak++
		r.Difficulty = max(MinDifficulty, r.Difficulty-1)
	} else {
		r.IncorrectCount++
		r.Streak = 0
		r.Difficulty = min(MaxDifficulty, r.Difficulty+2)
	}

	seenAt := now
	r.LastSeenAt = &seenAt
	r.TotalTimeMs += max(0, elapsedMs)
	r.ReviewCount++

	nextReview := now.Add(IntervalFor(r.CorrectCount, r.IncorrectCount, r.Streak))
	r.NextReviewAt = &nextReview
}

// IsDue reports whether the record is due at now.
// Records that were never seen are always due.
func (r PerformanceRecord) IsDue(now time.Time) bool {
	if r.LastSeenAt == nil {
		return true
	}
	if r.NextReviewAt == nil {
		return false
	}
	return !r.NextReviewAt.After(now)
}

// OverdueHours returns how many hours the review is past NextReviewAt, or 0.
func (r PerformanceRecord) OverdueHours(now time.Time) float64 {
	if r.NextReviewAt == nil {
		return 0
	}
	return max(0, now.Sub(*r.NextReviewAt).Hours())
}

func (r PerformanceRecord) attempts() int {
	return r.CorrectCount + r.IncorrectCount
}

func (r PerformanceRecord) incorrectRate() float64 {
	return float64(r.IncorrectCount) / float64(max(1, r.attempts()))
}

func (r PerformanceRecord) clone() PerformanceRecord {
	c := r
	if r.LastSeenAt != nil {
		t := *r.LastSeenAt
		c.LastSeenAt = &t
	}
	if r.NextReviewAt != nil {
		t := *r.NextReviewAt
		c.NextReviewAt = &t
	}
	return c
}
