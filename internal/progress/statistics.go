package progress

import (
	"sort"
)

// Statistics is an aggregate view over all records.
type Statistics struct {
	TotalWordsSeen    int
	MasteredWords     int
	LearningWords     int
	DifficultWords    int
	AccuracyRate      float64 // percent, 0 when nothing was answered
	AverageDifficulty float64
	StreakDays        int
	TotalReviews      int
}

// RankedRecord pairs a record with its item id.
type RankedRecord struct {
	ID     string
	Record PerformanceRecord
}

// Statistics aggregates every record in the store.
func (s *Store) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Statistics{
		TotalWordsSeen: len(s.state.Records),
		StreakDays:     s.state.StreakDays,
		TotalReviews:   s.state.TotalReviews,
	}
	if stats.TotalWordsSeen == 0 {
		return stats
	}

	var correct, attempts, difficulty int
	for _, r := range s.state.Records {
		switch {
		case r.Streak >= MasteredStreak:
			stats.MasteredWords++
		case r.Streak >= 1:
			stats.LearningWords++
		}
		if r.Difficulty >= DifficultThreshold {
			stats.DifficultWords++
		}
		correct += r.CorrectCount
		attempts += r.attempts()
		difficulty += r.Difficulty
	}
	if attempts > 0 {
		stats.AccuracyRate = float64(correct) / float64(attempts) * 100
	}
	stats.AverageDifficulty = float64(difficulty) / float64(stats.TotalWordsSeen)
	return stats
}

// MostDifficult returns records ordered by difficulty, then incorrect rate,
// both descending. Remaining ties are ordered by id.
// A limit of 0 or less returns every record.
func (s *Store) MostDifficult(limit int) []RankedRecord {
	s.mu.Lock()
	ranked := make([]RankedRecord, 0, len(s.state.Records))
	for id, r := range s.state.Records {
		ranked = append(ranked, RankedRecord{ID: id, Record: r.clone()})
	}
	s.mu.Unlock()

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i].Record, ranked[j].Record
		if a.Difficulty != b.Difficulty {
			return a.Difficulty > b.Difficulty
		}
		if ra, rb := a.incorrectRate(), b.incorrectRate(); ra != rb {
			return ra > rb
		}
		return ranked[i].ID < ranked[j].ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// DifficultyLabel describes a difficulty score.
func DifficultyLabel(difficulty int) string {
	switch {
	case difficulty <= 2:
		return "Easy"
	case difficulty <= 4:
		return "Medium"
	case difficulty <= 6:
		return "Hard"
	case difficulty <= 8:
		return "Very Hard"
	default:
		return "Extremely Hard"
	}
}

// MasteryLabel describes how well an item is known.
func MasteryLabel(r PerformanceRecord) string {
	switch {
	case r.Streak >= 5:
		return "Mastered"
	case r.Streak >= MasteredStreak:
		return "Almost Mastered"
	case r.Streak >= 1:
		return "Learning"
	case r.CorrectCount > r.IncorrectCount:
		return "Familiar"
	case r.IncorrectCount > 0:
		return "Struggling"
	default:
		return "New"
	}
}
