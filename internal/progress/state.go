package progress

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrCorruptState means durable progress exists but cannot be trusted.
	ErrCorruptState = errors.New("corrupt progress state")
	// ErrPersist means the progress could not be written to durable storage.
	ErrPersist = errors.New("persist progress")
	// ErrEmptyID is returned when an answer is recorded without an item id.
	ErrEmptyID = errors.New("item id is empty")
)

const sessionDateLayout = "2006-01-02"

// State is the whole persisted progress document.
type State struct {
	Records       map[string]PerformanceRecord `yaml:"records"`
	TotalReviews  int                          `yaml:"total_reviews"`
	StreakDays    int                          `yaml:"streak_days"`
	LastSessionAt *time.Time                   `yaml:"last_session_at,omitempty"`
	Sessions      []SessionEntry               `yaml:"sessions,omitempty"`
}

// SessionEntry counts the reviews made on one calendar day.
// It is reporting data only; scheduling never reads it.
type SessionEntry struct {
	ID      string `yaml:"id"`
	Date    string `yaml:"date"`
	Reviews int    `yaml:"reviews"`
}

// NewState returns an empty progress document.
func NewState() *State {
	return &State{
		Records: make(map[string]PerformanceRecord),
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := &State{
		Records:      make(map[string]PerformanceRecord, len(s.Records)),
		TotalReviews: s.TotalReviews,
		StreakDays:   s.StreakDays,
	}
	for id, r := range s.Records {
		c.Records[id] = r.clone()
	}
	if s.LastSessionAt != nil {
		t := *s.LastSessionAt
		c.LastSessionAt = &t
	}
	if len(s.Sessions) > 0 {
		c.Sessions = make([]SessionEntry, len(s.Sessions))
		copy(c.Sessions, s.Sessions)
	}
	return c
}

// Validate checks the invariants a loaded document must satisfy.
func (s *State) Validate() error {
	if s.TotalReviews < 0 || s.StreakDays < 0 {
		return fmt.Errorf("%w: negative global counters", ErrCorruptState)
	}
	for id, r := range s.Records {
		if id == "" {
			return fmt.Errorf("%w: record with empty id", ErrCorruptState)
		}
		if r.CorrectCount < 0 || r.IncorrectCount < 0 || r.Streak < 0 || r.TotalTimeMs < 0 || r.ReviewCount < 0 {
			return fmt.Errorf("%w: record %s has negative counters", ErrCorruptState, id)
		}
		if r.Difficulty < MinDifficulty || r.Difficulty > MaxDifficulty {
			return fmt.Errorf("%w: record %s has difficulty %d", ErrCorruptState, id, r.Difficulty)
		}
	}
	seen := make(map[string]struct{}, len(s.Sessions))
	for _, e := range s.Sessions {
		if _, err := time.Parse(sessionDateLayout, e.Date); err != nil {
			return fmt.Errorf("%w: session %s has date %q", ErrCorruptState, e.ID, e.Date)
		}
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("%w: duplicate session id %s", ErrCorruptState, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// updateDayStreak advances the day streak for an answer given at now.
// Calendar days are taken in now's location.
func (s *State) updateDayStreak(now time.Time) {
	today := calendarDay(now)
	switch {
	case s.LastSessionAt == nil:
		s.StreakDays = 1
	default:
		lastDay := calendarDay(s.LastSessionAt.In(now.Location()))
		switch {
		case today.Equal(lastDay):
			// same day
		case today.Equal(lastDay.AddDate(0, 0, 1)):
			s.StreakDays++
		default:
			s.StreakDays = 1
		}
	}

	last := now.UTC()
	s.LastSessionAt = &last
}

// logReview counts one review in today's session entry, appending a new
// entry on the first review of a day.
func (s *State) logReview(now time.Time) {
	date := now.Format(sessionDateLayout)
	if n := len(s.Sessions); n > 0 && s.Sessions[n-1].Date == date {
		s.Sessions[n-1].Reviews++
		return
	}
	s.Sessions = append(s.Sessions, SessionEntry{
		ID:      newSessionID(now),
		Date:    date,
		Reviews: 1,
	})
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func newSessionID(now time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
