// Package scheduler builds review sessions that mix due words with new ones.
package scheduler

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/at-ishikawa/grevocab/internal/catalog"
	"github.com/at-ishikawa/grevocab/internal/progress"
)

// DefaultNewRatio is the share of a session reserved for unseen words.
const DefaultNewRatio = 0.3

//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler/mock_scheduler.go -package=mock_scheduler

// ItemCatalog resolves vocabulary items by id.
type ItemCatalog interface {
	LookupByID(id string) (catalog.VocabularyItem, bool)
	AllIDs() []string
}

// PerformanceStore exposes the learning history the scheduler reads.
type PerformanceStore interface {
	Record(id string) (progress.PerformanceRecord, bool)
	DueIDs(candidateIDs []string) []string
}

// Scheduler selects the items of a review session.
// It holds no state between sessions.
type Scheduler struct {
	items ItemCatalog
	store PerformanceStore
	rng   *rand.Rand
	now   func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithRand sets the random source used for new word selection and shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scheduler) {
		s.rng = rng
	}
}

// WithClock replaces time.Now for overdue calculation.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// New creates a Scheduler.
func New(items ItemCatalog, store PerformanceStore, opts ...Option) *Scheduler {
	s := &Scheduler{
		items: items,
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type sessionOptions struct {
	newRatio float64
}

// SessionOption configures one BuildSession call.
type SessionOption func(*sessionOptions)

// WithNewRatio sets the share of the session reserved for unseen words.
func WithNewRatio(ratio float64) SessionOption {
	return func(o *sessionOptions) {
		o.newRatio = ratio
	}
}

type prioritizedID struct {
	id       string
	priority float64
}

// BuildSession returns up to size items in random order.
//
// Due words are ranked by difficulty plus days overdue and fill the review
// share of the session. The remaining slots go to words that were never
// answered, picked at random. When either pool runs short the session is
// simply smaller; it never contains the same item twice.
func (s *Scheduler) BuildSession(size int, opts ...SessionOption) ([]catalog.VocabularyItem, error) {
	o := sessionOptions{newRatio: DefaultNewRatio}
	for _, opt := range opts {
		opt(&o)
	}
	if size < 0 {
		return nil, fmt.Errorf("session size must not be negative, got %d", size)
	}
	if o.newRatio < 0 || o.newRatio > 1 {
		return nil, fmt.Errorf("new ratio must be between 0 and 1, got %v", o.newRatio)
	}

	var known, unseen []string
	for _, id := range s.items.AllIDs() {
		if _, ok := s.store.Record(id); ok {
			known = append(known, id)
		} else {
			unseen = append(unseen, id)
		}
	}

	targetNew := int(float64(size) * o.newRatio)
	targetReview := size - targetNew

	now := s.now()
	due := s.store.DueIDs(known)
	ranked := make([]prioritizedID, 0, len(due))
	for _, id := range due {
		rec, _ := s.store.Record(id)
		ranked = append(ranked, prioritizedID{
			id:       id,
			priority: float64(rec.Difficulty) + rec.OverdueHours(now)/24,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].priority > ranked[j].priority
	})

	selected := make([]string, 0, size)
	for _, p := range ranked[:min(targetReview, len(ranked))] {
		selected = append(selected, p.id)
	}

	remaining := size - len(selected)
	if remaining > 0 && len(unseen) > 0 {
		s.rng.Shuffle(len(unseen), func(i, j int) {
			unseen[i], unseen[j] = unseen[j], unseen[i]
		})
		selected = append(selected, unseen[:min(remaining, len(unseen))]...)
	}

	session := make([]catalog.VocabularyItem, 0, len(selected))
	for _, id := range selected {
		item, ok := s.items.LookupByID(id)
		if !ok {
			continue
		}
		session = append(session, item)
	}
	s.rng.Shuffle(len(session), func(i, j int) {
		session[i], session[j] = session[j], session[i]
	})

	slog.Debug("session built",
		"size", len(session),
		"due", len(due),
		"review", min(targetReview, len(ranked)),
		"unseen", len(unseen),
	)
	return session, nil
}
