package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/grevocab/internal/catalog"
	mock_scheduler "github.com/at-ishikawa/grevocab/internal/mocks/scheduler"
	"github.com/at-ishikawa/grevocab/internal/progress"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestCatalog(t *testing.T, ids ...string) *catalog.Catalog {
	t.Helper()
	items := make([]catalog.VocabularyItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, catalog.VocabularyItem{ID: id, Word: "word " + id, Definition: "definition " + id})
	}
	c, err := catalog.New(items)
	require.NoError(t, err)
	return c
}

func numberedIDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%02d", prefix, i)
	}
	return ids
}

func newTestStore(t *testing.T, records map[string]progress.PerformanceRecord) *progress.Store {
	t.Helper()
	state := progress.NewState()
	for id, r := range records {
		state.Records[id] = r
	}
	store, err := progress.NewStore(context.Background(), progress.NewMemoryRepository(state),
		progress.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	return store
}

func dueRecord(difficulty int, overdue time.Duration) progress.PerformanceRecord {
	seenAt := testNow.Add(-overdue - time.Hour)
	next := testNow.Add(-overdue)
	return progress.PerformanceRecord{CorrectCount: 1, Streak: 1, Difficulty: difficulty, LastSeenAt: &seenAt, NextReviewAt: &next}
}

func notDueRecord() progress.PerformanceRecord {
	seenAt := testNow
	next := testNow.Add(24 * time.Hour)
	return progress.PerformanceRecord{CorrectCount: 1, Streak: 1, LastSeenAt: &seenAt, NextReviewAt: &next}
}

func sessionIDs(items []catalog.VocabularyItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func newTestScheduler(items ItemCatalog, store PerformanceStore, seed int64) *Scheduler {
	return New(items, store,
		WithRand(rand.New(rand.NewSource(seed))),
		WithClock(func() time.Time { return testNow }),
	)
}

func TestBuildSession_AllNewWords(t *testing.T) {
	ids := []string{"abate", "laconic", "ephemeral", "obdurate", "venal"}
	s := newTestScheduler(newTestCatalog(t, ids...), newTestStore(t, nil), 42)

	got, err := s.BuildSession(3)
	require.NoError(t, err)

	gotIDs := sessionIDs(got)
	assert.Len(t, gotIDs, 3)
	assert.Subset(t, ids, gotIDs)
	assertUnique(t, gotIDs)
}

func TestBuildSession_EmptyCatalog(t *testing.T) {
	s := newTestScheduler(newTestCatalog(t), newTestStore(t, nil), 42)

	got, err := s.BuildSession(20)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuildSession_ZeroSize(t *testing.T) {
	s := newTestScheduler(newTestCatalog(t, "abate"), newTestStore(t, nil), 42)

	got, err := s.BuildSession(0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuildSession_ExactSizeWithoutDuplicates(t *testing.T) {
	known := numberedIDs("known", 15)
	unseen := numberedIDs("new", 15)
	records := make(map[string]progress.PerformanceRecord)
	for i, id := range known {
		records[id] = dueRecord(i%10, time.Duration(i)*time.Hour)
	}

	s := newTestScheduler(newTestCatalog(t, append(known, unseen...)...), newTestStore(t, records), 7)

	for _, ratio := range []float64{0, 0.3, 0.5} {
		t.Run(fmt.Sprintf("ratio %v", ratio), func(t *testing.T) {
			got, err := s.BuildSession(20, WithNewRatio(ratio))
			require.NoError(t, err)
			gotIDs := sessionIDs(got)
			assert.Len(t, gotIDs, 20)
			assertUnique(t, gotIDs)
		})
	}
}

func TestBuildSession_Composition(t *testing.T) {
	tests := []struct {
		name        string
		known       map[string]progress.PerformanceRecord
		unseen      []string
		size        int
		ratio       float64
		wantLen     int
		wantDue     []string
		wantNewSize int
	}{
		{
			name: "due words are ranked by difficulty and overdue days",
			known: map[string]progress.PerformanceRecord{
				"hard":       dueRecord(8, 0),
				"forgotten":  dueRecord(2, 240*time.Hour),
				"medium":     dueRecord(5, 0),
				"not-yet":    notDueRecord(),
				"very-early": notDueRecord(),
			},
			size:    2,
			ratio:   0,
			wantLen: 2,
			wantDue: []string{"forgotten", "hard"},
		},
		{
			name: "words that are not due are excluded",
			known: map[string]progress.PerformanceRecord{
				"not-yet": notDueRecord(),
			},
			size:    5,
			ratio:   0.3,
			wantLen: 0,
		},
		{
			name: "no due words gives an all-new session",
			known: map[string]progress.PerformanceRecord{
				"not-yet": notDueRecord(),
			},
			unseen:      numberedIDs("new", 10),
			size:        5,
			ratio:       0.2,
			wantLen:     5,
			wantNewSize: 5,
		},
		{
			name: "few due words leave more room for new ones",
			known: map[string]progress.PerformanceRecord{
				"hard": dueRecord(8, 0),
			},
			unseen:      numberedIDs("new", 20),
			size:        10,
			ratio:       0.3,
			wantLen:     10,
			wantDue:     []string{"hard"},
			wantNewSize: 9,
		},
		{
			name: "few new words shrink the session",
			known: map[string]progress.PerformanceRecord{
				"d0": dueRecord(9, 0), "d1": dueRecord(8, 0), "d2": dueRecord(7, 0), "d3": dueRecord(6, 0),
				"d4": dueRecord(5, 0), "d5": dueRecord(4, 0), "d6": dueRecord(3, 0), "d7": dueRecord(2, 0),
			},
			unseen:      []string{"new00", "new01"},
			size:        10,
			ratio:       0.5,
			wantLen:     7,
			wantDue:     []string{"d0", "d1", "d2", "d3", "d4"},
			wantNewSize: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, 0, len(tt.known)+len(tt.unseen))
			for id := range tt.known {
				ids = append(ids, id)
			}
			ids = append(ids, tt.unseen...)

			s := newTestScheduler(newTestCatalog(t, ids...), newTestStore(t, tt.known), 42)
			got, err := s.BuildSession(tt.size, WithNewRatio(tt.ratio))
			require.NoError(t, err)

			gotIDs := sessionIDs(got)
			assert.Len(t, gotIDs, tt.wantLen)
			assertUnique(t, gotIDs)

			var gotDue []string
			gotNew := 0
			for _, id := range gotIDs {
				if _, ok := tt.known[id]; ok {
					gotDue = append(gotDue, id)
				} else {
					gotNew++
				}
			}
			assert.ElementsMatch(t, tt.wantDue, gotDue)
			assert.Equal(t, tt.wantNewSize, gotNew)
		})
	}
}

func TestBuildSession_InvalidArguments(t *testing.T) {
	s := newTestScheduler(newTestCatalog(t, "abate"), newTestStore(t, nil), 42)

	tests := []struct {
		name    string
		size    int
		opts    []SessionOption
		wantErr string
	}{
		{name: "negative size", size: -1, wantErr: "session size must not be negative, got -1"},
		{name: "negative ratio", size: 5, opts: []SessionOption{WithNewRatio(-0.1)}, wantErr: "new ratio must be between 0 and 1, got -0.1"},
		{name: "ratio above one", size: 5, opts: []SessionOption{WithNewRatio(1.5)}, wantErr: "new ratio must be between 0 and 1, got 1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.BuildSession(tt.size, tt.opts...)
			assert.EqualError(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestBuildSession_SeededRandIsReproducible(t *testing.T) {
	ids := numberedIDs("new", 30)
	c := newTestCatalog(t, ids...)
	store := newTestStore(t, nil)

	first, err := newTestScheduler(c, store, 123).BuildSession(10)
	require.NoError(t, err)
	second, err := newTestScheduler(c, store, 123).BuildSession(10)
	require.NoError(t, err)

	assert.Equal(t, sessionIDs(first), sessionIDs(second))
}

func TestBuildSession_DoesNotCreateRecords(t *testing.T) {
	store := newTestStore(t, nil)
	s := newTestScheduler(newTestCatalog(t, "abate", "laconic"), store, 42)

	_, err := s.BuildSession(2)
	require.NoError(t, err)

	assert.Equal(t, 0, store.Statistics().TotalWordsSeen)
}

func TestBuildSession_DropsUnresolvableIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mock_scheduler.NewMockItemCatalog(ctrl)
	store := mock_scheduler.NewMockPerformanceStore(ctrl)

	items.EXPECT().AllIDs().Return([]string{"abate", "ghost"})
	store.EXPECT().Record("abate").Return(progress.PerformanceRecord{}, false)
	store.EXPECT().Record("ghost").Return(progress.PerformanceRecord{}, false)
	store.EXPECT().DueIDs(gomock.Len(0)).Return(nil)
	items.EXPECT().LookupByID("abate").Return(catalog.VocabularyItem{ID: "abate", Word: "abate"}, true).AnyTimes()
	items.EXPECT().LookupByID("ghost").Return(catalog.VocabularyItem{}, false).AnyTimes()

	s := newTestScheduler(items, store, 42)
	got, err := s.BuildSession(5)
	require.NoError(t, err)
	assert.Equal(t, []string{"abate"}, sessionIDs(got))
}

func assertUnique(t *testing.T, ids []string) {
	t.Helper()
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
