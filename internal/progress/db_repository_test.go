package progress

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/grevocab/internal/config"
	"github.com/at-ishikawa/grevocab/internal/database"
)

const (
	selectRecordsQuery  = "SELECT item_id, correct_count, incorrect_count, streak, difficulty, last_seen_at, next_review_at, total_time_ms, review_count FROM performance_records ORDER BY item_id"
	selectStateQuery    = "SELECT total_reviews, streak_days, last_session_at FROM progress_state WHERE id = ?"
	selectSessionsQuery = "SELECT id, session_date, reviews FROM review_sessions ORDER BY session_date, id"
)

var (
	recordRowColumns  = []string{"item_id", "correct_count", "incorrect_count", "streak", "difficulty", "last_seen_at", "next_review_at", "total_time_ms", "review_count"}
	stateRowColumns   = []string{"total_reviews", "streak_days", "last_session_at"}
	sessionRowColumns = []string{"id", "session_date", "reviews"}
)

func TestDBRepository_Load(t *testing.T) {
	seenAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		setupMock   func(mock sqlmock.Sqlmock)
		want        *State
		wantErr     bool
		wantCorrupt bool
	}{
		{
			name: "loads every table",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectRecordsQuery)).
					WillReturnRows(sqlmock.NewRows(recordRowColumns).
						AddRow("abate", 2, 1, 1, 1, "2025-03-10T09:00:00Z", "2025-03-11T09:00:00Z", 4500, 3).
						AddRow("laconic", 0, 0, 0, 0, nil, nil, 0, 0))
				mock.ExpectQuery(regexp.QuoteMeta(selectStateQuery)).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows(stateRowColumns).AddRow(3, 1, "2025-03-10T09:00:00Z"))
				mock.ExpectQuery(regexp.QuoteMeta(selectSessionsQuery)).
					WillReturnRows(sqlmock.NewRows(sessionRowColumns).AddRow("01JNXYZ0000000000000000000", "2025-03-10", 3))
			},
			want: &State{
				Records: map[string]PerformanceRecord{
					"abate": {
						CorrectCount:   2,
						IncorrectCount: 1,
						Streak:         1,
						Difficulty:     1,
						LastSeenAt:     &seenAt,
						NextReviewAt:   timePtr(seenAt.Add(24 * time.Hour)),
						TotalTimeMs:    4500,
						ReviewCount:    3,
					},
					"laconic": {},
				},
				TotalReviews:  3,
				StreakDays:    1,
				LastSessionAt: &seenAt,
				Sessions:      []SessionEntry{{ID: "01JNXYZ0000000000000000000", Date: "2025-03-10", Reviews: 3}},
			},
		},
		{
			name: "empty tables give an empty state",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectRecordsQuery)).
					WillReturnRows(sqlmock.NewRows(recordRowColumns))
				mock.ExpectQuery(regexp.QuoteMeta(selectStateQuery)).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows(stateRowColumns))
				mock.ExpectQuery(regexp.QuoteMeta(selectSessionsQuery)).
					WillReturnRows(sqlmock.NewRows(sessionRowColumns))
			},
			want: NewState(),
		},
		{
			name: "unparsable timestamp",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectRecordsQuery)).
					WillReturnRows(sqlmock.NewRows(recordRowColumns).
						AddRow("abate", 1, 0, 1, 0, "yesterday", nil, 0, 1))
				mock.ExpectQuery(regexp.QuoteMeta(selectStateQuery)).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows(stateRowColumns))
				mock.ExpectQuery(regexp.QuoteMeta(selectSessionsQuery)).
					WillReturnRows(sqlmock.NewRows(sessionRowColumns))
			},
			wantErr:     true,
			wantCorrupt: true,
		},
		{
			name: "difficulty out of range",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectRecordsQuery)).
					WillReturnRows(sqlmock.NewRows(recordRowColumns).
						AddRow("abate", 1, 0, 1, 11, nil, nil, 0, 1))
				mock.ExpectQuery(regexp.QuoteMeta(selectStateQuery)).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows(stateRowColumns))
				mock.ExpectQuery(regexp.QuoteMeta(selectSessionsQuery)).
					WillReturnRows(sqlmock.NewRows(sessionRowColumns))
			},
			wantErr:     true,
			wantCorrupt: true,
		},
		{
			name: "query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectRecordsQuery)).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			repo := NewDBRepository(sqlx.NewDb(db, "mysql"))
			got, err := repo.Load(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCorrupt, errors.Is(err, ErrCorruptState))
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_Save(t *testing.T) {
	seenAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	state := &State{
		Records: map[string]PerformanceRecord{
			"laconic": {IncorrectCount: 1, Difficulty: 2, LastSeenAt: &seenAt, NextReviewAt: timePtr(seenAt.Add(4 * time.Hour)), TotalTimeMs: 3400, ReviewCount: 1},
			"abate":   {CorrectCount: 1, Streak: 1, LastSeenAt: &seenAt, NextReviewAt: timePtr(seenAt.Add(24 * time.Hour)), TotalTimeMs: 1200, ReviewCount: 1},
		},
		TotalReviews:  2,
		StreakDays:    1,
		LastSessionAt: &seenAt,
		Sessions:      []SessionEntry{{ID: "01JNXYZ0000000000000000000", Date: "2025-03-10", Reviews: 2}},
	}

	tests := []struct {
		name      string
		state     *State
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name:  "replaces every table",
			state: state,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM performance_records")).
					WillReturnResult(sqlmock.NewResult(0, 5))
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO performance_records (item_id, correct_count, incorrect_count, streak, difficulty, last_seen_at, next_review_at, total_time_ms, review_count) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?), (?, ?, ?, ?, ?, ?, ?, ?, ?)")).
					WithArgs(
						"abate", 1, 0, 1, 0, "2025-03-10T09:00:00Z", "2025-03-11T09:00:00Z", 1200, 1,
						"laconic", 0, 1, 0, 2, "2025-03-10T09:00:00Z", "2025-03-10T13:00:00Z", 3400, 1,
					).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM progress_state")).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO progress_state (id, total_reviews, streak_days, last_session_at) VALUES (?, ?, ?, ?)")).
					WithArgs(1, 2, 1, "2025-03-10T09:00:00Z").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM review_sessions")).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO review_sessions (id, session_date, reviews) VALUES (?, ?, ?)")).
					WithArgs("01JNXYZ0000000000000000000", "2025-03-10", 2).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:  "empty state only writes the global row",
			state: NewState(),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM performance_records")).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM progress_state")).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO progress_state (id, total_reviews, streak_days, last_session_at) VALUES (?, ?, ?, ?)")).
					WithArgs(1, 0, 0, nil).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM review_sessions")).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
		},
		{
			name:  "insert failure rolls back",
			state: state,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM performance_records")).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO performance_records")).
					WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			repo := NewDBRepository(sqlx.NewDb(db, "mysql"))
			err = repo.Save(context.Background(), tt.state)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(config.StorageConfig{
		Driver: config.StorageDriverSQLite,
		Path:   filepath.Join(t.TempDir(), "progress.db"),
	})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(ctx, db))

	repo := NewDBRepository(db)
	clock := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	store, err := NewStore(ctx, repo, WithClock(clock.Now))
	require.NoError(t, err)

	// more rows than one insert batch
	for i := 0; i < insertBatchSize+20; i++ {
		store.GetOrCreate(fmt.Sprintf("word-%04d", i))
	}
	require.NoError(t, store.RecordAnswer(ctx, "abate", true, 1200))
	require.NoError(t, store.RecordAnswer(ctx, "laconic", false, 3400))
	clock.Advance(24 * time.Hour)
	require.NoError(t, store.RecordAnswer(ctx, "abate", true, 900))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Snapshot(), loaded)

	reopened, err := NewStore(ctx, repo, WithClock(clock.Now))
	require.NoError(t, err)
	assert.Equal(t, store.Statistics(), reopened.Statistics())
}
