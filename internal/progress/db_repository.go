package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/grevocab/internal/database"
)

// insertBatchSize bounds the rows per INSERT so the placeholder count stays
// under every driver's limit.
const insertBatchSize = 500

// stateRowID is the primary key of the single progress_state row.
const stateRowID = 1

var (
	recordColumns  = []string{"item_id", "correct_count", "incorrect_count", "streak", "difficulty", "last_seen_at", "next_review_at", "total_time_ms", "review_count"}
	sessionColumns = []string{"id", "session_date", "reviews"}
)

type recordRow struct {
	ItemID         string         `db:"item_id"`
	CorrectCount   int            `db:"correct_count"`
	IncorrectCount int            `db:"incorrect_count"`
	Streak         int            `db:"streak"`
	Difficulty     int            `db:"difficulty"`
	LastSeenAt     sql.NullString `db:"last_seen_at"`
	NextReviewAt   sql.NullString `db:"next_review_at"`
	TotalTimeMs    int64          `db:"total_time_ms"`
	ReviewCount    int            `db:"review_count"`
}

type stateRow struct {
	TotalReviews  int            `db:"total_reviews"`
	StreakDays    int            `db:"streak_days"`
	LastSessionAt sql.NullString `db:"last_session_at"`
}

type sessionRow struct {
	ID      string `db:"id"`
	Date    string `db:"session_date"`
	Reviews int    `db:"reviews"`
}

// DBRepository stores the progress document in SQL tables.
// Timestamps are kept as RFC 3339 text so every driver compares them the same way.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Load reads all three tables into a State.
// Empty tables give an empty state; unparsable rows give ErrCorruptState.
func (r *DBRepository) Load(ctx context.Context) (*State, error) {
	var records []recordRow
	if err := r.db.SelectContext(ctx, &records,
		"SELECT item_id, correct_count, incorrect_count, streak, difficulty, last_seen_at, next_review_at, total_time_ms, review_count FROM performance_records ORDER BY item_id"); err != nil {
		return nil, fmt.Errorf("load performance records: %w", err)
	}

	var global stateRow
	err := r.db.GetContext(ctx, &global,
		r.db.Rebind("SELECT total_reviews, streak_days, last_session_at FROM progress_state WHERE id = ?"), stateRowID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load progress state: %w", err)
	}

	var sessions []sessionRow
	if err := r.db.SelectContext(ctx, &sessions,
		"SELECT id, session_date, reviews FROM review_sessions ORDER BY session_date, id"); err != nil {
		return nil, fmt.Errorf("load review sessions: %w", err)
	}

	state := NewState()
	state.TotalReviews = global.TotalReviews
	state.StreakDays = global.StreakDays
	if state.LastSessionAt, err = parseNullTime(global.LastSessionAt); err != nil {
		return nil, fmt.Errorf("%w: last_session_at: %w", ErrCorruptState, err)
	}
	for _, row := range records {
		rec := PerformanceRecord{
			CorrectCount:   row.CorrectCount,
			IncorrectCount: row.IncorrectCount,
			Streak:         row.Streak,
			Difficulty:     row.Difficulty,
			TotalTimeMs:    row.TotalTimeMs,
			ReviewCount:    row.ReviewCount,
		}
		if rec.LastSeenAt, err = parseNullTime(row.LastSeenAt); err != nil {
			return nil, fmt.Errorf("%w: record %s last_seen_at: %w", ErrCorruptState, row.ItemID, err)
		}
		if rec.NextReviewAt, err = parseNullTime(row.NextReviewAt); err != nil {
			return nil, fmt.Errorf("%w: record %s next_review_at: %w", ErrCorruptState, row.ItemID, err)
		}
		state.Records[row.ItemID] = rec
	}
	for _, row := range sessions {
		state.Sessions = append(state.Sessions, SessionEntry{ID: row.ID, Date: row.Date, Reviews: row.Reviews})
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("progress loaded from database", "records", len(state.Records), "sessions", len(state.Sessions))
	return state, nil
}

// Save replaces the contents of all three tables in one transaction.
func (r *DBRepository) Save(ctx context.Context, state *State) error {
	ids := make([]string, 0, len(state.Records))
	for id := range state.Records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM performance_records"); err != nil {
			return fmt.Errorf("delete performance records: %w", err)
		}
		for start := 0; start < len(ids); start += insertBatchSize {
			batch := ids[start:min(start+insertBatchSize, len(ids))]
			args := make([]interface{}, 0, len(batch)*len(recordColumns))
			for _, id := range batch {
				rec := state.Records[id]
				args = append(args, id, rec.CorrectCount, rec.IncorrectCount, rec.Streak, rec.Difficulty,
					formatNullTime(rec.LastSeenAt), formatNullTime(rec.NextReviewAt), rec.TotalTimeMs, rec.ReviewCount)
			}
			query := tx.Rebind(database.BuildMultiRowInsert("performance_records", recordColumns, len(batch)))
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert performance records: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM progress_state"); err != nil {
			return fmt.Errorf("delete progress state: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			tx.Rebind("INSERT INTO progress_state (id, total_reviews, streak_days, last_session_at) VALUES (?, ?, ?, ?)"),
			stateRowID, state.TotalReviews, state.StreakDays, formatNullTime(state.LastSessionAt)); err != nil {
			return fmt.Errorf("insert progress state: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM review_sessions"); err != nil {
			return fmt.Errorf("delete review sessions: %w", err)
		}
		for start := 0; start < len(state.Sessions); start += insertBatchSize {
			batch := state.Sessions[start:min(start+insertBatchSize, len(state.Sessions))]
			args := make([]interface{}, 0, len(batch)*len(sessionColumns))
			for _, e := range batch {
				args = append(args, e.ID, e.Date, e.Reviews)
			}
			query := tx.Rebind(database.BuildMultiRowInsert("review_sessions", sessionColumns, len(batch)))
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert review sessions: %w", err)
			}
		}
		return nil
	})
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
