// Package datasync copies progress between storage backends, e.g. the YAML file and a database.
package datasync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/at-ishikawa/grevocab/internal/progress"
)

// SyncResult tracks counts for each sync operation.
type SyncResult struct {
	RecordsNew     int
	RecordsSkipped int
	RecordsUpdated int
	RecordsKept    int
	SessionsNew    int
}

// SyncOptions controls sync behavior.
type SyncOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Syncer merges the progress of a source repository into a destination repository.
type Syncer struct {
	source      progress.Repository
	destination progress.Repository
	writer      io.Writer
}

// NewSyncer creates a new Syncer.
func NewSyncer(source, destination progress.Repository, writer io.Writer) *Syncer {
	return &Syncer{
		source:      source,
		destination: destination,
		writer:      writer,
	}
}

// Sync merges the source document into the destination document and saves it.
//
// Records only in the source are added. Records in both are replaced only with
// UpdateExisting. Records only in the destination are kept. Session entries are
// merged by id, and the global counters follow whichever side practiced last.
func (s *Syncer) Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	src, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("source.Load() > %w", err)
	}
	dst, err := s.destination.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("destination.Load() > %w", err)
	}

	merged := dst.Clone()
	var result SyncResult

	for _, id := range sortedIDs(src.Records) {
		rec := src.Records[id]
		existing, ok := dst.Records[id]
		switch {
		case !ok:
			merged.Records[id] = rec
			fmt.Fprintf(s.writer, "  [NEW]  %s\n", id)
			result.RecordsNew++
		case sameRecord(existing, rec) || !opts.UpdateExisting:
			fmt.Fprintf(s.writer, "  [SKIP]  %s\n", id)
			result.RecordsSkipped++
		default:
			merged.Records[id] = rec
			fmt.Fprintf(s.writer, "  [UPDATE]  %s\n", id)
			result.RecordsUpdated++
		}
	}
	for id := range dst.Records {
		if _, ok := src.Records[id]; !ok {
			result.RecordsKept++
		}
	}

	result.SessionsNew = mergeSessions(merged, src.Sessions)
	if laterSession(src.LastSessionAt, dst.LastSessionAt) {
		merged.TotalReviews = src.TotalReviews
		merged.StreakDays = src.StreakDays
		merged.LastSessionAt = src.LastSessionAt
	}

	if opts.DryRun {
		slog.Debug("dry run, destination not saved", "records", len(merged.Records))
		return &result, nil
	}
	if err := s.destination.Save(ctx, merged); err != nil {
		return nil, fmt.Errorf("destination.Save() > %w", err)
	}
	slog.Debug("progress synced", "records", len(merged.Records), "sessions", len(merged.Sessions))
	return &result, nil
}

func mergeSessions(merged *progress.State, sessions []progress.SessionEntry) int {
	known := make(map[string]struct{}, len(merged.Sessions))
	for _, e := range merged.Sessions {
		known[e.ID] = struct{}{}
	}

	added := 0
	for _, e := range sessions {
		if _, ok := known[e.ID]; ok {
			continue
		}
		merged.Sessions = append(merged.Sessions, e)
		known[e.ID] = struct{}{}
		added++
	}
	sort.SliceStable(merged.Sessions, func(i, j int) bool {
		if merged.Sessions[i].Date != merged.Sessions[j].Date {
			return merged.Sessions[i].Date < merged.Sessions[j].Date
		}
		return merged.Sessions[i].ID < merged.Sessions[j].ID
	})
	return added
}

func laterSession(src, dst *time.Time) bool {
	if src == nil {
		return false
	}
	return dst == nil || src.After(*dst)
}

func sameRecord(a, b progress.PerformanceRecord) bool {
	return a.CorrectCount == b.CorrectCount &&
		a.IncorrectCount == b.IncorrectCount &&
		a.Streak == b.Streak &&
		a.Difficulty == b.Difficulty &&
		a.TotalTimeMs == b.TotalTimeMs &&
		a.ReviewCount == b.ReviewCount &&
		sameTime(a.LastSeenAt, b.LastSeenAt) &&
		sameTime(a.NextReviewAt, b.NextReviewAt)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sortedIDs(records map[string]progress.PerformanceRecord) []string {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
