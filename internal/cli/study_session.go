package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/dustin/go-humanize"

	"github.com/at-ishikawa/grevocab/internal/catalog"
	"github.com/at-ishikawa/grevocab/internal/progress"
)

const (
	defaultSaveAttempts = 3
	defaultSaveDelay    = 200 * time.Millisecond
)

// AnswerRecorder is the part of the progress store the study loop writes to.
type AnswerRecorder interface {
	RecordAnswer(ctx context.Context, id string, correct bool, elapsedMs int64) error
	Save(ctx context.Context) error
	Record(id string) (progress.PerformanceRecord, bool)
}

// AnswerResult is the outcome of one card.
type AnswerResult struct {
	Item    catalog.VocabularyItem
	Correct bool
	Elapsed time.Duration
}

// studySession holds the cards and answers shared by every study mode.
type studySession struct {
	*InteractiveCLI
	store        AnswerRecorder
	cards        []catalog.VocabularyItem
	total        int
	results      []AnswerResult
	now          func() time.Time
	saveAttempts uint
	saveDelay    time.Duration
}

func newStudySession(store AnswerRecorder, items []catalog.VocabularyItem, stdin io.Reader, stdout io.Writer) *studySession {
	cards := make([]catalog.VocabularyItem, len(items))
	copy(cards, items)
	return &studySession{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		store:          store,
		cards:          cards,
		total:          len(cards),
		now:            time.Now,
		saveAttempts:   defaultSaveAttempts,
		saveDelay:      defaultSaveDelay,
	}
}

// Results returns the answers given so far.
func (s *studySession) Results() []AnswerResult {
	return s.results
}

// GetCardCount returns the number of remaining cards
func (s *studySession) GetCardCount() int {
	return len(s.cards)
}

func (s *studySession) printProgress() {
	_, _ = fmt.Fprintf(s.stdoutWriter, "[%d/%d] ", s.total-len(s.cards)+1, s.total)
}

// answer records the result of the current card and moves to the next one.
func (s *studySession) answer(ctx context.Context, card catalog.VocabularyItem, correct bool, elapsed time.Duration) error {
	if err := s.recordAnswer(ctx, card.ID, correct, elapsed.Milliseconds()); err != nil {
		return err
	}
	s.results = append(s.results, AnswerResult{Item: card, Correct: correct, Elapsed: elapsed})
	s.printFeedback(card, correct)
	s.cards = s.cards[1:]
	return nil
}

// recordAnswer records the answer and retries saving when only the write failed,
// so the answer is counted once.
func (s *studySession) recordAnswer(ctx context.Context, id string, correct bool, elapsedMs int64) error {
	err := s.store.RecordAnswer(ctx, id, correct, elapsedMs)
	if err == nil {
		return nil
	}
	if !errors.Is(err, progress.ErrPersist) {
		return fmt.Errorf("RecordAnswer(%s) > %w", id, err)
	}

	slog.Warn("failed to save progress, retrying", "id", id, "error", err)
	if err := retry.Do(
		func() error {
			return s.store.Save(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(s.saveAttempts),
		retry.Delay(s.saveDelay),
		retry.LastErrorOnly(true),
	); err != nil {
		return fmt.Errorf("store.Save() > %w", err)
	}
	return nil
}

func (s *studySession) printFeedback(card catalog.VocabularyItem, correct bool) {
	w := s.stdoutWriter
	if correct {
		_, _ = fmt.Fprint(w, "✅ ")
		_, _ = s.green.Fprintln(w, "Nice, keep it up.")
	} else {
		_, _ = fmt.Fprint(w, "❌ ")
		_, _ = s.red.Fprintln(w, "Keep practicing.")
	}

	if rec, ok := s.store.Record(card.ID); ok {
		_, _ = fmt.Fprintf(w, "   Difficulty: %s, %s", progress.DifficultyLabel(rec.Difficulty), progress.MasteryLabel(rec))
		if rec.NextReviewAt != nil {
			_, _ = fmt.Fprintf(w, ", next review %s", humanize.RelTime(*rec.NextReviewAt, s.now(), "ago", "from now"))
		}
		_, _ = fmt.Fprintln(w)
	}
	_, _ = fmt.Fprintln(w)
}

func (s *studySession) printSummary() {
	w := s.stdoutWriter
	if len(s.results) == 0 {
		_, _ = fmt.Fprintln(w, "No cards were answered.")
		return
	}

	correct := 0
	var totalTime time.Duration
	fastest, slowest := s.results[0], s.results[0]
	for _, result := range s.results {
		if result.Correct {
			correct++
		}
		totalTime += result.Elapsed
		if result.Elapsed < fastest.Elapsed {
			fastest = result
		}
		if result.Elapsed > slowest.Elapsed {
			slowest = result
		}
	}

	_, _ = s.bold.Fprintln(w, "Session complete")
	_, _ = fmt.Fprintf(w, "  Correct:  %d / %d (%.1f%%)\n", correct, len(s.results), float64(correct)/float64(len(s.results))*100)
	_, _ = fmt.Fprintf(w, "  Total:    %s\n", formatElapsed(totalTime))
	_, _ = fmt.Fprintf(w, "  Average:  %s per word\n", formatElapsed(totalTime/time.Duration(len(s.results))))
	_, _ = fmt.Fprintf(w, "  Fastest:  %s (%s)\n", fastest.Item.Word, formatElapsed(fastest.Elapsed))
	_, _ = fmt.Fprintf(w, "  Slowest:  %s (%s)\n", slowest.Item.Word, formatElapsed(slowest.Elapsed))
}

// formatElapsed prints d in milliseconds, seconds or minutes depending on its size.
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
}

func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit":
		return true
	}
	return false
}
