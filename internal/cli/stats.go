package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/at-ishikawa/grevocab/internal/catalog"
	"github.com/at-ishikawa/grevocab/internal/progress"
)

// ItemLookup resolves item ids to catalog entries.
type ItemLookup interface {
	LookupByID(id string) (catalog.VocabularyItem, bool)
}

// PrintStatistics writes the aggregate progress statistics.
func PrintStatistics(w io.Writer, stats progress.Statistics) {
	_, _ = fmt.Fprintln(w, "Progress Statistics")
	_, _ = fmt.Fprintln(w, "===================")
	_, _ = fmt.Fprintf(w, "%-20s %s\n", "Words seen:", humanize.Comma(int64(stats.TotalWordsSeen)))
	_, _ = fmt.Fprintf(w, "%-20s %s\n", "Mastered:", humanize.Comma(int64(stats.MasteredWords)))
	_, _ = fmt.Fprintf(w, "%-20s %s\n", "Learning:", humanize.Comma(int64(stats.LearningWords)))
	_, _ = fmt.Fprintf(w, "%-20s %s\n", "Difficult:", humanize.Comma(int64(stats.DifficultWords)))
	_, _ = fmt.Fprintf(w, "%-20s %.1f%%\n", "Accuracy:", stats.AccuracyRate)
	_, _ = fmt.Fprintf(w, "%-20s %.1f / %d\n", "Average difficulty:", stats.AverageDifficulty, progress.MaxDifficulty)
	_, _ = fmt.Fprintf(w, "%-20s %s\n", "Day streak:", humanize.Comma(int64(stats.StreakDays)))
	_, _ = fmt.Fprintf(w, "%-20s %s\n", "Total reviews:", humanize.Comma(int64(stats.TotalReviews)))
}

// PrintDifficultWords writes ranked records with their labels.
// Records whose item is no longer in the deck are shown by id.
func PrintDifficultWords(w io.Writer, ranked []progress.RankedRecord, items ItemLookup) {
	if len(ranked) == 0 {
		_, _ = fmt.Fprintln(w, "No words have been reviewed yet.")
		return
	}

	_, _ = fmt.Fprintf(w, "%-20s  %-20s  %-16s  %s\n", "Word", "Difficulty", "Mastery", "Correct / Incorrect")
	_, _ = fmt.Fprintf(w, "%-20s  %-20s  %-16s  %s\n", "----", "----------", "-------", "-------------------")
	for _, r := range ranked {
		word := r.ID
		if item, ok := items.LookupByID(r.ID); ok {
			word = item.Word
		}
		_, _ = fmt.Fprintf(w, "%-20s  %-20s  %-16s  %s\n",
			word,
			fmt.Sprintf("%s (%d)", progress.DifficultyLabel(r.Record.Difficulty), r.Record.Difficulty),
			progress.MasteryLabel(r.Record),
			fmt.Sprintf("%d / %d", r.Record.CorrectCount, r.Record.IncorrectCount),
		)
	}
}

// PrintSearchResults writes matching catalog items.
func PrintSearchResults(w io.Writer, items []catalog.VocabularyItem) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "No matching words.")
		return
	}
	for _, item := range items {
		if item.PartOfSpeech != "" {
			_, _ = fmt.Fprintf(w, "%s (%s): %s\n", item.Word, item.PartOfSpeech, item.Definition)
		} else {
			_, _ = fmt.Fprintf(w, "%s: %s\n", item.Word, item.Definition)
		}
	}
	_, _ = fmt.Fprintf(w, "\n%s found\n", pluralize(len(items), "word"))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(int64(n)), noun)
}
