package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/at-ishikawa/grevocab/internal/catalog"
)

// StudyQuizCLI manages an interactive flashcard session over a prepared list of items
type StudyQuizCLI struct {
	*studySession
}

// NewStudyQuizCLI creates a study session reading answers from stdin and writing to stdout.
func NewStudyQuizCLI(store AnswerRecorder, items []catalog.VocabularyItem, stdin io.Reader, stdout io.Writer) *StudyQuizCLI {
	return &StudyQuizCLI{
		studySession: newStudySession(store, items, stdin, stdout),
	}
}

func (r *StudyQuizCLI) Session(ctx context.Context) error {
	if len(r.cards) == 0 {
		r.printSummary()
		return errEnd
	}
	card := r.cards[0]
	w := r.stdoutWriter

	r.printProgress()
	_, _ = r.bold.Fprint(w, card.Word)
	if card.PartOfSpeech != "" {
		_, _ = fmt.Fprintf(w, " (%s)", card.PartOfSpeech)
	}
	_, _ = fmt.Fprintln(w)

	shownAt := r.now()
	_, _ = fmt.Fprint(w, "Press Enter to reveal the definition (q to quit): ")
	line, err := r.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(w)
			r.printSummary()
			return errEnd
		}
		return fmt.Errorf("error reading input: %w", err)
	}
	if isQuit(line) {
		r.printSummary()
		return errEnd
	}
	elapsed := r.now().Sub(shownAt)

	_, _ = fmt.Fprintf(w, "Definition: %s\n", r.italic.Sprint(card.Definition))
	if card.Example != "" {
		_, _ = fmt.Fprintf(w, "  Example: %s\n", card.Example)
	}

	correct, quit, err := r.askCorrect()
	if err != nil {
		return err
	}
	if quit {
		r.printSummary()
		return errEnd
	}
	return r.answer(ctx, card, correct, elapsed)
}

// askCorrect asks until the answer is y or n.
func (r *StudyQuizCLI) askCorrect() (correct bool, quit bool, err error) {
	for {
		_, _ = fmt.Fprint(r.stdoutWriter, "Did you know it? [y/n]: ")
		line, err := r.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				_, _ = fmt.Fprintln(r.stdoutWriter)
				return false, true, nil
			}
			return false, false, fmt.Errorf("error reading input: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, false, nil
		case "n", "no":
			return false, false, nil
		case "q", "quit":
			return false, true, nil
		}
	}
}
