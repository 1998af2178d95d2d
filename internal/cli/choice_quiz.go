package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/at-ishikawa/grevocab/internal/catalog"
)

// StudyMode selects how cards are asked.
type StudyMode string

const (
	// ModeFlashcard shows the word and lets the learner grade themselves.
	ModeFlashcard StudyMode = "flashcard"
	// ModeQuiz asks for the definition of a word among several choices.
	ModeQuiz StudyMode = "quiz"
	// ModeContext asks which word fills the blank of an example sentence.
	ModeContext StudyMode = "context"
)

// StudyModes lists the accepted study modes.
var StudyModes = []StudyMode{ModeFlashcard, ModeQuiz, ModeContext}

// ParseStudyMode returns the study mode named s.
func ParseStudyMode(s string) (StudyMode, error) {
	mode := StudyMode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range StudyModes {
		if m == mode {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown study mode %q, want one of %v", s, StudyModes)
}

// OptionSource picks the choices offered for a card.
type OptionSource interface {
	MultipleChoiceOptions(correct catalog.VocabularyItem, rng *rand.Rand, n int, matchPOS bool) []catalog.VocabularyItem
}

// ChoiceQuizCLI manages a multiple-choice session in quiz or context mode.
type ChoiceQuizCLI struct {
	*studySession
	mode       StudyMode
	options    OptionSource
	rng        *rand.Rand
	numOptions int
}

// NewChoiceQuizCLI creates a multiple-choice session. mode must be ModeQuiz or ModeContext.
func NewChoiceQuizCLI(
	mode StudyMode,
	store AnswerRecorder,
	options OptionSource,
	rng *rand.Rand,
	items []catalog.VocabularyItem,
	stdin io.Reader,
	stdout io.Writer,
) (*ChoiceQuizCLI, error) {
	if mode != ModeQuiz && mode != ModeContext {
		return nil, fmt.Errorf("mode %q is not a multiple-choice mode", mode)
	}
	return &ChoiceQuizCLI{
		studySession: newStudySession(store, items, stdin, stdout),
		mode:         mode,
		options:      options,
		rng:          rng,
		numOptions:   catalog.DefaultChoiceCount,
	}, nil
}

func (r *ChoiceQuizCLI) Session(ctx context.Context) error {
	if len(r.cards) == 0 {
		r.printSummary()
		return errEnd
	}
	card := r.cards[0]
	w := r.stdoutWriter

	options := r.options.MultipleChoiceOptions(card, r.rng, r.numOptions, true)
	r.printProgress()
	r.printQuestion(card)
	for i, option := range options {
		_, _ = fmt.Fprintf(w, "  %c. %s\n", 'A'+i, r.label(option))
	}

	shownAt := r.now()
	index, quit, err := r.askChoice(len(options))
	if err != nil {
		return err
	}
	if quit {
		r.printSummary()
		return errEnd
	}
	elapsed := r.now().Sub(shownAt)

	chosen := options[index]
	correct := chosen.ID == card.ID || r.label(chosen) == r.label(card)
	r.printAnswer(card, correct)
	return r.answer(ctx, card, correct, elapsed)
}

func (r *ChoiceQuizCLI) printQuestion(card catalog.VocabularyItem) {
	w := r.stdoutWriter
	if r.mode == ModeQuiz {
		_, _ = fmt.Fprint(w, "What is the definition of: ")
		_, _ = r.bold.Fprint(w, card.Word)
		if card.PartOfSpeech != "" {
			_, _ = fmt.Fprintf(w, " (%s)", card.PartOfSpeech)
		}
		_, _ = fmt.Fprintln(w)
		return
	}

	if card.BlankedExample == "" {
		_, _ = fmt.Fprintf(w, "Which word means: %s\n", r.italic.Sprint(card.Definition))
	} else {
		sentence := strings.ReplaceAll(card.BlankedExample, catalog.BlankToken, "_____")
		_, _ = fmt.Fprintf(w, "Fill in the blank: %s\n", r.italic.Sprint(sentence))
	}
	var hints []string
	for _, hint := range []string{card.PartOfSpeech, card.Form} {
		if hint != "" {
			hints = append(hints, hint)
		}
	}
	if len(hints) > 0 {
		_, _ = fmt.Fprintf(w, "  (%s)\n", strings.Join(hints, "; "))
	}
}

// label is what an option shows: the definition in quiz mode, the word in context mode.
func (r *ChoiceQuizCLI) label(item catalog.VocabularyItem) string {
	if r.mode == ModeQuiz {
		return item.Definition
	}
	return item.Word
}

// askChoice asks until the answer is a letter or number of one of n options.
func (r *ChoiceQuizCLI) askChoice(n int) (index int, quit bool, err error) {
	for {
		_, _ = fmt.Fprintf(r.stdoutWriter, "Your answer [A-%c] (q to quit): ", 'A'+n-1)
		line, err := r.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				_, _ = fmt.Fprintln(r.stdoutWriter)
				return 0, true, nil
			}
			return 0, false, fmt.Errorf("error reading input: %w", err)
		}
		if isQuit(line) {
			return 0, true, nil
		}
		if index, ok := parseChoice(line, n); ok {
			return index, false, nil
		}
	}
}

// parseChoice accepts a letter (A, b, ...) or a 1-based number.
func parseChoice(line string, n int) (int, bool) {
	answer := strings.ToUpper(strings.TrimSpace(line))
	if len(answer) == 1 && answer[0] >= 'A' && int(answer[0]-'A') < n {
		return int(answer[0] - 'A'), true
	}
	if number, err := strconv.Atoi(answer); err == nil && number >= 1 && number <= n {
		return number - 1, true
	}
	return 0, false
}

func (r *ChoiceQuizCLI) printAnswer(card catalog.VocabularyItem, correct bool) {
	w := r.stdoutWriter
	switch r.mode {
	case ModeQuiz:
		if correct {
			return
		}
		_, _ = fmt.Fprintf(w, "The correct definition was: %s\n", card.Definition)
		if card.Example != "" {
			_, _ = fmt.Fprintf(w, "  Example: %s\n", card.Example)
		}
	case ModeContext:
		if !correct {
			_, _ = fmt.Fprint(w, "The correct answer was: ")
			_, _ = r.bold.Fprintln(w, card.Word)
		}
		if card.Example != "" {
			_, _ = fmt.Fprintf(w, "Full sentence: %s\n", card.Example)
		}
		_, _ = fmt.Fprintf(w, "Definition: %s\n", card.Definition)
	}
}
