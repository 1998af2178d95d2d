// Package catalog provides the immutable vocabulary deck and lookups over it.
package catalog

// BlankToken masks the target word in BlankedExample.
const BlankToken = "<BLANK>"

// VocabularyItem is a single vocabulary entry in a deck.
// Two items may share the same Word; ID is what tells them apart.
type VocabularyItem struct {
	ID           string `yaml:"id" validate:"required"`
	Word         string `yaml:"word" validate:"required"`
	Definition   string `yaml:"definition" validate:"required"`
	PartOfSpeech string `yaml:"part_of_speech,omitempty"`
	Example      string `yaml:"example,omitempty"`

	// Used by context-mode quizzes
	BlankedExample string `yaml:"blanked_example,omitempty"`
	WordInSentence string `yaml:"word_in_sentence,omitempty"`
	Form           string `yaml:"form,omitempty"`
}
