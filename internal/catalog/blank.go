package catalog

import (
	"regexp"
	"strings"
)

// BlankExample replaces word in sentence with BlankToken.
// Whole-word matches are tried first; when there are none, any occurrence
// is replaced, so inflected forms like "abated" still get masked.
// The sentence is returned unchanged when the word does not appear at all.
func BlankExample(sentence, word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return sentence
	}

	quoted := regexp.QuoteMeta(word)
	wholeWord := regexp.MustCompile(`(?i)\b` + quoted + `\b`)
	if blanked := wholeWord.ReplaceAllLiteralString(sentence, BlankToken); blanked != sentence {
		return blanked
	}
	return regexp.MustCompile(`(?i)`+quoted).ReplaceAllLiteralString(sentence, BlankToken)
}
