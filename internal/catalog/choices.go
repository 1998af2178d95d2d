package catalog

import "math/rand"

// DefaultChoiceCount is the number of options offered per multiple-choice question.
const DefaultChoiceCount = 4

// MultipleChoiceOptions returns correct plus up to n-1 distinct distractors in random order.
// With matchPOS, distractors share correct's part of speech when the deck has at
// least n-1 such items; otherwise any item may be picked.
func (c *Catalog) MultipleChoiceOptions(correct VocabularyItem, rng *rand.Rand, n int, matchPOS bool) []VocabularyItem {
	candidates := make([]VocabularyItem, 0, len(c.items))
	for _, item := range c.items {
		if item.ID != correct.ID {
			candidates = append(candidates, item)
		}
	}

	want := max(0, n-1)
	if matchPOS {
		samePOS := make([]VocabularyItem, 0, len(candidates))
		for _, item := range candidates {
			if item.PartOfSpeech == correct.PartOfSpeech {
				samePOS = append(samePOS, item)
			}
		}
		if len(samePOS) >= want {
			candidates = samePOS
		}
	}

	options := make([]VocabularyItem, 0, 1+min(want, len(candidates)))
	options = append(options, correct)
	for _, i := range rng.Perm(len(candidates))[:min(want, len(candidates))] {
		options = append(options, candidates[i])
	}
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
