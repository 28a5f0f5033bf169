package quiz

import "regexp"

// MaxMasteryLevel caps the per-word mastery score.
const MaxMasteryLevel = 5

// PlaceholderWord stands in for questions that exercise vocabulary as a
// unit rather than a single word (pairs matching, unmatched prompts).
const PlaceholderWord = "vocabulary matching"

// UpdateMastery applies one answer to a word's counters and returns the
// new (timesCorrect, timesIncorrect, masteryLevel). The mastery level
// is always min(5, timesCorrect/2). The function is pure; callers
// persist the result. A brand-new word starts from (0, 0).
func UpdateMastery(timesCorrect, timesIncorrect int, correct bool) (int, int, int) {
	if correct {
		timesCorrect++
	} else {
		timesIncorrect++
	}
	mastery := timesCorrect / 2
	if mastery > MaxMasteryLevel {
		mastery = MaxMasteryLevel
	}
	return timesCorrect, timesIncorrect, mastery
}

// Legacy question sets carry the word only inside the prompt text.
var wordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`definition of '([^']+)'`),
	regexp.MustCompile(`synonym for '([^']+)'`),
	regexp.MustCompile(`antonym for '([^']+)'`),
}

// resolveWord returns the vocabulary word a question exercises. The
// explicit Word field wins; otherwise the quoted prompt patterns are
// tried. Pairs questions and prompts matching no pattern fall back to
// PlaceholderWord so the practice still counts toward vocabulary
// tracking.
func resolveWord(q *Question) string {
	if q.Word != "" {
		return q.Word
	}
	if q.Kind != KindPairsMatching {
		for _, re := range wordPatterns {
			if m := re.FindStringSubmatch(q.Prompt); m != nil {
				return m[1]
			}
		}
	}
	return PlaceholderWord
}
