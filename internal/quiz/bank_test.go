package quiz

import "testing"

func TestDefaultBank_Invariants(t *testing.T) {
	bank := DefaultBank()
	if bank.Len() == 0 {
		t.Fatal("default bank is empty")
	}

	seenKinds := make(map[QuestionKind]bool)
	for i := 0; i < bank.Len(); i++ {
		q := bank.Question(i)
		seenKinds[q.Kind] = true

		if q.Prompt == "" {
			t.Errorf("question %d has an empty prompt", i)
		}
		if q.Explanation == "" {
			t.Errorf("question %d has an empty explanation", i)
		}

		if q.Kind == KindPairsMatching {
			if len(q.Options) != 0 || q.Answer != "" {
				t.Errorf("pairs question %d carries options or an answer", i)
			}
			if len(q.Pairs) < 2 {
				t.Errorf("pairs question %d has %d pairs, want at least 2", i, len(q.Pairs))
			}
			words := make(map[string]bool)
			defs := make(map[string]bool)
			for _, p := range q.Pairs {
				if words[p.Word] {
					t.Errorf("pairs question %d repeats word %q", i, p.Word)
				}
				if defs[p.Definition] {
					t.Errorf("pairs question %d repeats definition %q", i, p.Definition)
				}
				words[p.Word] = true
				defs[p.Definition] = true
			}
			continue
		}

		if len(q.Pairs) != 0 {
			t.Errorf("question %d of kind %s carries pairs", i, q.Kind)
		}
		if len(q.Options) < 2 {
			t.Errorf("question %d has %d options, want at least 2", i, len(q.Options))
		}
		matches := 0
		for _, opt := range q.Options {
			if opt == q.Answer {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("question %d: answer %q appears %d times in options, want exactly 1",
				i, q.Answer, matches)
		}
	}

	for _, kind := range []QuestionKind{
		KindDefinition, KindSynonym, KindAntonym, KindFillBlank,
		KindWordFromDescription, KindSATAdvanced, KindContext,
		KindPairsMatching, KindMultipleChoice,
	} {
		if !seenKinds[kind] {
			t.Errorf("default bank has no %s question", kind)
		}
	}
}

func TestDefaultBank_ResolvesWords(t *testing.T) {
	bank := DefaultBank()
	for i := 0; i < bank.Len(); i++ {
		q := bank.Question(i)
		word := resolveWord(q)
		if word == "" {
			t.Errorf("question %d resolved to an empty word", i)
		}
		if q.Kind == KindPairsMatching && word != PlaceholderWord {
			t.Errorf("pairs question %d resolved to %q, want placeholder", i, word)
		}
	}
}
