package quiz

// QuestionKind discriminates the question variants in the bank.
type QuestionKind string

const (
	KindDefinition          QuestionKind = "definition"
	KindSynonym             QuestionKind = "synonym"
	KindAntonym             QuestionKind = "antonym"
	KindFillBlank           QuestionKind = "fill_blank"
	KindWordFromDescription QuestionKind = "word_from_description"
	KindSATAdvanced         QuestionKind = "sat_advanced"
	KindContext             QuestionKind = "context"
	KindPairsMatching       QuestionKind = "pairs_matching"
	KindMultipleChoice      QuestionKind = "multiple_choice"
)

// Pair is one word/definition mapping inside a pairs_matching question.
type Pair struct {
	Word       string
	Definition string
}

// Question is a static question specification. Non-pairs kinds carry
// Options with exactly one entry equal to Answer. pairs_matching
// carries Pairs instead. Word names the vocabulary word the question
// exercises; legacy kinds may leave it empty and rely on the quoted
// prompt patterns (see resolveWord).
type Question struct {
	Kind        QuestionKind
	Prompt      string
	Options     []string
	Answer      string
	Pairs       []Pair
	Word        string
	Explanation string
}

// Bank is the fixed, immutable question collection loaded at startup.
type Bank struct {
	questions []Question
}

func NewBank(questions []Question) *Bank {
	return &Bank{questions: questions}
}

func (b *Bank) Len() int {
	return len(b.questions)
}

func (b *Bank) Question(i int) *Question {
	return &b.questions[i]
}

func (b *Bank) Questions() []Question {
	return b.questions
}

// DefaultBank returns the built-in SAT vocabulary practice set.
func DefaultBank() *Bank {
	return NewBank([]Question{
		{
			Kind:   KindDefinition,
			Prompt: "What is the definition of 'aberration'?",
			Options: []string{
				"A departure from what is normal",
				"A type of fruit",
				"A musical instrument",
				"A large building",
			},
			Answer:      "A departure from what is normal",
			Explanation: "An aberration is a departure from what is normal, usual, or expected.",
		},
		{
			Kind:   KindSynonym,
			Prompt: "Which word is a synonym for 'capricious'?",
			Options: []string{
				"Fickle",
				"Steadfast",
				"Generous",
				"Cautious",
			},
			Answer:      "Fickle",
			Explanation: "Capricious means subject to sudden changes in mood, much like fickle.",
		},
		{
			Kind:   KindAntonym,
			Prompt: "Which word is an antonym for 'loquacious'?",
			Options: []string{
				"Reticent",
				"Talkative",
				"Verbose",
				"Garrulous",
			},
			Answer:      "Reticent",
			Explanation: "Loquacious means tending to talk a lot; reticent means reluctant to speak.",
		},
		{
			Kind:   KindFillBlank,
			Prompt: "The fame of most internet trends is ____, fading within a few weeks.",
			Options: []string{
				"ephemeral",
				"eternal",
				"tangible",
				"arduous",
			},
			Answer:      "ephemeral",
			Word:        "ephemeral",
			Explanation: "Ephemeral means lasting a very short time.",
		},
		{
			Kind:   KindWordFromDescription,
			Prompt: "Which word means to deliberately make something unclear or confusing?",
			Options: []string{
				"Obfuscate",
				"Elucidate",
				"Clarify",
				"Illuminate",
			},
			Answer:      "Obfuscate",
			Word:        "obfuscate",
			Explanation: "To obfuscate is to make something unclear or confusing on purpose.",
		},
		{
			Kind:   KindSATAdvanced,
			Prompt: "The critic argued that the policy's effects, while subtle, were deeply harmful over time. Which word best characterizes such effects?",
			Options: []string{
				"Pernicious",
				"Benign",
				"Salutary",
				"Innocuous",
			},
			Answer:      "Pernicious",
			Word:        "pernicious",
			Explanation: "Pernicious describes harm that is subtle or gradual but serious.",
		},
		{
			Kind:   KindContext,
			Prompt: "In the sentence \"Her equanimity during the crisis reassured the entire team,\" the word 'equanimity' most nearly means:",
			Options: []string{
				"Composure",
				"Confusion",
				"Enthusiasm",
				"Indifference",
			},
			Answer:      "Composure",
			Word:        "equanimity",
			Explanation: "Equanimity is calmness and composure, especially under stress.",
		},
		{
			Kind:   KindMultipleChoice,
			Prompt: "Which of the following words means 'to criticize severely'?",
			Options: []string{
				"Castigate",
				"Extol",
				"Placate",
				"Venerate",
			},
			Answer:      "Castigate",
			Word:        "castigate",
			Explanation: "To castigate is to reprimand or criticize someone severely.",
		},
		{
			Kind:   KindPairsMatching,
			Prompt: "Match each word to its definition.",
			Pairs: []Pair{
				{Word: "aberration", Definition: "A departure from what is normal"},
				{Word: "capricious", Definition: "Subject to sudden changes in mood"},
				{Word: "ephemeral", Definition: "Lasting a very short time"},
				{Word: "loquacious", Definition: "Tending to talk a lot"},
			},
			Explanation: "Each word pairs with exactly one definition; review any mismatched pair.",
		},
	})
}
