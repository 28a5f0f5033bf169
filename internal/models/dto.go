package models

// PresentedQuestion is the view-model for one question as shown to the
// user. For pairs_matching questions Words and Definitions carry two
// independently shuffled lists; every other kind uses Options.
type PresentedQuestion struct {
	Kind        string   `json:"kind"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options,omitempty"`
	Words       []string `json:"words,omitempty"`
	Definitions []string `json:"definitions,omitempty"`
	Index       int      `json:"index"`
	Total       int      `json:"total"`
	Score       int      `json:"score"`
}

// AnswerFeedback echoes the grading outcome of a submission.
// CorrectAnswer is omitted for pairs_matching questions.
type AnswerFeedback struct {
	Correct        bool              `json:"correct"`
	CorrectAnswer  string            `json:"correct_answer,omitempty"`
	Explanation    string            `json:"explanation"`
	SelectedOption string            `json:"selected_option,omitempty"`
	SelectedPairs  map[string]string `json:"selected_pairs,omitempty"`
}

// GradedQuestion pairs feedback with a fresh re-presentation of the
// same question (options reshuffled).
type GradedQuestion struct {
	Feedback AnswerFeedback    `json:"feedback"`
	Question PresentedQuestion `json:"question"`
}

// ResultsSummary is the terminal view-model of a practice run.
type ResultsSummary struct {
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Message    string `json:"message"`
}
