package models

// QuizSession is the transient state of one user's in-flight vocabulary
// practice run. It is not written to the database; the session store
// keeps it between requests and it is destroyed when results are read.
type QuizSession struct {
	// Order is a permutation of question bank indexes, fixed for the
	// lifetime of the session.
	Order []int `json:"order"`
	// Index is the 0-based cursor into Order.
	Index int `json:"index"`
	// Score counts correctly answered questions so far.
	Score int `json:"score"`
	// Answered is true only between an answer submission and the
	// following advance.
	Answered   bool              `json:"answered"`
	LastOption string            `json:"last_option,omitempty"`
	LastPairs  map[string]string `json:"last_pairs,omitempty"`
}

// Finished reports whether the cursor has moved past the last question.
func (s *QuizSession) Finished() bool {
	return s.Index >= len(s.Order)
}
