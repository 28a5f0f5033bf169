package quiz

import (
	"log"
	"math"
	"math/rand"
	"time"

	"sat-prep/internal/models"
)

// Daily quest names fed by the practice flow.
const (
	QuestLearnWords      = "Learn 10 new words"
	QuestCompleteLessons = "Complete 3 Lessons"
)

// SessionStore persists the transient QuizSession between requests.
// GetSession returns (nil, nil) when no session exists.
type SessionStore interface {
	GetSession(userID uint) (*models.QuizSession, error)
	SaveSession(userID uint, session *models.QuizSession) error
	DeleteSession(userID uint) error
}

// ProgressStore is the durable progress surface the engine writes
// through. Reads return nil (not an error) when no row matches.
type ProgressStore interface {
	GetVocabulary(userID uint, word string) (*models.VocabularyProgress, error)
	UpsertVocabulary(userID uint, word string, timesCorrect, timesIncorrect, mastery int) error
	CountVocabularyWords(userID uint) (int64, error)
	GetQuest(userID uint, name string) (*models.DailyQuest, error)
	UpdateQuestProgress(userID uint, name string, current int) (*models.DailyQuest, error)
	SavePracticeResult(result *models.PracticeResult) error
}

// Notifier pushes fire-and-forget events to a user's connected clients.
type Notifier interface {
	SendToUser(userID uint, event string, data interface{})
}

// Submission is the answer payload for the current question. Non-pairs
// kinds use SelectedOption; pairs_matching uses SelectedPairs.
type Submission struct {
	SelectedOption string            `json:"selected_option"`
	SelectedPairs  map[string]string `json:"selected_pairs"`
}

// Service drives one quiz at a time per user: start, answer, advance,
// results. Progress writes are best effort; a failed write is logged
// and the quiz flow continues on the in-memory session alone.
type Service struct {
	bank     *Bank
	sessions SessionStore
	progress ProgressStore
	notifier Notifier
}

func NewService(bank *Bank, sessions SessionStore, progress ProgressStore, notifier Notifier) *Service {
	return &Service{
		bank:     bank,
		sessions: sessions,
		progress: progress,
		notifier: notifier,
	}
}

// StartQuiz begins a fresh session: a uniformly random permutation of
// the whole bank, cursor and score reset, and the first question
// presented. Any previous session for the user is replaced.
func (s *Service) StartQuiz(userID uint) (*models.PresentedQuestion, error) {
	session := &models.QuizSession{
		Order: rand.Perm(s.bank.Len()),
	}
	if err := s.sessions.SaveSession(userID, session); err != nil {
		return nil, err
	}
	return s.present(session), nil
}

// SubmitAnswer grades the current question and records the outcome.
// The second return value is true when the caller should redirect to
// results instead (no session, or the cursor is already past the end).
func (s *Service) SubmitAnswer(userID uint, sub Submission) (*models.GradedQuestion, bool, error) {
	session, err := s.sessions.GetSession(userID)
	if err != nil {
		return nil, false, err
	}
	if session == nil || session.Finished() {
		return nil, true, nil
	}

	q := s.bank.Question(session.Order[session.Index])
	correct := grade(q, sub)
	if correct {
		session.Score++
	}
	session.Answered = true
	session.LastOption = sub.SelectedOption
	session.LastPairs = sub.SelectedPairs

	s.recordVocabulary(userID, q, correct)

	if err := s.sessions.SaveSession(userID, session); err != nil {
		return nil, false, err
	}

	feedback := models.AnswerFeedback{
		Correct:        correct,
		Explanation:    q.Explanation,
		SelectedOption: sub.SelectedOption,
		SelectedPairs:  sub.SelectedPairs,
	}
	if q.Kind != KindPairsMatching {
		feedback.CorrectAnswer = q.Answer
	}

	return &models.GradedQuestion{
		Feedback: feedback,
		Question: *s.present(session),
	}, false, nil
}

// NextQuestion moves the cursor forward and presents the next
// question. The second return value is true when the quiz is over and
// the caller should fetch results.
func (s *Service) NextQuestion(userID uint) (*models.PresentedQuestion, bool, error) {
	session, err := s.sessions.GetSession(userID)
	if err != nil {
		return nil, false, err
	}
	if session == nil {
		return nil, true, nil
	}

	session.Index++
	session.Answered = false
	session.LastOption = ""
	session.LastPairs = nil

	if err := s.sessions.SaveSession(userID, session); err != nil {
		return nil, false, err
	}
	if session.Finished() {
		return nil, true, nil
	}
	return s.present(session), false, nil
}

// GetResults summarizes the run and destroys the session. A missing
// session reports zeros rather than failing, so a reload of the
// results page stays harmless.
func (s *Service) GetResults(userID uint) (*models.ResultsSummary, error) {
	session, err := s.sessions.GetSession(userID)
	if err != nil {
		return nil, err
	}

	score, total := 0, 0
	if session != nil {
		score, total = session.Score, len(session.Order)
	}
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(score) / float64(total)))
	}

	if session != nil {
		if quest, err := s.progress.GetQuest(userID, QuestCompleteLessons); err != nil {
			log.Printf("Error reading quest %q for user %d: %v", QuestCompleteLessons, userID, err)
		} else if quest != nil {
			s.pushQuest(userID, QuestCompleteLessons, quest.CurrentValue+1)
		}

		result := &models.PracticeResult{
			UserID:       userID,
			PracticeName: "Vocabulary Practice",
			PracticeDate: time.Now().Format("2006-01-02"),
			Score:        score,
			MaxScore:     total,
			PracticeType: "vocabulary",
		}
		if err := s.progress.SavePracticeResult(result); err != nil {
			log.Printf("Error saving practice result for user %d: %v", userID, err)
		}

		if err := s.sessions.DeleteSession(userID); err != nil {
			log.Printf("Error clearing quiz session for user %d: %v", userID, err)
		}
	}

	return &models.ResultsSummary{
		Score:      score,
		Total:      total,
		Percentage: percentage,
		Message:    resultMessage(percentage),
	}, nil
}

// present builds the view for the question under the cursor. Options
// are shuffled per presentation; for pairs questions the word and
// definition columns are shuffled independently of each other.
func (s *Service) present(session *models.QuizSession) *models.PresentedQuestion {
	q := s.bank.Question(session.Order[session.Index])
	p := &models.PresentedQuestion{
		Kind:   string(q.Kind),
		Prompt: q.Prompt,
		Index:  session.Index,
		Total:  len(session.Order),
		Score:  session.Score,
	}
	if q.Kind == KindPairsMatching {
		p.Words, p.Definitions = shufflePairs(q.Pairs)
	} else {
		p.Options = shuffled(q.Options)
	}
	return p
}

// recordVocabulary applies the mastery rule for the question's word and
// refreshes the learn-new-words quest from the distinct word count.
// All failures here are logged and swallowed.
func (s *Service) recordVocabulary(userID uint, q *Question, correct bool) {
	word := resolveWord(q)

	var timesCorrect, timesIncorrect int
	rec, err := s.progress.GetVocabulary(userID, word)
	if err != nil {
		log.Printf("Error reading vocabulary progress for user %d word %q: %v", userID, word, err)
	} else if rec != nil {
		timesCorrect = rec.TimesCorrect
		timesIncorrect = rec.TimesIncorrect
	}

	tc, ti, mastery := UpdateMastery(timesCorrect, timesIncorrect, correct)
	if err := s.progress.UpsertVocabulary(userID, word, tc, ti, mastery); err != nil {
		log.Printf("Error saving vocabulary progress for user %d word %q: %v", userID, word, err)
	}

	count, err := s.progress.CountVocabularyWords(userID)
	if err != nil {
		log.Printf("Error counting vocabulary words for user %d: %v", userID, err)
		return
	}
	s.pushQuest(userID, QuestLearnWords, int(count))
}

func (s *Service) pushQuest(userID uint, name string, current int) {
	quest, err := s.progress.UpdateQuestProgress(userID, name, current)
	if err != nil {
		log.Printf("Error updating quest %q for user %d: %v", name, userID, err)
		return
	}
	if quest == nil || s.notifier == nil {
		return
	}
	s.notifier.SendToUser(userID, "quest_progress", quest)
	if quest.Completed {
		s.notifier.SendToUser(userID, "quest_completed", quest)
	}
}

func grade(q *Question, sub Submission) bool {
	if q.Kind == KindPairsMatching {
		// All-or-nothing: a single wrong mapping fails the question.
		for _, p := range q.Pairs {
			if sub.SelectedPairs[p.Word] != p.Definition {
				return false
			}
		}
		return true
	}
	return sub.SelectedOption == q.Answer
}

func resultMessage(percentage int) string {
	switch {
	case percentage >= 90:
		return "excellent"
	case percentage >= 70:
		return "good"
	case percentage >= 50:
		return "fair"
	default:
		return "needs improvement"
	}
}

func shuffled(options []string) []string {
	out := make([]string, len(options))
	copy(out, options)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func shufflePairs(pairs []Pair) ([]string, []string) {
	words := make([]string, len(pairs))
	definitions := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.Word
		definitions[i] = p.Definition
	}
	rand.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	rand.Shuffle(len(definitions), func(i, j int) {
		definitions[i], definitions[j] = definitions[j], definitions[i]
	})
	return words, definitions
}
