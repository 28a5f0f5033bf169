package quiz

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"sat-prep/internal/models"
)

// memSessionStore is an in-memory SessionStore for tests.
type memSessionStore struct {
	sessions map[uint]*models.QuizSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[uint]*models.QuizSession)}
}

func (m *memSessionStore) GetSession(userID uint) (*models.QuizSession, error) {
	return m.sessions[userID], nil
}

func (m *memSessionStore) SaveSession(userID uint, session *models.QuizSession) error {
	m.sessions[userID] = session
	return nil
}

func (m *memSessionStore) DeleteSession(userID uint) error {
	delete(m.sessions, userID)
	return nil
}

// fakeProgressStore records every write so tests can assert on the
// side effects of the practice flow. With failAll set, every call
// errors, to verify the engine treats progress writes as best effort.
type fakeProgressStore struct {
	vocab   map[string]*models.VocabularyProgress
	quests  map[string]*models.DailyQuest
	results []*models.PracticeResult
	failAll bool
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{
		vocab: make(map[string]*models.VocabularyProgress),
		quests: map[string]*models.DailyQuest{
			QuestLearnWords:      {QuestName: QuestLearnWords, TargetValue: 10},
			QuestCompleteLessons: {QuestName: QuestCompleteLessons, TargetValue: 3},
		},
	}
}

func (f *fakeProgressStore) GetVocabulary(userID uint, word string) (*models.VocabularyProgress, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	return f.vocab[word], nil
}

func (f *fakeProgressStore) UpsertVocabulary(userID uint, word string, timesCorrect, timesIncorrect, mastery int) error {
	if f.failAll {
		return errors.New("store down")
	}
	f.vocab[word] = &models.VocabularyProgress{
		UserID:         userID,
		Word:           word,
		TimesCorrect:   timesCorrect,
		TimesIncorrect: timesIncorrect,
		MasteryLevel:   mastery,
	}
	return nil
}

func (f *fakeProgressStore) CountVocabularyWords(userID uint) (int64, error) {
	if f.failAll {
		return 0, errors.New("store down")
	}
	return int64(len(f.vocab)), nil
}

func (f *fakeProgressStore) GetQuest(userID uint, name string) (*models.DailyQuest, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	return f.quests[name], nil
}

func (f *fakeProgressStore) UpdateQuestProgress(userID uint, name string, current int) (*models.DailyQuest, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	quest, ok := f.quests[name]
	if !ok {
		return nil, nil
	}
	quest.CurrentValue = current
	quest.Completed = current >= quest.TargetValue
	return quest, nil
}

func (f *fakeProgressStore) SavePracticeResult(result *models.PracticeResult) error {
	if f.failAll {
		return errors.New("store down")
	}
	f.results = append(f.results, result)
	return nil
}

// fakeNotifier collects pushed events in order.
type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) SendToUser(userID uint, event string, data interface{}) {
	f.events = append(f.events, event)
}

func testService(bank *Bank) (*Service, *memSessionStore, *fakeProgressStore, *fakeNotifier) {
	sessions := newMemSessionStore()
	progress := newFakeProgressStore()
	notifier := &fakeNotifier{}
	return NewService(bank, sessions, progress, notifier), sessions, progress, notifier
}

func makeWordBank(n int) *Bank {
	questions := make([]Question, n)
	for i := range questions {
		word := fmt.Sprintf("word%d", i)
		questions[i] = Question{
			Kind:        KindDefinition,
			Prompt:      fmt.Sprintf("What is the definition of '%s'?", word),
			Options:     []string{"right answer", "wrong one", "wrong two", "wrong three"},
			Answer:      "right answer",
			Word:        word,
			Explanation: "because",
		}
	}
	return NewBank(questions)
}

func pairsBank() *Bank {
	return NewBank([]Question{
		{
			Kind:   KindPairsMatching,
			Prompt: "Match each word to its definition.",
			Pairs: []Pair{
				{Word: "alpha", Definition: "first"},
				{Word: "beta", Definition: "second"},
				{Word: "gamma", Definition: "third"},
				{Word: "delta", Definition: "fourth"},
			},
			Explanation: "because",
		},
	})
}

func correctSubmission(q *Question) Submission {
	if q.Kind == KindPairsMatching {
		pairs := make(map[string]string, len(q.Pairs))
		for _, p := range q.Pairs {
			pairs[p.Word] = p.Definition
		}
		return Submission{SelectedPairs: pairs}
	}
	return Submission{SelectedOption: q.Answer}
}

func TestStartQuiz_OrderCoversWholeBank(t *testing.T) {
	svc, sessions, _, _ := testService(makeWordBank(9))

	first, err := svc.StartQuiz(1)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if first.Index != 0 || first.Total != 9 || first.Score != 0 {
		t.Errorf("first question = index %d, total %d, score %d; want 0, 9, 0",
			first.Index, first.Total, first.Score)
	}

	session := sessions.sessions[1]
	if session == nil {
		t.Fatal("no session saved")
	}
	got := append([]int(nil), session.Order...)
	sort.Ints(got)
	for i, v := range got {
		if v != i {
			t.Fatalf("order is not a permutation of the bank indexes: %v", session.Order)
		}
	}
}

func TestStartQuiz_OrderVariesBetweenSessions(t *testing.T) {
	svc, sessions, _, _ := testService(makeWordBank(20))

	var orders []string
	for i := 0; i < 10; i++ {
		if _, err := svc.StartQuiz(1); err != nil {
			t.Fatalf("StartQuiz: %v", err)
		}
		orders = append(orders, fmt.Sprint(sessions.sessions[1].Order))
	}

	distinct := make(map[string]bool)
	for _, o := range orders {
		distinct[o] = true
	}
	if len(distinct) < 2 {
		t.Errorf("10 sessions over 20 questions produced a single order %s", orders[0])
	}
}

func TestStartQuiz_PresentedOptionsArePermutation(t *testing.T) {
	bank := makeWordBank(1)
	svc, _, _, _ := testService(bank)

	p, err := svc.StartQuiz(1)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	want := append([]string(nil), bank.Question(0).Options...)
	got := append([]string(nil), p.Options...)
	sort.Strings(want)
	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("presented %d options, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("presented options %v are not the question's options %v", p.Options, bank.Question(0).Options)
		}
	}
}

func TestStartQuiz_PairsColumnsShuffledIndependently(t *testing.T) {
	bank := pairsBank()
	svc, _, _, _ := testService(bank)
	pairs := bank.Question(0).Pairs

	aligned := 0
	for i := 0; i < 30; i++ {
		p, err := svc.StartQuiz(1)
		if err != nil {
			t.Fatalf("StartQuiz: %v", err)
		}
		if len(p.Words) != len(pairs) || len(p.Definitions) != len(pairs) {
			t.Fatalf("presented %d words and %d definitions, want %d each",
				len(p.Words), len(p.Definitions), len(pairs))
		}

		byWord := make(map[string]string, len(pairs))
		for _, pr := range pairs {
			byWord[pr.Word] = pr.Definition
		}
		rowsMatch := true
		for j, w := range p.Words {
			def, ok := byWord[w]
			if !ok {
				t.Fatalf("presented unknown word %q", w)
			}
			if p.Definitions[j] != def {
				rowsMatch = false
			}
		}
		if rowsMatch {
			aligned++
		}
	}
	if aligned == 30 {
		t.Error("words and definitions stayed aligned across 30 presentations")
	}
}

func TestSubmitAnswer_ExactMatchRequired(t *testing.T) {
	tests := []struct {
		name     string
		selected string
		correct  bool
	}{
		{"exact answer", "right answer", true},
		{"wrong option", "wrong one", false},
		{"case differs", "Right Answer", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, sessions, _, _ := testService(makeWordBank(1))
			if _, err := svc.StartQuiz(1); err != nil {
				t.Fatalf("StartQuiz: %v", err)
			}

			graded, done, err := svc.SubmitAnswer(1, Submission{SelectedOption: tt.selected})
			if err != nil || done {
				t.Fatalf("SubmitAnswer: done=%v err=%v", done, err)
			}
			if graded.Feedback.Correct != tt.correct {
				t.Errorf("correct = %v, want %v", graded.Feedback.Correct, tt.correct)
			}
			if graded.Feedback.CorrectAnswer != "right answer" {
				t.Errorf("CorrectAnswer = %q", graded.Feedback.CorrectAnswer)
			}
			if graded.Feedback.SelectedOption != tt.selected {
				t.Errorf("SelectedOption = %q, want %q", graded.Feedback.SelectedOption, tt.selected)
			}

			wantScore := 0
			if tt.correct {
				wantScore = 1
			}
			session := sessions.sessions[1]
			if session.Score != wantScore {
				t.Errorf("session score = %d, want %d", session.Score, wantScore)
			}
			if !session.Answered {
				t.Error("session not marked answered")
			}
		})
	}
}

func TestSubmitAnswer_PairsAllOrNothing(t *testing.T) {
	bank := pairsBank()

	t.Run("every mapping correct", func(t *testing.T) {
		svc, sessions, _, _ := testService(bank)
		if _, err := svc.StartQuiz(1); err != nil {
			t.Fatalf("StartQuiz: %v", err)
		}

		graded, done, err := svc.SubmitAnswer(1, correctSubmission(bank.Question(0)))
		if err != nil || done {
			t.Fatalf("SubmitAnswer: done=%v err=%v", done, err)
		}
		if !graded.Feedback.Correct {
			t.Error("fully correct mapping graded incorrect")
		}
		if graded.Feedback.CorrectAnswer != "" {
			t.Errorf("pairs feedback leaked a correct answer: %q", graded.Feedback.CorrectAnswer)
		}
		if sessions.sessions[1].Score != 1 {
			t.Errorf("score = %d, want 1", sessions.sessions[1].Score)
		}
	})

	t.Run("one mapping wrong fails the question", func(t *testing.T) {
		svc, sessions, _, _ := testService(bank)
		if _, err := svc.StartQuiz(1); err != nil {
			t.Fatalf("StartQuiz: %v", err)
		}

		sub := correctSubmission(bank.Question(0))
		sub.SelectedPairs["delta"] = "first"
		graded, done, err := svc.SubmitAnswer(1, sub)
		if err != nil || done {
			t.Fatalf("SubmitAnswer: done=%v err=%v", done, err)
		}
		if graded.Feedback.Correct {
			t.Error("three of four mappings graded correct")
		}
		if sessions.sessions[1].Score != 0 {
			t.Errorf("score = %d, want 0", sessions.sessions[1].Score)
		}
	})

	t.Run("missing mapping fails the question", func(t *testing.T) {
		svc, _, _, _ := testService(bank)
		if _, err := svc.StartQuiz(1); err != nil {
			t.Fatalf("StartQuiz: %v", err)
		}

		sub := correctSubmission(bank.Question(0))
		delete(sub.SelectedPairs, "beta")
		graded, _, err := svc.SubmitAnswer(1, sub)
		if err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if graded.Feedback.Correct {
			t.Error("incomplete mapping graded correct")
		}
	})
}

func TestSubmitAnswer_NoSessionRedirects(t *testing.T) {
	svc, _, _, _ := testService(makeWordBank(3))

	graded, done, err := svc.SubmitAnswer(1, Submission{SelectedOption: "right answer"})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !done || graded != nil {
		t.Errorf("want done redirect, got done=%v graded=%v", done, graded)
	}
}

func TestSubmitAnswer_PastEndRedirects(t *testing.T) {
	svc, sessions, _, _ := testService(makeWordBank(2))
	sessions.sessions[1] = &models.QuizSession{Order: []int{0, 1}, Index: 2, Score: 1}

	_, done, err := svc.SubmitAnswer(1, Submission{SelectedOption: "right answer"})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !done {
		t.Error("submitting past the last question should redirect to results")
	}
	if sessions.sessions[1].Score != 1 {
		t.Error("redirect must not change the score")
	}
}

func TestNextQuestion_AdvancesAndResets(t *testing.T) {
	svc, sessions, _, _ := testService(makeWordBank(3))
	if _, err := svc.StartQuiz(1); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if _, _, err := svc.SubmitAnswer(1, Submission{SelectedOption: "right answer"}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	p, done, err := svc.NextQuestion(1)
	if err != nil || done {
		t.Fatalf("NextQuestion: done=%v err=%v", done, err)
	}
	if p.Index != 1 {
		t.Errorf("index = %d, want 1", p.Index)
	}
	if p.Score != 1 {
		t.Errorf("score = %d, want 1", p.Score)
	}

	session := sessions.sessions[1]
	if session.Answered || session.LastOption != "" || session.LastPairs != nil {
		t.Error("advancing did not reset the answered state")
	}
}

func TestNextQuestion_TerminalAtEnd(t *testing.T) {
	svc, sessions, _, _ := testService(makeWordBank(2))
	sessions.sessions[1] = &models.QuizSession{Order: []int{1, 0}, Index: 1}

	p, done, err := svc.NextQuestion(1)
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	if !done || p != nil {
		t.Errorf("want terminal signal after the last question, got done=%v p=%v", done, p)
	}
}

func TestNextQuestion_NoSessionRedirects(t *testing.T) {
	svc, _, _, _ := testService(makeWordBank(2))

	_, done, err := svc.NextQuestion(1)
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	if !done {
		t.Error("advancing with no session should redirect to results")
	}
}

func TestGetResults_NoSessionReportsZeros(t *testing.T) {
	svc, _, progress, _ := testService(makeWordBank(5))

	res, err := svc.GetResults(1)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if res.Score != 0 || res.Total != 0 || res.Percentage != 0 {
		t.Errorf("zeros expected, got %+v", res)
	}
	if res.Message != "needs improvement" {
		t.Errorf("message = %q", res.Message)
	}
	if len(progress.results) != 0 {
		t.Error("missing session must not record a practice result")
	}
	if progress.quests[QuestCompleteLessons].CurrentValue != 0 {
		t.Error("missing session must not advance the lessons quest")
	}
}

func TestGetResults_Bands(t *testing.T) {
	tests := []struct {
		score, total   int
		wantPercentage int
		wantMessage    string
	}{
		{9, 9, 100, "excellent"},
		{8, 9, 89, "good"},
		{7, 9, 78, "good"},
		{5, 9, 56, "fair"},
		{4, 9, 44, "needs improvement"},
		{0, 9, 0, "needs improvement"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d of %d", tt.score, tt.total), func(t *testing.T) {
			svc, sessions, _, _ := testService(makeWordBank(tt.total))
			order := make([]int, tt.total)
			for i := range order {
				order[i] = i
			}
			sessions.sessions[1] = &models.QuizSession{Order: order, Index: tt.total, Score: tt.score}

			res, err := svc.GetResults(1)
			if err != nil {
				t.Fatalf("GetResults: %v", err)
			}
			if res.Percentage != tt.wantPercentage {
				t.Errorf("percentage = %d, want %d", res.Percentage, tt.wantPercentage)
			}
			if res.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", res.Message, tt.wantMessage)
			}
		})
	}
}

func TestGetResults_SideEffects(t *testing.T) {
	svc, sessions, progress, _ := testService(makeWordBank(4))
	sessions.sessions[1] = &models.QuizSession{Order: []int{0, 1, 2, 3}, Index: 4, Score: 3}

	res, err := svc.GetResults(1)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if res.Score != 3 || res.Total != 4 || res.Percentage != 75 {
		t.Errorf("summary = %+v", res)
	}

	if got := progress.quests[QuestCompleteLessons].CurrentValue; got != 1 {
		t.Errorf("lessons quest current = %d, want 1", got)
	}
	if len(progress.results) != 1 {
		t.Fatalf("recorded %d practice results, want 1", len(progress.results))
	}
	saved := progress.results[0]
	if saved.Score != 3 || saved.MaxScore != 4 || saved.PracticeType != "vocabulary" {
		t.Errorf("practice result = %+v", saved)
	}

	if sessions.sessions[1] != nil {
		t.Fatal("session survived the results page")
	}
	again, err := svc.GetResults(1)
	if err != nil {
		t.Fatalf("second GetResults: %v", err)
	}
	if again.Score != 0 || again.Total != 0 {
		t.Errorf("reload after results returned %+v, want zeros", again)
	}
	if got := progress.quests[QuestCompleteLessons].CurrentValue; got != 1 {
		t.Errorf("reload advanced the lessons quest to %d", got)
	}
}

func TestSubmitAnswer_TracksVocabulary(t *testing.T) {
	bank := makeWordBank(1)
	svc, _, progress, notifier := testService(bank)

	answer := func(selected string) {
		t.Helper()
		if _, err := svc.StartQuiz(1); err != nil {
			t.Fatalf("StartQuiz: %v", err)
		}
		if _, _, err := svc.SubmitAnswer(1, Submission{SelectedOption: selected}); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	}

	answer("right answer")
	rec := progress.vocab["word0"]
	if rec == nil {
		t.Fatal("no vocabulary row written")
	}
	if rec.TimesCorrect != 1 || rec.TimesIncorrect != 0 || rec.MasteryLevel != 0 {
		t.Errorf("after first correct: %+v", rec)
	}

	answer("right answer")
	rec = progress.vocab["word0"]
	if rec.TimesCorrect != 2 || rec.MasteryLevel != 1 {
		t.Errorf("after second correct: %+v", rec)
	}

	answer("wrong one")
	rec = progress.vocab["word0"]
	if rec.TimesCorrect != 2 || rec.TimesIncorrect != 1 || rec.MasteryLevel != 1 {
		t.Errorf("after one incorrect: %+v", rec)
	}

	if got := progress.quests[QuestLearnWords].CurrentValue; got != 1 {
		t.Errorf("learn-words quest current = %d, want distinct word count 1", got)
	}
	if len(notifier.events) == 0 || notifier.events[0] != "quest_progress" {
		t.Errorf("notifier events = %v, want quest_progress pushes", notifier.events)
	}
}

func TestSubmitAnswer_PairsCountAsPlaceholderWord(t *testing.T) {
	bank := pairsBank()
	svc, _, progress, _ := testService(bank)
	if _, err := svc.StartQuiz(1); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if _, _, err := svc.SubmitAnswer(1, correctSubmission(bank.Question(0))); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	if progress.vocab[PlaceholderWord] == nil {
		t.Fatalf("pairs answer not tracked under %q", PlaceholderWord)
	}
}

func TestSubmitAnswer_ProgressFailuresAreSwallowed(t *testing.T) {
	svc, sessions, progress, _ := testService(makeWordBank(2))
	if _, err := svc.StartQuiz(1); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	progress.failAll = true

	graded, done, err := svc.SubmitAnswer(1, Submission{SelectedOption: "right answer"})
	if err != nil || done {
		t.Fatalf("SubmitAnswer: done=%v err=%v", done, err)
	}
	if !graded.Feedback.Correct {
		t.Error("grading changed when progress writes fail")
	}
	if sessions.sessions[1].Score != 1 {
		t.Error("score lost when progress writes fail")
	}

	res, err := svc.GetResults(1)
	if err != nil {
		t.Fatalf("GetResults with failing store: %v", err)
	}
	if res.Score != 1 || res.Total != 2 {
		t.Errorf("summary = %+v", res)
	}
}

func TestFullRun_PerfectScore(t *testing.T) {
	bank := makeWordBank(9)
	svc, sessions, progress, notifier := testService(bank)

	if _, err := svc.StartQuiz(7); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	done := false
	for !done {
		session := sessions.sessions[7]
		q := bank.Question(session.Order[session.Index])
		if _, d, err := svc.SubmitAnswer(7, correctSubmission(q)); err != nil || d {
			t.Fatalf("SubmitAnswer at index %d: done=%v err=%v", session.Index, d, err)
		}
		_, done, _ = svc.NextQuestion(7)
	}

	res, err := svc.GetResults(7)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if res.Score != 9 || res.Total != 9 || res.Percentage != 100 || res.Message != "excellent" {
		t.Errorf("summary = %+v", res)
	}

	if got := len(progress.vocab); got != 9 {
		t.Errorf("tracked %d words, want 9", got)
	}
	learn := progress.quests[QuestLearnWords]
	if learn.CurrentValue != 9 {
		t.Errorf("learn-words quest current = %d, want 9", learn.CurrentValue)
	}
	if learn.Completed {
		t.Error("learn-words quest completed at 9 of 10")
	}

	completed := 0
	for _, e := range notifier.events {
		if e == "quest_completed" {
			completed++
		}
	}
	if completed != 0 {
		t.Errorf("saw %d quest_completed events in a 9-word run", completed)
	}
}
