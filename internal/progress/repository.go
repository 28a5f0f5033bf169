package progress

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"sat-prep/internal/models"
)

// Default daily quests created for each user, per day.
var defaultQuests = []models.DailyQuest{
	{QuestName: "Complete 3 Lessons", TargetValue: 3},
	{QuestName: "Practice for 15 minutes", TargetValue: 15},
	{QuestName: "Learn 10 new words", TargetValue: 10},
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// --- User progress ---

// GetUserProgress returns nil when the user has no progress row yet.
func (r *Repository) GetUserProgress(userID uint) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := r.db.Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

var scoreColumns = map[string]string{
	"total": "total_score",
	"ebrw":  "ebrw_score",
	"math":  "math_score",
}

func (r *Repository) UpdateUserScore(userID uint, scoreType string, score int) error {
	column, ok := scoreColumns[scoreType]
	if !ok {
		return errors.New("unknown score type: " + scoreType)
	}
	return r.db.Model(&models.UserProgress{}).
		Where("user_id = ?", userID).
		Update(column, score).Error
}

func (r *Repository) UpdateStreak(userID uint, streak int) error {
	return r.db.Model(&models.UserProgress{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"current_streak":   streak,
			"last_active_date": today(),
		}).Error
}

func (r *Repository) SetStreakGoal(userID uint, goal int) error {
	return r.db.Model(&models.UserProgress{}).
		Where("user_id = ?", userID).
		Update("streak_goal", goal).Error
}

// --- Longitudinal logs ---

func (r *Repository) GetOfficialTestScores(userID uint) ([]models.OfficialTestScore, error) {
	var scores []models.OfficialTestScore
	err := r.db.Where("user_id = ?", userID).
		Order("test_date DESC").
		Find(&scores).Error
	return scores, err
}

func (r *Repository) GetPracticeResults(userID uint) ([]models.PracticeResult, error) {
	var results []models.PracticeResult
	err := r.db.Where("user_id = ?", userID).
		Order("practice_date DESC").
		Find(&results).Error
	return results, err
}

func (r *Repository) SavePracticeResult(result *models.PracticeResult) error {
	if result.PracticeDate == "" {
		result.PracticeDate = today()
	}
	return r.db.Create(result).Error
}

// --- Daily quests ---

func (r *Repository) GetDailyQuests(userID uint) ([]models.DailyQuest, error) {
	var quests []models.DailyQuest
	err := r.db.Where("user_id = ? AND quest_date = ?", userID, today()).
		Find(&quests).Error
	return quests, err
}

// EnsureDailyQuests creates today's default quest rows if the date has
// rolled over since the user last saw them.
func (r *Repository) EnsureDailyQuests(userID uint) error {
	var count int64
	err := r.db.Model(&models.DailyQuest{}).
		Where("user_id = ? AND quest_date = ?", userID, today()).
		Count(&count).Error
	if err != nil || count > 0 {
		return err
	}
	for _, q := range defaultQuests {
		quest := models.DailyQuest{
			UserID:      userID,
			QuestName:   q.QuestName,
			TargetValue: q.TargetValue,
			QuestDate:   today(),
		}
		if err := r.db.Create(&quest).Error; err != nil {
			return err
		}
	}
	log.Printf("Created daily quests for user %d (%s)", userID, today())
	return nil
}

// GetQuest returns today's quest by name, or nil when absent.
func (r *Repository) GetQuest(userID uint, name string) (*models.DailyQuest, error) {
	var quest models.DailyQuest
	err := r.db.Where("user_id = ? AND quest_name = ? AND quest_date = ?", userID, name, today()).
		First(&quest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quest, nil
}

// UpdateQuestProgress sets the current value of today's quest and
// recomputes the completed flag. Returns nil when no such quest exists
// today.
func (r *Repository) UpdateQuestProgress(userID uint, name string, current int) (*models.DailyQuest, error) {
	quest, err := r.GetQuest(userID, name)
	if err != nil || quest == nil {
		return nil, err
	}
	quest.CurrentValue = current
	quest.Completed = current >= quest.TargetValue
	if err := r.db.Save(quest).Error; err != nil {
		return nil, err
	}
	return quest, nil
}

// --- Vocabulary ---

// GetVocabulary returns nil when the user has not met the word yet.
func (r *Repository) GetVocabulary(userID uint, word string) (*models.VocabularyProgress, error) {
	var rec models.VocabularyProgress
	err := r.db.Where("user_id = ? AND word = ?", userID, word).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// UpsertVocabulary inserts the word on first encounter, otherwise
// updates the counters in place. LastPracticed is refreshed either way.
func (r *Repository) UpsertVocabulary(userID uint, word string, timesCorrect, timesIncorrect, mastery int) error {
	rec, err := r.GetVocabulary(userID, word)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &models.VocabularyProgress{
			UserID: userID,
			Word:   word,
		}
	}
	rec.TimesCorrect = timesCorrect
	rec.TimesIncorrect = timesIncorrect
	rec.MasteryLevel = mastery
	rec.LastPracticed = today()
	return r.db.Save(rec).Error
}

func (r *Repository) CountVocabularyWords(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.VocabularyProgress{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *Repository) GetVocabularyStats(userID uint) (*models.VocabularyStats, error) {
	var stats models.VocabularyStats
	err := r.db.Model(&models.VocabularyProgress{}).
		Select("COUNT(*) AS total_words, COALESCE(AVG(mastery_level), 0) AS avg_mastery, COALESCE(SUM(times_correct), 0) AS total_correct, COALESCE(SUM(times_incorrect), 0) AS total_incorrect").
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// --- Settings ---

func (r *Repository) GetSettings(userID uint) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := r.db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

var settingColumns = map[string]string{
	"dark_mode":         "dark_mode",
	"sounds":            "sounds",
	"haptics":           "haptics",
	"friends":           "friends",
	"notifications":     "notifications",
	"emails":            "emails",
	"productivity_mode": "productivity_mode",
}

func (r *Repository) UpdateSetting(userID uint, name string, value bool) error {
	column, ok := settingColumns[name]
	if !ok {
		return errors.New("unknown setting: " + name)
	}
	return r.db.Model(&models.UserSettings{}).
		Where("user_id = ?", userID).
		Update(column, value).Error
}

// --- New user bootstrap ---

// Seed scores shown to a new user before they record their own.
var seedTestScores = []models.OfficialTestScore{
	{TestDate: "2025-05-28", TotalScore: 1480, EBRWScore: 700, MathScore: 780},
	{TestDate: "2025-07-20", TotalScore: 1560, EBRWScore: 760, MathScore: 800},
}

// InitializeUser creates the progress row, settings row, today's
// default quests and the seed test scores for a freshly registered
// user.
func (r *Repository) InitializeUser(userID uint) error {
	if err := r.db.Create(&models.UserProgress{UserID: userID, LastActiveDate: today()}).Error; err != nil {
		return err
	}
	if err := r.db.Create(&models.UserSettings{
		UserID:        userID,
		Sounds:        true,
		Haptics:       true,
		Friends:       true,
		Notifications: true,
		Emails:        true,
	}).Error; err != nil {
		return err
	}
	if err := r.EnsureDailyQuests(userID); err != nil {
		return err
	}
	for _, s := range seedTestScores {
		score := s
		score.UserID = userID
		if err := r.db.Create(&score).Error; err != nil {
			return err
		}
	}
	return nil
}
