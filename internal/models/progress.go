package models

import (
	"time"
)

// UserProgress holds the per-user SAT score snapshot and streak state.
// One row per user; fields are updated independently (last write wins).
type UserProgress struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	TotalScore     int       `json:"total_score" gorm:"default:1600"`
	EBRWScore      int       `json:"ebrw_score" gorm:"default:800"`
	MathScore      int       `json:"math_score" gorm:"default:800"`
	CurrentStreak  int       `json:"current_streak" gorm:"default:1"`
	StreakGoal     int       `json:"streak_goal" gorm:"default:7"`
	LastActiveDate string    `json:"last_active_date"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// VocabularyProgress tracks one user's history with one word.
// MasteryLevel is derived from TimesCorrect and never stored out of sync.
type VocabularyProgress struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `json:"user_id" gorm:"not null;index:idx_user_word,unique"`
	Word           string    `json:"word" gorm:"not null;index:idx_user_word,unique"`
	MasteryLevel   int       `json:"mastery_level" gorm:"default:0"`
	TimesCorrect   int       `json:"times_correct" gorm:"default:0"`
	TimesIncorrect int       `json:"times_incorrect" gorm:"default:0"`
	LastPracticed  string    `json:"last_practiced"`
}

func (VocabularyProgress) TableName() string {
	return "vocabulary_progress"
}

// DailyQuest is a per-day countable goal. Completed is recomputed on
// every write as CurrentValue >= TargetValue.
type DailyQuest struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	QuestName    string    `json:"name" gorm:"not null"`
	TargetValue  int       `json:"target"`
	CurrentValue int       `json:"current" gorm:"default:0"`
	QuestDate    string    `json:"date" gorm:"index"`
	Completed    bool      `json:"completed" gorm:"default:false"`
}

func (DailyQuest) TableName() string {
	return "daily_quests"
}

// OfficialTestScore is an append-only log entry of a real SAT sitting.
type OfficialTestScore struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	TestDate   string    `json:"date"`
	TotalScore int       `json:"total_score"`
	EBRWScore  int       `json:"ebrw_score"`
	MathScore  int       `json:"math_score"`
	TestType   string    `json:"test_type" gorm:"default:official"`
}

func (OfficialTestScore) TableName() string {
	return "official_test_scores"
}

// PracticeResult is an append-only log entry of one practice run.
type PracticeResult struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	PracticeName string    `json:"name"`
	PracticeDate string    `json:"date"`
	Score        int       `json:"score"`
	MaxScore     int       `json:"max_score"`
	PracticeType string    `json:"type"`
}

func (PracticeResult) TableName() string {
	return "practice_results"
}

// UserSettings holds per-user UI and notification toggles.
type UserSettings struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	UserID           uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	DarkMode         bool      `json:"dark_mode" gorm:"default:false"`
	Sounds           bool      `json:"sounds" gorm:"default:true"`
	Haptics          bool      `json:"haptics" gorm:"default:true"`
	Friends          bool      `json:"friends" gorm:"default:true"`
	Notifications    bool      `json:"notifications" gorm:"default:true"`
	Emails           bool      `json:"emails" gorm:"default:true"`
	ProductivityMode bool      `json:"productivity_mode" gorm:"default:false"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

// VocabularyStats is the aggregate view served on the vocabulary page.
type VocabularyStats struct {
	TotalWords     int     `json:"total_words"`
	AvgMastery     float64 `json:"avg_mastery"`
	TotalCorrect   int     `json:"total_correct"`
	TotalIncorrect int     `json:"total_incorrect"`
}
