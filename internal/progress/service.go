package progress

import (
	"errors"

	"sat-prep/internal/models"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetUserProgress never reports a missing row as an error; a user
// without progress data sees the defaults.
func (s *Service) GetUserProgress(userID uint) (*models.UserProgress, error) {
	progress, err := s.repo.GetUserProgress(userID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = &models.UserProgress{
			UserID:        userID,
			TotalScore:    1600,
			EBRWScore:     800,
			MathScore:     800,
			CurrentStreak: 1,
			StreakGoal:    7,
		}
	}
	return progress, nil
}

func (s *Service) UpdateUserScore(userID uint, scoreType string, score int) error {
	return s.repo.UpdateUserScore(userID, scoreType, score)
}

func (s *Service) UpdateStreak(userID uint, streak int) error {
	if streak < 0 {
		return errors.New("streak cannot be negative")
	}
	return s.repo.UpdateStreak(userID, streak)
}

func (s *Service) SetStreakGoal(userID uint, goal int) error {
	if goal <= 0 {
		return errors.New("streak goal must be positive")
	}
	return s.repo.SetStreakGoal(userID, goal)
}

func (s *Service) GetOfficialTestScores(userID uint) ([]models.OfficialTestScore, error) {
	return s.repo.GetOfficialTestScores(userID)
}

func (s *Service) GetPracticeResults(userID uint) ([]models.PracticeResult, error) {
	return s.repo.GetPracticeResults(userID)
}

// GetDailyQuests lists today's quests, creating the default set first
// when the date has rolled over.
func (s *Service) GetDailyQuests(userID uint) ([]models.DailyQuest, error) {
	if err := s.repo.EnsureDailyQuests(userID); err != nil {
		return nil, err
	}
	return s.repo.GetDailyQuests(userID)
}

func (s *Service) GetVocabularyStats(userID uint) (*models.VocabularyStats, error) {
	return s.repo.GetVocabularyStats(userID)
}

func (s *Service) GetSettings(userID uint) (*models.UserSettings, error) {
	settings, err := s.repo.GetSettings(userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &models.UserSettings{
			UserID:        userID,
			Sounds:        true,
			Haptics:       true,
			Friends:       true,
			Notifications: true,
			Emails:        true,
		}
	}
	return settings, nil
}

func (s *Service) UpdateSetting(userID uint, name string, value bool) error {
	return s.repo.UpdateSetting(userID, name, value)
}
