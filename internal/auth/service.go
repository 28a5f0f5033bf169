package auth

import (
	"errors"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"sat-prep/internal/models"
)

// UserDataInitializer seeds the per-user progress data (progress row,
// settings, daily quests) right after registration.
type UserDataInitializer interface {
	InitializeUser(userID uint) error
}

type Service struct {
	repo        *Repository
	initializer UserDataInitializer
	jwtSecret   []byte
}

func NewService(repo *Repository, initializer UserDataInitializer, jwtSecret string) *Service {
	return &Service{
		repo:        repo,
		initializer: initializer,
		jwtSecret:   []byte(jwtSecret),
	}
}

func (s *Service) Login(username, password string) (string, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		return "", errors.New("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.New("invalid password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *Service) Register(user *models.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashedPassword)
	if err := s.repo.CreateUser(user); err != nil {
		return err
	}

	// New accounts start with default progress, settings and quests.
	if s.initializer != nil {
		if err := s.initializer.InitializeUser(user.ID); err != nil {
			log.Printf("Error initializing data for user %d: %v", user.ID, err)
		}
	}
	return nil
}

func (s *Service) GetProfile(userID uint) (*models.User, error) {
	return s.repo.GetUserByID(userID)
}

func (s *Service) UpdateProfile(userID uint, firstName, lastName, nickname, birthDate, accountType string) error {
	if accountType != "private" && accountType != "public" {
		return errors.New("invalid account type")
	}
	return s.repo.UpdateUserProfile(userID, firstName, lastName, nickname, birthDate, accountType)
}
