package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"sat-prep/internal/auth"
	"sat-prep/internal/models"
	"sat-prep/internal/progress"
	"sat-prep/internal/quiz"
	"sat-prep/pkg/cache"
	"sat-prep/pkg/database"
	"sat-prep/pkg/notify"

	"github.com/gorilla/mux"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize database
	dbConfig := &database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.UserProgress{},
		&models.VocabularyProgress{},
		&models.DailyQuest{},
		&models.OfficialTestScore{},
		&models.PracticeResult{},
		&models.UserSettings{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Quiz sessions live in Redis between requests.
	sessionStore := cache.NewRedisSessionStore(os.Getenv("REDIS_ADDR"))
	if err := sessionStore.Ping(); err != nil {
		log.Printf("Warning: Redis not reachable: %v", err)
	}

	// Notification hub for quest events
	hub := notify.NewHub()
	go hub.Run()

	// Initialize repositories
	authRepo := auth.NewRepository(db)
	progressRepo := progress.NewRepository(db)

	// Initialize services
	jwtSecret := os.Getenv("JWT_SECRET")
	authService := auth.NewService(authRepo, progressRepo, jwtSecret)
	progressService := progress.NewService(progressRepo)
	quizService := quiz.NewService(quiz.DefaultBank(), sessionStore, progressRepo, hub)

	// Initialize handlers
	authHandler := auth.NewHandler(authService)
	progressHandler := progress.NewHandler(progressService)
	quizHandler := quiz.NewHandler(quizService)

	// Setup router
	router := mux.NewRouter()

	// CORS middleware configuration
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	handler := corsMiddleware.Handler(router)

	// Auth routes - no JWT required
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Authenticated routes
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(auth.JWTMiddleware(jwtSecret))

	// Vocabulary practice quiz
	apiRouter.HandleFunc("/practice/start", quizHandler.StartQuiz).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/practice/answer", quizHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/practice/next", quizHandler.NextQuestion).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/practice/results", quizHandler.GetResults).Methods("GET", "OPTIONS")

	// Progress, quests, vocabulary, settings
	apiRouter.HandleFunc("/progress", progressHandler.GetProgress).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/progress/score", progressHandler.UpdateScore).Methods("PUT", "OPTIONS")
	apiRouter.HandleFunc("/progress/streak", progressHandler.UpdateStreak).Methods("PUT", "OPTIONS")
	apiRouter.HandleFunc("/progress/streak-goal", progressHandler.SetStreakGoal).Methods("PUT", "OPTIONS")
	apiRouter.HandleFunc("/progress/tests", progressHandler.GetOfficialTestScores).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/progress/practice", progressHandler.GetPracticeResults).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/quests", progressHandler.GetDailyQuests).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/vocabulary/stats", progressHandler.GetVocabularyStats).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/settings", progressHandler.GetSettings).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/settings", progressHandler.UpdateSetting).Methods("PUT")
	apiRouter.HandleFunc("/profile", authHandler.GetProfile).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/profile", authHandler.UpdateProfile).Methods("PUT")

	// WebSocket endpoint for quest notifications
	apiRouter.HandleFunc("/ws", hub.HandleWebSocket)

	// Initialize random seed
	rand.Seed(time.Now().UnixNano())

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port 8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown setup
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}
