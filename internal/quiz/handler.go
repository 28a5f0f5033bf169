package quiz

import (
	"encoding/json"
	"log"
	"net/http"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// resultsRedirect tells the client to fetch the results view. This is
// the defined fallback for answering or advancing past the last
// question, not an error.
var resultsRedirect = map[string]string{"redirect": "results"}

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(uint)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	question, err := h.service.StartQuiz(userID)
	if err != nil {
		log.Printf("Error starting practice for user %d: %v", userID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(question)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(uint)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	graded, done, err := h.service.SubmitAnswer(userID, sub)
	if err != nil {
		log.Printf("Error grading answer for user %d: %v", userID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if done {
		json.NewEncoder(w).Encode(resultsRedirect)
		return
	}

	json.NewEncoder(w).Encode(graded)
}

func (h *Handler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(uint)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	question, done, err := h.service.NextQuestion(userID)
	if err != nil {
		log.Printf("Error advancing practice for user %d: %v", userID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if done {
		json.NewEncoder(w).Encode(resultsRedirect)
		return
	}

	json.NewEncoder(w).Encode(question)
}

func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(uint)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.service.GetResults(userID)
	if err != nil {
		log.Printf("Error building results for user %d: %v", userID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(summary)
}
