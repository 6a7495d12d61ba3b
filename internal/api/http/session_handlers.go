package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/quizflow/quizflow/internal/export"
	"github.com/quizflow/quizflow/internal/quiz"

	"github.com/go-chi/chi/v5"
)

// InitSessionHandler (re)builds the session from the startup question bank.
// Each call re-randomizes question order and option shuffles.
func InitSessionHandler(s *quiz.Session, bank []quiz.Question) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.InitializeQuestions(bank)
		_ = json.NewEncoder(w).Encode(sessionInfo(s))
	}
}

func GetSessionHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sessionInfo(s))
	}
}

func sessionInfo(s *quiz.Session) map[string]any {
	return map[string]any{
		"session_id":    s.SessionID(),
		"user_id":       s.UserID(),
		"data_version":  s.DataVersion(),
		"questions":     len(s.Questions()),
		"current_index": s.CurrentIndex(),
		"answered":      len(s.Answers()),
	}
}

func ListQuestionsHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(s.Questions())
	}
}

func CurrentQuestionHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := s.CurrentQuestion()
		if !ok {
			http.Error(w, "no current question", 404)
			return
		}
		_ = json.NewEncoder(w).Encode(q)
	}
}

func GetQuestionHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "questionID"))
		if err != nil {
			http.Error(w, "bad question id", 400)
			return
		}
		q, ok := s.QuestionByID(id)
		if !ok {
			http.Error(w, "question not found", 404)
			return
		}
		_ = json.NewEncoder(w).Encode(q)
	}
}

// SetIndexHandler moves the navigation cursor. No bounds check here; an
// out-of-range cursor surfaces as 404 from CurrentQuestionHandler.
func SetIndexHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Index int `json:"index"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		s.SetCurrentIndex(req.Index)
		w.WriteHeader(http.StatusNoContent)
	}
}

func SubmitAnswerHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID       int `json:"question_id"`
			SelectedOptionID int `json:"selected_option_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		s.SubmitAnswer(req.QuestionID, req.SelectedOptionID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListAnswersHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(s.Answers())
	}
}

func StatsHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(s.Stats())
	}
}

func AddTrainingHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "questionID"))
		if err != nil {
			http.Error(w, "bad question id", 400)
			return
		}
		s.AddToTraining(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func RemoveTrainingHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "questionID"))
		if err != nil {
			http.Error(w, "bad question id", 400)
			return
		}
		s.RemoveFromTraining(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListTrainingHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(s.TrainingList())
	}
}

func ClearTrainingHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearTrainingList()
		w.WriteHeader(http.StatusNoContent)
	}
}

func ReportIssueHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rep quiz.IssueReport
		if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		s.ReportIssue(rep)
		w.WriteHeader(http.StatusNoContent)
	}
}

func ResetQuizHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ResetQuiz()
		_ = json.NewEncoder(w).Encode(sessionInfo(s))
	}
}

func SetUserHandler(s *quiz.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID string `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.UserID == "" {
			http.Error(w, "user_id required", 400)
			return
		}
		s.SetUserID(req.UserID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// FinishHandler returns the session stats and kicks off the result export.
// The export is fire-and-forget: a slow or failed save never blocks the
// response, it only leaves a log line.
func FinishHandler(s *quiz.Session, client *export.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		answers := s.Answers()
		if len(answers) > 0 && client != nil {
			batch := export.BuildResults(answers, s.SessionID(), s.UserID(), time.Now())
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := client.SaveResults(ctx, batch); err != nil {
					log.Printf("result export failed: %v", err)
				}
			}()
		}
		_ = json.NewEncoder(w).Encode(s.Stats())
	}
}
