package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/quizflow/quizflow/internal/api/http"
	"github.com/quizflow/quizflow/internal/bank"
	"github.com/quizflow/quizflow/internal/config"
	"github.com/quizflow/quizflow/internal/db"
	"github.com/quizflow/quizflow/internal/export"
	"github.com/quizflow/quizflow/internal/quiz"
	"github.com/quizflow/quizflow/internal/results"
	syncx "github.com/quizflow/quizflow/internal/sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	// --- Question bank (loaded once at startup) ---
	questions, err := bank.Load(cfg.BankPath)
	if err != nil {
		log.Fatalf("question bank: %v", err)
	}

	// --- Session (restored from the last snapshot if one exists) ---
	forwarder := syncx.NewEventLogForwarder(syncx.NewEventRepo(dbh))
	session := quiz.NewSession(quiz.NewSQLStateStore(dbh, cfg.DBDriver), forwarder)
	if err := session.Restore(ctx); err != nil {
		log.Printf("session restore failed, starting fresh: %v", err)
	}

	// --- Results persistence + export adapter ---
	writer, err := results.NewWriter(cfg.ResultsDir)
	if err != nil {
		log.Fatalf("results dir: %v", err)
	}
	exporter := export.New(export.Config{URL: cfg.ExportURL})

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Post("/save-results", api.SaveResultsHandler(writer))

		ar.Post("/session/init", api.InitSessionHandler(session, questions))
		ar.Get("/session", api.GetSessionHandler(session))
		ar.Put("/session/index", api.SetIndexHandler(session))
		ar.Put("/session/user", api.SetUserHandler(session))
		ar.Post("/session/reset", api.ResetQuizHandler(session))
		ar.Post("/session/finish", api.FinishHandler(session, exporter))

		ar.Get("/questions", api.ListQuestionsHandler(session))
		ar.Get("/questions/current", api.CurrentQuestionHandler(session))
		ar.Get("/questions/{questionID}", api.GetQuestionHandler(session))

		ar.Post("/answers", api.SubmitAnswerHandler(session))
		ar.Get("/answers", api.ListAnswersHandler(session))
		ar.Get("/stats", api.StatsHandler(session))

		ar.Get("/training", api.ListTrainingHandler(session))
		ar.Post("/training/{questionID}", api.AddTrainingHandler(session))
		ar.Delete("/training/{questionID}", api.RemoveTrainingHandler(session))
		ar.Delete("/training", api.ClearTrainingHandler(session))

		ar.Post("/reports", api.ReportIssueHandler(session))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, bank=%s, %d questions)",
		cfg.HTTPAddr, cfg.DBDriver, cfg.BankPath, len(questions))
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
