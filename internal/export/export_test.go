package export_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quizflow/quizflow/internal/export"
	"github.com/quizflow/quizflow/internal/quiz"
)

func TestBuildResultsFallbacks(t *testing.T) {
	now := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)
	answers := []quiz.Answer{
		{QuestionID: 5, SelectedOptionID: 1, IsCorrect: true, Likely: 0.4,
			TaskID: "custom", SelectedOption: "foo", Timestamp: "2025-03-01T10:00:00Z"},
		{QuestionID: 9, SelectedOptionID: 0, IsCorrect: false, Likely: 0.7},
	}
	out := export.BuildResults(answers, "sess-1", "user-1", now)
	if len(out) != 2 {
		t.Fatalf("%d records, want 2", len(out))
	}
	if out[0].TaskID != "custom" || out[0].Timestamp != "2025-03-01T10:00:00Z" {
		t.Fatalf("explicit fields overridden: %+v", out[0])
	}
	if out[1].TaskID != "task_9" {
		t.Fatalf("task_id = %q, want synthesized task_9", out[1].TaskID)
	}
	if out[1].Timestamp != now.Format(time.RFC3339) {
		t.Fatalf("timestamp = %q, want now fallback", out[1].Timestamp)
	}
	if out[1].SelectedOption != "" {
		t.Fatalf("selected_option = %q, want empty", out[1].SelectedOption)
	}
	for _, r := range out {
		if r.SessionID != "sess-1" || r.UserID != "user-1" {
			t.Fatalf("session/user not stamped: %+v", r)
		}
	}
}

func TestClientSaveResults(t *testing.T) {
	var got []export.TestResult
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c := export.New(export.Config{URL: srv.URL})
	batch := []export.TestResult{{SessionID: "s", UserID: "u", TaskID: "task_1", IsCorrect: true}}
	if err := c.SaveResults(context.Background(), batch); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(got) != 1 || got[0].TaskID != "task_1" {
		t.Fatalf("server received %+v", got)
	}
}

func TestClientRejectsEmptyBatch(t *testing.T) {
	c := export.New(export.Config{URL: "http://localhost:0"})
	if err := c.SaveResults(context.Background(), nil); err == nil {
		t.Fatal("empty batch accepted")
	}
}

func TestClientReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", 500)
	}))
	defer srv.Close()

	c := export.New(export.Config{URL: srv.URL})
	err := c.SaveResults(context.Background(), []export.TestResult{{SessionID: "s"}})
	if err == nil {
		t.Fatal("500 treated as success")
	}
}
