// Package export turns a session's answers into result records and delivers
// them to the result-persistence endpoint.
package export

import (
	"fmt"
	"time"

	"github.com/quizflow/quizflow/internal/quiz"
)

// TestResult is one exported row. Field names match the persistence
// endpoint's CSV header exactly.
type TestResult struct {
	SessionID      string `json:"session_id"`
	Timestamp      string `json:"timestamp"`
	UserID         string `json:"user_id"`
	TaskID         string `json:"task_id"`
	SelectedOption string `json:"selected_option"`
	IsCorrect      bool   `json:"is_correct"`
}

// BuildResults maps each answer to a result record. An answer without its
// own timestamp gets now; a missing task id falls back to task_<questionId>.
func BuildResults(answers []quiz.Answer, sessionID, userID string, now time.Time) []TestResult {
	out := make([]TestResult, 0, len(answers))
	for _, a := range answers {
		ts := a.Timestamp
		if ts == "" {
			ts = now.UTC().Format(time.RFC3339)
		}
		taskID := a.TaskID
		if taskID == "" {
			taskID = fmt.Sprintf("task_%d", a.QuestionID)
		}
		out = append(out, TestResult{
			SessionID:      sessionID,
			Timestamp:      ts,
			UserID:         userID,
			TaskID:         taskID,
			SelectedOption: a.SelectedOption,
			IsCorrect:      a.IsCorrect,
		})
	}
	return out
}
