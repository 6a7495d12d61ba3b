package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/quizflow/quizflow/internal/export"
	"github.com/quizflow/quizflow/internal/results"
)

// SaveResultsHandler is the result-persistence endpoint: it accepts one
// non-empty batch of result records and writes the CSV/JSON pair.
func SaveResultsHandler(w *results.Writer) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var batch []export.TestResult
		if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
			writeError(rw, http.StatusBadRequest, "invalid data")
			return
		}
		if len(batch) == 0 {
			writeError(rw, http.StatusBadRequest, "invalid data")
			return
		}
		files, err := w.WriteBatch(batch, time.Now())
		if err != nil {
			log.Printf("save results failed: %v", err)
			writeError(rw, http.StatusInternalServerError, "failed to save results")
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(map[string]any{
			"success": true,
			"message": "Results saved successfully",
			"files":   files,
		})
	}
}

func writeError(rw http.ResponseWriter, code int, msg string) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	_ = json.NewEncoder(rw).Encode(map[string]string{"error": msg})
}
