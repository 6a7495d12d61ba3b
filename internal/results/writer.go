// Package results implements the result-persistence side: it writes each
// accepted batch as one CSV file and one pretty-printed JSON file under the
// results directory.
package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quizflow/quizflow/internal/export"
)

const csvHeader = "session_id,timestamp,user_id,task_id,selected_option,is_correct"

// Writer persists result batches to flat files. The directory is created on
// demand.
type Writer struct{ dir string }

func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		dir = "./test-results"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the directory batches are written into.
func (w *Writer) Dir() string { return w.dir }

// Files holds the paths a batch was written to.
type Files struct {
	CSV  string `json:"csv"`
	JSON string `json:"json"`
}

// WriteBatch writes one CSV and one JSON file for the batch, both named
// results_<user_id>_<session_id>_<YYYY-MM-DD>. The batch must be non-empty;
// user and session ids are taken from its first record.
func (w *Writer) WriteBatch(batch []export.TestResult, now time.Time) (Files, error) {
	if len(batch) == 0 {
		return Files{}, errors.New("empty result batch")
	}
	base := fmt.Sprintf("results_%s_%s_%s",
		batch[0].UserID, batch[0].SessionID, now.UTC().Format("2006-01-02"))

	csvPath := filepath.Join(w.dir, base+".csv")
	if err := os.WriteFile(csvPath, []byte(encodeCSV(batch)), 0o644); err != nil {
		return Files{}, err
	}

	buf, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return Files{}, err
	}
	jsonPath := filepath.Join(w.dir, base+".json")
	if err := os.WriteFile(jsonPath, buf, 0o644); err != nil {
		return Files{}, err
	}
	return Files{CSV: csvPath, JSON: jsonPath}, nil
}

// encodeCSV renders the fixed-format export CSV: every string field double
// quoted with internal quotes doubled, is_correct as bare true/false. The
// format predates this service, so encoding/csv's quote-when-needed rules
// don't apply.
func encodeCSV(batch []export.TestResult) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for i, r := range batch {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%t",
			quote(r.SessionID), quote(r.Timestamp), quote(r.UserID),
			quote(r.TaskID), quote(r.SelectedOption), r.IsCorrect)
	}
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
