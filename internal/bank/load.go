// Package bank loads and shape-checks the raw question bank.
package bank

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quizflow/quizflow/internal/quiz"
)

// Load reads a JSON array of raw questions and validates its shape. The bank
// is the source of truth for a session; anything malformed here would surface
// as undefined behavior mid-quiz, so it fails fast instead.
func Load(path string) ([]quiz.Question, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	var qs []quiz.Question
	if err := json.Unmarshal(buf, &qs); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("question bank %s is empty", path)
	}
	seen := make(map[int]bool, len(qs))
	for i, q := range qs {
		if err := validate(q); err != nil {
			return nil, fmt.Errorf("question %d (id=%d): %w", i, q.ID, err)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("question %d: duplicate id %d", i, q.ID)
		}
		seen[q.ID] = true
	}
	return qs, nil
}

func validate(q quiz.Question) error {
	if q.Text == "" {
		return fmt.Errorf("empty text")
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("no options")
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correctIndex %d out of range [0,%d)", q.CorrectIndex, len(q.Options))
	}
	if q.Likely < 0 || q.Likely > 1 {
		return fmt.Errorf("likely %v outside [0,1]", q.Likely)
	}
	return nil
}
