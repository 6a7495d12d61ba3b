package quiz

// Question is a raw question bank record. Source of truth; never mutated.
type Question struct {
	ID              int      `json:"id"`
	Text            string   `json:"text"`
	Options         []string `json:"options"`
	CorrectIndex    int      `json:"correctIndex"`
	Likely          float64  `json:"likely"` // in [0,1], higher = easier
	Explanation     string   `json:"explanation"`
	SkillName       string   `json:"skillName,omitempty"`
	SkillDefinition string   `json:"skillDefinition,omitempty"`
}

// Option pairs an option text with its original index in the raw record.
// The ID survives shuffling, so the correct-answer reference never depends
// on array position.
type Option struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// SessionQuestion is a Question prepared for one session: options shuffled,
// correct answer tracked by stable option id. Exactly one option carries
// ID == CorrectOptionID. Immutable after session initialization.
type SessionQuestion struct {
	ID              int      `json:"id"`
	Text            string   `json:"text"`
	Options         []Option `json:"options"`
	CorrectOptionID int      `json:"correctOptionId"`
	Likely          float64  `json:"likely"`
	Explanation     string   `json:"explanation"`
	SkillName       string   `json:"skillName,omitempty"`
	SkillDefinition string   `json:"skillDefinition,omitempty"`
}

// Answer records one submission. At most one Answer per QuestionID lives in
// a session; resubmitting replaces the previous one.
type Answer struct {
	QuestionID       int     `json:"questionId"`
	SelectedOptionID int     `json:"selectedOptionId"`
	IsCorrect        bool    `json:"isCorrect"`
	Likely           float64 `json:"likely"` // snapshot for difficulty weighting
	TaskID           string  `json:"taskId,omitempty"`
	SelectedOption   string  `json:"selectedOption,omitempty"`
	Timestamp        string  `json:"timestamp,omitempty"`
}

// IssueReport is a user complaint about a question. Append-only; never
// deduplicated.
type IssueReport struct {
	QuestionID     int    `json:"questionId"`
	QuestionText   string `json:"questionText"`
	SelectedOption string `json:"selectedOption"`
	CorrectOption  string `json:"correctOption"`
	UserNote       string `json:"userNote"`
	Timestamp      string `json:"timestamp"`
}

// Stats summarizes a session's answers. AvgDifficultyCorrect is nil when no
// answer is correct.
type Stats struct {
	Answered             int      `json:"answered"`
	Correct              int      `json:"correct"`
	AvgDifficultyCorrect *float64 `json:"avgDifficultyCorrect"`
}
