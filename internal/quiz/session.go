package quiz

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StateStore persists the session snapshot as an opaque blob under a fixed
// name. Implementations must report ErrNoSnapshot when the name is absent.
type StateStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
}

// Forwarder receives issue reports for delivery to an external collector.
// Forward failures never fail the reporting user's flow.
type Forwarder interface {
	Forward(ctx context.Context, r IssueReport) error
}

// LogForwarder is the default Forwarder: it only logs the report.
type LogForwarder struct{}

func (LogForwarder) Forward(_ context.Context, r IssueReport) error {
	log.Printf("issue reported: question=%d note=%q", r.QuestionID, r.UserNote)
	return nil
}

// Session is the quiz session state machine: the fixed question sequence,
// the navigation cursor, recorded answers, the training set and the issue
// report queue. It is owned by the application root and passed by reference;
// every mutation is followed by a best-effort snapshot save.
type Session struct {
	mu sync.RWMutex

	questions    []SessionQuestion
	currentIndex int
	answers      []Answer
	training     map[int]struct{}
	reports      []IssueReport
	dataVersion  string
	sessionID    string
	userID       string

	store     StateStore
	forwarder Forwarder
}

// NewSession returns an empty session. store may be nil (no persistence);
// forwarder defaults to LogForwarder.
func NewSession(store StateStore, fw Forwarder) *Session {
	if fw == nil {
		fw = LogForwarder{}
	}
	return &Session{
		training:  map[int]struct{}{},
		sessionID: newSessionID(),
		userID:    "anonymous",
		store:     store,
		forwarder: fw,
	}
}

func newSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// InitializeQuestions rebuilds the question list from the raw bank, resets
// the cursor, clears answers and the training set, and starts a fresh
// session id. Each call re-randomizes order independently.
func (s *Session) InitializeQuestions(raw []Question) {
	s.mu.Lock()
	s.questions = BuildSession(raw)
	s.currentIndex = 0
	s.answers = nil
	s.training = map[int]struct{}{}
	s.dataVersion = time.Now().UTC().Format(time.RFC3339)
	s.sessionID = newSessionID()
	s.mu.Unlock()
	s.persist()
}

// SetCurrentIndex moves the navigation cursor. Bounds are the caller's
// responsibility; an out-of-range index just means CurrentQuestion reports
// not found.
func (s *Session) SetCurrentIndex(i int) {
	s.mu.Lock()
	s.currentIndex = i
	s.mu.Unlock()
	s.persist()
}

// SubmitAnswer records an answer for questionID. Unknown ids are a no-op.
// A prior answer for the same question is replaced, so exactly one answer
// per question survives.
func (s *Session) SubmitAnswer(questionID, selectedOptionID int) {
	s.mu.Lock()
	q, ok := s.findQuestion(questionID)
	if !ok {
		s.mu.Unlock()
		return
	}
	a := Answer{
		QuestionID:       questionID,
		SelectedOptionID: selectedOptionID,
		IsCorrect:        selectedOptionID == q.CorrectOptionID,
		Likely:           q.Likely,
		TaskID:           fmt.Sprintf("task_%d", questionID),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}
	for _, opt := range q.Options {
		if opt.ID == selectedOptionID {
			a.SelectedOption = opt.Text
			break
		}
	}
	kept := s.answers[:0]
	for _, prev := range s.answers {
		if prev.QuestionID != questionID {
			kept = append(kept, prev)
		}
	}
	s.answers = append(kept, a)
	s.mu.Unlock()
	s.persist()
}

// AddToTraining flags a question for review. Idempotent.
func (s *Session) AddToTraining(questionID int) {
	s.mu.Lock()
	s.training[questionID] = struct{}{}
	s.mu.Unlock()
	s.persist()
}

// RemoveFromTraining unflags a question. Idempotent.
func (s *Session) RemoveFromTraining(questionID int) {
	s.mu.Lock()
	delete(s.training, questionID)
	s.mu.Unlock()
	s.persist()
}

// ClearTrainingList empties the training set.
func (s *Session) ClearTrainingList() {
	s.mu.Lock()
	s.training = map[int]struct{}{}
	s.mu.Unlock()
	s.persist()
}

// ReportIssue appends to the report queue and hands the report to the
// forwarder. The queue is append-only and never deduplicated.
func (s *Session) ReportIssue(r IssueReport) {
	if r.Timestamp == "" {
		r.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	s.mu.Lock()
	s.reports = append(s.reports, r)
	s.mu.Unlock()
	if err := s.forwarder.Forward(context.Background(), r); err != nil {
		log.Printf("issue report forward failed: %v", err)
	}
	s.persist()
}

// ResetQuiz clears cursor, answers, training set and report queue and starts
// a fresh session id. The question list, dataVersion and userID survive; a
// full restart of the question set needs InitializeQuestions.
func (s *Session) ResetQuiz() {
	s.mu.Lock()
	s.currentIndex = 0
	s.answers = nil
	s.training = map[int]struct{}{}
	s.reports = nil
	s.sessionID = newSessionID()
	s.mu.Unlock()
	s.persist()
}

// SetUserID overwrites the session's user id.
func (s *Session) SetUserID(userID string) {
	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()
	s.persist()
}

// QuestionByID looks a session question up by id.
func (s *Session) QuestionByID(id int) (SessionQuestion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findQuestion(id)
}

func (s *Session) findQuestion(id int) (SessionQuestion, bool) {
	for _, q := range s.questions {
		if q.ID == id {
			return q, true
		}
	}
	return SessionQuestion{}, false
}

// Questions returns the session's question sequence.
func (s *Session) Questions() []SessionQuestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SessionQuestion, len(s.questions))
	copy(out, s.questions)
	return out
}

// CurrentIndex returns the navigation cursor.
func (s *Session) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentIndex
}

// CurrentQuestion returns the question under the cursor, or false when the
// cursor is out of range.
func (s *Session) CurrentQuestion() (SessionQuestion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentIndex < 0 || s.currentIndex >= len(s.questions) {
		return SessionQuestion{}, false
	}
	return s.questions[s.currentIndex], true
}

// Answers returns the recorded answers in submission order.
func (s *Session) Answers() []Answer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// AnswerFor returns the recorded answer for a question, if any.
func (s *Session) AnswerFor(questionID int) (Answer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}

// TrainingList returns the flagged question ids as a sorted slice.
func (s *Session) TrainingList() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trainingSorted()
}

// InTraining reports whether a question is flagged.
func (s *Session) InTraining(questionID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.training[questionID]
	return ok
}

// Reports returns the queued issue reports.
func (s *Session) Reports() []IssueReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]IssueReport, len(s.reports))
	copy(out, s.reports)
	return out
}

// SessionID returns the current opaque session token.
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// UserID returns the session's user id ("anonymous" until set).
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// DataVersion returns the timestamp of the last InitializeQuestions call.
func (s *Session) DataVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataVersion
}

// Stats computes summary statistics over the recorded answers.
func (s *Session) Stats() Stats {
	return ComputeStats(s.Answers())
}
