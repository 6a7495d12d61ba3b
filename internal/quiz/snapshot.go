package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"time"
)

// StorageName is the fixed key the session snapshot is stored under.
const StorageName = "quiz-storage"

// ErrNoSnapshot is reported by StateStore.Load when nothing has been saved
// under the requested name.
var ErrNoSnapshot = errors.New("snapshot not found")

// snapshot is the persisted form of a Session. The training set is stored as
// an ordered list and rehydrated into a set on restore; everything else
// round-trips verbatim.
type snapshot struct {
	Questions    []SessionQuestion `json:"questions"`
	CurrentIndex int               `json:"currentIndex"`
	Answers      []Answer          `json:"answers"`
	TrainingList []int             `json:"trainingList"`
	ReportsQueue []IssueReport     `json:"reportsQueue"`
	DataVersion  string            `json:"dataVersion"`
	SessionID    string            `json:"sessionId"`
	UserID       string            `json:"userId"`
}

func (s *Session) trainingSorted() []int {
	ids := make([]int, 0, len(s.training))
	for id := range s.training {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// persist writes the current state to the state store. Best-effort: a write
// failure is logged and the mutation that triggered it stands.
func (s *Session) persist() {
	if s.store == nil {
		return
	}
	s.mu.RLock()
	snap := snapshot{
		Questions:    s.questions,
		CurrentIndex: s.currentIndex,
		Answers:      s.answers,
		TrainingList: s.trainingSorted(),
		ReportsQueue: s.reports,
		DataVersion:  s.dataVersion,
		SessionID:    s.sessionID,
		UserID:       s.userID,
	}
	// Marshal under the read lock: the snapshot shares slice backing arrays
	// with the live session.
	buf, err := json.Marshal(snap)
	s.mu.RUnlock()
	if err != nil {
		log.Printf("session snapshot marshal failed: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.Save(ctx, StorageName, buf); err != nil {
		log.Printf("session snapshot save failed: %v", err)
	}
}

// Restore loads the persisted snapshot, if any, into the session. An absent
// snapshot leaves the fresh session untouched and is not an error.
func (s *Session) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	buf, err := s.store.Load(ctx, StorageName)
	if errors.Is(err, ErrNoSnapshot) {
		return nil
	}
	if err != nil {
		return err
	}
	var snap snapshot
	if err := json.Unmarshal(buf, &snap); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = snap.Questions
	s.currentIndex = snap.CurrentIndex
	s.answers = snap.Answers
	s.training = map[int]struct{}{}
	for _, id := range snap.TrainingList {
		s.training[id] = struct{}{}
	}
	s.reports = snap.ReportsQueue
	s.dataVersion = snap.DataVersion
	if snap.SessionID != "" {
		s.sessionID = snap.SessionID
	}
	if snap.UserID != "" {
		s.userID = snap.UserID
	}
	return nil
}
