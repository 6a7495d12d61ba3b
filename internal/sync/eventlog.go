package syncx

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"github.com/quizflow/quizflow/internal/quiz"
)

const EventIssueReported = "IssueReported"

type Event struct {
	Offset    int64
	Type      string
	Key       string
	DataJSON  string
	CreatedAt int64
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}

// EventLogForwarder records issue reports in the event log so a future
// dispatcher can deliver them. Satisfies quiz.Forwarder.
type EventLogForwarder struct{ repo *EventRepo }

func NewEventLogForwarder(repo *EventRepo) *EventLogForwarder {
	return &EventLogForwarder{repo: repo}
}

func (f *EventLogForwarder) Forward(ctx context.Context, rep quiz.IssueReport) error {
	buf, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	return f.repo.Append(ctx, Event{
		Type:     EventIssueReported,
		Key:      strconv.Itoa(rep.QuestionID),
		DataJSON: string(buf),
	})
}
