package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// eventRepo implements EventRepo backed by raw SQL and the global sequence
// counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) LatestSequence(ctx context.Context) (int64, error) {
	return r.seq.Current(ctx)
}

// nextStamp reserves a sequence number and timestamps the event.
func (r *eventRepo) nextStamp(ctx context.Context) (int64, string, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, "", err
	}
	return seqNum, formatTime(time.Now()), nil
}

func (r *eventRepo) AppendPracticeSession(ctx context.Context, data PracticeSessionEventData) error {
	seqNum, ts, err := r.nextStamp(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO practice_sessions (sequence, timestamp, session_id, started_at, compressions, avg_rate, correct_rate, avg_depth, duration_secs, minutes, tier)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, ts, data.SessionID, formatTime(data.StartedAt), data.Compressions,
		data.AvgRate, data.CorrectRate, data.AvgDepth, data.DurationSecs, data.Minutes, data.Tier,
	)
	if err != nil {
		return fmt.Errorf("save practice session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryPracticeSessions(ctx context.Context, opts QueryOpts) ([]PracticeSessionEvent, error) {
	q, args := buildQuery(`SELECT id, sequence, timestamp, session_id, started_at, compressions, avg_rate, correct_rate, avg_depth, duration_secs, minutes, tier FROM practice_sessions`, opts)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query practice sessions: %w", err)
	}
	defer rows.Close()

	var out []PracticeSessionEvent
	for rows.Next() {
		var (
			e           PracticeSessionEvent
			ts, started string
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &started, &e.Compressions,
			&e.AvgRate, &e.CorrectRate, &e.AvgDepth, &e.DurationSecs, &e.Minutes, &e.Tier); err != nil {
			return nil, fmt.Errorf("scan practice session: %w", err)
		}
		if e.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		if e.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) AppendAssessment(ctx context.Context, data AssessmentEventData) error {
	answers, err := json.Marshal(data.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	seqNum, ts, err := r.nextStamp(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO assessment_attempts (sequence, timestamp, attempt_id, assessment_id, score, correct, total, passed, duration_secs, answers)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, ts, data.AttemptID, data.AssessmentID, data.Score, data.Correct, data.Total,
		boolInt(data.Passed), data.DurationSecs, string(answers),
	)
	if err != nil {
		return fmt.Errorf("save assessment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error) {
	q, args := buildQuery(`SELECT id, sequence, timestamp, attempt_id, assessment_id, score, correct, total, passed, duration_secs, answers FROM assessment_attempts`, opts)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []AssessmentEvent
	for rows.Next() {
		var (
			e           AssessmentEvent
			ts, answers string
			passed      int
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.AttemptID, &e.AssessmentID, &e.Score,
			&e.Correct, &e.Total, &passed, &e.DurationSecs, &answers); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		if e.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		e.Passed = passed != 0
		if err := json.Unmarshal([]byte(answers), &e.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) AppendLessonCompleted(ctx context.Context, data LessonEventData) error {
	seqNum, ts, err := r.nextStamp(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO lesson_events (sequence, timestamp, lesson_id) VALUES (?, ?, ?)`,
		seqNum, ts, data.LessonID,
	)
	if err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}
