package store

import (
	"context"
	"time"

	"github.com/abhisek/cprcoach/internal/progress"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// snapshotVersion is bumped when SnapshotData changes shape.
const snapshotVersion = 1

// SnapshotData is the persisted form of a progress snapshot.
type SnapshotData struct {
	Version       int                   `json:"version"`
	Settings      progress.Settings     `json:"settings"`
	Progress      progress.Progress     `json:"progress"`
	CurrentMode   progress.TrainingMode `json:"current_mode"`
	CurrentLesson string                `json:"current_lesson,omitempty"`
}

// Snapshot is a point-in-time capture of progress state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages progress snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// PracticeSessionEventData records a finished practice session.
type PracticeSessionEventData struct {
	SessionID    string
	StartedAt    time.Time
	Compressions int
	AvgRate      int
	CorrectRate  int
	AvgDepth     int
	DurationSecs int
	Minutes      int
	Tier         string
}

// PracticeSessionEvent is a stored PracticeSessionEventData.
type PracticeSessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	PracticeSessionEventData
}

// AssessmentEventData records a finished assessment attempt.
type AssessmentEventData struct {
	AttemptID    string
	AssessmentID string
	Score        int
	Correct      int
	Total        int
	Passed       bool
	DurationSecs int
	Answers      []int
}

// AssessmentEvent is a stored AssessmentEventData.
type AssessmentEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AssessmentEventData
}

// LessonEventData records a completed lesson.
type LessonEventData struct {
	LessonID string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLMRequestEventData.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to journal events.
type EventRepo interface {
	AppendPracticeSession(ctx context.Context, data PracticeSessionEventData) error
	AppendAssessment(ctx context.Context, data AssessmentEventData) error
	AppendLessonCompleted(ctx context.Context, data LessonEventData) error
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	QueryPracticeSessions(ctx context.Context, opts QueryOpts) ([]PracticeSessionEvent, error)
	QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error)
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	// GetLLMEvent returns nil if no event has the given ID.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// LatestSequence returns the last sequence number issued.
	LatestSequence(ctx context.Context) (int64, error)
}
