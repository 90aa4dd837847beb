package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/cprcoach/internal/progress"
)

// DefaultSnapshotKeep is how many snapshots the journal retains.
const DefaultSnapshotKeep = 20

// Journal persists a progress.Store: a snapshot after every change and a
// lesson event for each newly completed lesson. Write failures are logged
// and never surface to the caller.
type Journal struct {
	snapshots SnapshotRepo
	events    EventRepo
	logger    *slog.Logger
	keep      int
	now       func() time.Time

	lessonsSeen int
}

// NewJournal creates a journal over s. logger may be nil.
func NewJournal(s *Store, logger *slog.Logger) *Journal {
	return newJournal(s.SnapshotRepo(), s.EventRepo(), logger)
}

func newJournal(snaps SnapshotRepo, events EventRepo, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{
		snapshots: snaps,
		events:    events,
		logger:    logger,
		keep:      DefaultSnapshotKeep,
		now:       time.Now,
	}
}

// Events exposes the event repo, e.g. for LLM request logging.
func (j *Journal) Events() EventRepo { return j.events }

// Restore loads the latest snapshot into ps. It reports whether a snapshot
// was found. Call it before Attach so the restore is not re-journaled.
func (j *Journal) Restore(ctx context.Context, ps *progress.Store) (bool, error) {
	snap, err := j.snapshots.Latest(ctx)
	if err != nil {
		return false, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		return false, nil
	}
	ps.Restore(progress.Snapshot{
		Settings:      snap.Data.Settings,
		Progress:      snap.Data.Progress,
		CurrentMode:   snap.Data.CurrentMode,
		CurrentLesson: snap.Data.CurrentLesson,
	})
	j.lessonsSeen = len(snap.Data.Progress.CompletedLessons)
	j.logger.Info("progress restored",
		slog.Int("snapshot_id", snap.ID),
		slog.Int("completed_lessons", j.lessonsSeen),
	)
	return true, nil
}

// Attach subscribes the journal to ps and returns the unsubscribe func.
func (j *Journal) Attach(ps *progress.Store) func() {
	j.lessonsSeen = len(ps.Progress().CompletedLessons)
	return ps.Subscribe(j.onChange)
}

func (j *Journal) onChange(s progress.Snapshot) {
	ctx := context.Background()

	completed := s.Progress.CompletedLessons
	if len(completed) < j.lessonsSeen {
		j.lessonsSeen = 0
	}
	for _, id := range completed[j.lessonsSeen:] {
		if err := j.events.AppendLessonCompleted(ctx, LessonEventData{LessonID: id}); err != nil {
			j.logger.Warn("journal lesson", slog.String("lesson", id), slog.String("error", err.Error()))
		}
	}
	j.lessonsSeen = len(completed)

	seq, err := j.events.LatestSequence(ctx)
	if err != nil {
		j.logger.Warn("journal sequence", slog.String("error", err.Error()))
	}
	snap := &Snapshot{
		Sequence:  seq,
		Timestamp: j.now(),
		Data: SnapshotData{
			Version:       snapshotVersion,
			Settings:      s.Settings,
			Progress:      s.Progress,
			CurrentMode:   s.CurrentMode,
			CurrentLesson: s.CurrentLesson,
		},
	}
	if err := j.snapshots.Save(ctx, snap); err != nil {
		j.logger.Warn("journal snapshot", slog.String("error", err.Error()))
		return
	}
	if err := j.snapshots.Prune(ctx, j.keep); err != nil {
		j.logger.Warn("prune snapshots", slog.String("error", err.Error()))
	}
}

// RecordPractice appends a finished practice session.
func (j *Journal) RecordPractice(ctx context.Context, data PracticeSessionEventData) {
	if err := j.events.AppendPracticeSession(ctx, data); err != nil {
		j.logger.Warn("journal practice session",
			slog.String("session_id", data.SessionID),
			slog.String("error", err.Error()),
		)
	}
}

// RecordAssessment appends a finished assessment attempt.
func (j *Journal) RecordAssessment(ctx context.Context, data AssessmentEventData) {
	if err := j.events.AppendAssessment(ctx, data); err != nil {
		j.logger.Warn("journal assessment",
			slog.String("attempt_id", data.AttemptID),
			slog.String("error", err.Error()),
		)
	}
}
