package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cprcoach/internal/assessment"
	"github.com/abhisek/cprcoach/internal/lessons"
	"github.com/abhisek/cprcoach/internal/practice"
	"github.com/abhisek/cprcoach/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show training statistics from the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		snap, err := s.SnapshotRepo().Latest(ctx)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if snap == nil {
			fmt.Println("No progress recorded yet. Run with --persist to keep progress.")
			return nil
		}

		p := snap.Data.Progress
		certs := "none"
		if len(p.CertificationsEarned) > 0 {
			certs = strings.Join(p.CertificationsEarned, ", ")
		}
		summary := newTable("Progress", "").
			Row("Lessons completed", fmt.Sprintf("%d of %d (%.0f%%)",
				lessons.CompletedSteps(p.CompletedLessons), len(lessons.Steps), lessons.Percent(p.CompletedLessons))).
			Row("Practice time", fmt.Sprintf("%d min", p.PracticeTime)).
			Row("Average quiz score", fmt.Sprintf("%d%%", p.AverageScore())).
			Row("Certifications", certs).
			Row("Last saved", snap.Timestamp.Local().Format(timeLayout))
		fmt.Println(summary.String())

		sessions, err := s.EventRepo().QueryPracticeSessions(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query practice sessions: %w", err)
		}
		if len(sessions) > 0 {
			t := newTable("When", "Duration", "Compressions", "Rate", "Pace")
			for _, e := range sessions {
				t.Row(
					e.Timestamp.Local().Format(timeLayout),
					practice.FormatClock(e.DurationSecs),
					strconv.Itoa(e.Compressions),
					strconv.Itoa(e.AvgRate),
					paceLabel(e.Tier),
				)
			}
			fmt.Println("\nRecent practice")
			fmt.Println(t.String())
		}

		attempts, err := s.EventRepo().QueryAssessments(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}
		if len(attempts) > 0 {
			t := newTable("When", "Score", "Correct", "Duration", "Passed")
			for _, e := range attempts {
				t.Row(
					e.Timestamp.Local().Format(timeLayout),
					fmt.Sprintf("%d%%", e.Score),
					fmt.Sprintf("%d/%d", e.Correct, e.Total),
					practice.FormatClock(e.DurationSecs),
					check(e.Passed),
				)
			}
			fmt.Printf("\nRecent assessments (pass mark %d%%)\n", assessment.PassScore)
			fmt.Println(t.String())
		}
		return nil
	},
}

func paceLabel(tier string) string {
	switch practice.Tier(tier) {
	case practice.TierTooSlow:
		return "too slow"
	case practice.TierOnTarget:
		return "on target"
	case practice.TierTooFast:
		return "too fast"
	}
	return "-"
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent sessions and attempts to show")
}
