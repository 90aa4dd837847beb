package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cprcoach/internal/i18n"
	"github.com/abhisek/cprcoach/internal/progress"
	"github.com/abhisek/cprcoach/internal/screen"
)

func TestWelcomeMessage(t *testing.T) {
	tests := []struct {
		age  progress.AgeGroup
		want string
	}{
		{progress.Children, "🌟 Welcome to CPR Training 🌟"},
		{progress.Teens, "🚀 Welcome to CPR Training 🚀"},
		{progress.Adults, "Welcome to CPR Training"},
	}
	for _, tt := range tests {
		if got := WelcomeMessage(i18n.English, tt.age); got != tt.want {
			t.Errorf("WelcomeMessage(%q) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestQuickActionsSwitchTabs(t *testing.T) {
	h := New(progress.NewStore())

	want := []screen.Tab{screen.TabLearn, screen.TabPractice, screen.TabAssess}
	for i, tab := range want {
		if i > 0 {
			h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		}
		_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		if cmd == nil {
			t.Fatalf("action %d: expected a command", i)
		}
		msg, ok := cmd().(screen.SwitchTabMsg)
		if !ok {
			t.Fatalf("action %d: expected SwitchTabMsg, got %T", i, cmd())
		}
		if msg.Tab != tab {
			t.Errorf("action %d: tab = %v, want %v", i, msg.Tab, tab)
		}
	}
}

func TestViewShowsProgress(t *testing.T) {
	st := progress.NewStore()
	st.CompleteLesson("step1")
	st.CompleteLesson("step2")
	st.AddPracticeTime(7)
	st.UpdateAssessmentScore("cpr-basic", 88)

	view := New(st).View(100, 40)
	for _, want := range []string{"Completed: Check Responsiveness", "Completed: Call for Help", "7m", "88%", "Important Notice"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewEmptyActivity(t *testing.T) {
	view := New(progress.NewStore()).View(100, 40)
	if !strings.Contains(view, "Start your first lesson") {
		t.Error("expected empty-activity prompt")
	}
}

func TestViewFollowsLanguage(t *testing.T) {
	st := progress.NewStore()
	st.SetLanguage(i18n.German)
	h := New(st)

	if !strings.Contains(h.View(100, 40), i18n.T(i18n.German, i18n.HomeStartLearning)) {
		t.Error("quick actions should be localized")
	}
	if h.Title() != i18n.T(i18n.German, i18n.NavHome) {
		t.Errorf("Title() = %q", h.Title())
	}
}

func TestVariantFor(t *testing.T) {
	if v := VariantFor(progress.Progress{}); v != MascotWaiting {
		t.Errorf("empty progress: got %v", v)
	}
	if v := VariantFor(progress.Progress{CompletedLessons: []string{"step1"}}); v != MascotIdle {
		t.Errorf("some progress: got %v", v)
	}
	if v := VariantFor(progress.Progress{CertificationsEarned: []string{"cpr-basic"}}); v != MascotCelebrating {
		t.Errorf("certified: got %v", v)
	}
}
