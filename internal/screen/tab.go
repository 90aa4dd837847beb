package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cprcoach/internal/i18n"
)

// Tab identifies one of the top-level screens in the tab bar.
type Tab int

const (
	TabHome Tab = iota
	TabLearn
	TabPractice
	TabAssess
	TabProfile
)

// Tabs lists the tabs in bar order.
var Tabs = []Tab{TabHome, TabLearn, TabPractice, TabAssess, TabProfile}

// LabelKey returns the translation key for the tab label.
func (t Tab) LabelKey() i18n.Key {
	switch t {
	case TabLearn:
		return i18n.NavLearn
	case TabPractice:
		return i18n.NavPractice
	case TabAssess:
		return i18n.NavAssess
	case TabProfile:
		return i18n.NavProfile
	}
	return i18n.NavHome
}

// SwitchTabMsg asks the app to bring a tab to the front.
type SwitchTabMsg struct {
	Tab Tab
}

// SwitchTo returns a command that emits SwitchTabMsg.
func SwitchTo(t Tab) tea.Cmd {
	return func() tea.Msg { return SwitchTabMsg{Tab: t} }
}
