package i18n

// Key identifies a translatable message. Use the constants below; Lookup
// exists for keys that are only known at runtime.
type Key string

const (
	NavHome     Key = "nav.home"
	NavLearn    Key = "nav.learn"
	NavPractice Key = "nav.practice"
	NavAssess   Key = "nav.assess"
	NavProfile  Key = "nav.profile"

	HomeWelcome          Key = "home.welcome"
	HomeSubtitle         Key = "home.subtitle"
	HomeStartLearning    Key = "home.startLearning"
	HomeContinuePractice Key = "home.continuePractice"
	HomeTakeAssessment   Key = "home.takeAssessment"
	HomeProgress         Key = "home.progress"
	HomeCompletedLessons Key = "home.completedLessons"
	HomePracticeTime     Key = "home.practiceTime"
	HomeCertifications   Key = "home.certifications"

	Step1Title       Key = "cpr.step1.title"
	Step1Description Key = "cpr.step1.description"
	Step2Title       Key = "cpr.step2.title"
	Step2Description Key = "cpr.step2.description"
	Step3Title       Key = "cpr.step3.title"
	Step3Description Key = "cpr.step3.description"
	Step4Title       Key = "cpr.step4.title"
	Step4Description Key = "cpr.step4.description"
	Step5Title       Key = "cpr.step5.title"
	Step5Description Key = "cpr.step5.description"
	Step6Title       Key = "cpr.step6.title"
	Step6Description Key = "cpr.step6.description"

	ActionNext     Key = "action.next"
	ActionPrevious Key = "action.previous"
	ActionStart    Key = "action.start"
	ActionPause    Key = "action.pause"
	ActionResume   Key = "action.resume"
	ActionComplete Key = "action.complete"
	ActionRetry    Key = "action.retry"
	ActionSettings Key = "action.settings"

	SettingsLanguage     Key = "settings.language"
	SettingsAgeGroup     Key = "settings.ageGroup"
	SettingsSound        Key = "settings.sound"
	SettingsHaptics      Key = "settings.haptics"
	SettingsHighContrast Key = "settings.highContrast"
	SettingsChildren     Key = "settings.children"
	SettingsTeens        Key = "settings.teens"
	SettingsAdults       Key = "settings.adults"

	LayoutTooSmall Key = "layout.tooSmall"
	HintBack       Key = "hint.back"
	HintQuit       Key = "hint.quit"
	HintContinue   Key = "hint.continue"
)

// AllKeys lists every key that each catalog must define.
var AllKeys = []Key{
	NavHome, NavLearn, NavPractice, NavAssess, NavProfile,
	HomeWelcome, HomeSubtitle, HomeStartLearning, HomeContinuePractice,
	HomeTakeAssessment, HomeProgress, HomeCompletedLessons, HomePracticeTime,
	HomeCertifications,
	Step1Title, Step1Description, Step2Title, Step2Description,
	Step3Title, Step3Description, Step4Title, Step4Description,
	Step5Title, Step5Description, Step6Title, Step6Description,
	ActionNext, ActionPrevious, ActionStart, ActionPause, ActionResume,
	ActionComplete, ActionRetry, ActionSettings,
	SettingsLanguage, SettingsAgeGroup, SettingsSound, SettingsHaptics,
	SettingsHighContrast, SettingsChildren, SettingsTeens, SettingsAdults,
	LayoutTooSmall, HintBack, HintQuit, HintContinue,
}
