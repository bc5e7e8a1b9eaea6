package domain

// EmojiUsage controls how much emoji the generated content may use.
type EmojiUsage string

const (
	EmojiNone    EmojiUsage = "none"
	EmojiMinimal EmojiUsage = "minimal"
	EmojiHeavy   EmojiUsage = "heavy"
)

// Profile is the single per-user brand profile created by onboarding.
// It is always replaced wholesale, never patched field by field.
type Profile struct {
	Name               string     `json:"name"`
	Niche              string     `json:"niche"`
	Values             []string   `json:"values"`
	ContrarianViews    []string   `json:"contrarianViews"`
	Audience           string     `json:"audience"`
	Tone               string     `json:"tone"`
	EmojiUsage         EmojiUsage `json:"emojiUsage"`
	OnboardingComplete bool       `json:"onboardingComplete"`
	VoiceAnalysis      string     `json:"voiceAnalysis,omitempty"`
}
