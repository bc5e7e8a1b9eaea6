package domain

// Platform identifies the social network a draft targets.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformBlog      Platform = "blog"
	PlatformInstagram Platform = "instagram"
)

// DraftStatus tracks a draft through its lifecycle.
type DraftStatus string

const (
	StatusDraft     DraftStatus = "draft"
	StatusScheduled DraftStatus = "scheduled"
	StatusPublished DraftStatus = "published"
)

// ContentDraft is one piece of written content. Date is the creation or last
// edit timestamp (RFC3339); ScheduledDate is set when the draft is placed on
// the calendar.
type ContentDraft struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Platform      Platform    `json:"platform"`
	Status        DraftStatus `json:"status"`
	Date          string      `json:"date"`
	ScheduledDate string      `json:"scheduledDate,omitempty"`
}

// ValidPlatform reports whether p is a known platform.
func ValidPlatform(p Platform) bool {
	switch p {
	case PlatformTwitter, PlatformLinkedIn, PlatformBlog, PlatformInstagram:
		return true
	}
	return false
}

// ValidDraftStatus reports whether s is a known status.
func ValidDraftStatus(s DraftStatus) bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPublished:
		return true
	}
	return false
}
