package supabase

import (
	"testing"

	"github.com/RodCacioli/Authos-v2/domain"

	"github.com/stretchr/testify/assert"
)

func TestProfileRowMapping(t *testing.T) {
	p := domain.Profile{
		Name:               "Ada",
		Niche:              "engineering",
		Values:             []string{"candor"},
		ContrarianViews:    []string{"meetings are optional"},
		Audience:           "staff engineers",
		Tone:               "direct",
		EmojiUsage:         domain.EmojiMinimal,
		OnboardingComplete: true,
		VoiceAnalysis:      "short sentences",
	}

	row := profileToRow("user-1", p)
	assert.Equal(t, "user-1", row.UserID)
	assert.Equal(t, "minimal", row.EmojiUsage)
	assert.Equal(t, p, profileFromRow(row), "mapping is round-trip symmetric")
}

func TestMemoryRowMapping(t *testing.T) {
	m := domain.Memory{
		ID:            "m1",
		Type:          domain.MemoryTypeFailure,
		Title:         "The outage",
		Content:       "We lost a region.",
		Tags:          []string{"ops"},
		CreatedAt:     "2026-01-01T00:00:00Z",
		EmotionalTone: "Tense",
		SourceAudio:   true,
		UsageCount:    2,
	}

	row := memoryToRow("user-1", m)
	assert.Equal(t, "user-1", row.UserID)
	assert.Equal(t, "FAILURE", row.Type)
	assert.Equal(t, m, memoryFromRow(row))
}

func TestDraftRowMapping_PositionIsStorageOnly(t *testing.T) {
	d := domain.ContentDraft{
		ID:            "d1",
		Title:         "Hook",
		Content:       "body",
		Platform:      domain.PlatformLinkedIn,
		Status:        domain.StatusScheduled,
		Date:          "2026-01-01T00:00:00Z",
		ScheduledDate: "2026-02-01T00:00:00Z",
	}

	row := draftToRow("user-1", 3, d)
	assert.Equal(t, 3, row.Position)
	assert.Equal(t, d, draftFromRow(row), "position never leaks into the entity")
}

func TestProductRowMapping(t *testing.T) {
	p := domain.Product{
		ID:         "p1",
		Name:       "Course",
		PainPoints: "burnout",
		Link:       "https://example.com",
	}

	row := productToRow("user-1", p)
	assert.Equal(t, "user-1", row.UserID)
	assert.Equal(t, p, productFromRow(row))
}
