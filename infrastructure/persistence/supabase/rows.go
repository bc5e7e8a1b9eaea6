package supabase

import (
	"github.com/RodCacioli/Authos-v2/domain"
)

// Row types mirror the hosted tables: snake_case columns, one user_id
// ownership column per row. The mappers below are the single source of truth
// for the column/attribute translation and are round-trip symmetric.

type profileRow struct {
	UserID             string   `json:"user_id,omitempty"`
	Name               string   `json:"name"`
	Niche              string   `json:"niche"`
	Values             []string `json:"values"`
	ContrarianViews    []string `json:"contrarian_views"`
	Audience           string   `json:"audience"`
	Tone               string   `json:"tone"`
	EmojiUsage         string   `json:"emoji_usage"`
	OnboardingComplete bool     `json:"onboarding_complete"`
	VoiceAnalysis      string   `json:"voice_analysis,omitempty"`
}

func profileToRow(userID string, p domain.Profile) profileRow {
	return profileRow{
		UserID:             userID,
		Name:               p.Name,
		Niche:              p.Niche,
		Values:             p.Values,
		ContrarianViews:    p.ContrarianViews,
		Audience:           p.Audience,
		Tone:               p.Tone,
		EmojiUsage:         string(p.EmojiUsage),
		OnboardingComplete: p.OnboardingComplete,
		VoiceAnalysis:      p.VoiceAnalysis,
	}
}

func profileFromRow(r profileRow) domain.Profile {
	return domain.Profile{
		Name:               r.Name,
		Niche:              r.Niche,
		Values:             r.Values,
		ContrarianViews:    r.ContrarianViews,
		Audience:           r.Audience,
		Tone:               r.Tone,
		EmojiUsage:         domain.EmojiUsage(r.EmojiUsage),
		OnboardingComplete: r.OnboardingComplete,
		VoiceAnalysis:      r.VoiceAnalysis,
	}
}

type memoryRow struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id,omitempty"`
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Tags          []string `json:"tags"`
	CreatedAt     string   `json:"created_at"`
	EmotionalTone string   `json:"emotional_tone,omitempty"`
	SourceAudio   bool     `json:"source_audio,omitempty"`
	UsageCount    int      `json:"usage_count,omitempty"`
}

func memoryToRow(userID string, m domain.Memory) memoryRow {
	return memoryRow{
		ID:            m.ID,
		UserID:        userID,
		Type:          string(m.Type),
		Title:         m.Title,
		Content:       m.Content,
		Tags:          m.Tags,
		CreatedAt:     m.CreatedAt,
		EmotionalTone: m.EmotionalTone,
		SourceAudio:   m.SourceAudio,
		UsageCount:    m.UsageCount,
	}
}

func memoryFromRow(r memoryRow) domain.Memory {
	return domain.Memory{
		ID:            r.ID,
		Type:          domain.MemoryType(r.Type),
		Title:         r.Title,
		Content:       r.Content,
		Tags:          r.Tags,
		CreatedAt:     r.CreatedAt,
		EmotionalTone: r.EmotionalTone,
		SourceAudio:   r.SourceAudio,
		UsageCount:    r.UsageCount,
	}
}

// memoryPatch carries only the fields mutable after creation.
type memoryPatch struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Tags          []string `json:"tags"`
	EmotionalTone string   `json:"emotional_tone"`
	UsageCount    int      `json:"usage_count"`
}

type productRow struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id,omitempty"`
	Name            string `json:"name"`
	Persona         string `json:"persona,omitempty"`
	PainPoints      string `json:"pain_points,omitempty"`
	Solution        string `json:"solution,omitempty"`
	Differentiators string `json:"differentiators,omitempty"`
	Testimonials    string `json:"testimonials,omitempty"`
	Link            string `json:"link,omitempty"`
	Purpose         string `json:"purpose,omitempty"`
	Results         string `json:"results,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

func productToRow(userID string, p domain.Product) productRow {
	return productRow{
		ID:              p.ID,
		UserID:          userID,
		Name:            p.Name,
		Persona:         p.Persona,
		PainPoints:      p.PainPoints,
		Solution:        p.Solution,
		Differentiators: p.Differentiators,
		Testimonials:    p.Testimonials,
		Link:            p.Link,
		Purpose:         p.Purpose,
		Results:         p.Results,
		Notes:           p.Notes,
	}
}

func productFromRow(r productRow) domain.Product {
	return domain.Product{
		ID:              r.ID,
		Name:            r.Name,
		Persona:         r.Persona,
		PainPoints:      r.PainPoints,
		Solution:        r.Solution,
		Differentiators: r.Differentiators,
		Testimonials:    r.Testimonials,
		Link:            r.Link,
		Purpose:         r.Purpose,
		Results:         r.Results,
		Notes:           r.Notes,
	}
}

type draftRow struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id,omitempty"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Platform      string `json:"platform"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
	// Position preserves the caller-defined collection order across the
	// bulk replace; it is a storage concern, not an entity attribute.
	Position int `json:"position"`
}

func draftToRow(userID string, position int, d domain.ContentDraft) draftRow {
	return draftRow{
		ID:            d.ID,
		UserID:        userID,
		Title:         d.Title,
		Content:       d.Content,
		Platform:      string(d.Platform),
		Status:        string(d.Status),
		Date:          d.Date,
		ScheduledDate: d.ScheduledDate,
		Position:      position,
	}
}

func draftFromRow(r draftRow) domain.ContentDraft {
	return domain.ContentDraft{
		ID:            r.ID,
		Title:         r.Title,
		Content:       r.Content,
		Platform:      domain.Platform(r.Platform),
		Status:        domain.DraftStatus(r.Status),
		Date:          r.Date,
		ScheduledDate: r.ScheduledDate,
	}
}
