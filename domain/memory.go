// Package domain holds the entity types the rest of the application operates
// on. Entities are plain records; JSON tags define the canonical camelCase
// encoding used by the local store and the HTTP surface.
package domain

// MemoryType categorizes a stored memory and decides which surfaces show it.
type MemoryType string

const (
	MemoryTypeStory    MemoryType = "STORY"
	MemoryTypeBelief   MemoryType = "BELIEF"
	MemoryTypeFailure  MemoryType = "FAILURE"
	MemoryTypeLesson   MemoryType = "LESSON"
	MemoryTypeAnalogy  MemoryType = "ANALOGY"
	MemoryTypeEmotion  MemoryType = "EMOTION"
	MemoryTypeFact     MemoryType = "FACT"
	MemoryTypeStyleRef MemoryType = "STYLE_REFERENCE"
	MemoryTypePersona  MemoryType = "PERSONA"
)

// ValidMemoryType reports whether t is one of the known memory types.
func ValidMemoryType(t MemoryType) bool {
	switch t {
	case MemoryTypeStory, MemoryTypeBelief, MemoryTypeFailure, MemoryTypeLesson,
		MemoryTypeAnalogy, MemoryTypeEmotion, MemoryTypeFact, MemoryTypeStyleRef,
		MemoryTypePersona:
		return true
	}
	return false
}

// Memory is one stored personal memory (story, belief, failure, ...).
// CreatedAt is an RFC3339 timestamp. Content can be large; persona-report
// memories carry a serialized PersonaReport.
type Memory struct {
	ID            string     `json:"id"`
	Type          MemoryType `json:"type"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Tags          []string   `json:"tags"`
	CreatedAt     string     `json:"createdAt"`
	EmotionalTone string     `json:"emotionalTone,omitempty"`
	SourceAudio   bool       `json:"sourceAudio,omitempty"`
	UsageCount    int        `json:"usageCount,omitempty"`
}

// Hidden reports whether the memory is excluded from the general list view.
// Style references and persona reports only feed generation.
func (m Memory) Hidden() bool {
	return m.Type == MemoryTypeStyleRef || m.Type == MemoryTypePersona
}

// HasTag reports whether the memory carries the given tag.
func (m Memory) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
