package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/RodCacioli/Authos-v2/application/ports"
	"github.com/RodCacioli/Authos-v2/domain"

	"go.uber.org/zap"
)

// Fallback values returned when the text-generation service cannot serve.
// Generation failures are degraded results, never errors (the HTTP layer has
// no dedicated error path for them).
const (
	FallbackContent = "Error generating content. Please check your API key."
	FallbackEmpty   = "Could not generate content."
)

var draftTagPattern = regexp.MustCompile(`(?s)<draft>(.*?)</draft>`)

// GenerateOptions carries everything the writer surface knows about a
// generation request.
type GenerateOptions struct {
	Profile        domain.Profile
	Memories       []domain.Memory
	Topic          string
	Platform       string
	FrameworkID    string
	FormatID       string
	FocusID        string
	SourceMaterial string
	StyleReference string
	Product        *domain.Product
	Persona        string
}

// GenerationLimits caps how much stored context a single prompt carries.
type GenerationLimits struct {
	FocusMemoryCap int
	ChatMemoryCap  int
}

// DefaultGenerationLimits returns the built-in caps.
func DefaultGenerationLimits() GenerationLimits {
	return GenerationLimits{FocusMemoryCap: 30, ChatMemoryCap: 20}
}

// GenerationService assembles persona-grounded prompts from the stored
// profile and memory bank and calls the external text generator.
type GenerationService struct {
	generator ports.Generator
	logger    *zap.Logger
	limits    func() GenerationLimits
}

// NewGenerationService creates a generation service.
func NewGenerationService(generator ports.Generator, logger *zap.Logger) *GenerationService {
	return &GenerationService{
		generator: generator,
		logger:    logger,
		limits:    DefaultGenerationLimits,
	}
}

// SetLimitsProvider installs a runtime source for prompt caps, typically the
// settings watcher. The provider is read per request.
func (s *GenerationService) SetLimitsProvider(fn func() GenerationLimits) {
	if fn != nil {
		s.limits = fn
	}
}

// GenerateContent produces one content piece in the user's voice. The
// generator is asked to wrap the piece in <draft> tags; when it complies the
// tags are stripped, otherwise the raw text is returned as-is.
func (s *GenerationService) GenerateContent(ctx context.Context, opts GenerateOptions) string {
	system := s.buildSystemInstruction(opts)
	prompt := s.buildPrompt(opts)

	text, err := s.generator.Generate(ctx, ports.GenerateRequest{System: system, Prompt: prompt})
	if err != nil {
		s.logger.Warn("content generation failed", zap.Error(err))
		return FallbackContent
	}
	if text == "" {
		return FallbackEmpty
	}
	if m := draftTagPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

func (s *GenerationService) buildSystemInstruction(opts GenerateOptions) string {
	profile := opts.Profile

	// Focus memory types get pulled to the front of the context.
	memories := opts.Memories
	if focus, ok := domain.FocusByID(opts.FocusID); ok && len(focus.MemoryTypes) > 0 {
		prioritized := make([]domain.Memory, 0, len(memories))
		rest := make([]domain.Memory, 0, len(memories))
		for _, m := range memories {
			matched := false
			for _, t := range focus.MemoryTypes {
				if m.Type == t {
					matched = true
					break
				}
			}
			if matched {
				prioritized = append(prioritized, m)
			} else {
				rest = append(rest, m)
			}
		}
		memories = append(prioritized, rest...)
		if limit := s.limits().FocusMemoryCap; limit > 0 && len(memories) > limit {
			memories = memories[:limit]
		}
	}

	var narrative, styleSamples []domain.Memory
	var jargon, audienceName, intensity, sacred string
	for _, m := range memories {
		if !m.Hidden() {
			narrative = append(narrative, m)
		}
	}
	for _, m := range opts.Memories {
		if m.Type != domain.MemoryTypeStyleRef {
			continue
		}
		switch {
		case m.HasTag("voice_jargon"):
			jargon = m.Content
		case m.HasTag("voice_audience"):
			audienceName = m.Content
		case m.HasTag("voice_intensity"):
			intensity = m.Content
		case m.HasTag("voice_sacred"):
			sacred = m.Content
		case !m.HasTag("voice_dna"):
			styleSamples = append(styleSamples, m)
		}
	}

	var memoryContext strings.Builder
	for _, m := range narrative {
		tone := m.EmotionalTone
		if tone == "" {
			tone = "Neutral"
		}
		fmt.Fprintf(&memoryContext, "[ID: %s | TYPE: %s] TITLE: %s\nCONTENT: %s\n(Emotion/Tone: %s)\n\n",
			m.ID, m.Type, m.Title, m.Content, tone)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a world-class ghostwriter for %s.\n\n", profile.Name)
	b.WriteString("YOUR GOAL: Create content that feels 100% human, organic, and authentic.\n\n")
	fmt.Fprintf(&b, "USER PROFILE:\n- Niche: %s\n- Audience: %s\n- Values: %s\n- Contrarian Views: %s\n\n",
		profile.Niche, profile.Audience,
		strings.Join(profile.Values, ", "), strings.Join(profile.ContrarianViews, ", "))

	b.WriteString("*** VOICE & LANGUAGE DNA (MANDATORY INCLUSION) ***\n")
	writeVoiceRule(&b, "1. JARGON & CATCHPHRASES", jargon, "Use these phrases naturally: %q", "None specified.")
	writeVoiceRule(&b, "2. AUDIENCE NAME", audienceName, "Address the community as: %q", "Generic address.")
	writeVoiceRule(&b, "3. TONE INTENSITY", intensity, "Guidance: %s", "Keep tone professional.")
	writeVoiceRule(&b, "4. SACRED WORDS/MANTRAS", sacred, "Weave in these philosophies: %q", "None specified.")
	b.WriteString("\n")

	if profile.VoiceAnalysis != "" {
		fmt.Fprintf(&b, "MIMIC THIS VOICE PROFILE: %s\n", profile.VoiceAnalysis)
	} else {
		fmt.Fprintf(&b, "Tone: %s\n", profile.Tone)
	}

	if len(styleSamples) > 0 {
		b.WriteString("\nUSER WRITING SAMPLES (CADENCE & RHYTHM):\nAdopt this sentence length, paragraph structure, and flow.\n")
		for _, m := range styleSamples {
			fmt.Fprintf(&b, "Sample: %q\n---\n", m.Content)
		}
	}

	fmt.Fprintf(&b, "\nDATABASE (USER STORIES & LESSONS):\n%s\n", memoryContext.String())

	if p := opts.Product; p != nil {
		b.WriteString("\n*** PRODUCT PROMOTION MODE ***\nIntegrate the following product authentically:\n")
		fmt.Fprintf(&b, "NAME: %s\n", p.Name)
		if p.Persona != "" {
			fmt.Fprintf(&b, "TARGET PERSONA: %s\n", p.Persona)
		}
		if p.PainPoints != "" {
			fmt.Fprintf(&b, "PAIN POINTS: %s\n", p.PainPoints)
		}
		fmt.Fprintf(&b, "SOLUTION: %s\nLINK: %s\n", p.Solution, p.Link)
		b.WriteString("INSTRUCTION: Do not make it sound like an ad. Make it sound like a recommendation or a solution to a story you just told.\n")
	}

	if opts.Persona != "" {
		b.WriteString("\n*** TARGET AUDIENCE PERSONA (CRITICAL) ***\nYou are writing specifically for this person. Every word must resonate with their hidden fears and desires.\n\nPERSONA PROFILE:\n")
		b.WriteString(opts.Persona)
		b.WriteString("\n\nINSTRUCTION:\n- Address their specific pains mentioned above.\n- Use language that validates their internal dialogue.\n- Overcome their specific limiting beliefs.\n")
	}

	b.WriteString(`
*** STRICT NEGATIVE CONSTRAINTS (DO NOT IGNORE) ***
1. NO DASHES: never use dashes ("-") or bullet points. Use narrative flow, numbered lists (1., 2.), or whitespace to separate ideas.
2. NO EM-DASHES: use a simple comma, period, or parenthesis instead.
3. NO INCORRECT NUMBERING: do not number segments (1/, 2/) unless you calculate the exact total (1/5, 2/5).
4. LOWERCASE COLONS: do not capitalize the word after a colon unless it is a proper noun.
5. USE THE DATABASE: reference specific details (names, places, feelings) from the memories above to prove authenticity.
6. NO AI FLUFF: banned words: "Unlock", "Unleash", "Master", "Elevate", "Game-changer", "In today's digital world", "Dive in", "Tapestry", "Beacon".
`)

	if format, ok := domain.FormatByID(opts.FormatID); ok {
		fmt.Fprintf(&b, "\nSTRICT FORMATTING RULES (%s):\n%s\n", format.Label, format.StructureInstruction)
	} else {
		fmt.Fprintf(&b, "\nFormat: %s post. Optimize for engagement.\n", opts.Platform)
	}

	return b.String()
}

func writeVoiceRule(b *strings.Builder, label, value, format, fallback string) {
	if value != "" {
		fmt.Fprintf(b, label+": "+format+"\n", value)
	} else {
		fmt.Fprintf(b, label+": %s\n", fallback)
	}
}

func (s *GenerationService) buildPrompt(opts GenerateOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TOPIC: %s\n", opts.Topic)
	if opts.SourceMaterial != "" {
		fmt.Fprintf(&b, "SOURCE MATERIAL / CONTEXT: %s\n", opts.SourceMaterial)
	}

	if fw, ok := domain.FrameworkByID(opts.FrameworkID); ok {
		fmt.Fprintf(&b, "\n*** CRITICAL: FOLLOW THIS FRAMEWORK BLUEPRINT ***\n%s\n", fw.SystemPrompt)
	} else {
		b.WriteString("\nTask: Write a high-performing piece about the topic using the user's memories.\n")
	}

	if opts.StyleReference != "" {
		fmt.Fprintf(&b, "\nSTYLE REVERSE ENGINEERING:\nSteal the structure of this reference, but use my content/topic:\n%q\n", opts.StyleReference)
	}

	b.WriteString("\nREMINDER: DO NOT USE DASHES/BULLETS. Write like a human talking.\n")
	b.WriteString("IMPORTANT: Return the content wrapped in <draft> and </draft> tags.\n")
	return b.String()
}

// Humanize rewrites AI-sounding content into the user's voice. On failure
// the input comes back unchanged.
func (s *GenerationService) Humanize(ctx context.Context, content string, profile domain.Profile) string {
	voice := profile.VoiceAnalysis
	if voice == "" {
		voice = profile.Tone
	}
	prompt := fmt.Sprintf(`You are "The Editor". Take the input text and ruthlessly humanize it.

INPUT TEXT:
"""
%s
"""

YOUR ORDERS:
1. Kill the cliches: remove words like "Unlock", "Elevate", "Dive deep".
2. Vary sentence length: mix very short sentences with longer ones.
3. NO DASHES: convert bullet points into narrative paragraphs or numbered lists.
4. NO EM-DASHES: use commas or periods instead.
5. Lower the reading level: make it sound like a conversation.

User's voice: %s

Return ONLY the rewritten text.`, content, voice)

	text, err := s.generator.Generate(ctx, ports.GenerateRequest{Prompt: prompt})
	if err != nil || text == "" {
		if err != nil {
			s.logger.Warn("humanize failed", zap.Error(err))
		}
		return content
	}
	return text
}

// Repurpose rewrites a finished piece for a different platform, keeping the
// core message.
func (s *GenerationService) Repurpose(ctx context.Context, content, fromPlatform, toPlatform string, profile domain.Profile) string {
	return s.GenerateContent(ctx, GenerateOptions{
		Profile:  profile,
		Topic:    "Repurpose",
		Platform: toPlatform,
		SourceMaterial: fmt.Sprintf("ORIGINAL CONTENT (%s):\n%s\n\nTASK: Rewrite this strictly for %s. Keep the core message but change the formatting/hook to fit the new platform.",
			fromPlatform, content, toPlatform),
	})
}

// AnglesFromMemory suggests viral hooks built on one specific memory. Empty
// on failure.
func (s *GenerationService) AnglesFromMemory(ctx context.Context, profile domain.Profile, memoryContent string) []string {
	prompt := fmt.Sprintf(`You are an expert content strategist.
The user has a specific memory: %q.

Generate 3 distinct, viral "Angles" or "Hooks" for a content piece for %s.

Example:
Memory: "I got fired."
Angle 1: "Getting fired was the best thing that happened to my career."
Angle 2: "Why you should fire yourself today."
Angle 3: "The exact moment I knew I was unemployable."

Return JSON format: { "angles": ["Angle 1", "Angle 2", "Angle 3"] }`, memoryContent, profile.Niche)

	return s.generateStringList(ctx, prompt, "angles")
}

// BrainDumpAngle is one content angle extracted from a raw brain dump.
type BrainDumpAngle struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Hook        string `json:"hook"`
	Description string `json:"description"`
}

// AnalyzeBrainDump extracts three content angles from one block of
// unstructured thoughts. Empty on failure.
func (s *GenerationService) AnalyzeBrainDump(ctx context.Context, text string) []BrainDumpAngle {
	prompt := fmt.Sprintf(`You are a Viral Content Strategist.
The user has provided a raw "Brain Dump" (unstructured thoughts).

TASK:
Analyze the raw text and extract 3 distinct "Content Angles" or "Hooks" that could be turned into a post.

TYPES OF ANGLES TO LOOK FOR:
1. "The Contrarian": Is there something they disagree with?
2. "The Story": Is there a personal anecdote?
3. "The Action Plan": Is there advice or a how-to?
4. "The Vulnerable": Is there an emotional admission?

RAW TEXT:
%q

RETURN JSON ARRAY (Exactly 3 items):
[
    {
        "type": "Contrarian / Story / Action / etc",
        "title": "Short Punchy Title",
        "hook": "The first sentence of the post...",
        "description": "Why this angle works..."
    }
]`, text)

	out, err := s.generator.Generate(ctx, ports.GenerateRequest{Prompt: prompt, JSONMode: true})
	if err != nil {
		s.logger.Warn("brain dump analysis failed", zap.Error(err))
		return []BrainDumpAngle{}
	}

	var angles []BrainDumpAngle
	if err := json.Unmarshal([]byte(extractJSONObject(out)), &angles); err != nil {
		s.logger.Warn("brain dump analysis returned malformed JSON", zap.Error(err))
		return []BrainDumpAngle{}
	}
	if angles == nil {
		angles = []BrainDumpAngle{}
	}
	return angles
}

// TopicSuggestions generates content ideas from the user's niche, beliefs
// and a sample of their memories. Empty on failure.
func (s *GenerationService) TopicSuggestions(ctx context.Context, profile domain.Profile, memories []domain.Memory) []string {
	snippets := make([]string, 0, 5)
	for _, m := range memories {
		if m.Type == domain.MemoryTypeStyleRef {
			continue
		}
		snippets = append(snippets, m.Content)
		if len(snippets) == 5 {
			break
		}
	}

	prompt := fmt.Sprintf(`Based on the user's niche: %s and beliefs: %s,
and these specific past memories: %q,

Generate 12 content ideas (Hooks/Headlines) categorized as follows:
1. Contrarian Beliefs (challenging industry norms)
2. Personal Stories (using specific memories)
3. Actionable Advice (how-to content)
4. Observation (things you see others doing wrong)

Return a simple flat list of strings in JSON format.

Example JSON: { "topics": ["Stop doing X", "Why I failed at Y", "How to get Z"] }`,
		profile.Niche, strings.Join(profile.ContrarianViews, ", "), strings.Join(snippets, " | "))

	return s.generateStringList(ctx, prompt, "topics")
}

func (s *GenerationService) generateStringList(ctx context.Context, prompt, field string) []string {
	text, err := s.generator.Generate(ctx, ports.GenerateRequest{Prompt: prompt, JSONMode: true})
	if err != nil {
		s.logger.Warn("list generation failed", zap.String("field", field), zap.Error(err))
		return []string{}
	}

	var parsed map[string][]string
	if err := json.Unmarshal([]byte(extractJSONObject(text)), &parsed); err != nil {
		s.logger.Warn("list generation returned malformed JSON", zap.String("field", field), zap.Error(err))
		return []string{}
	}
	if parsed[field] == nil {
		return []string{}
	}
	return parsed[field]
}

// MemorySuggestion is the generator's metadata proposal for a raw memory.
type MemorySuggestion struct {
	Title         string            `json:"title"`
	Type          domain.MemoryType `json:"type"`
	Tags          []string          `json:"tags"`
	EmotionalTone string            `json:"emotionalTone"`
}

// EnrichMemory asks the generator to title, type and tag a raw memory text.
// Falls back to a neutral STORY suggestion.
func (s *GenerationService) EnrichMemory(ctx context.Context, content string) MemorySuggestion {
	fallback := MemorySuggestion{
		Title:         "New Memory",
		Type:          domain.MemoryTypeStory,
		Tags:          []string{"memory"},
		EmotionalTone: "Neutral",
	}

	prompt := fmt.Sprintf(`Analyze the following user memory text: %q

Return a JSON object with:
- title: a short, punchy summary title (max 6 words)
- type: one of [STORY, BELIEF, FAILURE, LESSON, ANALOGY, EMOTION, FACT]
- tags: array of 3-5 keywords
- emotionalTone: one word description of the emotion`, content)

	text, err := s.generator.Generate(ctx, ports.GenerateRequest{Prompt: prompt, JSONMode: true})
	if err != nil {
		s.logger.Warn("memory enrichment failed", zap.Error(err))
		return fallback
	}

	var suggestion MemorySuggestion
	if err := json.Unmarshal([]byte(extractJSONObject(text)), &suggestion); err != nil {
		return fallback
	}
	if suggestion.Title == "" || !domain.ValidMemoryType(suggestion.Type) {
		return fallback
	}
	return suggestion
}

// PersonaInput is the raw questionnaire feeding a persona debriefing.
type PersonaInput struct {
	Name       string `json:"name" validate:"required"`
	Gender     string `json:"gender"`
	Challenges string `json:"challenges"`
	Fears      string `json:"fears"`
	Goals      string `json:"goals"`
	Behaviors  string `json:"behaviors"`
}

// GeneratePersonaReport turns questionnaire answers into a structured
// persona debriefing. Returns nil when the generator cannot produce a
// well-formed report.
func (s *GenerationService) GeneratePersonaReport(ctx context.Context, input PersonaInput) *domain.PersonaReport {
	prompt := fmt.Sprintf(`You are an expert audience researcher and lead psychologist.

TASK:
Create a comprehensive "Persona Psychological Debriefing" based on the raw inputs provided.
Turn these answers into a deep, human profile that exposes the hidden drivers of this person.

USER PROVIDED DATA:
- Name: %s
- Gender Focus: %s
- Challenges: %s
- Fears: %s
- Goals: %s
- Behaviors: %s

Provide the output in strict JSON with this shape:
{
  "snapshot": {"name": "...", "gender": "...", "summary": "one-line summary of their situation or pain"},
  "executiveSummary": "a few short paragraphs explaining who they are",
  "psychology": {"coreConflict": "...", "thought3AM": "...", "limitingBeliefs": [{"belief": "...", "description": "..."}]},
  "behaviors": {"triggerEvents": ["..."], "copingMechanisms": [{"title": "...", "description": "..."}]},
  "drivers": {"fears": ["..."], "goals": ["..."], "internalDialogue": ["..."]},
  "communication": {"tone": "...", "wordsToAvoid": ["..."], "powerWords": {"empowerment": ["..."], "clarity": ["..."], "emotional": ["..."]}, "ctaStyle": ["..."]}
}`,
		input.Name, input.Gender, input.Challenges, input.Fears, input.Goals, input.Behaviors)

	text, err := s.generator.Generate(ctx, ports.GenerateRequest{Prompt: prompt, JSONMode: true})
	if err != nil {
		s.logger.Warn("persona generation failed", zap.Error(err))
		return nil
	}

	var report domain.PersonaReport
	if err := json.Unmarshal([]byte(extractJSONObject(text)), &report); err != nil {
		s.logger.Warn("persona generation returned malformed JSON", zap.Error(err))
		return nil
	}
	return &report
}

// Chat answers one conversational turn grounded in the user's profile and
// narrative memories.
func (s *GenerationService) Chat(ctx context.Context, profile domain.Profile, memories []domain.Memory, history []domain.ChatMessage, message string) string {
	var memoryContext strings.Builder
	count := 0
	limit := s.limits().ChatMemoryCap
	for _, m := range memories {
		if m.Type == domain.MemoryTypeStyleRef {
			continue
		}
		fmt.Fprintf(&memoryContext, "[%s] %s: %s\n", m.Type, m.Title, m.Content)
		count++
		if limit > 0 && count == limit {
			break
		}
	}

	system := fmt.Sprintf(`You are an intelligent assistant for %s.
You have access to their personal memories and beliefs.
Answer questions based on their worldview defined in:
Values: %s
Beliefs: %s

Memories:
%s`,
		profile.Name, strings.Join(profile.Values, ", "),
		strings.Join(profile.ContrarianViews, ", "), memoryContext.String())

	var prompt strings.Builder
	for _, msg := range history {
		fmt.Fprintf(&prompt, "%s: %s\n", msg.Role, msg.Text)
	}
	fmt.Fprintf(&prompt, "user: %s\n", message)

	text, err := s.generator.Generate(ctx, ports.GenerateRequest{System: system, Prompt: prompt.String()})
	if err != nil || text == "" {
		if err != nil {
			s.logger.Warn("chat generation failed", zap.Error(err))
		}
		return FallbackEmpty
	}
	return text
}

// extractJSONObject strips markdown fences and preambles around a JSON
// document, a common provider quirk in JSON mode.
func extractJSONObject(text string) string {
	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return text
	}
	var end int
	if text[start] == '{' {
		end = strings.LastIndex(text, "}")
	} else {
		end = strings.LastIndex(text, "]")
	}
	if end <= start {
		return text
	}
	return text[start : end+1]
}
