package domain

// ContentIntention is the high-level goal of a piece of content.
type ContentIntention struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// ContentFormat describes the output shape and carries the structural
// instructions handed to the generator.
type ContentFormat struct {
	ID                   string `json:"id"`
	Label                string `json:"label"`
	Description          string `json:"description"`
	StructureInstruction string `json:"structureInstruction"`
}

// PersonalizationFocus selects which memory types a framework prioritizes.
type PersonalizationFocus struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	MemoryTypes []MemoryType `json:"memoryTypes"`
	Description string       `json:"description"`
}

// ContentFramework is a reusable content blueprint: an intention, a focus and
// the system prompt that shapes the narrative.
type ContentFramework struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	IntentionID  string   `json:"intentionId"`
	FormatIDs    []string `json:"formatIds"`
	FocusID      string   `json:"focusId"`
	SystemPrompt string   `json:"systemPrompt"`
}

// Intentions is the fixed catalog of content intentions.
var Intentions = []ContentIntention{
	{ID: "educate", Label: "Educate", Description: "Teach specific skills or share knowledge."},
	{ID: "motivate", Label: "Motivate", Description: "Inspire action or mindset shifts."},
	{ID: "connect", Label: "Connect", Description: "Build emotional rapport and trust."},
	{ID: "polarize", Label: "Polarize", Description: "Challenge status quo or state opinions."},
	{ID: "promote", Label: "Promote", Description: "Soft sell a product or service."},
	{ID: "analyze", Label: "Analyze", Description: "Break down trends or news."},
}

// Formats is the fixed catalog of output formats.
var Formats = []ContentFormat{
	{
		ID: "x_short", Label: "X Short Post",
		Description:          "A single punchy post under 280 characters.",
		StructureInstruction: "Maximum 280 characters. One idea, one punchline. No hashtags.",
	},
	{
		ID: "x_thread", Label: "X Long Post (Thread)",
		Description:          "A multi-part thread that builds an argument.",
		StructureInstruction: "5 to 9 segments separated by double line breaks. First segment is the hook, last is the takeaway.",
	},
	{
		ID: "li_short", Label: "LinkedIn Short",
		Description:          "A compact LinkedIn post with strong line breaks.",
		StructureInstruction: "Under 120 words. Short lines, generous whitespace. Hook in the first two lines.",
	},
	{
		ID: "li_long", Label: "LinkedIn Long",
		Description:          "A narrative LinkedIn essay.",
		StructureInstruction: "300 to 500 words. Story-driven, one clear lesson, close with a question or takeaway.",
	},
	{
		ID: "ig_carousel", Label: "Instagram Carousel (Editorial)",
		Description:          "Slide-by-slide editorial carousel copy.",
		StructureInstruction: "Maximum 12 slides, 30-60 words per slide, separated by double line breaks. Slide 1 is a high-tension cover sentence.",
	},
	{
		ID: "blog", Label: "Blog Article",
		Description:          "A long-form article.",
		StructureInstruction: "700 to 1200 words with subheadings. Open with a story or a claim, not a definition.",
	},
	{
		ID: "email", Label: "E-mail Newsletter",
		Description:          "A personal letter-style email.",
		StructureInstruction: "200 to 400 words, first person, conversational. One link at most, near the end.",
	},
	{
		ID: "video_short", Label: "Short Video Script",
		Description:          "A script for a sub-60-second vertical video.",
		StructureInstruction: "Spoken-word script, 120 to 160 words. First sentence must stop the scroll.",
	},
}

// FocusAreas is the fixed catalog of personalization focuses.
var FocusAreas = []PersonalizationFocus{
	{ID: "belief", Label: "Core Belief", MemoryTypes: []MemoryType{MemoryTypeBelief, MemoryTypeFact}, Description: "Use a strong opinion or value."},
	{ID: "failure", Label: "Past Failure", MemoryTypes: []MemoryType{MemoryTypeFailure, MemoryTypeLesson}, Description: "Vulnerability and lessons learned."},
	{ID: "story", Label: "Personal Story", MemoryTypes: []MemoryType{MemoryTypeStory, MemoryTypeEmotion}, Description: "A specific life event."},
	{ID: "analogy", Label: "Analogy/Metaphor", MemoryTypes: []MemoryType{MemoryTypeAnalogy}, Description: "Explain complex topics simply."},
	{ID: "neutral", Label: "Pure Value (Neutral)", MemoryTypes: nil, Description: "Focus on the topic, not the person."},
}

// Frameworks is the fixed catalog of content blueprints.
var Frameworks = []ContentFramework{
	{
		ID: "unpopular-opinion", Title: "The Unpopular Opinion",
		Description: "Call out a common industry lie and state your truth.",
		IntentionID: "polarize", FocusID: "belief",
		FormatIDs: []string{"x_short", "x_thread", "li_short"},
		SystemPrompt: `FRAMEWORK: THE UNPOPULAR OPINION
1. Identify a commonly held belief in the niche (the "Lie").
2. Immediately contradict it with the user's specific belief (the "Truth").
3. Provide 3 quick reasons why the Lie is dangerous.
4. End with a definitive statement.
TONE: Bold, confident, slightly aggressive.`,
	},
	{
		ID: "stop-doing-this", Title: "Stop Doing This",
		Description: "A wake-up call to the audience about a specific mistake.",
		IntentionID: "polarize", FocusID: "belief",
		FormatIDs: []string{"x_thread", "li_long", "video_short"},
		SystemPrompt: `FRAMEWORK: THE WAKE UP CALL
1. Hook: "Stop [Action X]. It is killing your [Result Y]."
2. Agitate: explain why people do it (comfort) and why it fails.
3. Solution: insert the user's belief or method as the better alternative.
4. CTA: challenge the reader to change today.`,
	},
	{
		ID: "scars-to-stars", Title: "Scars to Stars",
		Description: "How a painful failure led to a specific success.",
		IntentionID: "connect", FocusID: "failure",
		FormatIDs: []string{"li_long", "blog", "email"},
		SystemPrompt: `FRAMEWORK: SCARS TO STARS
1. Start in the middle of the bad moment (the failure memory). Visceral details.
2. The pivot point: what realization changed everything?
3. The result: where you are now.
4. The lesson: one sentence takeaway for the reader.
TONE: Vulnerable, humble, then authoritative.`,
	},
	{
		ID: "dear-younger-me", Title: "Dear Younger Me",
		Description: "Advice you wish you had 5 years ago.",
		IntentionID: "connect", FocusID: "failure",
		FormatIDs: []string{"x_thread", "li_long"},
		SystemPrompt: `FRAMEWORK: LETTER TO SELF
1. Hook: "I wish I knew this [time period] ago."
2. List 3-5 mistakes you made (derived from failure memories).
3. Correct each mistake with a lesson.
4. Closing: "Be patient."`,
	},
	{
		ID: "complex-simple", Title: "Like a 5-Year Old",
		Description: "Explain a hard concept using a simple metaphor.",
		IntentionID: "educate", FocusID: "analogy",
		FormatIDs: []string{"x_short", "li_short", "video_short"},
		SystemPrompt: `FRAMEWORK: THE SIMPLIFIER
1. State the complex problem/topic.
2. "Think of it like [user's analogy memory]..."
3. Map the parts of the analogy to the problem.
4. The "Aha!" moment.`,
	},
	{
		ID: "how-to-guide", Title: "The Tactical Guide",
		Description: "Pure value. Step-by-step instructions.",
		IntentionID: "educate", FocusID: "neutral",
		FormatIDs: []string{"x_thread", "li_long", "blog", "ig_carousel"},
		SystemPrompt: `FRAMEWORK: TACTICAL GUIDE
1. Hook: promise a specific result (e.g. "How to get X in Y days").
2. The method: step 1, step 2, step 3.
3. Pro-tip: a small nuance often missed.
4. Outcome: what happens when you execute this.
NOTE: Focus purely on utility.`,
	},
	{
		ID: "hero-moment", Title: "The Defining Moment",
		Description: "A story about overcoming a specific obstacle.",
		IntentionID: "motivate", FocusID: "story",
		FormatIDs: []string{"li_long", "email", "blog"},
		SystemPrompt: `FRAMEWORK: THE DEFINING MOMENT
1. Set the scene: a specific story memory where the user faced a choice.
2. The struggle: why was it hard?
3. The action: what did they do?
4. The takeaway: why the reader can do it too.
TONE: Inspiring, high energy.`,
	},
}

// FrameworkByID looks up a framework in the catalog.
func FrameworkByID(id string) (ContentFramework, bool) {
	for _, f := range Frameworks {
		if f.ID == id {
			return f, true
		}
	}
	return ContentFramework{}, false
}

// FormatByID looks up a format in the catalog.
func FormatByID(id string) (ContentFormat, bool) {
	for _, f := range Formats {
		if f.ID == id {
			return f, true
		}
	}
	return ContentFormat{}, false
}

// FocusByID looks up a personalization focus in the catalog.
func FocusByID(id string) (PersonalizationFocus, bool) {
	for _, f := range FocusAreas {
		if f.ID == id {
			return f, true
		}
	}
	return PersonalizationFocus{}, false
}
