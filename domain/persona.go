package domain

// PersonaReport is the structured audience debriefing the generator produces
// in JSON mode. It is persisted serialized inside a PERSONA memory and fed
// back into generation as audience context.
type PersonaReport struct {
	Snapshot         PersonaSnapshot      `json:"snapshot"`
	ExecutiveSummary string               `json:"executiveSummary"`
	Psychology       PersonaPsychology    `json:"psychology"`
	Behaviors        PersonaBehaviors     `json:"behaviors"`
	Drivers          PersonaDrivers       `json:"drivers"`
	Communication    PersonaCommunication `json:"communication"`
}

type PersonaSnapshot struct {
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	Summary string `json:"summary"`
}

type PersonaPsychology struct {
	CoreConflict    string           `json:"coreConflict"`
	Thought3AM      string           `json:"thought3AM"`
	LimitingBeliefs []LimitingBelief `json:"limitingBeliefs"`
}

type LimitingBelief struct {
	Belief      string `json:"belief"`
	Description string `json:"description"`
}

type PersonaBehaviors struct {
	TriggerEvents    []string          `json:"triggerEvents"`
	CopingMechanisms []CopingMechanism `json:"copingMechanisms"`
}

type CopingMechanism struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type PersonaDrivers struct {
	Fears            []string `json:"fears"`
	Goals            []string `json:"goals"`
	InternalDialogue []string `json:"internalDialogue"`
}

type PersonaCommunication struct {
	Tone         string     `json:"tone"`
	WordsToAvoid []string   `json:"wordsToAvoid"`
	PowerWords   PowerWords `json:"powerWords"`
	CTAStyle     []string   `json:"ctaStyle"`
}

type PowerWords struct {
	Empowerment []string `json:"empowerment"`
	Clarity     []string `json:"clarity"`
	Emotional   []string `json:"emotional"`
}
