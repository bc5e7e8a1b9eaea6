package domain

// Product describes something the user promotes. The persona field is free
// text, not a reference to a stored persona report.
type Product struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Persona         string `json:"persona,omitempty"`
	PainPoints      string `json:"painPoints,omitempty"`
	Solution        string `json:"solution,omitempty"`
	Differentiators string `json:"differentiators,omitempty"`
	Testimonials    string `json:"testimonials,omitempty"`
	Link            string `json:"link,omitempty"`
	Purpose         string `json:"purpose,omitempty"`
	Results         string `json:"results,omitempty"`
	Notes           string `json:"notes,omitempty"`
}
