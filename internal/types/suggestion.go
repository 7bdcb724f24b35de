package types

// PromptType identifies which kind of content the writing assistant produces.
type PromptType string

const (
	// PromptSummary asks for a professional summary paragraph.
	PromptSummary PromptType = "summary"
	// PromptExperience asks for one achievement bullet for an experience entry.
	PromptExperience PromptType = "experience"
	// PromptSkills asks for a list of skill names.
	PromptSkills PromptType = "skills"
)

// Valid reports whether t is one of the known prompt types.
func (t PromptType) Valid() bool {
	switch t {
	case PromptSummary, PromptExperience, PromptSkills:
		return true
	}
	return false
}

// Suggestion is generated content the user accepted and wants applied to a resume.
// Text carries summary and experience content; Items carries skill names.
// ExperienceIndex is only meaningful for PromptExperience.
type Suggestion struct {
	Type            PromptType `json:"type"`
	Text            string     `json:"text,omitempty"`
	Items           []string   `json:"items,omitempty"`
	ExperienceIndex int        `json:"experience_index,omitempty"`
}
