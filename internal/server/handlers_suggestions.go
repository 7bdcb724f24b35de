package server

import (
	"net/http"

	"github.com/jonathan/career-pulse/internal/assistant"
	"github.com/jonathan/career-pulse/internal/editing"
	"github.com/jonathan/career-pulse/internal/types"
)

// SummarySuggestionRequest describes the candidate in free text.
type SummarySuggestionRequest struct {
	Description string `json:"description" validate:"required"`
}

// ExperienceSuggestionRequest asks for one bullet for the experience at ExperienceIndex.
type ExperienceSuggestionRequest struct {
	ExperienceIndex *int   `json:"experience_index" validate:"required,min=0"`
	Responsibility  string `json:"responsibility" validate:"required"`
}

// ApplySuggestionRequest is accepted assistant output to merge into the resume.
type ApplySuggestionRequest struct {
	Type            string   `json:"type" validate:"required,oneof=summary experience skills"`
	Text            string   `json:"text" validate:"required_unless=Type skills"`
	Items           []string `json:"items" validate:"required_if=Type skills"`
	ExperienceIndex int      `json:"experience_index" validate:"min=0"`
}

// SuggestionResponse is a generated summary or bullet that has not been applied
// yet. When Placeholder is set, Text holds the message to show instead.
type SuggestionResponse struct {
	Type        types.PromptType `json:"type"`
	Text        string           `json:"text"`
	Placeholder bool             `json:"placeholder"`
}

// SkillsSuggestionResponse carries suggested skill names. Items is always an
// array, empty when the provider suggested nothing.
type SkillsSuggestionResponse struct {
	Type        types.PromptType `json:"type"`
	Items       []string         `json:"items"`
	Placeholder bool             `json:"placeholder"`
}

func textSuggestion(kind types.PromptType, res assistant.TextResult) SuggestionResponse {
	return SuggestionResponse{Type: kind, Text: res.Display(), Placeholder: res.Placeholder}
}

// handleSuggestSummary drafts a summary. Provider failures are not HTTP errors:
// the response carries the placeholder text.
func (s *Server) handleSuggestSummary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.store.Get(id); !ok {
		s.errorFromErr(w, &ErrResumeNotFound{ID: id})
		return
	}
	var req SummarySuggestionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.errorFromErr(w, err)
		return
	}

	res := s.gateway.Summary(r.Context(), req.Description)
	s.jsonResponse(w, http.StatusOK, textSuggestion(types.PromptSummary, res))
}

// handleSuggestBullet drafts a bullet using the job title of the chosen experience.
func (s *Server) handleSuggestBullet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	resume, ok := s.store.Get(id)
	if !ok {
		s.errorFromErr(w, &ErrResumeNotFound{ID: id})
		return
	}
	var req ExperienceSuggestionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.errorFromErr(w, err)
		return
	}
	index := *req.ExperienceIndex
	if index >= len(resume.Experience) {
		s.errorFromErr(w, &editing.IndexError{Collection: "experience", Index: index, Len: len(resume.Experience)})
		return
	}

	res := s.gateway.ExperienceBullet(r.Context(), req.Responsibility, resume.Experience[index].JobTitle)
	s.jsonResponse(w, http.StatusOK, textSuggestion(types.PromptExperience, res))
}

// handleSuggestSkills suggests skills from the resume's title and experience bullets.
func (s *Server) handleSuggestSkills(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	resume, ok := s.store.Get(id)
	if !ok {
		s.errorFromErr(w, &ErrResumeNotFound{ID: id})
		return
	}

	jobTitle, experience := assistant.SkillsContext(resume)
	res := s.gateway.Skills(r.Context(), jobTitle, experience)
	items := res.Display()
	if items == nil {
		items = []string{}
	}
	s.jsonResponse(w, http.StatusOK, SkillsSuggestionResponse{
		Type:        types.PromptSkills,
		Items:       items,
		Placeholder: res.Placeholder,
	})
}

// handleApplySuggestion commits accepted content: a summary replaces the summary,
// an experience suggestion becomes a new bullet and skills are appended.
func (s *Server) handleApplySuggestion(w http.ResponseWriter, r *http.Request) {
	var req ApplySuggestionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.errorFromErr(w, err)
		return
	}
	suggestion := types.Suggestion{
		Type:            types.PromptType(req.Type),
		Text:            req.Text,
		Items:           req.Items,
		ExperienceIndex: req.ExperienceIndex,
	}
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.ApplySuggestion(cur, suggestion)
	})
}
