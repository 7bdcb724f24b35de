package server

import (
	"net/http"

	"github.com/jonathan/career-pulse/internal/editing"
	"github.com/jonathan/career-pulse/internal/types"
)

// BulletRequest carries the text of a new or edited bullet.
// A missing text adds an empty bullet for the user to fill in.
type BulletRequest struct {
	Text string `json:"text"`
}

// SkillsRequest carries the names of skills to append.
type SkillsRequest struct {
	Names []string `json:"names" validate:"required,min=1"`
}

// handleAddExperience appends an empty experience entry.
func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.AddExperience(cur), nil
	})
}

func (s *Server) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.RemoveExperience(cur, index)
	})
}

// handleSetExperienceField sets jobTitle, company, startDate or endDate.
func (s *Server) handleSetExperienceField(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	var req ValueRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.errorFromErr(w, err)
		return
	}
	field := r.PathValue("field")
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.SetExperienceField(cur, index, field, *req.Value)
	})
}

func (s *Server) handleAddBullet(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	var req BulletRequest
	if err := decodeJSON(r, &req, true); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.AppendBullet(cur, index, req.Text)
	})
}

func (s *Server) handleEditBullet(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	bullet, err := pathIndex(r, "bullet")
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	var req BulletRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.EditBullet(cur, index, bullet, req.Text)
	})
}

func (s *Server) handleRemoveBullet(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	bullet, err := pathIndex(r, "bullet")
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.RemoveBullet(cur, index, bullet)
	})
}

// handleAddEducation appends an empty education entry.
func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.AddEducation(cur), nil
	})
}

func (s *Server) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.RemoveEducation(cur, index)
	})
}

// handleSetEducationField sets institution, degree, startDate or endDate.
func (s *Server) handleSetEducationField(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	var req ValueRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.errorFromErr(w, err)
		return
	}
	field := r.PathValue("field")
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.SetEducationField(cur, index, field, *req.Value)
	})
}

// handleAddSkills appends one skill per name, in order. Duplicates are kept.
func (s *Server) handleAddSkills(w http.ResponseWriter, r *http.Request) {
	var req SkillsRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.AppendSkills(cur, req.Names), nil
	})
}

// handleRemoveSkill removes the skill with the given identifier; unknown ones are ignored.
func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	skillID := r.PathValue("skill_id")
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.RemoveSkill(cur, skillID), nil
	})
}
