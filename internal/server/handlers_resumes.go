package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-pulse/internal/editing"
	"github.com/jonathan/career-pulse/internal/preview"
	"github.com/jonathan/career-pulse/internal/schemas"
	"github.com/jonathan/career-pulse/internal/types"
)

// maxBodyBytes bounds request bodies; a resume document is a few kilobytes.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// Resume templates accepted by POST /resumes.
const (
	TemplateBlank  = "blank"
	TemplateSample = "sample"
)

// CreateResumeRequest is the optional body of POST /resumes.
type CreateResumeRequest struct {
	Template string `json:"template" validate:"omitempty,oneof=blank sample"`
}

// CreateResumeResponse is returned by POST /resumes.
type CreateResumeResponse struct {
	ID string `json:"id"`
}

// ValueRequest sets a single text field. An empty string is a valid value.
type ValueRequest struct {
	Value *string `json:"value" validate:"required"`
}

// decodeJSON reads the request body into v and validates its struct tags.
// An empty body is accepted when allowEmpty is set.
func decodeJSON(r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return &ErrValidation{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

// pathIndex parses an integer path segment. Range checks happen in the editing operations.
func pathIndex(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, &ErrValidation{Field: name, Message: "must be an integer"}
	}
	return n, nil
}

// mutate applies edit to the resume named in the path and commits the result
// atomically. The committed resume is written back to the client.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, edit func(types.Resume) (types.Resume, error)) {
	next, err := s.store.Modify(r.Context(), r.PathValue("id"), edit)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, next)
}

// handleListResumes returns every resume in insertion order.
func (s *Server) handleListResumes(w http.ResponseWriter, _ *http.Request) {
	resumes := s.store.List()
	if resumes == nil {
		resumes = []types.Resume{}
	}
	s.jsonResponse(w, http.StatusOK, resumes)
}

// handleCreateResume creates a blank resume, or the sample when asked for.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	var req CreateResumeRequest
	if err := decodeJSON(r, &req, true); err != nil {
		s.errorFromErr(w, err)
		return
	}

	var id string
	switch req.Template {
	case TemplateSample:
		id = s.store.CreateFrom(r.Context(), types.NewSampleResume())
	case TemplateBlank, "":
		id = s.store.Create(r.Context())
	}
	s.jsonResponse(w, http.StatusCreated, CreateResumeResponse{ID: id})
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	resume, ok := s.store.Get(id)
	if !ok {
		s.errorFromErr(w, &ErrResumeNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleReplaceResume replaces the whole document. The identifier always comes
// from the path; the body is shape-checked before it is decoded.
func (s *Server) handleReplaceResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.store.Get(id); !ok {
		s.errorFromErr(w, &ErrResumeNotFound{ID: id})
		return
	}

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&fields); err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}
	if fields == nil {
		s.errorFromErr(w, &ErrValidation{Field: "body", Message: "expected a resume object"})
		return
	}
	fields["id"], _ = json.Marshal(id)

	doc, err := json.Marshal([]map[string]json.RawMessage{fields})
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := schemas.ValidateResumes(doc); err != nil {
		s.errorFromErr(w, err)
		return
	}

	var replaced []types.Resume
	if err := json.Unmarshal(doc, &replaced); err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	if err := s.store.Update(r.Context(), replaced[0]); err != nil {
		s.errorFromErr(w, err)
		return
	}
	next := replaced[0]
	next.Normalize()
	s.jsonResponse(w, http.StatusOK, next)
}

// handleDeleteResume removes a resume. Unknown identifiers are not an error.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	s.store.Delete(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// handlePreview renders the resume as an HTML page.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	resume, ok := s.store.Get(id)
	if !ok {
		s.errorFromErr(w, &ErrResumeNotFound{ID: id})
		return
	}

	page, err := preview.RenderHTML(resume)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, page)
}

func (s *Server) handleSetName(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.SetName(cur, *req.Value), nil
	})
}

func (s *Server) handleSetSummary(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.SetSummary(cur, *req.Value), nil
	})
}

// handleSetPersonalInfo sets one contact field, named in the path.
func (s *Server) handleSetPersonalInfo(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.errorFromErr(w, err)
		return
	}
	field := r.PathValue("field")
	s.mutate(w, r, func(cur types.Resume) (types.Resume, error) {
		return editing.SetPersonalInfo(cur, field, *req.Value)
	})
}
