// Package types provides the resume document model shared by the store, the editing
// operations and the front ends.
package types

import "slices"

// PersonalInfo holds the contact block shown at the top of a resume.
// All fields are free text; nothing is validated.
type PersonalInfo struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
}

// Experience is one job entry. Description holds the bullets in display order.
type Experience struct {
	ID          string   `json:"id"`
	JobTitle    string   `json:"jobTitle"`
	Company     string   `json:"company"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Description []string `json:"description"`
}

// Education is one education entry.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Skill is a single named skill. Names are not required to be unique.
type Skill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Resume is the top-level document a user edits.
type Resume struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`
}

// Clone returns a deep copy of r. The copy shares no slices with r.
func (r Resume) Clone() Resume {
	out := r
	out.Experience = make([]Experience, len(r.Experience))
	for i, exp := range r.Experience {
		exp.Description = cloneStrings(exp.Description)
		out.Experience[i] = exp
	}
	out.Education = make([]Education, len(r.Education))
	copy(out.Education, r.Education)
	out.Skills = make([]Skill, len(r.Skills))
	copy(out.Skills, r.Skills)
	return out
}

// Equal reports whether r and other are structurally equal.
// A nil collection and an empty one compare equal.
func (r Resume) Equal(other Resume) bool {
	if r.ID != other.ID || r.Name != other.Name || r.Summary != other.Summary {
		return false
	}
	if r.PersonalInfo != other.PersonalInfo {
		return false
	}
	if !slices.EqualFunc(r.Experience, other.Experience, func(a, b Experience) bool {
		return a.ID == b.ID &&
			a.JobTitle == b.JobTitle &&
			a.Company == b.Company &&
			a.StartDate == b.StartDate &&
			a.EndDate == b.EndDate &&
			slices.Equal(a.Description, b.Description)
	}) {
		return false
	}
	return slices.Equal(r.Education, other.Education) && slices.Equal(r.Skills, other.Skills)
}

// Normalize replaces nil collections with empty ones so the document always
// serializes with [] instead of null.
func (r *Resume) Normalize() {
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	for i := range r.Experience {
		if r.Experience[i].Description == nil {
			r.Experience[i].Description = []string{}
		}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
}

// ExperienceText concatenates every bullet of every experience, separated by spaces.
func (r Resume) ExperienceText() string {
	var out []byte
	for i, exp := range r.Experience {
		if i > 0 {
			out = append(out, ' ')
		}
		for j, bullet := range exp.Description {
			if j > 0 {
				out = append(out, ' ')
			}
			out = append(out, bullet...)
		}
	}
	return string(out)
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
