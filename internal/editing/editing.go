// Package editing provides the resume mutation operations.
//
// Every function takes the current resume by value and returns a new resume. The
// input is never modified and the result shares no slices with it, so a caller may
// keep the previous value as a snapshot. Results are committed with store.Modify or
// store.Update.
package editing

import "github.com/jonathan/career-pulse/internal/types"

// SetName replaces the resume's display name.
func SetName(r types.Resume, name string) types.Resume {
	out := r.Clone()
	out.Name = name
	return out
}

// SetSummary replaces the professional summary.
func SetSummary(r types.Resume, summary string) types.Resume {
	out := r.Clone()
	out.Summary = summary
	return out
}

// SetPersonalInfo replaces one personal-info field.
func SetPersonalInfo(r types.Resume, field, value string) (types.Resume, error) {
	out := r.Clone()
	target, err := personalInfoField(&out.PersonalInfo, field)
	if err != nil {
		return types.Resume{}, err
	}
	*target = value
	return out, nil
}

// SetExperienceField replaces one field of the experience at index.
func SetExperienceField(r types.Resume, index int, field, value string) (types.Resume, error) {
	if err := checkIndex("experience", index, len(r.Experience)); err != nil {
		return types.Resume{}, err
	}
	out := r.Clone()
	target, err := experienceField(&out.Experience[index], field)
	if err != nil {
		return types.Resume{}, err
	}
	*target = value
	return out, nil
}

// EditBullet replaces the bullet at position bullet of the experience at index.
func EditBullet(r types.Resume, index, bullet int, text string) (types.Resume, error) {
	if err := checkIndex("experience", index, len(r.Experience)); err != nil {
		return types.Resume{}, err
	}
	if err := checkIndex("bullet", bullet, len(r.Experience[index].Description)); err != nil {
		return types.Resume{}, err
	}
	out := r.Clone()
	out.Experience[index].Description[bullet] = text
	return out, nil
}

// AppendBullet appends a bullet to the experience at index. The bullet text
// defaults to the empty string; extra arguments after the first are ignored.
func AppendBullet(r types.Resume, index int, text ...string) (types.Resume, error) {
	if err := checkIndex("experience", index, len(r.Experience)); err != nil {
		return types.Resume{}, err
	}
	bullet := ""
	if len(text) > 0 {
		bullet = text[0]
	}
	out := r.Clone()
	out.Experience[index].Description = append(out.Experience[index].Description, bullet)
	return out, nil
}

// RemoveBullet removes the bullet at position bullet, shifting later bullets left.
func RemoveBullet(r types.Resume, index, bullet int) (types.Resume, error) {
	if err := checkIndex("experience", index, len(r.Experience)); err != nil {
		return types.Resume{}, err
	}
	if err := checkIndex("bullet", bullet, len(r.Experience[index].Description)); err != nil {
		return types.Resume{}, err
	}
	out := r.Clone()
	desc := out.Experience[index].Description
	out.Experience[index].Description = append(desc[:bullet], desc[bullet+1:]...)
	return out, nil
}

// AppendSkills appends one skill per name, each with a fresh identifier, in input order.
func AppendSkills(r types.Resume, names []string) types.Resume {
	out := r.Clone()
	for _, name := range names {
		out.Skills = append(out.Skills, types.NewSkill(name))
	}
	return out
}

// RemoveSkill removes the first skill with the given identifier.
// An unknown identifier leaves the skills unchanged.
func RemoveSkill(r types.Resume, skillID string) types.Resume {
	out := r.Clone()
	for i, s := range out.Skills {
		if s.ID == skillID {
			out.Skills = append(out.Skills[:i], out.Skills[i+1:]...)
			break
		}
	}
	return out
}

// AddExperience appends an empty experience entry.
func AddExperience(r types.Resume) types.Resume {
	out := r.Clone()
	out.Experience = append(out.Experience, types.NewExperience())
	return out
}

// RemoveExperience removes the experience at index.
func RemoveExperience(r types.Resume, index int) (types.Resume, error) {
	if err := checkIndex("experience", index, len(r.Experience)); err != nil {
		return types.Resume{}, err
	}
	out := r.Clone()
	out.Experience = append(out.Experience[:index], out.Experience[index+1:]...)
	return out, nil
}

// AddEducation appends an empty education entry.
func AddEducation(r types.Resume) types.Resume {
	out := r.Clone()
	out.Education = append(out.Education, types.NewEducation())
	return out
}

// RemoveEducation removes the education entry at index.
func RemoveEducation(r types.Resume, index int) (types.Resume, error) {
	if err := checkIndex("education", index, len(r.Education)); err != nil {
		return types.Resume{}, err
	}
	out := r.Clone()
	out.Education = append(out.Education[:index], out.Education[index+1:]...)
	return out, nil
}

// SetEducationField replaces one field of the education entry at index.
func SetEducationField(r types.Resume, index int, field, value string) (types.Resume, error) {
	if err := checkIndex("education", index, len(r.Education)); err != nil {
		return types.Resume{}, err
	}
	out := r.Clone()
	target, err := educationField(&out.Education[index], field)
	if err != nil {
		return types.Resume{}, err
	}
	*target = value
	return out, nil
}

// ApplySuggestion applies accepted assistant output: a summary replaces the summary,
// an experience suggestion becomes a new bullet, skills are appended.
func ApplySuggestion(r types.Resume, s types.Suggestion) (types.Resume, error) {
	if !s.Type.Valid() {
		return types.Resume{}, &FieldError{Section: "suggestion", Field: string(s.Type)}
	}
	switch s.Type {
	case types.PromptExperience:
		return AppendBullet(r, s.ExperienceIndex, s.Text)
	case types.PromptSkills:
		return AppendSkills(r, s.Items), nil
	default:
		return SetSummary(r, s.Text), nil
	}
}
