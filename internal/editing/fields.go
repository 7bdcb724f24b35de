package editing

import "github.com/jonathan/career-pulse/internal/types"

// PersonalInfoFields lists the editable personal-info field names.
var PersonalInfoFields = []string{"name", "title", "email", "phone", "location", "linkedin", "portfolio"}

// ExperienceFields lists the editable experience field names.
var ExperienceFields = []string{"jobTitle", "company", "startDate", "endDate"}

// EducationFields lists the editable education field names.
var EducationFields = []string{"institution", "degree", "startDate", "endDate"}

func personalInfoField(info *types.PersonalInfo, field string) (*string, error) {
	switch field {
	case "name":
		return &info.Name, nil
	case "title":
		return &info.Title, nil
	case "email":
		return &info.Email, nil
	case "phone":
		return &info.Phone, nil
	case "location":
		return &info.Location, nil
	case "linkedin":
		return &info.LinkedIn, nil
	case "portfolio":
		return &info.Portfolio, nil
	}
	return nil, &FieldError{Section: "personal info", Field: field}
}

func experienceField(exp *types.Experience, field string) (*string, error) {
	switch field {
	case "jobTitle":
		return &exp.JobTitle, nil
	case "company":
		return &exp.Company, nil
	case "startDate":
		return &exp.StartDate, nil
	case "endDate":
		return &exp.EndDate, nil
	}
	return nil, &FieldError{Section: "experience", Field: field}
}

func educationField(edu *types.Education, field string) (*string, error) {
	switch field {
	case "institution":
		return &edu.Institution, nil
	case "degree":
		return &edu.Degree, nil
	case "startDate":
		return &edu.StartDate, nil
	case "endDate":
		return &edu.EndDate, nil
	}
	return nil, &FieldError{Section: "education", Field: field}
}
