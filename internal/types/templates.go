package types

import "github.com/google/uuid"

const (
	// BlankResumeName is the display name given to newly created resumes.
	BlankResumeName = "Untitled Resume"
	// SampleResumeName is the display name of the seeded example resume.
	SampleResumeName = "My First Resume"
)

// NewID returns a random 128-bit identifier in canonical UUID form.
func NewID() string {
	return uuid.NewString()
}

// NewBlankResume returns a resume with a fresh identifier and empty fields.
func NewBlankResume() Resume {
	return Resume{
		ID:         NewID(),
		Name:       BlankResumeName,
		Experience: []Experience{},
		Education:  []Education{},
		Skills:     []Skill{},
	}
}

// NewSampleResume returns the seeded example resume used when no stored data exists.
func NewSampleResume() Resume {
	return Resume{
		ID:   NewID(),
		Name: SampleResumeName,
		PersonalInfo: PersonalInfo{
			Name:      "Alex Doe",
			Title:     "Software Engineer",
			Email:     "alex.doe@email.com",
			Phone:     "123-456-7890",
			Location:  "San Francisco, CA",
			LinkedIn:  "https://linkedin.com/in/alexdoe",
			Portfolio: "https://github.com/alexdoe",
		},
		Summary: "A vibrant and passionate software engineer with 5 years of experience in developing " +
			"user-centric web applications. Expert in React, TypeScript, and Node.js, with a strong focus " +
			"on performance and creating seamless user experiences. Eager to bring technical skills and " +
			"creative energy to a dynamic team.",
		Experience: []Experience{
			{
				ID:        NewID(),
				JobTitle:  "Frontend Developer",
				Company:   "WebCreators",
				StartDate: "Jun 2021",
				EndDate:   "Present",
				Description: []string{
					"Developed responsive user interfaces using React.js and Next.js, boosting user experience by 20%.",
					"Integrated RESTful APIs for dynamic data functionality, ensuring application fluidity.",
					"Optimized web application performance, reducing page load time by 1.5 seconds with a focus on excellence.",
				},
			},
		},
		Education: []Education{
			{
				ID:          NewID(),
				Institution: "University of Technology",
				Degree:      "B.S. in Computer Science",
				StartDate:   "Sep 2017",
				EndDate:     "May 2021",
			},
		},
		Skills: []Skill{
			{ID: NewID(), Name: "React.js"},
			{ID: NewID(), Name: "TypeScript"},
			{ID: NewID(), Name: "Node.js"},
			{ID: NewID(), Name: "Tailwind CSS"},
			{ID: NewID(), Name: "Agile Methodologies"},
		},
	}
}

// NewExperience returns an empty experience entry with a fresh identifier.
func NewExperience() Experience {
	return Experience{ID: NewID(), Description: []string{}}
}

// NewEducation returns an empty education entry with a fresh identifier.
func NewEducation() Education {
	return Education{ID: NewID()}
}

// NewSkill returns a skill with a fresh identifier.
func NewSkill(name string) Skill {
	return Skill{ID: NewID(), Name: name}
}
