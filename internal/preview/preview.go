// Package preview renders a resume the way the live preview pane shows it:
// contact placeholders for blank header fields and only non-empty sections.
package preview

import (
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/jonathan/career-pulse/internal/types"
)

// Placeholders shown for blank header fields.
const (
	NamePlaceholder     = "Your Name"
	TitlePlaceholder    = "Your Professional Title"
	EmailPlaceholder    = "your.email@example.com"
	PhonePlaceholder    = "(123) 456-7890"
	LocationPlaceholder = "City, State"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var (
	htmlTemplate = htmltemplate.Must(htmltemplate.ParseFS(templateFiles, "templates/resume.html.tmpl"))
	textTemplate = texttemplate.Must(texttemplate.New("resume.txt.tmpl").Funcs(texttemplate.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFiles, "templates/resume.txt.tmpl"))
)

// TemplateData is what the preview templates render.
type TemplateData struct {
	Name      string
	Title     string
	Email     string
	Phone     string
	Location  string
	LinkedIn  string
	Portfolio string
	Summary   string
	Skills    []string
	// Experience and Education share EntrySection: heading, subheading, dates.
	Experience []EntrySection
	Education  []EntrySection
}

// EntrySection is one experience or education entry.
type EntrySection struct {
	Heading    string
	Subheading string
	Dates      string
	Bullets    []string
}

// BuildTemplateData maps a resume onto the preview layout.
func BuildTemplateData(r types.Resume) TemplateData {
	info := r.PersonalInfo
	data := TemplateData{
		Name:      orPlaceholder(info.Name, NamePlaceholder),
		Title:     orPlaceholder(info.Title, TitlePlaceholder),
		Email:     orPlaceholder(info.Email, EmailPlaceholder),
		Phone:     orPlaceholder(info.Phone, PhonePlaceholder),
		Location:  orPlaceholder(info.Location, LocationPlaceholder),
		LinkedIn:  info.LinkedIn,
		Portfolio: info.Portfolio,
		Summary:   r.Summary,
	}

	for _, skill := range r.Skills {
		data.Skills = append(data.Skills, skill.Name)
	}
	for _, exp := range r.Experience {
		data.Experience = append(data.Experience, EntrySection{
			Heading:    exp.JobTitle,
			Subheading: exp.Company,
			Dates:      dateRange(exp.StartDate, exp.EndDate),
			Bullets:    exp.Description,
		})
	}
	for _, edu := range r.Education {
		data.Education = append(data.Education, EntrySection{
			Heading:    edu.Institution,
			Subheading: edu.Degree,
			Dates:      dateRange(edu.StartDate, edu.EndDate),
		})
	}
	return data
}

// RenderHTML renders a standalone HTML document. Resume text is escaped and
// link targets are sanitized by html/template.
func RenderHTML(r types.Resume) (string, error) {
	var sb strings.Builder
	if err := htmlTemplate.Execute(&sb, BuildTemplateData(r)); err != nil {
		return "", &TemplateError{Message: "failed to execute html template", Cause: err}
	}
	return sb.String(), nil
}

// RenderText renders a plain-text version for terminals.
func RenderText(r types.Resume) (string, error) {
	var sb strings.Builder
	if err := textTemplate.Execute(&sb, BuildTemplateData(r)); err != nil {
		return "", &TemplateError{Message: "failed to execute text template", Cause: err}
	}
	return sb.String(), nil
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

func dateRange(start, end string) string {
	return start + " – " + end
}
