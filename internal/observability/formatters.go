// Package observability provides logging, metrics and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-pulse/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeList outputs one line per resume: identifier, display name and candidate name.
func (p *Printer) PrintResumeList(resumes []types.Resume) {
	if len(resumes) == 0 {
		p.printBox("MY RESUMES", "No resumes yet!")
		return
	}

	var sb strings.Builder
	for i, r := range resumes {
		candidate := r.PersonalInfo.Name
		if candidate == "" {
			candidate = "No Name"
		}
		sb.WriteString(fmt.Sprintf("%s\n", r.Name))
		sb.WriteString(fmt.Sprintf("  %s · %s", r.ID, candidate))
		if i < len(resumes)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("MY RESUMES (%d)", len(resumes)), sb.String())
}

// PrintResume outputs a condensed view of one resume with indexes usable by edit commands.
func (p *Printer) PrintResume(r *types.Resume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", r.ID))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", r.PersonalInfo.Name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", r.PersonalInfo.Title))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", r.PersonalInfo.Email))

	if r.Summary != "" {
		sb.WriteString("\nSummary:\n")
		sb.WriteString(fmt.Sprintf("  %s\n", r.Summary))
	}

	if len(r.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		for i, exp := range r.Experience {
			sb.WriteString(fmt.Sprintf("  [%d] %s @ %s\n", i, exp.JobTitle, exp.Company))
			for j, bullet := range exp.Description {
				sb.WriteString(fmt.Sprintf("      %d. %s\n", j, bullet))
			}
		}
	}

	if len(r.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		for i, edu := range r.Education {
			sb.WriteString(fmt.Sprintf("  [%d] %s, %s\n", i, edu.Degree, edu.Institution))
		}
	}

	if len(r.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(r.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", r.Skills[i].Name, r.Skills[i].ID))
		}
		if len(r.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Skills)-maxItemsToShow))
		}
	}

	p.printBox(strings.ToUpper(r.Name), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestion outputs assistant output; placeholders are flagged so the user
// knows there is nothing worth applying.
func (p *Printer) PrintSuggestion(kind types.PromptType, lines []string, placeholder bool) {
	title := "AI SUGGESTION: " + strings.ToUpper(string(kind))
	if placeholder {
		title += " (unavailable)"
	}
	p.printBox(title, strings.Join(lines, "\n"))
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}
