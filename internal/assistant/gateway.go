// Package assistant drafts resume content with a generative text service.
//
// Every call is a single round trip with no retry. Failures never surface as Go
// errors to the caller's control flow: they come back as results tagged with a
// placeholder the front end can show as-is. Results are never applied to a
// resume here; callers commit accepted content through the editing package.
package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jonathan/career-pulse/internal/llm"
	"github.com/jonathan/career-pulse/internal/observability"
	"github.com/jonathan/career-pulse/internal/prompts"
	"github.com/jonathan/career-pulse/internal/types"
)

// Sampling per request type; skills use provider defaults.
var (
	summarySampling = []llm.GenerateOption{llm.WithTemperature(0.7), llm.WithTopP(0.95)}
	bulletSampling  = []llm.GenerateOption{llm.WithTemperature(0.8), llm.WithTopP(0.95)}
)

// summaryHeadings are heading lines models tend to put above a summary.
var summaryHeadings = []string{"about me", "sobre mim"}

// Gateway issues writing-assistant requests.
type Gateway struct {
	client llm.Client
	tier   llm.ModelTier
	log    *slog.Logger
}

// New returns a gateway over client. A nil client means no credential is
// configured: every request returns the "not configured" placeholder.
func New(client llm.Client, log *slog.Logger) *Gateway {
	return &Gateway{
		client: client,
		tier:   llm.TierStandard,
		log:    observability.OrDefault(log),
	}
}

// Available reports whether requests reach the provider.
func (g *Gateway) Available() bool {
	return g != nil && g.client != nil
}

// Close releases the underlying client.
func (g *Gateway) Close() error {
	if !g.Available() {
		return nil
	}
	return g.client.Close()
}

// Summary drafts a professional summary from a free-text description of the candidate.
func (g *Gateway) Summary(ctx context.Context, description string) TextResult {
	if !g.Available() {
		g.count(types.PromptSummary, "unavailable")
		return textFailure(UnavailableText, ErrUnavailable)
	}

	text, err := g.generate(ctx, types.PromptSummary, map[string]string{"Input": description}, summarySampling...)
	if err != nil {
		return textFailure(SummaryFailedText, err)
	}
	return TextResult{Value: cleanSummary(text)}
}

// ExperienceBullet turns a responsibility into one achievement bullet for the given role.
func (g *Gateway) ExperienceBullet(ctx context.Context, responsibility, jobTitle string) TextResult {
	if !g.Available() {
		g.count(types.PromptExperience, "unavailable")
		return textFailure(UnavailableText, ErrUnavailable)
	}

	text, err := g.generate(ctx, types.PromptExperience, map[string]string{
		"JobTitle":       jobTitle,
		"Responsibility": responsibility,
	}, bulletSampling...)
	if err != nil {
		return textFailure(BulletFailedText, err)
	}
	return TextResult{Value: cleanBullet(text)}
}

// Skills suggests skill names from a job title and experience text.
func (g *Gateway) Skills(ctx context.Context, jobTitle, experience string) ListResult {
	if !g.Available() {
		g.count(types.PromptSkills, "unavailable")
		return listFailure(UnavailableItem, ErrUnavailable)
	}

	text, err := g.generate(ctx, types.PromptSkills, map[string]string{
		"JobTitle":   jobTitle,
		"Experience": experience,
	})
	if err != nil {
		return listFailure(SkillsFailedItem, err)
	}
	return ListResult{Value: llm.SplitList(llm.StripCodeFence(text))}
}

// SkillsContext derives the skills request hints from a resume: the candidate's
// title and every experience bullet joined by spaces.
func SkillsContext(r types.Resume) (jobTitle, experience string) {
	return r.PersonalInfo.Title, r.ExperienceText()
}

func (g *Gateway) generate(ctx context.Context, kind types.PromptType, data map[string]string, opts ...llm.GenerateOption) (string, error) {
	prompt, err := prompts.Render(prompts.AssistantFile, string(kind), data)
	if err != nil {
		return "", g.fail(kind, &GenerationError{Type: kind, Message: "failed to build prompt", Cause: err})
	}

	g.log.Debug("requesting generated content", "type", kind, "model", g.client.GetModel(g.tier))
	text, err := g.client.GenerateContent(ctx, prompt, g.tier, opts...)
	if err != nil {
		return "", g.fail(kind, &GenerationError{Type: kind, Message: "provider request failed", Cause: err})
	}

	g.count(kind, "ok")
	return text, nil
}

func (g *Gateway) fail(kind types.PromptType, err error) error {
	g.count(kind, "error")
	g.log.Error("failed to generate content", "type", kind, "error", err)
	return err
}

func (g *Gateway) count(kind types.PromptType, outcome string) {
	observability.AssistantRequests.WithLabelValues(string(kind), outcome).Inc()
}

// cleanSummary drops a leading heading line and trims whitespace.
func cleanSummary(text string) string {
	text = strings.TrimSpace(text)
	first, rest, found := strings.Cut(text, "\n")
	heading := strings.ToLower(strings.Trim(first, " #*:"))
	for _, h := range summaryHeadings {
		if heading == h {
			if !found {
				return ""
			}
			return strings.TrimSpace(rest)
		}
	}
	return text
}

// cleanBullet strips double quotes and trims whitespace.
func cleanBullet(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, `"`, ""))
}
