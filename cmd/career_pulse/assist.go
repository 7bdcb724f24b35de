package main

import (
	"github.com/jonathan/career-pulse/internal/assistant"
	"github.com/jonathan/career-pulse/internal/editing"
	"github.com/jonathan/career-pulse/internal/observability"
	"github.com/jonathan/career-pulse/internal/types"
	"github.com/spf13/cobra"
)

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Draft content with the writing assistant",
	Long: "Ask the generative text service for a summary, an experience bullet or skills. " +
		"Suggestions are printed; pass --apply to add them to the resume.",
}

var assistSummaryCmd = &cobra.Command{
	Use:   "summary <id> <description>",
	Short: "Draft a professional summary from a short description of yourself",
	Args:  cobra.ExactArgs(2),
	RunE:  runAssistSummary,
}

var assistBulletCmd = &cobra.Command{
	Use:   "bullet <id> <experience-index> <responsibility>",
	Short: "Turn a responsibility into an achievement bullet",
	Args:  cobra.ExactArgs(3),
	RunE:  runAssistBullet,
}

var assistSkillsCmd = &cobra.Command{
	Use:   "skills <id>",
	Short: "Suggest skills from your title and experience",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssistSkills,
}

var assistApply bool

func init() {
	for _, c := range []*cobra.Command{assistSummaryCmd, assistBulletCmd, assistSkillsCmd} {
		c.Flags().BoolVar(&assistApply, "apply", false, "Apply the suggestion to the resume")
		assistCmd.AddCommand(c)
	}
	rootCmd.AddCommand(assistCmd)
}

// suggest prints a suggestion and, when asked and the content is real, applies it.
// Placeholders are never applied.
func suggest(cmd *cobra.Command, sess *session, r types.Resume, s types.Suggestion, lines []string, placeholder bool) error {
	observability.NewPrinter(cmd.OutOrStdout()).PrintSuggestion(s.Type, lines, placeholder)
	if !assistApply || placeholder {
		return nil
	}

	_, err := sess.modify(cmd.Context(), r.ID, func(current types.Resume) (types.Resume, error) {
		return editing.ApplySuggestion(current, s)
	})
	if err != nil {
		return err
	}
	sess.log.Info("applied suggestion", "type", s.Type, "id", r.ID)
	return nil
}

func runAssistSummary(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	r, err := sess.resume(args[0])
	if err != nil {
		return err
	}

	res := sess.gateway.Summary(cmd.Context(), args[1])
	s := types.Suggestion{Type: types.PromptSummary, Text: res.Display()}
	return suggest(cmd, sess, r, s, []string{res.Display()}, res.Placeholder)
}

func runAssistBullet(cmd *cobra.Command, args []string) error {
	index, err := parseIndex("experience-index", args[1])
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	r, err := sess.resume(args[0])
	if err != nil {
		return err
	}
	if index < 0 || index >= len(r.Experience) {
		return &editing.IndexError{Collection: "experience", Index: index, Len: len(r.Experience)}
	}

	res := sess.gateway.ExperienceBullet(cmd.Context(), args[2], r.Experience[index].JobTitle)
	s := types.Suggestion{Type: types.PromptExperience, Text: res.Display(), ExperienceIndex: index}
	return suggest(cmd, sess, r, s, []string{res.Display()}, res.Placeholder)
}

func runAssistSkills(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	r, err := sess.resume(args[0])
	if err != nil {
		return err
	}

	jobTitle, experience := assistant.SkillsContext(r)
	res := sess.gateway.Skills(cmd.Context(), jobTitle, experience)
	s := types.Suggestion{Type: types.PromptSkills, Items: res.Display()}
	return suggest(cmd, sess, r, s, res.Display(), res.Placeholder)
}
