package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jonathan/career-pulse/internal/editing"
	"github.com/jonathan/career-pulse/internal/types"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit one part of a resume",
}

var editSummaryCmd = &cobra.Command{
	Use:   "summary <id> <text>",
	Short: "Replace the professional summary",
	Args:  cobra.ExactArgs(2),
	RunE:  runEditSummary,
}

var editPersonalCmd = &cobra.Command{
	Use:   "personal <id> <field> <value>",
	Short: "Set a contact field (name, title, email, phone, location, linkedin, portfolio)",
	Args:  cobra.ExactArgs(3),
	RunE:  runEditPersonal,
}

var editBulletAddCmd = &cobra.Command{
	Use:   "bullet-add <id> <experience-index> [text]",
	Short: "Append a bullet to an experience entry",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runEditBulletAdd,
}

var editBulletRemoveCmd = &cobra.Command{
	Use:   "bullet-remove <id> <experience-index> <bullet-index>",
	Short: "Remove a bullet from an experience entry",
	Args:  cobra.ExactArgs(3),
	RunE:  runEditBulletRemove,
}

var editSkillsAddCmd = &cobra.Command{
	Use:   "skills-add <id> <name>...",
	Short: "Append one skill per name",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runEditSkillsAdd,
}

var editSkillRemoveCmd = &cobra.Command{
	Use:   "skill-remove <id> <skill-id>",
	Short: "Remove a skill by identifier",
	Args:  cobra.ExactArgs(2),
	RunE:  runEditSkillRemove,
}

func init() {
	editCmd.AddCommand(
		editSummaryCmd,
		editPersonalCmd,
		editBulletAddCmd,
		editBulletRemoveCmd,
		editSkillsAddCmd,
		editSkillRemoveCmd,
	)
	rootCmd.AddCommand(editCmd)
}

// editResume applies edit to the resume with the given id, saves it and prints it.
func editResume(cmd *cobra.Command, id string, edit func(types.Resume) (types.Resume, error)) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	saved, err := sess.modify(cmd.Context(), id, edit)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), saved)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func parseIndex(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, value)
	}
	return n, nil
}

func runEditSummary(cmd *cobra.Command, args []string) error {
	return editResume(cmd, args[0], func(r types.Resume) (types.Resume, error) {
		return editing.SetSummary(r, args[1]), nil
	})
}

func runEditPersonal(cmd *cobra.Command, args []string) error {
	return editResume(cmd, args[0], func(r types.Resume) (types.Resume, error) {
		return editing.SetPersonalInfo(r, args[1], args[2])
	})
}

func runEditBulletAdd(cmd *cobra.Command, args []string) error {
	index, err := parseIndex("experience-index", args[1])
	if err != nil {
		return err
	}
	return editResume(cmd, args[0], func(r types.Resume) (types.Resume, error) {
		return editing.AppendBullet(r, index, args[2:]...)
	})
}

func runEditBulletRemove(cmd *cobra.Command, args []string) error {
	index, err := parseIndex("experience-index", args[1])
	if err != nil {
		return err
	}
	bullet, err := parseIndex("bullet-index", args[2])
	if err != nil {
		return err
	}
	return editResume(cmd, args[0], func(r types.Resume) (types.Resume, error) {
		return editing.RemoveBullet(r, index, bullet)
	})
}

func runEditSkillsAdd(cmd *cobra.Command, args []string) error {
	return editResume(cmd, args[0], func(r types.Resume) (types.Resume, error) {
		return editing.AppendSkills(r, args[1:]), nil
	})
}

func runEditSkillRemove(cmd *cobra.Command, args []string) error {
	return editResume(cmd, args[0], func(r types.Resume) (types.Resume, error) {
		return editing.RemoveSkill(r, args[1]), nil
	})
}
