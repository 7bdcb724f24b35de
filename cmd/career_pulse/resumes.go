package main

import (
	"fmt"

	"github.com/jonathan/career-pulse/internal/editing"
	"github.com/jonathan/career-pulse/internal/observability"
	"github.com/jonathan/career-pulse/internal/types"
	"github.com/spf13/cobra"
)

var resumesCmd = &cobra.Command{
	Use:   "resumes",
	Short: "List, create, show, rename and delete resumes",
}

var resumesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every resume",
	Args:  cobra.NoArgs,
	RunE:  runResumesList,
}

var resumesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a blank resume, or a copy of the sample with --sample",
	Args:  cobra.NoArgs,
	RunE:  runResumesCreate,
}

var resumesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one resume with the indexes edit commands use",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesShow,
}

var resumesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesDelete,
}

var resumesRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Change a resume's display name",
	Args:  cobra.ExactArgs(2),
	RunE:  runResumesRename,
}

var (
	createSample bool
	showJSON     bool
)

func init() {
	resumesCreateCmd.Flags().BoolVar(&createSample, "sample", false, "Start from the sample resume")
	resumesShowCmd.Flags().BoolVar(&showJSON, "json", false, "Print the full resume as JSON")

	resumesCmd.AddCommand(resumesListCmd, resumesCreateCmd, resumesShowCmd, resumesDeleteCmd, resumesRenameCmd)
	rootCmd.AddCommand(resumesCmd)
}

func runResumesList(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	observability.NewPrinter(cmd.OutOrStdout()).PrintResumeList(sess.store.List())
	return nil
}

func runResumesCreate(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	var id string
	if createSample {
		id = sess.store.CreateFrom(cmd.Context(), types.NewSampleResume())
	} else {
		id = sess.store.Create(cmd.Context())
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func runResumesShow(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	r, err := sess.resume(args[0])
	if err != nil {
		return err
	}
	if showJSON {
		return writeJSON(cmd.OutOrStdout(), r)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintResume(&r)
	return nil
}

func runResumesDelete(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	if !sess.store.Delete(cmd.Context(), args[0]) {
		sess.log.Debug("nothing to delete", "id", args[0])
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func runResumesRename(cmd *cobra.Command, args []string) error {
	return editResume(cmd, args[0], func(r types.Resume) (types.Resume, error) {
		return editing.SetName(r, args[1]), nil
	})
}
