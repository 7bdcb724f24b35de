package main

import (
	"fmt"
	"os"

	"github.com/jonathan/career-pulse/internal/preview"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <id>",
	Short: "Render a resume as plain text or HTML",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

var (
	previewHTML   bool
	previewOutput string
)

func init() {
	previewCmd.Flags().BoolVar(&previewHTML, "html", false, "Render HTML instead of plain text")
	previewCmd.Flags().StringVarP(&previewOutput, "out", "o", "", "Write to a file instead of stdout")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	r, err := sess.resume(args[0])
	if err != nil {
		return err
	}

	render := preview.RenderText
	if previewHTML {
		render = preview.RenderHTML
	}
	out, err := render(r)
	if err != nil {
		return err
	}

	if previewOutput != "" {
		if err := os.WriteFile(previewOutput, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write preview to %s: %w", previewOutput, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", previewOutput)
		return nil
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
