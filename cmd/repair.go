package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/meysamhadeli/teamboard/constants/lipgloss"
	"github.com/meysamhadeli/teamboard/roster"
	"github.com/meysamhadeli/teamboard/utils"
	"github.com/spf13/cobra"
)

var repairCmd = &cobra.Command{
	Use:   "repair [file]",
	Short: "Strip trailing commas from a roster file.",
	Long: `The 'repair' subcommand removes commas that directly precede a closing brace or bracket
and prints the result with syntax highlighting. Use --write to save the repaired document in place.
Without an argument the configured roster file is used.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		write, _ := cmd.Flags().GetBool("write")
		force, _ := cmd.Flags().GetBool("force")

		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			os.Exit(1)
		}

		path := rootDependencies.Config.RosterFile
		if len(args) == 1 {
			path = args[0]
		}

		options := repairOptions{write: write, force: force, reader: bufio.NewReader(os.Stdin)}
		if err := handleRepairCommand(cmd.Context(), rootDependencies, path, options, os.Stdout); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			os.Exit(1)
		}
	},
}

func init() {
	repairCmd.Flags().BoolP("write", "w", false, "Write the repaired document back to the file")
	repairCmd.Flags().Bool("force", false, "Write without asking for confirmation")
	rootCmd.AddCommand(repairCmd)
}

type repairOptions struct {
	write  bool
	force  bool
	reader *bufio.Reader
}

func handleRepairCommand(ctx context.Context, rootDependencies *RootDependencies, path string, options repairOptions, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	repaired := roster.RepairTrailingCommas(content)

	if _, err := roster.ParseTable(repaired); err != nil {
		fmt.Fprintln(w, lipgloss.Yellow.Render(fmt.Sprintf("Warning: document is still not a valid roster: %v", err)))
	}

	if !options.write {
		highlighted, err := utils.HighlightJSONWithContext(ctx, string(repaired), rootDependencies.Config.Theme.Highlight)
		if err != nil {
			return fmt.Errorf("error rendering document: %w", err)
		}
		_, err = fmt.Fprintln(w, highlighted)
		return err
	}

	if string(repaired) == string(content) {
		fmt.Fprintln(w, lipgloss.Green.Render("✓ No trailing commas found."))
		return nil
	}

	if !options.force {
		accepted, err := utils.ConfirmPrompt(fmt.Sprintf("Overwrite %s", path), options.reader, w)
		if err != nil {
			return err
		}
		if !accepted {
			fmt.Fprintln(w, lipgloss.Yellow.Render("Repair cancelled."))
			return nil
		}
	}

	if err := os.WriteFile(path, repaired, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	rootDependencies.Logger.Info("Roster repaired", rootDependencies.Logger.Args("path", path))
	fmt.Fprintln(w, lipgloss.Green.Render("✓ Roster file repaired."))
	return nil
}
