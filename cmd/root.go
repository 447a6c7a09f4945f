package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/meysamhadeli/teamboard/config"
	"github.com/meysamhadeli/teamboard/constants/lipgloss"
	"github.com/meysamhadeli/teamboard/render"
	"github.com/meysamhadeli/teamboard/render/models"
	"github.com/meysamhadeli/teamboard/roster"
	"github.com/meysamhadeli/teamboard/roster/contracts"
	"github.com/meysamhadeli/teamboard/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// RootDependencies is everything a subcommand needs to read and draw the roster.
type RootDependencies struct {
	Cwd           string
	Config        *config.Config
	Logger        *pterm.Logger
	Source        contracts.ITableSource
	RenderContext *render.Context
}

var rootCmd = &cobra.Command{
	Use:   "teamboard",
	Short: "Display a team roster JSON file as a live table in the terminal.",
	Long: `teamboard reads a JSON roster (a title, column headers and member records) and draws it as a table.
The file is re-parsed only when its content digest changes, so it can be edited while the table is shown.
Trailing commas before a closing brace or bracket are tolerated.`,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			fmt.Println(config.DefaultConfig.Version)
			return
		}

		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			os.Exit(1)
		}
		handleWatchCommand(cmd.Context(), rootDependencies)
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}

func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}

	cfg, err := config.LoadConfigWithCache(cmd.Root(), cwd)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return nil
	}

	return newRootDependencies(cwd, cfg)
}

func newRootDependencies(cwd string, cfg *config.Config) *RootDependencies {
	logger := utils.NewLogger(cfg.LogLevel, os.Stderr)

	// Validate already rejected unknown algorithms.
	digester, _ := roster.DigesterByName(cfg.Digest)

	return &RootDependencies{
		Cwd:    cwd,
		Config: cfg,
		Logger: logger,
		Source: roster.NewWatcher(cfg.RosterFile, roster.Options{
			Digester: digester,
			Logger:   logger,
		}),
		RenderContext: newRenderContext(cfg.Theme),
	}
}

func newRenderContext(theme *config.ThemeConfig) *render.Context {
	if theme == nil {
		return render.DefaultContext()
	}

	text := models.Color(theme.TextColor)
	return &render.Context{
		TitleFill:   models.Color(theme.TitleColor),
		HeaderFill:  models.Color(theme.HeaderColor),
		ContentFill: models.Color(theme.ContentColor),
		TitleText:   models.TextStyle{Size: theme.TitleFontSize, Color: text, Bold: true},
		HeaderText:  models.TextStyle{Size: theme.HeaderFontSize, Color: text, Bold: true},
		ContentText: models.TextStyle{Size: theme.ContentFontSize, Color: text},
	}
}
