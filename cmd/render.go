package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/meysamhadeli/teamboard/constants/lipgloss"
	"github.com/meysamhadeli/teamboard/render"
	"github.com/meysamhadeli/teamboard/render/terminal"
	"github.com/meysamhadeli/teamboard/utils"
	"github.com/spf13/cobra"
)

const (
	formatTerminal = "terminal"
	formatJSON     = "json"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the roster table once and exit.",
	Long: `The 'render' subcommand reads the roster file once and prints a single frame.
With --format json it prints the computed layout and every draw call instead of the table.`,
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")

		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			os.Exit(1)
		}

		if err := renderOnce(rootDependencies, format, os.Stdout); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			os.Exit(1)
		}
	},
}

func init() {
	renderCmd.Flags().String("format", formatTerminal, "Output format: 'terminal' (styled table) or 'json' (layout and draw calls)")
	rootCmd.AddCommand(renderCmd)
}

type renderDump struct {
	ViewportWidth int              `json:"viewport_width"`
	Layout        render.Layout    `json:"layout"`
	Draws         *render.Recorder `json:"draws"`
}

func renderOnce(rootDependencies *RootDependencies, format string, w io.Writer) error {
	cfg := rootDependencies.Config
	width := utils.ViewportWidth(cfg.ViewportWidth, cfg.PixelsPerColumn)
	table := rootDependencies.Source.CurrentTable()

	switch format {
	case formatTerminal:
		surface := terminal.NewSurface(width, 0, cfg.PixelsPerColumn)
		render.Render(rootDependencies.RenderContext, surface, table, width)
		return surface.Flush(w)
	case formatJSON:
		recorder := render.NewRecorder()
		layout := render.Render(rootDependencies.RenderContext, recorder, table, width)

		data, err := json.MarshalIndent(renderDump{ViewportWidth: width, Layout: layout, Draws: recorder}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode frame: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown format '%s', use '%s' or '%s'", format, formatTerminal, formatJSON)
	}
}
