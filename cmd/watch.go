package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/meysamhadeli/teamboard/constants/lipgloss"
	"github.com/meysamhadeli/teamboard/render"
	"github.com/meysamhadeli/teamboard/render/terminal"
	"github.com/meysamhadeli/teamboard/roster"
	"github.com/meysamhadeli/teamboard/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const clearScreen = "\033[H\033[2J"

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the roster as a live table that refreshes when the file changes.",
	Long: `The 'watch' subcommand redraws the roster table every tick. The file is checked each tick and
whenever the filesystem reports a change to it, but it is only re-parsed when its content digest differs
from the last successful read. Send SIGHUP to force a re-parse. Press Ctrl+C to exit.`,
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			os.Exit(1)
		}
		handleWatchCommand(cmd.Context(), rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func handleWatchCommand(parent context.Context, rootDependencies *RootDependencies) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	go utils.GracefulShutdown(ctx, cancel, func() {
		rootDependencies.Logger.Debug("Shutting down watch loop")
	})

	cfg := rootDependencies.Config

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)
	spinnerLoad, _ := spinner.Start("Loading roster...")

	changes, err := roster.Notify(ctx, cfg.RosterFile, rootDependencies.Logger)
	if err != nil {
		rootDependencies.Logger.Warn("File notifications unavailable, falling back to polling",
			rootDependencies.Logger.Args("path", cfg.RosterFile, "error", err))
	}

	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer signal.Stop(hangup)

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	rootDependencies.Source.CurrentTable()
	if spinnerLoad != nil {
		_ = spinnerLoad.Stop()
	}

	for {
		if err := drawFrame(rootDependencies, os.Stdout); err != nil {
			rootDependencies.Logger.Error("Failed to draw frame", rootDependencies.Logger.Args("error", err))
		}

		select {
		case <-ctx.Done():
			fmt.Println(lipgloss.BoxStyle.Render(formatStats(rootDependencies.Source.Stats())))
			return
		case <-ticker.C:
		case _, ok := <-changes:
			if !ok {
				changes = nil
			}
		case <-hangup:
			handleHangup(rootDependencies)
		}
	}
}

// handleHangup forces the next tick to re-parse and starts a fresh stats window.
func handleHangup(rootDependencies *RootDependencies) {
	rootDependencies.Logger.Info("Forcing roster reload")
	rootDependencies.Source.Invalidate()
	rootDependencies.Source.ResetStats()
}

// drawFrame runs one tick: check the file, lay out the table and present it.
func drawFrame(rootDependencies *RootDependencies, w io.Writer) error {
	cfg := rootDependencies.Config
	width := utils.ViewportWidth(cfg.ViewportWidth, cfg.PixelsPerColumn)

	surface := terminal.NewSurface(width, utils.ViewportLines(), cfg.PixelsPerColumn)
	render.Render(rootDependencies.RenderContext, surface, rootDependencies.Source.CurrentTable(), width)

	if _, err := fmt.Fprint(w, clearScreen); err != nil {
		return err
	}
	return surface.Flush(w)
}

func formatStats(stats map[string]interface{}) string {
	lines := []string{
		fmt.Sprintf("Roster: %v", stats["path"]),
		fmt.Sprintf("Reads: %v (cache hits: %v, reparses: %v, failures: %v)", stats["total_reads"], stats["cache_hits"], stats["reparses"], stats["failures"]),
		fmt.Sprintf("Skipped while busy: %v", stats["skipped_busy"]),
	}
	if hitRate, ok := stats["hit_rate_percent"].(float64); ok {
		lines = append(lines, fmt.Sprintf("Hit rate: %.1f%%", hitRate))
	}
	if uptime, ok := stats["uptime_human"].(string); ok {
		lines = append(lines, fmt.Sprintf("Uptime: %s", uptime))
	}
	return strings.Join(lines, "\n")
}
