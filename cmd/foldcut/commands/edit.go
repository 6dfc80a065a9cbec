package commands

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/DrSkyle/foldcut/pkg/fnc"
	"github.com/DrSkyle/foldcut/pkg/tui"
)

var (
	loadPath   string
	printState bool
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the terminal editor (default)",
	Long: `Open the crease pattern editor in the terminal.

Logs are discarded unless --log-file is set, so they never draw over the editor.

Example:
  foldcut edit --load star.hcl --print-state > star.json`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func init() {
	addEditFlags(editCmd)
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&loadPath, "load", "", "Pattern file to open (.json, .fold, .yaml, .hcl)")
	cmd.Flags().BoolVar(&printState, "print-state", false, "Print the final state as JSON on exit")
}

func runEdit(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := cfg.Canvas.Width, cfg.Canvas.Height
	sess, err := newSession(cmd.Context(), logger, tui.PickRadius(width, height))
	if err != nil {
		return err
	}
	if loadPath != "" {
		if err := loadPattern(sess, logger, loadPath); err != nil {
			return err
		}
	}

	model := tui.NewModel(sess, width, height, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	if printState {
		out, err := fnc.NewPort(sess, logger).GetStateJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	}
	return nil
}
