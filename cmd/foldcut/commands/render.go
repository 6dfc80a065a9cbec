package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/DrSkyle/foldcut/pkg/render"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a pattern as SVG",
	Long: `Render a pattern as SVG. Vertices missing edges get red triangles and
crossings get red X marks.

Example:
  foldcut render -o star.svg star.hcl`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "", "Output file (default stdout)")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	sess, err := newSession(cmd.Context(), logger, 0)
	if err != nil {
		return err
	}
	if err := loadPattern(sess, logger, args[0]); err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if renderOut != "" {
		f, err := os.Create(renderOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := render.SVG(w, sess.Graph(), sess.Errors(), cfg.Render()); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if renderOut != "" {
		logger.Info("SVG written", "path", renderOut)
	}
	return nil
}
