package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/DrSkyle/foldcut/pkg/graph"
	"github.com/DrSkyle/foldcut/pkg/policy"
	"github.com/DrSkyle/foldcut/pkg/telemetry"
)

// ErrPatternInvalid is returned by check --strict when structural errors remain.
var ErrPatternInvalid = errors.New("pattern has structural errors")

var (
	checkJSON   bool
	checkStrict bool
)

// CheckReport is the machine-readable result of check.
type CheckReport struct {
	File              string            `json:"file"`
	Vertices          int               `json:"vertices"`
	Edges             int               `json:"edges"`
	Components        int               `json:"components"`
	Errors            int               `json:"errors"`
	LowDegreeVertices []graph.VertexID  `json:"low_degree_vertices"`
	IntersectingPairs [][2]graph.EdgeID `json:"intersecting_pairs"`
	Findings          []policy.Finding  `json:"findings"`
	Summary           []string          `json:"summary"`
}

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate a pattern file",
	Long: `Load a pattern and report vertices missing edges, crossing edges and
policy findings. Useful in CI pipelines.

Example:
  foldcut check --strict --json star.hcl`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the report as JSON")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Exit non-zero when structural errors exist")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, span := telemetry.Tracer("foldcut/cli").Start(cmd.Context(), "check")
	defer span.End()
	span.SetAttributes(attribute.String("file", path))

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	sess, err := newSession(ctx, logger, 0)
	if err != nil {
		return err
	}
	if err := loadPattern(sess, logger, path); err != nil {
		span.RecordError(err)
		return err
	}

	report := buildReport(path, sess.Graph(), sess.Errors())
	span.SetAttributes(attribute.Int("errors", report.Errors), attribute.Int("findings", len(report.Findings)))

	out := cmd.OutOrStdout()
	if checkJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(cmd, report)
	}

	if checkStrict && report.Errors > 0 {
		return fmt.Errorf("%w: %s", ErrPatternInvalid, path)
	}
	return nil
}

func printReport(cmd *cobra.Command, r CheckReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d vertices, %d edges, %d piece(s)\n", r.File, r.Vertices, r.Edges, r.Components)

	style := dangerStyle
	if r.Errors == 0 {
		style = okStyle
	}
	for _, line := range r.Summary {
		fmt.Fprintln(out, style.Render(line))
	}

	for _, f := range r.Findings {
		where := fmt.Sprintf("vertex %d", f.Vertex)
		if f.Edge != graph.InvalidID {
			where = fmt.Sprintf("edge %d", f.Edge)
		}
		fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("[%s] %s: %s", f.RuleID, where, f.Message)))
	}
}
