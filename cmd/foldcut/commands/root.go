package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/DrSkyle/foldcut/pkg/config"
	"github.com/DrSkyle/foldcut/pkg/telemetry"
	"github.com/DrSkyle/foldcut/pkg/version"
)

var (
	cfgFile  string
	verbose  bool
	logFile  string
	jsonLogs bool

	v = config.NewViper()

	cfg config.Config

	shutdownTelemetry func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "foldcut",
	Short: "Crease pattern editor for fold-and-cut",
	Long: `foldcut - Crease Pattern Editor

Draw fold-and-cut crease patterns and check them before folding.`,
	Version:            version.Current,
	SilenceUsage:       true,
	SilenceErrors:      true,
	Args:               cobra.NoArgs,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runEdit,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, dangerStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.foldcut.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")

	addEditFlags(rootCmd)

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig points viper at the config file. A missing default file is fine.
func initConfig() {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".foldcut.yaml"))
		v.SetConfigType("yaml")
	}
}

// setup loads configuration and starts tracing before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !(errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded

	shutdown, err := telemetry.Init(cmd.Context(), telemetry.Settings{
		ServiceName:    version.AppName,
		ServiceVersion: version.Current,
		Endpoint:       cfg.Telemetry.Endpoint,
	})
	if err != nil {
		return err
	}
	shutdownTelemetry = shutdown
	return nil
}

// teardown flushes spans.
func teardown(cmd *cobra.Command, args []string) error {
	if shutdownTelemetry == nil {
		return nil
	}
	return shutdownTelemetry(cmd.Context())
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF99")).
			MarginBottom(1)

	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF99")).Bold(true)
	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0055")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

func renderHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("FOLDCUT %s", version.Current)))
	fmt.Fprintln(out, "Crease pattern editor for fold-and-cut.")

	fmt.Fprintln(out, titleStyle.Render("USAGE"))
	fmt.Fprintf(out, "  %s\n\n", cmd.UseLine())

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(out, titleStyle.Render("COMMANDS"))
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() {
				fmt.Fprintf(out, "  %-12s %s\n", c.Name(), c.Short)
			}
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, titleStyle.Render("EXAMPLES"))
		fmt.Fprintln(out, "  foldcut --load star.hcl          # Edit a pattern in the terminal")
		fmt.Fprintln(out, "  foldcut check --strict star.hcl  # CI: fail on structural errors")
		fmt.Fprintln(out, "  foldcut render -o star.svg star.hcl")
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, titleStyle.Render("FLAGS"))
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		line := fmt.Sprintf("  --%-15s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			line += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Fprintln(out, flagStyle.Render(line))
	})
	fmt.Fprintln(out)
}
