package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/DrSkyle/foldcut/pkg/fnc"
	"github.com/DrSkyle/foldcut/pkg/patternfile"
	"github.com/DrSkyle/foldcut/pkg/policy"
	"github.com/DrSkyle/foldcut/pkg/session"
)

// newLogger builds the CLI logger. Logs go to --log-file when given,
// otherwise to fallback. The returned func closes the log file.
func newLogger(fallback io.Writer) (*slog.Logger, func(), error) {
	out, closeFn := fallback, func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closeFn = f, func() { _ = f.Close() }
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonLogs {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// newSession builds an editing session from the loaded configuration.
// pickRadius raises the configured pick radius when positive.
func newSession(ctx context.Context, logger *slog.Logger, pickRadius float64) (*session.Session, error) {
	sc := cfg.Session()
	sc.PickRadius = max(sc.PickRadius, pickRadius)

	opts := []session.Option{
		session.WithConfig(sc),
		session.WithLogger(logger),
		session.WithContext(ctx),
	}
	if cfg.Policy.Enabled && len(cfg.Policy.Rules) > 0 {
		eng, err := policy.NewEngine(logger)
		if err != nil {
			return nil, err
		}
		if err := eng.Compile(cfg.Policy.Rules); err != nil {
			return nil, fmt.Errorf("compile policy rules: %w", err)
		}
		opts = append(opts, session.WithLinter(eng))
	}
	return session.New(opts...), nil
}

// loadPattern reads path and installs it through the state port.
func loadPattern(sess *session.Session, logger *slog.Logger, path string) error {
	raw, err := patternfile.Load(path)
	if err != nil {
		return err
	}
	if err := fnc.NewPort(sess, logger).SetState(raw); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("Pattern loaded", "path", path, "vertices", sess.Graph().VertexCount(), "edges", sess.Graph().EdgeCount())
	return nil
}
