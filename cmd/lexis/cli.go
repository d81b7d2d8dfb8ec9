package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hpungsan/lexis/internal/config"
	"github.com/hpungsan/lexis/internal/errors"
	"github.com/hpungsan/lexis/internal/logger"
	"github.com/hpungsan/lexis/internal/metrics"
	"github.com/hpungsan/lexis/internal/ops"
	"github.com/hpungsan/lexis/internal/store"
	"github.com/hpungsan/lexis/internal/web"
)

// maxStdinBytes bounds values piped to analyze.
const maxStdinBytes = 1 << 20

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "lexis",
		Usage:   "String analysis service",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(cfg),
			mcpCmd(cfg),
			analyzeCmd(cfg),
			translateCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Interface to listen on (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "API port (default from config)"},
			&cli.IntFlag{Name: "metrics-port", Usage: "Serve /metrics on a separate port"},
		},
		Action: func(c *cli.Context) error {
			serveCfg := config.Merge(cfg, &config.Config{
				Bind:        c.String("bind"),
				Port:        c.Int("port"),
				MetricsPort: c.Int("metrics-port"),
			})
			if err := serveCfg.Validate(); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, serveCfg)
		},
	}
}

// serve runs the API listener, plus the metrics listener when configured,
// until ctx is cancelled or either listener fails.
func serve(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	collector := metrics.New(st)
	h, err := web.NewHandlers(st, cfg, log, collector, Version)
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second
	log.Info("starting lexis",
		zap.String("version", Version),
		zap.String("store_backend", cfg.StoreBackend),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return web.Run(gctx, web.NewServer(h, cfg), log, timeout)
	})
	if cfg.MetricsPort != 0 {
		g.Go(func() error {
			return web.Run(gctx, web.NewMetricsServer(collector, cfg), log, timeout)
		})
	}
	return g.Wait()
}

// mcpCmd creates the mcp command.
func mcpCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server over stdio",
		Action: func(_ *cli.Context) error {
			return runMCP(cfg)
		},
	}
}

// analyzeCmd creates the analyze command.
func analyzeCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Print the properties of a string without storing it (reads stdin when no argument is given)",
		ArgsUsage: "[value]",
		Action: func(c *cli.Context) error {
			var value string
			switch {
			case c.NArg() > 0:
				value = c.Args().First()
			case stdinHasData():
				text, err := readStdin(maxStdinBytes)
				if err != nil {
					return outputError(err)
				}
				value = text
			default:
				return outputError(errors.NewMissingField(ops.FieldValue))
			}

			output, err := ops.Analyze(cfg, ops.AnalyzeInput{Value: value})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// translateCmd creates the translate command.
func translateCmd() *cli.Command {
	return &cli.Command{
		Name:      "translate",
		Usage:     "Show the filters a natural language query translates to",
		ArgsUsage: "<query...>",
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return outputError(errors.NewInvalidRequest("query is required"))
			}

			output, err := ops.Translate(ops.TranslateInput{Query: query})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	lErr := errors.As(err)
	return cli.Exit(fmt.Sprintf("[%s] %s", lErr.Code, lErr.Message), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads at most maxBytes from stdin. A single trailing newline is
// dropped so `echo value | lexis analyze` analyzes "value".
func readStdin(maxBytes int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, maxBytes+1))
	if err != nil {
		return "", errors.NewInternal(err)
	}
	if int64(len(data)) > maxBytes {
		return "", errors.NewInvalidRequest(fmt.Sprintf("stdin exceeds %d bytes", maxBytes))
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
