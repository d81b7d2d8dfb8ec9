package main

import (
	"fmt"
	"os"

	"github.com/hpungsan/lexis/internal/config"
	"github.com/hpungsan/lexis/internal/logger"
	"github.com/hpungsan/lexis/internal/mcp"
	"github.com/hpungsan/lexis/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"serve": true, "mcp": true, "analyze": true, "translate": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   _           _
  | | _____  _(_)___
  | |/ _ \ \/ / / __|
  | |  __/>  <| \__ \
  |_|\___/_/\_\_|___/

  String analysis service

  Usage: lexis <command> [options]
         lexis --help

  MCP server mode requires piped input.`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	baseDir, err := config.BaseDir()
	if err != nil {
		fatal("could not determine config directory: %v", err)
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		fatal("failed to load config: %v", err)
	}

	if isCLIMode() {
		app := newCLIApp(cfg)
		if err := app.Run(os.Args); err != nil {
			fatal("%v", err)
		}
		return
	}

	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'lexis --help' for usage.\n")
		os.Exit(1)
	}

	if err := runMCP(cfg); err != nil {
		fatal("%v", err)
	}
}

// runMCP serves the MCP tools over stdio until the client disconnects.
func runMCP(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

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

	return mcp.Run(st, cfg, log, Version)
}
