package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hpungsan/crumb/internal/config"
	"github.com/hpungsan/crumb/internal/db"
	"github.com/hpungsan/crumb/internal/logging"
	"github.com/hpungsan/crumb/internal/mcp"
	"github.com/hpungsan/crumb/internal/page"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"add": true, "fetch": true, "capture": true, "import": true,
	"update": true, "delete": true, "list": true, "latest": true,
	"search": true, "extract": true, "check-url": true, "serve": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode(args []string) bool {
	if len(args) < 2 {
		return false // No args → MCP server
	}
	arg := args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion(args []string) bool {
	if len(args) < 2 {
		return false
	}
	arg := args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
    ___ _ __ _   _ _ __ ___ | |__
   / __| '__| | | | '_ ` + "`" + ` _ \| '_ \
  | (__| |  | |_| | | | | | | |_) |
   \___|_|   \__,_|_| |_| |_|_.__/

  Recipe capture from social media posts

  Usage: crumb <command> [options]
         crumb --help

  MCP server mode requires piped input.`)
}

// newFetcher builds the page fetcher from config.
func newFetcher(cfg *config.Config) *page.Fetcher {
	return page.NewFetcher(
		page.WithTimeout(cfg.PageTimeout()),
		page.WithMaxBytes(cfg.PageMaxBytes),
		page.WithUserAgent(cfg.UserAgent),
	)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion(os.Args) {
		app := newCLIApp(nil, nil, nil, zap.NewNop())
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(os.Args, filepath.Join(homeDir, ".crumb")))
}

// run starts the CLI or MCP server against the data in baseDir and returns
// the process exit code. It never calls os.Exit, so its defers always run.
func run(args []string, baseDir string) int {
	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to build logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Init(baseDir)
	if err != nil {
		logger.Error("failed to initialize database", zap.String("dir", baseDir), zap.Error(err))
		return 1
	}
	defer database.Close()
	db.ConfigurePool(database, cfg)

	fetcher := newFetcher(cfg)

	// CLI mode: known subcommand
	if isCLIMode(args) {
		app := newCLIApp(database, cfg, fetcher, logger)
		if err := app.Run(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", args[1])
		fmt.Fprintf(os.Stderr, "Run 'crumb --help' for usage.\n")
		return 1
	}

	// MCP server mode (default)
	if err := mcp.Run(database, cfg, fetcher, logger, Version); err != nil {
		logger.Error("mcp server stopped", zap.Error(err))
		return 1
	}
	return 0
}
