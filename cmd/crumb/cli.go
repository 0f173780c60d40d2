package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/crumb/internal/config"
	"github.com/hpungsan/crumb/internal/errors"
	"github.com/hpungsan/crumb/internal/ops"
	"github.com/hpungsan/crumb/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, fetcher ops.PageFetcher, logger *zap.Logger) *cli.App {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &cli.App{
		Name:    "crumb",
		Usage:   "Recipe capture from social media posts",
		Version: Version,
		Commands: []*cli.Command{
			addCmd(db),
			fetchCmd(db),
			captureCmd(db, cfg, fetcher),
			importCmd(db, cfg),
			updateCmd(db, cfg),
			deleteCmd(db),
			listCmd(db),
			latestCmd(db),
			searchCmd(db),
			extractCmd(),
			checkURLCmd(),
			serveCmd(db, cfg, logger),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a recipe from a post URL",
		ArgsUsage: "<url>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("source url is required"))
			}

			output, err := ops.Add(c.Context, db, ops.AddInput{SourceURL: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a recipe by ID",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-body", Usage: "Exclude body_text from output"},
		},
		Action: func(c *cli.Context) error {
			input := ops.FetchInput{ID: c.Args().First()}
			if c.Bool("no-body") {
				includeBody := false
				input.IncludeBody = &includeBody
			}

			output, err := ops.Fetch(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// captureOutput reports both capture steps run by the capture command.
type captureOutput struct {
	Image   *ops.AttachImageOutput `json:"image,omitempty"`
	Capture *ops.CaptureOutput     `json:"capture,omitempty"`
}

// captureCmd creates the capture command.
func captureCmd(db *sql.DB, cfg *config.Config, fetcher ops.PageFetcher) *cli.Command {
	return &cli.Command{
		Name:      "capture",
		Usage:     "Capture a recipe (reads OCR text from stdin)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Usage: "Screenshot file to attach"},
			&cli.StringFlag{Name: "page", Aliases: []string{"p"}, Usage: "Post URL to fetch the page text from"},
			&cli.StringFlag{Name: "html", Usage: "Saved post page HTML file"},
			&cli.BoolFlag{Name: "payload", Usage: "Treat stdin as a combined capture payload"},
		},
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			var result captureOutput

			if path := c.String("image"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("cannot read image: %v", err)))
				}
				img, err := ops.AttachImage(c.Context, db, cfg, ops.AttachImageInput{ID: id, Data: data})
				if err != nil {
					return outputError(err)
				}
				result.Image = img
			}

			input := ops.CaptureInput{ID: id, PageURL: c.String("page")}
			if path := c.String("html"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("cannot read html: %v", err)))
				}
				input.PageHTML = string(data)
			}
			if stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				if c.Bool("payload") {
					input.Payload = text
				} else {
					input.OCRText = text
				}
			}

			hasText := input.Payload != "" || input.OCRText != "" || input.PageHTML != "" || input.PageURL != ""
			if !hasText {
				if result.Image == nil {
					return outputError(errors.NewInvalidRequest("nothing to capture: pipe OCR text or pass --image, --page or --html"))
				}
				return outputJSON(result)
			}

			captured, err := ops.Capture(c.Context, db, cfg, fetcher, input)
			if err != nil {
				return outputError(err)
			}
			result.Capture = captured

			return outputJSON(result)
		},
	}
}

// importCmd creates the import command.
func importCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import screenshot OCR text into a recipe body (reads stdin)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: string(ops.ImportModeAppend), Usage: "Import mode: append|replace"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("text must be piped via stdin"))
			}

			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			output, err := ops.Import(c.Context, db, cfg, ops.ImportInput{
				ID:   c.Args().First(),
				Text: text,
				Mode: ops.ImportMode(c.String("mode")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// updateCmd creates the update command.
func updateCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Edit a recipe's title or body",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.BoolFlag{Name: "body-stdin", Usage: "Read new body text from stdin"},
		},
		Action: func(c *cli.Context) error {
			input := ops.UpdateInput{ID: c.Args().First()}

			if c.IsSet("title") {
				title := c.String("title")
				input.Title = &title
			}
			if c.Bool("body-stdin") {
				if !stdinHasData() {
					return outputError(errors.NewInvalidRequest("--body-stdin requires piped input"))
				}
				body, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.BodyText = &body
			}

			output, err := ops.Update(c.Context, db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Permanently delete a recipe and its image",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(c.Context, db, ops.DeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List recipes, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Max results"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Pagination offset"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, db, ops.ListInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// latestCmd creates the latest command.
func latestCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "latest",
		Usage: "Show the most recently added recipe",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "include-body", Usage: "Include body_text in output"},
		},
		Action: func(c *cli.Context) error {
			includeBody := c.Bool("include-body")
			output, err := ops.Latest(c.Context, db, ops.LatestInput{IncludeBody: &includeBody})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search recipe titles and bodies",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Max results"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Pagination offset"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Search(c.Context, db, ops.SearchInput{
				Query:  strings.Join(c.Args().Slice(), " "),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// extractCmd creates the extract command.
func extractCmd() *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "Run extraction over a capture payload from stdin without saving",
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("payload must be piped via stdin"))
			}

			payload, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			output, err := ops.Extract(ops.ExtractInput{Payload: payload})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// checkURLCmd creates the check-url command.
func checkURLCmd() *cli.Command {
	return &cli.Command{
		Name:      "check-url",
		Usage:     "Check whether a URL is a recognized post URL",
		ArgsUsage: "<url>",
		Action: func(c *cli.Context) error {
			output, err := ops.CheckURL(ops.CheckURLInput{URL: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config, logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the local web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Value: 8314, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv, err := web.NewServer(db, cfg, logger, Version, c.String("bind"), c.Int("port"))
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := web.Run(srv, logger); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
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
	if crumbErr, ok := err.(*errors.CrumbError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", crumbErr.Code, crumbErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
