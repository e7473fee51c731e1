package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/avelis/repoview/internal/config"
	"github.com/avelis/repoview/internal/errors"
	"github.com/avelis/repoview/internal/mirror"
	"github.com/avelis/repoview/internal/ops"
	"github.com/avelis/repoview/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(m *mirror.Mirror, db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "repoview",
		Usage:   "Mirrored-repository file and HTML analysis tools",
		Version: Version,
		Commands: []*cli.Command{
			syncCmd(m, db),
			catCmd(m, cfg),
			analyzeCmd(m, cfg),
			historyCmd(db),
			serveCmd(m, db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// syncCmd creates the sync command.
func syncCmd(m *mirror.Mirror, db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Clone or pull the mirrored repository",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "fresh", Usage: "Wipe the local mirror first and clone from scratch"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("fresh") {
				if err := m.Wipe(); err != nil {
					return outputError(err)
				}
			}

			output, err := ops.Sync(c.Context, db, m)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// catCmd creates the cat command.
func catCmd(m *mirror.Mirror, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "Print a file from the mirror (bounded by max_file_chars)",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "raw", Usage: "Print content only, no JSON envelope"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("path argument is required"))
			}

			output, err := ops.ReadFile(m, cfg, ops.ReadFileInput{Path: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("raw") {
				fmt.Print(output.Content)
				return nil
			}
			return outputJSON(output)
		},
	}
}

// analyzeCmd creates the analyze command.
func analyzeCmd(m *mirror.Mirror, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Extract classes, ids, and tags from an HTML file in the mirror",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("path argument is required"))
			}

			output, err := ops.Analyze(m, cfg, ops.AnalyzeInput{Path: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent sync attempts, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum number of entries"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.History(db, ops.HistoryInput{Limit: c.Int("limit")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command for the status/liveness server.
func serveCmd(m *mirror.Mirror, db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP status and liveness server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			bind := cfg.WebBind
			if c.String("bind") != "" {
				bind = c.String("bind")
			}
			port := cfg.WebPort
			if c.Int("port") != 0 {
				port = c.Int("port")
			}

			srv := web.NewServer(m, db, cfg, Version, bind, port)
			return web.Run(srv)
		},
	}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if rErr, ok := err.(*errors.RepoError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", rErr.Code, rErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
