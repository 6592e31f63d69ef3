package command

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/quill/internal/cli/repl"
	"github.com/yndnr/quill/internal/console"
	"github.com/yndnr/quill/internal/telemetry/logger"
)

// ConsoleCommand returns the console command.
func ConsoleCommand() *cli.Command {
	return &cli.Command{
		Name:  "console",
		Usage: "Open an interactive console bound to the site",
		Description: "Binds conf, SITE, Quill and commands and starts the first available shell:\n" +
			"yaegi (Go), lua, then the built-in plain shell.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yaegi",
				Aliases: []string{"g"},
				Usage:   "Use the Go shell (yaegi)",
			},
			&cli.BoolFlag{
				Name:    "lua",
				Aliases: []string{"l"},
				Usage:   "Use the Lua shell",
			},
			&cli.BoolFlag{
				Name:    "plain",
				Aliases: []string{"p"},
				Usage:   "Use the plain shell",
			},
		},
		Action: runConsole,
	}
}

func runConsole(c *cli.Context) error {
	if c.NArg() > 0 {
		return errors.New("console takes no arguments")
	}

	s, err := requireSite(c)
	if err != nil {
		return err
	}
	log := GetLogger(c)
	metrics := GetMetrics(c)
	ctx := logger.WithCommand(c.Context, "console")

	opts := []console.Option{console.WithLogger(log)}
	if metrics != nil {
		opts = append(opts, console.WithMetrics(metrics))
	}

	ec, err := console.NewBuilder(siteHost{site: s}, opts...).Build()
	if err != nil {
		return err
	}

	cfg := s.Config().Console
	historyFile := cfg.HistoryFile
	if historyFile == "" {
		historyFile = repl.DefaultHistoryFile()
	}

	streams := console.IO{In: reader(c), Out: writer(c), Err: errWriter(c)}
	candidates := console.DefaultCandidates(streams, console.PlainConfig{
		HistoryFile: historyFile,
		HistorySize: cfg.HistorySize,
		StartupEnv:  console.DefaultStartupEnv,
		Format:      ParseGlobalFlags(c).Output,
	}, opts...)

	prefs := console.Preferences{
		Yaegi: c.Bool("yaegi"),
		Lua:   c.Bool("lua"),
		Plain: c.Bool("plain"),
	}
	return console.NewSelector(candidates, opts...).Run(ctx, prefs, ec)
}
