package console

import (
	"context"

	"github.com/yndnr/quill/internal/cli/output"
	"github.com/yndnr/quill/internal/cli/repl"
)

// plainCandidate is always available.
func plainCandidate(streams IO, cfg PlainConfig, opts ...Option) Candidate {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return Candidate{
		Name:      ShellPlain,
		Display:   "Plain",
		Available: func() bool { return true },
		Launch: func(ctx context.Context, ec *ExecutionContext, banner string) error {
			format, err := output.ParseFormat(cfg.Format)
			if err != nil {
				format = output.FormatTable
			}

			shell := repl.New(
				repl.WithIO(streams.In, streams.Out, streams.Err),
				repl.WithBanner(banner),
				repl.WithNamespace(ec.Namespace()),
				repl.WithHistory(repl.NewHistory(cfg.HistoryFile, cfg.HistorySize)),
				repl.WithStartupEnv(cfg.StartupEnv),
				repl.WithFormat(format),
				repl.WithLogger(o.logger),
			)
			return shell.Run(ctx)
		},
	}
}
