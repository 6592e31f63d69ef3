package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/yndnr/quill/internal/telemetry/logger"
)

// Preferences are the mutually exclusive shell flags.
type Preferences struct {
	Yaegi bool
	Lua   bool
	Plain bool
}

// requested returns the single requested shell name, or "" when none.
func (p Preferences) requested() (string, error) {
	var names []string
	if p.Yaegi {
		names = append(names, ShellYaegi)
	}
	if p.Lua {
		names = append(names, ShellLua)
	}
	if p.Plain {
		names = append(names, ShellPlain)
	}

	switch len(names) {
	case 0:
		return "", nil
	case 1:
		return names[0], nil
	default:
		return "", fmt.Errorf("%w: %v", ErrConflictingShells, names)
	}
}

// Selector chooses and launches one shell.
type Selector struct {
	candidates []Candidate
	opts       options
}

// NewSelector creates a Selector over candidates, highest priority first.
func NewSelector(candidates []Candidate, opts ...Option) *Selector {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Selector{candidates: candidates, opts: o}
}

// Candidates returns the candidates in priority order.
func (s *Selector) Candidates() []Candidate {
	out := make([]Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Run launches one shell with ec.
//
// A requested shell is launched or the call fails with a
// *MissingDependencyError; there is no fallback. Without a request the
// candidates are tried in order, unavailable ones are skipped, and the
// first available one is launched. Errors from a launched shell are
// returned unchanged.
func (s *Selector) Run(ctx context.Context, prefs Preferences, ec *ExecutionContext) error {
	ctx = logger.WithSessionID(ctx, ec.SessionID)
	log := s.opts.logger.WithContext(ctx)

	name, err := prefs.requested()
	if err != nil {
		s.recordFailure("conflicting_flags")
		return err
	}

	if name != "" {
		return s.runWillful(ctx, log, name, ec)
	}
	return s.runAuto(ctx, log, ec)
}

func (s *Selector) runWillful(ctx context.Context, log logger.Logger, name string, ec *ExecutionContext) error {
	c, ok := s.find(name)
	if !ok {
		s.recordFailure("unknown_shell")
		return fmt.Errorf("%w: %s", ErrUnknownShell, name)
	}

	if !c.available() {
		err := &MissingDependencyError{Shell: c.Name, Library: c.Library, Feature: c.Feature()}
		log.Error("requested shell is not available",
			"shell", c.Name,
			"library", c.Library,
			"feature", c.Feature(),
		)
		s.recordFailure("missing_dependency")
		return err
	}

	return s.launch(ctx, log, c, ec)
}

func (s *Selector) runAuto(ctx context.Context, log logger.Logger, ec *ExecutionContext) error {
	for _, c := range s.candidates {
		if !c.available() {
			log.Debug("shell unavailable, trying next", "shell", c.Name, "library", c.Library)
			if s.opts.metrics != nil {
				s.opts.metrics.CandidatesSkipped.WithLabelValues(c.Name).Inc()
			}
			continue
		}
		return s.launch(ctx, log, c, ec)
	}

	log.Error("no interactive shell available", "tried", len(s.candidates))
	s.recordFailure("exhausted")
	return ErrAllCandidatesExhausted
}

func (s *Selector) launch(ctx context.Context, log logger.Logger, c Candidate, ec *ExecutionContext) error {
	if s.opts.metrics != nil {
		s.opts.metrics.ConsoleSessions.WithLabelValues(c.Name).Inc()
	}
	log.Info("console session started", "shell", c.Name)

	err := c.Launch(ctx, ec, Banner(ec.Version, c.Display))
	if err != nil && !errors.Is(err, context.Canceled) {
		s.recordFailure("shell_error")
		log.Error("console session failed", "shell", c.Name, "error", err)
		return err
	}

	log.Info("console session ended", "shell", c.Name)
	return err
}

func (s *Selector) find(name string) (Candidate, bool) {
	for _, c := range s.candidates {
		if c.Name == name {
			return c, true
		}
	}
	return Candidate{}, false
}

func (s *Selector) recordFailure(reason string) {
	if s.opts.metrics != nil {
		s.opts.metrics.ConsoleFailures.WithLabelValues(reason).Inc()
	}
}
