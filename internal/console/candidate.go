package console

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Shell names, as used by the command-line flags.
const (
	ShellYaegi = "yaegi"
	ShellLua   = "lua"
	ShellPlain = "plain"
)

// LaunchFunc starts a shell bound to ec and blocks until the user exits.
type LaunchFunc func(ctx context.Context, ec *ExecutionContext, banner string) error

// Candidate is one interactive shell the selector may launch.
type Candidate struct {
	// Name is the flag-level identifier (yaegi, lua, plain).
	Name string

	// Display is the name shown in the banner.
	Display string

	// Library is the import path of the backing library, empty when none.
	Library string

	// Available reports whether the backing library is compiled in.
	Available func() bool

	Launch LaunchFunc
}

// Feature describes what the candidate provides, for diagnostics.
func (c Candidate) Feature() string {
	return "use the " + c.Display + " console"
}

func (c Candidate) available() bool {
	return c.Available == nil || c.Available()
}

// IO holds the streams a shell reads and writes.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdIO returns the process standard streams.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Banner returns the line printed when a shell starts.
func Banner(version, display string) string {
	return fmt.Sprintf("Quill v%s -- %s Console (conf = configuration, SITE = site engine, commands = quill commands)",
		version, display)
}

// PlainConfig configures the plain shell.
type PlainConfig struct {
	// HistoryFile persists input lines; empty keeps them in memory.
	HistoryFile string
	HistorySize int

	// StartupEnv names the variable holding a startup script path.
	StartupEnv string

	// Format is the initial result format (table, json, yaml).
	Format string
}

// DefaultStartupEnv is the variable read for the plain shell startup script.
const DefaultStartupEnv = "QUILL_STARTUP"

// DefaultCandidates returns the shells in priority order: yaegi, lua, plain.
func DefaultCandidates(streams IO, plain PlainConfig, opts ...Option) []Candidate {
	return []Candidate{
		yaegiCandidate(streams),
		luaCandidate(streams),
		plainCandidate(streams, plain, opts...),
	}
}
