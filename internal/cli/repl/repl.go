package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/yndnr/quill/internal/cli/output"
	"github.com/yndnr/quill/internal/telemetry/logger"
)

// DefaultPrompt is the input prompt.
const DefaultPrompt = ">>> "

var (
	errInterrupt = errors.New("interrupt")

	assignPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*([^=].*)$`)
)

// REPL is the plain interactive shell.
type REPL struct {
	in     io.Reader
	output io.Writer
	errOut io.Writer

	prompt      string
	banner      string
	format      output.Format
	startupEnv  string
	lineEditing bool

	eval      *Evaluator
	completer *Completer
	history   *History
	logger    logger.Logger
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the input and output streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(r *REPL) {
		r.in = in
		r.output = out
		r.errOut = errOut
	}
}

// WithBanner sets the text printed before the first prompt.
func WithBanner(banner string) Option {
	return func(r *REPL) {
		r.banner = banner
	}
}

// WithPrompt sets the input prompt.
func WithPrompt(prompt string) Option {
	return func(r *REPL) {
		r.prompt = prompt
	}
}

// WithNamespace binds the names available to expressions.
func WithNamespace(ns map[string]any) Option {
	return func(r *REPL) {
		r.eval = NewEvaluator(ns)
	}
}

// WithHistory sets the input history.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// WithFormat sets the initial result format.
func WithFormat(f output.Format) Option {
	return func(r *REPL) {
		r.format = f
	}
}

// WithStartupEnv names the environment variable holding a startup script.
func WithStartupEnv(name string) Option {
	return func(r *REPL) {
		r.startupEnv = name
	}
}

// WithLineEditing enables or disables readline when input is a terminal.
func WithLineEditing(enabled bool) Option {
	return func(r *REPL) {
		r.lineEditing = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *REPL) {
		r.logger = l
	}
}

// New creates a new REPL instance.
func New(opts ...Option) *REPL {
	r := &REPL{
		in:          os.Stdin,
		output:      os.Stdout,
		errOut:      os.Stderr,
		prompt:      DefaultPrompt,
		format:      output.FormatTable,
		lineEditing: true,
		eval:        NewEvaluator(nil),
		history:     NewHistory("", DefaultHistorySize),
		logger:      logger.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}
	r.completer = NewCompleter(r.eval)

	return r
}

// Run prints the banner, runs the startup script and reads lines until
// exit, quit or end of input.
func (r *REPL) Run(ctx context.Context) error {
	log := r.logger.WithContext(ctx)

	if r.banner != "" {
		fmt.Fprintln(r.output, r.banner)
	}

	if err := r.history.Load(); err != nil {
		log.Debug("history not loaded", "file", r.history.File(), "error", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			log.Debug("history not saved", "file", r.history.File(), "error", err)
		}
	}()

	r.runStartup(log)

	lr := r.newLineReader(log)
	defer lr.Close()

	for {
		line, err := lr.ReadLine()
		if errors.Is(err, errInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.Execute(line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

// Execute runs one input line and prints its result.
func (r *REPL) Execute(line string) error {
	return r.execute(line, r.output)
}

func (r *REPL) execute(line string, w io.Writer) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "help":
		return r.help(w)
	case "dir":
		return r.dir(w, strings.TrimSpace(strings.TrimPrefix(line, "dir")))
	case ":format":
		if len(fields) == 1 {
			_, err := fmt.Fprintln(w, r.format)
			return err
		}
		f, err := output.ParseFormat(fields[1])
		if err != nil {
			return err
		}
		r.format = f
		return nil
	}

	if m := assignPattern.FindStringSubmatch(line); m != nil {
		v, err := r.eval.Eval(m[2])
		if err != nil {
			return err
		}
		r.eval.Set(m[1], v)
		return nil
	}

	v, err := r.eval.Eval(line)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return output.NewFormatter(r.format, true).Format(w, v)
}

func (r *REPL) help(w io.Writer) error {
	names := r.eval.Names()
	sort.Strings(names)

	vars := &output.Table{}
	vars.SetHeaders("NAME", "TYPE")
	for _, name := range names {
		v, _ := r.eval.Lookup(name)
		vars.AddRow(name, fmt.Sprintf("%T", v))
	}
	if err := vars.Render(w); err != nil {
		return err
	}

	fmt.Fprintln(w)
	builtins := &output.Table{}
	builtins.AddRow("help", "show this help")
	builtins.AddRow("dir [EXPR]", "list names, or the members of EXPR")
	builtins.AddRow(":format [FORMAT]", "show or set the result format (table, json, yaml)")
	builtins.AddRow("NAME = EXPR", "bind the result of EXPR to NAME")
	builtins.AddRow("exit, quit", "leave the console")
	return builtins.Render(w)
}

func (r *REPL) dir(w io.Writer, expr string) error {
	var names []string
	if expr == "" {
		names = r.eval.Names()
		sort.Strings(names)
	} else {
		v, err := r.eval.Eval(expr)
		if err != nil {
			return err
		}
		names = Members(v)
	}

	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}

// runStartup evaluates the script named by the startup variable. A missing
// or unreadable file and failing lines are ignored; results are not printed.
func (r *REPL) runStartup(log logger.Logger) {
	if r.startupEnv == "" {
		return
	}
	path := os.Getenv(r.startupEnv)
	if path == "" {
		return
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		log.Debug("startup script skipped", "path", path, "error", err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Debug("startup script skipped", "path", path, "error", err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if err := r.execute(line, io.Discard); err != nil {
			log.Debug("startup line failed", "path", path, "line", n, "error", err)
		}
	}
}

// lineReader yields input lines without their trailing newline.
type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

// newLineReader uses readline when input is a terminal and falls back to
// buffered reads on any failure.
func (r *REPL) newLineReader(log logger.Logger) lineReader {
	if r.lineEditing {
		if f, ok := r.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          r.prompt,
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				HistoryLimit:    r.history.maxSize,
				AutoComplete:    r.completer,
				Stdin:           f,
				Stdout:          r.output,
				Stderr:          r.errOut,
			})
			if err == nil {
				for _, entry := range r.history.Entries() {
					rl.SaveHistory(entry)
				}
				return &editingReader{rl: rl}
			}
			log.Debug("line editing unavailable", "error", err)
		}
	}

	return &bufferedReader{
		reader: bufio.NewReader(r.in),
		output: r.output,
		prompt: r.prompt,
	}
}

type bufferedReader struct {
	reader *bufio.Reader
	output io.Writer
	prompt string
}

func (b *bufferedReader) ReadLine() (string, error) {
	fmt.Fprint(b.output, b.prompt)

	line, err := b.reader.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		return line, nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

func (b *bufferedReader) Close() error { return nil }

type editingReader struct {
	rl *readline.Instance
}

func (e *editingReader) ReadLine() (string, error) {
	line, err := e.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", errInterrupt
	}
	return line, err
}

func (e *editingReader) Close() error { return e.rl.Close() }
