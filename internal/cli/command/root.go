package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/quill/internal/cli/output"
	"github.com/yndnr/quill/internal/config"
	"github.com/yndnr/quill/internal/infra/buildinfo"
	"github.com/yndnr/quill/internal/infra/confloader"
	"github.com/yndnr/quill/internal/site"
	"github.com/yndnr/quill/internal/telemetry/logger"
	"github.com/yndnr/quill/internal/telemetry/metric"
)

// Metadata keys set by the Before hook.
const (
	metaSite    = "site"
	metaLogger  = "logger"
	metaMetrics = "metrics"
	metaLoader  = "loader"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "quill",
		Usage:   "Quill static site engine",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ConsoleCommand(),
			PostsCommand(),
			AutoCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: before,
		After:  after,
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "site-dir",
			Aliases: []string{"C"},
			Usage:   "Site directory",
			EnvVars: []string{"QUILL_SITE_DIR"},
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (default: <site-dir>/" + config.DefaultFileName + ")",
			EnvVars: []string{"QUILL_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error (overrides log.level)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	SiteDir string
	Config  string

	// Output format
	Output string // table, json, yaml
	Wide   bool

	LogLevel string
	Verbose  bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		SiteDir:  c.String("site-dir"),
		Config:   c.String("config"),
		Output:   c.String("output"),
		Wide:     c.Bool("wide"),
		LogLevel: c.String("log-level"),
		Verbose:  c.Bool("verbose"),
	}
}

// before loads the configuration and builds the site shared by all
// commands.
func before(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	if _, err := output.ParseFormat(flags.Output); err != nil {
		return err
	}

	cfg, loader, err := loadConfig(flags)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: errWriter(c),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	metrics := metric.NewRegistry()

	s, err := site.New(flags.SiteDir, cfg,
		site.WithLogger(log),
		site.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}
	if err := registerCommands(s.Plugins(), c.App.Commands); err != nil {
		return err
	}

	c.App.Metadata[metaSite] = s
	c.App.Metadata[metaLogger] = log
	c.App.Metadata[metaMetrics] = metrics
	c.App.Metadata[metaLoader] = loader

	log.Debug("site loaded", "dir", flags.SiteDir, "config", loader.FilePath())
	return nil
}

// after exports metrics when a textfile is configured.
func after(c *cli.Context) error {
	s := GetSite(c)
	metrics := GetMetrics(c)
	if s == nil || metrics == nil || s.Config().Metrics.Textfile == "" {
		return nil
	}

	if err := metrics.WriteTextfile(s.Config().Metrics.Textfile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// loadConfig layers defaults, the config file, QUILL_* variables and
// flags. The returned loader records the file read and each key's source.
func loadConfig(flags *GlobalFlags) (*config.SiteConfig, *confloader.Loader, error) {
	path := flags.Config
	if path == "" {
		candidate := filepath.Join(flags.SiteDir, config.DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("stat config: %w", err)
		}
	}

	cfg := config.Default()
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithEnvIgnore("QUILL_SITE_DIR"),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, nil, err
	}

	overrides := make(map[string]any)
	if flags.LogLevel != "" {
		overrides["log.level"] = flags.LogLevel
	}
	if flags.Verbose {
		overrides["log.level"] = "debug"
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	if err := config.Verify(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loader, nil
}

// GetSite retrieves the site from context.
func GetSite(c *cli.Context) *site.Site {
	if s, ok := c.App.Metadata[metaSite].(*site.Site); ok {
		return s
	}
	return nil
}

// GetLogger retrieves the logger from context.
func GetLogger(c *cli.Context) logger.Logger {
	if l, ok := c.App.Metadata[metaLogger].(logger.Logger); ok {
		return l
	}
	return logger.Default()
}

// GetMetrics retrieves the metrics registry from context.
func GetMetrics(c *cli.Context) *metric.Registry {
	if m, ok := c.App.Metadata[metaMetrics].(*metric.Registry); ok {
		return m
	}
	return nil
}

// GetLoader returns the configuration loader used by the Before hook.
func GetLoader(c *cli.Context) *confloader.Loader {
	if l, ok := c.App.Metadata[metaLoader].(*confloader.Loader); ok {
		return l
	}
	return nil
}

// GetConfigPath returns the config file read by the Before hook, or "".
func GetConfigPath(c *cli.Context) string {
	if l := GetLoader(c); l != nil {
		return l.FilePath()
	}
	return ""
}

// requireSite returns the site or an error when Before did not run.
func requireSite(c *cli.Context) (*site.Site, error) {
	s := GetSite(c)
	if s == nil {
		return nil, errors.New("site not loaded")
	}
	return s, nil
}

// printFormatted writes data using the --output and --wide flags.
func printFormatted(c *cli.Context, data any) error {
	flags := ParseGlobalFlags(c)
	format, err := output.ParseFormat(flags.Output)
	if err != nil {
		return err
	}
	return output.NewFormatter(format, flags.Wide).Format(writer(c), data)
}

func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

func reader(c *cli.Context) io.Reader {
	if c.App.Reader != nil {
		return c.App.Reader
	}
	return os.Stdin
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
