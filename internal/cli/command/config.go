package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/quill/internal/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"cfg"},
		Usage:   "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration (secrets masked)",
				Action: configShow,
			},
			{
				Name:      "get",
				Usage:     "Print one configuration value",
				ArgsUsage: "KEY",
				Action:    configGet,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file in use",
				Action: configPath,
			},
			{
				Name:   "sources",
				Usage:  "List keys set by the file, QUILL_* variables or flags",
				Action: configSources,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	s, err := requireSite(c)
	if err != nil {
		return err
	}
	return printFormatted(c, config.Sanitize(s.Config()))
}

func configGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: config get KEY")
	}
	s, err := requireSite(c)
	if err != nil {
		return err
	}

	value, err := lookupKey(config.Sanitize(s.Config()), c.Args().First())
	if err != nil {
		return err
	}

	if m, ok := value.(map[string]any); ok {
		return printFormatted(c, m)
	}
	if list, ok := value.([]any); ok {
		parts := make([]string, len(list))
		for i, v := range list {
			parts[i] = fmt.Sprint(v)
		}
		value = strings.Join(parts, ",")
	}
	_, err = fmt.Fprintln(writer(c), value)
	return err
}

func configPath(c *cli.Context) error {
	path := GetConfigPath(c)
	if path == "" {
		path = "(defaults, no configuration file)"
	}
	_, err := fmt.Fprintln(writer(c), path)
	return err
}

func configSources(c *cli.Context) error {
	loader := GetLoader(c)
	if loader == nil {
		return errors.New("configuration not loaded")
	}
	origins := loader.Origins()
	if len(origins) == 0 && ParseGlobalFlags(c).Output == "table" {
		_, err := fmt.Fprintln(writer(c), "All values are defaults")
		return err
	}
	return printFormatted(c, origins)
}

// lookupKey resolves a dotted key such as content.posts_dir against the
// YAML form of cfg.
func lookupKey(cfg *config.SiteConfig, key string) (any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	var cur any = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unknown config key %q", key)
		}
		if cur, ok = m[part]; !ok {
			return nil, fmt.Errorf("unknown config key %q", key)
		}
	}
	return cur, nil
}
