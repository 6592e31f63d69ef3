package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/quill/internal/console"
	"github.com/yndnr/quill/internal/plugin"
	"github.com/yndnr/quill/internal/site"
)

// CommandPlugin exposes a CLI command through the plugin manager.
type CommandPlugin struct {
	Command *cli.Command
}

// Name returns the command name.
func (p *CommandPlugin) Name() string { return p.Command.Name }

// Usage returns the one-line help of the command.
func (p *CommandPlugin) Usage() string { return p.Command.Usage }

// Aliases returns the alternative names of the command.
func (p *CommandPlugin) Aliases() []string { return p.Command.Aliases }

func (p *CommandPlugin) String() string { return p.Command.Name + ": " + p.Command.Usage }

// registerCommands registers every command under the Command category.
func registerCommands(m *plugin.Manager, cmds []*cli.Command) error {
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		if err := m.Register(plugin.CategoryCommand, &CommandPlugin{Command: cmd}); err != nil {
			return fmt.Errorf("register command %q: %w", cmd.Name, err)
		}
	}
	return nil
}

// siteHost adapts a site to the console host interface.
type siteHost struct {
	site *site.Site
}

func (h siteHost) ScanPosts() error { return h.site.ScanPosts() }

func (h siteHost) PluginsOfCategory(category string) []console.PluginInfo {
	infos := h.site.Plugins().OfCategory(plugin.Category(category))
	out := make([]console.PluginInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, console.PluginInfo{Name: info.Name, Object: info.Object})
	}
	return out
}

func (h siteHost) Config() any { return h.site.Config() }

func (h siteHost) Version() string { return h.site.Version() }

func (h siteHost) Instance() any { return h.site }
