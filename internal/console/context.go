package console

import (
	"reflect"
	"sort"
)

// Namespace keys bound in every shell.
const (
	KeyConf     = "conf"
	KeySite     = "SITE"
	KeyAppType  = "Quill"
	KeyCommands = "commands"
)

// CommandRegistry maps command names to live command plugins. It is
// populated once by the Builder and read-only afterwards.
//
// When two plugins share a name, the one registered later with the host
// wins.
type CommandRegistry struct {
	entries map[string]any
}

func newCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		entries: make(map[string]any),
	}
}

// set stores cmd under name and returns the plugin it replaced, if any.
func (r *CommandRegistry) set(name string, cmd any) (any, bool) {
	prev, ok := r.entries[name]
	r.entries[name] = cmd
	return prev, ok
}

// Get returns the command plugin registered as name.
func (r *CommandRegistry) Get(name string) (any, bool) {
	cmd, ok := r.entries[name]
	return cmd, ok
}

// Names returns the registered names, sorted.
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *CommandRegistry) Len() int {
	return len(r.entries)
}

// Each calls fn for every command in name order.
func (r *CommandRegistry) Each(fn func(name string, cmd any)) {
	for _, name := range r.Names() {
		fn(name, r.entries[name])
	}
}

// Map returns a copy of the registry as a plain map.
func (r *CommandRegistry) Map() map[string]any {
	out := make(map[string]any, len(r.entries))
	for k, v := range r.entries {
		out[k] = v
	}
	return out
}

// ExecutionContext is the set of live objects bound into a shell session.
type ExecutionContext struct {
	Conf     any
	Site     any
	AppType  reflect.Type
	Commands *CommandRegistry

	// Version is the host version shown in the banner.
	Version string

	// SessionID identifies the console session in logs.
	SessionID string
}

// Namespace returns the shell bindings. The map is freshly allocated and
// holds exactly conf, SITE, Quill and commands.
func (ec *ExecutionContext) Namespace() map[string]any {
	return map[string]any{
		KeyConf:     ec.Conf,
		KeySite:     ec.Site,
		KeyAppType:  ec.AppType,
		KeyCommands: ec.Commands,
	}
}

// Names returns the namespace keys, sorted.
func Names() []string {
	return []string{KeyAppType, KeySite, KeyCommands, KeyConf}
}
