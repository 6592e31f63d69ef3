package console

import (
	"fmt"
	"reflect"

	"github.com/oklog/ulid/v2"
)

// Builder assembles an ExecutionContext from a Host.
type Builder struct {
	host Host
	opts options
}

// NewBuilder creates a Builder for host.
func NewBuilder(host Host, opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{host: host, opts: o}
}

// Build scans the host's posts and gathers its live objects. Errors come
// only from the host.
func (b *Builder) Build() (*ExecutionContext, error) {
	if err := b.host.ScanPosts(); err != nil {
		return nil, fmt.Errorf("console: load site: %w", err)
	}

	commands := newCommandRegistry()
	for _, p := range b.host.PluginsOfCategory(CommandCategory) {
		if prev, shadowed := commands.set(p.Name, p.Object); shadowed {
			b.opts.logger.Warn("command plugin shadowed",
				"name", p.Name,
				"shadowed", fmt.Sprintf("%T", prev),
				"by", fmt.Sprintf("%T", p.Object),
			)
		}
	}

	instance := b.host.Instance()
	ec := &ExecutionContext{
		Conf:      b.host.Config(),
		Site:      instance,
		AppType:   reflect.TypeOf(instance),
		Commands:  commands,
		Version:   b.host.Version(),
		SessionID: ulid.Make().String(),
	}

	if b.opts.metrics != nil {
		b.opts.metrics.SiteCommands.Set(float64(commands.Len()))
	}
	b.opts.logger.Debug("console context built",
		"session_id", ec.SessionID,
		"commands", commands.Len(),
	)

	return ec, nil
}
