package console

// CommandCategory is the plugin category exposed as the command registry.
const CommandCategory = "Command"

// PluginInfo is one plugin as reported by the host.
type PluginInfo struct {
	Name   string
	Object any
}

// Host is the application the console inspects.
type Host interface {
	// ScanPosts finishes loading the content model.
	ScanPosts() error

	// PluginsOfCategory returns the plugins of a category in registration
	// order.
	PluginsOfCategory(category string) []PluginInfo

	// Config returns the configuration snapshot bound as conf.
	Config() any

	// Version returns the application version shown in the banner.
	Version() string

	// Instance returns the application object bound as SITE.
	Instance() any
}
