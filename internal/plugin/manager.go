package plugin

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Category classifies plugins.
type Category string

const (
	CategoryCommand Category = "Command"
	CategoryTask    Category = "Task"
)

// Plugin is implemented by every registered plugin.
type Plugin interface {
	Name() string
}

// Info describes a registered plugin.
type Info struct {
	Name     string
	Category Category
	Object   Plugin
}

var (
	// ErrNilPlugin is returned when registering a nil plugin.
	ErrNilPlugin = errors.New("plugin: nil plugin")

	// ErrEmptyName is returned when a plugin reports an empty name.
	ErrEmptyName = errors.New("plugin: empty name")

	// ErrEmptyCategory is returned when registering without a category.
	ErrEmptyCategory = errors.New("plugin: empty category")
)

// Manager holds registered plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins []Info
}

// NewManager creates an empty plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make([]Info, 0),
	}
}

// Register adds p under category.
// Registering a second plugin with the same name in the same category does
// not remove the first; Lookup returns the latest one.
func (m *Manager) Register(category Category, p Plugin) error {
	if category == "" {
		return ErrEmptyCategory
	}
	if p == nil {
		return ErrNilPlugin
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("register %T: %w", p, ErrEmptyName)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.plugins = append(m.plugins, Info{
		Name:     name,
		Category: category,
		Object:   p,
	})
	return nil
}

// OfCategory returns the plugins registered under category, in
// registration order.
func (m *Manager) OfCategory(category Category) []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Info
	for _, info := range m.plugins {
		if info.Category == category {
			out = append(out, info)
		}
	}
	return out
}

// Lookup returns the most recently registered plugin named name in category.
func (m *Manager) Lookup(category Category, name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.plugins) - 1; i >= 0; i-- {
		info := m.plugins[i]
		if info.Category == category && info.Name == name {
			return info.Object, true
		}
	}
	return nil, false
}

// Categories returns the distinct categories in use, sorted.
func (m *Manager) Categories() []Category {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[Category]bool)
	var out []Category
	for _, info := range m.plugins {
		if !seen[info.Category] {
			seen[info.Category] = true
			out = append(out, info.Category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of registrations.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.plugins)
}
