//go:build nolua

package console

import "context"

const luaLibrary = "github.com/yuin/gopher-lua"

func luaCandidate(IO) Candidate {
	c := Candidate{
		Name:      ShellLua,
		Display:   "Lua",
		Library:   luaLibrary,
		Available: func() bool { return false },
	}
	c.Launch = func(context.Context, *ExecutionContext, string) error {
		return &MissingDependencyError{Shell: c.Name, Library: c.Library, Feature: c.Feature()}
	}
	return c
}
