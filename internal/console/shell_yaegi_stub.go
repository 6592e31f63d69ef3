//go:build noyaegi

package console

import "context"

const yaegiLibrary = "github.com/traefik/yaegi"

func yaegiCandidate(IO) Candidate {
	c := Candidate{
		Name:      ShellYaegi,
		Display:   "Yaegi",
		Library:   yaegiLibrary,
		Available: func() bool { return false },
	}
	c.Launch = func(context.Context, *ExecutionContext, string) error {
		return &MissingDependencyError{Shell: c.Name, Library: c.Library, Feature: c.Feature()}
	}
	return c
}
