// Package console implements `quill console`: an interactive shell bound to
// the live site.
//
// A Builder gathers the live objects into an ExecutionContext, and a
// Selector launches exactly one shell with it. Shells are tried in a fixed
// priority order:
//
//   - yaegi: a Go interpreter (github.com/traefik/yaegi)
//   - lua: a Lua interpreter (github.com/yuin/gopher-lua)
//   - plain: the built-in shell from internal/cli/repl
//
// The interpreter backends are compiled in by default. Building with
// -tags noyaegi or -tags nolua leaves a stub that reports the backend as
// unavailable, and automatic selection moves on to the next shell.
//
// Every shell sees the same names:
//
//	conf      the site configuration
//	SITE      the site engine
//	Quill     the site engine's type, for introspection
//	commands  the registered command plugins
package console
