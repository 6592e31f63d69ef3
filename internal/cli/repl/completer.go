package repl

import (
	"sort"
	"strings"
)

// Completer completes namespace names, members and built-ins.
type Completer struct {
	eval     *Evaluator
	builtins []string
}

// NewCompleter creates a Completer over eval's namespace.
func NewCompleter(eval *Evaluator) *Completer {
	return &Completer{
		eval:     eval,
		builtins: []string{"help", "dir", ":format", "exit", "quit"},
	}
}

// Complete returns full completions for prefix, sorted.
//
// Without a dot, prefix matches namespace names and built-ins. With a dot,
// everything up to the last dot is resolved without calling methods and
// its members are matched against the remainder. Past a method, members
// come from the method's result type.
func (c *Completer) Complete(prefix string) []string {
	var candidates []string

	if i := strings.LastIndex(prefix, "."); i >= 0 {
		base, partial := prefix[:i], prefix[i+1:]
		v, t, err := c.eval.Resolve(base)
		if err != nil {
			return nil
		}
		members := TypeMembers(t)
		if v != nil {
			members = Members(v)
		}
		for _, m := range members {
			if strings.HasPrefix(m, partial) {
				candidates = append(candidates, base+"."+m)
			}
		}
		return candidates
	}

	for _, name := range append(c.eval.Names(), c.builtins...) {
		if strings.HasPrefix(name, prefix) {
			candidates = append(candidates, name)
		}
	}
	sort.Strings(candidates)
	return candidates
}

// Do implements readline.AutoCompleter. It completes the word before the
// cursor and returns only the untyped suffixes.
func (c *Completer) Do(line []rune, pos int) (out [][]rune, length int) {
	defer func() {
		if recover() != nil {
			out, length = nil, 0
		}
	}()

	word := currentWord(string(line[:pos]))

	for _, comp := range c.Complete(word) {
		if suffix := comp[len(word):]; suffix != "" {
			out = append(out, []rune(suffix))
		}
	}
	return out, len([]rune(word))
}

// currentWord returns the trailing identifier path of s, such as
// "SITE.Po" in "x = SITE.Po".
func currentWord(s string) string {
	start := len(s)
	for start > 0 {
		ch := s[start-1]
		if ch == '.' || ch == '_' || ch == ':' ||
			('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9') {
			start--
			continue
		}
		break
	}
	return s[start:]
}
