//go:build !nolua

package console

import (
	"context"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func newTestLua(t *testing.T) (*lua.LState, IO) {
	t.Helper()
	streams, _, _ := testIO("")
	L := newLuaState(streams, testContext())
	t.Cleanup(L.Close)
	return L, streams
}

func luaEval(t *testing.T, L *lua.LState, src string) lua.LValue {
	t.Helper()
	if err := L.DoString("__result = " + src); err != nil {
		t.Fatalf("DoString(%q) failed: %v", src, err)
	}
	return L.GetGlobal("__result")
}

func TestLuaCandidate(t *testing.T) {
	c := luaCandidate(StdIO())

	if c.Name != ShellLua {
		t.Errorf("Name = %q, want %q", c.Name, ShellLua)
	}
	if c.Display != "Lua" {
		t.Errorf("Display = %q, want %q", c.Display, "Lua")
	}
	if c.Library != luaLibrary {
		t.Errorf("Library = %q, want %q", c.Library, luaLibrary)
	}
	if !c.available() {
		t.Error("lua should be available in this build")
	}
}

func TestLuaBridge(t *testing.T) {
	L, _ := newTestLua(t)

	tests := []struct {
		src  string
		want lua.LValue
	}{
		{`SITE:Title()`, lua.LString("Notes")},
		{`SITE.Title()`, lua.LString("Notes")},
		{`SITE:Add(2, 3)`, lua.LNumber(5)},
		{`#SITE:Posts()`, lua.LNumber(2)},
		{`SITE:Posts()[1].Slug`, lua.LString("hello")},
		{`SITE:Posts()[3]`, lua.LNil},
		{`SITE:Post("second").Title`, lua.LString("Second")},
		{`conf.BaseURL`, lua.LString("https://example.org")},
		{`conf.Tags.go`, lua.LString("Go")},
		{`conf.Missing`, lua.LNil},
		{`commands:Len()`, lua.LNumber(2)},
		{`commands.build.Usage`, lua.LString("build the site")},
		{`commands.build:Name()`, lua.LString("build")},
		{`tostring(Quill)`, lua.LString("*console.testSite")},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := luaEval(t, L, tt.src); got != tt.want {
				t.Errorf("%s = %v (%s), want %v", tt.src, got, got.Type(), tt.want)
			}
		})
	}
}

func TestLuaBridge_Errors(t *testing.T) {
	L, _ := newTestLua(t)

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"method error raises", `SITE:Post("missing")`, "post not found: missing"},
		{"argument count", `SITE:Add(1)`, "want 2 arguments, got 1"},
		{"argument type", `SITE:Add("a", 1)`, "cannot use string as int"},
		{"read-only", `conf.Title = "x"`, "read-only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := L.DoString(tt.src)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("DoString(%q) error = %v, want containing %q", tt.src, err, tt.want)
			}
		})
	}
}

func TestLuaState_NoExit(t *testing.T) {
	L, _ := newTestLua(t)
	if got := luaEval(t, L, "os.exit"); got != lua.LNil {
		t.Errorf("os.exit = %v, want nil", got)
	}
}

func TestRunLua(t *testing.T) {
	input := strings.Join([]string{
		`SITE:Title()`,
		`x = 40 + 2`,
		`x`,
		`print("a", 1, SITE:Title())`,
		`SITE:Post("missing")`,
		`nil`,
		`#commands:Names(), commands:Len()`,
		`exit`,
		`"not reached"`,
	}, "\n")
	streams, out, errOut := testIO(input + "\n")
	L := newLuaState(streams, testContext())
	defer L.Close()

	if err := runLua(L, streams); err != nil {
		t.Fatalf("runLua() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"lua> Notes\n", "lua> 42\n", "a\t1\tNotes\n", "2\t2\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	for _, unwanted := range []string{"nil\n", "not reached"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("output should not contain %q:\n%s", unwanted, got)
		}
	}
	if !strings.Contains(errOut.String(), "post not found: missing") {
		t.Errorf("errors missing method failure:\n%s", errOut.String())
	}
}

func TestRunLua_EOF(t *testing.T) {
	streams, out, _ := testIO(`SITE:Title()`)
	L := newLuaState(streams, testContext())
	defer L.Close()

	if err := runLua(L, streams); err != nil {
		t.Fatalf("runLua() error = %v", err)
	}
	if !strings.Contains(out.String(), "Notes") {
		t.Errorf("output missing %q:\n%s", "Notes", out.String())
	}
}

func TestLuaCandidate_Launch(t *testing.T) {
	streams, out, _ := testIO("conf.Title\nquit\n")
	c := luaCandidate(streams)
	ec := testContext()

	if err := c.Launch(context.Background(), ec, Banner(ec.Version, c.Display)); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if want := "Quill v1.2.3 -- Lua Console"; !strings.HasPrefix(out.String(), want) {
		t.Errorf("output should start with %q, got %q", want, out.String())
	}
	if !strings.Contains(out.String(), "Notes") {
		t.Errorf("output missing %q:\n%s", "Notes", out.String())
	}
}
