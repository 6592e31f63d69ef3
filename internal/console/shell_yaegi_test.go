//go:build !noyaegi

package console

import (
	"context"
	"strings"
	"testing"
)

func TestYaegiCandidate(t *testing.T) {
	c := yaegiCandidate(StdIO())

	if c.Name != ShellYaegi {
		t.Errorf("Name = %q, want %q", c.Name, ShellYaegi)
	}
	if c.Display != "Yaegi" {
		t.Errorf("Display = %q, want %q", c.Display, "Yaegi")
	}
	if c.Library != yaegiLibrary {
		t.Errorf("Library = %q, want %q", c.Library, yaegiLibrary)
	}
	if !c.available() {
		t.Error("yaegi should be available in this build")
	}
}

func TestYaegiCandidate_Launch(t *testing.T) {
	// Results are echoed only on a terminal unless the prompt is forced.
	t.Setenv("YAEGI_PROMPT", "1")

	streams, out, errOut := testIO("SITE.Title()\n")
	c := yaegiCandidate(streams)
	ec := testContext()

	if err := c.Launch(context.Background(), ec, Banner(ec.Version, c.Display)); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}

	got := out.String()
	if want := "Quill v1.2.3 -- Yaegi Console"; !strings.HasPrefix(got, want) {
		t.Errorf("output should start with %q, got %q", want, got)
	}
	if !strings.Contains(got, ": Notes\n") {
		t.Errorf("output missing evaluated title:\n%s", got)
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected errors:\n%s", errOut.String())
	}
}

func TestYaegiInterpreter_Namespace(t *testing.T) {
	streams, _, _ := testIO("")
	i, err := newYaegiInterpreter(streams, testContext())
	if err != nil {
		t.Fatalf("newYaegiInterpreter failed: %v", err)
	}

	tests := []struct {
		src  string
		want any
	}{
		{`SITE.Title()`, "Notes"},
		{`len(SITE.Posts())`, 2},
		{`SITE.Posts()[1].Slug`, "second"},
		{`SITE.Add(2, 3)`, 5},
		{`conf.BaseURL`, "https://example.org"},
		{`conf.Tags["go"]`, "Go"},
		{`commands.Len()`, 2},
		{`Quill.String()`, "*console.testSite"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v, err := i.Eval(tt.src)
			if err != nil {
				t.Fatalf("Eval(%q) failed: %v", tt.src, err)
			}
			if got := v.Interface(); got != tt.want {
				t.Errorf("Eval(%q) = %#v, want %#v", tt.src, got, tt.want)
			}
		})
	}
}

func TestYaegiInterpreter_Stdout(t *testing.T) {
	streams, out, _ := testIO("")
	i, err := newYaegiInterpreter(streams, testContext())
	if err != nil {
		t.Fatalf("newYaegiInterpreter failed: %v", err)
	}

	for _, src := range []string{`import "fmt"`, `fmt.Println(SITE.Title())`} {
		if _, err := i.Eval(src); err != nil {
			t.Fatalf("Eval(%q) failed: %v", src, err)
		}
	}

	if got := out.String(); got != "Notes\n" {
		t.Errorf("stdout = %q, want %q", got, "Notes\n")
	}
}
