package console

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlainCandidate_Launch(t *testing.T) {
	streams, out, _ := testIO("SITE.Title\ncommands.Len\nexit\n")
	c := plainCandidate(streams, PlainConfig{})

	if c.Name != ShellPlain {
		t.Errorf("Name = %q, want %q", c.Name, ShellPlain)
	}
	if !c.available() {
		t.Error("plain shell should always be available")
	}
	if c.Library != "" {
		t.Errorf("Library = %q, want none", c.Library)
	}

	ec := testContext()
	if err := c.Launch(context.Background(), ec, Banner(ec.Version, c.Display)); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}

	for _, want := range []string{"Quill v1.2.3 -- Plain Console", "Notes", "2"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestPlainCandidate_StartupScript(t *testing.T) {
	script := filepath.Join(t.TempDir(), "startup.txt")
	if err := os.WriteFile(script, []byte("title = SITE.Title\nundefined.thing\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("QUILL_CONSOLE_TEST_STARTUP", script)

	out := launchPlain(t, "title\nexit\n", PlainConfig{StartupEnv: "QUILL_CONSOLE_TEST_STARTUP"})
	if !strings.Contains(out, "Notes") {
		t.Errorf("startup binding not visible:\n%s", out)
	}
}

func TestPlainCandidate_MissingStartupScript(t *testing.T) {
	t.Setenv("QUILL_CONSOLE_TEST_STARTUP", filepath.Join(t.TempDir(), "missing.txt"))

	out := launchPlain(t, "SITE.Title\nexit\n", PlainConfig{StartupEnv: "QUILL_CONSOLE_TEST_STARTUP"})
	if !strings.Contains(out, "Notes") {
		t.Errorf("output missing %q:\n%s", "Notes", out)
	}
}

func TestPlainCandidate_History(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")
	launchPlain(t, "SITE.Title\nexit\n", PlainConfig{HistoryFile: file, HistorySize: 10})

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "SITE.Title") {
		t.Errorf("history = %q, want SITE.Title recorded", data)
	}
}

func TestPlainCandidate_InvalidFormatFallsBack(t *testing.T) {
	out := launchPlain(t, "SITE.Title\n", PlainConfig{Format: "xml"})
	if !strings.Contains(out, "Notes") {
		t.Errorf("output missing %q:\n%s", "Notes", out)
	}
}

func TestPlainCandidate_PanicsDoNotEndSession(t *testing.T) {
	out := launchPlain(t, "Quill.NumField\nSITE.Title\nexit\n", PlainConfig{})

	i := strings.Index(out, "Error: panic:")
	if i < 0 {
		t.Fatalf("output missing panic error:\n%s", out)
	}
	if !strings.Contains(out[i:], "Notes") {
		t.Errorf("line after the panic was not evaluated:\n%s", out)
	}
}

func launchPlain(t *testing.T, input string, cfg PlainConfig) string {
	t.Helper()
	streams, out, _ := testIO(input)
	c := plainCandidate(streams, cfg)
	if err := c.Launch(context.Background(), testContext(), "banner"); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	return out.String()
}
