package repl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory("", 0)
	if h == nil {
		t.Fatal("NewHistory returned nil")
	}
	if h.maxSize != DefaultHistorySize {
		t.Errorf("maxSize = %d, want %d", h.maxSize, DefaultHistorySize)
	}
	if h.entries == nil {
		t.Error("entries should be initialized")
	}
}

func TestHistory_Add_MaxSize(t *testing.T) {
	h := NewHistory("", 3)

	h.Add("cmd1")
	h.Add("cmd2")
	h.Add("cmd3")
	h.Add("cmd4") // Should evict cmd1

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want %d", h.Len(), 3)
	}
	if h.entries[0] != "cmd2" {
		t.Errorf("entries[0] = %q, want %q", h.entries[0], "cmd2")
	}
}

func TestHistory_Add_SkipsRepeats(t *testing.T) {
	h := NewHistory("", 10)

	h.Add("SITE.Posts")
	h.Add("SITE.Posts")
	h.Add("conf")
	h.Add("SITE.Posts")

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3: %v", h.Len(), h.Entries())
	}
}

func TestHistory_Get(t *testing.T) {
	h := NewHistory("", 10)
	h.Add("first")
	h.Add("second")
	h.Add("third")

	tests := []struct {
		index int
		want  string
	}{
		{0, "third"}, // Most recent
		{1, "second"},
		{2, "first"},
		{3, ""}, // Out of range
		{-1, ""},
	}

	for _, tt := range tests {
		if got := h.Get(tt.index); got != tt.want {
			t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	historyFile := filepath.Join(t.TempDir(), ".quill", "console_history")

	h := NewHistory(historyFile, 100)
	h.Add("command1")
	h.Add("command2")
	h.Add("command3")

	if err := h.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(historyFile)
	if err != nil {
		t.Fatalf("history file was not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("history file mode = %o, want 600", perm)
	}

	h2 := NewHistory(historyFile, 2)
	if err := h2.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Loading respects the smaller limit of the new history
	want := []string{"command2", "command3"}
	got := h2.Entries()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistory_Load_NonexistentFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing"), 10)

	if err := h.Load(); err != nil {
		t.Errorf("Load of nonexistent file should not error: %v", err)
	}
	if h.Len() != 0 {
		t.Error("entries should be empty after loading nonexistent file")
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("", 10)
	h.Add("x")

	if err := h.Save(); err != nil {
		t.Errorf("Save() without file = %v, want nil", err)
	}
	if err := h.Load(); err != nil {
		t.Errorf("Load() without file = %v, want nil", err)
	}
}

func TestHistory_Save_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(filepath.Join(blocker, "history"), 10)
	h.Add("x")
	if err := h.Save(); err == nil {
		t.Error("Save() under a regular file should fail")
	}
}

func TestDefaultHistoryFile(t *testing.T) {
	f := DefaultHistoryFile()
	if f == "" {
		t.Skip("no home directory")
	}
	if !filepath.IsAbs(f) || filepath.Base(f) != "console_history" {
		t.Errorf("DefaultHistoryFile() = %q", f)
	}
}
