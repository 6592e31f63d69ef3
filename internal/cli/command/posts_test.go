package command

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPosts_Table(t *testing.T) {
	stdout, _, err := runApp(t, newTestSite(t), "", "posts")
	if err != nil {
		t.Fatalf("posts error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header and 2 rows, got:\n%s", stdout)
	}
	if !strings.Contains(lines[0], "SLUG") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "second") || !strings.Contains(lines[2], "hello") {
		t.Errorf("posts should be newest first:\n%s", stdout)
	}
	if strings.Contains(stdout, "intro") {
		t.Error("tags are only shown with --wide")
	}
	if strings.Contains(stdout, "Work in progress") {
		t.Error("drafts should be hidden")
	}
}

func TestPosts_Wide(t *testing.T) {
	stdout, _, err := runApp(t, newTestSite(t), "", "--wide", "posts")
	if err != nil {
		t.Fatalf("posts error = %v", err)
	}
	if !strings.Contains(stdout, "TAGS") || !strings.Contains(stdout, "intro") {
		t.Errorf("wide output should include tags:\n%s", stdout)
	}
}

func TestPosts_JSON(t *testing.T) {
	stdout, _, err := runApp(t, newTestSite(t), "", "-o", "json", "posts")
	if err != nil {
		t.Fatalf("posts error = %v", err)
	}

	var posts []struct {
		Slug  string   `json:"slug"`
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(stdout), &posts); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(posts) != 2 {
		t.Fatalf("len(posts) = %d, want 2", len(posts))
	}
	if posts[0].Title != "Second Post" || posts[1].Title != "Hello World" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestPosts_Tag(t *testing.T) {
	stdout, _, err := runApp(t, newTestSite(t), "", "-o", "json", "posts", "--tag", "Go")
	if err != nil {
		t.Fatalf("posts error = %v", err)
	}
	if !strings.Contains(stdout, `"hello"`) || strings.Contains(stdout, `"second"`) {
		t.Errorf("tag filter output:\n%s", stdout)
	}
}

func TestPosts_Drafts(t *testing.T) {
	dir := newTestSite(t)
	t.Setenv("QUILL_CONTENT_DRAFTS", "true")

	stdout, _, err := runApp(t, dir, "", "-o", "json", "posts")
	if err != nil {
		t.Fatalf("posts error = %v", err)
	}
	if !strings.Contains(stdout, "Work in progress") {
		t.Errorf("drafts should be listed when content.drafts is set:\n%s", stdout)
	}
}

func TestPosts_Empty(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "posts"), 0o755); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runApp(t, dir, "", "posts")
	if err != nil {
		t.Fatalf("posts error = %v", err)
	}
	if !strings.HasPrefix(stdout, "No posts found") {
		t.Errorf("stdout = %q", stdout)
	}
}
