package command

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAuto_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdout, _, err := runAppEnv(ctx, t, nil, newTestSite(t), "", "auto")
	if err != nil {
		t.Fatalf("auto error = %v", err)
	}
	if !strings.Contains(stdout, "Scanned 2 posts") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestAuto_MissingPostsDir(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := runAppEnv(ctx, t, nil, t.TempDir(), "", "auto"); err == nil {
		t.Error("auto should fail when the posts directory cannot be watched")
	}
}

func TestAuto_RescansOnChange(t *testing.T) {
	dir := newTestSite(t)
	c := testContext(t, "--site-dir", dir)
	if err := before(c); err != nil {
		t.Fatalf("before() error = %v", err)
	}
	s := GetSite(c)

	ctx, cancel := context.WithCancel(context.Background())
	c.Context = ctx
	done := make(chan error, 1)
	go func() { done <- runAuto(c) }()

	third := filepath.Join(dir, "posts", "third.md")
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		// rewrite until the watcher is up and the rescan sees the file
		os.WriteFile(third, []byte("# Third\n"), 0o644)
		if _, ok := s.Post("third"); ok {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runAuto() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runAuto did not stop after cancel")
	}

	if _, ok := s.Post("third"); !ok {
		t.Error("new post was not picked up by the rescan")
	}
}
