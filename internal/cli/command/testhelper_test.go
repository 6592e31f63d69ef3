package command

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

const testConfigYAML = `site:
  title: Field Notes
  url: https://notes.example.org/
  deploy_token: tok-0123456789
content:
  posts_dir: posts
  extensions: [".md"]
log:
  level: error
`

var testPosts = map[string]string{
	"hello.md":  "---\ntitle: Hello World\ndate: 2024-03-01\ntags: [go, intro]\n---\nbody\n",
	"second.md": "---\ntitle: Second Post\ndate: 2024-04-01\ntags: [lua]\n---\n# ignored\n",
	"_draft.md": "# Work in progress\n",
	"notes.txt": "not a post for this site\n",
}

// newTestSite writes a site with a config file and three posts, one of
// them a draft, and returns its directory.
func newTestSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cfg := testConfigYAML + "console:\n  history_file: " + filepath.Join(dir, "history") + "\n"
	if err := os.WriteFile(filepath.Join(dir, "conf.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	posts := filepath.Join(dir, "posts")
	if err := os.MkdirAll(posts, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range testPosts {
		if err := os.WriteFile(filepath.Join(posts, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// runApp runs the quill application against dir with input on stdin and
// returns stdout, stderr and the error. QUILL_STARTUP is cleared.
func runApp(t *testing.T, dir, input string, args ...string) (string, string, error) {
	t.Helper()
	return runAppEnv(context.Background(), t, map[string]string{"QUILL_STARTUP": ""}, dir, input, args...)
}

func runAppEnv(ctx context.Context, t *testing.T, env map[string]string, dir, input string, args ...string) (string, string, error) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	app := App()
	app.Reader = strings.NewReader(input)
	app.Writer = stdout
	app.ErrWriter = stderr
	app.ExitErrHandler = func(*cli.Context, error) {}

	full := append([]string{"quill", "--site-dir", dir}, args...)
	err := app.RunContext(ctx, full)
	return stdout.String(), stderr.String(), err
}

// testContext creates a CLI context with the global flags parsed from args
// and the Before hook applied.
func testContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()

	app := &cli.App{
		Name:      "test",
		Flags:     globalFlags(),
		Commands:  []*cli.Command{VersionCommand(), PostsCommand()},
		Metadata:  map[string]any{},
		Writer:    &bytes.Buffer{},
		ErrWriter: &bytes.Buffer{},
	}

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		if err := f.Apply(set); err != nil {
			t.Fatal(err)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}

	return cli.NewContext(app, set, nil)
}
