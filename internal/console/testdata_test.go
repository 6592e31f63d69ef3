package console

import (
	"bytes"
	"errors"
	"strings"

	"github.com/yndnr/quill/internal/telemetry/logger"
)

type testConfig struct {
	Title   string
	BaseURL string
	Tags    map[string]string
}

type testPost struct {
	Slug  string
	Title string
}

type testSite struct {
	title string
	posts []testPost
}

func (s *testSite) Title() string { return s.title }

func (s *testSite) Posts() []testPost { return s.posts }

func (s *testSite) Post(slug string) (*testPost, error) {
	for i := range s.posts {
		if s.posts[i].Slug == slug {
			return &s.posts[i], nil
		}
	}
	return nil, errors.New("post not found: " + slug)
}

func (s *testSite) Add(a, b int) int { return a + b }

type testCommand struct {
	name  string
	Usage string
}

func (c *testCommand) Name() string { return c.name }

type otherCommand struct {
	name string
}

func (c *otherCommand) Name() string { return c.name }

type fakeHost struct {
	scanErr error
	scanned int
	plugins []PluginInfo
	conf    *testConfig
	site    *testSite
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		conf: &testConfig{
			Title:   "Notes",
			BaseURL: "https://example.org",
			Tags:    map[string]string{"go": "Go"},
		},
		site: &testSite{
			title: "Notes",
			posts: []testPost{
				{Slug: "hello", Title: "Hello"},
				{Slug: "second", Title: "Second"},
			},
		},
		plugins: []PluginInfo{
			{Name: "build", Object: &testCommand{name: "build", Usage: "build the site"}},
			{Name: "serve", Object: &testCommand{name: "serve", Usage: "serve the site"}},
		},
	}
}

func (h *fakeHost) ScanPosts() error {
	h.scanned++
	return h.scanErr
}

func (h *fakeHost) PluginsOfCategory(category string) []PluginInfo {
	if category != CommandCategory {
		return nil
	}
	return h.plugins
}

func (h *fakeHost) Config() any { return h.conf }

func (h *fakeHost) Version() string { return "1.2.3" }

func (h *fakeHost) Instance() any { return h.site }

// testLogger returns a logger writing text records to the returned buffer.
func testLogger() (logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l, _ := logger.New(logger.Config{Level: "debug", Format: "text", Output: buf})
	return l, buf
}

func testContext() *ExecutionContext {
	h := newFakeHost()
	l, _ := testLogger()
	ec, err := NewBuilder(h, WithLogger(l)).Build()
	if err != nil {
		panic(err)
	}
	return ec
}

func testIO(input string) (IO, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return IO{In: strings.NewReader(input), Out: out, Err: errOut}, out, errOut
}
