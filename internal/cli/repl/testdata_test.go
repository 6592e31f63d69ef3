package repl

import (
	"errors"
	"sort"
)

type testSection struct {
	Title string
	Tags  []string
}

type testConf struct {
	Site  testSection
	Extra map[string]int
}

type testPost struct {
	Slug  string
	Title string
}

type testSite struct {
	posts []*testPost
	calls int
}

func (s *testSite) Posts() []*testPost {
	s.calls++
	return s.posts
}

func (s *testSite) Post(slug string) (*testPost, error) {
	for _, p := range s.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, errors.New("no such post")
}

func (s *testSite) Count(n int) int { return len(s.posts) * n }

func (s *testSite) Touch() { s.calls++ }

type testRegistry map[string]any

func (r testRegistry) Get(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

func (r testRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func testNamespace() (map[string]any, *testSite) {
	site := &testSite{posts: []*testPost{
		{Slug: "hello", Title: "Hello"},
		{Slug: "second", Title: "Second"},
	}}
	ns := map[string]any{
		"conf": &testConf{
			Site:  testSection{Title: "My Site", Tags: []string{"go"}},
			Extra: map[string]int{"depth": 3},
		},
		"SITE":     site,
		"commands": testRegistry{"posts": "posts-command", "version": "version-command"},
	}
	return ns, site
}
