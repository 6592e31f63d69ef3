package site

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ScanPostsTask is the name of the built-in content scanner plugin.
const ScanPostsTask = "scan_posts"

// Scanner is a Task plugin that produces the site's posts.
type Scanner interface {
	Name() string
	Scan(s *Site) ([]*Post, error)
}

// PostScanner walks content.posts_dir for files with a configured extension.
type PostScanner struct{}

// Name implements plugin.Plugin.
func (PostScanner) Name() string { return ScanPostsTask }

// Scan implements Scanner. A missing posts directory yields no posts.
// Drafts are skipped unless content.drafts is set. Posts are ordered by
// date, newest first, then by slug.
func (PostScanner) Scan(s *Site) ([]*Post, error) {
	root := s.PostsDir()
	cfg := s.Config().Content

	exts := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		exts[strings.ToLower(ext)] = true
	}

	var posts []*Post
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(s.Dir(), path)
		if err != nil {
			rel = path
		}

		post, err := ReadPost(path, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if post.Draft && !cfg.Drafts {
			return nil
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})

	return posts, nil
}
