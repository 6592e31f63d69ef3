package site

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Post is a single content file.
type Post struct {
	Source string    `json:"source" yaml:"source"`
	Slug   string    `json:"slug" yaml:"slug"`
	Title  string    `json:"title" yaml:"title"`
	Date   time.Time `json:"date" yaml:"date"`
	Tags   []string  `json:"tags,omitempty" yaml:"tags,omitempty" table:"wide"`
	Draft  bool      `json:"draft" yaml:"draft"`
}

// HasTag reports whether the post is tagged tag, ignoring case.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// frontMatter is the optional YAML header of a post.
type frontMatter struct {
	Title string   `yaml:"title"`
	Slug  string   `yaml:"slug"`
	Date  string   `yaml:"date"`
	Tags  []string `yaml:"tags"`
	Draft bool     `yaml:"draft"`
}

const fenceLine = "---"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ReadPost reads and parses the post at path. rel is recorded as Source.
func ReadPost(path, rel string) (*Post, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fm, body, err := splitFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}

	p := &Post{
		Source: rel,
		Slug:   fm.Slug,
		Title:  fm.Title,
		Tags:   fm.Tags,
		Draft:  fm.Draft || strings.HasPrefix(filepath.Base(path), "_"),
		Date:   info.ModTime(),
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if p.Slug == "" {
		p.Slug = Slugify(strings.TrimPrefix(base, "_"))
	}
	if p.Title == "" {
		p.Title = titleFromBody(body)
	}
	if p.Title == "" {
		p.Title = strings.TrimPrefix(base, "_")
	}
	if fm.Date != "" {
		d, err := parseDate(fm.Date)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rel, err)
		}
		p.Date = d
	}

	return p, nil
}

// splitFrontMatter separates a leading "---" block from the body.
func splitFrontMatter(data []byte) (frontMatter, []byte, error) {
	var fm frontMatter

	rest, ok := bytes.CutPrefix(data, []byte(fenceLine+"\n"))
	if !ok {
		return fm, data, nil
	}

	end := bytes.Index(rest, []byte("\n"+fenceLine))
	if end < 0 {
		return fm, data, fmt.Errorf("unterminated front matter")
	}

	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return fm, data, fmt.Errorf("parse front matter: %w", err)
	}

	body := rest[end+len(fenceLine)+1:]
	return fm, bytes.TrimLeft(body, "\r\n"), nil
}

// titleFromBody returns the first Markdown heading, if any.
func titleFromBody(body []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Slugify lowercases s and collapses runs of non-alphanumerics into "-".
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
