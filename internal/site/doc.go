// Package site implements the Quill site engine.
//
// A Site owns the loaded configuration, the plugin manager, and the posts
// found by the last content scan. Content scanning is itself a Task plugin
// (scan_posts) so that it can be replaced or wrapped.
//
// Posts are plain files under content.posts_dir with an optional YAML
// front matter block:
//
//	---
//	title: Hello
//	date: 2024-05-01
//	tags: [intro]
//	draft: false
//	---
//	Body text.
package site
