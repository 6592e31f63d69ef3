package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// PostsCommand returns the posts command.
func PostsCommand() *cli.Command {
	return &cli.Command{
		Name:  "posts",
		Usage: "Scan the posts directory and list posts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tag",
				Usage: "Only list posts with this tag",
			},
		},
		Action: listPosts,
	}
}

func listPosts(c *cli.Context) error {
	s, err := requireSite(c)
	if err != nil {
		return err
	}
	if err := s.ScanPosts(); err != nil {
		return err
	}

	posts := s.Posts()
	if tag := c.String("tag"); tag != "" {
		filtered := posts[:0]
		for _, p := range posts {
			if p.HasTag(tag) {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}

	if len(posts) == 0 && ParseGlobalFlags(c).Output == "table" {
		_, err := fmt.Fprintf(writer(c), "No posts found in %s\n", s.PostsDir())
		return err
	}
	return printFormatted(c, posts)
}
