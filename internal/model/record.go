package model

import "html/template"

// MarkdownRecord is one loaded content file with its typed frontmatter.
type MarkdownRecord[T any] struct {
	Frontmatter T
	// File is the absolute path of the source file.
	File string
	// URL is the site route, e.g. /blog/my-post.
	URL  string
	Stem string
	// Body is the markdown source with the frontmatter block removed.
	Body []byte
	HTML template.HTML
}
