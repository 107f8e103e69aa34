package model

import (
	"errors"
	"fmt"
	"path"
)

// ContentType selects the pages directory a piece of content lives in.
type ContentType string

const (
	Projects ContentType = "projects"
	Blog     ContentType = "blog"
)

// ErrUnknownContentType is returned for anything outside the closed set.
var ErrUnknownContentType = errors.New("unknown content type")

// ContentTypes lists every supported content type in build order.
func ContentTypes() []ContentType {
	return []ContentType{Blog, Projects}
}

// ParseContentType converts user input into a ContentType.
func ParseContentType(s string) (ContentType, error) {
	ct := ContentType(s)
	if !ct.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownContentType, s)
	}
	return ct, nil
}

func (ct ContentType) Valid() bool {
	return ct == Projects || ct == Blog
}

func (ct ContentType) String() string {
	return string(ct)
}

// Dir is the slash-separated directory, relative to the site root, that
// holds markdown files of this type.
func (ct ContentType) Dir() string {
	return path.Join("src", "pages", string(ct))
}
