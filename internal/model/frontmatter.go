package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ErrInvalidFrontmatter marks a frontmatter block that failed validation.
var ErrInvalidFrontmatter = errors.New("invalid frontmatter")

// Meta is the part of every frontmatter schema the site builder reads.
type Meta struct {
	Title       string
	Description string
	Tags        []string
	Timestamp   time.Time
	Featured    bool
}

// BlogFrontmatter is the schema of src/pages/blog/*.md.
type BlogFrontmatter struct {
	Title       string    `yaml:"title" toml:"title" json:"title"`
	Description string    `yaml:"description" toml:"description" json:"description"`
	Tags        []string  `yaml:"tags" toml:"tags" json:"tags"`
	Timestamp   time.Time `yaml:"timestamp" toml:"timestamp" json:"timestamp"`
	Featured    bool      `yaml:"featured" toml:"featured" json:"featured"`
	Filename    string    `yaml:"filename" toml:"filename" json:"filename"`
}

func (f BlogFrontmatter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Description, validation.Required),
		validation.Field(&f.Timestamp, validation.Required),
	)
}

func (f BlogFrontmatter) Meta() Meta {
	return Meta{
		Title:       f.Title,
		Description: f.Description,
		Tags:        f.Tags,
		Timestamp:   f.Timestamp,
		Featured:    f.Featured,
	}
}

// ProjectFrontmatter is the schema of src/pages/projects/*.md.
type ProjectFrontmatter struct {
	Title       string    `yaml:"title" toml:"title" json:"title"`
	Description string    `yaml:"description" toml:"description" json:"description"`
	Tags        []string  `yaml:"tags" toml:"tags" json:"tags"`
	Timestamp   time.Time `yaml:"timestamp" toml:"timestamp" json:"timestamp"`
	Featured    bool      `yaml:"featured" toml:"featured" json:"featured"`
	Filename    string    `yaml:"filename" toml:"filename" json:"filename"`
	GithubURL   string    `yaml:"githubUrl" toml:"githubUrl" json:"githubUrl"`
	LiveURL     string    `yaml:"liveUrl" toml:"liveUrl" json:"liveUrl"`
}

func (f ProjectFrontmatter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Description, validation.Required),
		validation.Field(&f.Timestamp, validation.Required),
		validation.Field(&f.GithubURL, is.URL),
		validation.Field(&f.LiveURL, is.URL),
	)
}

func (f ProjectFrontmatter) Meta() Meta {
	return Meta{
		Title:       f.Title,
		Description: f.Description,
		Tags:        f.Tags,
		Timestamp:   f.Timestamp,
		Featured:    f.Featured,
	}
}
