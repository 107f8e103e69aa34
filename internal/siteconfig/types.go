// Package siteconfig loads the site's configuration collection once and
// serves it, whole or by section, to the rest of the build.
package siteconfig

import (
	"errors"
	"fmt"
)

// CollectionName is the content collection holding site configuration.
const CollectionName = "configuration"

// Key addresses the whole configuration or one top-level section.
type Key string

const (
	Wildcard       Key = "*"
	SiteKey        Key = "site"
	CollectionsKey Key = "collections"
)

var (
	// ErrConfigurationMissing is returned when the collection is empty or
	// its first entry carries no data.
	ErrConfigurationMissing = errors.New("configuration data is missing: ensure src/content/configuration/configuration.toml exists and is properly formatted")
	ErrUnknownKey           = errors.New("unknown configuration key")
)

// Configuration is the data of the configuration collection entry.
type Configuration struct {
	Site        Site        `toml:"site" yaml:"site" json:"site"`
	Collections Collections `toml:"collections" yaml:"collections" json:"collections"`
}

type Site struct {
	Title       string `toml:"title" yaml:"title" json:"title"`
	Description string `toml:"description" yaml:"description" json:"description"`
	URL         string `toml:"url" yaml:"url" json:"url"`
	Author      string `toml:"author" yaml:"author" json:"author"`
	Email       string `toml:"email" yaml:"email" json:"email"`
	Locale      string `toml:"locale" yaml:"locale" json:"locale"`
}

type Collections struct {
	Blog     CollectionSettings `toml:"blog" yaml:"blog" json:"blog"`
	Projects CollectionSettings `toml:"projects" yaml:"projects" json:"projects"`
}

// CollectionSettings tunes how one content type is listed.
type CollectionSettings struct {
	Title        string `toml:"title" yaml:"title" json:"title"`
	Description  string `toml:"description" yaml:"description" json:"description"`
	SummaryWords int    `toml:"summaryWords" yaml:"summaryWords" json:"summaryWords"`
}

// Section returns the value addressed by key: the whole record for
// Wildcard, otherwise the named section.
func (c *Configuration) Section(key Key) (any, error) {
	switch key {
	case Wildcard:
		return c, nil
	case SiteKey:
		return c.Site, nil
	case CollectionsKey:
		return c.Collections, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

// Entry is one record of a collection.
type Entry struct {
	ID   string
	Data *Configuration
}
