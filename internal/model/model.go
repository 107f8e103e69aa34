package model

import (
	"html/template"
	"time"
)

// ContentItem is a rendered piece of content (blog post or project page)
// as the layouts see it.
type ContentItem struct {
	Title       string
	Description string
	Summary     string
	Tags        []string
	Featured    bool
	Date        time.Time
	DisplayDate string
	Type        ContentType
	Stem        string
	SourcePath  string
	Permalink   string
	SourceURL   string
	ContentHTML template.HTML
}

// SiteData holds site-wide values and every item grouped by type.
type SiteData struct {
	Title         string
	Description   string
	Author        string
	RootURL       string
	ContentItems  []*ContentItem
	ContentByType map[ContentType][]*ContentItem
}

// Posts returns the blog items.
func (s *SiteData) Posts() []*ContentItem {
	return s.ContentByType[Blog]
}

// Projects returns the project items.
func (s *SiteData) Projects() []*ContentItem {
	return s.ContentByType[Projects]
}
