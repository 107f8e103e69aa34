package model

// PageData is the template context for a single item page.
type PageData struct {
	Site *SiteData
	Item *ContentItem
}

// ListData is the template context for a content type index page.
type ListData struct {
	Site  *SiteData
	Type  ContentType
	Label string
	Items []*ContentItem
}
