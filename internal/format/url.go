package format

import "github.com/RATIU5/zaggonaut/internal/model"

// SourceURL joins the site root, the content type and a slug into the
// absolute URL used in meta tags and social cards. Nothing is escaped or
// normalized.
func SourceURL(rootURL, sourceURL string, ct model.ContentType) string {
	return rootURL + "/" + string(ct) + "/" + sourceURL
}

// URLBuilder binds SourceURL to a configured root.
type URLBuilder struct {
	RootURL string
}

func (b URLBuilder) SourceURL(sourceURL string, ct model.ContentType) string {
	return SourceURL(b.RootURL, sourceURL, ct)
}
