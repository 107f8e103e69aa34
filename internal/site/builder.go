// Package site turns the content under src/pages into a rendered static
// site: it collects blog posts and projects, renders them through the
// layouts and writes the output tree.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goodsign/monday"

	"github.com/RATIU5/zaggonaut/internal/config"
	"github.com/RATIU5/zaggonaut/internal/content"
	"github.com/RATIU5/zaggonaut/internal/format"
	"github.com/RATIU5/zaggonaut/internal/logger"
	"github.com/RATIU5/zaggonaut/internal/model"
	"github.com/RATIU5/zaggonaut/internal/siteconfig"
)

// ErrUnsafeOutputDir is returned when cleaning the output directory would
// delete the site's own sources.
var ErrUnsafeOutputDir = errors.New("output directory overlaps site sources")

// Builder collects and renders the site.
type Builder struct {
	cfg    config.Config
	reader *content.Reader
	cache  *siteconfig.Cache
	log    logger.Logger
}

func NewBuilder(cfg config.Config, reader *content.Reader, cache *siteconfig.Cache, log logger.Logger) *Builder {
	if log == nil {
		log = logger.NewNop()
	}
	return &Builder{cfg: cfg, reader: reader, cache: cache, log: log}
}

type frontmatter interface {
	content.Frontmatter
	Meta() model.Meta
}

// itemBuilder carries the per-build values every item needs.
type itemBuilder struct {
	urls   format.URLBuilder
	locale monday.Locale
	words  int
}

func newItem[T frontmatter](ib itemBuilder, ct model.ContentType) func(model.MarkdownRecord[T]) *model.ContentItem {
	return func(rec model.MarkdownRecord[T]) *model.ContentItem {
		meta := rec.Frontmatter.Meta()
		item := &model.ContentItem{
			Title:       meta.Title,
			Description: meta.Description,
			Summary:     format.ShortDescription(meta.Description, ib.words),
			Tags:        meta.Tags,
			Featured:    meta.Featured,
			Date:        meta.Timestamp,
			Type:        ct,
			Stem:        rec.Stem,
			SourcePath:  rec.File,
			Permalink:   rec.URL + "/",
			SourceURL:   ib.urls.SourceURL(rec.Stem, ct),
			ContentHTML: rec.HTML,
		}
		if !meta.Timestamp.IsZero() {
			item.DisplayDate = format.ArticleDateIn(meta.Timestamp, ib.locale)
		}
		return item
	}
}

// Collect loads the configuration and every content type into SiteData,
// items sorted newest first.
func (b *Builder) Collect(ctx context.Context) (*model.SiteData, error) {
	siteCfg, err := b.cache.All(ctx)
	if err != nil {
		return nil, err
	}

	rootURL := b.cfg.RootURL
	if rootURL == "" {
		rootURL = siteCfg.Site.URL
	}
	rootURL = strings.TrimSuffix(rootURL, "/")

	site := &model.SiteData{
		Title:         siteCfg.Site.Title,
		Description:   siteCfg.Site.Description,
		Author:        siteCfg.Site.Author,
		RootURL:       rootURL,
		ContentByType: make(map[model.ContentType][]*model.ContentItem),
	}
	base := itemBuilder{
		urls:   format.URLBuilder{RootURL: rootURL},
		locale: b.locale(siteCfg.Site.Locale),
	}

	for _, ct := range model.ContentTypes() {
		ib := base
		ib.words = b.summaryWords(siteCfg.Collections, ct)

		var items []*model.ContentItem
		switch ct {
		case model.Blog:
			items, err = content.ProcessContentInDir(ctx, b.reader, ct, newItem[model.BlogFrontmatter](ib, ct))
		case model.Projects:
			items, err = content.ProcessContentInDir(ctx, b.reader, ct, newItem[model.ProjectFrontmatter](ib, ct))
		}
		if err != nil {
			var loadErr *content.LoadError
			if errors.Is(err, fs.ErrNotExist) && !errors.As(err, &loadErr) {
				b.log.Warn("content directory not found, skipping",
					logger.String("content_type", ct.String()),
					logger.String("dir", b.reader.Dir(ct)),
				)
				continue
			}
			return nil, fmt.Errorf("collect %s: %w", ct, err)
		}

		sortByDate(items)
		site.ContentByType[ct] = items
		site.ContentItems = append(site.ContentItems, items...)
		b.log.Info("collected content",
			logger.String("content_type", ct.String()),
			logger.Int("count", len(items)),
		)
	}
	sortByDate(site.ContentItems)
	return site, nil
}

// Build collects the content and writes the rendered site.
func (b *Builder) Build(ctx context.Context) (*model.SiteData, error) {
	b.log.Info("starting build",
		logger.String("output_dir", b.cfg.OutputDir),
		logger.String("content_root", b.reader.Root()),
	)

	if err := b.checkOutputDir(); err != nil {
		return nil, err
	}

	site, err := b.Collect(ctx)
	if err != nil {
		return nil, err
	}
	siteSection, err := b.cache.Site(ctx)
	if err != nil {
		return nil, err
	}

	tpl, err := loadLayouts(b.cfg.LayoutsDir, b.locale(siteSection.Locale), b.log)
	if err != nil {
		return nil, err
	}

	if err := os.RemoveAll(b.cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("remove output directory %s: %w", b.cfg.OutputDir, err)
	}
	if err := os.MkdirAll(b.cfg.OutputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", b.cfg.OutputDir, err)
	}

	if b.cfg.StaticDir != "" {
		if _, err := os.Stat(b.cfg.StaticDir); err == nil {
			if err := copyDirContents(b.cfg.StaticDir, b.cfg.OutputDir, b.log); err != nil {
				return nil, fmt.Errorf("copy static assets: %w", err)
			}
		} else {
			b.log.Debug("static directory not found, skipping copy", logger.String("dir", b.cfg.StaticDir))
		}
	}

	r := renderer{tpl: tpl, outputDir: b.cfg.OutputDir, log: b.log}
	if err := r.renderSite(site); err != nil {
		return nil, err
	}
	if err := writeIndex(b.cfg.OutputDir, site); err != nil {
		return nil, err
	}

	b.log.Info("build completed", logger.Int("items", len(site.ContentItems)))
	return site, nil
}

// checkOutputDir refuses an output directory that is, or contains, the
// content root, the layouts or the static directory.
func (b *Builder) checkOutputDir() error {
	out, err := filepath.Abs(b.cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("resolve output directory %s: %w", b.cfg.OutputDir, err)
	}
	sources := []struct{ name, dir string }{
		{"content root", b.reader.Root()},
		{"layouts directory", b.cfg.LayoutsDir},
		{"static directory", b.cfg.StaticDir},
	}
	for _, src := range sources {
		if src.dir == "" {
			continue
		}
		abs, err := filepath.Abs(src.dir)
		if err != nil {
			return fmt.Errorf("resolve %s %s: %w", src.name, src.dir, err)
		}
		rel, err := filepath.Rel(out, abs)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return fmt.Errorf("%w: %s %s is inside %s", ErrUnsafeOutputDir, src.name, abs, out)
		}
	}
	return nil
}

func (b *Builder) summaryWords(cols siteconfig.Collections, ct model.ContentType) int {
	var settings siteconfig.CollectionSettings
	switch ct {
	case model.Blog:
		settings = cols.Blog
	case model.Projects:
		settings = cols.Projects
	}
	if settings.SummaryWords > 0 {
		return settings.SummaryWords
	}
	if b.cfg.SummaryWords > 0 {
		return b.cfg.SummaryWords
	}
	return format.DefaultShortDescriptionWords
}

func (b *Builder) locale(siteLocale string) monday.Locale {
	for _, candidate := range []string{b.cfg.Locale, siteLocale} {
		if l, ok := format.ParseLocale(candidate); ok {
			return l
		}
	}
	return format.DefaultLocale()
}

// sortByDate orders items newest first; undated items go last.
func sortByDate(items []*model.ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date.IsZero() {
			return false
		}
		if items[j].Date.IsZero() {
			return true
		}
		return items[i].Date.After(items[j].Date)
	})
}
