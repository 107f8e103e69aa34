package site

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RATIU5/zaggonaut/internal/format"
	"github.com/RATIU5/zaggonaut/internal/logger"
	"github.com/RATIU5/zaggonaut/internal/model"
)

const (
	singleLayout = "single.html"
	listLayout   = "list.html"
	indexFile    = "index.json"
)

var titleCaser = cases.Title(language.English)

// Label turns a slug such as "blog" or "my-project" into display text.
func Label(slug string) string {
	return titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
}

func templateFuncs(locale monday.Locale) template.FuncMap {
	return template.FuncMap{
		"title":            Label,
		"shortDescription": format.ShortDescription,
		"articleDate": func(t time.Time) string {
			return format.ArticleDateIn(t, locale)
		},
		"sourceURL": func(root, slug string, ct model.ContentType) string {
			return format.SourceURL(root, slug, ct)
		},
	}
}

// loadLayouts parses every .html file below dir, partials included.
// single.html is required. The articleDate function formats with locale.
func loadLayouts(dir string, locale monday.Locale, log logger.Logger) (*template.Template, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find layout files in %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .html layouts found in %s", dir)
	}

	tpl, err := template.New("").Funcs(templateFuncs(locale)).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	if tpl.Lookup(singleLayout) == nil {
		return nil, fmt.Errorf("layout %s not found in %s", singleLayout, dir)
	}
	log.Debug("parsed layouts", logger.Int("count", len(files)))
	return tpl, nil
}

type renderer struct {
	tpl       *template.Template
	outputDir string
	log       logger.Logger
}

func (r renderer) renderSite(site *model.SiteData) error {
	for _, item := range site.ContentItems {
		out := filepath.Join(r.outputDir, string(item.Type), item.Stem, "index.html")
		if err := r.renderToFile(out, singleLayout, model.PageData{Site: site, Item: item}); err != nil {
			return fmt.Errorf("render %s/%s: %w", item.Type, item.Stem, err)
		}
	}

	if r.tpl.Lookup(listLayout) == nil {
		r.log.Warn("list layout not found, skipping index pages", logger.String("layout", listLayout))
		return nil
	}
	for _, ct := range model.ContentTypes() {
		items, ok := site.ContentByType[ct]
		if !ok {
			continue
		}
		out := filepath.Join(r.outputDir, string(ct), "index.html")
		data := model.ListData{Site: site, Type: ct, Label: Label(string(ct)), Items: items}
		if err := r.renderToFile(out, listLayout, data); err != nil {
			return fmt.Errorf("render %s index: %w", ct, err)
		}
	}
	return nil
}

func (r renderer) renderToFile(path, layout string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.tpl.ExecuteTemplate(f, layout, data); err != nil {
		f.Close()
		return fmt.Errorf("execute %s: %w", layout, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	r.log.Debug("generated page", logger.String("path", path), logger.String("layout", layout))
	return nil
}

// Index is the machine-readable listing written to index.json.
type Index struct {
	Title string       `json:"title"`
	Items []IndexEntry `json:"items"`
}

type IndexEntry struct {
	Title     string            `json:"title"`
	Type      model.ContentType `json:"type"`
	Permalink string            `json:"permalink"`
	SourceURL string            `json:"sourceUrl"`
	Date      *time.Time        `json:"date,omitempty"`
	Summary   string            `json:"summary"`
	Tags      []string          `json:"tags,omitempty"`
	Featured  bool              `json:"featured,omitempty"`
}

func writeIndex(outputDir string, site *model.SiteData) error {
	idx := Index{Title: site.Title, Items: make([]IndexEntry, 0, len(site.ContentItems))}
	for _, item := range site.ContentItems {
		e := IndexEntry{
			Title:     item.Title,
			Type:      item.Type,
			Permalink: item.Permalink,
			SourceURL: item.SourceURL,
			Summary:   item.Summary,
			Tags:      item.Tags,
			Featured:  item.Featured,
		}
		if !item.Date.IsZero() {
			d := item.Date
			e.Date = &d
		}
		idx.Items = append(idx.Items, e)
	}

	f, err := os.Create(filepath.Join(outputDir, indexFile))
	if err != nil {
		return fmt.Errorf("create %s: %w", indexFile, err)
	}
	defer f.Close()
	return encodeIndex(f, idx)
}

func encodeIndex(w io.Writer, idx Index) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(idx); err != nil {
		return fmt.Errorf("encode %s: %w", indexFile, err)
	}
	return nil
}
