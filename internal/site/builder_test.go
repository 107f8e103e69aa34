package site

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RATIU5/zaggonaut/internal/config"
	"github.com/RATIU5/zaggonaut/internal/content"
	"github.com/RATIU5/zaggonaut/internal/logger"
	"github.com/RATIU5/zaggonaut/internal/model"
	"github.com/RATIU5/zaggonaut/internal/siteconfig"
)

const testConfiguration = `
[site]
title = "Zaggonaut"
url = "https://zaggonaut.dev/"
author = "Ratius"

[collections.blog]
summaryWords = 2
`

const singleHTML = `<h1>{{.Item.Title}}</h1><time>{{.Item.DisplayDate}}</time><a href="{{.Item.SourceURL}}">source</a>{{.Item.ContentHTML}}<footer>{{.Site.Title}}</footer>`

const listHTML = `<h2>{{.Label}}</h2><ul>{{range .Items}}<li>{{.Title}}|{{.Summary}}</li>{{end}}</ul>`

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

type fixture struct {
	root string
	cfg  config.Config
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	write(t, filepath.Join(root, "src", "content", "configuration", "configuration.toml"), testConfiguration)
	write(t, filepath.Join(root, "src", "pages", "blog", "a.md"),
		"---\ntitle: Older\ndescription: one two three\ntimestamp: 2024-01-05T00:00:00Z\n---\n# Older\n")
	write(t, filepath.Join(root, "src", "pages", "blog", "b.md"),
		"---\ntitle: Newer\ndescription: short\ntimestamp: 2024-02-01T00:00:00Z\n---\nNewer body\n")
	write(t, filepath.Join(root, "layouts", "single.html"), singleHTML)
	write(t, filepath.Join(root, "layouts", "list.html"), listHTML)
	write(t, filepath.Join(root, "public", "css", "site.css"), "body{}")

	return fixture{
		root: root,
		cfg: config.Config{
			ContentDir:   root,
			OutputDir:    filepath.Join(root, "dist"),
			LayoutsDir:   filepath.Join(root, "layouts"),
			StaticDir:    filepath.Join(root, "public"),
			Locale:       "en_US",
			SummaryWords: 20,
		},
	}
}

func (f fixture) builder(t *testing.T) *Builder {
	t.Helper()
	reader, err := content.NewReader(f.root)
	require.NoError(t, err)
	cache := siteconfig.NewCache(siteconfig.FileCollections{Root: f.root})
	return NewBuilder(f.cfg, reader, cache, logger.NewNop())
}

func readOutput(t *testing.T, f fixture, rel string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(f.cfg.OutputDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(b)
}

func TestCollect(t *testing.T) {
	f := newFixture(t)

	site, err := f.builder(t).Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Zaggonaut", site.Title)
	assert.Equal(t, "https://zaggonaut.dev", site.RootURL)

	posts := site.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "Newer", posts[0].Title)
	assert.Equal(t, "Older", posts[1].Title)

	older := posts[1]
	assert.Equal(t, "one two...", older.Summary)
	assert.Equal(t, "Jan 5, 2024", older.DisplayDate)
	assert.Equal(t, "https://zaggonaut.dev/blog/a", older.SourceURL)
	assert.Equal(t, "/blog/a/", older.Permalink)
	assert.Equal(t, model.Blog, older.Type)

	assert.Empty(t, site.Projects())
	_, hasProjects := site.ContentByType[model.Projects]
	assert.False(t, hasProjects)
}

func TestCollect_RootURLOverride(t *testing.T) {
	f := newFixture(t)
	f.cfg.RootURL = "https://example.com"

	site, err := f.builder(t).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/blog/b", site.Posts()[0].SourceURL)
}

func TestBuild(t *testing.T) {
	f := newFixture(t)
	write(t, filepath.Join(f.cfg.OutputDir, "stale.html"), "old")

	site, err := f.builder(t).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, site.ContentItems, 2)

	page := readOutput(t, f, "blog/a/index.html")
	assert.Contains(t, page, "<h1>Older</h1>")
	assert.Contains(t, page, "<time>Jan 5, 2024</time>")
	assert.Contains(t, page, `href="https://zaggonaut.dev/blog/a"`)
	assert.Contains(t, page, `<h1 id="older">Older</h1>`)
	assert.Contains(t, page, "<footer>Zaggonaut</footer>")

	list := readOutput(t, f, "blog/index.html")
	assert.Contains(t, list, "<h2>Blog</h2>")
	assert.Contains(t, list, "<li>Newer|short</li><li>Older|one two...</li>")

	assert.Equal(t, "body{}", readOutput(t, f, "css/site.css"))
	assert.NoFileExists(t, filepath.Join(f.cfg.OutputDir, "stale.html"))
	assert.NoFileExists(t, filepath.Join(f.cfg.OutputDir, "projects", "index.html"))

	var idx Index
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, f, "index.json")), &idx))
	assert.Equal(t, "Zaggonaut", idx.Title)
	require.Len(t, idx.Items, 2)
	assert.Equal(t, "Newer", idx.Items[0].Title)
	assert.Equal(t, "/blog/b/", idx.Items[0].Permalink)
	require.NotNil(t, idx.Items[0].Date)
}

func TestBuild_Projects(t *testing.T) {
	f := newFixture(t)
	write(t, filepath.Join(f.root, "src", "pages", "projects", "tool.md"),
		"---\ntitle: Tool\ndescription: A handy tool\ntimestamp: 2023-03-02T00:00:00Z\ngithubUrl: https://github.com/RATIU5/zaggonaut\n---\nTool body\n")

	site, err := f.builder(t).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, site.Projects(), 1)
	assert.Equal(t, "Tool", site.ContentItems[2].Title)

	assert.Contains(t, readOutput(t, f, "projects/tool/index.html"), "<h1>Tool</h1>")
	assert.Contains(t, readOutput(t, f, "projects/index.html"), "<h2>Projects</h2>")
}

func TestBuild_InvalidFrontmatter(t *testing.T) {
	f := newFixture(t)
	write(t, filepath.Join(f.root, "src", "pages", "blog", "c.md"), "---\ntitle: No date\n---\n")

	_, err := f.builder(t).Build(context.Background())
	assert.ErrorIs(t, err, model.ErrInvalidFrontmatter)
}

func TestBuild_MissingConfiguration(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.RemoveAll(filepath.Join(f.root, "src", "content")))

	_, err := f.builder(t).Build(context.Background())
	assert.ErrorIs(t, err, siteconfig.ErrConfigurationMissing)
}

func TestBuild_MissingSingleLayout(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.root, "layouts", "single.html")))

	_, err := f.builder(t).Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single.html")
}

func TestBuild_RefusesOutputDirOverSources(t *testing.T) {
	tests := []struct {
		name   string
		output func(f fixture) string
	}{
		{"content root", func(f fixture) string { return f.root }},
		{"parent of content root", func(f fixture) string { return filepath.Dir(f.root) }},
		{"layouts directory", func(f fixture) string { return f.cfg.LayoutsDir }},
		{"static directory", func(f fixture) string { return f.cfg.StaticDir }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cfg.OutputDir = tt.output(f)

			_, err := f.builder(t).Build(context.Background())
			assert.ErrorIs(t, err, ErrUnsafeOutputDir)
			assert.FileExists(t, filepath.Join(f.root, "src", "pages", "blog", "a.md"))
			assert.FileExists(t, filepath.Join(f.root, "layouts", "single.html"))
			assert.FileExists(t, filepath.Join(f.root, "public", "css", "site.css"))
		})
	}
}

func TestBuild_OutputDirBesideSources(t *testing.T) {
	f := newFixture(t)
	f.cfg.OutputDir = filepath.Join(f.root, "layouts-dist")

	_, err := f.builder(t).Build(context.Background())
	require.NoError(t, err)
	assert.Contains(t, readOutput(t, f, "blog/a/index.html"), "<h1>Older</h1>")
}

func TestBuild_ArticleDateUsesConfiguredLocale(t *testing.T) {
	f := newFixture(t)
	f.cfg.Locale = "de_DE"
	write(t, filepath.Join(f.root, "layouts", "single.html"),
		`<time>{{articleDate .Item.Date}}</time><span>{{.Item.DisplayDate}}</span>`)
	write(t, filepath.Join(f.root, "src", "pages", "blog", "c.md"),
		"---\ntitle: Herbst\ndescription: bunt\ntimestamp: 2024-10-03T00:00:00Z\n---\nBody\n")

	_, err := f.builder(t).Build(context.Background())
	require.NoError(t, err)

	page := readOutput(t, f, "blog/c/index.html")
	assert.Contains(t, page, "<time>Okt 3, 2024</time>")
	assert.Contains(t, page, "<span>Okt 3, 2024</span>")
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Blog", Label("blog"))
	assert.Equal(t, "My Cool Project", Label("my-cool_project"))
}
