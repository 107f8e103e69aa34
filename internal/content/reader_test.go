package content

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RATIU5/zaggonaut/internal/model"
)

func blogPost(title string) string {
	return "---\ntitle: " + title + "\ndescription: About " + title + "\ntags: [go, astro]\ntimestamp: 2024-01-05T00:00:00Z\n---\n# " + title + "\n\nBody of " + title + ".\n"
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func newSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		writeFile(t, filepath.Join(root, filepath.FromSlash(rel)), body)
	}
	return root
}

func TestStems(t *testing.T) {
	root := newSite(t, map[string]string{
		"src/pages/blog/b.md":            blogPost("B"),
		"src/pages/blog/a.md":            blogPost("A"),
		"src/pages/blog/notes.txt":       "ignored",
		"src/pages/blog/post.draft.md":   blogPost("Draft"),
		"src/pages/blog/nested.md/x.txt": "dir named like markdown",
	})
	r, err := NewReader(root)
	require.NoError(t, err)

	stems, err := r.Stems(context.Background(), model.Blog)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "post"}, stems)
}

func TestStems_UnknownContentType(t *testing.T) {
	r, err := NewReader(t.TempDir())
	require.NoError(t, err)

	_, err = r.Stems(context.Background(), model.ContentType("notes"))
	assert.ErrorIs(t, err, model.ErrUnknownContentType)
}

func TestProcessContentInDir(t *testing.T) {
	root := newSite(t, map[string]string{
		"src/pages/blog/a.md":      blogPost("A"),
		"src/pages/blog/b.md":      blogPost("B"),
		"src/pages/blog/notes.txt": "ignored",
	})
	r, err := NewReader(root)
	require.NoError(t, err)

	var calls atomic.Int32
	got, err := ProcessContentInDir(context.Background(), r, model.Blog, func(rec model.MarkdownRecord[model.BlogFrontmatter]) model.MarkdownRecord[model.BlogFrontmatter] {
		calls.Add(1)
		return rec
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.EqualValues(t, 2, calls.Load())

	a := got[0]
	assert.Equal(t, "a", a.Stem)
	assert.Equal(t, "/blog/a", a.URL)
	assert.Equal(t, filepath.Join(root, "src", "pages", "blog", "a.md"), a.File)
	assert.Equal(t, "A", a.Frontmatter.Title)
	assert.Equal(t, "About A", a.Frontmatter.Description)
	assert.Equal(t, []string{"go", "astro"}, a.Frontmatter.Tags)
	assert.True(t, a.Frontmatter.Timestamp.Equal(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)))
	assert.Contains(t, string(a.HTML), `<h1 id="a">A</h1>`)
	assert.NotContains(t, string(a.Body), "title:")

	assert.Equal(t, "b", got[1].Stem)
}

func TestProcessContentInDir_PreservesOrderWithLimit(t *testing.T) {
	files := map[string]string{}
	for _, s := range []string{"e", "c", "a", "d", "b"} {
		files["src/pages/blog/"+s+".md"] = blogPost(s)
	}
	r, err := NewReader(newSite(t, files), WithConcurrency(2))
	require.NoError(t, err)

	got, err := ProcessContentInDir(context.Background(), r, model.Blog, func(rec model.MarkdownRecord[model.BlogFrontmatter]) string {
		return rec.Frontmatter.Title
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
}

func TestProcessContentInDir_MissingDirectory(t *testing.T) {
	r, err := NewReader(t.TempDir())
	require.NoError(t, err)

	got, err := ProcessContentInDir(context.Background(), r, model.Projects, func(rec model.MarkdownRecord[model.ProjectFrontmatter]) string {
		return rec.Stem
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Nil(t, got)
}

func TestProcessContentInDir_InvalidFrontmatterFailsBatch(t *testing.T) {
	root := newSite(t, map[string]string{
		"src/pages/projects/good.md": "---\ntitle: Good\ndescription: ok\ntimestamp: 2023-03-02T00:00:00Z\ngithubUrl: https://github.com/RATIU5/zaggonaut\n---\nbody\n",
		"src/pages/projects/bad.md":  "---\ntitle: Bad\n---\nno description\n",
	})
	r, err := NewReader(root)
	require.NoError(t, err)

	got, err := ProcessContentInDir(context.Background(), r, model.Projects, func(rec model.MarkdownRecord[model.ProjectFrontmatter]) string {
		return rec.Stem
	})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, model.ErrInvalidFrontmatter)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "bad", loadErr.Stem)
	assert.Equal(t, model.Projects, loadErr.ContentType)
}

func TestProcessContentInDir_CanceledContext(t *testing.T) {
	root := newSite(t, map[string]string{"src/pages/blog/a.md": blogPost("A")})
	r, err := NewReader(root)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ProcessContentInDir(ctx, r, model.Blog, func(rec model.MarkdownRecord[model.BlogFrontmatter]) string { return rec.Stem })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_MissingFile(t *testing.T) {
	r, err := NewReader(t.TempDir())
	require.NoError(t, err)

	_, err = Load[model.BlogFrontmatter](context.Background(), r, model.Blog, "ghost")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "blog/ghost")
}

func TestNewReader_DefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	r, err := NewReader("")
	require.NoError(t, err)
	assert.Equal(t, wd, r.Root())
}
