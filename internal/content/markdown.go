package content

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path"

	"github.com/adrg/frontmatter"

	"github.com/RATIU5/zaggonaut/internal/model"
)

// Load reads a single content file, decodes its frontmatter into T,
// validates it, and renders the body to HTML.
func Load[T Frontmatter](ctx context.Context, r *Reader, ct model.ContentType, stem string) (model.MarkdownRecord[T], error) {
	var rec model.MarkdownRecord[T]
	file := r.Path(ct, stem)
	fail := func(err error) (model.MarkdownRecord[T], error) {
		return rec, &LoadError{ContentType: ct, Stem: stem, Path: file, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	src, err := os.ReadFile(file)
	if err != nil {
		return fail(err)
	}

	var fm T
	body, err := frontmatter.Parse(bytes.NewReader(src), &fm)
	if err != nil {
		return fail(fmt.Errorf("parse frontmatter: %w", err))
	}
	if err := fm.Validate(); err != nil {
		return fail(fmt.Errorf("%w: %w", model.ErrInvalidFrontmatter, err))
	}

	var html bytes.Buffer
	if err := r.md.Convert(body, &html); err != nil {
		return fail(fmt.Errorf("render markdown: %w", err))
	}

	rec = model.MarkdownRecord[T]{
		Frontmatter: fm,
		File:        file,
		URL:         "/" + path.Join(string(ct), stem),
		Stem:        stem,
		Body:        body,
		HTML:        template.HTML(html.String()),
	}
	return rec, nil
}
