// Package content reads the markdown files under src/pages/<type> and
// shapes them into typed records.
package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/sync/errgroup"

	"github.com/RATIU5/zaggonaut/internal/logger"
	"github.com/RATIU5/zaggonaut/internal/model"
)

const markdownExt = ".md"

// Frontmatter is implemented by every per-type frontmatter schema.
type Frontmatter interface {
	Validate() error
}

// Reader resolves content stems to files below a site root.
type Reader struct {
	root        string
	md          goldmark.Markdown
	log         logger.Logger
	concurrency int
}

// Option configures a Reader.
type Option func(*Reader)

// WithMarkdown replaces the default goldmark pipeline.
func WithMarkdown(md goldmark.Markdown) Option {
	return func(r *Reader) { r.md = md }
}

func WithLogger(l logger.Logger) Option {
	return func(r *Reader) { r.log = l }
}

// WithConcurrency bounds the number of files loaded at once. Zero or a
// negative value leaves loads unbounded.
func WithConcurrency(n int) Option {
	return func(r *Reader) { r.concurrency = n }
}

// NewReader returns a Reader rooted at root, or at the working directory
// when root is empty.
func NewReader(root string, opts ...Option) (*Reader, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve content root %s: %w", root, err)
	}

	r := &Reader{
		root: abs,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
				gmhtml.WithUnsafe(),
			),
		),
		log: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Root is the absolute site root.
func (r *Reader) Root() string {
	return r.root
}

// Dir is the absolute directory holding markdown files of ct.
func (r *Reader) Dir(ct model.ContentType) string {
	return filepath.Join(r.root, filepath.FromSlash(ct.Dir()))
}

// Path maps a stem to its source file.
func (r *Reader) Path(ct model.ContentType, stem string) string {
	return filepath.Join(r.Dir(ct), stem+markdownExt)
}

// Stems lists the markdown files of ct, reduced to the text before the
// first dot, in directory order.
func (r *Reader) Stems(ctx context.Context, ct model.ContentType) ([]string, error) {
	if !ct.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownContentType, ct)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := r.Dir(ct)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content directory %s: %w", dir, err)
	}

	stems := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, markdownExt) {
			continue
		}
		stem, _, _ := strings.Cut(name, ".")
		stems = append(stems, stem)
	}
	return stems, nil
}

// ProcessContentInDir loads every markdown file of ct concurrently and
// applies fn to each record. Results keep stem order. The first failure
// cancels outstanding loads and fails the whole batch.
func ProcessContentInDir[T Frontmatter, K any](ctx context.Context, r *Reader, ct model.ContentType, fn func(model.MarkdownRecord[T]) K) ([]K, error) {
	stems, err := r.Stems(ctx, ct)
	if err != nil {
		return nil, err
	}

	results := make([]K, len(stems))
	g, gctx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}
	for i, stem := range stems {
		g.Go(func() error {
			rec, err := Load[T](gctx, r, ct, stem)
			if err != nil {
				return err
			}
			results[i] = fn(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.log.Debug("content processed",
		logger.String("content_type", ct.String()),
		logger.Int("count", len(results)),
	)
	return results, nil
}
