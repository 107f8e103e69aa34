package siteconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"

	"github.com/RATIU5/zaggonaut/internal/logger"
)

// FileCollections reads collections from src/content/<name> below Root.
// Each .toml, .yaml or .yml file is one entry, ordered by file name.
type FileCollections struct {
	Root string
	Log  logger.Logger
}

// Dir is the directory holding the named collection.
func (f FileCollections) Dir(name string) string {
	return filepath.Join(f.Root, "src", "content", name)
}

func (f FileCollections) LoadCollection(ctx context.Context, name string) ([]Entry, error) {
	log := f.Log
	if log == nil {
		log = logger.NewNop()
	}

	dir := f.Dir(name)
	files, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("collection directory not found", logger.String("collection", name), logger.String("dir", dir))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", name, err)
	}

	var entries []Entry
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if file.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext != ".toml" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, file.Name())
		data, err := decodeEntry(path, ext)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			ID:   strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())),
			Data: data,
		})
	}
	return entries, nil
}

func decodeEntry(path, ext string) (*Configuration, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var cfg Configuration
	switch ext {
	case ".toml":
		err = toml.Unmarshal(raw, &cfg)
	default:
		err = yaml.Unmarshal(raw, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &cfg, nil
}
