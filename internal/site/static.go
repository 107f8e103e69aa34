package site

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/RATIU5/zaggonaut/internal/logger"
)

// copyDirContents recursively copies the files and directories of src
// into dst.
func copyDirContents(src, dst string, log logger.Logger) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			// Source permissions are not carried over; umask applies.
			if err := os.MkdirAll(target, os.ModePerm); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			return nil
		}
		if err := copyFile(path, target, log); err != nil {
			return fmt.Errorf("copy %s to %s: %w", path, target, err)
		}
		return nil
	})
}

func copyFile(srcFile, dstFile string, log logger.Logger) error {
	src, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcFile, err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dstFile), os.ModePerm); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(dstFile), err)
	}
	dst, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("create %s: %w", dstFile, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write %s: %w", dstFile, err)
	}

	info, err := src.Stat()
	if err != nil {
		log.Warn("stat source file", logger.String("path", srcFile), logger.Err(err))
		return nil
	}
	if err := os.Chmod(dstFile, info.Mode()); err != nil {
		log.Warn("preserve file mode", logger.String("path", dstFile), logger.Err(err))
	}
	return nil
}
