// Package sysfs provides the filesystem operations snapshots are built
// from: hard-link-capable recursive copies, glob copies, and the dynamic
// linker cache refresh.
package sysfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyTree recursively copies the directory at src to dst. Regular files
// are hard-linked when possible (snapshots of a multi-hundred-megabyte
// header tree would otherwise double disk usage); when linking fails, e.g.
// across filesystems, the content is copied instead. Symlinks are
// recreated, permissions preserved.
func CopyTree(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", src)
	}

	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		fi, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return os.MkdirAll(target, fi.Mode().Perm())
		case fi.Mode()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return fmt.Errorf("failed to read symlink %s: %w", path, err)
			}
			os.Remove(target)
			return os.Symlink(link, target)
		default:
			return CopyFile(path, target)
		}
	})
}

// CopyFile copies a single regular file to target, trying a hard link
// first and falling back to a byte copy.
func CopyFile(path, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}

	os.Remove(target)
	if err := os.Link(path, target); err == nil {
		return nil
	}

	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", path, err)
	}
	return out.Close()
}

// CopyGlob copies every file in dir matching pattern into dstDir,
// preserving symlinks (library version chains like libfoo.so -> libfoo.so.2
// must survive the copy). Returns the number of entries copied.
func CopyGlob(dir, pattern, dstDir string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return 0, fmt.Errorf("bad pattern %s: %w", pattern, err)
	}

	copied := 0
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil {
			return copied, fmt.Errorf("failed to stat %s: %w", m, err)
		}
		if info.IsDir() {
			continue
		}

		target := filepath.Join(dstDir, filepath.Base(m))
		if info.Mode()&os.ModeSymlink != 0 {
			link, err := os.Readlink(m)
			if err != nil {
				return copied, fmt.Errorf("failed to read symlink %s: %w", m, err)
			}
			os.Remove(target)
			if err := os.Symlink(link, target); err != nil {
				return copied, fmt.Errorf("failed to recreate symlink %s: %w", target, err)
			}
		} else if err := CopyFile(m, target); err != nil {
			return copied, err
		}
		copied++
	}

	return copied, nil
}

// RemoveTree removes a directory tree. Missing trees are not an error.
func RemoveTree(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
