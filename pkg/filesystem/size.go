package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// FileSize returns the size for a single file in bytes.
func FileSize(path string) (int64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

// DirSize returns the total size for a directory in bytes.
// Hidden files and directories are ignored.
func DirSize(path string) (int64, error) {
	var size int64
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != path && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return size, nil
}

// FilesSize returns the total size of files relative to a root directory.
// Missing files are ignored.
func FilesSize(root string, relativePaths []string) int64 {
	var size int64
	for _, relativePath := range relativePaths {
		fileSize, err := FileSize(filepath.Join(root, filepath.FromSlash(relativePath)))
		if err != nil {
			continue
		}
		size += fileSize
	}
	return size
}

// HumanSize formats a size for humans (ex: 12 kB).
func HumanSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}
