package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
)

// Export copies the publishable files of the content root into the target directory.
// Hidden and ignored files are skipped.
func (c *Config) Export(target string) error {
	root := c.ContentDir()
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if absTarget == root || strings.HasPrefix(absTarget, root+string(filepath.Separator)) {
		return fmt.Errorf("export directory %s must be outside the content root", target)
	}

	err = copy.Copy(root, absTarget, copy.Options{
		Skip: func(srcinfo os.FileInfo, src, dest string) (bool, error) {
			if src == root {
				return false, nil
			}
			if strings.HasPrefix(srcinfo.Name(), ".") {
				return true, nil
			}
			relativePath, err := filepath.Rel(root, src)
			if err != nil {
				return false, err
			}
			return c.MustExcludeFile(relativePath, srcinfo.IsDir()), nil
		},
		OnSymlink: func(src string) copy.SymlinkAction {
			return copy.Deep
		},
	})
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", root, err)
	}
	CurrentLogger().Infof("Exported %s to %s", root, absTarget)
	return nil
}
