package files

import (
	"fmt"
	"os"
)

// IsFile reports whether path names a regular file, following symlinks. A
// missing path or a directory is not an error.
func IsFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("Failed to determine if %s exists: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}
