package utils

import (
	"os"
	"path/filepath"
)

// GetProjectRoot returns the directory holding go.mod, or "." if there is none.
func GetProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "." // fallback
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}

// FindConfigFile looks for names in the working directory, then the project root.
func FindConfigFile(names ...string) string {
	dirs := []string{"."}
	if root := GetProjectRoot(); root != "." {
		dirs = append(dirs, root)
	}
	for _, d := range dirs {
		for _, n := range names {
			p := filepath.Join(d, n)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}
