package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/ecslua/internal/model"
)

// Find expands roots into scene files. Explicit files are kept whatever
// their extension; directories contribute their .yaml and .yml files.
func (l *LocalSceneStore) Find(roots []m.Path) ([]m.Path, error) {
	seen := make(map[string]struct{})

	var scenes []m.Path

	add := func(path string) {
		if _, exists := seen[path]; exists {
			return
		}

		seen[path] = struct{}{}
		scenes = append(scenes, m.Path(path))
	}

	for _, root := range roots {
		if root == "" {
			add("")
			continue
		}

		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(rootPath)
		if err != nil {
			return nil, fmt.Errorf("scene path error: %w", err)
		}

		if !info.IsDir() {
			add(rootPath)
			continue
		}

		err = walk(rootPath, recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !info.IsDir() && isSceneFile(path) {
				add(path)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return scenes, nil
}

// walk iterates over files under root, optionally descending into subdirectories.
func walk(root string, recursive bool, fn filepath.WalkFunc) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != root {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

func isSceneFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if strings.HasSuffix(rootStr, "/...") {
		return strings.TrimSuffix(rootStr, "/..."), true
	}

	return rootStr, false
}
