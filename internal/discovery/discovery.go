// Package discovery finds the Go source files a gate run should analyze.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SourcePattern matches every Go source file under a root.
const SourcePattern = "**/*.go"

// DefaultExcludes are glob patterns skipped on every run, on top of the
// directories and files whose name starts with "." or "_", which the go
// tool ignores as well.
var DefaultExcludes = []string{
	"vendor/**",
	"testdata/**",
	"**/vendor/**",
	"**/testdata/**",
}

// File is one discovered Go source file.
type File struct {
	Path    string // absolute path
	RelPath string // slash-separated path relative to the discovery root
	Size    int64
}

// Discovery finds Go files under a project root.
type Discovery struct {
	rootPath string
	excludes []string
}

// New creates a Discovery for rootPath. extraExcludes come from config or
// flags and are matched against root-relative slash paths.
func New(rootPath string, extraExcludes []string) *Discovery {
	ex := make([]string, 0, len(DefaultExcludes)+len(extraExcludes))
	ex = append(ex, DefaultExcludes...)
	ex = append(ex, extraExcludes...)
	return &Discovery{rootPath: rootPath, excludes: ex}
}

// Discover returns every non-excluded Go file under the root. fs.WalkDir
// order makes the result deterministic for a given tree.
func (d *Discovery) Discover() ([]File, error) {
	matches, err := doublestar.Glob(os.DirFS(d.rootPath), SourcePattern)
	if err != nil {
		return nil, fmt.Errorf("evaluating pattern %s: %w", SourcePattern, err)
	}

	var files []File
	for _, match := range matches {
		if f, ok := d.processMatch(match); ok {
			files = append(files, f)
		}
	}
	return files, nil
}

func (d *Discovery) processMatch(match string) (File, bool) {
	if d.excluded(match) {
		return File{}, false
	}
	fullPath := filepath.Join(d.rootPath, match)
	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return File{}, false
	}
	return File{Path: fullPath, RelPath: match, Size: info.Size()}, true
}

// excluded reports whether a root-relative match is filtered out.
func (d *Discovery) excluded(match string) bool {
	for _, part := range strings.Split(match, "/") {
		if strings.HasPrefix(part, ".") || strings.HasPrefix(part, "_") {
			return true
		}
	}
	for _, pattern := range d.excludes {
		if ok, err := doublestar.Match(pattern, match); err == nil && ok {
			return true
		}
	}
	return false
}

// ExpandPaths resolves explicit path arguments: a directory expands to the
// non-excluded Go files beneath it, a file must be a Go source. Result
// order follows the arguments.
func ExpandPaths(paths []string, extraExcludes []string) ([]File, error) {
	var files []File
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", p, err)
		}
		if info.IsDir() {
			sub, err := New(abs, extraExcludes).Discover()
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}
		if filepath.Ext(abs) != ".go" {
			return nil, fmt.Errorf("not a Go source file: %s", p)
		}
		files = append(files, File{Path: abs, RelPath: filepath.ToSlash(p), Size: info.Size()})
	}
	return files, nil
}
