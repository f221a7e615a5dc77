package project

import (
	"os"
	"path/filepath"
	"strings"
)

// Info contains information about the detected project.
// Named 'Info' instead of 'ProjectInfo' to avoid stuttering (project.Info vs project.ProjectInfo).
type Info struct {
	Root      string
	IsModule  bool // has a go.mod at the root
	HasGit    bool
	GoVersion string // go directive from go.mod, empty when unknown
}

// FindProjectRoot searches for a project root starting from the given path
// and climbing up the directory tree if needed. A directory with a go.mod
// or a .git marker counts; without one, the starting directory is used.
func FindProjectRoot(startPath string) (string, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return "", err
	}

	currentDir := absPath
	for {
		if isProjectRoot(currentDir) {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	return absPath, nil
}

// isProjectRoot determines if a directory is a project root.
func isProjectRoot(path string) bool {
	if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		return true
	}
	return false
}

// Detect gathers project information at the given path.
// Named 'Detect' instead of 'DetectProjectInfo' to avoid stuttering.
func Detect(rootPath string) (*Info, error) {
	info := &Info{Root: rootPath}

	if _, err := os.Stat(filepath.Join(rootPath, "go.mod")); err == nil {
		info.IsModule = true
		info.GoVersion = goDirective(filepath.Join(rootPath, "go.mod"))
	}

	if _, err := os.Stat(filepath.Join(rootPath, ".git")); err == nil {
		info.HasGit = true
	}

	return info, nil
}

// goDirective pulls the go version line out of a go.mod, without bringing
// in a module file parser for one field.
func goDirective(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "go ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "go "))
		}
	}
	return ""
}
