// Package git lists the files git considers staged or changed, for gate
// runs scoped to work in progress.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// StagedGoFiles returns absolute paths of Go files in the staging area.
// Returns an empty slice when not in a git repository.
func StagedGoFiles(rootPath string) ([]string, error) {
	if !IsRepo(rootPath) {
		return []string{}, nil
	}

	cmd := exec.Command("git", "diff", "--name-only", "--staged")
	cmd.Dir = rootPath
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("git diff --staged failed: %w: %s", err, output)
	}

	return filterGoFiles(string(output), rootPath), nil
}

// ChangedGoFiles returns absolute paths of all uncommitted Go changes,
// staged and unstaged. In a repository without commits every tracked Go
// file counts as changed.
func ChangedGoFiles(rootPath string) ([]string, error) {
	if !IsRepo(rootPath) {
		return []string{}, nil
	}

	checkCmd := exec.Command("git", "rev-parse", "HEAD")
	checkCmd.Dir = rootPath
	if err := checkCmd.Run(); err != nil {
		cmd := exec.Command("git", "ls-files")
		cmd.Dir = rootPath
		output, err := cmd.CombinedOutput()
		if err != nil {
			return nil, fmt.Errorf("git ls-files failed: %w: %s", err, output)
		}
		return filterGoFiles(string(output), rootPath), nil
	}

	cmd := exec.Command("git", "diff", "--name-only", "HEAD")
	cmd.Dir = rootPath
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("git diff HEAD failed: %w: %s", err, output)
	}

	return filterGoFiles(string(output), rootPath), nil
}

// IsRepo checks whether the given directory is within a git repository.
func IsRepo(rootPath string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = rootPath
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// filterGoFiles keeps the Go sources from git's name-only output, dropping
// files that no longer exist (deletions appear in diff output too), and
// converts them to absolute paths.
func filterGoFiles(gitOutput, rootPath string) []string {
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(gitOutput), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || filepath.Ext(line) != ".go" {
			continue
		}
		absPath := filepath.Join(rootPath, line)
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			continue
		}
		files = append(files, absPath)
	}
	return files
}
