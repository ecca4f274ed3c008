package ciutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// GoModFile marks the project root.
const GoModFile = "go.mod"

// maxTraversal bounds the upward search for go.mod.
const maxTraversal = 10

var (
	ErrProjectRootNotFound = errors.New("unable to find project root")
	ErrInvalidProjectRoot  = errors.New("invalid project root: no go.mod file found")
)

// FindProjectRoot returns the directory holding go.mod. It honours
// TASKLIST_PROJECT_ROOT, then GITHUB_WORKSPACE, then walks up from the
// working directory.
func FindProjectRoot(logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	for _, envVar := range []string{EnvProjectRoot, EnvGitHubWorkspace} {
		dir := os.Getenv(envVar)
		if dir == "" {
			continue
		}
		if envVar == EnvGitHubWorkspace && !IsGitHubActions() {
			continue
		}
		if !isValidProjectRoot(dir) {
			return "", fmt.Errorf("%w at %s", ErrInvalidProjectRoot, dir)
		}
		logger.Debug("using project root from environment", "source", envVar, "project_root", dir)
		return dir, nil
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return findProjectRootFrom(workingDir, logger)
}

func findProjectRootFrom(startDir string, logger *slog.Logger) (string, error) {
	dir := startDir
	for i := 0; i < maxTraversal; i++ {
		if fileExists(filepath.Join(dir, GoModFile)) {
			logger.Debug("found project root", "project_root", dir)
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%w from %s", ErrProjectRootNotFound, startDir)
}

func isValidProjectRoot(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	return fileExists(filepath.Join(dir, GoModFile))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
