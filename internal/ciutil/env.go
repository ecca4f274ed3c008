package ciutil

import (
	"log/slog"
	"os"
)

// Environment variable names used outside the viper-managed configuration.
const (
	EnvCI              = "CI"
	EnvGitHubActions   = "GITHUB_ACTIONS"
	EnvGitHubWorkspace = "GITHUB_WORKSPACE"
	EnvGitLabCI        = "GITLAB_CI"

	EnvProjectRoot = "TASKLIST_PROJECT_ROOT"

	EnvDatabaseURL = "DATABASE_URL"
	EnvTestDBURL   = "TASKLIST_TEST_DB_URL"
)

// IsCI reports whether a known CI provider is detected.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != ""
}

// IsGitHubActions reports whether the process runs in a GitHub Actions workspace.
func IsGitHubActions() bool {
	return os.Getenv(EnvGitHubActions) != "" && os.Getenv(EnvGitHubWorkspace) != ""
}

// GetEnvWithFallbacks returns the value of the first non-empty variable in
// envVars, or defaultValue when none is set. Using anything but the first
// name is logged as a warning; values are never logged.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		val := os.Getenv(envVar)
		if val == "" {
			continue
		}
		if i > 0 && logger != nil {
			logger.Warn("using fallback environment variable",
				"used_var", envVar,
				"preferred_var", envVars[0])
		}
		return val
	}
	return defaultValue
}
