// Package ciutil centralizes environment detection: whether the process runs
// under CI, which environment variable supplies a setting, and where the
// project root is. Tooling such as migration file creation and the
// integration test database use it instead of reading os.Getenv ad hoc.
package ciutil
