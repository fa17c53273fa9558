package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755),
		"failed to create parent directories for %s", path)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644),
		"failed to create file %s", path)

	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read file %s", path)
	return string(data)
}

// NoticeRecorder collects the notices a guard or registry emits so
// tests can assert on them.
type NoticeRecorder struct {
	Notices []string
}

// Notify appends a notice; pass it as the component's Notifier.
func (r *NoticeRecorder) Notify(message string) {
	r.Notices = append(r.Notices, message)
}
