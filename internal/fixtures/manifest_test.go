package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadManifest(t *testing.T) {
	t.Run("resolves relative and keeps absolute paths", func(t *testing.T) {
		path := writeManifest(t, `pairs:
  - name: correct/calculator
    implementation: correct/calculator.js
    documentation: /abs/calculator.md
`)
		pairs, err := LoadManifest(path)
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, filepath.Join(filepath.Dir(path), "correct", "calculator.js"), pairs[0].ImplementationPath)
		assert.Equal(t, "/abs/calculator.md", pairs[0].DocumentationPath)
		assert.False(t, pairs[0].ExpectedContradiction)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		path := writeManifest(t, `pairs:
  - name: correct/calculator
    implementation: a.js
    documentation: a.md
    contradicton: true
`)
		_, err := LoadManifest(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse manifest")
	})

	t.Run("requires documentation", func(t *testing.T) {
		path := writeManifest(t, `pairs:
  - name: correct/calculator
    implementation: a.js
`)
		_, err := LoadManifest(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "documentation is required")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
