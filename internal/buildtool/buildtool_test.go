package buildtool

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasDescriptor(t *testing.T) {
	dir := t.TempDir()
	descriptor := filepath.Join(dir, "meson.build")

	assert.False(t, HasDescriptor(descriptor))

	require.NoError(t, os.WriteFile(descriptor, []byte("project('logger', 'cpp')\n"), 0644))
	assert.True(t, HasDescriptor(descriptor))

	// A directory of the same name does not count.
	sub := filepath.Join(dir, "meson.build.d")
	require.NoError(t, os.Mkdir(sub, 0755))
	assert.False(t, HasDescriptor(sub))
}
