package composition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/nestgen/internal/utils/fileops"
)

func writeComposition(t *testing.T, root string) string {
	t.Helper()
	path := filepath.Join(root, "src", "app.module.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(readFixture(t)), 0o644))
	return path
}

func TestRegisterPersists(t *testing.T) {
	root := t.TempDir()
	path := writeComposition(t, root)

	p := NewPatcher(fileops.NewFileOps(root), Options{})
	res, err := p.Register("src/app.module.ts", tagsModule)
	require.NoError(t, err)
	assert.Equal(t, StatusRegistered, res.Status)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, res.Content, string(data))

	again, err := p.Register("src/app.module.ts", tagsModule)
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyRegistered, again.Status)
}

func TestRegisterDryRunLeavesFile(t *testing.T) {
	root := t.TempDir()
	path := writeComposition(t, root)

	p := NewPatcher(fileops.NewFileOps(root, fileops.WithDryRun(true)), Options{})
	res, err := p.Register("src/app.module.ts", tagsModule)
	require.NoError(t, err)
	assert.Equal(t, StatusRegistered, res.Status)
	assert.True(t, res.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, readFixture(t), string(data))
}

func TestRegisterMissingFileIsWarning(t *testing.T) {
	p := NewPatcher(fileops.NewFileOps(t.TempDir()), Options{})

	res, err := p.Register("src/app.module.ts", tagsModule)
	require.NoError(t, err)
	assert.Equal(t, StatusNoComposition, res.Status)
	assert.True(t, res.Status.IsWarning())
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "TagsModule")
}
