package fileops

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/nestgen/internal/errors"
)

func TestMaterializeCreatesDirectoriesAndFiles(t *testing.T) {
	root := t.TempDir()
	fo := NewFileOps(root)

	records, err := fo.Materialize(
		[]string{"src/modules/tags", "src/modules/tags/dto", "src/database/seeders"},
		[]File{
			{Path: "src/modules/tags/tags.module.ts", Content: "export class TagsModule {}\n"},
			{Path: "src/modules/tags/entities/tag.entity.ts", Content: "export class Tag {}\n"},
		},
	)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, OpCreate, records[0].Operation)

	assert.DirExists(t, filepath.Join(root, "src", "database", "seeders"))
	data, err := os.ReadFile(filepath.Join(root, "src", "modules", "tags", "entities", "tag.entity.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export class Tag {}\n", string(data))
}

func TestWriteFileOverwritesUnconditionally(t *testing.T) {
	root := t.TempDir()
	fo := NewFileOps(root)

	_, err := fo.WriteFile("src/a.ts", "generated\n")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.ts"), []byte("hand edited\n"), 0o644))

	record, err := fo.WriteFile("src/a.ts", "generated\n")
	require.NoError(t, err)
	assert.Equal(t, OpOverwrite, record.Operation)

	content, err := fo.ReadFile("src/a.ts")
	require.NoError(t, err)
	assert.Equal(t, "generated\n", content)
}

func TestEnsureDirIsIdempotent(t *testing.T) {
	root := t.TempDir()
	fo := NewFileOps(root)

	require.NoError(t, fo.EnsureDir("src/modules"))
	require.NoError(t, fo.EnsureDir("src/modules"))
	assert.DirExists(t, filepath.Join(root, "src", "modules"))
	assert.False(t, fo.IsFile("src/modules"))
}

func TestDryRunTouchesNothing(t *testing.T) {
	root := t.TempDir()
	fo := NewFileOps(root, WithDryRun(true))

	records, err := fo.Materialize([]string{"src/modules/tags"}, []File{{Path: "src/modules/tags/tags.module.ts", Content: "x"}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].DryRun)
	assert.Equal(t, 1, records[0].Bytes)

	assert.NoDirExists(t, filepath.Join(root, "src"))
	assert.True(t, fo.DryRun())
}

func TestRejectsPathsOutsideRoot(t *testing.T) {
	fo := NewFileOps(t.TempDir())

	for _, p := range []string{"../escape.ts", "src/../../escape.ts", "/etc/passwd", ""} {
		t.Run(p, func(t *testing.T) {
			_, err := fo.WriteFile(p, "x")
			require.Error(t, err)
			assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(err))
		})
	}
}

func TestResolveAllowsInnerDotDot(t *testing.T) {
	pv := NewPathValidator("/project")

	got, err := pv.Resolve("src/modules/../app.module.ts")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/project", "src", "app.module.ts"), got)
}

func TestReadFileMissing(t *testing.T) {
	fo := NewFileOps(t.TempDir())

	_, err := fo.ReadFile("src/app.module.ts")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
