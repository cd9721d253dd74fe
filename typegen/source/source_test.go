package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teranos/rpctypegen/errors"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
}

func TestResolve_LocalDirectory(t *testing.T) {
	dir := t.TempDir()

	src, err := Resolve(context.Background(), dir, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer src.Cleanup()

	assert.Equal(t, dir, src.LocalPath)
	assert.Equal(t, dir, src.OriginalInput)
	assert.False(t, src.IsFetched)

	// Cleanup is idempotent and leaves local directories alone
	src.Cleanup()
	src.Cleanup()
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestResolve_LocalErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "getinfo.json")
	touch(t, file)

	_, err := Resolve(context.Background(), filepath.Join(dir, "missing"), zap.NewNop().Sugar())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFilesystem))

	_, err = Resolve(context.Background(), file, zap.NewNop().Sugar())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFilesystem))
}

func TestListAnnotationFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "getinfo.json"))
	touch(t, filepath.Join(dir, "getblock.json"))
	touch(t, filepath.Join(dir, "z_gettotalbalance.yaml"))
	touch(t, filepath.Join(dir, "README.md"))
	touch(t, filepath.Join(dir, "nested", "getpeerinfo.json"))

	files, err := ListAnnotationFiles(dir, zap.NewNop().Sugar())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "getblock.json"),
		filepath.Join(dir, "getinfo.json"),
		filepath.Join(dir, "z_gettotalbalance.yaml"),
	}, files)
}

func TestListAnnotationFiles_MissingDir(t *testing.T) {
	_, err := ListAnnotationFiles(filepath.Join(t.TempDir(), "missing"), zap.NewNop().Sugar())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFilesystem))
}

func TestLatestVersionDir(t *testing.T) {
	tests := []struct {
		name     string
		dirs     []string
		expected string
	}{
		{"semver ordering", []string{"v4.2.0", "v4.10.0", "v4.9.1"}, "v4.10.0"},
		{"without v prefix", []string{"1.0.0", "0.9.0"}, "1.0.0"},
		{"lexicographic fallback", []string{"zcashd_b", "zcashd_a", "v1.0.0"}, "zcashd_b"},
		{"single", []string{"latest"}, "latest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, d := range tt.dirs {
				require.NoError(t, os.Mkdir(filepath.Join(root, d), 0755))
			}
			// Files never count as versions
			touch(t, filepath.Join(root, "zzz.json"))

			latest, err := LatestVersionDir(root)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, latest)
		})
	}
}

func TestLatestVersionDir_Errors(t *testing.T) {
	_, err := LatestVersionDir(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFilesystem))
	assert.NotEmpty(t, errors.GetAllHints(err))

	_, err = LatestVersionDir(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no quizface output")
}

func TestDefaultOutputPath(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "v4.1.1"), 0755))

	path, err := DefaultOutputPath("./output", root, "0.1.0", "rs")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("output", "v4.1.1_0.1.0", "rpc_response_types.rs"), path)
}
