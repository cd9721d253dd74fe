package source

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/teranos/rpctypegen/errors"
	"github.com/teranos/rpctypegen/typegen/schema"
)

// ListAnnotationFiles returns the annotation files directly inside dir,
// sorted by path. Subdirectories and other files are skipped.
func ListAnnotationFiles(dir string, logger *zap.SugaredLogger) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewFilesystemError(err, dir)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() || !schema.IsAnnotationFile(entry.Name()) {
			logger.Debugw("Skipping non-annotation entry", "file", path)
			continue
		}
		files = append(files, path)
	}

	sort.Strings(files)
	return files, nil
}
