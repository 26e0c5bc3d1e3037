package mediastore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/llehouerou/shoal/internal/tags"
)

// discoverFiles walks the given source directories and returns all music files found,
// plus a set of their paths for the deletion phase.
func discoverFiles(
	ctx context.Context,
	sources []string,
	report func(ScanProgress),
) (files []fileInfo, discovered map[string]struct{}, err error) {
	for _, src := range sources {
		walkErr := filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Unreadable entries are skipped so the rest of the tree is still indexed
			if walkErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}
			if d.IsDir() || !tags.IsMusicFile(path) {
				return nil
			}

			info, infoErr := d.Info()
			if infoErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}

			files = append(files, fileInfo{
				path:   path,
				mtime:  info.ModTime().Unix(),
				source: src,
			})
			if len(files)%100 == 0 {
				report(ScanProgress{Phase: PhaseScanning, Current: len(files)})
			}
			return nil
		})
		if walkErr != nil {
			return nil, nil, walkErr
		}
	}

	discovered = make(map[string]struct{}, len(files))
	for _, f := range files {
		discovered[f.path] = struct{}{}
	}
	return files, discovered, nil
}

// relativePath returns the path relative to the source, or the full path if not under source.
func relativePath(source, path string) string {
	rel, err := filepath.Rel(source, path)
	if err != nil {
		return path
	}
	return rel
}
