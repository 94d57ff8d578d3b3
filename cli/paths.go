package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"atsconv/ats"
	"github.com/pkg/errors"
)

// CollectPaths expands directories into the ats files below them. Plain
// files are kept as given, whatever their extension.
func CollectPaths(paths []string) ([]string, error) {
	collected := make([]string, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrap(err, "CollectPaths error")
		}
		if !info.IsDir() {
			collected = append(collected, path)
			continue
		}

		found := make([]string, 0)
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ats.Extension) {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "CollectPaths error: %s", path)
		}
		sort.Strings(found)
		collected = append(collected, found...)
	}
	return collected, nil
}
