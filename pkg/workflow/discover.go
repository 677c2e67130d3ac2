// Package workflow finds GitHub Actions workflow files and extracts the actions their steps use.
package workflow

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// Dir is the directory searched for workflow files.
const Dir = ".github/workflows"

// Discover returns workflow files under Dir relative to pwd.
// .yml files come first, then .yaml files, each in lexical order.
func Discover(fs afero.Fs, pwd string) ([]string, error) {
	return Glob(fs, pwd, []string{
		filepath.Join(Dir, "*.yml"),
		filepath.Join(Dir, "*.yaml"),
	})
}

// Glob returns files matching patterns, in pattern order.
// Relative patterns are relative to dir. Returned paths are relative to dir.
func Glob(fs afero.Fs, dir string, patterns []string) ([]string, error) {
	files := []string{}
	for _, pattern := range patterns {
		p := pattern
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, pattern)
		}
		matches, err := afero.Glob(fs, p)
		if err != nil {
			return nil, fmt.Errorf("look for workflow files using glob: %w", logerr.WithFields(err, logrus.Fields{
				"pattern": pattern,
			}))
		}
		for _, match := range matches {
			p, err := filepath.Rel(dir, match)
			if err != nil {
				return nil, fmt.Errorf("get a relative path: %w", err)
			}
			files = append(files, p)
		}
	}
	return files, nil
}
