package app

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"schemagen/internal/core/errors"
	"schemagen/internal/shared/observability"
	"schemagen/internal/shared/util"
)

// ScanDirectory walks the schemas root and returns the supported schema
// source paths in sorted order. Sorting fixes the corpus iteration order, so
// repeated runs over an unchanged tree produce byte-identical artifacts.
func (a *App) ScanDirectory() ([]string, error) {
	dirGlobs, err := compilePatterns(a.Config.Exclude.Dirs)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "invalid exclude dir pattern")
	}
	fileGlobs, err := compilePatterns(a.Config.Exclude.Files)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "invalid exclude file pattern")
	}

	var files []string
	walkErr := filepath.WalkDir(a.SchemasPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		base := filepath.Base(path)
		if d.IsDir() {
			// When the output directory is nested inside the schemas root,
			// the generated artifact must not be scanned back in as input.
			if path != a.SchemasPath && util.HasPathPrefix(path, a.OutputPath) {
				return filepath.SkipDir
			}
			for _, g := range dirGlobs {
				if g.Match(base) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !a.parser.IsSupportedPath(path) {
			observability.FilesSkipped.Inc()
			return nil
		}

		for _, g := range fileGlobs {
			if g.Match(base) {
				observability.FilesSkipped.Inc()
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrap(walkErr, errors.CodeInternal, "failed to scan schemas directory")
	}

	sort.Strings(files)
	return files, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = util.NormalizePatternPath(pattern)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		globs = append(globs, g)
	}
	return globs, nil
}
