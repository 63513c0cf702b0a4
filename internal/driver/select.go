package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// sourceExtensions are the extensions the Objective-C grammar driver
// understands (§6.1).
var sourceExtensions = map[string]bool{".m": true, ".h": true}

// SelectFiles walks root and returns every recognized source file whose
// path matches at least one include pattern (all files, if include is
// empty) and no exclude pattern, mirroring code-watch's
// CompileGlobs+walk selection shape (§4.7.3).
func SelectFiles(root string, include, exclude []string) ([]string, error) {
	includeGlobs, err := compileGlobs(include, "include")
	if err != nil {
		return nil, err
	}
	excludeGlobs, err := compileGlobs(exclude, "exclude")
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !sourceExtensions[filepath.Ext(path)] {
			return nil
		}
		if len(includeGlobs) > 0 && !matchesAny(includeGlobs, path) {
			return nil
		}
		if matchesAny(excludeGlobs, path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func compileGlobs(patterns []string, label string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("driver: invalid %s pattern %q: %w", label, p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func matchesAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
