package fileutil

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveResult contains the files selected for a scan
type ResolveResult struct {
	// Files are the selected paths, sorted, as produced by the glob (not yet absolute)
	Files []string
	// Fallback is true when Files holds the raw selector instead of glob matches
	Fallback bool
	// GlobErr is the expansion error that caused the fallback, if any
	GlobErr error
}

// ResolveFiles expands fileOrGlob into the files to scan.
// It falls back to the raw selector when expansion fails or matches nothing.
func ResolveFiles(fileOrGlob string) *ResolveResult {
	matches, err := doublestar.FilepathGlob(fileOrGlob, doublestar.WithFilesOnly())
	if err != nil {
		return &ResolveResult{
			Files:    []string{fileOrGlob},
			Fallback: true,
			GlobErr:  err,
		}
	}

	if len(matches) == 0 {
		return &ResolveResult{
			Files:    []string{fileOrGlob},
			Fallback: true,
		}
	}

	// Deduplicate; overlapping alternations can yield the same file twice
	seen := make(map[string]bool, len(matches))
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		files = append(files, m)
	}

	// Sort files for consistent output
	sort.Strings(files)

	return &ResolveResult{Files: files}
}

// HasMeta reports whether s contains glob metacharacters.
func HasMeta(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', '{', '\\':
			return true
		}
	}
	return false
}
