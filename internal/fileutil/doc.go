// Package fileutil resolves the file selector given on the command line into
// the concrete list of files to scan.
//
// # Resolution Rules
//
// The selector is expanded as a glob with github.com/bmatcuk/doublestar/v4,
// which supports the usual wildcards plus "**" for recursive matching and
// "{a,b}" alternation:
//
//	logs/*.log
//	logs/**/*.log
//	/var/log/{syslog,messages}
//
// Only files are returned; directories matched by a wildcard are skipped.
// Results are deduplicated and sorted so repeated runs scan in the same order.
//
// # Literal Fallback
//
// Resolution never fails. When the selector is not a valid glob (for example
// an unterminated "[" in a real file name), or when it is valid but matches
// nothing, the raw selector is returned as the only path. The caller then
// reports a nonexistent path or a directory as a per-file error instead of
// silently scanning nothing:
//
//	res := fileutil.ResolveFiles("missing.log")
//	// res.Files == []string{"missing.log"}, res.Fallback == true
package fileutil
