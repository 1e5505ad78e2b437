// Package runner provides multi-file LDIF parsing orchestration.
package runner

import (
	"io"

	"github.com/yaklabco/goldif/pkg/config"
	"github.com/yaklabco/goldif/pkg/parser"
)

// StdinPath is the path argument that selects standard input.
const StdinPath = "-"

// Options controls multi-file parsing behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory. StdinPath reads Stdin.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) collected
	// from directories. Defaults to config.DefaultExtensions().
	Extensions []string

	// Ignore holds glob patterns used to skip files or directories,
	// relative to WorkingDir. A pattern without "/" matches any path segment.
	Ignore []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Parser holds the options passed to every parse.
	Parser parser.Options

	// MaxFileSize caps the bytes read from one file. 0 means no limit.
	MaxFileSize int64

	// Stdin is read when StdinPath appears in Paths.
	Stdin io.Reader
}

// OptionsFromConfig builds Options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:      paths,
		Extensions: cfg.Extensions,
		Ignore:     cfg.Ignore,
		Jobs:       cfg.Jobs,
		Parser: parser.Options{
			RequireVersion: cfg.RequireVersionEnabled(),
			StrictRecords:  cfg.StrictRecordsEnabled(),
		},
	}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
