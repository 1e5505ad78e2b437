package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/goldif/pkg/fsutil"
)

// ErrNoInput is returned by Discover when a named path does not exist.
var ErrNoInput = errors.New("no such file or directory")

// discoverer carries the per-call state of Discover.
type discoverer struct {
	workDir    string
	extensions map[string]struct{}
	opts       Options
	seen       map[string]struct{}
	walked     map[string]struct{}
	files      []string
}

// Discover finds LDIF files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
// StdinPath is passed through unchanged and sorts first.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: make(map[string]struct{}),
		opts:       opts,
		seen:       make(map[string]struct{}),
		walked:     make(map[string]struct{}),
	}
	for _, ext := range opts.effectiveExtensions() {
		d.extensions[strings.ToLower(ext)] = struct{}{}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		if inputPath == StdinPath {
			d.add(StdinPath)
			continue
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w", inputPath, ErrNoInput)
			}
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}

		// Files named explicitly skip the extension filter but not ignores.
		if !d.ignored(absPath) {
			d.add(absPath)
		}
	}

	sort.Strings(d.files)
	return d.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) relPath(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func (d *discoverer) ignored(path string) bool {
	return matchesAny(d.opts.Ignore, d.relPath(path))
}

// hasExtension matches the extension of path, looking through a compression
// suffix so that "a.ldif.xz" matches ".ldif".
func (d *discoverer) hasExtension(path string) bool {
	_, ok := d.extensions[strings.ToLower(filepath.Ext(fsutil.TrimCompressionExt(path)))]
	return ok
}

// walk recursively collects matching files below root.
// Hidden entries below root are skipped.
func (d *discoverer) walk(ctx context.Context, root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, done := d.walked[real]; done {
			return nil
		}
		d.walked[real] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if path == root {
			return nil
		}

		hidden := strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || d.ignored(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.followSymlink(ctx, path)
		}

		if d.hasExtension(path) && !d.ignored(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// followSymlink handles a symlink found during a walk. File links are
// collected like regular files; directory links are walked only when
// FollowSymlinks is set. Broken links are skipped.
func (d *discoverer) followSymlink(ctx context.Context, path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken symlinks are skipped
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // inaccessible targets are skipped
	}

	if info.IsDir() {
		if !d.opts.FollowSymlinks || d.ignored(path) {
			return nil
		}
		// Walk the target so WalkDir's Lstat does not stop at the link itself.
		return d.walk(ctx, target)
	}

	if d.hasExtension(path) && !d.ignored(path) {
		d.add(path)
	}
	return nil
}
