package runner

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/yaklabco/goldif/internal/logging"
	"github.com/yaklabco/goldif/pkg/detect"
	"github.com/yaklabco/goldif/pkg/fsutil"
	"github.com/yaklabco/goldif/pkg/parser"
	"github.com/yaklabco/goldif/pkg/source"
)

// ErrBinaryInput is reported for inputs that look like binary data.
var ErrBinaryInput = errors.New("input appears to be binary")

// Runner parses many LDIF inputs concurrently.
// Each worker owns its parser state; only the grammar is shared.
type Runner struct {
	opts    Options
	workDir string
}

// New creates a Runner for opts. The working directory is resolved once.
func New(opts Options) (*Runner, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	return &Runner{opts: opts, workDir: workDir}, nil
}

// Run discovers files under the configured paths and parses them concurrently.
// Outcomes are returned in discovery order regardless of completion order.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	started := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, r.opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	// Outcomes are written by index, so no ordering pass is needed afterwards.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))
	workCh := make(chan int)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				outcomes[idx] = r.ParseFile(ctx, files[idx])
				done[idx] = true
			}
		}()
	}

feed:
	for idx := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- idx:
		}
	}
	close(workCh)
	wg.Wait()

	for idx, outcome := range outcomes {
		if done[idx] {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(started)

	logger.Debug("run complete",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesWithErrors, result.Stats.FilesWithErrors,
		logging.FieldRecords, result.Stats.Records,
		logging.FieldErrors, result.Stats.Errors,
		logging.FieldDuration, result.Stats.Duration,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// ParseFile reads and parses a single input. Read failures are reported
// in the outcome's Error field rather than returned.
func (r *Runner) ParseFile(ctx context.Context, path string) FileOutcome {
	started := time.Now()
	outcome := FileOutcome{Path: path, DisplayPath: r.displayPath(path)}

	content, err := r.read(ctx, path)
	if err == nil {
		content, err = r.decompress(path, content)
	}
	outcome.Bytes = len(content)
	if err == nil && detect.IsBinary(content) {
		err = fmt.Errorf("%s: %w", outcome.DisplayPath, ErrBinaryInput)
	}
	if err != nil {
		outcome.Error = err
		outcome.Duration = time.Since(started)
		logging.FromContext(ctx).Debug("read failed",
			logging.FieldPath, outcome.DisplayPath, logging.FieldError, err)
		return outcome
	}

	digest := blake3.Sum256(content)
	outcome.Digest = hex.EncodeToString(digest[:])

	input := source.Preprocess(string(content), outcome.DisplayPath)
	outcome.State = parser.Parse(input, r.opts.Parser)
	outcome.Duration = time.Since(started)

	logging.FromContext(ctx).Debug("parsed file",
		logging.FieldPath, outcome.DisplayPath,
		logging.FieldRecords, len(outcome.State.Records()),
		logging.FieldErrors, outcome.State.ErrorCount(),
		logging.FieldBytes, outcome.Bytes,
		logging.FieldDuration, outcome.Duration,
	)

	return outcome
}

func (r *Runner) read(ctx context.Context, path string) ([]byte, error) {
	if path == StdinPath {
		reader := r.opts.Stdin
		if r.opts.MaxFileSize > 0 {
			reader = io.LimitReader(reader, r.opts.MaxFileSize+1)
		}
		content, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		if r.opts.MaxFileSize > 0 && int64(len(content)) > r.opts.MaxFileSize {
			return nil, fmt.Errorf("stdin: %w", fsutil.ErrTooLarge)
		}
		return content, nil
	}

	content, _, err := fsutil.ReadFileLimit(ctx, path, r.opts.MaxFileSize)
	return content, err
}

// decompress expands gzip and xz inputs recognised by their file suffix.
func (r *Runner) decompress(path string, content []byte) ([]byte, error) {
	compression := fsutil.CompressionFor(path)
	if path == StdinPath || compression == fsutil.CompressionNone {
		return content, nil
	}
	out, err := fsutil.Decompress(compression, content, r.opts.MaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.displayPath(path), err)
	}
	return out, nil
}

// displayPath renders path relative to the working directory when it lies below it.
func (r *Runner) displayPath(path string) string {
	if path == StdinPath {
		return ""
	}
	rel, err := filepath.Rel(r.workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
