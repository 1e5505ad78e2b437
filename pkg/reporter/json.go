package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/goldif/pkg/runner"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string      `json:"path"`
	LDIFVersion *int        `json:"ldifVersion,omitempty"`
	Records     int         `json:"records"`
	Errors      []JSONError `json:"errors"`
	Bytes       int         `json:"bytes"`
	BLAKE3      string      `json:"blake3,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// JSONError represents a single parse error. Line and Column are 1-based
// positions in the original source; Offset is a byte offset into it.
type JSONError struct {
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Offset     int    `json:"offset"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	SourceLine string `json:"sourceLine,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int   `json:"filesChecked"`
	FilesWithErrors int   `json:"filesWithErrors"`
	FilesFailed     int   `json:"filesFailed"`
	Records         int   `json:"records"`
	ContentRecords  int   `json:"contentRecords"`
	ChangeRecords   int   `json:"changeRecords"`
	Errors          int   `json:"errors"`
	Bytes           int64 `json:"bytes"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Errors, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:    stats.FilesParsed,
		FilesWithErrors: stats.FilesWithErrors,
		FilesFailed:     stats.FilesFailed,
		Records:         stats.Records,
		ContentRecords:  stats.ContentRecords,
		ChangeRecords:   stats.ChangeRecords,
		Errors:          stats.Errors,
		Bytes:           stats.Bytes,
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:    file.DisplayPath,
			Records: len(file.Records()),
			Errors:  make([]JSONError, 0),
			Bytes:   file.Bytes,
			BLAKE3:  file.Digest,
		}
		if file.Path == runner.StdinPath {
			fileResult.Path = runner.StdinPath
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if file.State != nil {
			if spec := file.State.VersionSpec(); spec != nil {
				version := spec.Version
				fileResult.LDIFVersion = &version
			}
		}

		for _, parseErr := range file.ParseErrors() {
			_, line, col := parseErr.Position()
			jsonErr := JSONError{
				Line:    line,
				Column:  col,
				Offset:  parseErr.Location.SourceOffset(),
				Code:    parseErr.Code.String(),
				Message: parseErr.Message,
			}
			if r.opts.ShowContext {
				jsonErr.SourceLine = parseErr.SourceLine()
			}
			fileResult.Errors = append(fileResult.Errors, jsonErr)
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
