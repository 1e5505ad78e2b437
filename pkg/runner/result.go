package runner

import (
	"time"

	"github.com/yaklabco/goldif/pkg/ldif"
	"github.com/yaklabco/goldif/pkg/parser"
)

// FileOutcome holds the parse of one input together with its path metadata.
type FileOutcome struct {
	// Path is the absolute file path, or StdinPath.
	Path string

	// DisplayPath is Path relative to the working directory when possible.
	// It is also the file name recorded in parse error locations.
	DisplayPath string

	// State is the final parser state. Nil when Error is set.
	State *parser.State

	// Bytes is the size of the input after decompression.
	Bytes int

	// Digest is the hex BLAKE3-256 digest of the parsed content.
	Digest string

	// Duration is the time spent reading and parsing.
	Duration time.Duration

	// Error is set if the file could not be read.
	Error error
}

// ParseErrors returns the syntax errors found in the file.
func (o FileOutcome) ParseErrors() []*parser.Error {
	if o.State == nil {
		return nil
	}
	return o.State.Errors()
}

// Records returns the records parsed from the file.
func (o FileOutcome) Records() []ldif.Record {
	if o.State == nil {
		return nil
	}
	return o.State.Records()
}

// OK reports whether the file was read and parsed without errors.
func (o FileOutcome) OK() bool {
	return o.Error == nil && o.State != nil && o.State.IsOK()
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files that were read and parsed.
	FilesParsed int

	// FilesWithErrors is the number of parsed files with at least one syntax error.
	FilesWithErrors int

	// FilesFailed is the number of files that could not be read.
	FilesFailed int

	// Records is the total number of records across all files.
	Records int

	// ContentRecords counts attrval-records.
	ContentRecords int

	// ChangeRecords counts change records of every kind.
	ChangeRecords int

	// Errors is the total number of syntax errors across all files.
	Errors int

	// Bytes is the total size of all inputs read.
	Bytes int64

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasParseErrors reports whether any file contained syntax errors.
func (r *Result) HasParseErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.Errors > 0
}

// HasFailures reports whether any file could not be read.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.Bytes += int64(outcome.Bytes)

	if outcome.Error != nil || outcome.State == nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesParsed++

	errCount := outcome.State.ErrorCount()
	r.Stats.Errors += errCount
	if errCount > 0 {
		r.Stats.FilesWithErrors++
	}

	for _, record := range outcome.State.Records() {
		r.Stats.Records++
		if ldif.IsChangeRecord(record) {
			r.Stats.ChangeRecords++
		} else {
			r.Stats.ContentRecords++
		}
	}
}
