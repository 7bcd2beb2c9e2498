package core

import (
	"context"
)

// ExecutionManager runs external executables
type ExecutionManager interface {
	// Run executes name with args and returns its stdout decoded as UTF-8.
	// A non zero exit is returned as *errs.ExternalToolError.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// GitManager collects version control information of the working directory
type GitManager interface {
	GitInfo(ctx context.Context) (*GitInfo, error)
}

// FileAnalysis is the per line measurement of one file.
type FileAnalysis struct {
	// Lines maps the 1-based line numbers of tracked statements to their execution count.
	Lines map[int]int
}

// CoverageEngine exposes measured data of a test run
type CoverageEngine interface {
	// Load reads the persisted measurement data.
	Load() error
	// MeasuredFiles returns the measured file names relative to the base directory.
	MeasuredFiles() []string
	// Analysis returns the tracked lines of file.
	Analysis(file string) (*FileAnalysis, error)
	// ExcludedLines returns the line numbers of source excluded by configuration.
	ExcludedLines(file, source string) map[int]struct{}
}

// CoverageService converts measured data to report source files
type CoverageService interface {
	Extract(ctx context.Context) ([]SourceFile, error)
}

// Requests performs http requests against the coveralls api
type Requests interface {
	// MakeMultipartRequest uploads content as the file part named field and
	// returns the response body and status code.
	MakeMultipartRequest(ctx context.Context, endpoint, field string, content []byte) ([]byte, int, error)
}

// Submitter ships a serialized report
type Submitter interface {
	Submit(ctx context.Context, report string, dryRun bool) (*Result, error)
}
