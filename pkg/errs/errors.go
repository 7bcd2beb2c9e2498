package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error represents a json-encoded API error.
type Error struct {
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns a new error message.
func New(text string) error {
	return &Error{Message: text}
}

// ExternalToolError is returned when an external executable exits with a non zero code.
type ExternalToolError struct {
	Command string
	Code    int
	Stdout  string
	Stderr  string
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("command %s return code %d, STDOUT: %q\nSTDERR: %q", e.Command, e.Code, e.Stdout, e.Stderr)
}

// EncodingError is returned when the report contains text which is not valid UTF-8.
type EncodingError struct {
	// Files are the names of the source files at fault, sorted.
	Files []string
	Err   error
}

func (e *EncodingError) Error() string {
	if len(e.Files) == 0 {
		return fmt.Sprintf("failed to encode report: %v", e.Err)
	}
	return fmt.Sprintf("failed to encode report: %v, files at fault: %s", e.Err, strings.Join(e.Files, ", "))
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// ErrEncoding returns an EncodingError for the given files.
func ErrEncoding(err error, files map[string]struct{}) error {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return &EncodingError{Files: names, Err: err}
}

// ErrMissingToken returns the configuration error raised when no repo token is available.
func ErrMissingToken(configFileName string) error {
	return fmt.Errorf("%w: you have to provide either repo_token in %s or set the COVERALLS_REPO_TOKEN env var",
		ErrConfiguration, configFileName)
}

// IsNoCoverageData reports whether err is caused by missing measurement data.
func IsNoCoverageData(err error) bool {
	return errors.Is(err, ErrNoCoverageData)
}

var (
	// ErrConfiguration is returned when the configuration is not usable.
	ErrConfiguration = New("Not on Travis or CircleCI")
	// ErrNoCoverageData is returned when the coverage engine has nothing measured.
	ErrNoCoverageData = New("no coverage data collected")
	// ErrInvalidLoggerInstance is returned when logger instance is not supported.
	ErrInvalidLoggerInstance = New("Invalid logger instance")
	// ErrInvalidSourceUTF8 is returned when captured text is not valid UTF-8.
	ErrInvalidSourceUTF8 = New("text cannot be decoded as utf-8")
)

// ErrInvalidConf is returned when configuration values fail validation.
type ErrInvalidConf struct {
	Message string
	Fields  []string
	Values  []interface{}
}

func (e *ErrInvalidConf) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	for i, field := range e.Fields {
		fmt.Fprintf(&sb, "%s: %v\n", field, e.Values[i])
	}
	return sb.String()
}
