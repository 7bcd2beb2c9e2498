// Package core defines the report model and the contracts between
// the collectors, the report assembler and the submitter.
package core

import (
	"encoding/json"
)

// SourceFile is the coverage of a single measured file.
type SourceFile struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	// Coverage holds one entry per source line, nil for lines
	// which are not executable statements.
	Coverage []*int `json:"coverage"`

	// raw is the entry as decoded, written back verbatim so fields
	// of other reporters survive a merge.
	raw json.RawMessage
}

type sourceFileFields SourceFile

// UnmarshalJSON decodes the known fields and keeps the entry as received.
func (s *SourceFile) UnmarshalJSON(data []byte) error {
	var fields sourceFileFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = SourceFile(fields)
	s.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes a decoded entry unchanged, collected entries from their fields.
func (s SourceFile) MarshalJSON() ([]byte, error) {
	if s.raw != nil {
		return s.raw, nil
	}
	return json.Marshal(sourceFileFields(s))
}

// HitLines returns the number of tracked lines executed at least once.
func (s *SourceFile) HitLines() int {
	hits := 0
	for _, c := range s.Coverage {
		if c != nil && *c > 0 {
			hits++
		}
	}
	return hits
}

// TrackedLines returns the number of executable lines.
func (s *SourceFile) TrackedLines() int {
	tracked := 0
	for _, c := range s.Coverage {
		if c != nil {
			tracked++
		}
	}
	return tracked
}

// Hits returns a coverage entry with count n.
func Hits(n int) *int {
	return &n
}

// Head is the commit the report was produced for.
type Head struct {
	ID             string `json:"id"`
	AuthorName     string `json:"author_name"`
	AuthorEmail    string `json:"author_email"`
	CommitterName  string `json:"committer_name"`
	CommitterEmail string `json:"committer_email"`
	Message        string `json:"message"`
}

// Remote is a fetch remote of the repository.
type Remote struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// GitInfo is the version control provenance of the report.
type GitInfo struct {
	Head    Head     `json:"head"`
	Branch  string   `json:"branch"`
	Remotes []Remote `json:"remotes"`
}

// CIEnvironment is the CI provider information resolved from the environment.
type CIEnvironment struct {
	ServiceName string
	JobID       string
	PullRequest string
	// TokenNotRequired is set by providers which authenticate the job themselves.
	TokenNotRequired bool
	// RepoToken and Parallel are read regardless of the detected provider.
	RepoToken string
	Parallel  bool
}

// Report is the job payload submitted to coveralls.
type Report struct {
	SourceFiles        []SourceFile
	Git                *GitInfo
	ServiceName        string
	ServiceJobID       string
	ServicePullRequest string
	RepoToken          string
	Parallel           bool
	// Extra holds pass-through configuration keys, written as top level keys.
	Extra map[string]interface{}
}

// Report keys owned by the typed fields.
const (
	KeySourceFiles        = "source_files"
	KeyGit                = "git"
	KeyServiceName        = "service_name"
	KeyServiceJobID       = "service_job_id"
	KeyServicePullRequest = "service_pull_request"
	KeyRepoToken          = "repo_token"
	KeyParallel           = "parallel"
)

// IsReservedKey reports whether key is written from a typed Report field.
func IsReservedKey(key string) bool {
	switch key {
	case KeySourceFiles, KeyGit, KeyServiceName, KeyServiceJobID,
		KeyServicePullRequest, KeyRepoToken, KeyParallel:
		return true
	}
	return false
}

// MarshalJSON writes the typed fields and the pass-through keys as a single object.
// Keys are emitted in sorted order.
func (r Report) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Extra)+7)
	for k, v := range r.Extra {
		if IsReservedKey(k) {
			continue
		}
		out[k] = v
	}
	sourceFiles := r.SourceFiles
	if sourceFiles == nil {
		sourceFiles = []SourceFile{}
	}
	out[KeySourceFiles] = sourceFiles
	out[KeyServiceName] = r.ServiceName
	if r.Git != nil {
		out[KeyGit] = r.Git
	}
	if r.ServiceJobID != "" {
		out[KeyServiceJobID] = r.ServiceJobID
	}
	if r.ServicePullRequest != "" {
		out[KeyServicePullRequest] = r.ServicePullRequest
	}
	if r.RepoToken != "" {
		out[KeyRepoToken] = r.RepoToken
	}
	if r.Parallel {
		out[KeyParallel] = true
	}
	return json.Marshal(out)
}

// MergePayload is an externally produced partial report.
type MergePayload map[string]json.RawMessage

// Result is the outcome of a submission, or a description of why there was none.
type Result struct {
	Message string `json:"message,omitempty"`
	URL     string `json:"url,omitempty"`
	Error   bool   `json:"error,omitempty"`
	// Raw holds every key of a json object response.
	Raw map[string]interface{} `json:"-"`
	// Failed is set when the run did not produce an accepted job.
	Failed bool `json:"-"`
}
