package global

import "time"

// BinaryVersion is the version of the coveralls binary
var BinaryVersion = "v0.1.0"

// All constant related to coveralls
const (
	ConfigFileName       = ".coveralls.yml"
	DefaultEndpoint      = "https://coveralls.io/api/v1/jobs"
	DefaultCoverProfile  = "coverage.out"
	DefaultGitExecutable = "git"
	DefaultHTTPTimeout   = 60 * time.Second
	DefaultMaxRetries    = 3
	FilePermissions      = 0644
	JSONFileField        = "json_file"
	SecureMask           = "[secure]"
	GenericServiceName   = "coveralls-python"
	DefaultExcludeLines  = `//\s*(pragma|coverage):?\s*no\s*cover`
	DefaultLogFileName   = "coveralls.log"
)

// Environment variables read while assembling the report
const (
	EnvRepoToken           = "COVERALLS_REPO_TOKEN"
	EnvParallel            = "COVERALLS_PARALLEL"
	EnvAppveyor            = "APPVEYOR"
	EnvAppveyorBuildID     = "APPVEYOR_BUILD_ID"
	EnvAppveyorPullRequest = "APPVEYOR_PULL_REQUEST_NUMBER"
	EnvAppveyorBranch      = "APPVEYOR_REPO_BRANCH"
	EnvBuildkite           = "BUILDKITE"
	EnvBuildkiteJobID      = "BUILDKITE_JOB_ID"
	EnvBuildkiteBranch     = "BUILDKITE_BRANCH"
	EnvCircleCI            = "CIRCLECI"
	EnvCircleBuildNum      = "CIRCLE_BUILD_NUM"
	EnvCIPullRequest       = "CI_PULL_REQUEST"
	EnvCircleBranch        = "CIRCLE_BRANCH"
	EnvTravis              = "TRAVIS"
	EnvTravisJobID         = "TRAVIS_JOB_ID"
	EnvTravisBranch        = "TRAVIS_BRANCH"
	EnvCIBranch            = "CI_BRANCH"
)

// GitLogFormats are the pretty formats queried for the head commit, in order
var GitLogFormats = []string{"%H", "%aN", "%ae", "%cN", "%ce", "%s"}
