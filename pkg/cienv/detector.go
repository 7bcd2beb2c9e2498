// Package cienv detects the CI provider a report is produced on.
package cienv

import (
	"strings"

	"github.com/LambdaTest/coveralls-reporter/pkg/core"
	"github.com/LambdaTest/coveralls-reporter/pkg/global"
)

// Getenv looks up an environment variable, returning "" when unset.
type Getenv func(key string) string

// provider describes how a CI service is recognised and read.
type provider struct {
	name string
	// marker is the variable whose presence identifies the provider.
	marker string
	// tokenNotRequired is set for providers vouching for the job themselves.
	tokenNotRequired bool
	extract          func(getenv Getenv) (jobID, pullRequest string)
}

// providers in detection order, first match wins.
var providers = []provider{
	{
		name:   "appveyor",
		marker: global.EnvAppveyor,
		extract: func(getenv Getenv) (string, string) {
			return getenv(global.EnvAppveyorBuildID), getenv(global.EnvAppveyorPullRequest)
		},
	},
	{
		name:   "buildkite",
		marker: global.EnvBuildkite,
		extract: func(getenv Getenv) (string, string) {
			return getenv(global.EnvBuildkiteJobID), ""
		},
	},
	{
		name:             "circle-ci",
		marker:           global.EnvCircleCI,
		tokenNotRequired: true,
		extract: func(getenv Getenv) (string, string) {
			return getenv(global.EnvCircleBuildNum), lastPathSegment(getenv(global.EnvCIPullRequest))
		},
	},
	{
		name:             "travis-ci",
		marker:           global.EnvTravis,
		tokenNotRequired: true,
		extract: func(getenv Getenv) (string, string) {
			return getenv(global.EnvTravisJobID), ""
		},
	},
}

// branchVariables are consulted in order for the branch name.
var branchVariables = []string{
	global.EnvCircleBranch,
	global.EnvAppveyorBranch,
	global.EnvBuildkiteBranch,
	global.EnvCIBranch,
	global.EnvTravisBranch,
}

// Detect resolves the CI environment from getenv.
func Detect(getenv Getenv) core.CIEnvironment {
	env := core.CIEnvironment{ServiceName: global.GenericServiceName}
	for _, p := range providers {
		if getenv(p.marker) == "" {
			continue
		}
		env.ServiceName = p.name
		env.JobID, env.PullRequest = p.extract(getenv)
		env.TokenNotRequired = p.tokenNotRequired
		break
	}

	env.RepoToken = getenv(global.EnvRepoToken)
	env.Parallel = strings.EqualFold(getenv(global.EnvParallel), "true")
	return env
}

// Branch returns the branch name exported by the CI provider, or "" when none is set.
func Branch(getenv Getenv) string {
	for _, key := range branchVariables {
		if branch := getenv(key); branch != "" {
			return branch
		}
	}
	return ""
}

// lastPathSegment returns the last non-empty segment of a pull request url or number.
func lastPathSegment(value string) string {
	segments := strings.Split(value, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

// MapEnv returns a Getenv backed by vars.
func MapEnv(vars map[string]string) Getenv {
	return func(key string) string {
		return vars[key]
	}
}
