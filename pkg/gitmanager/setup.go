// Package gitmanager collects the git provenance of a coverage report
package gitmanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/LambdaTest/coveralls-reporter/pkg/cienv"
	"github.com/LambdaTest/coveralls-reporter/pkg/core"
	"github.com/LambdaTest/coveralls-reporter/pkg/global"
	"github.com/LambdaTest/coveralls-reporter/pkg/lumber"
)

const fetchMarker = "(fetch)"

type gitManager struct {
	logger      lumber.Logger
	execManager core.ExecutionManager
	getenv      cienv.Getenv
	executable  string
}

// NewGitManager returns a new GitManager
func NewGitManager(logger lumber.Logger, execManager core.ExecutionManager, getenv cienv.Getenv) core.GitManager {
	return &gitManager{
		logger:      logger,
		execManager: execManager,
		getenv:      getenv,
		executable:  global.DefaultGitExecutable,
	}
}

// GitInfo queries git for the current branch, the remotes and the head commit.
// Any failing git invocation aborts the collection.
func (gm *gitManager) GitInfo(ctx context.Context) (*core.GitInfo, error) {
	rev, err := gm.execManager.Run(ctx, gm.executable, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		gm.logger.Errorf("failed to find current git branch, error %v", err)
		return nil, err
	}
	remotes, err := gm.execManager.Run(ctx, gm.executable, "remote", "-v")
	if err != nil {
		gm.logger.Errorf("failed to list git remotes, error %v", err)
		return nil, err
	}

	fields := make([]string, len(global.GitLogFormats))
	for i, format := range global.GitLogFormats {
		if fields[i], err = gm.gitLog(ctx, format); err != nil {
			gm.logger.Errorf("failed to read git log field %s, error %v", format, err)
			return nil, err
		}
	}

	branch := cienv.Branch(gm.getenv)
	if branch == "" {
		branch = strings.TrimSpace(rev)
	}

	return &core.GitInfo{
		Head: core.Head{
			ID:             fields[0],
			AuthorName:     fields[1],
			AuthorEmail:    fields[2],
			CommitterName:  fields[3],
			CommitterEmail: fields[4],
			Message:        fields[5],
		},
		Branch:  branch,
		Remotes: parseRemotes(remotes),
	}, nil
}

func (gm *gitManager) gitLog(ctx context.Context, format string) (string, error) {
	return gm.execManager.Run(ctx, gm.executable, "--no-pager", "log", "-1", fmt.Sprintf("--pretty=format:%s", format))
}

// parseRemotes returns the fetch remotes listed by `git remote -v`.
func parseRemotes(output string) []core.Remote {
	remotes := []core.Remote{}
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, fetchMarker) {
			continue
		}
		tokens := strings.Fields(line)
		if len(tokens) < 2 {
			continue
		}
		remotes = append(remotes, core.Remote{Name: tokens[0], URL: tokens[1]})
	}
	return remotes
}
