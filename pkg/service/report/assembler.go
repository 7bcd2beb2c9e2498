// Package report assembles, serializes and ships the coveralls job report.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/LambdaTest/coveralls-reporter/config"
	"github.com/LambdaTest/coveralls-reporter/pkg/cienv"
	"github.com/LambdaTest/coveralls-reporter/pkg/core"
	"github.com/LambdaTest/coveralls-reporter/pkg/errs"
	"github.com/LambdaTest/coveralls-reporter/pkg/global"
	"github.com/LambdaTest/coveralls-reporter/pkg/lumber"
	"github.com/LambdaTest/coveralls-reporter/pkg/serializer"
	"github.com/LambdaTest/coveralls-reporter/pkg/utils"
)

// settings are the report keys resolved from configuration and environment.
type settings struct {
	serviceName        string
	serviceJobID       string
	servicePullRequest string
	repoToken          string
	parallel           bool
	extra              map[string]interface{}
}

// Assembler builds the report of one run. The report is built once,
// later builds return it unchanged.
type Assembler struct {
	logger     lumber.Logger
	coverage   core.CoverageService
	git        core.GitManager
	serializer *serializer.Serializer
	submitter  core.Submitter
	settings   settings
	report     *core.Report
}

// New returns an Assembler for cfg and the environment read through getenv.
// It fails with a configuration error when no repo token is available and
// neither the CI provider nor cfg waives it.
func New(cfg *config.CoverallsConfig,
	getenv cienv.Getenv,
	coverage core.CoverageService,
	git core.GitManager,
	s *serializer.Serializer,
	submitter core.Submitter,
	logger lumber.Logger) (*Assembler, error) {
	ci := cienv.Detect(getenv)
	st := settings{
		serviceName:        cfg.ServiceName,
		serviceJobID:       cfg.ServiceJobID,
		servicePullRequest: cfg.ServicePullRequest,
		repoToken:          cfg.RepoToken,
		parallel:           cfg.Parallel || ci.Parallel,
		extra:              make(map[string]interface{}, len(cfg.Extra)),
	}
	if ci.RepoToken != "" {
		st.repoToken = ci.RepoToken
	}
	if st.serviceName == "" {
		st.serviceName = ci.ServiceName
	}
	if ci.JobID != "" {
		st.serviceJobID = ci.JobID
	}
	if ci.PullRequest != "" {
		st.servicePullRequest = ci.PullRequest
	}
	for k, v := range cfg.Extra {
		if core.IsReservedKey(k) {
			logger.Warnf("ignoring configuration key %q, it is set by the reporter", k)
			continue
		}
		st.extra[k] = v
	}

	if st.repoToken == "" && !cfg.NoTokenRequired && !ci.TokenNotRequired {
		return nil, errs.ErrMissingToken(global.ConfigFileName)
	}
	logger.Debugf("detected service %s, job %q, pull request %q", ci.ServiceName, ci.JobID, ci.PullRequest)

	return &Assembler{
		logger:     logger,
		coverage:   coverage,
		git:        git,
		serializer: s,
		submitter:  submitter,
		settings:   st,
	}, nil
}

// Build returns the report, computing it on the first successful call.
// The source files of extra are appended to the measured ones. extra is
// ignored once the report has been built.
func (a *Assembler) Build(ctx context.Context, extra core.MergePayload) (*core.Report, error) {
	if a.report != nil {
		return a.report, nil
	}

	sourceFiles, err := a.coverage.Extract(ctx)
	if err != nil {
		return nil, err
	}
	gitInfo, err := a.git.GitInfo(ctx)
	if err != nil {
		return nil, err
	}

	report := &core.Report{
		SourceFiles:        sourceFiles,
		Git:                gitInfo,
		ServiceName:        a.settings.serviceName,
		ServiceJobID:       a.settings.serviceJobID,
		ServicePullRequest: a.settings.servicePullRequest,
		RepoToken:          a.settings.repoToken,
		Parallel:           a.settings.parallel,
		Extra:              a.settings.extra,
	}
	if len(extra) > 0 {
		raw, ok := extra[core.KeySourceFiles]
		if !ok {
			a.logger.Warnf(`No data to be merged; does the json file contain "source_files" data?`)
		} else {
			var merged []core.SourceFile
			if err := json.Unmarshal(raw, &merged); err != nil {
				return nil, fmt.Errorf("invalid source_files to merge: %w", err)
			}
			report.SourceFiles = append(report.SourceFiles, merged...)
		}
	}

	a.report = report
	return report, nil
}

// Merge builds the report with the partial report stored at path.
func (a *Assembler) Merge(ctx context.Context, path string) (*core.Report, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%s: %w", path, errs.ErrInvalidSourceUTF8)
	}
	var extra core.MergePayload
	if err := json.Unmarshal(content, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return a.Build(ctx, extra)
}

// CreateReport returns the serialized report and logs it without the repo token.
func (a *Assembler) CreateReport(ctx context.Context) (string, error) {
	report, err := a.Build(ctx, nil)
	if err != nil {
		return "", err
	}
	serialized, err := a.serializer.Serialize(report)
	if err != nil {
		return "", err
	}
	a.serializer.LogReport(report, serialized)
	return serialized, nil
}

// Wear creates the report and submits it unless dryRun is set.
// Missing coverage data is described by the returned result.
func (a *Assembler) Wear(ctx context.Context, dryRun bool) (*core.Result, error) {
	serialized, err := a.CreateReport(ctx)
	if err != nil {
		if errs.IsNoCoverageData(err) {
			return &core.Result{Message: fmt.Sprintf("Failure to gather coverage: %v", err), Failed: true}, nil
		}
		return nil, err
	}
	return a.submitter.Submit(ctx, serialized, dryRun)
}

// SaveReport writes the report to path instead of submitting it.
// Nothing is written when there is no coverage data.
func (a *Assembler) SaveReport(ctx context.Context, path string) error {
	serialized, err := a.CreateReport(ctx)
	if err != nil {
		if errs.IsNoCoverageData(err) {
			a.logger.Errorf("Failure to gather coverage: %v", err)
			return nil
		}
		return err
	}
	return utils.WriteFile(path, []byte(serialized))
}
