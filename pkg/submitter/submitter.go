// Package submitter uploads serialized reports to the coveralls jobs api.
package submitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/LambdaTest/coveralls-reporter/pkg/core"
	"github.com/LambdaTest/coveralls-reporter/pkg/global"
	"github.com/LambdaTest/coveralls-reporter/pkg/lumber"
)

type submitter struct {
	requests core.Requests
	endpoint string
	logger   lumber.Logger
}

// New returns a new core.Submitter posting to endpoint
func New(requests core.Requests, endpoint string, logger lumber.Logger) core.Submitter {
	return &submitter{requests: requests, endpoint: endpoint, logger: logger}
}

// Submit uploads report. A response which is not json is described
// by the returned result instead of failing.
func (s *submitter) Submit(ctx context.Context, report string, dryRun bool) (*core.Result, error) {
	if dryRun {
		s.logger.Debugf("dry run, report not submitted")
		return &core.Result{}, nil
	}

	body, statusCode, err := s.requests.MakeMultipartRequest(ctx, s.endpoint, global.JSONFileField, []byte(report))
	if err != nil {
		return nil, fmt.Errorf("failed to submit report to %s: %w", s.endpoint, err)
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		s.logger.Debugf("response of %s is not json: %v", s.endpoint, err)
		return &core.Result{
			Message: fmt.Sprintf("Failure to submit data. Response [%d]: %s", statusCode, string(body)),
			Failed:  true,
		}, nil
	}

	result := new(core.Result)
	if raw, ok := decoded.(map[string]interface{}); ok {
		result.Raw = raw
		result.Message, _ = raw["message"].(string)
		result.URL, _ = raw["url"].(string)
		result.Error, _ = raw["error"].(bool)
	} else {
		result.Message = string(body)
	}
	result.Failed = result.Error || statusCode >= http.StatusBadRequest
	return result, nil
}
