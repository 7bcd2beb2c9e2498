package requestutils

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/LambdaTest/coveralls-reporter/pkg/core"
	"github.com/LambdaTest/coveralls-reporter/pkg/lumber"
	"github.com/cenkalti/backoff/v4"
)

type requests struct {
	logger  lumber.Logger
	client  http.Client
	backoff backoff.BackOff
}

// New returns a new core.Requests. Requests failing before any response
// is received are retried according to b.
func New(logger lumber.Logger, timeout time.Duration, b backoff.BackOff) core.Requests {
	return &requests{
		logger:  logger,
		client:  http.Client{Timeout: timeout},
		backoff: b,
	}
}

func (r *requests) MakeMultipartRequest(ctx context.Context, endpoint, field string, content []byte) ([]byte, int, error) {
	var respBody []byte
	var statusCode int
	operation := func() error {
		body, contentType, err := multipartBody(field, content)
		if err != nil {
			return backoff.Permanent(err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
		if err != nil {
			r.logger.Errorf("error while creating http request %v", err)
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", contentType)

		resp, err := r.client.Do(req)
		if err != nil {
			r.logger.Errorf("error while sending http request %v", err)
			return err
		}
		defer resp.Body.Close()

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			r.logger.Errorf("error while reading http response body %v", err)
			return err
		}
		statusCode = resp.StatusCode
		return nil
	}

	notify := func(err error, wait time.Duration) {
		r.logger.Warnf("request to %s failed, retrying in %s: %v", endpoint, wait, err)
	}
	if err := backoff.RetryNotify(operation, backoff.WithContext(r.backoff, ctx), notify); err != nil {
		return nil, 0, err
	}
	return respBody, statusCode, nil
}

// multipartBody returns a form holding content as the file part field.
func multipartBody(field string, content []byte) (*bytes.Buffer, string, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, field)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
