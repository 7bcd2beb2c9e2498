// Package command runs the external executables the reporter depends on.
package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/LambdaTest/coveralls-reporter/pkg/core"
	"github.com/LambdaTest/coveralls-reporter/pkg/errs"
	"github.com/LambdaTest/coveralls-reporter/pkg/logstream"
	"github.com/LambdaTest/coveralls-reporter/pkg/lumber"
)

type manager struct {
	logger  lumber.Logger
	secrets []string
}

// NewExecutionManager returns new instance of manager.
// Secrets are masked in the command output forwarded to the logger.
func NewExecutionManager(logger lumber.Logger, secrets ...string) core.ExecutionManager {
	return &manager{logger: logger, secrets: secrets}
}

// Run executes the command and waits for it to exit
func (m *manager) Run(ctx context.Context, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	logWriter := lumber.NewWriter(m.logger, name)
	defer logWriter.Close()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(&stderr, logstream.NewMasker(logWriter, m.secrets...))

	commandLine := strings.Join(append([]string{name}, args...), " ")
	m.logger.Debugf("executing command %s", commandLine)
	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		m.logger.Errorf("command %s failed with error: %v", commandLine, err)
		return "", &errs.ExternalToolError{
			Command: commandLine,
			Code:    code,
			Stdout:  decode(stdout.Bytes()),
			Stderr:  decode(stderr.Bytes()),
		}
	}
	return decode(stdout.Bytes()), nil
}

// decode returns b as text, replacing invalid UTF-8 sequences.
func decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
