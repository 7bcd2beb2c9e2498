package lumber

import (
	"fmt"
	"testing"

	"github.com/LambdaTest/coveralls-reporter/pkg/errs"
	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	lines  []string
	fields Fields
}

func (r *recordingLogger) Debugf(format string, args ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Infof(format string, args ...interface{})  {}
func (r *recordingLogger) Warnf(format string, args ...interface{})  {}
func (r *recordingLogger) Errorf(format string, args ...interface{}) {}
func (r *recordingLogger) Fatalf(format string, args ...interface{}) {}
func (r *recordingLogger) Panicf(format string, args ...interface{}) {}
func (r *recordingLogger) WithFields(keyValues Fields) Logger {
	r.fields = keyValues
	return r
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		instance int
		wantErr  error
	}{
		{"zap", InstanceZapLogger, nil},
		{"logrus", InstanceLogrusLogger, nil},
		{"unknown", 42, errs.ErrInvalidLoggerInstance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(LoggingConfig{ConsoleLevel: Debug}, false, tt.instance)
			assert.Equal(t, tt.wantErr, err)
			if tt.wantErr == nil {
				assert.NotNil(t, logger)
				assert.NotNil(t, logger.WithFields(Fields{"file": "a.go"}))
			}
		})
	}
}

func TestNewLogger_InvalidLogrusLevel(t *testing.T) {
	_, err := NewLogger(LoggingConfig{ConsoleLevel: "loud"}, false, InstanceLogrusLogger)
	assert.Error(t, err)
}

func TestWriter(t *testing.T) {
	rec := &recordingLogger{}
	w := NewWriter(rec, "git")
	assert.Equal(t, Fields{"process": "git"}, rec.fields)

	n, err := w.Write([]byte("fatal: bad\r\nsecond"))
	assert.NoError(t, err)
	assert.Equal(t, 18, n)
	assert.Equal(t, []string{"fatal: bad"}, rec.lines)

	_, _ = w.Write([]byte(" line\n\n  \nthird"))
	assert.Equal(t, []string{"fatal: bad", "second line"}, rec.lines)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	assert.Equal(t, []string{"fatal: bad", "second line", "third"}, rec.lines)
}
