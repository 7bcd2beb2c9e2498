package testutils

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"runtime"
	"sync"

	"github.com/LambdaTest/coveralls-reporter/config"
	"github.com/LambdaTest/coveralls-reporter/pkg/errs"
	"github.com/LambdaTest/coveralls-reporter/pkg/lumber"
)

// getCurrentWorkingDir give the file path of the repository root
func getCurrentWorkingDir() (string, error) {
	_, filename, _, ok := runtime.Caller(1)
	if !ok {
		return "", errs.New("runtime.Calller(1) was unable to recover information")
	}
	filepath := path.Join(path.Dir(filename), "../")
	return filepath, nil
}

// GetConfig returns a dummy CoverallsConfig using the json file pointed by ApplicationConfigPath
func GetConfig() (*config.CoverallsConfig, error) {
	cwd, err := getCurrentWorkingDir()
	if err != nil {
		return nil, err
	}
	configJSON, err := os.ReadFile(cwd + ApplicationConfigPath)
	if err != nil {
		return nil, err
	}
	var cfg *config.CoverallsConfig
	err = json.Unmarshal(configJSON, &cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetLogger returns a dummy lumber.Logger.
func GetLogger() (lumber.Logger, error) {
	logger, err := lumber.NewLogger(lumber.LoggingConfig{ConsoleLevel: lumber.Debug}, true, lumber.InstanceLogrusLogger)
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// Path returns the absolute path of a file relative to the repository root.
func Path(relativePath string) (string, error) {
	cwd, err := getCurrentWorkingDir()
	if err != nil {
		return "", err
	}
	return cwd + relativePath, nil
}

// Log levels recorded by RecordingLogger.
const (
	LevelDebug = lumber.Debug
	LevelInfo  = lumber.Info
	LevelWarn  = lumber.Warn
	LevelError = lumber.Error
)

// RecordingLogger is a lumber.Logger keeping every message per level.
type RecordingLogger struct {
	mu      sync.Mutex
	entries map[string][]string
}

// NewRecordingLogger returns an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{entries: make(map[string][]string)}
}

func (r *RecordingLogger) record(level, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[level] = append(r.entries[level], fmt.Sprintf(format, args...))
}

// Messages returns the messages logged at level.
func (r *RecordingLogger) Messages(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.entries[level]...)
}

func (r *RecordingLogger) Debugf(format string, args ...interface{}) {
	r.record(lumber.Debug, format, args...)
}

func (r *RecordingLogger) Infof(format string, args ...interface{}) {
	r.record(lumber.Info, format, args...)
}

func (r *RecordingLogger) Warnf(format string, args ...interface{}) {
	r.record(lumber.Warn, format, args...)
}

func (r *RecordingLogger) Errorf(format string, args ...interface{}) {
	r.record(lumber.Error, format, args...)
}

func (r *RecordingLogger) Fatalf(format string, args ...interface{}) {
	r.record(lumber.Fatal, format, args...)
}

func (r *RecordingLogger) Panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

func (r *RecordingLogger) WithFields(keyValues lumber.Fields) lumber.Logger {
	return r
}
