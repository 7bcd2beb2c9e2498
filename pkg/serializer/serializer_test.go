package serializer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/LambdaTest/coveralls-reporter/pkg/core"
	"github.com/LambdaTest/coveralls-reporter/pkg/errs"
	"github.com/LambdaTest/coveralls-reporter/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *core.Report {
	return &core.Report{
		SourceFiles: []core.SourceFile{
			{Name: "example.go", Source: "def four\n  4\nend", Coverage: []*int{nil, core.Hits(1), nil}},
			{Name: "two.go", Source: "def seven\n  eight\n  nine\nend", Coverage: []*int{nil, core.Hits(1), core.Hits(0), nil}},
		},
		ServiceName:  "travis-ci",
		ServiceJobID: "1234567890",
		RepoToken:    "abc123",
		Parallel:     true,
	}
}

func TestSerializer_Serialize(t *testing.T) {
	s := New(testutils.NewRecordingLogger())

	serialized, err := s.Serialize(sampleReport())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(serialized), &decoded))
	files := decoded["source_files"].([]interface{})
	require.Len(t, files, 2)
	assert.Equal(t, []interface{}{nil, float64(1), float64(0), nil}, files[1].(map[string]interface{})["coverage"])
	assert.Equal(t, true, decoded["parallel"])
	assert.Contains(t, serialized, `"coverage":[null,1,null]`)
}

func TestSerializer_SerializeDeterministic(t *testing.T) {
	s := New(testutils.NewRecordingLogger())
	report := sampleReport()
	report.Extra = map[string]interface{}{"flag_name": "unit", "compiler": "gc", "attempt": 2}

	first, err := s.Serialize(report)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := s.Serialize(report)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSerializer_SerializeInvalidUTF8(t *testing.T) {
	logger := testutils.NewRecordingLogger()
	s := New(logger)
	report := sampleReport()
	report.SourceFiles = append(report.SourceFiles,
		core.SourceFile{Name: "latin1.go", Source: "caf\xe9\n", Coverage: []*int{core.Hits(1)}},
		core.SourceFile{Name: "bad\xffname.go", Source: "ok\n", Coverage: []*int{nil}},
	)

	serialized, err := s.Serialize(report)
	assert.Empty(t, serialized)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidSourceUTF8))

	var encErr *errs.EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, []string{"bad\xffname.go", "latin1.go"}, encErr.Files)

	errorsLogged := logger.Messages(testutils.LevelError)
	require.Len(t, errorsLogged, 2)
	assert.Contains(t, errorsLogged[1], "HINT: Following files cannot be decoded properly")
	assert.Contains(t, errorsLogged[1], "latin1.go")
}

func TestSerializer_SerializeInvalidPassthrough(t *testing.T) {
	logger := testutils.NewRecordingLogger()
	report := sampleReport()
	report.Extra = map[string]interface{}{"flag_name": "\xfe"}

	_, err := New(logger).Serialize(report)
	assert.True(t, errors.Is(err, errs.ErrInvalidSourceUTF8))
	// only the source files are diagnosed, none of them is at fault
	assert.Len(t, logger.Messages(testutils.LevelError), 1)
}

func TestSerializer_LogReport(t *testing.T) {
	logger := testutils.NewRecordingLogger()
	s := New(logger)
	report := sampleReport()

	serialized, err := s.Serialize(report)
	require.NoError(t, err)
	s.LogReport(report, serialized)

	debug := logger.Messages(testutils.LevelDebug)
	require.Len(t, debug, 4)
	assert.NotContains(t, debug[0], "abc123")
	assert.Contains(t, debug[0], `"repo_token": "[secure]"`)
	assert.Equal(t, "==\nReporting 2 files\n==\n", debug[1])
	assert.Equal(t, "example.go - 1/1", debug[2])
	assert.Equal(t, "two.go - 1/2", debug[3])
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"compact", `{"repo_token":"abc123","service_name":"x"}`, `{"repo_token": "[secure]","service_name":"x"}`},
		{"spaced", `{"repo_token": "abc123"}`, `{"repo_token": "[secure]"}`},
		{"escaped quote", `{"repo_token":"ab\"c123secret","service_name":"x"}`, `{"repo_token": "[secure]","service_name":"x"}`},
		{"escaped backslash", `{"repo_token":"ab\\","parallel":true}`, `{"repo_token": "[secure]","parallel":true}`},
		{"absent", `{"service_name":"x"}`, `{"service_name":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Redact(tt.input)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "abc123")
			assert.NotContains(t, got, "c123secret")
		})
	}
}

func TestEncode(t *testing.T) {
	body, err := Encode([]*int{nil, core.Hits(2)})
	require.NoError(t, err)
	assert.Equal(t, "[null,2]", string(body))

	_, err = Encode(map[string]string{"k": "\xff"})
	assert.True(t, errors.Is(err, errs.ErrInvalidSourceUTF8))
}
