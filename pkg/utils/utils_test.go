package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/LambdaTest/coveralls-reporter/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteFile(path, []byte("Hello world!")))
	require.NoError(t, WriteFile(path, []byte("{}")))

	checkData, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(checkData))

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "report.json"), nil)
	assert.Error(t, err)
}

func TestGetConfigFileName(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		lookup  string
		want    string
		wantErr bool
	}{
		{"exact yml", []string{".coveralls.yml"}, ".coveralls.yml", ".coveralls.yml", false},
		{"yaml extension", []string{".coveralls.yaml"}, ".coveralls.yml", ".coveralls.yaml", false},
		{"both extensions", []string{".coveralls.yaml", ".coveralls.yml"}, ".coveralls.yml", ".coveralls.yml", false},
		{"missing", nil, ".coveralls.yml", "", true},
		{"other extension", []string{"coveralls.json"}, "coveralls.json", "coveralls.json", false},
		{"other extension missing", nil, "coveralls.json", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("repo_token: x\n"), 0644))
			}
			got, err := GetConfigFileName(dir, tt.lookup)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), got)
		})
	}
}

type validated struct {
	Endpoint string `yaml:"endpoint" validate:"required,url"`
	Retries  int    `yaml:"retries" validate:"gte=0"`
	Level    string `validate:"omitempty,oneof=debug info"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		config     validated
		wantFields []string
	}{
		{"Valid", validated{Endpoint: "https://coveralls.io/api/v1/jobs", Retries: 3, Level: "info"}, nil},
		{"Missing endpoint", validated{}, []string{"endpoint"}},
		{"Invalid values", validated{Endpoint: "coveralls", Retries: -1, Level: "trace"}, []string{"endpoint", "retries", "Level"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.config, ".coveralls.yml")
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var confErr *errs.ErrInvalidConf
			require.True(t, errors.As(err, &confErr))
			assert.Equal(t, tt.wantFields, confErr.Fields)
			assert.Contains(t, confErr.Error(), "`.coveralls.yml` configuration")
		})
	}
}
