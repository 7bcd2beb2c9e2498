package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/LambdaTest/coveralls-reporter/pkg/errs"
	"github.com/LambdaTest/coveralls-reporter/pkg/global"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `repo_token: abc123
service_name: jenkins
parallel: true
flag_name: unit
BuildURL: https://ci.example.com/42
coverage:
  profiles:
    - unit.out
    - integration.out
  omit:
    - "**/mocks/**"
`

func newCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	viper.Reset()
	cmd := &cobra.Command{Use: "coveralls"}
	cmd.Flags().StringP("config", "c", "", "")
	cmd.Flags().String("service-name", "", "")
	cmd.Flags().String("endpoint", "", "")
	cmd.Flags().Int("retries", 0, "")
	cmd.Flags().StringSlice("coverprofile", nil, "")
	cmd.Flags().Bool("dry-run", false, "")
	cmd.Flags().Bool("parallel", false, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

// chdir switches to dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCoverallsConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	// empty variables are ignored
	t.Setenv("COVERALLS_REPO_TOKEN", "")

	cfg, err := LoadCoverallsConfig(newCommand(t))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Config)
	assert.Equal(t, global.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, global.DefaultMaxRetries, cfg.Retries)
	assert.Equal(t, []string{global.DefaultCoverProfile}, cfg.Coverage.Profiles)
	assert.Equal(t, []string{global.DefaultExcludeLines}, cfg.Coverage.ExcludeLines)
	assert.True(t, cfg.LogConfig.EnableConsole)
	assert.Equal(t, "info", cfg.LogConfig.ConsoleLevel)
	assert.Empty(t, cfg.RepoToken)
	assert.Empty(t, cfg.Extra)
	assert.NoError(t, ValidateCfg(cfg))
}

func TestLoadCoverallsConfig_File(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeConfig(t, dir, global.ConfigFileName, sampleConfig)

	cfg, err := LoadCoverallsConfig(newCommand(t))
	require.NoError(t, err)

	assert.Equal(t, global.ConfigFileName, cfg.Config)
	assert.Equal(t, "abc123", cfg.RepoToken)
	assert.Equal(t, "jenkins", cfg.ServiceName)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, []string{"unit.out", "integration.out"}, cfg.Coverage.Profiles)
	assert.Equal(t, []string{"**/mocks/**"}, cfg.Coverage.Omit)
	assert.Equal(t, map[string]interface{}{
		"flag_name": "unit",
		"BuildURL":  "https://ci.example.com/42",
	}, cfg.Extra)
}

func TestLoadCoverallsConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeConfig(t, dir, global.ConfigFileName, sampleConfig+"endpoint: https://file.example.com/api/v1/jobs\nretries: 5\n")
	t.Setenv("COVERALLS_ENDPOINT", "https://env.example.com/api/v1/jobs")
	t.Setenv("COVERALLS_RETRIES", "7")

	cfg, err := LoadCoverallsConfig(newCommand(t, "--service-name", "drone", "--retries", "1", "--coverprofile", "a.out"))
	require.NoError(t, err)

	assert.Equal(t, "drone", cfg.ServiceName)
	assert.Equal(t, 1, cfg.Retries)
	assert.Equal(t, "https://env.example.com/api/v1/jobs", cfg.Endpoint)
	assert.Equal(t, []string{"a.out"}, cfg.Coverage.Profiles)
}

func TestLoadCoverallsConfig_ParallelIgnoresEnv(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		env    string
		args   []string
		wanted bool
	}{
		{"numeric env", "", "1", nil, false},
		{"short env", "", "t", nil, false},
		{"env does not clear file", "parallel: true\n", "false", nil, true},
		{"file", "parallel: true\n", "", nil, true},
		{"not a boolean in file", "parallel: \"yes\"\n", "", nil, false},
		{"flag", "", "false", []string{"--parallel"}, true},
		{"flag over file", "parallel: true\n", "", []string{"--parallel=false"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			chdir(t, dir)
			if tt.file != "" {
				writeConfig(t, dir, global.ConfigFileName, tt.file)
			}
			t.Setenv("COVERALLS_PARALLEL", tt.env)

			cfg, err := LoadCoverallsConfig(newCommand(t, tt.args...))
			require.NoError(t, err)
			assert.Equal(t, tt.wanted, cfg.Parallel)
			assert.NotContains(t, cfg.Extra, "parallel")
		})
	}
}

func TestLoadCoverallsConfig_ExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, t.TempDir(), "ci.yaml", "service_name: gitlab\ntag: v1\n")

	cfg, err := LoadCoverallsConfig(newCommand(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Config)
	assert.Equal(t, "gitlab", cfg.ServiceName)
	assert.Equal(t, map[string]interface{}{"tag": "v1"}, cfg.Extra)

	_, err = LoadCoverallsConfig(newCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yml")))
	assert.Error(t, err)
}

func TestLoadCoverallsConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeConfig(t, dir, global.ConfigFileName, "repo_token: [unterminated\n")

	_, err := LoadCoverallsConfig(newCommand(t))
	assert.Error(t, err)
}

func TestValidateCfg(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *CoverallsConfig
		wantFields []string
	}{
		{"valid", &CoverallsConfig{Endpoint: global.DefaultEndpoint, Retries: 3}, nil},
		{"bad endpoint", &CoverallsConfig{Endpoint: "coveralls.io", Retries: 3}, []string{"endpoint"}},
		{"negative retries", &CoverallsConfig{Endpoint: global.DefaultEndpoint, Retries: -1}, []string{"retries"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCfg(tt.cfg)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var confErr *errs.ErrInvalidConf
			require.True(t, errors.As(err, &confErr))
			assert.Equal(t, tt.wantFields, confErr.Fields)
		})
	}
	assert.Error(t, ValidateCfg(nil))
}

func TestGetTags(t *testing.T) {
	type tagged struct {
		Plain     string
		Yaml      string `yaml:"yaml_key,omitempty"`
		Validated string `validate:"required"`
	}
	typ := reflect.TypeOf(tagged{})
	assert.Equal(t, []string{"Plain"}, getTags(typ.Field(0)))
	assert.Equal(t, []string{"yaml_key"}, getTags(typ.Field(1)))
	assert.Equal(t, []string{"Validated"}, getTags(typ.Field(2)))
}
