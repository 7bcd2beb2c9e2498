package config

import "github.com/LambdaTest/coveralls-reporter/pkg/lumber"

// Model definition for configuration

// CoverallsConfig is the application's configuration
type CoverallsConfig struct {
	Config             string
	LogFile            string
	LogConfig          lumber.LoggingConfig
	Verbose            bool
	RepoToken          string         `yaml:"repo_token"`
	ServiceName        string         `yaml:"service_name"`
	ServiceJobID       string         `yaml:"service_job_id"`
	ServicePullRequest string         `yaml:"service_pull_request"`
	Parallel           bool           `yaml:"parallel"`
	NoTokenRequired    bool           `yaml:"no_token_required"`
	Endpoint           string         `yaml:"endpoint" validate:"required,url"`
	Retries            int            `yaml:"retries" validate:"gte=0"`
	DryRun             bool           `yaml:"dry_run"`
	Output             string         `yaml:"output"`
	Merge              string         `yaml:"merge"`
	Coverage           CoverageConfig `yaml:"coverage"`
	// Extra holds the keys of the configuration file which are not options
	// of the reporter. They are sent as they are with the report.
	Extra map[string]interface{} `yaml:"-"`
}

// CoverageConfig locates and filters the measured data
type CoverageConfig struct {
	// Profiles are the go cover profiles to merge.
	Profiles []string `yaml:"profiles"`
	// BaseDir is the directory source files are read from and reported relative to.
	BaseDir string `yaml:"basedir"`
	// Prefix is stripped from the import paths of measured files, the module path by default.
	Prefix       string   `yaml:"prefix"`
	ExcludeLines []string `yaml:"exclude_lines"`
	Omit         []string `yaml:"omit"`
}
