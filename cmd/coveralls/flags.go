package main

import (
	"github.com/LambdaTest/coveralls-reporter/pkg/global"
	"github.com/spf13/cobra"
)

// AttachCLIFlags attaches command line flags to command
func AttachCLIFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file to use, .coveralls.yml by default")
	rootCmd.PersistentFlags().String("logfile", "", "directory of the log file, file logging is disabled when empty")
	rootCmd.PersistentFlags().BoolP("verbose", "", false, "log at debug level")

	rootCmd.PersistentFlags().StringSlice("coverprofile", []string{global.DefaultCoverProfile}, "go cover profiles to report, merged in order")
	rootCmd.PersistentFlags().String("basedir", "", "directory of the measured sources, the working directory by default")
	rootCmd.PersistentFlags().String("prefix", "", "import path prefix stripped from file names, the module path by default")
	rootCmd.PersistentFlags().StringSlice("exclude-lines", []string{global.DefaultExcludeLines}, "regular expressions of lines excluded from the report")
	rootCmd.PersistentFlags().StringSlice("omit", nil, "glob patterns of files left out of the report")

	rootCmd.PersistentFlags().String("repo-token", "", "repository token, COVERALLS_REPO_TOKEN takes precedence")
	rootCmd.PersistentFlags().String("service-name", "", "CI service name, detected from the environment by default")
	rootCmd.PersistentFlags().Bool("parallel", false, "mark the job as one of a parallel build")
	rootCmd.PersistentFlags().Bool("no-token-required", false, "do not require a repository token")

	rootCmd.Flags().Bool("dry-run", false, "build the report without submitting it")
	rootCmd.Flags().StringP("output", "o", "", "write the report to a file instead of submitting it")
	rootCmd.Flags().String("merge", "", "json report whose source files are appended to the report")
	rootCmd.Flags().String("endpoint", global.DefaultEndpoint, "coveralls jobs api endpoint")
	rootCmd.Flags().Int("retries", global.DefaultMaxRetries, "retries of a submission failing without a response")
}
