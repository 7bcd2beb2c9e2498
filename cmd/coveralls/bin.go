package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/LambdaTest/coveralls-reporter/config"
	"github.com/LambdaTest/coveralls-reporter/pkg/command"
	"github.com/LambdaTest/coveralls-reporter/pkg/gitmanager"
	"github.com/LambdaTest/coveralls-reporter/pkg/global"
	"github.com/LambdaTest/coveralls-reporter/pkg/lumber"
	"github.com/LambdaTest/coveralls-reporter/pkg/requestutils"
	"github.com/LambdaTest/coveralls-reporter/pkg/serializer"
	"github.com/LambdaTest/coveralls-reporter/pkg/service/coverage"
	"github.com/LambdaTest/coveralls-reporter/pkg/service/report"
	"github.com/LambdaTest/coveralls-reporter/pkg/submitter"
	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd := cobra.Command{
		Use:     "coveralls",
		Long:    `coveralls submits go test coverage to coveralls.io`,
		Version: global.BinaryVersion,
		Run:     run,
	}

	// define flags used for this command
	AttachCLIFlags(&rootCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "debug",
		Short: "print the report which would be submitted, with the repo token masked",
		Run:   debug,
	})

	return &rootCmd
}

// setup loads the configuration and returns the logger and the assembler of this run
func setup(cmd *cobra.Command) (*config.CoverallsConfig, lumber.Logger, *report.Assembler) {
	// Load environment variables from .env if available
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
	}

	cfg, err := config.LoadCoverallsConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[Error] Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// patch logconfig file location with root level log file location
	if cfg.LogFile != "" {
		cfg.LogConfig.EnableFile = true
		cfg.LogConfig.FileLocation = filepath.Join(cfg.LogFile, global.DefaultLogFileName)
	}

	// You can also use logrus implementation
	// by using lumber.InstanceLogrusLogger
	logger, err := lumber.NewLogger(cfg.LogConfig, cfg.Verbose, lumber.InstanceZapLogger)
	if err != nil {
		log.Fatalf("Could not instantiate logger %s", err.Error())
	}

	if err := config.ValidateCfg(cfg); err != nil {
		logger.Fatalf("%v", err)
	}
	if cfg.Config == "" {
		logger.Debugf("Missing %s file. Using only env variables.", global.ConfigFileName)
	}

	engine, err := coverage.NewProfileEngine(&cfg.Coverage, logger)
	if err != nil {
		logger.Fatalf("failed to initialize coverage engine: %v", err)
	}
	coverageService := coverage.New(engine, &cfg.Coverage, logger)
	execManager := command.NewExecutionManager(logger, cfg.RepoToken, os.Getenv(global.EnvRepoToken))
	gm := gitmanager.NewGitManager(logger, execManager, os.Getenv)

	retries := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(cfg.Retries))
	requests := requestutils.New(logger, global.DefaultHTTPTimeout, retries)
	sub := submitter.New(requests, cfg.Endpoint, logger)

	assembler, err := report.New(cfg, os.Getenv, coverageService, gm, serializer.New(logger), sub, logger)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	return cfg, logger, assembler
}

func run(cmd *cobra.Command, args []string) {
	// cancelled on C-c
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, logger, assembler := setup(cmd)
	logger.Debugf("coveralls version: %s", global.BinaryVersion)

	if cfg.Merge != "" {
		if _, err := assembler.Merge(ctx, cfg.Merge); err != nil {
			logger.Fatalf("failed to merge %s: %v", cfg.Merge, err)
		}
	}

	if cfg.Output != "" {
		logger.Infof("Write coverage report to file %s", cfg.Output)
		if err := assembler.SaveReport(ctx, cfg.Output); err != nil {
			logger.Fatalf("failed to save report: %v", err)
		}
		return
	}

	logger.Infof("Submitting coverage to coveralls.io...")
	result, err := assembler.Wear(ctx, cfg.DryRun)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	if result.Failed {
		logger.Errorf("%s", result.Message)
		os.Exit(1)
	}
	if cfg.DryRun {
		return
	}
	logger.Infof("Coverage submitted!")
	logger.Infof("%s", result.Message)
	if result.URL != "" {
		logger.Infof("%s", result.URL)
	}
}

func debug(cmd *cobra.Command, args []string) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	_, logger, assembler := setup(cmd)
	logger.Infof("Testing coveralls reporter...")

	serialized, err := assembler.CreateReport(ctx)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	var indented map[string]json.RawMessage
	if err := json.Unmarshal([]byte(serializer.Redact(serialized)), &indented); err != nil {
		logger.Fatalf("%v", err)
	}
	out, err := json.MarshalIndent(indented, "", "  ")
	if err != nil {
		logger.Fatalf("%v", err)
	}
	fmt.Println(string(out))
}
