package config

import (
	"github.com/LambdaTest/coveralls-reporter/pkg/global"
	"github.com/spf13/viper"
)

func setCoverallsDefaultConfig() {
	viper.SetDefault("LogConfig.EnableConsole", true)
	viper.SetDefault("LogConfig.ConsoleJSONFormat", false)
	viper.SetDefault("LogConfig.ConsoleLevel", "info")
	viper.SetDefault("LogConfig.EnableFile", false)
	viper.SetDefault("LogConfig.FileJSONFormat", true)
	viper.SetDefault("LogConfig.FileLevel", "debug")
	viper.SetDefault("LogConfig.FileLocation", "./"+global.DefaultLogFileName)
	viper.SetDefault("Verbose", false)
	viper.SetDefault("endpoint", global.DefaultEndpoint)
	viper.SetDefault("retries", global.DefaultMaxRetries)
	viper.SetDefault("coverage.profiles", []string{global.DefaultCoverProfile})
	viper.SetDefault("coverage.exclude_lines", []string{global.DefaultExcludeLines})
}
