package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/LambdaTest/coveralls-reporter/pkg/global"
	"github.com/LambdaTest/coveralls-reporter/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// envPrefix prefixes the environment variables overriding configuration keys
const envPrefix = "COVERALLS"

// flagKeys maps command line flags to the configuration keys they override
var flagKeys = map[string]string{
	"config":            "config",
	"logfile":           "logfile",
	"verbose":           "verbose",
	"repo-token":        "repo_token",
	"service-name":      "service_name",
	"parallel":          "parallel",
	"no-token-required": "no_token_required",
	"endpoint":          "endpoint",
	"retries":           "retries",
	"dry-run":           "dry_run",
	"output":            "output",
	"merge":             "merge",
	"coverprofile":      "coverage.profiles",
	"basedir":           "coverage.basedir",
	"prefix":            "coverage.prefix",
	"exclude-lines":     "coverage.exclude_lines",
	"omit":              "coverage.omit",
}

// LoadCoverallsConfig loads config from command instance to predefined config variables.
// Flags override environment variables, which override the configuration file.
func LoadCoverallsConfig(cmd *cobra.Command) (*CoverallsConfig, error) {
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	// default viper configs
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// set default configs
	setCoverallsDefaultConfig()

	configFile, err := resolveConfigFile(viper.GetString("config"))
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
		}
	}

	cfg, err := populateCoverallsConfig(new(CoverallsConfig))
	if err != nil {
		return nil, err
	}
	cfg.Config = configFile

	doc := make(map[string]interface{})
	if configFile != "" {
		if doc, err = readConfigDocument(configFile); err != nil {
			return nil, err
		}
	}
	// COVERALLS_PARALLEL is left to CI detection, which only accepts "true".
	cfg.Parallel = resolveParallel(cmd, doc)
	cfg.Extra = passthrough(doc)
	return cfg, nil
}

// resolveParallel reads the parallel option from the flag or the configuration file only.
func resolveParallel(cmd *cobra.Command, doc map[string]interface{}) bool {
	if f := cmd.Flags().Lookup("parallel"); f != nil && f.Changed {
		parallel, err := cmd.Flags().GetBool("parallel")
		return err == nil && parallel
	}
	for key, value := range doc {
		if strings.EqualFold(key, "parallel") {
			parallel, ok := value.(bool)
			return ok && parallel
		}
	}
	return false
}

// resolveConfigFile returns the configuration file to read, empty when the
// default one does not exist. An explicitly requested file must exist.
func resolveConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("configuration file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	path, err := utils.GetConfigFileName(".", global.ConfigFileName)
	if err != nil {
		return "", nil
	}
	return path, nil
}

// readConfigDocument decodes the configuration file apart from viper,
// which lower cases keys.
func readConfigDocument(path string) (map[string]interface{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := make(map[string]interface{})
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("`%s` configuration file contains invalid format: %w", path, err)
	}
	return doc, nil
}

// passthrough returns the keys of doc which are not options of the reporter.
func passthrough(doc map[string]interface{}) map[string]interface{} {
	known := knownKeys(reflect.TypeOf(CoverallsConfig{}))
	extra := make(map[string]interface{}, len(doc))
	for key, value := range doc {
		if _, ok := known[strings.ToLower(key)]; !ok {
			extra[key] = value
		}
	}
	return extra
}

// ValidateCfg checks the validity of the config
func ValidateCfg(cfg *CoverallsConfig) error {
	if cfg == nil {
		return errors.New("configuration not loaded")
	}
	source := cfg.Config
	if source == "" {
		source = global.ConfigFileName
	}
	return utils.ValidateStruct(cfg, source)
}
