package testutils

// Various constant defined for to obtain dummy data for tests
const (
	ApplicationConfigPath = "/testutils/testdata/sample_config.json"  // ApplicationConfigPath points to dummy config file in json format for CoverallsConfig
	MergePayloadPath      = "/testutils/testdata/merge.json"          // MergePayloadPath points to a partial report with source_files
	MergeNoSourcesPath    = "/testutils/testdata/merge_nosource.json" // MergeNoSourcesPath points to a partial report without source_files
	ProjectPath           = "/testutils/testdata/project"             // ProjectPath points to a small go module with a cover profile
)
