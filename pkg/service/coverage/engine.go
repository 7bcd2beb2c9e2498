package coverage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/LambdaTest/coveralls-reporter/config"
	"github.com/LambdaTest/coveralls-reporter/pkg/core"
	"github.com/LambdaTest/coveralls-reporter/pkg/errs"
	"github.com/LambdaTest/coveralls-reporter/pkg/lumber"
	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/cover"
)

const setMode = "set"

type blockKey struct {
	startLine, startCol, endLine, endCol int
}

// profileEngine reads the measurements of `go test -coverprofile` runs.
type profileEngine struct {
	logger   lumber.Logger
	profiles []string
	baseDir  string
	prefix   string
	omit     []string
	exclude  []*regexp.Regexp

	files  []string
	blocks map[string]map[blockKey]cover.ProfileBlock
}

// NewProfileEngine returns a CoverageEngine backed by go cover profiles
func NewProfileEngine(cfg *config.CoverageConfig, logger lumber.Logger) (core.CoverageEngine, error) {
	exclude := make([]*regexp.Regexp, 0, len(cfg.ExcludeLines))
	for _, pattern := range cfg.ExcludeLines {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude_lines pattern %q: %w", pattern, err)
		}
		exclude = append(exclude, re)
	}
	for _, pattern := range cfg.Omit {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid omit pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	return &profileEngine{
		logger:   logger,
		profiles: cfg.Profiles,
		baseDir:  cfg.BaseDir,
		prefix:   cfg.Prefix,
		omit:     cfg.Omit,
		exclude:  exclude,
	}, nil
}

// Load parses every profile, summing the counts of blocks measured more than once.
func (e *profileEngine) Load() error {
	e.files = nil
	e.blocks = make(map[string]map[blockKey]cover.ProfileBlock)

	modulePath := e.prefix
	if modulePath == "" {
		modulePath = e.modulePath()
	}

	for _, path := range e.profiles {
		profiles, err := cover.ParseProfiles(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				e.logger.Warnf("cover profile %s not found, skipping", path)
				continue
			}
			return fmt.Errorf("failed to parse cover profile %s: %w", path, err)
		}
		for _, p := range profiles {
			e.addProfile(p, modulePath)
		}
	}

	if len(e.files) == 0 {
		return fmt.Errorf("%w: no measured files in %s", errs.ErrNoCoverageData, strings.Join(e.profiles, ", "))
	}
	return nil
}

func (e *profileEngine) addProfile(p *cover.Profile, modulePath string) {
	name := e.relativeName(p.FileName, modulePath)
	if e.omitted(name) {
		e.logger.Debugf("omitting %s", name)
		return
	}
	fileBlocks, ok := e.blocks[name]
	if !ok {
		fileBlocks = make(map[blockKey]cover.ProfileBlock, len(p.Blocks))
		e.blocks[name] = fileBlocks
		e.files = append(e.files, name)
	}
	for _, b := range p.Blocks {
		key := blockKey{b.StartLine, b.StartCol, b.EndLine, b.EndCol}
		existing, ok := fileBlocks[key]
		if !ok {
			fileBlocks[key] = b
			continue
		}
		if p.Mode == setMode {
			if b.Count > existing.Count {
				existing.Count = b.Count
			}
		} else {
			existing.Count += b.Count
		}
		fileBlocks[key] = existing
	}
}

// MeasuredFiles returns the files in the order they were first measured.
func (e *profileEngine) MeasuredFiles() []string {
	return append([]string(nil), e.files...)
}

// Analysis returns every line touched by a statement block with the highest
// count among the blocks touching it.
func (e *profileEngine) Analysis(file string) (*core.FileAnalysis, error) {
	fileBlocks, ok := e.blocks[file]
	if !ok {
		return nil, fmt.Errorf("no measurement for file %s", file)
	}
	lines := make(map[int]int)
	for _, b := range fileBlocks {
		if b.NumStmt == 0 {
			continue
		}
		for line := b.StartLine; line <= b.EndLine; line++ {
			if count, ok := lines[line]; !ok || b.Count > count {
				lines[line] = b.Count
			}
		}
	}
	return &core.FileAnalysis{Lines: lines}, nil
}

// ExcludedLines returns the lines of source matching an exclude_lines pattern.
func (e *profileEngine) ExcludedLines(file, source string) map[int]struct{} {
	excluded := make(map[int]struct{})
	if len(e.exclude) == 0 {
		return excluded
	}
	for i, line := range splitLines(source) {
		for _, re := range e.exclude {
			if re.MatchString(line) {
				excluded[i+1] = struct{}{}
				break
			}
		}
	}
	return excluded
}

// modulePath returns the module path declared in the base directory go.mod.
func (e *profileEngine) modulePath() string {
	data, err := os.ReadFile(filepath.Join(e.baseDir, "go.mod"))
	if err != nil {
		e.logger.Debugf("no go.mod in %s, keeping profile file names as is", e.baseDir)
		return ""
	}
	return modfile.ModulePath(data)
}

// relativeName maps a profile file name to a slash separated path relative to the base directory.
func (e *profileEngine) relativeName(name, modulePath string) string {
	if modulePath != "" && strings.HasPrefix(name, modulePath+"/") {
		return strings.TrimPrefix(name, modulePath+"/")
	}
	if filepath.IsAbs(name) {
		base, err := filepath.Abs(e.baseDir)
		if err != nil {
			return name
		}
		if rel, err := filepath.Rel(base, name); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return name
}

func (e *profileEngine) omitted(name string) bool {
	for _, pattern := range e.omit {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
