// Package coverage converts measured coverage into report source files
package coverage

import (
	"context"
	"errors"
	"go/scanner"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/LambdaTest/coveralls-reporter/config"
	"github.com/LambdaTest/coveralls-reporter/pkg/core"
	"github.com/LambdaTest/coveralls-reporter/pkg/lumber"
)

type codeCoverageService struct {
	logger  lumber.Logger
	engine  core.CoverageEngine
	baseDir string
}

// New returns a new instance of CoverageService
func New(engine core.CoverageEngine, cfg *config.CoverageConfig, logger lumber.Logger) core.CoverageService {
	return &codeCoverageService{
		logger:  logger,
		engine:  engine,
		baseDir: cfg.BaseDir,
	}
}

// Extract loads the measurements and returns one source file per measured
// file, in the order the engine enumerates them.
func (c *codeCoverageService) Extract(ctx context.Context) ([]core.SourceFile, error) {
	if err := c.engine.Load(); err != nil {
		c.logger.Errorf("failed to load coverage data %v", err)
		return nil, err
	}

	files := c.engine.MeasuredFiles()
	sourceFiles := make([]core.SourceFile, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sourceFile, err := c.sourceFile(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				c.logger.Warnf("no source for measured file %s, skipping", name)
				continue
			}
			return nil, err
		}
		sourceFiles = append(sourceFiles, *sourceFile)
	}
	return sourceFiles, nil
}

func (c *codeCoverageService) sourceFile(name string) (*core.SourceFile, error) {
	raw, err := os.ReadFile(filepath.Join(c.baseDir, filepath.FromSlash(name)))
	if err != nil {
		return nil, err
	}
	source := string(raw)

	analysis, err := c.engine.Analysis(name)
	if err != nil {
		c.logger.Errorf("failed to analyse %s, error %v", name, err)
		return nil, err
	}
	excluded := c.engine.ExcludedLines(name, source)

	lines := splitLines(source)
	code := codeLines(source)
	coverage := make([]*int, len(lines))
	for i, line := range lines {
		lineNo := i + 1
		count, tracked := analysis.Lines[lineNo]
		if !tracked || !code[lineNo] || !isStatement(line) {
			continue
		}
		if _, ok := excluded[lineNo]; ok {
			continue
		}
		coverage[i] = core.Hits(count)
	}
	return &core.SourceFile{Name: name, Source: source, Coverage: coverage}, nil
}

// splitLines returns the physical lines of source without their terminators.
// A final line without a newline counts as a line, a trailing newline does not open one.
func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// codeLines returns the lines holding at least one token other than a comment.
// A string literal marks every line it spans.
func codeLines(source string) map[int]bool {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(source))

	var s scanner.Scanner
	s.Init(file, []byte(source), nil, 0)
	lines := make(map[int]bool)
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		// automatically inserted at the end of a line
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		start := file.Line(pos)
		end := start
		if tok == token.STRING {
			end += strings.Count(lit, "\n")
		}
		for line := start; line <= end; line++ {
			lines[line] = true
		}
	}
	return lines
}

// isStatement reports whether a line inside a measured block holds code.
// Blank lines, line comments and lone brackets are not statements.
func isStatement(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "//") {
		return false
	}
	return strings.Trim(trimmed, "{}()[];,") != ""
}
