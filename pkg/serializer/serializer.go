// Package serializer turns a report into the json text submitted to coveralls.
package serializer

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/LambdaTest/coveralls-reporter/pkg/core"
	"github.com/LambdaTest/coveralls-reporter/pkg/errs"
	"github.com/LambdaTest/coveralls-reporter/pkg/global"
	"github.com/LambdaTest/coveralls-reporter/pkg/lumber"
)

var repoTokenPattern = regexp.MustCompile(`"repo_token":\s*"((?:[^"\\]|\\.)*)"`)

// Serializer encodes reports
type Serializer struct {
	logger lumber.Logger
}

// New returns a new Serializer
func New(logger lumber.Logger) *Serializer {
	return &Serializer{logger: logger}
}

// Serialize returns the json text of report. Text which is not valid UTF-8
// fails the whole serialization, after the files at fault have been logged.
func (s *Serializer) Serialize(report *core.Report) (string, error) {
	body, err := Encode(report)
	if err != nil {
		s.logger.Errorf("ERROR: While preparing JSON: %v", err)
		return "", errs.ErrEncoding(err, s.Diagnose(report))
	}
	return string(body), nil
}

// LogReport logs the serialized report with the repo token redacted,
// followed by the hit and tracked line counts of every file.
func (s *Serializer) LogReport(report *core.Report, serialized string) {
	s.logger.Debugf("%s", Redact(serialized))
	s.logger.Debugf("==\nReporting %d files\n==\n", len(report.SourceFiles))
	for i := range report.SourceFiles {
		sourceFile := &report.SourceFiles[i]
		s.logger.Debugf("%s - %d/%d", sourceFile.Name, sourceFile.HitLines(), sourceFile.TrackedLines())
	}
}

// Diagnose encodes every field of every source file on its own and returns
// the names of the files with a field which cannot be encoded.
func (s *Serializer) Diagnose(report *core.Report) map[string]struct{} {
	atFault := make(map[string]struct{})
	for _, sourceFile := range report.SourceFiles {
		fields := []interface{}{sourceFile.Name, sourceFile.Source, sourceFile.Coverage}
		for _, field := range fields {
			if _, err := Encode(field); err != nil {
				atFault[sourceFile.Name] = struct{}{}
				break
			}
		}
	}
	if len(atFault) > 0 {
		names := make([]string, 0, len(atFault))
		for name := range atFault {
			names = append(names, name)
		}
		sort.Strings(names)
		s.logger.Errorf("HINT: Following files cannot be decoded properly into unicode. Check their content: %s",
			strings.Join(names, ", "))
	}
	return atFault
}

// Redact replaces the repo token of a serialized report.
func Redact(serialized string) string {
	return repoTokenPattern.ReplaceAllString(serialized, fmt.Sprintf(`"repo_token": "%s"`, global.SecureMask))
}

// Encode marshals v to json, failing instead of substituting text which is not valid UTF-8.
func Encode(v interface{}) ([]byte, error) {
	if err := checkText(reflect.ValueOf(v), "$"); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// checkText walks v and returns an error for the first string which is not valid UTF-8.
func checkText(v reflect.Value, path string) error {
	switch v.Kind() {
	case reflect.String:
		if !utf8.ValidString(v.String()) {
			return fmt.Errorf("%s: %w", path, errs.ErrInvalidSourceUTF8)
		}
	case reflect.Ptr, reflect.Interface:
		if !v.IsNil() {
			return checkText(v.Elem(), path)
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if t.Field(i).PkgPath != "" {
				continue
			}
			if err := checkText(v.Field(i), path+"."+t.Field(i).Name); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := checkText(v.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			key := fmt.Sprintf("%s[%v]", path, iter.Key())
			if err := checkText(iter.Key(), key); err != nil {
				return err
			}
			if err := checkText(iter.Value(), key); err != nil {
				return err
			}
		}
	}
	return nil
}
