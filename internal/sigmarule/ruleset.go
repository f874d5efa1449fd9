package sigmarule

import (
	"os"
	"path/filepath"
	"strings"
)

// RuleHandle pairs a parsed Rule with the path it came from, the way the
// batch loader needs to report per-file outcomes without losing the
// Rule's own fields to an embedding collision.
type RuleHandle struct {
	Rule *Rule
	Path string
}

// RuleSetResult is the outcome of loading a whole rule directory: rules
// that parsed cleanly, grouped by logsource.product, plus a record of every
// failure instead of aborting the batch on the first bad file.
type RuleSetResult struct {
	Rules    []RuleHandle
	ByProduct map[string][]RuleHandle
	Failures []RuleLoadError
}

// RuleLoadError records one file's failure to parse within a batch.
type RuleLoadError struct {
	Path string
	Err  error
}

func (e RuleLoadError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// DiscoverRuleFiles walks dirs recursively and returns every "*.yml"/
// "*.yaml" file found, in filepath.Walk's lexical order within each dir
// and in the order dirs are given, so the ordering is deterministic.
func DiscoverRuleFiles(dirs []string) ([]string, error) {
	var out []string
	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			if strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml") {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// LoadRuleSet parses every file in paths, tolerating individual failures:
// a bad file is recorded in Failures rather than aborting the whole batch,
// since a Sigma rule corpus is a directory of independently-authored files
// in practice and one malformed rule should not hide every other result.
func LoadRuleSet(paths []string) RuleSetResult {
	result := RuleSetResult{ByProduct: make(map[string][]RuleHandle)}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			result.Failures = append(result.Failures, RuleLoadError{Path: path, Err: err})
			continue
		}
		rule, err := Parse(data)
		if err != nil {
			result.Failures = append(result.Failures, RuleLoadError{Path: path, Err: err})
			continue
		}
		handle := RuleHandle{Rule: rule, Path: path}
		result.Rules = append(result.Rules, handle)
		product := rule.LogSource.Product
		if product == "" {
			product = "unknown"
		}
		result.ByProduct[product] = append(result.ByProduct[product], handle)
	}
	return result
}
