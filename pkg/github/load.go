package github

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jtran/techtree/pkg/errors"
)

// ReadIssues decodes a JSON array of issues, as produced by
// `gh issue list --json title,body,url,state,labels,projectItems,updatedAt`.
func ReadIssues(r io.Reader) ([]Issue, error) {
	var issues []Issue
	dec := json.NewDecoder(r)
	if err := dec.Decode(&issues); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode issue export")
	}
	return issues, nil
}

// LoadIssues reads an issue export from a file, or from stdin when
// path is "-".
func LoadIssues(path string) ([]Issue, error) {
	if path == "-" {
		return ReadIssues(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	issues, err := ReadIssues(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return issues, nil
}

// LoadIssueFiles loads and concatenates several exports. Order is
// preserved across files.
func LoadIssueFiles(paths []string) ([]Issue, error) {
	var all []Issue
	for _, path := range paths {
		issues, err := LoadIssues(path)
		if err != nil {
			return nil, err
		}
		all = append(all, issues...)
	}
	return all, nil
}
