package typegen

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/teranos/rpctypegen/errors"
)

// maxReportedDifferences bounds CheckResult.Differences.
const maxReportedDifferences = 10

// CheckResult holds the result of comparing a regenerated artifact with the
// one on disk.
type CheckResult struct {
	UpToDate bool
	// Differences describes the first differing lines, at most
	// maxReportedDifferences of them
	Differences []string
}

// CompareFiles compares a freshly generated artifact with the existing one.
// Disclaimer lines are ignored so rewording them does not invalidate
// artifacts checked in by an earlier release.
// A missing existing file is reported as a difference, not an error.
func CompareFiles(generated, existing string) (*CheckResult, error) {
	fresh, err := os.ReadFile(generated)
	if err != nil {
		return nil, errors.NewFilesystemError(err, generated)
	}

	current, err := os.ReadFile(existing)
	if os.IsNotExist(err) {
		return &CheckResult{Differences: []string{existing + " does not exist"}}, nil
	}
	if err != nil {
		return nil, errors.NewFilesystemError(err, existing)
	}

	freshLines, err := filterDisclaimerLines(fresh)
	if err != nil {
		return nil, errors.NewFilesystemError(err, generated)
	}
	currentLines, err := filterDisclaimerLines(current)
	if err != nil {
		return nil, errors.NewFilesystemError(err, existing)
	}

	diffs := diffLines(freshLines, currentLines)
	return &CheckResult{UpToDate: len(diffs) == 0, Differences: diffs}, nil
}

// filterDisclaimerLines splits content into lines without the disclaimer,
// in any comment syntax.
func filterDisclaimerLines(content []byte) ([]string, error) {
	disclaimer := make(map[string]bool)
	for _, line := range strings.Split(strings.TrimSpace(Disclaimer), "\n") {
		disclaimer[uncomment(line)] = true
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if disclaimer[uncomment(line)] {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// uncomment strips surrounding space and a leading line comment token.
func uncomment(line string) string {
	line = strings.TrimSpace(line)
	for _, token := range []string{"//", "#"} {
		if strings.HasPrefix(line, token) {
			return strings.TrimSpace(strings.TrimPrefix(line, token))
		}
	}
	return line
}

// diffLines reports positional line differences between want and got.
func diffLines(want, got []string) []string {
	var diffs []string
	n := len(want)
	if len(got) > n {
		n = len(got)
	}
	for i := 0; i < n && len(diffs) < maxReportedDifferences; i++ {
		switch {
		case i >= len(got):
			diffs = append(diffs, fmt.Sprintf("line %d: missing %q", i+1, want[i]))
		case i >= len(want):
			diffs = append(diffs, fmt.Sprintf("line %d: unexpected %q", i+1, got[i]))
		case want[i] != got[i]:
			diffs = append(diffs, fmt.Sprintf("line %d: want %q, have %q", i+1, want[i], got[i]))
		}
	}
	return diffs
}
