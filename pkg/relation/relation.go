// Package relation extracts dependency relations from issue body text.
//
// Extraction is line oriented: task-list checkboxes and "depends on"
// prefixes are recognized, and their remainder is resolved to a
// canonical GitHub issue URL. Short-form references (#123 and
// owner/repo#123) are expanded; otherwise the first GitHub URL found
// by a general link-detection pass is used. All patterns are compiled
// once at package init and treated as read-only process-wide state.
package relation

import (
	"regexp"
	"strings"

	"mvdan.cc/xurls/v2"
)

// Kind classifies an extracted relation.
type Kind int

const (
	// KindDependsOn is a "depends on" reference to another issue.
	KindDependsOn Kind = iota
	// KindTaskComplete is a checked task-list item referencing an issue.
	KindTaskComplete
	// KindTaskIncomplete is an unchecked task-list item referencing an issue.
	KindTaskIncomplete
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTaskComplete:
		return "task-complete"
	case KindTaskIncomplete:
		return "task-incomplete"
	default:
		return "depends-on"
	}
}

// Relation is a directed dependency reference extracted from body
// text, pointing from the containing issue to a target issue URL.
type Relation struct {
	Kind   Kind
	Target string
}

// WarnFunc receives non-fatal extraction diagnostics, printf style.
type WarnFunc func(format string, args ...any)

// Note: ASCII-only matching throughout, as issue references are ASCII.
var (
	// "Depends on", case-insensitive, optional colon, flexible
	// whitespace, anchored at line start.
	dependsOnRe = regexp.MustCompile(`(?i)^[ \t]*depends[ \t]+on[ \t]*:?[ \t]*`)

	// #123 with boundary checks on both sides so that tokens like
	// x#123 or #123y never count as references.
	hashNumberRe = regexp.MustCompile(`(?:^|[^0-9A-Za-z_-])#([0-9]+)(?:$|[^0-9A-Za-z_-])`)

	// owner/repo#123, word-boundary delimited on both ends.
	ownerRepoNumberRe = regexp.MustCompile(`\b([0-9A-Za-z_-]+)/([0-9A-Za-z_-]+)#([0-9]+)\b`)

	githubURLRe = regexp.MustCompile(`^https?://github\.com/`)

	// General link detection; finds scheme-qualified URLs and does not
	// match bare e-mail addresses.
	linkRe = xurls.Strict()
)

const (
	taskOpenMarker = "- [ ]"
	taskDoneMarker = "- [x]"
)

// Extract scans body line by line and returns the relations it
// declares. repository is the base URL of the containing repository
// (https://github.com/{owner}/{repo}), used to expand short-form
// references. contextLabel names the source record in warnings.
//
// A "depends on" line whose remainder is non-empty but yields no URL
// is a malformed reference: it is reported through warn (if non-nil)
// and produces no relation. Empty remainders and unrecognized lines
// are silently skipped.
//
// Extract is a pure function of its inputs; calling it twice with the
// same arguments yields identical results.
func Extract(body, repository, contextLabel string, warn WarnFunc) []Relation {
	var rels []Relation
	for _, line := range strings.Split(body, "\n") {
		// Lines may be arbitrarily indented.
		line = strings.TrimLeft(line, " \t")

		if strings.HasPrefix(line, taskOpenMarker) || strings.HasPrefix(line, taskDoneMarker) {
			kind := KindTaskIncomplete
			if strings.HasPrefix(line, taskDoneMarker) {
				kind = KindTaskComplete
			}
			taskText := strings.TrimSpace(line[len(taskOpenMarker):])
			if target, ok := extractURL(taskText, repository); ok {
				rels = append(rels, Relation{Kind: kind, Target: target})
			}
			continue
		}

		loc := dependsOnRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		depText := line[loc[1]:]
		target, ok := extractURL(depText, repository)
		if !ok {
			if strings.TrimSpace(depText) != "" && warn != nil {
				warn("Malformed issue or PR URL %q in project item %q", depText, contextLabel)
			}
			continue
		}
		rels = append(rels, Relation{Kind: KindDependsOn, Target: target})
	}
	return rels
}

// extractURL resolves text to an issue URL. Precedence: same-repo #N,
// then owner/repo#N, then the first GitHub URL found by link
// detection. Empty text never matches and is not an error.
func extractURL(text, repository string) (string, bool) {
	if text == "" {
		return "", false
	}

	if m := hashNumberRe.FindStringSubmatch(text); m != nil {
		return repository + "/issues/" + m[1], true
	}

	if m := ownerRepoNumberRe.FindStringSubmatch(text); m != nil {
		return "https://github.com/" + m[1] + "/" + m[2] + "/issues/" + m[3], true
	}

	// Use only the first GitHub URL even if multiple are present.
	for _, candidate := range linkRe.FindAllString(text, -1) {
		if githubURLRe.MatchString(candidate) {
			return candidate, true
		}
	}

	return "", false
}
