package gitx

import (
	"fmt"
	"strings"
)

// op tags the operations that have recoverable engine conditions. The
// protocol-level string name never reaches this package.
type op int

const (
	opDiff op = iota
	opSwitch
	opFetch
	opPull
	opPush
)

// recovery downgrades a matched engine failure to informational text.
// format may contain one %s verb, filled with the operation's subject
// (revision or branch name).
type recovery struct {
	substr string
	format string
}

// recoveries is the complete set of engine error patterns that are
// deliberately converted into successful informational results. The
// engine exposes no structured codes for these, so matching is by
// substring of its error text. Anything not listed here propagates
// unchanged. Keep this table as the only place such patterns live.
var recoveries = map[op][]recovery{
	opDiff: {
		{substr: "bad revision", format: "Invalid revision '%s'"},
		{substr: "unknown revision", format: "Invalid revision '%s'"},
		{substr: "ambiguous argument", format: "Invalid revision '%s'"},
	},
	opSwitch: {
		// Older engines phrase the missing-branch error via checkout,
		// newer ones via switch itself.
		{substr: "did not match any file(s) known to git", format: "Branch '%s' does not exist. Use create_branch=true to create it."},
		{substr: "invalid reference", format: "Branch '%s' does not exist. Use create_branch=true to create it."},
	},
	opPull: {
		{substr: "There is no tracking information for the current branch", format: "No tracking information for current branch. Use --set-upstream to configure tracking."},
		// Newer engines phrase the same condition this way when the
		// remote is named but no branch is.
		{substr: "did not specify a branch", format: "No tracking information for current branch. Use --set-upstream to configure tracking."},
	},
	opPush: {
		{substr: "no upstream branch", format: "Current branch has no upstream branch. Use --set-upstream to configure tracking."},
	},
}

// recovered checks err against the table for o and, on a match, returns
// the informational text to surface as a successful result.
func recovered(o op, err error, subject string) (string, bool) {
	if err == nil {
		return "", false
	}
	text := err.Error()
	for _, rec := range recoveries[o] {
		if strings.Contains(text, rec.substr) {
			if strings.Contains(rec.format, "%s") {
				return fmt.Sprintf(rec.format, subject), true
			}
			return rec.format, true
		}
	}
	return "", false
}
