// Package note derives the canonical single-line deploy note for a
// triggering change. The note is embedded in automated deploy commits so
// later runs can recognize a deploy branch that already carries the same
// change.
package note

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wahlandcase/deploygate/internal/event"
	"github.com/wahlandcase/deploygate/internal/githost"
	"github.com/wahlandcase/deploygate/internal/models"
)

// Builder derives deploy notes for one trigger context
type Builder struct {
	Event *event.Context
	Host  githost.Host
}

// Note returns the deploy note for the current run. For pull_request
// events without an explicit commit the note comes from the PR title and
// link; otherwise it comes from the commit message and web link of the
// given commit, or of the event's own commit when commit is nil.
func (b Builder) Note(commit *models.Commit) (string, error) {
	if b.Event.Kind == event.KindPullRequest && commit == nil {
		pr := b.Event.PullRequest
		return fmt.Sprintf("PR: %s %s", FirstLine(pr.Title), pr.HTMLURL), nil
	}

	if commit == nil {
		current, err := b.CurrentCommit()
		if err != nil {
			return "", err
		}
		commit = &current
	}

	return fmt.Sprintf("Commit: %s %s", FirstLine(commit.Message), commit.Link()), nil
}

// CurrentCommit resolves the commit the trigger event refers to: the push
// payload's head commit when present, otherwise the commit fetched for
// the event's recorded sha.
func (b Builder) CurrentCommit() (models.Commit, error) {
	if b.Event.Kind == event.KindPush && b.Event.HeadCommit != nil {
		return b.Event.HeadCommit.Commit(), nil
	}
	return b.Host.Commit(b.Event.SHA)
}

// FirstLine extracts the first line of text. Messages may arrive either
// verbatim or with line breaks already escaped, so the literal \n and \r
// sequences are split before real line breaks.
func FirstLine(text string) string {
	line := strings.SplitN(text, `\n`, 2)[0]
	line = strings.SplitN(line, `\r`, 2)[0]
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	return line
}

var unsafePattern = regexp.MustCompile(`[^\w@%+=:,./-]`)

// Quote returns a shell-escaped form of s that round-trips through POSIX
// word splitting: unquoting yields exactly s, embedded quotes included.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !unsafePattern.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
