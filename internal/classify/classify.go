// Package classify decides whether a commit was produced by a human or
// by automation, so bot-generated version bumps do not re-trigger
// deployments.
package classify

import (
	"regexp"

	"github.com/wahlandcase/deploygate/internal/models"
)

// autoBumpPattern matches the message written by the automated
// kustomization version-bump commits. Anchored at the start only.
var autoBumpPattern = regexp.MustCompile(`^Automatically set version .* of image .* in kustomization\.yaml`)

// CommitFetcher is the single host capability the classifier needs.
// Keeping it this narrow lets tests inject a canned commit map.
type CommitFetcher interface {
	Commit(sha string) (models.Commit, error)
}

// Classifier tells human commits apart from automated ones
type Classifier struct {
	Fetcher   CommitFetcher
	BotEmails []string
}

// IsHuman reports whether the commit was made by a human. Merge commits
// are judged by their parents: the merge counts as automated only when
// every parent is a bot-committed version bump. Anything that is not a
// recognizable automated commit counts as human, so an unknown shape
// never suppresses a deployment.
func (c Classifier) IsHuman(commit models.Commit) (bool, error) {
	commits := []models.Commit{commit}

	if commit.IsMerge() {
		commits = commits[:0]
		for _, parent := range commit.Parents {
			fetched, err := c.Fetcher.Commit(parent.SHA)
			if err != nil {
				return false, err
			}
			commits = append(commits, fetched)
		}
	}

	for _, cm := range commits {
		if !c.isAutomated(cm) {
			return true, nil
		}
	}

	return false, nil
}

func (c Classifier) isAutomated(commit models.Commit) bool {
	return c.isBotEmail(commit.Committer.Email) && autoBumpPattern.MatchString(commit.Message)
}

func (c Classifier) isBotEmail(email string) bool {
	for _, e := range c.BotEmails {
		if e == email {
			return true
		}
	}
	return false
}
