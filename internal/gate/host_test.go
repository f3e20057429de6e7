package gate

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/wahlandcase/deploygate/internal/config"
	"github.com/wahlandcase/deploygate/internal/event"
	"github.com/wahlandcase/deploygate/internal/models"
)

const botEmail = "github-actions[bot]@users.noreply.github.com"

const bumpMessage = "Automatically set version v9.9.9 of image backend in kustomization.yaml files"

// fakeHost serves canned host responses. Unknown commits and branch
// heads return errors; unknown compares report "ahead".
type fakeHost struct {
	commits  map[string]models.Commit
	heads    map[string]models.Commit
	compares map[string]string
}

func (f fakeHost) Commit(sha string) (models.Commit, error) {
	c, ok := f.commits[sha]
	if !ok {
		return models.Commit{}, fmt.Errorf("no commit %s", sha)
	}
	return c, nil
}

func (f fakeHost) BranchHead(branch string) (models.Commit, error) {
	c, ok := f.heads[branch]
	if !ok {
		return models.Commit{}, fmt.Errorf("no branch %s", branch)
	}
	return c, nil
}

func (f fakeHost) Compare(base, head string) (string, error) {
	if status, ok := f.compares[base+"..."+head]; ok {
		return status, nil
	}
	return "ahead", nil
}

func prEvent(title string, draft bool) *event.Context {
	return &event.Context{
		Kind:    event.KindPullRequest,
		Name:    "pull_request",
		HeadRef: "feature/fix",
		SHA:     "headsha",
		PullRequest: &models.PullRequest{
			Number:  42,
			Title:   title,
			Draft:   draft,
			HTMLURL: "https://host/pr/42",
			Head:    models.Branch{Ref: "feature/fix", SHA: "headsha"},
		},
		Repository: models.Repository{
			DefaultBranch: "main",
			HTMLURL:       "https://host/org/repo",
		},
	}
}

func humanCommit(sha string) models.Commit {
	return models.Commit{
		SHA:       sha,
		Message:   "Fix bug #42",
		Committer: models.Identity{Email: "dev@example.com"},
		HTMLURL:   "https://host/commit/" + sha,
	}
}

func newGate(t *testing.T, ev *event.Context, host fakeHost) *Gate {
	t.Helper()
	return New(config.DefaultConfig(), ev, host, &bytes.Buffer{})
}
