package githost

import (
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/wahlandcase/deploygate/internal/models"
)

// CompareIdentical is the compare status meaning the two refs point at
// the same history
const CompareIdentical = "identical"

// Host is the read-only view of the remote repository the gatekeeper
// consumes. The gatekeeper never mutates refs; branch resets live in a
// separate workflow.
type Host interface {
	Commit(sha string) (models.Commit, error)
	BranchHead(branch string) (models.Commit, error)
	Compare(base, head string) (string, error)
}

// CheckAuth verifies gh CLI is authenticated
func CheckAuth() error {
	cmd := exec.Command("gh", "auth", "status")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("not authenticated with GitHub CLI. Set GH_TOKEN or run 'gh auth login' first")
	}
	return nil
}

// Client talks to the repository host through the gh CLI. The
// :owner/:repo placeholders let gh infer the repo from the checkout.
type Client struct {
	// RepoPath is the working directory for gh invocations.
	// Empty means the current directory (the CI checkout).
	RepoPath string
}

func (c Client) api(path string) ([]byte, error) {
	cmd := exec.Command("gh", "api", path)
	cmd.Dir = c.RepoPath

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("gh api %s failed: %w", path, err)
	}
	return output, nil
}

// Commit fetches a single commit object by sha
func (c Client) Commit(sha string) (models.Commit, error) {
	output, err := c.api(fmt.Sprintf("repos/:owner/:repo/git/commits/%s", sha))
	if err != nil {
		return models.Commit{}, err
	}

	var commit models.Commit
	if err := json.Unmarshal(output, &commit); err != nil {
		return models.Commit{}, fmt.Errorf("parse commit %s: %w", sha, err)
	}

	return commit, nil
}

// BranchHead resolves a branch ref and fetches its tip commit
func (c Client) BranchHead(branch string) (models.Commit, error) {
	output, err := c.api(fmt.Sprintf("repos/:owner/:repo/git/ref/heads/%s", branch))
	if err != nil {
		return models.Commit{}, err
	}

	var ref struct {
		Object struct {
			SHA string `json:"sha"`
		} `json:"object"`
	}
	if err := json.Unmarshal(output, &ref); err != nil {
		return models.Commit{}, fmt.Errorf("parse ref heads/%s: %w", branch, err)
	}

	return c.Commit(ref.Object.SHA)
}

// Compare reports the comparison status ("identical", "ahead", "behind",
// "diverged") between two refs
func (c Client) Compare(base, head string) (string, error) {
	output, err := c.api(fmt.Sprintf("repos/:owner/:repo/compare/%s...%s", base, head))
	if err != nil {
		return "", err
	}

	var cmp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(output, &cmp); err != nil {
		return "", fmt.Errorf("parse compare %s...%s: %w", base, head, err)
	}

	return cmp.Status, nil
}
