package gate

import (
	"strings"

	"github.com/wahlandcase/deploygate/internal/event"
	"github.com/wahlandcase/deploygate/internal/githost"
	"github.com/wahlandcase/deploygate/internal/models"
	"github.com/wahlandcase/deploygate/internal/ui"
)

// SafeToDeploy reports whether deploying now would conflict with what
// the deploy branch already carries. Non-PR events are always safe.
func (g *Gate) SafeToDeploy() (bool, error) {
	if g.event.Kind != event.KindPullRequest {
		g.logf(ui.Allow, "Not a PR, assume it is safe to deploy.")
		return true, nil
	}

	direct, err := g.directlyDeployed()
	if err != nil {
		return false, err
	}
	if direct {
		return true, nil
	}

	lastDeploy, err := g.host.BranchHead(g.cfg.Deploy.Branch)
	if err != nil {
		return false, err
	}
	lastMain, err := g.host.BranchHead(g.event.MainBranch())
	if err != nil {
		return false, err
	}

	// Two candidate reference points, in order: the event's own head and
	// the tip of the main branch. If the deploy branch's last automated
	// update already ends with the deploy note of either, the branch
	// state encodes this same change and pushing over it is fine.
	candidates := []struct {
		name   string
		commit *models.Commit
	}{
		{name: "HEAD", commit: nil},
		{name: g.event.MainBranch(), commit: &lastMain},
	}

	for _, candidate := range candidates {
		if !g.cfg.IsBotEmail(lastDeploy.Committer.Email) {
			continue
		}

		candidateNote, err := g.notes.Note(candidate.commit)
		if err != nil {
			return false, err
		}

		if strings.HasSuffix(lastDeploy.Message, candidateNote) {
			g.logf(ui.Allow, "The deploy seems to be based on %s.  Allow to override.", candidate.name)
			return true, nil
		}
	}

	return false, nil
}

// directlyDeployed reports whether the main branch or the event's source
// branch already compares as identical to the deploy branch.
func (g *Gate) directlyDeployed() (bool, error) {
	for _, branch := range []string{g.event.MainBranch(), g.event.HeadRef} {
		status, err := g.host.Compare(branch, g.cfg.Deploy.Branch)
		if err != nil {
			return false, err
		}
		if status == githost.CompareIdentical {
			g.logf(ui.Allow, "%s is identical to %s, allow to override.", g.cfg.Deploy.Branch, branch)
			return true, nil
		}
	}
	return false, nil
}
