package gate

import (
	"regexp"

	"github.com/wahlandcase/deploygate/internal/event"
	"github.com/wahlandcase/deploygate/internal/ui"
)

var (
	// releaseTagPattern recognizes version tags like v1, v1.2.3 or
	// v2.0.0rc1. Anchored at the start only.
	releaseTagPattern = regexp.MustCompile(`^v[0-9]+(\.[0-9]+)*([a-z]+[0-9]+)?`)
	// auxTitlePattern recognizes PR titles marked auxiliary, with an
	// optional leading issue number
	auxTitlePattern = regexp.MustCompile(`(?i)^[0-9\s]*aux:`)
)

// requirementCheck either decides whether a deploy is required or defers
// to the next check. The checks run in a fixed order and the first one
// that decides wins.
type requirementCheck struct {
	name string
	run  func(g *Gate) (required, decided bool, err error)
}

var requirementChecks = []requirementCheck{
	{name: "non-version release tag", run: checkReleaseTag},
	{name: "non pull request", run: checkNonPullRequest},
	{name: "draft pull request", run: checkDraft},
	{name: "aux pull request", run: checkAuxTitle},
	{name: "automated commit", run: checkHumanCommit},
}

// DeployRequired reports whether the triggering event calls for a
// deployment at all.
func (g *Gate) DeployRequired() (bool, error) {
	for _, check := range requirementChecks {
		required, decided, err := check.run(g)
		if err != nil {
			return false, err
		}
		if decided {
			return required, nil
		}
	}

	// The last check always decides; not reached.
	return true, nil
}

func checkReleaseTag(g *Gate) (bool, bool, error) {
	if g.event.Kind == event.KindRelease && !releaseTagPattern.MatchString(g.event.Release.TagName) {
		g.logf(ui.Skip, "Non-version tag, skipping the release.")
		return false, true, nil
	}
	return false, false, nil
}

func checkNonPullRequest(g *Gate) (bool, bool, error) {
	if g.event.Kind != event.KindPullRequest {
		g.logf(ui.Allow, "Not a PR, enable the release.")
		return true, true, nil
	}
	return false, false, nil
}

func checkDraft(g *Gate) (bool, bool, error) {
	if g.event.PullRequest.Draft {
		g.logf(ui.Skip, "Skip release for a draft PR.")
		return false, true, nil
	}
	return false, false, nil
}

func checkAuxTitle(g *Gate) (bool, bool, error) {
	if auxTitlePattern.MatchString(g.event.PullRequest.Title) {
		g.logf(ui.Skip, "Skip release for a PR prefixed with `Aux:`.")
		return false, true, nil
	}
	return false, false, nil
}

func checkHumanCommit(g *Gate) (bool, bool, error) {
	commit, err := g.notes.CurrentCommit()
	if err != nil {
		return false, false, err
	}

	human, err := g.classifier.IsHuman(commit)
	if err != nil {
		return false, false, err
	}
	if !human {
		g.logf(ui.Skip, "Skipping the release for a commit created by a bot.")
	}
	return human, true, nil
}
