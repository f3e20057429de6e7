package gate

import (
	"testing"

	"github.com/wahlandcase/deploygate/internal/event"
	"github.com/wahlandcase/deploygate/internal/models"
)

func TestSafeToDeployNonPullRequest(t *testing.T) {
	ev := &event.Context{
		Kind:       event.KindPush,
		Repository: models.Repository{DefaultBranch: "main"},
	}

	g := newGate(t, ev, fakeHost{})
	safe, err := g.SafeToDeploy()
	if err != nil {
		t.Fatal(err)
	}
	if !safe {
		t.Fatal("non-PR events are always safe")
	}
}

func TestSafeToDeployDirectlyDeployed(t *testing.T) {
	cases := []struct {
		name    string
		compare string
	}{
		{name: "main identical to deploy branch", compare: "main...deploy/dev"},
		{name: "head identical to deploy branch", compare: "feature/fix...deploy/dev"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			host := fakeHost{compares: map[string]string{tc.compare: "identical"}}

			g := newGate(t, prEvent("Fix bug #42", false), host)
			safe, err := g.SafeToDeploy()
			if err != nil {
				t.Fatal(err)
			}
			if !safe {
				t.Fatalf("identical compare %s should be safe", tc.compare)
			}
		})
	}
}

func TestSafeToDeployNoteMatchesEventHead(t *testing.T) {
	host := fakeHost{heads: map[string]models.Commit{
		"deploy/dev": {
			SHA:       "d",
			Message:   bumpMessage + "\n\nPR: Fix bug #42 https://host/pr/42",
			Committer: models.Identity{Email: botEmail},
		},
		"main": humanCommit("mainsha"),
	}}

	g := newGate(t, prEvent("Fix bug #42", false), host)
	safe, err := g.SafeToDeploy()
	if err != nil {
		t.Fatal(err)
	}
	if !safe {
		t.Fatal("deploy branch encoding the PR note should be safe")
	}
}

func TestSafeToDeployNoteMatchesMainHead(t *testing.T) {
	host := fakeHost{heads: map[string]models.Commit{
		"deploy/dev": {
			SHA:       "d",
			Message:   bumpMessage + "\n\nCommit: Fix bug #42 https://host/commit/mainsha",
			Committer: models.Identity{Email: botEmail},
		},
		"main": humanCommit("mainsha"),
	}}

	// The PR note differs, but the deploy branch encodes the note of the
	// main branch tip.
	g := newGate(t, prEvent("Another change", false), host)
	safe, err := g.SafeToDeploy()
	if err != nil {
		t.Fatal(err)
	}
	if !safe {
		t.Fatal("deploy branch encoding the main tip note should be safe")
	}
}

func TestSafeToDeployNoteMismatch(t *testing.T) {
	host := fakeHost{heads: map[string]models.Commit{
		"deploy/dev": {
			SHA: "d",
			// One character off from the PR note.
			Message:   bumpMessage + "\n\nPR: Fix bug #43 https://host/pr/42",
			Committer: models.Identity{Email: botEmail},
		},
		"main": humanCommit("mainsha"),
	}}

	g := newGate(t, prEvent("Fix bug #42", false), host)
	safe, err := g.SafeToDeploy()
	if err != nil {
		t.Fatal(err)
	}
	if safe {
		t.Fatal("a deploy note differing by one character must be unsafe")
	}
}

func TestSafeToDeployNonBotDeployCommit(t *testing.T) {
	host := fakeHost{heads: map[string]models.Commit{
		"deploy/dev": {
			SHA: "d",
			// The note matches, but a human pushed the deploy branch tip,
			// so the marker cannot be trusted.
			Message:   "PR: Fix bug #42 https://host/pr/42",
			Committer: models.Identity{Email: "dev@example.com"},
		},
		"main": humanCommit("mainsha"),
	}}

	g := newGate(t, prEvent("Fix bug #42", false), host)
	safe, err := g.SafeToDeploy()
	if err != nil {
		t.Fatal(err)
	}
	if safe {
		t.Fatal("a non-bot deploy branch tip must be unsafe")
	}
}

func TestSafeToDeployMissingDeployBranch(t *testing.T) {
	host := fakeHost{heads: map[string]models.Commit{
		"main": humanCommit("mainsha"),
	}}

	g := newGate(t, prEvent("Fix bug #42", false), host)
	if _, err := g.SafeToDeploy(); err == nil {
		t.Fatal("a failed deploy branch fetch must propagate as an error")
	}
}
