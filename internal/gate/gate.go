// Package gate holds the deployment gatekeeper decision logic: whether
// the triggering change should be deployed, and whether deploying it now
// conflicts with what the shared deploy branch already carries.
package gate

import (
	"fmt"
	"io"
	"os"

	"github.com/wahlandcase/deploygate/internal/classify"
	"github.com/wahlandcase/deploygate/internal/config"
	"github.com/wahlandcase/deploygate/internal/event"
	"github.com/wahlandcase/deploygate/internal/githost"
	"github.com/wahlandcase/deploygate/internal/note"
)

// Decision is the gatekeeper's complete verdict for one CI run
type Decision struct {
	// Note is the canonical single-line description of the change
	Note string
	// QuotedNote is the shell-safe form of Note
	QuotedNote string
	// Required reports whether a deployment should be attempted
	Required bool
	// Blocked is set when a required deployment conflicts with the
	// current deploy branch state
	Blocked bool
	// Explanation carries the remediation message when Blocked
	Explanation string
}

// Gate evaluates one trigger event against the deploy branch
type Gate struct {
	cfg        *config.Config
	event      *event.Context
	host       githost.Host
	notes      note.Builder
	classifier classify.Classifier

	out io.Writer
}

// New wires a gate for the given trigger context. Decision lines are
// written to out; pass nil for stdout.
func New(cfg *config.Config, ev *event.Context, host githost.Host, out io.Writer) *Gate {
	if out == nil {
		out = os.Stdout
	}
	return &Gate{
		cfg:   cfg,
		event: ev,
		host:  host,
		notes: note.Builder{Event: ev, Host: host},
		classifier: classify.Classifier{
			Fetcher:   host,
			BotEmails: cfg.Bots.Emails,
		},
		out: out,
	}
}

// Evaluate runs the full gatekeeper decision: note derivation, the
// deploy-required checks, and the safety check when a deploy is due. It
// never mutates any branch.
func (g *Gate) Evaluate() (Decision, error) {
	n, err := g.notes.Note(nil)
	if err != nil {
		return Decision{}, err
	}

	d := Decision{Note: n, QuotedNote: note.Quote(n)}

	d.Required, err = g.DeployRequired()
	if err != nil {
		return Decision{}, err
	}
	if !d.Required {
		return d, nil
	}

	safe, err := g.SafeToDeploy()
	if err != nil {
		return Decision{}, err
	}
	if !safe {
		d.Blocked = true
		d.Explanation = g.blockedExplanation()
	}

	return d, nil
}

func (g *Gate) blockedExplanation() string {
	deploy := g.cfg.Deploy.Branch
	return fmt.Sprintf(
		"The branch %q is not a direct accessor of %q.\n"+
			"Make sure the conflicting PRs are merged and re-run this job.\n"+
			"If it did not help, try resetting the %s branch with the reset workflow:\n"+
			"%s/actions/workflows/%s",
		deploy,
		g.event.CurrentRef(),
		deploy,
		g.event.Repository.HTMLURL,
		g.cfg.Deploy.ResetWorkflow,
	)
}

func (g *Gate) logf(render func(string) string, format string, args ...any) {
	fmt.Fprintln(g.out, render(fmt.Sprintf(format, args...)))
}
