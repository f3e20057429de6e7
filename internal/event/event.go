package event

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/wahlandcase/deploygate/internal/models"
)

// Kind is the trigger event class the gatekeeper distinguishes
type Kind string

const (
	KindPullRequest      Kind = "pull_request"
	KindPush             Kind = "push"
	KindRelease          Kind = "release"
	KindWorkflowDispatch Kind = "workflow_dispatch"
	KindOther            Kind = "other"
)

// PayloadError marks an event payload missing a field the gatekeeper
// needs. It signals a pipeline misconfiguration, not a deploy conflict.
type PayloadError struct {
	Field string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("event payload is missing %q", e.Field)
}

// Context is the immutable trigger context for one CI run
type Context struct {
	Kind    Kind
	Name    string // raw event name as reported by the runner
	Ref     string // fully qualified ref the event fired on
	HeadRef string // PR source branch, empty for non-PR events
	SHA     string

	PullRequest *models.PullRequest
	Release     *models.Release
	HeadCommit  *models.PushCommit
	Repository  models.Repository
}

type payload struct {
	PullRequest *models.PullRequest `json:"pull_request"`
	Release     *models.Release     `json:"release"`
	HeadCommit  *models.PushCommit  `json:"head_commit"`
	Repository  models.Repository   `json:"repository"`
}

// FromEnv builds the trigger context from the GitHub Actions environment:
// GITHUB_EVENT_NAME, GITHUB_EVENT_PATH, GITHUB_REF, GITHUB_HEAD_REF and
// GITHUB_SHA.
func FromEnv() (*Context, error) {
	name := os.Getenv("GITHUB_EVENT_NAME")
	if name == "" {
		return nil, &PayloadError{Field: "GITHUB_EVENT_NAME"}
	}

	path := os.Getenv("GITHUB_EVENT_PATH")
	if path == "" {
		return nil, &PayloadError{Field: "GITHUB_EVENT_PATH"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event payload: %w", err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse event payload: %w", err)
	}

	ctx := &Context{
		Kind:        kindOf(name),
		Name:        name,
		Ref:         os.Getenv("GITHUB_REF"),
		HeadRef:     os.Getenv("GITHUB_HEAD_REF"),
		SHA:         os.Getenv("GITHUB_SHA"),
		PullRequest: p.PullRequest,
		Release:     p.Release,
		HeadCommit:  p.HeadCommit,
		Repository:  p.Repository,
	}

	if err := ctx.validate(); err != nil {
		return nil, err
	}

	return ctx, nil
}

func kindOf(name string) Kind {
	switch name {
	case "pull_request", "push", "release", "workflow_dispatch":
		return Kind(name)
	default:
		return KindOther
	}
}

func (c *Context) validate() error {
	if c.Repository.DefaultBranch == "" {
		return &PayloadError{Field: "repository.default_branch"}
	}

	switch c.Kind {
	case KindPullRequest:
		if c.PullRequest == nil {
			return &PayloadError{Field: "pull_request"}
		}
		if c.PullRequest.Title == "" {
			return &PayloadError{Field: "pull_request.title"}
		}
		if c.PullRequest.HTMLURL == "" {
			return &PayloadError{Field: "pull_request.html_url"}
		}
	case KindRelease:
		if c.Release == nil || c.Release.TagName == "" {
			return &PayloadError{Field: "release.tag_name"}
		}
	}

	return nil
}

// CurrentRef is the branch the event fired on: the PR head branch when
// set, otherwise the last segment of the fully qualified ref.
func (c *Context) CurrentRef() string {
	if c.HeadRef != "" {
		return c.HeadRef
	}
	if i := strings.LastIndex(c.Ref, "/"); i >= 0 {
		return c.Ref[i+1:]
	}
	return c.Ref
}

// MainBranch is the repository default branch name
func (c *Context) MainBranch() string {
	return c.Repository.DefaultBranch
}
