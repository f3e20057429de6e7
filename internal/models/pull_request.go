package models

// PullRequest carries the pull_request payload fields the gatekeeper reads
type PullRequest struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Draft   bool   `json:"draft"`
	HTMLURL string `json:"html_url"`
	Head    Branch `json:"head"`
}

// Branch is a git reference inside a pull request payload
type Branch struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}
