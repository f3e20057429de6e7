package models

// Identity is the name/email pair GitHub records for commit authors and committers
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CommitRef is a lightweight pointer to another commit (parent links)
type CommitRef struct {
	SHA string `json:"sha"`
}

// Commit mirrors the git commit object returned by the GitHub REST API
type Commit struct {
	SHA       string      `json:"sha"`
	Message   string      `json:"message"`
	Author    Identity    `json:"author"`
	Committer Identity    `json:"committer"`
	Parents   []CommitRef `json:"parents"`
	URL       string      `json:"url"`
	HTMLURL   string      `json:"html_url"`
}

// Link returns the web link for the commit, falling back to the API URL
// when the payload carries no html_url (push head commits do not)
func (c Commit) Link() string {
	if c.HTMLURL != "" {
		return c.HTMLURL
	}
	return c.URL
}

// IsMerge reports whether the commit has more than one parent
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}
