package models

// PushCommit is the head_commit shape embedded in push event payloads.
// It uses "id" instead of "sha" and carries no parent list.
type PushCommit struct {
	ID        string   `json:"id"`
	Message   string   `json:"message"`
	URL       string   `json:"url"`
	Author    Identity `json:"author"`
	Committer Identity `json:"committer"`
}

// Commit converts the push payload shape into the regular commit model
func (p PushCommit) Commit() Commit {
	return Commit{
		SHA:       p.ID,
		Message:   p.Message,
		Author:    p.Author,
		Committer: p.Committer,
		URL:       p.URL,
	}
}
