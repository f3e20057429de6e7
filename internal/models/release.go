package models

// Release carries the release payload fields the gatekeeper reads
type Release struct {
	TagName string `json:"tag_name"`
}
