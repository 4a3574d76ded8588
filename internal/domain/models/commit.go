package models

// Commit is the input of one validation call.
type Commit struct {
	Repository string `json:"repository"`
	Ref        string `json:"ref"`
	ID         string `json:"commit_id"`
	Message    string `json:"message"`
}

// ShortID returns the abbreviated commit hash used in log lines.
func (c Commit) ShortID() string {
	if len(c.ID) > 12 {
		return c.ID[:12]
	}
	return c.ID
}
