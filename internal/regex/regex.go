package regex

import "regexp"

var (
	// Issue reference patterns offered by `config init`
	JiraTicket  = regexp.MustCompile(`([A-Z][A-Z0-9]+-\d+)`)
	GitHubIssue = regexp.MustCompile(`(?:GH-|#)(\d+)`)
	NoIssue     = regexp.MustCompile(`(?i)\bNO[-_ ]ISSUE\b`)

	// Issue number inside a GitHub reference such as "#12", "GH-12" or "owner/repo#12"
	IssueNumber = regexp.MustCompile(`(\d+)$`)

	// Git remote patterns
	SSHRepo   = regexp.MustCompile(`git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)
	HTTPSRepo = regexp.MustCompile(`https?://([^/]+)/([^/]+)/(.+?)(?:\.git)?$`)
)
