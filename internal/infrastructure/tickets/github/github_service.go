package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	domainErrors "github.com/Tomas-vilte/issuegate/internal/domain/errors"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
	appErrors "github.com/Tomas-vilte/issuegate/internal/errors"
	"github.com/Tomas-vilte/issuegate/internal/regex"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const trackerName = "github"

var _ ports.IssueTracker = (*GitHubIssueTracker)(nil)

type IssuesService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error)
}

// GitHubIssueTracker checks issue references against the issues of one repository.
type GitHubIssueTracker struct {
	issuesService IssuesService
	owner         string
	repo          string
}

// NewGitHubIssueTracker builds a client for owner/repo. baseURL targets a
// GitHub Enterprise API and may be empty.
func NewGitHubIssueTracker(ctx context.Context, owner, repo, token, baseURL string) (*GitHubIssueTracker, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github base URL %q: %w", baseURL, err)
		}
	}

	return NewGitHubIssueTrackerWithService(client.Issues, owner, repo), nil
}

func NewGitHubIssueTrackerWithService(issuesService IssuesService, owner, repo string) *GitHubIssueTracker {
	return &GitHubIssueTracker{
		issuesService: issuesService,
		owner:         owner,
		repo:          repo,
	}
}

// Exists accepts references like "#12", "GH-12" or "12". A reference without
// a number can never exist.
func (g *GitHubIssueTracker) Exists(ctx context.Context, issueID string) (bool, error) {
	number, ok := issueNumber(issueID)
	if !ok {
		return false, nil
	}

	_, resp, err := g.issuesService.Get(ctx, g.owner, g.repo, number)
	if err == nil {
		return true, nil
	}

	if resp != nil {
		switch resp.StatusCode {
		case http.StatusNotFound, http.StatusGone:
			return false, nil
		case http.StatusUnauthorized:
			return false, domainErrors.NewTrackerUnavailableError(trackerName, issueID,
				appErrors.ErrTrackerAuth.WithError(err))
		}
	}
	return false, domainErrors.NewTrackerUnavailableError(trackerName, issueID, err)
}

func issueNumber(issueID string) (int, bool) {
	matches := regex.IssueNumber.FindStringSubmatch(issueID)
	if len(matches) < 2 {
		return 0, false
	}
	number, err := strconv.Atoi(matches[1])
	if err != nil || number <= 0 {
		return 0, false
	}
	return number, true
}
