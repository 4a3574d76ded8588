package github

import (
	"context"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/mock"
)

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	var issue *github.Issue
	if v := args.Get(0); v != nil {
		issue = v.(*github.Issue)
	}
	var resp *github.Response
	if v := args.Get(1); v != nil {
		resp = v.(*github.Response)
	}
	return issue, resp, args.Error(2)
}
