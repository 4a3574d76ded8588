package services

import (
	"context"
	"regexp"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
	"github.com/stretchr/testify/mock"
)

type (
	MockIssueTracker struct {
		mock.Mock
	}

	MockTrackerFactory struct {
		mock.Mock
	}

	MockPolicyProvider struct {
		mock.Mock
	}
)

func (m *MockIssueTracker) Exists(ctx context.Context, issueID string) (bool, error) {
	args := m.Called(ctx, issueID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTrackerFactory) TrackerFor(ctx context.Context, repository string) (ports.IssueTracker, error) {
	args := m.Called(ctx, repository)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.IssueTracker), args.Error(1)
}

func (m *MockPolicyProvider) IsEnabled(repository, ref string) bool {
	args := m.Called(repository, ref)
	return args.Bool(0)
}

func (m *MockPolicyProvider) AssociationPolicy(repository string) models.AssociationPolicy {
	args := m.Called(repository)
	return args.Get(0).(models.AssociationPolicy)
}

func (m *MockPolicyProvider) IssuePattern(repository string) *regexp.Regexp {
	args := m.Called(repository)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*regexp.Regexp)
}

func (m *MockPolicyProvider) DummyIssuePattern(repository string) *regexp.Regexp {
	args := m.Called(repository)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*regexp.Regexp)
}

func (m *MockPolicyProvider) TrackerName(repository string) string {
	args := m.Called(repository)
	return args.String(0)
}
