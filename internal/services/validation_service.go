package services

import (
	"context"
	"time"

	domainErrors "github.com/Tomas-vilte/issuegate/internal/domain/errors"
	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
	appErrors "github.com/Tomas-vilte/issuegate/internal/errors"
	"github.com/Tomas-vilte/issuegate/internal/logger"
)

var _ ports.CommitValidator = (*ValidationService)(nil)

// ValidationService decides whether a commit is accepted. It keeps no
// per-call state, so one instance serves concurrent calls.
type ValidationService struct {
	policies ports.PolicyProvider
	trackers ports.TrackerFactory
}

func NewValidationService(policies ports.PolicyProvider, trackers ports.TrackerFactory) *ValidationService {
	return &ValidationService{
		policies: policies,
		trackers: trackers,
	}
}

// Check validates commit and returns the verdict without turning a rejection into an error.
func (s *ValidationService) Check(ctx context.Context, commit models.Commit) models.Verdict {
	ctx = logger.With(ctx, "repository", commit.Repository, "ref", commit.Ref, "commit", commit.ShortID())
	start := time.Now()

	if !s.policies.IsEnabled(commit.Repository, commit.Ref) {
		logger.Debug(ctx, "validation disabled for ref")
		return models.Accepted(nil)
	}

	policy := s.policies.AssociationPolicy(commit.Repository)
	if !ruleFor(policy).enforces {
		logger.Debug(ctx, "association policy does not require issues, skipping", "policy", policy.String())
		verdict := models.Accepted(nil)
		verdict.Policy = policy
		return verdict
	}

	issuePattern := s.policies.IssuePattern(commit.Repository)
	references := ExtractIssueIDs(commit.Message, issuePattern)

	var classifications []models.Classification
	if len(references) > 0 {
		classifications = s.classify(ctx, commit.Repository, references)
	}

	verdict := EvaluatePolicy(ctx, Evaluation{
		Policy:          policy,
		Commit:          commit,
		TrackerName:     s.policies.TrackerName(commit.Repository),
		Classifications: classifications,
		IssuePattern:    issuePattern,
		DummyMatched:    len(references) == 0 && MatchesDummy(commit.Message, s.policies.DummyIssuePattern(commit.Repository)),
	})

	logger.Info(ctx, "commit validated",
		"policy", policy.String(),
		"verdict", string(verdict.Kind),
		"references", len(references),
		"messages", len(verdict.Messages),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return verdict
}

// Validate returns the advisory messages of an accepted commit, or a
// *domainErrors.CommitRejectedError carrying every message when it is rejected.
func (s *ValidationService) Validate(ctx context.Context, commit models.Commit) ([]models.ValidationMessage, error) {
	verdict := s.Check(ctx, commit)
	if verdict.IsRejected() {
		return nil, domainErrors.NewCommitRejectedError(commit.ID, verdict.Messages)
	}
	return verdict.Messages, nil
}

// classify obtains a tracker handle for this call only and checks every reference.
func (s *ValidationService) classify(ctx context.Context, repository string, references []string) []models.Classification {
	if s.trackers == nil {
		return unreachableAll(ctx, references, appErrors.ErrTrackerNotConfigured)
	}

	tracker, err := s.trackers.TrackerFor(ctx, repository)
	if err != nil {
		logger.Error(ctx, "could not create issue tracker client", err)
		return unreachableAll(ctx, references, err)
	}
	return ClassifyIssues(ctx, tracker, references)
}
