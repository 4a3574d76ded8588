package services

import (
	"context"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
	"github.com/Tomas-vilte/issuegate/internal/logger"
)

// ClassifyIssue queries the tracker once for reference. Tracker errors never
// escape: they become OutcomeUnreachable with an advisory diagnostic.
func ClassifyIssue(ctx context.Context, tracker ports.IssueTracker, reference string) models.Classification {
	exists, err := tracker.Exists(ctx, reference)
	if err != nil {
		diagnostic := connectivityMessage(reference, err)
		logger.Warn(ctx, diagnostic.Synopsis, "issue", reference, "error", err)
		return models.Classification{
			Reference:  reference,
			Outcome:    models.OutcomeUnreachable,
			Diagnostic: &diagnostic,
		}
	}

	outcome := models.OutcomeDoesNotExist
	if exists {
		outcome = models.OutcomeExists
	}
	logger.Debug(ctx, "issue checked", "issue", reference, "outcome", outcome.String())

	return models.Classification{Reference: reference, Outcome: outcome}
}

// ClassifyIssues checks every reference sequentially, in order. A failing
// lookup does not stop the remaining ones.
func ClassifyIssues(ctx context.Context, tracker ports.IssueTracker, references []string) []models.Classification {
	classifications := make([]models.Classification, 0, len(references))
	for _, reference := range references {
		classifications = append(classifications, ClassifyIssue(ctx, tracker, reference))
	}
	return classifications
}

// unreachableAll is used when no tracker handle could be obtained at all.
func unreachableAll(ctx context.Context, references []string, err error) []models.Classification {
	classifications := make([]models.Classification, 0, len(references))
	for _, reference := range references {
		diagnostic := connectivityMessage(reference, err)
		logger.Warn(ctx, diagnostic.Synopsis, "issue", reference, "error", err)
		classifications = append(classifications, models.Classification{
			Reference:  reference,
			Outcome:    models.OutcomeUnreachable,
			Diagnostic: &diagnostic,
		})
	}
	return classifications
}
