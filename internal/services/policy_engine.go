package services

import (
	"context"
	"regexp"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	"github.com/Tomas-vilte/issuegate/internal/logger"
)

// Evaluation holds everything the policy engine needs for one commit.
// IssuePattern is nil when no pattern is configured.
type Evaluation struct {
	Policy          models.AssociationPolicy
	Commit          models.Commit
	TrackerName     string
	Classifications []models.Classification
	IssuePattern    *regexp.Regexp
	DummyMatched    bool
}

type policyRule struct {
	collect func(ctx context.Context, e Evaluation) []models.ValidationMessage
	// enforces marks rules that need issue references checked against the tracker.
	enforces bool
	// blocks marks rules whose blocking-candidate messages reject the commit.
	blocks bool
}

var policyRules = map[models.AssociationPolicy]policyRule{
	models.PolicyMandatory: {collect: collectAssociationMessages, enforces: true, blocks: true},
	models.PolicySuggested: {collect: collectAssociationMessages, enforces: true},
	models.PolicyOptional:  {collect: noMessages},
}

func ruleFor(policy models.AssociationPolicy) policyRule {
	if rule, ok := policyRules[policy]; ok {
		return rule
	}
	return policyRules[models.PolicyOptional]
}

// EvaluatePolicy turns the classified references of a commit into a verdict.
// A rejected verdict carries every message produced for the commit.
func EvaluatePolicy(ctx context.Context, e Evaluation) models.Verdict {
	rule := ruleFor(e.Policy)
	messages := rule.collect(ctx, e)

	verdict := models.Accepted(messages)
	if rule.blocks && hasBlockingCandidate(messages) {
		verdict = models.Rejected(messages)
	}
	verdict.Policy = e.Policy
	verdict.Classifications = e.Classifications
	return verdict
}

func noMessages(context.Context, Evaluation) []models.ValidationMessage {
	return nil
}

func collectAssociationMessages(ctx context.Context, e Evaluation) []models.ValidationMessage {
	if len(e.Classifications) > 0 {
		return issueMessages(e)
	}

	if e.DummyMatched {
		logger.Debug(ctx, "commit exempted by dummy issue pattern")
		return nil
	}

	if e.IssuePattern == nil {
		logger.Warn(ctx, "association policy requires issue references but no issue pattern is configured; set issue_pattern or use association OPTIONAL",
			"policy", e.Policy.String(), "tracker", e.TrackerName)
	}
	return []models.ValidationMessage{missingIssueMessage(e.Commit.ID, e.TrackerName, e.IssuePattern)}
}

func issueMessages(e Evaluation) []models.ValidationMessage {
	var messages []models.ValidationMessage
	var nonExisting []string

	for _, c := range e.Classifications {
		switch c.Outcome {
		case models.OutcomeUnreachable:
			if c.Diagnostic != nil {
				messages = append(messages, *c.Diagnostic)
			}
		case models.OutcomeDoesNotExist:
			nonExisting = append(nonExisting, c.Reference)
		}
	}

	if len(nonExisting) > 0 {
		messages = append(messages, nonExistingIssuesMessage(nonExisting, e.Commit.ID, e.TrackerName))
	}
	return messages
}

func hasBlockingCandidate(messages []models.ValidationMessage) bool {
	for _, m := range messages {
		if m.IsBlockingCandidate() {
			return true
		}
	}
	return false
}
