package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
)

const (
	synopsisNonExisting  = "Non-existing issue ids referenced in commit message"
	synopsisMissingIssue = "Missing issue-id in commit message"
)

func trackerDisplayName(name string) string {
	if name == "" {
		return "configured"
	}
	return name
}

func connectivityMessage(reference string, err error) models.ValidationMessage {
	return models.ValidationMessage{
		Synopsis: fmt.Sprintf("Failed to check whether or not issue %s exists, due to connectivity issue. Commit will be accepted.", reference),
		Details:  err.Error(),
		Severity: models.SeverityAdvisory,
		Cause:    models.OutcomeUnreachable,
	}
}

func nonExistingIssuesMessage(references []string, commitID, trackerName string) models.ValidationMessage {
	var sb strings.Builder
	sb.WriteString("The issue-ids\n")
	for _, reference := range references {
		sb.WriteString("    * ")
		sb.WriteString(reference)
		sb.WriteString("\n")
	}
	sb.WriteString("are referenced in the commit message of\n")
	sb.WriteString(commitID)
	sb.WriteString(",\n")
	sb.WriteString("but do not exist in ")
	sb.WriteString(trackerDisplayName(trackerName))
	sb.WriteString(" Issue-Tracker")

	return models.ValidationMessage{
		Synopsis: synopsisNonExisting,
		Details:  sb.String(),
		Severity: models.SeverityBlockingCandidate,
		Cause:    models.OutcomeDoesNotExist,
	}
}

// missingIssueMessage explains how to reference an issue. Without a configured
// pattern the details carry a hint for administrators instead.
func missingIssueMessage(commitID, trackerName string, issuePattern *regexp.Regexp) models.ValidationMessage {
	tracker := trackerDisplayName(trackerName)

	var sb strings.Builder
	sb.WriteString("Commit ")
	sb.WriteString(commitID)
	sb.WriteString(" not associated to any issue\n")
	sb.WriteString("\n")
	sb.WriteString("Hint: insert one or more issue-id anywhere in the commit message.\n")

	if issuePattern == nil {
		sb.WriteString("      ")
		sb.WriteString(tracker)
		sb.WriteString(" Issue-Tracker requires an issue pattern to validate commit messages, but none is defined in the configuration.\n")
		sb.WriteString("      Please contact an administrator to correct this.")
	} else {
		sb.WriteString("      Issue-ids are strings matching ")
		sb.WriteString(issuePattern.String())
		sb.WriteString("\n")
		sb.WriteString("      and are pointing to existing tickets on ")
		sb.WriteString(tracker)
		sb.WriteString(" Issue-Tracker")
	}

	return models.ValidationMessage{
		Synopsis: synopsisMissingIssue,
		Details:  sb.String(),
		Severity: models.SeverityBlockingCandidate,
		Cause:    models.OutcomeDoesNotExist,
	}
}
