package errors

import (
	"fmt"
	"strings"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
)

// ConfigError represents an invalid configuration value
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error [%s]: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("config error [%s]: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new configuration error
func NewConfigError(field, message string, err error) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// TrackerUnavailableError indicates the issue tracker could not be queried.
type TrackerUnavailableError struct {
	Tracker string
	IssueID string
	Err     error
}

func (e *TrackerUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s tracker unavailable while checking %s: %v", e.Tracker, e.IssueID, e.Err)
	}
	return fmt.Sprintf("%s tracker unavailable while checking %s", e.Tracker, e.IssueID)
}

func (e *TrackerUnavailableError) Unwrap() error {
	return e.Err
}

// NewTrackerUnavailableError wraps a transport failure for an issue lookup
func NewTrackerUnavailableError(tracker, issueID string, err error) *TrackerUnavailableError {
	return &TrackerUnavailableError{
		Tracker: tracker,
		IssueID: issueID,
		Err:     err,
	}
}

// TrackerProviderNotFoundError indicates a tracker provider is not registered
type TrackerProviderNotFoundError struct {
	Provider string
}

func (e *TrackerProviderNotFoundError) Error() string {
	return fmt.Sprintf("issue tracker provider '%s' not found in registry", e.Provider)
}

func NewTrackerProviderNotFoundError(provider string) *TrackerProviderNotFoundError {
	return &TrackerProviderNotFoundError{Provider: provider}
}

// CommitRejectedError is returned when a commit must not be accepted.
// Messages holds every message produced during the validation call.
type CommitRejectedError struct {
	CommitID string
	Messages []models.ValidationMessage
}

func (e *CommitRejectedError) Error() string {
	synopses := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		synopses = append(synopses, m.Synopsis)
	}
	return fmt.Sprintf("commit %s rejected: %s", e.CommitID, strings.Join(synopses, "; "))
}

func NewCommitRejectedError(commitID string, messages []models.ValidationMessage) *CommitRejectedError {
	return &CommitRejectedError{
		CommitID: commitID,
		Messages: messages,
	}
}
