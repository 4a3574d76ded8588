package errors

import (
	"errors"
	"testing"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestTrackerUnavailableError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewTrackerUnavailableError("jira", "PROJ-1", cause)

	assert.Equal(t, "jira tracker unavailable while checking PROJ-1: dial tcp: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestCommitRejectedError(t *testing.T) {
	err := NewCommitRejectedError("abc123", []models.ValidationMessage{
		{Synopsis: "first"},
		{Synopsis: "second"},
	})

	assert.Equal(t, "commit abc123 rejected: first; second", err.Error())

	var target *CommitRejectedError
	wrapped := errors.Join(errors.New("context"), err)
	assert.True(t, errors.As(wrapped, &target))
	assert.Len(t, target.Messages, 2)
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("issue_pattern", "invalid regular expression", errors.New("missing closing )"))
	assert.Equal(t, "config error [issue_pattern]: invalid regular expression: missing closing )", err.Error())

	plain := NewConfigError("association", "unknown value", nil)
	assert.Equal(t, "config error [association]: unknown value", plain.Error())
}
