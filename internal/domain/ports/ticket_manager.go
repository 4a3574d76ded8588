package ports

import (
	"context"
	"regexp"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
)

// IssueTracker answers whether an issue exists. A non-nil error means the
// tracker could not be queried, which is different from a "false" answer.
// Implementations must be safe for concurrent use.
type IssueTracker interface {
	Exists(ctx context.Context, issueID string) (bool, error)
}

// TrackerFactory hands out a tracker handle scoped to a single validation call.
type TrackerFactory interface {
	TrackerFor(ctx context.Context, repository string) (IssueTracker, error)
}

// PolicyProvider exposes a read-only view of the validation configuration.
// A nil pattern means the pattern is not configured.
type PolicyProvider interface {
	IsEnabled(repository, ref string) bool
	AssociationPolicy(repository string) models.AssociationPolicy
	IssuePattern(repository string) *regexp.Regexp
	DummyIssuePattern(repository string) *regexp.Regexp
	TrackerName(repository string) string
}
