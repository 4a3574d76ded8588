package ports

import (
	"context"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
)

// CommitValidator is the entry point used by the CLI and the HTTP service.
type CommitValidator interface {
	Check(ctx context.Context, commit models.Commit) models.Verdict
	Validate(ctx context.Context, commit models.Commit) ([]models.ValidationMessage, error)
}
