package ports

import (
	"context"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
)

// GitService reads commits from a local repository.
type GitService interface {
	ReadCommit(ctx context.Context, revision string) (models.Commit, error)
}
