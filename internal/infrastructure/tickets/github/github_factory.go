package github

import (
	"context"

	"github.com/Tomas-vilte/issuegate/internal/config"
	domainErrors "github.com/Tomas-vilte/issuegate/internal/domain/errors"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
)

// GitHubProviderFactory implementa TrackerProviderFactory para GitHub Issues
type GitHubProviderFactory struct{}

func NewGitHubProviderFactory() *GitHubProviderFactory {
	return &GitHubProviderFactory{}
}

func (f *GitHubProviderFactory) CreateClient(ctx context.Context, cfg config.TrackerProviderConfig) (ports.IssueTracker, error) {
	return NewGitHubIssueTracker(ctx, cfg.Owner, cfg.Repo, cfg.Token, cfg.BaseURL)
}

// ValidateConfig valida la configuración de GitHub. El token es opcional
// para repositorios públicos.
func (f *GitHubProviderFactory) ValidateConfig(cfg config.TrackerProviderConfig) error {
	if cfg.Owner == "" {
		return domainErrors.NewConfigError("tracker_providers.github.owner", "github owner is required", nil)
	}
	if cfg.Repo == "" {
		return domainErrors.NewConfigError("tracker_providers.github.repo", "github repo is required", nil)
	}
	return nil
}

func (f *GitHubProviderFactory) Name() string {
	return config.TrackerGitHub
}
