package jira

import (
	"context"
	"net/http"
	"time"

	"github.com/Tomas-vilte/issuegate/internal/config"
	domainErrors "github.com/Tomas-vilte/issuegate/internal/domain/errors"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
)

const requestTimeout = 10 * time.Second

// JiraProviderFactory crea clientes de Jira para el registry de trackers.
type JiraProviderFactory struct{}

func NewJiraProviderFactory() *JiraProviderFactory {
	return &JiraProviderFactory{}
}

// CreateClient crea un cliente Jira nuevo; nunca se comparte entre validaciones.
func (f *JiraProviderFactory) CreateClient(_ context.Context, cfg config.TrackerProviderConfig) (ports.IssueTracker, error) {
	return NewJiraService(cfg.BaseURL, cfg.APIKey, cfg.Email, &http.Client{Timeout: requestTimeout}), nil
}

// ValidateConfig valida la configuración de Jira
func (f *JiraProviderFactory) ValidateConfig(cfg config.TrackerProviderConfig) error {
	if cfg.BaseURL == "" {
		return domainErrors.NewConfigError("tracker_providers.jira.base_url", "jira base URL is required", nil)
	}
	if cfg.APIKey == "" {
		return domainErrors.NewConfigError("tracker_providers.jira.api_key", "jira API key is required", nil)
	}
	if cfg.Email == "" {
		return domainErrors.NewConfigError("tracker_providers.jira.email", "jira email is required", nil)
	}
	return nil
}

func (f *JiraProviderFactory) Name() string {
	return config.TrackerJira
}
