package di

import (
	"sync"

	"github.com/Tomas-vilte/issuegate/internal/config"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
	appErrors "github.com/Tomas-vilte/issuegate/internal/errors"
	"github.com/Tomas-vilte/issuegate/internal/infrastructure/git"
	"github.com/Tomas-vilte/issuegate/internal/infrastructure/tickets/registry"
	"github.com/Tomas-vilte/issuegate/internal/metrics"
	"github.com/Tomas-vilte/issuegate/internal/services"
)

// Container gestiona las dependencias de la aplicación
type Container struct {
	config *config.Config

	trackerRegistry *registry.TrackerProviderRegistry
	metrics         *metrics.Metrics

	// Lazy initialized
	mu                sync.Mutex
	validationService *services.ValidationService
}

func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:          cfg,
		trackerRegistry: registry.NewTrackerProviderRegistry(),
		metrics:         metrics.New(),
	}
}

// RegisterTrackerProvider registra un proveedor de issue tracker
func (c *Container) RegisterTrackerProvider(name string, factory registry.TrackerProviderFactory) error {
	return c.trackerRegistry.Register(name, factory)
}

// GetValidationService compiles the configuration into a snapshot the first
// time it is called and reuses the resulting service afterwards.
func (c *Container) GetValidationService() (*services.ValidationService, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.validationService != nil {
		return c.validationService, nil
	}

	if c.config == nil {
		return nil, appErrors.ErrConfigMissing
	}

	snapshot, err := config.NewSnapshot(c.config)
	if err != nil {
		return nil, appErrors.ErrConfigInvalid.WithError(err).WithContext("path", c.config.PathFile)
	}

	resolver := registry.NewResolver(c.trackerRegistry, snapshot)
	c.validationService = services.NewValidationService(snapshot, resolver)
	return c.validationService, nil
}

// GetValidator exposes the validation service through its port.
func (c *Container) GetValidator() (ports.CommitValidator, error) {
	svc, err := c.GetValidationService()
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// GetGitService abre el repositorio que contiene path
func (c *Container) GetGitService(path string) (ports.GitService, error) {
	return git.NewGitService(path)
}

func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}
