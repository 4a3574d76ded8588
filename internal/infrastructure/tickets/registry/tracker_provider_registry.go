package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Tomas-vilte/issuegate/internal/config"
	domainErrors "github.com/Tomas-vilte/issuegate/internal/domain/errors"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
	appErrors "github.com/Tomas-vilte/issuegate/internal/errors"
)

// TrackerProviderFactory define la interfaz para crear clientes de issue trackers
type TrackerProviderFactory interface {
	// CreateClient crea un cliente con la configuración proporcionada
	CreateClient(ctx context.Context, cfg config.TrackerProviderConfig) (ports.IssueTracker, error)

	// ValidateConfig valida la configuración para este proveedor
	ValidateConfig(cfg config.TrackerProviderConfig) error

	Name() string
}

// TrackerConfigSource resolves which tracker serves a repository.
// *config.Snapshot implements it.
type TrackerConfigSource interface {
	TrackerConfig(repository string) (string, config.TrackerProviderConfig, bool)
}

// TrackerProviderRegistry gestiona el registro de proveedores de issue trackers
type TrackerProviderRegistry struct {
	mu        sync.RWMutex
	factories map[string]TrackerProviderFactory
}

func NewTrackerProviderRegistry() *TrackerProviderRegistry {
	return &TrackerProviderRegistry{
		factories: make(map[string]TrackerProviderFactory),
	}
}

// Register registra un nuevo proveedor
func (r *TrackerProviderRegistry) Register(name string, factory TrackerProviderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("issue tracker provider '%s' is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *TrackerProviderRegistry) Get(name string) (TrackerProviderFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, domainErrors.NewTrackerProviderNotFoundError(name)
	}

	return factory, nil
}

// List retorna los proveedores registrados, ordenados por nombre
func (r *TrackerProviderRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.factories))
	for name := range r.factories {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// CreateClient crea un cliente del proveedor indicado después de validar su configuración.
func (r *TrackerProviderRegistry) CreateClient(ctx context.Context, name string, cfg config.TrackerProviderConfig) (ports.IssueTracker, error) {
	factory, err := r.Get(name)
	if err != nil {
		return nil, appErrors.ErrTrackerNotSupported.WithError(err).WithContext("tracker", name).
			WithSuggestion("Supported trackers: " + strings.Join(r.List(), ", "))
	}

	if err := factory.ValidateConfig(cfg); err != nil {
		return nil, appErrors.ErrConfigInvalid.WithError(err).WithContext("tracker", name)
	}

	return factory.CreateClient(ctx, cfg)
}

var _ ports.TrackerFactory = (*Resolver)(nil)

// Resolver hands out a new tracker client for every TrackerFor call, using the
// tracker configured for the repository.
type Resolver struct {
	registry *TrackerProviderRegistry
	source   TrackerConfigSource
}

func NewResolver(registry *TrackerProviderRegistry, source TrackerConfigSource) *Resolver {
	return &Resolver{registry: registry, source: source}
}

func (r *Resolver) TrackerFor(ctx context.Context, repository string) (ports.IssueTracker, error) {
	name, cfg, ok := r.source.TrackerConfig(repository)
	if name == "" {
		return nil, appErrors.ErrTrackerNotConfigured.WithContext("repository", repository)
	}
	if !ok {
		return nil, appErrors.ErrTrackerNotConfigured.
			WithError(domainErrors.NewConfigError("tracker_providers."+name, "no settings for tracker", nil)).
			WithContext("repository", repository)
	}
	return r.registry.CreateClient(ctx, name, cfg)
}
