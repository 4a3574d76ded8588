package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/Tomas-vilte/issuegate/internal/config"
	domainErrors "github.com/Tomas-vilte/issuegate/internal/domain/errors"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
	appErrors "github.com/Tomas-vilte/issuegate/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTracker struct {
	cfg config.TrackerProviderConfig
}

func (s *stubTracker) Exists(context.Context, string) (bool, error) {
	return true, nil
}

// MockTrackerProviderFactory for testing
type MockTrackerProviderFactory struct {
	name        string
	validateErr error
	created     int
}

func (m *MockTrackerProviderFactory) CreateClient(_ context.Context, cfg config.TrackerProviderConfig) (ports.IssueTracker, error) {
	m.created++
	return &stubTracker{cfg: cfg}, nil
}

func (m *MockTrackerProviderFactory) ValidateConfig(config.TrackerProviderConfig) error {
	return m.validateErr
}

func (m *MockTrackerProviderFactory) Name() string {
	return m.name
}

type staticSource map[string]struct {
	name string
	cfg  config.TrackerProviderConfig
	ok   bool
}

func (s staticSource) TrackerConfig(repository string) (string, config.TrackerProviderConfig, bool) {
	entry := s[repository]
	return entry.name, entry.cfg, entry.ok
}

func TestRegister(t *testing.T) {
	registry := NewTrackerProviderRegistry()
	factory := &MockTrackerProviderFactory{name: "mock"}

	require.NoError(t, registry.Register("mock", factory))
	assert.Error(t, registry.Register("mock", factory), "should not allow registering the same provider twice")
	assert.Equal(t, []string{"mock"}, registry.List())
}

func TestGet(t *testing.T) {
	registry := NewTrackerProviderRegistry()
	_ = registry.Register("mock", &MockTrackerProviderFactory{name: "mock"})

	factory, err := registry.Get("mock")
	require.NoError(t, err)
	assert.Equal(t, "mock", factory.Name())

	_, err = registry.Get("linear")
	var notFound *domainErrors.TrackerProviderNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "linear", notFound.Provider)
}

func TestList(t *testing.T) {
	registry := NewTrackerProviderRegistry()
	assert.Empty(t, registry.List())

	_ = registry.Register("jira", &MockTrackerProviderFactory{name: "jira"})
	_ = registry.Register("github", &MockTrackerProviderFactory{name: "github"})

	assert.Equal(t, []string{"github", "jira"}, registry.List())
}

func TestCreateClient(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		registry := NewTrackerProviderRegistry()
		_ = registry.Register("jira", &MockTrackerProviderFactory{name: "jira"})
		_ = registry.Register("github", &MockTrackerProviderFactory{name: "github"})

		_, err := registry.CreateClient(context.Background(), "linear", config.TrackerProviderConfig{})

		assert.ErrorIs(t, err, appErrors.ErrTrackerNotSupported)
		var appErr *appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Supported trackers: github, jira", appErr.Suggestion)
	})

	t.Run("invalid config", func(t *testing.T) {
		registry := NewTrackerProviderRegistry()
		_ = registry.Register("jira", &MockTrackerProviderFactory{name: "jira", validateErr: errors.New("jira API key is required")})

		_, err := registry.CreateClient(context.Background(), "jira", config.TrackerProviderConfig{})

		assert.ErrorIs(t, err, appErrors.ErrConfigInvalid)
		assert.Contains(t, err.Error(), "jira API key is required")
	})
}

func TestResolver_TrackerFor(t *testing.T) {
	jiraCfg := config.TrackerProviderConfig{BaseURL: "https://acme.atlassian.net", APIKey: "k", Email: "e@acme.io"}
	source := staticSource{
		"payments": {name: "jira", cfg: jiraCfg, ok: true},
		"docs":     {},
		"legacy":   {name: "jira"},
	}

	t.Run("new client per call", func(t *testing.T) {
		registry := NewTrackerProviderRegistry()
		factory := &MockTrackerProviderFactory{name: "jira"}
		_ = registry.Register("jira", factory)
		resolver := NewResolver(registry, source)

		first, err := resolver.TrackerFor(context.Background(), "payments")
		require.NoError(t, err)
		second, err := resolver.TrackerFor(context.Background(), "payments")
		require.NoError(t, err)

		assert.NotSame(t, first, second)
		assert.Equal(t, 2, factory.created)
		assert.Equal(t, jiraCfg, first.(*stubTracker).cfg)
	})

	t.Run("no tracker configured", func(t *testing.T) {
		resolver := NewResolver(NewTrackerProviderRegistry(), source)

		_, err := resolver.TrackerFor(context.Background(), "docs")

		assert.ErrorIs(t, err, appErrors.ErrTrackerNotConfigured)
	})

	t.Run("tracker without settings", func(t *testing.T) {
		resolver := NewResolver(NewTrackerProviderRegistry(), source)

		_, err := resolver.TrackerFor(context.Background(), "legacy")

		assert.ErrorIs(t, err, appErrors.ErrTrackerNotConfigured)
		var cfgErr *domainErrors.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})
}

func TestResolver_WithSnapshot(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ActiveTracker = config.TrackerJira
	cfg.TrackerProviders = map[string]config.TrackerProviderConfig{
		config.TrackerJira: {BaseURL: "https://acme.atlassian.net", APIKey: "k", Email: "e@acme.io"},
	}
	snapshot, err := config.NewSnapshot(cfg)
	require.NoError(t, err)

	registry := NewTrackerProviderRegistry()
	_ = registry.Register(config.TrackerJira, &MockTrackerProviderFactory{name: config.TrackerJira})

	tracker, err := NewResolver(registry, snapshot).TrackerFor(context.Background(), "any-repo")

	require.NoError(t, err)
	assert.NotNil(t, tracker)
}
