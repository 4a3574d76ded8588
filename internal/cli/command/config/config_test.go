package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tomas-vilte/issuegate/internal/config"
	appErrors "github.com/Tomas-vilte/issuegate/internal/errors"
	"github.com/Tomas-vilte/issuegate/internal/i18n"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func setupConfigTest(t *testing.T) (*config.Config, *i18n.Translations, string) {
	t.Helper()
	color.NoColor = true
	t.Setenv(config.EnvJiraAPIKey, "")
	t.Setenv(config.EnvGitHubToken, "")

	tmpConfigPath := filepath.Join(t.TempDir(), "config.json")
	cfg, err := config.LoadConfig(tmpConfigPath)
	require.NoError(t, err)

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	return cfg, translations, tmpConfigPath
}

func runConfigCommand(t *testing.T, cfg *config.Config, translations *i18n.Translations, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.Command{
		Name:     "issuegate",
		Writer:   &out,
		Commands: []*cli.Command{NewConfigCommandFactory().CreateCommand(translations, cfg)},
	}
	err := app.Run(context.Background(), append([]string{"issuegate", "config"}, args...))
	return out.String(), err
}

func TestInitCommand(t *testing.T) {
	t.Run("configura jira con patrones por defecto", func(t *testing.T) {
		cfg, translations, path := setupConfigTest(t)

		out, err := runConfigCommand(t, cfg, translations, "init",
			"--association", "mandatory",
			"--tracker", "jira",
			"--base-url", "https://acme.atlassian.net",
			"--email", "ci@acme.io",
			"--api-key", "jira-secret",
		)

		require.NoError(t, err)
		assert.Contains(t, out, "Configuration saved to "+path)

		saved, err := config.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "MANDATORY", saved.Association)
		assert.Equal(t, config.TrackerJira, saved.ActiveTracker)
		assert.Equal(t, `([A-Z][A-Z0-9]+-\d+)`, saved.IssuePattern)
		assert.Equal(t, `(?i)\bNO[-_ ]ISSUE\b`, saved.DummyIssuePattern)
		assert.Equal(t, "https://acme.atlassian.net", saved.TrackerProviders[config.TrackerJira].BaseURL)
	})

	t.Run("configura github conservando un patrón explícito", func(t *testing.T) {
		cfg, translations, path := setupConfigTest(t)

		_, err := runConfigCommand(t, cfg, translations, "init",
			"--association", "SUGGESTED",
			"--tracker", "github",
			"--owner", "acme",
			"--repo-name", "payments",
			"--issue-pattern", `#(\d+)`,
		)

		require.NoError(t, err)
		saved, err := config.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, `#(\d+)`, saved.IssuePattern)
		assert.Equal(t, "acme", saved.TrackerProviders[config.TrackerGitHub].Owner)
		assert.Equal(t, "payments", saved.TrackerProviders[config.TrackerGitHub].Repo)
	})

	t.Run("rechaza una política desconocida", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		_, err := runConfigCommand(t, cfg, translations, "init", "--association", "STRICT")

		assert.ErrorIs(t, err, appErrors.ErrConfigInvalid)
	})

	t.Run("rechaza un tracker no soportado", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		_, err := runConfigCommand(t, cfg, translations, "init", "--tracker", "linear")

		assert.ErrorIs(t, err, appErrors.ErrTrackerNotSupported)
	})

	t.Run("no guarda configuración incompleta", func(t *testing.T) {
		cfg, translations, path := setupConfigTest(t)
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		_, err = runConfigCommand(t, cfg, translations, "init", "--tracker", "jira", "--base-url", "https://acme.atlassian.net")

		assert.ErrorIs(t, err, appErrors.ErrConfigInvalid)
		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestShowCommand(t *testing.T) {
	cfg, translations, _ := setupConfigTest(t)
	cfg.ActiveTracker = config.TrackerJira
	cfg.TrackerProviders = map[string]config.TrackerProviderConfig{
		config.TrackerJira: {BaseURL: "https://acme.atlassian.net", Email: "ci@acme.io", APIKey: "super-secret-key"},
	}

	out, err := runConfigCommand(t, cfg, translations, "show")

	require.NoError(t, err)
	assert.NotContains(t, out, "super-secret-key")

	var shown config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "****-key", shown.TrackerProviders[config.TrackerJira].APIKey)
	assert.Equal(t, "OPTIONAL", shown.Association)
}
