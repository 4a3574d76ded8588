package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	domainErrors "github.com/Tomas-vilte/issuegate/internal/domain/errors"
	"github.com/Tomas-vilte/issuegate/internal/domain/models"
)

const (
	TrackerJira   = "jira"
	TrackerGitHub = "github"
)

const (
	EnvJiraAPIKey  = "ISSUEGATE_JIRA_API_KEY"
	EnvGitHubToken = "ISSUEGATE_GITHUB_TOKEN"
)

type (
	Config struct {
		Language          string   `json:"language"`
		Enabled           bool     `json:"enabled"`
		Association       string   `json:"association"`
		IssuePattern      string   `json:"issue_pattern,omitempty"`
		DummyIssuePattern string   `json:"dummy_issue_pattern,omitempty"`
		Branches          []string `json:"branches,omitempty"`

		ActiveTracker    string                           `json:"active_tracker,omitempty"` // "jira", "github"
		TrackerProviders map[string]TrackerProviderConfig `json:"tracker_providers,omitempty"`

		Projects map[string]ProjectConfig `json:"projects,omitempty"`
		Server   ServerConfig             `json:"server"`

		PathFile string `json:"-"`
	}

	TrackerProviderConfig struct {
		BaseURL string `json:"base_url,omitempty"`
		APIKey  string `json:"api_key,omitempty"`
		Email   string `json:"email,omitempty"`
		Token   string `json:"token,omitempty"`
		Owner   string `json:"owner,omitempty"`
		Repo    string `json:"repo,omitempty"`
	}

	// ProjectConfig overrides the global settings for one repository.
	// Empty fields inherit the global value.
	ProjectConfig struct {
		Enabled           *bool    `json:"enabled,omitempty"`
		Association       string   `json:"association,omitempty"`
		IssuePattern      string   `json:"issue_pattern,omitempty"`
		DummyIssuePattern string   `json:"dummy_issue_pattern,omitempty"`
		Branches          []string `json:"branches,omitempty"`
		Tracker           string   `json:"tracker,omitempty"`
	}

	ServerConfig struct {
		Address string `json:"address"`
	}
)

const (
	defaultLang          = LangEN
	defaultAssociation   = string(models.PolicyOptional)
	defaultServerAddress = ":8089"
)

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() *Config {
	return &Config{
		Language:    defaultLang,
		Enabled:     true,
		Association: defaultAssociation,
		Server:      ServerConfig{Address: defaultServerAddress},
	}
}

// LoadConfig reads the configuration file. A path ending in .json is used as-is;
// otherwise it is treated as a home directory holding .issuegate/config.json.
// A missing file is created with defaults.
func LoadConfig(path string) (*Config, error) {
	configPath := ResolvePath(path)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg, err := createDefaultConfig(configPath)
		if err != nil {
			return nil, err
		}
		applyEnvOverrides(cfg)
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking configuration file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error decoding configuration file: %w", err)
	}
	config.PathFile = configPath

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("loaded configuration is invalid: %w", err)
	}

	return config, nil
}

// ResolvePath maps the --config argument to the configuration file path.
func ResolvePath(path string) string {
	if filepath.Ext(path) == ".json" {
		return path
	}
	return filepath.Join(path, ".issuegate", "config.json")
}

func createDefaultConfig(path string) (*Config, error) {
	config := DefaultConfig()
	config.PathFile = path

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating configuration directory: %w", err)
	}

	if err := writeConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration to save is invalid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("configuration file path is not defined")
	}

	if err := os.MkdirAll(filepath.Dir(config.PathFile), 0755); err != nil {
		return fmt.Errorf("error creating configuration directory: %w", err)
	}

	return writeConfig(config)
}

func writeConfig(config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}

	// Tokens live in this file.
	if err := os.WriteFile(config.PathFile, data, 0600); err != nil {
		return fmt.Errorf("error saving configuration: %w", err)
	}

	return nil
}

func applyEnvOverrides(config *Config) {
	overrides := map[string]func(*TrackerProviderConfig, string){
		EnvJiraAPIKey:  func(c *TrackerProviderConfig, v string) { c.APIKey = v },
		EnvGitHubToken: func(c *TrackerProviderConfig, v string) { c.Token = v },
	}
	providers := map[string]string{
		EnvJiraAPIKey:  TrackerJira,
		EnvGitHubToken: TrackerGitHub,
	}

	for env, set := range overrides {
		value, ok := os.LookupEnv(env)
		if !ok || value == "" {
			continue
		}
		if config.TrackerProviders == nil {
			config.TrackerProviders = make(map[string]TrackerProviderConfig)
		}
		name := providers[env]
		providerCfg := config.TrackerProviders[name]
		set(&providerCfg, value)
		config.TrackerProviders[name] = providerCfg
	}
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return domainErrors.NewConfigError("language", "must not be empty", nil)
	}

	if _, err := models.ParseAssociationPolicy(config.Association); err != nil {
		return domainErrors.NewConfigError("association", "invalid association policy", err)
	}

	if err := validatePatterns("", config.IssuePattern, config.DummyIssuePattern, config.Branches); err != nil {
		return err
	}

	if config.ActiveTracker != "" {
		if err := validateTracker(config, config.ActiveTracker); err != nil {
			return err
		}
	}

	for name, project := range config.Projects {
		if project.Association != "" {
			if _, err := models.ParseAssociationPolicy(project.Association); err != nil {
				return domainErrors.NewConfigError("projects."+name+".association", "invalid association policy", err)
			}
		}
		if err := validatePatterns("projects."+name+".", project.IssuePattern, project.DummyIssuePattern, project.Branches); err != nil {
			return err
		}
		if project.Tracker != "" {
			if err := validateTracker(config, project.Tracker); err != nil {
				return err
			}
		}
	}

	return nil
}

func validatePatterns(prefix, issuePattern, dummyPattern string, branches []string) error {
	if issuePattern != "" {
		if _, err := regexp.Compile(issuePattern); err != nil {
			return domainErrors.NewConfigError(prefix+"issue_pattern", "invalid regular expression", err)
		}
	}
	if dummyPattern != "" {
		if _, err := regexp.Compile(dummyPattern); err != nil {
			return domainErrors.NewConfigError(prefix+"dummy_issue_pattern", "invalid regular expression", err)
		}
	}
	for _, branch := range branches {
		if _, err := compileRefMatcher(branch); err != nil {
			return domainErrors.NewConfigError(prefix+"branches", "invalid ref pattern "+branch, err)
		}
	}
	return nil
}

func validateTracker(config *Config, name string) error {
	providerCfg := config.TrackerProviders[name]
	field := "tracker_providers." + name

	switch name {
	case TrackerJira:
		if providerCfg.BaseURL == "" {
			return domainErrors.NewConfigError(field+".base_url", "jira base URL is not configured", nil)
		}
		if providerCfg.Email == "" {
			return domainErrors.NewConfigError(field+".email", "jira email is not configured", nil)
		}
		if providerCfg.APIKey == "" {
			return domainErrors.NewConfigError(field+".api_key", "jira API key is not configured", nil)
		}
	case TrackerGitHub:
		if providerCfg.Owner == "" || providerCfg.Repo == "" {
			return domainErrors.NewConfigError(field, "github owner and repo are required", nil)
		}
	default:
		return domainErrors.NewConfigError("active_tracker", fmt.Sprintf("unsupported issue tracker: %s", name), nil)
	}
	return nil
}

// Masked returns a copy safe to print: secrets are replaced.
func (c *Config) Masked() Config {
	masked := *c
	if c.TrackerProviders != nil {
		masked.TrackerProviders = make(map[string]TrackerProviderConfig, len(c.TrackerProviders))
		for name, p := range c.TrackerProviders {
			p.APIKey = maskSecret(p.APIKey)
			p.Token = maskSecret(p.Token)
			masked.TrackerProviders[name] = p
		}
	}
	return masked
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
