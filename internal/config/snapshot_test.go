package config

import (
	"testing"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func snapshotConfig() *Config {
	cfg := DefaultConfig()
	cfg.Association = "MANDATORY"
	cfg.IssuePattern = `([A-Z]+-\d+)`
	cfg.DummyIssuePattern = `(?i)no-issue`
	cfg.Branches = []string{"refs/heads/main", "release/*"}
	cfg.ActiveTracker = TrackerJira
	cfg.TrackerProviders = map[string]TrackerProviderConfig{
		TrackerJira:   {BaseURL: "https://jira.example.com", Email: "bot@example.com", APIKey: "k"},
		TrackerGitHub: {Owner: "acme", Repo: "docs"},
	}
	cfg.Projects = map[string]ProjectConfig{
		"docs": {
			Association:  "SUGGESTED",
			IssuePattern: `#(\d+)`,
			Branches:     []string{"^refs/heads/(main|develop)$"},
			Tracker:      TrackerGitHub,
		},
		"sandbox": {Enabled: boolPtr(false)},
	}
	return cfg
}

func TestSnapshot_Defaults(t *testing.T) {
	s, err := NewSnapshot(snapshotConfig())
	require.NoError(t, err)

	assert.Equal(t, models.PolicyMandatory, s.AssociationPolicy("payments"))
	assert.Equal(t, `([A-Z]+-\d+)`, s.IssuePattern("payments").String())
	assert.Equal(t, `(?i)no-issue`, s.DummyIssuePattern("payments").String())
	assert.Equal(t, TrackerJira, s.TrackerName("payments"))

	name, providerCfg, ok := s.TrackerConfig("payments")
	assert.True(t, ok)
	assert.Equal(t, TrackerJira, name)
	assert.Equal(t, "https://jira.example.com", providerCfg.BaseURL)
}

func TestSnapshot_ProjectOverrides(t *testing.T) {
	s, err := NewSnapshot(snapshotConfig())
	require.NoError(t, err)

	assert.Equal(t, models.PolicySuggested, s.AssociationPolicy("docs"))
	assert.Equal(t, `#(\d+)`, s.IssuePattern("docs").String())
	assert.Equal(t, `(?i)no-issue`, s.DummyIssuePattern("docs").String(), "unset fields inherit the global value")
	assert.Equal(t, TrackerGitHub, s.TrackerName("docs"))
	assert.Equal(t, models.PolicyMandatory, s.AssociationPolicy("sandbox"))
}

func TestSnapshot_IsEnabled(t *testing.T) {
	s, err := NewSnapshot(snapshotConfig())
	require.NoError(t, err)

	tests := []struct {
		repository string
		ref        string
		want       bool
	}{
		{"payments", "refs/heads/main", true},
		{"payments", "main", true},
		{"payments", "refs/heads/release/1.2", true},
		{"payments", "release/1.2", true},
		{"payments", "refs/heads/feature/x", false},
		{"docs", "refs/heads/develop", true},
		{"docs", "refs/heads/release/1.2", false},
		{"sandbox", "refs/heads/main", false},
	}

	for _, tt := range tests {
		t.Run(tt.repository+" "+tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsEnabled(tt.repository, tt.ref))
		})
	}
}

func TestSnapshot_NoBranchesEnablesEverything(t *testing.T) {
	cfg := DefaultConfig()
	s, err := NewSnapshot(cfg)
	require.NoError(t, err)

	assert.True(t, s.IsEnabled("any", "refs/heads/whatever"))
	assert.Nil(t, s.IssuePattern("any"))
	assert.Nil(t, s.DummyIssuePattern("any"))

	_, _, ok := s.TrackerConfig("any")
	assert.False(t, ok)
}

func TestSnapshot_IsolatedFromLaterMutation(t *testing.T) {
	cfg := snapshotConfig()
	s, err := NewSnapshot(cfg)
	require.NoError(t, err)

	cfg.Association = "OPTIONAL"
	cfg.TrackerProviders[TrackerJira] = TrackerProviderConfig{BaseURL: "https://changed"}
	cfg.Projects["docs"] = ProjectConfig{Association: "OPTIONAL"}

	assert.Equal(t, models.PolicyMandatory, s.AssociationPolicy("payments"))
	assert.Equal(t, models.PolicySuggested, s.AssociationPolicy("docs"))
	_, providerCfg, _ := s.TrackerConfig("payments")
	assert.Equal(t, "https://jira.example.com", providerCfg.BaseURL)
}

func TestNewSnapshot_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IssuePattern = "(["

	_, err := NewSnapshot(cfg)
	assert.Error(t, err)
}
