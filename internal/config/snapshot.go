package config

import (
	"regexp"
	"strings"

	domainErrors "github.com/Tomas-vilte/issuegate/internal/domain/errors"
	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
)

var _ ports.PolicyProvider = (*Snapshot)(nil)

type refMatcher func(ref string) bool

type projectRules struct {
	enabled      bool
	policy       models.AssociationPolicy
	issuePattern *regexp.Regexp
	dummyPattern *regexp.Regexp
	branches     []refMatcher
	tracker      string
}

// Snapshot is an immutable, precompiled view of a Config. It is built once
// and shared read-only by concurrent validation calls.
type Snapshot struct {
	defaults  projectRules
	projects  map[string]projectRules
	providers map[string]TrackerProviderConfig
}

func NewSnapshot(cfg *Config) (*Snapshot, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	defaults, err := compileRules(projectRules{enabled: cfg.Enabled, tracker: cfg.ActiveTracker}, ProjectConfig{
		Association:       cfg.Association,
		IssuePattern:      cfg.IssuePattern,
		DummyIssuePattern: cfg.DummyIssuePattern,
		Branches:          cfg.Branches,
	})
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		defaults:  defaults,
		projects:  make(map[string]projectRules, len(cfg.Projects)),
		providers: make(map[string]TrackerProviderConfig, len(cfg.TrackerProviders)),
	}

	for name, project := range cfg.Projects {
		rules, err := compileRules(defaults, project)
		if err != nil {
			return nil, err
		}
		s.projects[name] = rules
	}

	for name, provider := range cfg.TrackerProviders {
		s.providers[name] = provider
	}

	return s, nil
}

// compileRules overlays the non-empty fields of override on base.
func compileRules(base projectRules, override ProjectConfig) (projectRules, error) {
	rules := base

	if override.Enabled != nil {
		rules.enabled = *override.Enabled
	}
	if override.Association != "" {
		policy, err := models.ParseAssociationPolicy(override.Association)
		if err != nil {
			return projectRules{}, domainErrors.NewConfigError("association", "invalid association policy", err)
		}
		rules.policy = policy
	}
	if override.IssuePattern != "" {
		re, err := regexp.Compile(override.IssuePattern)
		if err != nil {
			return projectRules{}, domainErrors.NewConfigError("issue_pattern", "invalid regular expression", err)
		}
		rules.issuePattern = re
	}
	if override.DummyIssuePattern != "" {
		re, err := regexp.Compile(override.DummyIssuePattern)
		if err != nil {
			return projectRules{}, domainErrors.NewConfigError("dummy_issue_pattern", "invalid regular expression", err)
		}
		rules.dummyPattern = re
	}
	if len(override.Branches) > 0 {
		matchers := make([]refMatcher, 0, len(override.Branches))
		for _, branch := range override.Branches {
			m, err := compileRefMatcher(branch)
			if err != nil {
				return projectRules{}, domainErrors.NewConfigError("branches", "invalid ref pattern "+branch, err)
			}
			matchers = append(matchers, m)
		}
		rules.branches = matchers
	}
	if override.Tracker != "" {
		rules.tracker = override.Tracker
	}

	return rules, nil
}

// compileRefMatcher supports an exact ref, a trailing "*" wildcard and "^regex".
// Short branch names are expanded to refs/heads/.
func compileRefMatcher(pattern string) (refMatcher, error) {
	switch {
	case strings.HasPrefix(pattern, "^"):
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		return re.MatchString, nil
	case strings.HasSuffix(pattern, "*"):
		prefix := normalizeRef(strings.TrimSuffix(pattern, "*"))
		return func(ref string) bool { return strings.HasPrefix(ref, prefix) }, nil
	default:
		exact := normalizeRef(pattern)
		return func(ref string) bool { return ref == exact }, nil
	}
}

func normalizeRef(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "refs/") {
		return ref
	}
	return "refs/heads/" + ref
}

func (s *Snapshot) rules(repository string) projectRules {
	if rules, ok := s.projects[repository]; ok {
		return rules
	}
	return s.defaults
}

func (s *Snapshot) IsEnabled(repository, ref string) bool {
	rules := s.rules(repository)
	if !rules.enabled {
		return false
	}
	if len(rules.branches) == 0 {
		return true
	}
	ref = normalizeRef(ref)
	for _, match := range rules.branches {
		if match(ref) {
			return true
		}
	}
	return false
}

func (s *Snapshot) AssociationPolicy(repository string) models.AssociationPolicy {
	return s.rules(repository).policy
}

func (s *Snapshot) IssuePattern(repository string) *regexp.Regexp {
	return s.rules(repository).issuePattern
}

func (s *Snapshot) DummyIssuePattern(repository string) *regexp.Regexp {
	return s.rules(repository).dummyPattern
}

func (s *Snapshot) TrackerName(repository string) string {
	return s.rules(repository).tracker
}

// TrackerConfig returns the provider settings of the tracker serving repository.
func (s *Snapshot) TrackerConfig(repository string) (string, TrackerProviderConfig, bool) {
	name := s.rules(repository).tracker
	if name == "" {
		return "", TrackerProviderConfig{}, false
	}
	cfg, ok := s.providers[name]
	return name, cfg, ok
}
