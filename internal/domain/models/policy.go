package models

import (
	"fmt"
	"strings"
)

// AssociationPolicy defines how strictly commits must reference an issue.
type AssociationPolicy string

const (
	PolicyMandatory AssociationPolicy = "MANDATORY"
	PolicySuggested AssociationPolicy = "SUGGESTED"
	PolicyOptional  AssociationPolicy = "OPTIONAL"
)

// ParseAssociationPolicy converts a configuration value into a policy.
// Matching is case-insensitive.
func ParseAssociationPolicy(value string) (AssociationPolicy, error) {
	switch AssociationPolicy(strings.ToUpper(strings.TrimSpace(value))) {
	case PolicyMandatory:
		return PolicyMandatory, nil
	case PolicySuggested:
		return PolicySuggested, nil
	case PolicyOptional:
		return PolicyOptional, nil
	default:
		return "", fmt.Errorf("unknown association policy %q (valid: MANDATORY, SUGGESTED, OPTIONAL)", value)
	}
}

func (p AssociationPolicy) String() string {
	return string(p)
}
