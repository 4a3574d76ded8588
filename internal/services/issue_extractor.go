package services

import "regexp"

// ExtractIssueIDs returns every reference matched by pattern, in order of
// appearance. Duplicates are kept. When the pattern has capture groups the
// first non-empty group is the reference, otherwise the whole match.
// A nil pattern yields no references.
func ExtractIssueIDs(message string, pattern *regexp.Regexp) []string {
	if pattern == nil {
		return nil
	}

	matches := pattern.FindAllStringSubmatch(message, -1)
	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		id := match[0]
		for _, group := range match[1:] {
			if group != "" {
				id = group
				break
			}
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// MatchesDummy reports whether message carries the exemption marker.
func MatchesDummy(message string, pattern *regexp.Regexp) bool {
	return pattern != nil && pattern.MatchString(message)
}
