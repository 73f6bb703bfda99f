// Package entity defines the core business entities for the domain layer.
package entity

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MatchType represents how a rule pattern is applied to a merchant string.
type MatchType string

const (
	MatchTypeContains MatchType = "CONTAINS"
	MatchTypeRegex    MatchType = "REGEX"
)

// Rule represents an auto-categorization rule owned by the record store.
// The client keeps a copy for display and for local match previews; the
// store remains authoritative for rule application on ingest.
type Rule struct {
	ID           uuid.UUID
	Pattern      string
	MatchType    MatchType
	CategoryID   uuid.UUID
	CategoryName string
	Priority     int // Lower priority values are checked first
	Enabled      bool
}

// NormalizeMerchant normalizes a merchant string for reliable rule matching:
// lowercase, trimmed, commas and periods stripped. Must stay in sync with the
// record store's normalization or previews will disagree with ingest.
func NormalizeMerchant(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", "")
	return strings.ReplaceAll(s, ".", "")
}

// Matches reports whether the rule matches an already-normalized merchant.
// Disabled rules and blank patterns never match. A malformed regex pattern
// is treated as a non-match rather than an error.
func (r *Rule) Matches(merchantNorm string) bool {
	if !r.Enabled || strings.TrimSpace(r.Pattern) == "" {
		return false
	}

	switch r.MatchType {
	case MatchTypeContains:
		return strings.Contains(merchantNorm, strings.ToLower(r.Pattern))
	case MatchTypeRegex:
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return false
		}
		return re.MatchString(merchantNorm)
	default:
		return false
	}
}

// FirstMatch returns the first enabled rule matching the merchant, checking
// rules in ascending priority order. Returns nil when nothing matches.
func FirstMatch(rules []*Rule, merchant string) *Rule {
	norm := NormalizeMerchant(merchant)

	best := -1
	for i, r := range rules {
		if !r.Matches(norm) {
			continue
		}
		if best == -1 || r.Priority < rules[best].Priority {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	return rules[best]
}
