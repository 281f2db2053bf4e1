package core

import (
	"strings"
)

// Policy selects which numbers are eligible for a slot.
type Policy string

const (
	PolicyTop    Policy = "top"
	PolicyBottom Policy = "bottom"
	PolicyRandom Policy = "random"
)

// Policies lists the known policies in processing priority order.
var Policies = []Policy{PolicyTop, PolicyBottom, PolicyRandom}

// ParsePolicy converts a user-supplied token to a Policy.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParsePolicy(s string) (Policy, bool) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyTop:
		return PolicyTop, true
	case PolicyBottom:
		return PolicyBottom, true
	case PolicyRandom:
		return PolicyRandom, true
	default:
		return "", false
	}
}

// SlotPolicies maps a slot number (1..ComboSize) to its selection policy.
type SlotPolicies map[int]Policy

// Strings returns the policies for slots 1..n as plain tokens; missing slots are empty.
func (sp SlotPolicies) Strings(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(sp[i+1])
	}
	return out
}
