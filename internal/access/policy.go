// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package access

import (
	"errors"
	"fmt"
)

// Unlimited marks a tier whose preview is not capped.
const Unlimited = -1

// DefaultPreviewLimit applies to tiers missing from the preview table.
const DefaultPreviewLimit = 3

// ErrInvalidPolicy is returned when policy tables are inconsistent.
var ErrInvalidPolicy = errors.New("invalid access policy")

// Single source of truth for the built-in policy.
var defaultMatrix = map[Entitlement][]Tier{
	EntitlementFree:       {TierFree},
	EntitlementPremium:    {TierFree, TierPremium},
	EntitlementSubscriber: {TierFree, TierPremium, TierSubscriberOnly},
}

var defaultPreviewLimits = map[Tier]int{
	TierFree:           Unlimited,
	TierPremium:        3,
	TierSubscriberOnly: 2,
}

// Policy holds the access matrix and preview limits. It is immutable after
// construction and safe for concurrent use.
type Policy struct {
	access map[Entitlement]map[Tier]struct{}
	limits map[Tier]int
}

var defaultPolicy = mustPolicy(defaultMatrix, defaultPreviewLimits)

// Default returns the built-in policy.
func Default() *Policy {
	return defaultPolicy
}

// New builds a policy from the given tables. Every entitlement must be present,
// tier sets must grow with the entitlement order (free ⊆ premium ⊆ subscriber),
// and limits must be non-negative or Unlimited.
func New(matrix map[Entitlement][]Tier, limits map[Tier]int) (*Policy, error) {
	p := &Policy{
		access: make(map[Entitlement]map[Tier]struct{}, len(matrix)),
		limits: make(map[Tier]int, len(limits)),
	}

	for e, tiers := range matrix {
		if !e.Known() {
			return nil, fmt.Errorf("%w: unknown entitlement %q", ErrInvalidPolicy, e)
		}
		set := make(map[Tier]struct{}, len(tiers))
		for _, t := range tiers {
			if !t.Known() {
				return nil, fmt.Errorf("%w: unknown tier %q for entitlement %q", ErrInvalidPolicy, t, e)
			}
			set[t] = struct{}{}
		}
		p.access[e] = set
	}

	for i, e := range Entitlements {
		if _, ok := p.access[e]; !ok {
			return nil, fmt.Errorf("%w: missing entitlement %q", ErrInvalidPolicy, e)
		}
		if i == 0 {
			continue
		}
		lower := Entitlements[i-1]
		for t := range p.access[lower] {
			if _, ok := p.access[e][t]; !ok {
				return nil, fmt.Errorf("%w: %q grants %q but %q does not", ErrInvalidPolicy, lower, t, e)
			}
		}
	}

	for t, limit := range limits {
		if !t.Known() {
			return nil, fmt.Errorf("%w: preview limit for unknown tier %q", ErrInvalidPolicy, t)
		}
		if limit < 0 && limit != Unlimited {
			return nil, fmt.Errorf("%w: negative preview limit %d for tier %q", ErrInvalidPolicy, limit, t)
		}
		p.limits[t] = limit
	}

	return p, nil
}

// FromStrings builds a policy from configuration-shaped tables. A non-empty
// matrix replaces the built-in one; preview limits are overlaid per tier.
func FromStrings(matrix map[string][]string, limits map[string]int) (*Policy, error) {
	m := defaultMatrix
	if len(matrix) > 0 {
		m = make(map[Entitlement][]Tier, len(matrix))
		for rawE, rawTiers := range matrix {
			tiers := make([]Tier, 0, len(rawTiers))
			for _, rawT := range rawTiers {
				tiers = append(tiers, Tier(rawT))
			}
			m[Entitlement(rawE)] = tiers
		}
	}

	l := make(map[Tier]int, len(defaultPreviewLimits)+len(limits))
	for t, limit := range defaultPreviewLimits {
		l[t] = limit
	}
	for rawT, limit := range limits {
		l[Tier(rawT)] = limit
	}

	return New(m, l)
}

func mustPolicy(matrix map[Entitlement][]Tier, limits map[Tier]int) *Policy {
	p, err := New(matrix, limits)
	if err != nil {
		panic(err)
	}
	return p
}

// CanAccess reports whether entitlement e may fully view content of tier t.
// Unknown entitlements are treated as free; unknown tiers are never granted.
func (p *Policy) CanAccess(e Entitlement, t Tier) bool {
	if !e.Known() {
		e = EntitlementFree
	}
	_, ok := p.access[e][t]
	return ok
}

// PreviewLimit returns the leading-block allowance for tier t, or Unlimited.
func (p *Policy) PreviewLimit(t Tier) int {
	if limit, ok := p.limits[t]; ok {
		return limit
	}
	return DefaultPreviewLimit
}

// CanAccess evaluates the built-in policy.
func CanAccess(e Entitlement, t Tier) bool {
	return defaultPolicy.CanAccess(e, t)
}
