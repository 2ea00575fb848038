// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package access

import "strings"

// Entitlement is a visitor's paid-access level. Levels are ordered by inclusion.
type Entitlement string

const (
	EntitlementFree       Entitlement = "free"
	EntitlementPremium    Entitlement = "premium"
	EntitlementSubscriber Entitlement = "subscriber"
)

// Entitlements lists every known level from least to most access.
var Entitlements = []Entitlement{EntitlementFree, EntitlementPremium, EntitlementSubscriber}

// Tier is the access class a content item requires.
type Tier string

const (
	TierFree           Tier = "free"
	TierPremium        Tier = "premium"
	TierSubscriberOnly Tier = "subscriber_only"
)

// Tiers lists every known tier from least to most restrictive.
var Tiers = []Tier{TierFree, TierPremium, TierSubscriberOnly}

// Known reports whether e is a recognised entitlement level.
func (e Entitlement) Known() bool {
	switch e {
	case EntitlementFree, EntitlementPremium, EntitlementSubscriber:
		return true
	}
	return false
}

// Known reports whether t is a recognised tier.
func (t Tier) Known() bool {
	switch t {
	case TierFree, TierPremium, TierSubscriberOnly:
		return true
	}
	return false
}

// ParseEntitlement normalises raw input. Anything unrecognised is free.
func ParseEntitlement(raw string) Entitlement {
	e := Entitlement(strings.ToLower(strings.TrimSpace(raw)))
	if !e.Known() {
		return EntitlementFree
	}
	return e
}

// ParseTier normalises raw input and reports whether it names a known tier.
// The returned value is kept as given when unknown so callers can log it;
// the policy treats unknown tiers as locked.
func ParseTier(raw string) (Tier, bool) {
	t := Tier(strings.ToLower(strings.TrimSpace(raw)))
	return t, t.Known()
}
