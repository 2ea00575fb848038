// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package access

// Decision is the outcome of a preview computation. HiddenCount > 0 is a hint
// for an upsell affordance only; the hidden blocks are never part of a payload.
type Decision struct {
	HasFullAccess bool `json:"hasFullAccess"`
	PreviewCount  int  `json:"previewCount"`
	HiddenCount   int  `json:"hiddenCount"`
}

// ComputeAccess decides how many of totalBlocks leading blocks are exposed.
func (p *Policy) ComputeAccess(t Tier, totalBlocks int, e Entitlement) Decision {
	if totalBlocks < 0 {
		totalBlocks = 0
	}
	if p.CanAccess(e, t) {
		return Decision{HasFullAccess: true, PreviewCount: totalBlocks}
	}

	preview := totalBlocks
	if limit := p.PreviewLimit(t); limit != Unlimited && limit < totalBlocks {
		preview = limit
	}
	return Decision{PreviewCount: preview, HiddenCount: totalBlocks - preview}
}

// FilterBlocks returns only the leading blocks the visitor may receive, in a
// freshly allocated slice so the withheld tail is not reachable through it.
func FilterBlocks[T any](p *Policy, blocks []T, t Tier, e Entitlement) ([]T, Decision) {
	d := p.ComputeAccess(t, len(blocks), e)
	out := make([]T, d.PreviewCount)
	copy(out, blocks[:d.PreviewCount])
	return out, d
}

// ComputeAccess evaluates the built-in policy.
func ComputeAccess(t Tier, totalBlocks int, e Entitlement) Decision {
	return defaultPolicy.ComputeAccess(t, totalBlocks, e)
}
