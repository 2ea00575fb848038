// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/readerpulse/internal/access"
	xglog "github.com/ManuGH/readerpulse/internal/log"
	"github.com/ManuGH/readerpulse/internal/metrics"
	"github.com/ManuGH/readerpulse/internal/telemetry"
)

// Service resolves items and truncates them for a reader.
type Service struct {
	store  Store
	policy *access.Policy
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewService builds a Service. A nil policy uses access.Default().
func NewService(store Store, policy *access.Policy, logger zerolog.Logger) *Service {
	if policy == nil {
		policy = access.Default()
	}
	return &Service{
		store:  store,
		policy: policy,
		tracer: telemetry.Tracer("readerpulse/content"),
		logger: logger,
	}
}

// Serve returns the payload for id as visible to entitlement e.
func (s *Service) Serve(ctx context.Context, id string, e access.Entitlement) (Payload, error) {
	ctx, span := s.tracer.Start(ctx, "content.serve", trace.WithAttributes(attribute.String(telemetry.ContentIDKey, id)))
	defer span.End()

	if !ValidID(id) {
		span.SetStatus(codes.Error, "invalid id")
		return Payload{}, ErrNotFound
	}
	it, err := s.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "store lookup failed")
		}
		return Payload{}, err
	}

	blocks, decision := access.FilterBlocks(s.policy, it.Blocks, it.Tier, e)
	span.SetAttributes(telemetry.AccessAttributes(it.ID, string(it.Tier), string(e), decision.HasFullAccess, decision.HiddenCount)...)
	metrics.RecordAccessDecision(string(it.Tier), string(e), decision.HasFullAccess)

	logger := xglog.WithContext(ctx, s.logger)
	logger.Debug().
		Str(xglog.FieldEvent, "content.served").
		Str(xglog.FieldContentID, it.ID).
		Str(xglog.FieldTier, string(it.Tier)).
		Str(xglog.FieldEntitlement, string(e)).
		Int(xglog.FieldPreview, decision.PreviewCount).
		Int(xglog.FieldHidden, decision.HiddenCount).
		Msg("content served")

	return Payload{
		ID:            it.ID,
		Title:         it.Title,
		Path:          it.Path,
		Tier:          it.Tier,
		Blocks:        blocks,
		HasFullAccess: decision.HasFullAccess,
		PreviewCount:  decision.PreviewCount,
		HiddenCount:   decision.HiddenCount,
	}, nil
}
