package settings

import "context"

// AdvanceRouting resolves the source and target statuses of the scheduled
// order advancement sweep. The edge is runtime-configurable: operators point
// the sweep at a different status pair by updating two settings rows, no
// redeploy needed.
type AdvanceRouting struct {
	service *Service
}

// NewAdvanceRouting creates a routing reader over the settings service.
func NewAdvanceRouting(service *Service) *AdvanceRouting {
	return &AdvanceRouting{service: service}
}

// Source returns the status code the sweep moves orders from.
func (r *AdvanceRouting) Source(ctx context.Context) string {
	return r.service.GetString(ctx, KeyAdvanceSourceStatus, DefaultAdvanceSourceStatus)
}

// Target returns the status code the sweep moves orders to.
func (r *AdvanceRouting) Target(ctx context.Context) string {
	return r.service.GetString(ctx, KeyAdvanceTargetStatus, DefaultAdvanceTargetStatus)
}
