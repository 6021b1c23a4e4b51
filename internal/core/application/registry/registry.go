// Package registry provides the cached, read-mostly view of the workflow
// catalog. Every status and transition lookup in the hot path goes through it;
// admin mutations invalidate the affected entries before the mutation returns,
// so a caller never observes its own write as stale.
package registry

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

const (
	statusCacheSize   = 128
	edgeCacheSize     = 512
	outboundCacheSize = 128
	listCacheSize     = 4

	activeListKey = "active"
)

// StatusRegistry caches the status catalog and its transitions on top of the
// repositories. Lookups are safe for concurrent use; the underlying caches
// lock internally.
//
// Missing edges are cached too: "no transition between these two" is as
// frequent an answer in workflow checks as a hit, and each one would
// otherwise cost a round trip.
type StatusRegistry struct {
	statuses    ports.StatusRepository
	transitions ports.TransitionRepository

	byCode   *lru.Cache[string, *status.Status]
	edges    *lru.Cache[string, *status.Transition]
	outbound *lru.Cache[string, []*status.Transition]
	lists    *lru.Cache[string, []*status.Status]
}

// NewStatusRegistry creates a StatusRegistry over the given repositories.
func NewStatusRegistry(
	statuses ports.StatusRepository,
	transitions ports.TransitionRepository,
) (*StatusRegistry, error) {
	if statuses == nil {
		return nil, errs.NewValueIsRequiredError("statuses")
	}
	if transitions == nil {
		return nil, errs.NewValueIsRequiredError("transitions")
	}

	byCode, err := lru.New[string, *status.Status](statusCacheSize)
	if err != nil {
		return nil, err
	}
	edges, err := lru.New[string, *status.Transition](edgeCacheSize)
	if err != nil {
		return nil, err
	}
	outbound, err := lru.New[string, []*status.Transition](outboundCacheSize)
	if err != nil {
		return nil, err
	}
	lists, err := lru.New[string, []*status.Status](listCacheSize)
	if err != nil {
		return nil, err
	}

	return &StatusRegistry{
		statuses:    statuses,
		transitions: transitions,
		byCode:      byCode,
		edges:       edges,
		outbound:    outbound,
		lists:       lists,
	}, nil
}

// StatusByCode resolves a status definition, active or not.
// An unknown code surfaces as errs.ErrObjectNotFound.
func (r *StatusRegistry) StatusByCode(ctx context.Context, code string) (*status.Status, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	if cached, ok := r.byCode.Get(code); ok {
		return cached, nil
	}

	resolved, err := r.statuses.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.byCode.Add(code, resolved)
	return resolved, nil
}

// DefaultStatus resolves the workflow entry point new orders are born into.
func (r *StatusRegistry) DefaultStatus(ctx context.Context) (*status.Status, error) {
	return r.StatusByCode(ctx, status.DefaultStatusCode)
}

// CancellationStatus resolves the status cancelled orders move to.
func (r *StatusRegistry) CancellationStatus(ctx context.Context) (*status.Status, error) {
	return r.StatusByCode(ctx, status.CancellationStatusCode)
}

// ActiveStatuses returns the active statuses ordered by display order.
func (r *StatusRegistry) ActiveStatuses(ctx context.Context) ([]*status.Status, error) {
	if cached, ok := r.lists.Get(activeListKey); ok {
		return cached, nil
	}

	active, err := r.statuses.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	r.lists.Add(activeListKey, active)
	return active, nil
}

// Edge resolves the transition configured for a status pair. A pair without a
// configured transition yields (nil, nil), and that absence is cached.
func (r *StatusRegistry) Edge(ctx context.Context, fromCode string, toCode string) (*status.Transition, error) {
	key := edgeKey(fromCode, toCode)

	if cached, ok := r.edges.Get(key); ok {
		return cached, nil
	}

	edge, err := r.transitions.Get(ctx, fromCode, toCode)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			r.edges.Add(key, nil)
			return nil, nil
		}
		return nil, err
	}

	r.edges.Add(key, edge)
	return edge, nil
}

// OutboundEdges returns the allowed transitions leaving the given status,
// ordered by display order.
func (r *StatusRegistry) OutboundEdges(ctx context.Context, fromCode string) ([]*status.Transition, error) {
	if cached, ok := r.outbound.Get(fromCode); ok {
		return cached, nil
	}

	edges, err := r.transitions.GetAllFrom(ctx, fromCode)
	if err != nil {
		return nil, err
	}

	r.outbound.Add(fromCode, edges)
	return edges, nil
}

// IsTransitionAllowed answers whether the workflow permits moving an order
// from one status to another: a configured, allowed edge must exist, the
// source must not be final, and the target must be active.
func (r *StatusRegistry) IsTransitionAllowed(ctx context.Context, fromCode string, toCode string) (bool, error) {
	from, err := r.StatusByCode(ctx, fromCode)
	if err != nil {
		return false, err
	}
	to, err := r.StatusByCode(ctx, toCode)
	if err != nil {
		return false, err
	}

	edge, err := r.Edge(ctx, fromCode, toCode)
	if err != nil {
		return false, err
	}

	return edge != nil && edge.IsAllowed() && !from.IsFinal() && to.IsActive(), nil
}

// InvalidateStatus drops the cached definition and the cached lists containing
// it. Admin mutations call it after persisting and before returning.
func (r *StatusRegistry) InvalidateStatus(code string) {
	r.byCode.Remove(code)
	r.lists.Purge()
}

// InvalidateTransition drops the cached edge and the outbound list of its
// source. Admin mutations call it after persisting and before returning.
func (r *StatusRegistry) InvalidateTransition(fromCode string, toCode string) {
	r.edges.Remove(edgeKey(fromCode, toCode))
	r.outbound.Remove(fromCode)
}

func edgeKey(fromCode string, toCode string) string {
	return fmt.Sprintf("%s->%s", fromCode, toCode)
}
