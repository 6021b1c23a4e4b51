package order

import (
	"errors"
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// SystemActor identifies changes performed by the system itself rather than a
// named operator: the birth history entry and scheduled maintenance moves.
const SystemActor = "system"

// ErrStatusHistoryIsNotConstructed is returned when a StatusHistory instance
// was not created through NewStatusHistory or RestoreStatusHistory.
var ErrStatusHistoryIsNotConstructed = errors.New(
	"StatusHistory must be created via NewStatusHistory or RestoreStatusHistory constructor")

// StatusHistory is one entry of an order's append-only audit trail: who moved
// the order, from where, to where, when, and why.
//
// Entries are never reordered or deleted. The only mutation an existing entry
// ever receives is the duration backfill: when the next entry is appended,
// the previous one learns how long the order sat in its status.
type StatusHistory struct {
	id       kernel.UUID
	sequence int

	// fromCode is empty for the birth entry written at order creation.
	fromCode string
	toCode   string

	changedBy string
	changedAt time.Time
	reason    string

	// durationInStatus is nil until the following entry is appended.
	durationInStatus *time.Duration

	// isAutomatic distinguishes scheduled moves from operator actions.
	isAutomatic bool

	isConstructed bool
}

// NewStatusHistory creates an audit trail entry. fromCode may be empty for
// the birth entry; every other field is mandatory.
func NewStatusHistory(
	id kernel.UUID,
	sequence int,
	fromCode string,
	toCode string,
	changedBy string,
	changedAt time.Time,
	reason string,
	isAutomatic bool,
) (*StatusHistory, error) {
	h := &StatusHistory{
		reason:        reason,
		isAutomatic:   isAutomatic,
		isConstructed: true,
	}

	if err := errors.Join(
		h.setID(id),
		h.setSequence(sequence),
		h.setCodes(fromCode, toCode),
		h.setChangedBy(changedBy),
		h.setChangedAt(changedAt),
	); err != nil {
		return nil, err
	}

	return h, nil
}

// RestoreStatusHistory reconstructs an audit trail entry from persistence,
// including an already backfilled duration.
func RestoreStatusHistory(
	id kernel.UUID,
	sequence int,
	fromCode string,
	toCode string,
	changedBy string,
	changedAt time.Time,
	reason string,
	isAutomatic bool,
	durationInStatus *time.Duration,
) (*StatusHistory, error) {
	h, err := NewStatusHistory(id, sequence, fromCode, toCode, changedBy, changedAt, reason, isAutomatic)
	if err != nil {
		return nil, err
	}

	h.durationInStatus = durationInStatus
	return h, nil
}

// Validate ensures the StatusHistory was created through a constructor.
func (h *StatusHistory) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrStatusHistoryIsNotConstructed
	}
	return nil
}

// ID returns the entry identifier.
func (h *StatusHistory) ID() kernel.UUID {
	return h.id
}

// Sequence returns the 1-based physical position of the entry within its
// order's trail. Storage orders by sequence; displays order by time.
func (h *StatusHistory) Sequence() int {
	return h.sequence
}

// FromCode returns the source status code, empty for the birth entry.
func (h *StatusHistory) FromCode() string {
	return h.fromCode
}

// ToCode returns the target status code.
func (h *StatusHistory) ToCode() string {
	return h.toCode
}

// ChangedBy returns the actor of the change.
func (h *StatusHistory) ChangedBy() string {
	return h.changedBy
}

// ChangedAt returns when the change happened.
func (h *StatusHistory) ChangedAt() time.Time {
	return h.changedAt
}

// Reason returns the explanation given for the change, possibly empty.
func (h *StatusHistory) Reason() string {
	return h.reason
}

// DurationInStatus returns how long the order stayed in the entry's target
// status, or nil while the entry is still the latest.
func (h *StatusHistory) DurationInStatus() *time.Duration {
	return h.durationInStatus
}

// IsAutomatic reports whether the change came from a scheduled job.
func (h *StatusHistory) IsAutomatic() bool {
	return h.isAutomatic
}

// backfillDuration records the dwell time once the next entry arrives.
func (h *StatusHistory) backfillDuration(nextChangeAt time.Time) {
	duration := nextChangeAt.Sub(h.changedAt)
	h.durationInStatus = &duration
}

func (h *StatusHistory) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *StatusHistory) setSequence(sequence int) error {
	if sequence < 1 {
		return errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}
	h.sequence = sequence
	return nil
}

func (h *StatusHistory) setCodes(fromCode string, toCode string) error {
	if toCode == "" {
		return errs.NewValueIsRequiredError("toCode")
	}
	h.fromCode = fromCode
	h.toCode = toCode
	return nil
}

func (h *StatusHistory) setChangedBy(changedBy string) error {
	if changedBy == "" {
		return errs.NewValueIsRequiredError("changedBy")
	}
	h.changedBy = changedBy
	return nil
}

func (h *StatusHistory) setChangedAt(changedAt time.Time) error {
	if changedAt.IsZero() {
		return errs.NewValueIsRequiredError("changedAt")
	}
	h.changedAt = changedAt
	return nil
}
