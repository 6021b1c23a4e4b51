package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly
	// validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderNotModifiable is returned when items are added or removed while the
	// order sits in a status that forbids modification.
	ErrOrderNotModifiable = errors.New("order items cannot be modified in the current status")

	// ErrOrderNotCancellable is returned when cancellation is requested while the
	// order sits in a status that forbids it, or the order is already cancelled.
	ErrOrderNotCancellable = errors.New("order cannot be cancelled in the current status")
)

// Order is the aggregate root of the ordering domain. It owns its line items
// and its status history, carries the priced totals, and is the single place
// where status changes and item modifications are applied.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and order number
//   - Must have at least one line item at all times
//   - All monetary figures share the order currency
//   - finalAmount = subtotal - discount + tax + shipping once priced
//   - Status history is append-only and never reordered
//   - Can only be created through NewOrder or RestoreOrder
//
// The version field is the optimistic concurrency counter. The aggregate never
// changes it; the persistence layer checks and increments it on save.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the human-facing identifier, immutable after creation
	orderNumber kernel.OrderNumber

	customerName  string
	customerEmail kernel.Email
	customerClass CustomerClass

	// isPriority selects express shipping when the order is not free-shipped
	isPriority bool

	notes    string
	currency string

	// status is the current workflow position, resolved from the status catalog
	status *status.Status

	// items are exclusively owned by the order
	items []*Item

	subtotal    kernel.Money
	discount    kernel.Money
	tax         kernel.Money
	shipping    kernel.Money
	finalAmount kernel.Money

	// history is the append-only audit trail, ordered by sequence
	history []*StatusHistory

	cancelledAt        *time.Time
	cancelledBy        string
	cancellationReason string

	// version is the optimistic concurrency counter, starting at 1
	version int64

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrderParams carries everything needed to create a fresh order.
type NewOrderParams struct {
	ID            kernel.UUID
	OrderNumber   kernel.OrderNumber
	CustomerName  string
	CustomerEmail kernel.Email
	CustomerClass CustomerClass
	IsPriority    bool
	Notes         string
	Currency      string

	// InitialStatus is the workflow entry point the order is born into.
	InitialStatus *status.Status

	// Items must contain at least one line. Lines sharing a product code are
	// merged, provided their unit prices agree.
	Items []*Item

	// CreatedBy is the actor recorded on the birth history entry.
	// Defaults to SystemActor when empty.
	CreatedBy string

	CreatedAt time.Time
}

// NewOrder creates a new Order with validation. This is the only way to create
// a fresh order, ensuring all business invariants hold from the start.
//
// The order is born into params.InitialStatus, which must be active, and the
// birth history entry (empty source code) is appended immediately. All totals
// start at zero in the order currency; the pricing engine installs real
// figures through ApplyPricing afterwards.
//
// Returns the created order, or a validation error when any parameter is
// invalid. Errors from independent checks are joined.
func NewOrder(params NewOrderParams) (*Order, error) {
	order := &Order{
		isPriority:    params.IsPriority,
		notes:         params.Notes,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(params.ID),
		order.setOrderNumber(params.OrderNumber),
		order.setCustomerName(params.CustomerName),
		order.setCustomerEmail(params.CustomerEmail),
		order.setCustomerClass(params.CustomerClass),
		order.setCurrency(params.Currency),
		order.setCreatedAt(params.CreatedAt),
	); err != nil {
		return nil, err
	}

	if err := order.setInitialStatus(params.InitialStatus); err != nil {
		return nil, err
	}

	if len(params.Items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for _, item := range params.Items {
		if err := order.addItem(item); err != nil {
			return nil, err
		}
	}

	if err := order.resetTotals(); err != nil {
		return nil, err
	}

	order.updatedAt = order.createdAt

	changedBy := params.CreatedBy
	if changedBy == "" {
		changedBy = SystemActor
	}
	birth, err := NewStatusHistory(
		kernel.NewUUID(),
		1,
		"",
		order.status.Code(),
		changedBy,
		order.createdAt,
		"",
		false,
	)
	if err != nil {
		return nil, err
	}
	order.history = append(order.history, birth)

	return order, nil
}

// RestoreOrderParams carries the persisted state of an order.
type RestoreOrderParams struct {
	ID            kernel.UUID
	OrderNumber   kernel.OrderNumber
	CustomerName  string
	CustomerEmail kernel.Email
	CustomerClass CustomerClass
	IsPriority    bool
	Notes         string
	Currency      string

	// Status may be inactive: existing orders keep statuses that were
	// deactivated after the fact.
	Status *status.Status

	Items []*Item

	Subtotal    kernel.Money
	Discount    kernel.Money
	Tax         kernel.Money
	Shipping    kernel.Money
	FinalAmount kernel.Money

	History []*StatusHistory

	CancelledAt        *time.Time
	CancelledBy        string
	CancellationReason string

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestoreOrder reconstructs an Order from persistent storage. Unlike NewOrder
// it accepts the persisted totals, history and version as they are, including
// a currently inactive status. The restored order behaves identically to one
// built through normal domain operations.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	order := &Order{
		isPriority:         params.IsPriority,
		notes:              params.Notes,
		cancelledAt:        params.CancelledAt,
		cancelledBy:        params.CancelledBy,
		cancellationReason: params.CancellationReason,
		updatedAt:          params.UpdatedAt,
		isConstructed:      true,
	}

	if err := errors.Join(
		order.setID(params.ID),
		order.setOrderNumber(params.OrderNumber),
		order.setCustomerName(params.CustomerName),
		order.setCustomerEmail(params.CustomerEmail),
		order.setCustomerClass(params.CustomerClass),
		order.setCurrency(params.Currency),
		order.setCreatedAt(params.CreatedAt),
		order.setStatus(params.Status),
		order.setVersion(params.Version),
	); err != nil {
		return nil, err
	}

	if len(params.Items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for _, item := range params.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		order.items = append(order.items, item)
	}

	if err := errors.Join(
		order.setTotals(params.Subtotal, params.Discount, params.Tax, params.Shipping, params.FinalAmount),
		order.setHistory(params.History),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing order number.
func (o *Order) OrderNumber() kernel.OrderNumber {
	return o.orderNumber
}

// CustomerName returns the customer's display name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerEmail returns the customer's contact address.
func (o *Order) CustomerEmail() kernel.Email {
	return o.customerEmail
}

// CustomerClass returns the customer's pricing class.
func (o *Order) CustomerClass() CustomerClass {
	return o.customerClass
}

// IsPriority reports whether the order requested priority handling.
func (o *Order) IsPriority() bool {
	return o.isPriority
}

// Notes returns the free-form order notes.
func (o *Order) Notes() string {
	return o.notes
}

// Currency returns the order currency shared by every monetary figure.
func (o *Order) Currency() string {
	return o.currency
}

// Status returns the order's current workflow status.
func (o *Order) Status() *status.Status {
	return o.status
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// Item returns the line item with the given identifier, or an ObjectNotFound
// error when no such item exists.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemID", itemID)
}

// Subtotal returns the sum of all item totals before discounts.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// Discount returns the order-level discount amount.
func (o *Order) Discount() kernel.Money {
	return o.discount
}

// Tax returns the order-level tax amount.
func (o *Order) Tax() kernel.Money {
	return o.tax
}

// Shipping returns the shipping cost.
func (o *Order) Shipping() kernel.Money {
	return o.shipping
}

// FinalAmount returns the amount the customer owes.
func (o *Order) FinalAmount() kernel.Money {
	return o.finalAmount
}

// History returns a copy of the status history, ordered by sequence.
func (o *Order) History() []*StatusHistory {
	out := make([]*StatusHistory, len(o.history))
	copy(out, o.history)
	return out
}

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// CancelledBy returns the actor who cancelled the order, empty when not cancelled.
func (o *Order) CancelledBy() string {
	return o.cancelledBy
}

// CancellationReason returns the recorded cancellation reason, empty when not cancelled.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// IsCancelled reports whether a cancellation has been recorded.
func (o *Order) IsCancelled() bool {
	return o.cancelledAt != nil
}

// Version returns the optimistic concurrency counter.
func (o *Order) Version() int64 {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last persistence timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TotalQuantity returns the summed quantity across all line items. The bulk
// discount threshold compares against this figure.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.items {
		total += item.Quantity().Value()
	}
	return total
}

// CanBeModified reports whether the current status permits item changes.
func (o *Order) CanBeModified() bool {
	return o.status.AllowsModification()
}

// CanBeCancelled reports whether the current status permits cancellation and
// no cancellation has been recorded yet.
func (o *Order) CanBeCancelled() bool {
	return o.status.AllowsCancellation() && !o.IsCancelled()
}

// AddItem adds a line item to the order. Lines sharing a product code are
// merged into the existing item, provided unit prices agree.
//
// The operation is refused with ErrOrderNotModifiable when the current status
// forbids modification. Totals are stale afterwards until the pricing engine
// reprices the order.
func (o *Order) AddItem(item *Item) error {
	if !o.CanBeModified() {
		return fmt.Errorf("%w: current status is %s", ErrOrderNotModifiable, o.status.Code())
	}

	return o.addItem(item)
}

// RemoveItem removes the line item with the given identifier.
//
// The operation is refused with ErrOrderNotModifiable when the current status
// forbids modification, and with a validation error when removing the item
// would leave the order empty. Totals are stale afterwards until the pricing
// engine reprices the order.
func (o *Order) RemoveItem(itemID kernel.UUID) error {
	if !o.CanBeModified() {
		return fmt.Errorf("%w: current status is %s", ErrOrderNotModifiable, o.status.Code())
	}

	for i, item := range o.items {
		if !item.ID().IsEqual(itemID) {
			continue
		}
		if len(o.items) == 1 {
			return errs.NewValueIsInvalidErrorWithCause("items",
				errors.New("an order must keep at least one item"))
		}
		o.items = append(o.items[:i], o.items[i+1:]...)
		return nil
	}

	return errs.NewObjectNotFoundError("itemID", itemID)
}

// Pricing is a complete totals snapshot produced by the pricing engine,
// installed atomically through ApplyPricing.
type Pricing struct {
	Items []ItemPricing

	Subtotal    kernel.Money
	Discount    kernel.Money
	Tax         kernel.Money
	Shipping    kernel.Money
	FinalAmount kernel.Money
}

// ItemPricing carries the informative per-item figures of a pricing run.
type ItemPricing struct {
	ItemID kernel.UUID

	Discount    kernel.Money
	Tax         kernel.Money
	FinalAmount kernel.Money
}

// ApplyPricing installs a totals snapshot on the order and its items.
//
// The snapshot is checked before anything is written: every figure must carry
// the order currency, finalAmount must equal subtotal - discount + tax +
// shipping, and the per-item figures must cover each line item exactly once.
// On any failure the order is left untouched.
func (o *Order) ApplyPricing(pricing Pricing) error {
	if err := errors.Join(
		o.checkOrderCurrency(pricing.Subtotal),
		o.checkOrderCurrency(pricing.Discount),
		o.checkOrderCurrency(pricing.Tax),
		o.checkOrderCurrency(pricing.Shipping),
		o.checkOrderCurrency(pricing.FinalAmount),
	); err != nil {
		return err
	}

	expected, err := o.expectedFinalAmount(pricing)
	if err != nil {
		return err
	}
	matches, err := pricing.FinalAmount.IsEqual(expected)
	if err != nil {
		return err
	}
	if !matches {
		return errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("finalAmount %s does not equal subtotal - discount + tax + shipping = %s",
				pricing.FinalAmount, expected))
	}

	if len(pricing.Items) != len(o.items) {
		return errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("%d item figures for %d items", len(pricing.Items), len(o.items)))
	}
	targets := make([]*Item, 0, len(pricing.Items))
	for _, itemPricing := range pricing.Items {
		item, err := o.Item(itemPricing.ItemID)
		if err != nil {
			return err
		}
		for _, seen := range targets {
			if seen.ID().IsEqual(item.ID()) {
				return errs.NewValueIsInvalidErrorWithCause("pricing",
					fmt.Errorf("duplicate figures for item %s", item.ID()))
			}
		}
		targets = append(targets, item)
	}

	for i, itemPricing := range pricing.Items {
		if err := targets[i].applyPricing(itemPricing.Discount, itemPricing.Tax, itemPricing.FinalAmount); err != nil {
			return err
		}
	}

	o.subtotal = pricing.Subtotal
	o.discount = pricing.Discount
	o.tax = pricing.Tax
	o.shipping = pricing.Shipping
	o.finalAmount = pricing.FinalAmount

	return nil
}

// ChangeStatus applies an already-authorized transition to the target status:
// it swaps the status, appends a history entry and backfills the previous
// entry's dwell time.
//
// Rule checks against the transition table belong to the transition executor.
// ChangeStatus re-runs only the code-level safety net that holds regardless of
// table contents: no moves out of a final status, none onto an inactive one.
func (o *Order) ChangeStatus(
	target *status.Status,
	changedBy string,
	changedAt time.Time,
	reason string,
	isAutomatic bool,
) error {
	if err := o.status.CanTransitionTo(target); err != nil {
		return err
	}

	entry, err := NewStatusHistory(
		kernel.NewUUID(),
		len(o.history)+1,
		o.status.Code(),
		target.Code(),
		changedBy,
		changedAt,
		reason,
		isAutomatic,
	)
	if err != nil {
		return err
	}

	if last := len(o.history) - 1; last >= 0 {
		o.history[last].backfillDuration(changedAt)
	}
	o.history = append(o.history, entry)
	o.status = target

	return nil
}

// MarkCancelled records the cancellation fields. It does not move the order;
// the caller runs the normal transition path to the cancellation status and
// must check CanBeCancelled beforehand.
func (o *Order) MarkCancelled(reason string, cancelledBy string, cancelledAt time.Time) error {
	if o.IsCancelled() {
		return fmt.Errorf("%w: already cancelled", ErrOrderNotCancellable)
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if cancelledBy == "" {
		return errs.NewValueIsRequiredError("cancelledBy")
	}
	if cancelledAt.IsZero() {
		return errs.NewValueIsRequiredError("cancelledAt")
	}

	o.cancellationReason = reason
	o.cancelledBy = cancelledBy
	o.cancelledAt = &cancelledAt

	return nil
}

// IsFullyPaid reports whether the paid amount covers the final amount.
// The paid amount must carry the order currency.
func (o *Order) IsFullyPaid(paid kernel.Money) (bool, error) {
	if err := o.checkOrderCurrency(paid); err != nil {
		return false, err
	}

	return paid.GreaterThanOrEqual(o.finalAmount)
}

// addItem appends or merges a line item without the modifiability gate.
// Construction uses it directly; AddItem gates it.
func (o *Order) addItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.UnitPrice().Currency() != o.currency {
		return errs.NewCurrencyMismatchError(item.UnitPrice().Currency(), o.currency)
	}

	for _, existing := range o.items {
		if existing.ID().IsEqual(item.ID()) {
			return errs.NewObjectAlreadyExistsError("itemID", item.ID())
		}
		if existing.ProductCode() != item.ProductCode() {
			continue
		}
		samePrice, err := existing.UnitPrice().IsEqual(item.UnitPrice())
		if err != nil {
			return err
		}
		if !samePrice {
			return errs.NewValueIsInvalidErrorWithCause("unitPrice",
				fmt.Errorf("product %s is already priced at %s", existing.ProductCode(), existing.UnitPrice()))
		}
		merged, err := existing.Quantity().Add(item.Quantity())
		if err != nil {
			return err
		}
		return existing.UpdateQuantity(merged)
	}

	o.items = append(o.items, item)
	return nil
}

// resetTotals zeroes every monetary figure in the order currency.
func (o *Order) resetTotals() error {
	zero, err := kernel.NewZeroMoney(o.currency)
	if err != nil {
		return err
	}

	o.subtotal = zero
	o.discount = zero
	o.tax = zero
	o.shipping = zero
	o.finalAmount = zero

	return nil
}

func (o *Order) expectedFinalAmount(pricing Pricing) (kernel.Money, error) {
	afterDiscount, err := pricing.Subtotal.Subtract(pricing.Discount)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("pricing", err)
	}
	withTax, err := afterDiscount.Add(pricing.Tax)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("pricing", err)
	}
	expected, err := withTax.Add(pricing.Shipping)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("pricing", err)
	}
	return expected, nil
}

func (o *Order) checkOrderCurrency(money kernel.Money) error {
	if err := money.Validate(); err != nil {
		return err
	}
	if money.Currency() != o.currency {
		return errs.NewCurrencyMismatchError(money.Currency(), o.currency)
	}
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber kernel.OrderNumber) error {
	if err := orderNumber.Validate(); err != nil {
		return err
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = customerName
	return nil
}

func (o *Order) setCustomerEmail(customerEmail kernel.Email) error {
	if err := customerEmail.Validate(); err != nil {
		return err
	}
	o.customerEmail = customerEmail
	return nil
}

func (o *Order) setCustomerClass(customerClass CustomerClass) error {
	if err := customerClass.Validate(); err != nil {
		return err
	}
	o.customerClass = customerClass
	return nil
}

func (o *Order) setCurrency(currency string) error {
	if _, err := kernel.NewZeroMoney(currency); err != nil {
		return err
	}
	o.currency = currency
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

// setInitialStatus requires an active status: new orders are never born into
// a retired workflow position.
func (o *Order) setInitialStatus(initial *status.Status) error {
	if err := o.setStatus(initial); err != nil {
		return err
	}
	if !initial.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("initialStatus",
			fmt.Errorf("status %s is inactive", initial.Code()))
	}
	return nil
}

func (o *Order) setStatus(current *status.Status) error {
	if current == nil {
		return errs.NewValueIsRequiredError("status")
	}
	if err := current.Validate(); err != nil {
		return err
	}
	o.status = current
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 1 {
		return errs.NewValueIsOutOfRangeError("version", version, 1, "unbounded")
	}
	o.version = version
	return nil
}

func (o *Order) setTotals(subtotal, discount, tax, shipping, finalAmount kernel.Money) error {
	if err := errors.Join(
		o.checkOrderCurrency(subtotal),
		o.checkOrderCurrency(discount),
		o.checkOrderCurrency(tax),
		o.checkOrderCurrency(shipping),
		o.checkOrderCurrency(finalAmount),
	); err != nil {
		return err
	}

	o.subtotal = subtotal
	o.discount = discount
	o.tax = tax
	o.shipping = shipping
	o.finalAmount = finalAmount

	return nil
}

func (o *Order) setHistory(history []*StatusHistory) error {
	if len(history) == 0 {
		return errs.NewValueIsRequiredError("history")
	}
	for _, entry := range history {
		if err := entry.Validate(); err != nil {
			return err
		}
	}

	o.history = make([]*StatusHistory, len(history))
	copy(o.history, history)

	return nil
}
