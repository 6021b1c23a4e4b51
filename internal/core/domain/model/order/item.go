package order

import (
	"errors"
	"fmt"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is a line of an order. The product attributes are snapshots taken at
// ordering time: the unit price an item was sold for never changes, whatever
// happens to the catalog afterwards.
//
// The discount, tax, and finalAmount fields are informative item-level
// figures written by the pricing pass. The authoritative order totals are
// computed independently on the aggregate; item figures exist for display and
// reporting.
type Item struct {
	id          kernel.UUID
	productCode string
	productName string
	quantity    kernel.Quantity
	unitPrice   kernel.Money
	totalPrice  kernel.Money
	discount    kernel.Money
	tax         kernel.Money
	finalAmount kernel.Money

	isConstructed bool
}

// NewItem creates an order line with a positive quantity and a positive unit
// price snapshot. The line total is derived immediately; pricing figures
// start at zero until the pricing pass fills them.
func NewItem(
	id kernel.UUID, productCode string, productName string, quantity kernel.Quantity, unitPrice kernel.Money,
) (*Item, error) {
	item := &Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductCode(productCode),
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	if err := item.recalculateTotal(); err != nil {
		return nil, err
	}

	zero, err := kernel.NewZeroMoney(unitPrice.Currency())
	if err != nil {
		return nil, err
	}
	item.discount, item.tax, item.finalAmount = zero, zero, zero

	return item, nil
}

// RestoreItem reconstructs an order line from persistence, including its
// stored pricing figures.
func RestoreItem(
	id kernel.UUID,
	productCode string,
	productName string,
	quantity kernel.Quantity,
	unitPrice kernel.Money,
	totalPrice kernel.Money,
	discount kernel.Money,
	tax kernel.Money,
	finalAmount kernel.Money,
) (*Item, error) {
	item, err := NewItem(id, productCode, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	if err := errors.Join(
		totalPrice.Validate(), discount.Validate(), tax.Validate(), finalAmount.Validate(),
	); err != nil {
		return nil, err
	}

	item.totalPrice = totalPrice
	item.discount = discount
	item.tax = tax
	item.finalAmount = finalAmount
	return item, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// IsEqual compares two items by identifier.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the line identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductCode returns the catalog code snapshot.
func (i *Item) ProductCode() string {
	return i.productCode
}

// ProductName returns the product name snapshot.
func (i *Item) ProductName() string {
	return i.productName
}

// Quantity returns the ordered count.
func (i *Item) Quantity() kernel.Quantity {
	return i.quantity
}

// UnitPrice returns the per-unit price snapshot.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// TotalPrice returns unit price times quantity, before any discount.
func (i *Item) TotalPrice() kernel.Money {
	return i.totalPrice
}

// Discount returns the informative item-level discount snapshot.
func (i *Item) Discount() kernel.Money {
	return i.discount
}

// Tax returns the informative item-level tax snapshot.
func (i *Item) Tax() kernel.Money {
	return i.tax
}

// FinalAmount returns the informative item-level final amount snapshot.
func (i *Item) FinalAmount() kernel.Money {
	return i.finalAmount
}

// UpdateQuantity changes the ordered count and rederives the line total. The
// caller is expected to rerun the pricing pass afterwards.
func (i *Item) UpdateQuantity(quantity kernel.Quantity) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if err := i.setQuantity(quantity); err != nil {
		return err
	}
	return i.recalculateTotal()
}

// applyPricing installs the item-level figures computed by the pricing pass.
// The item invariant holds by construction: finalAmount equals totalPrice
// minus discount plus tax.
func (i *Item) applyPricing(discount kernel.Money, tax kernel.Money, finalAmount kernel.Money) error {
	if err := errors.Join(discount.Validate(), tax.Validate(), finalAmount.Validate()); err != nil {
		return err
	}

	afterDiscount, err := i.totalPrice.Subtract(discount)
	if err != nil {
		return err
	}
	expected, err := afterDiscount.Add(tax)
	if err != nil {
		return err
	}
	matches, err := expected.IsEqual(finalAmount)
	if err != nil {
		return err
	}
	if !matches {
		return errs.NewValueIsInvalidErrorWithCause("finalAmount",
			fmt.Errorf("item %s: %s does not equal %s", i.id, finalAmount, expected))
	}

	i.discount = discount
	i.tax = tax
	i.finalAmount = finalAmount
	return nil
}

func (i *Item) recalculateTotal() error {
	total, err := i.unitPrice.MultiplyQuantity(i.quantity)
	if err != nil {
		return err
	}
	i.totalPrice = total
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("productCode")
	}
	i.productCode = code
	return nil
}

func (i *Item) setProductName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = name
	return nil
}

func (i *Item) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("order line quantity must be positive, got %s", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	if unitPrice.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("unit price must be positive, got %s", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
