package commands

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand represents a request to add a product line to an
// existing order. Only orders whose current status allows modification
// accept new lines; a line with the same product code and unit price merges
// into the existing one.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	productCode string
	productName string
	quantity    int
	unitPrice   decimal.Decimal

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand creates a command to add a line to an order.
func NewAddOrderItemCommand(
	orderID kernel.UUID, productCode string, productName string, quantity int, unitPrice decimal.Decimal,
) (AddOrderItemCommand, error) {
	command := AddOrderItemCommand{
		productName: productName,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setProductCode(productCode),
		command.setQuantity(quantity),
		command.setUnitPrice(unitPrice),
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductCode returns the product code of the new line.
func (c AddOrderItemCommand) ProductCode() string {
	return c.productCode
}

// ProductName returns the product name of the new line.
func (c AddOrderItemCommand) ProductName() string {
	return c.productName
}

// Quantity returns the requested quantity.
func (c AddOrderItemCommand) Quantity() int {
	return c.quantity
}

// UnitPrice returns the unit price of the new line.
func (c AddOrderItemCommand) UnitPrice() decimal.Decimal {
	return c.unitPrice
}

func (c *AddOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddOrderItemCommand) setProductCode(productCode string) error {
	if strings.TrimSpace(productCode) == "" {
		return ErrProductCodeIsRequired
	}

	c.productCode = productCode
	return nil
}

func (c *AddOrderItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}

func (c *AddOrderItemCommand) setUnitPrice(unitPrice decimal.Decimal) error {
	if !unitPrice.IsPositive() {
		return ErrUnitPriceIsInvalid
	}

	c.unitPrice = unitPrice
	return nil
}
