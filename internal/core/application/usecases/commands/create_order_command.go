package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerNameIsRequired = errors.New("customer name is required")
	ErrItemsAreRequired       = errors.New("at least one item is required")
	ErrProductCodeIsRequired  = errors.New("product code is required")
	ErrQuantityIsInvalid      = errors.New("quantity must be greater than 0")
	ErrUnitPriceIsInvalid     = errors.New("unit price must be greater than 0")
)

// ItemInput is one requested order line. The handler turns inputs into
// validated domain items; lines sharing a product code merge inside the
// aggregate.
type ItemInput struct {
	ProductCode string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateOrderCommand represents a request to register a new customer order.
// Carries the customer identity, the requested lines and the order currency.
// The order ID and the order number are generated during construction.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("Alice Johnson", "alice@example.com", "VIP",
//	    "USD", items, false, "", "alice")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, pricing, limits, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Created order %s", cmd.OrderNumber())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	orderNumber   kernel.OrderNumber
	customerName  string
	customerEmail kernel.Email
	customerClass order.CustomerClass
	currency      string
	items         []ItemInput
	isPriority    bool
	notes         string
	createdBy     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Generates the order ID and a unique order number. Validates the customer
// identity, the class, the currency and the shape of every requested line.
func NewCreateOrderCommand(
	customerName string,
	customerEmail string,
	customerClass string,
	currency string,
	items []ItemInput,
	isPriority bool,
	notes string,
	createdBy string,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		orderID:     kernel.NewUUID(),
		orderNumber: kernel.GenerateOrderNumber(time.Now().UTC()),
		isPriority:  isPriority,
		notes:       notes,
		createdBy:   createdBy,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerName(customerName),
		command.setCustomerEmail(customerEmail),
		command.setCustomerClass(customerClass),
		command.setCurrency(currency),
		command.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the generated order identifier.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the generated human-facing order number.
func (c CreateOrderCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// CustomerName returns the customer name from the command.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerEmail returns the customer email from the command.
func (c CreateOrderCommand) CustomerEmail() kernel.Email {
	return c.customerEmail
}

// CustomerClass returns the normalized customer class from the command.
func (c CreateOrderCommand) CustomerClass() order.CustomerClass {
	return c.customerClass
}

// Currency returns the order currency from the command.
func (c CreateOrderCommand) Currency() string {
	return c.currency
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []ItemInput {
	items := make([]ItemInput, len(c.items))
	copy(items, c.items)
	return items
}

// IsPriority reports whether express handling was requested.
func (c CreateOrderCommand) IsPriority() bool {
	return c.isPriority
}

// Notes returns the free-form order notes.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// CreatedBy returns the actor recorded on the birth history entry.
func (c CreateOrderCommand) CreatedBy() string {
	return c.createdBy
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if strings.TrimSpace(customerName) == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setCustomerEmail(customerEmail string) error {
	email, err := kernel.NewEmail(customerEmail)
	if err != nil {
		return err
	}

	c.customerEmail = email
	return nil
}

func (c *CreateOrderCommand) setCustomerClass(customerClass string) error {
	class, err := order.CustomerClassFromString(customerClass)
	if err != nil {
		return err
	}

	c.customerClass = class
	return nil
}

func (c *CreateOrderCommand) setCurrency(currency string) error {
	normalized := strings.ToUpper(strings.TrimSpace(currency))
	if normalized == "" {
		normalized = kernel.DefaultCurrency
	}

	// The zero money constructor runs the full currency validation.
	if _, err := kernel.NewZeroMoney(normalized); err != nil {
		return err
	}

	c.currency = normalized
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for i, item := range items {
		if strings.TrimSpace(item.ProductCode) == "" {
			return fmt.Errorf("item %d: %w", i, ErrProductCodeIsRequired)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: %w", i, ErrQuantityIsInvalid)
		}
		if !item.UnitPrice.IsPositive() {
			return fmt.Errorf("item %d: %w", i, ErrUnitPriceIsInvalid)
		}
	}

	c.items = make([]ItemInput, len(items))
	copy(c.items, items)
	return nil
}
