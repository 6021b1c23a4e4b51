package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object
// was not created through its constructor and no specific error was provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes objects built through their designated
// constructor from zero-value instances. Domain value objects and entities
// embed it and set it inside their NewX constructor; Validate then rejects
// any zero-value struct that bypassed construction.
//
// Example:
//
//	type OrderNumber struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewOrderNumber(v string) (OrderNumber, error) {
//	    if v == "" {
//	        return OrderNumber{}, errors.New("value is required")
//	    }
//	    return OrderNumber{value: v, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (n OrderNumber) Validate() error {
//	    return n.guard.Validate(ErrOrderNumberIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed. Call it in the
// constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built via its constructor.
// For a zero-value guard it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
