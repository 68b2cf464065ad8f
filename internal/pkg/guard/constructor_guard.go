// Package guard provides a defensive construction pattern for domain value objects.
// Embedding a ConstructorGuard in a struct makes zero-value instances detectable,
// so objects that bypass their constructor fail validation instead of silently
// carrying invalid state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether its enclosing object was created through
// a designated constructor. The zero value reports the object as not
// constructed; constructors obtain a valid guard via NewConstructorGuard.
//
// Example:
//
//	type Money struct {
//	    amount int
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewMoney(amount int) (Money, error) {
//	    if amount < 0 {
//	        return Money{}, errors.New("amount cannot be negative")
//	    }
//	    return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
