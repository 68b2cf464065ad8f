package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	// ErrObjectNotFound indicates that a referenced object does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrValueIsInvalid indicates that a provided value failed validation.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsOutOfRange indicates that a value is outside its allowed bounds.
	ErrValueIsOutOfRange = errors.New("value is out of range")

	// ErrValueIsRequired indicates that a required value is missing.
	ErrValueIsRequired = errors.New("value is required")

	// ErrVersionIsInvalid indicates that an aggregate or stream version is wrong.
	ErrVersionIsInvalid = errors.New("version is invalid")
)

// sanitize flattens multi-line values so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ObjectNotFoundError reports a missing object together with the parameter
// used to look it up.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside its allowed [Min, Max] bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError reports an invalid aggregate or event-stream version.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without an underlying cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName))
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}
