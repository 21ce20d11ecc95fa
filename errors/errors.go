package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a stored record is not found
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned when attempting to register something that is already registered
	ErrAlreadyExists = errors.New("already registered")

	// ErrInvalidFragment is returned when a generated fragment artifact cannot be parsed
	ErrInvalidFragment = errors.New("invalid fragment")

	// ErrConditionFailed is returned when a conditional update fails
	ErrConditionFailed = errors.New("condition check failed")

	// ErrNoIndexMap is returned when no index map is found for a type
	ErrNoIndexMap = errors.New("no index map found for type")

	// ErrNoConsumer is returned when a named registration consumer has not been registered
	ErrNoConsumer = errors.New("no consumer registered")
)

// NotFoundError represents an error when a stored record is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents a duplicate registration
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already registered", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// FragmentError represents a malformed generated fragment artifact
type FragmentError struct {
	Path    string
	Message string
}

func (e *FragmentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid fragment %q: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("invalid fragment: %s", e.Message)
}

func (e *FragmentError) Is(target error) bool {
	return target == ErrInvalidFragment
}

// ConditionFailedError represents a failed conditional operation
type ConditionFailedError struct {
	Operation string
	Condition string
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition check failed for %s operation: %s", e.Operation, e.Condition)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

// NoConsumerError represents a lookup of a consumer name nothing has registered
type NoConsumerError struct {
	Name string
}

func (e *NoConsumerError) Error() string {
	return fmt.Sprintf("no consumer registered under name %q", e.Name)
}

func (e *NoConsumerError) Is(target error) bool {
	return target == ErrNoConsumer
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(recordType, key string) error {
	return &NotFoundError{Type: recordType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(recordType, key string) error {
	return &AlreadyExistsError{Type: recordType, Key: key}
}

// NewFragmentError creates a new FragmentError
func NewFragmentError(path, message string) error {
	return &FragmentError{Path: path, Message: message}
}

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, condition string) error {
	return &ConditionFailedError{Operation: operation, Condition: condition}
}

// NewNoConsumerError creates a new NoConsumerError
func NewNoConsumerError(name string) error {
	return &NoConsumerError{Name: name}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is a duplicate registration error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidFragment checks if an error is a fragment parse error
func IsInvalidFragment(err error) bool {
	return errors.Is(err, ErrInvalidFragment)
}

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsNoConsumer checks if an error is a missing consumer error
func IsNoConsumer(err error) bool {
	return errors.Is(err, ErrNoConsumer)
}
