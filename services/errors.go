// services/errors.go - Error taxonomy shared by all services
package services

import (
	"errors"
	"fmt"
)

// NotFoundError means a referenced entity does not exist. Message overrides
// the resource/id rendering for lookups that are not by id.
type NotFoundError struct {
	Resource string
	ID       uint
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

// ForbiddenError means the acting user may not perform the operation.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// BusinessError is a constraint violation: the request was well-formed and
// permitted, but the domain rules reject it. Callers may retry with
// different input.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

func newNotFound(resource string, id uint) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func newNotFoundMsg(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func newForbidden(format string, args ...interface{}) error {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}

func newBusiness(format string, args ...interface{}) error {
	return &BusinessError{Message: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsForbidden(err error) bool {
	var e *ForbiddenError
	return errors.As(err, &e)
}

func IsBusiness(err error) bool {
	var e *BusinessError
	return errors.As(err, &e)
}
