package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyPaid indicates that a settlement has already transitioned to PAID.
// PAID is terminal; the amount fields are frozen and no further transition exists.
var ErrAlreadyPaid = errors.New("settlement already paid")
