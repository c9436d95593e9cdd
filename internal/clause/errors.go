// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package clause

import (
	"fmt"

	"github.com/sapcc/jobly/internal/errors"
)

// ErrEmptyInput is returned by PartialUpdate when there is nothing to set.
var ErrEmptyInput = fmt.Errorf("no data supplied for update: %w", errors.ErrBadRequest)

// RangeConflictError is returned by Filter when the lower employee bound
// exceeds the upper one.
type RangeConflictError struct {
	Min, Max float64
}

func (e *RangeConflictError) Error() string {
	return "minEmployees cannot be greater than maxEmployees"
}

func (e *RangeConflictError) Unwrap() error { return errors.ErrBadRequest }

// UnknownFilterError names a filter key outside of the supported set.
type UnknownFilterError struct {
	Name string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("%s is not a valid filter name", e.Name)
}

func (e *UnknownFilterError) Unwrap() error { return errors.ErrBadRequest }

// InvalidFilterValueError is returned when a numeric filter carries a value
// that cannot be read as a number.
type InvalidFilterValueError struct {
	Name  string
	Value any
	Err   error
}

func (e *InvalidFilterValueError) Error() string {
	return fmt.Sprintf("%s must be a number, got %v", e.Name, e.Value)
}

func (e *InvalidFilterValueError) Unwrap() []error { return []error{errors.ErrBadRequest, e.Err} }
