// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

// Package clause compiles loosely typed field sets into parameterized SQL
// fragments: the SET list of a partial update and the WHERE clause of a
// company search.
//
// Both compilers are pure; a Compiler value holds no state besides its
// placeholder format and may be shared between goroutines.
package clause

import (
	sq "github.com/Masterminds/squirrel"
)

// Compiler renders clauses with a configurable placeholder syntax.
type Compiler struct {
	// Placeholder renumbers the "?" markers of compiled fragments, defaults
	// to sq.Dollar ($1, $2, ...).
	Placeholder sq.PlaceholderFormat
}

// Default renders PostgreSQL style $n placeholders.
var Default = Compiler{Placeholder: sq.Dollar}

func (c Compiler) format() sq.PlaceholderFormat {
	if c.Placeholder == nil {
		return sq.Dollar
	}
	return c.Placeholder
}

// PartialUpdate compiles fields with Default, see Compiler.PartialUpdate.
func PartialUpdate(fields Fields, translation Translation) (Update, error) {
	return Default.PartialUpdate(fields, translation)
}

// Filter compiles filters with Default, see Compiler.Filter.
func Filter(filters Fields) (Where, error) {
	return Default.Filter(filters)
}
