// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package clause

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Translation maps external attribute names (e.g. numEmployees) to storage
// column names (e.g. num_employees). Names missing from the table are used
// as column name verbatim.
type Translation map[string]string

// Column resolves the storage column for name.
func (t Translation) Column(name string) string {
	if col, ok := t[name]; ok {
		return col
	}
	return name
}

// Update is a compiled SET list. SetCols carries no SET keyword.
type Update struct {
	SetCols string
	Values  []any
}

// PartialUpdate turns fields into `"col1"=$1, "col2"=$2, ...` with the values
// in the same order.
//
// Field names become column names without further checks: they must come
// from a fixed list in code, never straight from request input. A `?` inside
// a column name is kept as written.
func (c Compiler) PartialUpdate(fields Fields, translation Translation) (Update, error) {
	if len(fields) == 0 {
		return Update{}, ErrEmptyInput
	}

	format := c.format()
	cols := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))
	for _, field := range fields {
		col := quoteIdent(translation.Column(field.Name))
		if format != sq.Question {
			// numbered formats unescape ?? to a literal ?
			col = strings.ReplaceAll(col, "?", "??")
		}
		cols = append(cols, col+"=?")
		values = append(values, field.Value)
	}

	setCols, err := format.ReplacePlaceholders(strings.Join(cols, ", "))
	if err != nil {
		return Update{}, err
	}
	return Update{SetCols: setCols, Values: values}, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
