// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/sapcc/jobly/internal/clause"
)

// This is a basic postgresql query generator that assembles full statements
// around the clauses compiled by package clause.

var ErrClauseOrder = errors.New("compiled clause must precede other conditions")

// interpolating ? ? => $n $n+1 ... continuing after the already bound args
func renumber(pred string, offset, n int) string {
	for i := offset + 1; i <= offset+n; i++ {
		pred = strings.Replace(pred, "?", fmt.Sprintf("$%d", i), 1)
	}
	return pred
}

func writeWhere(sb *strings.Builder, whereClauses []string) {
	if len(whereClauses) == 0 {
		return
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(whereClauses, " AND "))
}

func writeReturning(sb *strings.Builder, returning []string) {
	if len(returning) > 0 {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(returning, ", "))
	}
}

/////////////////////////
// SELECT
/////////////////////////

type SelectBuilder struct {
	columns      []string
	from         string
	orderBy      []string
	limit        int64
	whereClauses []string
	args         []any
	err          error
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

// From creates from part of SQL
func (b *SelectBuilder) From(from string) *SelectBuilder {
	b.from = from
	return b
}

func (b *SelectBuilder) OrderBy(orderBy ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, orderBy...)
	return b
}

func (b *SelectBuilder) Limit(n uint64) *SelectBuilder {
	b.limit = int64(n)
	return b
}

func (b *SelectBuilder) Where(pred string, args ...any) *SelectBuilder {
	b.whereClauses = append(b.whereClauses, renumber(pred, len(b.args), len(args)))
	b.args = append(b.args, args...)
	return b
}

// WhereClause adds a compiled filter. Its placeholders are numbered from $1,
// so it has to be the first condition of the statement.
func (b *SelectBuilder) WhereClause(w clause.Where) *SelectBuilder {
	if w.WhereStr == "" {
		return b
	}
	if len(b.args) > 0 {
		b.err = ErrClauseOrder
		return b
	}
	b.whereClauses = append(b.whereClauses, strings.TrimPrefix(w.WhereStr, "WHERE "))
	b.args = append(b.args, w.WhereVars...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}

	var sb strings.Builder

	// SELECT ...
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))

	// FROM ...
	sb.WriteString(fmt.Sprint(" FROM ", b.from))

	// WHERE ...
	writeWhere(&sb, b.whereClauses)

	// ORDER BY ...
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	// LIMIT ...
	if b.limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", b.limit))
	}
	return sb.String(), b.args, nil
}

/////////////////////////
// UPDATE
/////////////////////////

type UpdateBuilder struct {
	table        string
	setCols      string
	whereClauses []string
	args         []any
	returning    []string
	err          error
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set adds the compiled SET list. Like SelectBuilder.WhereClause it must come
// before any Where call.
func (b *UpdateBuilder) Set(u clause.Update) *UpdateBuilder {
	if len(b.args) > 0 || b.setCols != "" {
		b.err = ErrClauseOrder
		return b
	}
	b.setCols = u.SetCols
	b.args = append(b.args, u.Values...)
	return b
}

func (b *UpdateBuilder) Where(pred string, args ...any) *UpdateBuilder {
	b.whereClauses = append(b.whereClauses, renumber(pred, len(b.args), len(args)))
	b.args = append(b.args, args...)
	return b
}

func (b *UpdateBuilder) Returning(returning ...string) *UpdateBuilder {
	b.returning = returning
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if b.setCols == "" {
		return "", nil, clause.ErrEmptyInput
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprint("UPDATE ", b.table, " SET ", b.setCols))
	writeWhere(&sb, b.whereClauses)
	writeReturning(&sb, b.returning)
	return sb.String(), b.args, nil
}

/////////////////////////
// INSERT / DELETE
/////////////////////////

// InsertBuilder wraps squirrel's insert with RETURNING and a check that
// columns and values line up.
type InsertBuilder struct {
	b         sq.InsertBuilder
	columns   int
	values    int
	returning []string
}

func Insert(into string) *InsertBuilder {
	return &InsertBuilder{b: sq.Insert(into).PlaceholderFormat(sq.Dollar)}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.b = b.b.Columns(columns...)
	b.columns = len(columns)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.b = b.b.Values(values...)
	b.values = len(values)
	return b
}

func (b *InsertBuilder) Returning(returning ...string) *InsertBuilder {
	b.returning = returning
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if b.columns != b.values {
		return "", nil, fmt.Errorf("insert: %d columns but %d values", b.columns, b.values)
	}
	ib := b.b
	if len(b.returning) > 0 {
		ib = ib.Suffix("RETURNING " + strings.Join(b.returning, ", "))
	}
	return ib.ToSql()
}

type DeleteBuilder struct {
	b sq.DeleteBuilder
}

func Delete(from string) *DeleteBuilder {
	return &DeleteBuilder{b: sq.Delete(from).PlaceholderFormat(sq.Dollar)}
}

func (b *DeleteBuilder) Where(pred string, args ...any) *DeleteBuilder {
	b.b = b.b.Where(pred, args...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	return b.b.ToSql()
}
