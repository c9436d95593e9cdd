// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package clause

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

const (
	MinEmployees = "minEmployees"
	MaxEmployees = "maxEmployees"
	NameLike     = "nameLike"
)

type filterKind struct {
	pred  string
	value func(v any) any
}

var filterKinds = map[string]filterKind{
	MinEmployees: {pred: "num_employees >= ?", value: identity},
	MaxEmployees: {pred: "num_employees <= ?", value: identity},
	NameLike:     {pred: "name ilike ?", value: likePattern},
}

func identity(v any) any { return v }

func likePattern(v any) any { return fmt.Sprint("%", v, "%") }

// Where is a compiled WHERE clause. WhereStr is empty when there is nothing
// to filter on.
type Where struct {
	WhereStr  string
	WhereVars []any
}

// Filter validates filters and compiles them into
// `WHERE num_employees >= $1 AND ...` following the order of filters.
func (c Compiler) Filter(filters Fields) (Where, error) {
	if len(filters) == 0 {
		return Where{WhereStr: "", WhereVars: []any{}}, nil
	}

	if err := checkRange(filters); err != nil {
		return Where{}, err
	}
	for _, filter := range filters {
		if _, ok := filterKinds[filter.Name]; !ok {
			return Where{}, &UnknownFilterError{Name: filter.Name}
		}
	}

	preds := make([]string, 0, len(filters))
	vars := make([]any, 0, len(filters))
	for _, filter := range filters {
		kind := filterKinds[filter.Name]
		preds = append(preds, kind.pred)
		vars = append(vars, kind.value(filter.Value))
	}

	whereStr, err := c.format().ReplacePlaceholders("WHERE " + strings.Join(preds, " AND "))
	if err != nil {
		return Where{}, err
	}
	return Where{WhereStr: whereStr, WhereVars: vars}, nil
}

var errNotFinite = fmt.Errorf("not a finite number")

// checkRange compares the employee bounds numerically. Null, NaN and infinite
// bounds are rejected.
func checkRange(filters Fields) error {
	bounds := make(map[string]float64, 2)
	for _, name := range []string{MinEmployees, MaxEmployees} {
		v, ok := filters.Get(name)
		if !ok {
			continue
		}
		if v == nil {
			return &InvalidFilterValueError{Name: name, Value: v, Err: errNotFinite}
		}
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return &InvalidFilterValueError{Name: name, Value: v, Err: err}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return &InvalidFilterValueError{Name: name, Value: v, Err: errNotFinite}
		}
		bounds[name] = f
	}

	lo, hasMin := bounds[MinEmployees]
	hi, hasMax := bounds[MaxEmployees]
	if hasMin && hasMax && lo > hi {
		return &RangeConflictError{Min: lo, Max: hi}
	}
	return nil
}
