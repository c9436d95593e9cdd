// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package clause

import (
	"errors"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"

	jerrors "github.com/sapcc/jobly/internal/errors"
)

var companyTranslation = Translation{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

func TestPartialUpdate(t *testing.T) {
	data := F(
		"name", "Pear Incorpearated",
		"description", "creators of pear programming",
		"numEmployees", 1000,
	)

	u, err := PartialUpdate(data, companyTranslation)
	assert.NoError(t, err)
	assert.Equal(t, `"name"=$1, "description"=$2, "num_employees"=$3`, u.SetCols)
	assert.Equal(t, []any{"Pear Incorpearated", "creators of pear programming", 1000}, u.Values)
}

func TestPartialUpdateEmptyTranslation(t *testing.T) {
	data := F(
		"name", "Pear Incorpearated",
		"description", "creators of pear programming",
		"numEmployees", 1000,
	)

	u, err := PartialUpdate(data, Translation{})
	assert.NoError(t, err)
	assert.Equal(t, `"name"=$1, "description"=$2, "numEmployees"=$3`, u.SetCols)
	assert.Equal(t, []any{"Pear Incorpearated", "creators of pear programming", 1000}, u.Values)

	u, err = PartialUpdate(data, nil)
	assert.NoError(t, err)
	assert.Equal(t, `"name"=$1, "description"=$2, "numEmployees"=$3`, u.SetCols)
}

func TestPartialUpdateUnrelatedTranslation(t *testing.T) {
	data := F("name", "Pear", "numEmployees", 1000)

	u, err := PartialUpdate(data, Translation{"numEmp": "num_employees"})
	assert.NoError(t, err)
	assert.Equal(t, `"name"=$1, "numEmployees"=$2`, u.SetCols)
	assert.Equal(t, []any{"Pear", 1000}, u.Values)
}

func TestPartialUpdateEmpty(t *testing.T) {
	for _, tr := range []Translation{nil, {}, companyTranslation} {
		u, err := PartialUpdate(Fields{}, tr)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.ErrorIs(t, err, jerrors.ErrBadRequest)
		assert.Empty(t, u.SetCols)
		assert.Nil(t, u.Values)
	}

	_, err := PartialUpdate(nil, companyTranslation)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestPartialUpdateOrderFollowsInput(t *testing.T) {
	u, err := PartialUpdate(F("logoUrl", "http://pear.img", "name", "Pear"), companyTranslation)
	assert.NoError(t, err)
	assert.Equal(t, `"logo_url"=$1, "name"=$2`, u.SetCols)
	assert.Equal(t, []any{"http://pear.img", "Pear"}, u.Values)
	assert.Equal(t, len(u.Values), strings.Count(u.SetCols, "$"))
}

func TestPartialUpdateNullValue(t *testing.T) {
	u, err := PartialUpdate(F("logoUrl", nil), companyTranslation)
	assert.NoError(t, err)
	assert.Equal(t, `"logo_url"=$1`, u.SetCols)
	assert.Equal(t, []any{nil}, u.Values)
}

func TestPartialUpdateQuotesIdentifier(t *testing.T) {
	u, err := PartialUpdate(F("odd", 1), Translation{"odd": `we"ird`})
	assert.NoError(t, err)
	assert.Equal(t, `"we""ird"=$1`, u.SetCols)
}

func TestPartialUpdateQuestionMarkInColumn(t *testing.T) {
	u, err := PartialUpdate(F("what?", 1, "name", "x"), nil)
	assert.NoError(t, err)
	assert.Equal(t, `"what?"=$1, "name"=$2`, u.SetCols)
	assert.Equal(t, []any{1, "x"}, u.Values)

	u, err = PartialUpdate(F("a??b", 1), nil)
	assert.NoError(t, err)
	assert.Equal(t, `"a??b"=$1`, u.SetCols)

	u, err = Compiler{Placeholder: sq.Colon}.PartialUpdate(F("what?", 1, "name", "x"), nil)
	assert.NoError(t, err)
	assert.Equal(t, `"what?"=:1, "name"=:2`, u.SetCols)

	u, err = Compiler{Placeholder: sq.Question}.PartialUpdate(F("what?", 1), nil)
	assert.NoError(t, err)
	assert.Equal(t, `"what?"=?`, u.SetCols)
}

func TestPartialUpdatePlaceholderFormat(t *testing.T) {
	data := F("name", "Pear", "numEmployees", 3)

	u, err := Compiler{Placeholder: sq.Question}.PartialUpdate(data, companyTranslation)
	assert.NoError(t, err)
	assert.Equal(t, `"name"=?, "num_employees"=?`, u.SetCols)

	u, err = Compiler{Placeholder: sq.Colon}.PartialUpdate(data, companyTranslation)
	assert.NoError(t, err)
	assert.Equal(t, `"name"=:1, "num_employees"=:2`, u.SetCols)

	u, err = Compiler{}.PartialUpdate(data, companyTranslation)
	assert.NoError(t, err)
	assert.Equal(t, `"name"=$1, "num_employees"=$2`, u.SetCols)
}

func TestPartialUpdateIsRepeatable(t *testing.T) {
	data := F("name", "Pear", "description", "fruit", "numEmployees", 3)

	first, err := PartialUpdate(data, companyTranslation)
	assert.NoError(t, err)
	second, err := PartialUpdate(data, companyTranslation)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
