// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package postgres

import (
	"fmt"

	"github.com/pgvector/pgvector-go"
)

// Kind discriminates the decoded representation of a result cell.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindInt
	KindFloat
	KindVector
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindVector:
		return "vector"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the tagged union for a single result cell. The kind is decided
// at the data-access boundary from the driver's decoded type; callers
// pattern-match through the accessors instead of casting.
type Value struct {
	kind    Kind
	text    string
	integer int64
	float   float64
	vector  pgvector.Vector
}

// NullValue returns a Value holding SQL NULL.
func NullValue() Value { return Value{kind: KindNull} }

// TextValue returns a Value holding text.
func TextValue(text string) Value { return Value{kind: KindText, text: text} }

// IntValue returns a Value holding an integer.
func IntValue(i int64) Value { return Value{kind: KindInt, integer: i} }

// FloatValue returns a Value holding a float.
func FloatValue(f float64) Value { return Value{kind: KindFloat, float: f} }

// VectorValue returns a Value holding an embedding.
func VectorValue(vec pgvector.Vector) Value { return Value{kind: KindVector, vector: vec} }

// Kind returns the discriminator.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the cell was SQL NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the text representation and whether the cell holds text.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindText
}

// Int returns the integer representation and whether the cell holds an integer.
func (v Value) Int() (int64, bool) {
	return v.integer, v.kind == KindInt
}

// Float returns the floating-point representation and whether the cell
// holds a float.
func (v Value) Float() (float64, bool) {
	return v.float, v.kind == KindFloat
}

// Vector returns the embedding representation and whether the cell holds
// a vector.
func (v Value) Vector() (pgvector.Vector, bool) {
	return v.vector, v.kind == KindVector
}

// decodeValue maps a value decoded by pgx into the tagged union. Vector
// columns arrive as pgvector.Vector because the codec is registered on
// every connection the executor opens.
func decodeValue(raw any) Value {
	switch c := raw.(type) {
	case nil:
		return Value{kind: KindNull}
	case pgvector.Vector:
		return Value{kind: KindVector, vector: c}
	case string:
		return Value{kind: KindText, text: c}
	case []byte:
		return Value{kind: KindText, text: string(c)}
	case int16:
		return Value{kind: KindInt, integer: int64(c)}
	case int32:
		return Value{kind: KindInt, integer: int64(c)}
	case int64:
		return Value{kind: KindInt, integer: c}
	case uint32:
		return Value{kind: KindInt, integer: int64(c)}
	case float32:
		return Value{kind: KindFloat, float: float64(c)}
	case float64:
		return Value{kind: KindFloat, float: c}
	case bool:
		// No boolean column exists in the schema; keep the text form so the
		// cell is still inspectable.
		return Value{kind: KindText, text: fmt.Sprintf("%t", c)}
	default:
		return Value{kind: KindText, text: fmt.Sprint(c)}
	}
}

// Row is an ordered mapping from column name to decoded cell value.
type Row struct {
	columns []string
	values  map[string]Value
}

// NewRow builds a Row from an ordered column list and its cell values.
// The executor builds rows this way when decoding results; fakes in
// dependent packages' tests use it to stage canned rows.
func NewRow(columns []string, values map[string]Value) Row {
	return Row{columns: columns, values: values}
}

// Columns returns the column names in result order.
func (r Row) Columns() []string {
	return r.columns
}

// Get returns the cell under column and whether the column exists.
func (r Row) Get(column string) (Value, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Value returns the cell under column, or a null Value when the column is
// not part of the result.
func (r Row) Value(column string) Value {
	return r.values[column]
}
