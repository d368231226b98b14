// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package postgres_test

import (
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castmatch/castmatch/internal/store/postgres"
)

func TestDecodeValueKinds(t *testing.T) {
	vec := pgvector.NewVector([]float32{1, 2, 3})

	tests := []struct {
		name string
		raw  any
		want postgres.Kind
	}{
		{"nil", nil, postgres.KindNull},
		{"string", "hello", postgres.KindText},
		{"bytes", []byte("raw"), postgres.KindText},
		{"int16", int16(3), postgres.KindInt},
		{"int32", int32(42), postgres.KindInt},
		{"int64", int64(7), postgres.KindInt},
		{"uint32", uint32(9), postgres.KindInt},
		{"float32", float32(0.5), postgres.KindFloat},
		{"float64", 0.25, postgres.KindFloat},
		{"vector", vec, postgres.KindVector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postgres.DecodeValue(tt.raw).Kind())
		})
	}
}

func TestDecodeValueContents(t *testing.T) {
	v := postgres.DecodeValue(int32(42))
	i, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), i)

	v = postgres.DecodeValue(0.125)
	f, ok := v.Float()
	require.True(t, ok)
	assert.Equal(t, 0.125, f)

	vec := pgvector.NewVector([]float32{0.1, 0.9})
	v = postgres.DecodeValue(vec)
	got, ok := v.Vector()
	require.True(t, ok)
	assert.Equal(t, vec.Slice(), got.Slice())

	v = postgres.DecodeValue(nil)
	assert.True(t, v.IsNull())
	_, ok = v.Text()
	assert.False(t, ok)
	_, ok = v.Int()
	assert.False(t, ok)
}

func TestValueAccessorsRejectWrongKind(t *testing.T) {
	v := postgres.TextValue("not a number")
	_, ok := v.Int()
	assert.False(t, ok)
	_, ok = v.Float()
	assert.False(t, ok)
	_, ok = v.Vector()
	assert.False(t, ok)

	s, ok := v.Text()
	require.True(t, ok)
	assert.Equal(t, "not a number", s)
}

func TestRowOrderedMapping(t *testing.T) {
	row := postgres.NewRow(
		[]string{"id", "title", "similarity"},
		map[string]postgres.Value{
			"id":         postgres.IntValue(3),
			"title":      postgres.TextValue("Ep3"),
			"similarity": postgres.FloatValue(0.12),
		},
	)

	assert.Equal(t, []string{"id", "title", "similarity"}, row.Columns())

	v, ok := row.Get("title")
	require.True(t, ok)
	title, _ := v.Text()
	assert.Equal(t, "Ep3", title)

	_, ok = row.Get("missing")
	assert.False(t, ok)
	assert.True(t, row.Value("missing").IsNull())
}
