// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package postgres

import (
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// Params is an explicit named-parameter bag for a single statement.
// Each setter tags the value with its SQL-facing type, so the call site
// states exactly what is bound to each @name placeholder, with no
// reflection over anonymous structs.
type Params struct {
	args pgx.NamedArgs
}

// NewParams returns an empty parameter bag.
func NewParams() *Params {
	return &Params{args: pgx.NamedArgs{}}
}

// Text binds a text value under name.
func (p *Params) Text(name, value string) *Params {
	p.args[name] = value
	return p
}

// Int binds an integer value under name.
func (p *Params) Int(name string, value int64) *Params {
	p.args[name] = value
	return p
}

// Float binds a double-precision value under name.
func (p *Params) Float(name string, value float64) *Params {
	p.args[name] = value
	return p
}

// Vector binds an embedding value under name.
func (p *Params) Vector(name string, value pgvector.Vector) *Params {
	p.args[name] = value
	return p
}

// Null binds SQL NULL under name.
func (p *Params) Null(name string) *Params {
	p.args[name] = nil
	return p
}

// Arg returns the value bound under name and whether name is bound.
// Fakes standing in for the executor use it to inspect statements.
func (p *Params) Arg(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.args[name]
	return v, ok
}

// Len reports the number of bound parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.args)
}

func (p *Params) namedArgs() pgx.NamedArgs {
	if p == nil {
		return nil
	}
	return p.args
}
