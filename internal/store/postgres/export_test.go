// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package postgres

import "github.com/jackc/pgx/v5"

// NamedArgs exposes the bound parameter map for direct unit testing.
// Exported only to _test packages via the export_test.go convention.
func (p *Params) NamedArgs() pgx.NamedArgs {
	return p.namedArgs()
}

// DecodeValue exposes decodeValue for direct unit testing.
var DecodeValue = decodeValue
