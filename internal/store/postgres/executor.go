// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

// Package postgres implements the query executor: parameterized SQL
// against PostgreSQL with pgvector, one connection lifecycle per
// statement, rows decoded into ordered tagged-value mappings.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

// Executor runs parameterized SQL statements. It holds only the
// connection string and is safe for concurrent use: every call opens a
// fresh connection, registers the pgvector codec on it, executes, and
// closes on all exit paths. There is no pooling and no cross-statement
// transaction; callers issuing several statements get several
// independent connections.
type Executor struct {
	connString string
}

// NewExecutor creates an Executor for the given connection string.
func NewExecutor(connString string) (*Executor, error) {
	if connString == "" {
		return nil, cmerr.New(cmerr.CodeStoreInvalidInput, "database connection string is required")
	}
	return &Executor{connString: connString}, nil
}

// Query executes one SQL statement with the given named parameters and
// returns all result rows. Statements without a result set (INSERT,
// UPDATE) return an empty slice. The slice is never nil.
func (e *Executor) Query(ctx context.Context, sql string, params *Params) ([]Row, error) {
	conn, err := e.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	args := make([]any, 0, 1)
	if params.Len() > 0 {
		args = append(args, params.namedArgs())
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, cmerr.Wrapf(err, cmerr.CodeStoreQueryFailure, "executing statement")
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = fd.Name
	}

	result := make([]Row, 0)
	for rows.Next() {
		raw, err := rows.Values()
		if err != nil {
			return nil, cmerr.Wrapf(err, cmerr.CodeStoreScanFailure, "reading row values")
		}

		row := Row{columns: columns, values: make(map[string]Value, len(columns))}
		for i, name := range columns {
			row.values[name] = decodeValue(raw[i])
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, cmerr.Wrapf(err, cmerr.CodeStoreQueryFailure, "iterating result rows")
	}

	return result, nil
}

// connect opens a fresh connection with the vector codec registered.
// The codec registration is scoped to this connection's lifetime, not
// process-global state.
func (e *Executor) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, e.connString)
	if err != nil {
		return nil, cmerr.Wrapf(err, cmerr.CodeStoreConnectFailure, "connecting to postgres")
	}

	if err := pgxvector.RegisterTypes(ctx, conn); err != nil {
		_ = conn.Close(ctx)
		return nil, cmerr.Wrapf(err, cmerr.CodeStoreConnectFailure, "registering vector types")
	}

	return conn, nil
}
