// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

// Migrate applies the idempotent schema: the vector extension and the
// three tables. dimensions fixes the width of the embedding columns and
// must match the embedding provider's output size.
//
// Migrate opens its own plain connection because the vector codec cannot
// be registered before the extension exists.
func (e *Executor) Migrate(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		return cmerr.Errorf(cmerr.CodeStoreInvalidInput, "embedding dimensions must be positive, got %d", dimensions)
	}

	conn, err := pgx.Connect(ctx, e.connString)
	if err != nil {
		return cmerr.Wrapf(err, cmerr.CodeStoreConnectFailure, "connecting to postgres")
	}
	defer conn.Close(ctx)

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS podcast_episodes (
	id         BIGSERIAL PRIMARY KEY,
	title      TEXT NOT NULL,
	summary    TEXT,
	transcript TEXT,
	embedding  vector(%d)
)`, dimensions),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
	id                BIGINT PRIMARY KEY,
	listening_history TEXT,
	embedding         vector(%d)
)`, dimensions),
		`CREATE TABLE IF NOT EXISTS suggested_podcasts (
	user_id          BIGINT NOT NULL,
	podcast_id       BIGINT NOT NULL,
	similarity_score DOUBLE PRECISION NOT NULL
)`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return cmerr.Wrapf(err, cmerr.CodeStoreMigrateFailure, "applying schema")
		}
	}

	return nil
}
