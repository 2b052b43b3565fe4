package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the users and lifts tables. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS users
(
    id         UUID PRIMARY KEY,
    username   VARCHAR(64) NOT NULL,
    password   VARCHAR     NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_users_username ON users (username);

CREATE TABLE IF NOT EXISTS lifts
(
    id          UUID PRIMARY KEY,
    user_id     UUID             NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    type        VARCHAR(32)      NOT NULL,
    reps        INTEGER          NOT NULL CHECK (reps >= 1),
    weight      DOUBLE PRECISION NOT NULL CHECK (weight > 0),
    weight_type VARCHAR(8)       NOT NULL,
    one_rep_max DOUBLE PRECISION NOT NULL,
    created_at  TIMESTAMPTZ      NOT NULL,
    updated_at  TIMESTAMPTZ      NOT NULL
);
CREATE INDEX IF NOT EXISTS ix_lifts_user_id_created_at ON lifts (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS ix_lifts_leaderboard ON lifts (type, weight_type, one_rep_max DESC);
`

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
