// Package db holds the embedded schema migration run at startup.
package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const schemaMigration = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS users (
    id uuid PRIMARY KEY,
    username text NOT NULL UNIQUE,
    email text,
    password text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS shopping_list (
    id uuid PRIMARY KEY,
    title text NOT NULL,
    description text NOT NULL DEFAULT '',
    owner_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS shopping_list_owner_idx
ON shopping_list (owner_id);

CREATE TABLE IF NOT EXISTS item (
    id uuid PRIMARY KEY,
    name text NOT NULL,
    description text NOT NULL DEFAULT '',
    total_amount double precision NOT NULL DEFAULT 0,
    current_amount double precision NOT NULL DEFAULT 0,
    unit text NOT NULL,
    bought boolean NOT NULL DEFAULT false,
    tags text[] NOT NULL DEFAULT '{}',
    shopping_list_id uuid NOT NULL REFERENCES shopping_list(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS item_shopping_list_idx
ON item (shopping_list_id);

CREATE TABLE IF NOT EXISTS shopping_list_share (
    shopping_list_id uuid NOT NULL REFERENCES shopping_list(id) ON DELETE CASCADE,
    target_user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    CONSTRAINT shopping_list_share_unique
        UNIQUE (shopping_list_id, target_user_id)
);

CREATE INDEX IF NOT EXISTS shopping_list_share_target_idx
ON shopping_list_share (target_user_id);
`

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schemaMigration)
	return err
}
