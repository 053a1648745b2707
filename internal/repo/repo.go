// Package repo stores the accounts registered through the sign-up form.
package repo

import (
	"context"
	"database/sql"
	_ "embed"
	"strings"

	. "github.com/go-jet/jet/v2/postgres"

	"learnhub/internal/repo/model"
	. "learnhub/internal/repo/table"
)

//go:embed schema.sql
var schemaSQL string

type Repository interface {
	UpsertAccount(ctx context.Context, name, email string) (model.Accounts, error)
}

func New(db *sql.DB) Repository {
	return &repository{
		db: db,
	}
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}

type repository struct {
	db *sql.DB
}

// UpsertAccount records an account. Registering the same email again updates the name.
func (r *repository) UpsertAccount(ctx context.Context, name, email string) (model.Accounts, error) {
	var result model.Accounts

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return result, err
	}
	defer tx.Rollback()

	stmt := upsertAccountStmt(name, email)
	if err = stmt.QueryContext(ctx, tx, &result); err != nil {
		return result, err
	}

	if err = tx.Commit(); err != nil {
		return result, err
	}

	return result, nil
}

func upsertAccountStmt(name, email string) InsertStatement {
	return Accounts.INSERT(Accounts.Name, Accounts.Email).
		VALUES(strings.TrimSpace(name), normalizeEmail(email)).
		ON_CONFLICT(Accounts.Email).
		DO_UPDATE(SET(Accounts.Name.SET(Accounts.EXCLUDED.Name))).
		RETURNING(Accounts.AllColumns)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
