package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpsertAccountStmt(t *testing.T) {
	query, args := upsertAccountStmt("  Ada Lovelace ", " Ada@Site.COM ").Sql()

	assert.Contains(t, query, "INSERT INTO public.accounts (name, email)")
	assert.Contains(t, query, "ON CONFLICT")
	assert.Contains(t, query, "DO UPDATE")
	assert.Contains(t, query, "excluded.name")
	assert.Contains(t, query, "RETURNING accounts.id")
	assert.Contains(t, args, "Ada Lovelace")
	assert.Contains(t, args, "ada@site.com")
}

func TestSchemaIsEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS accounts")
}
