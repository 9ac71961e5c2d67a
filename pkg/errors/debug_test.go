package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpExtractsStepAndPostgresDetails(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "40001", ConstraintName: "", TableName: "recycled_electronics", Message: "could not serialize access"}
	err := Store(fmt.Errorf("exec: %w", pgErr), "detach entries")

	d := Dump(err)
	assert.Equal(t, CodeStore, d.Code)
	assert.Equal(t, "detach entries", d.Step)
	assert.Equal(t, "40001", d.PG.Code)
	assert.Equal(t, "recycled_electronics", d.PG.Table)
	require.Len(t, d.Chain, 3)

	fields := d.Fields()
	assert.Equal(t, "detach entries", fields["step"])
	assert.Equal(t, "40001", fields["pg_code"])
	assert.NotContains(t, fields, "pg_detail")
	assert.NotContains(t, fields, "pg_constraint")
}

func TestDumpReadsLibPQErrors(t *testing.T) {
	err := fmt.Errorf("query: %w", &pq.Error{Code: "23505", Constraint: "users_email_key", Table: "users"})
	d := Dump(err)
	assert.Equal(t, "23505", d.PG.Code)
	assert.Equal(t, "users_email_key", d.PG.Constraint)
}

func TestStorePromotesConstraintViolations(t *testing.T) {
	unique := Store(&pgconn.PgError{Code: pgUniqueViolation}, "create user")
	assert.Equal(t, CodeConflict, unique.Code())

	fk := Store(&pq.Error{Code: pgForeignKeyViolation}, "create entry")
	assert.Equal(t, CodeReferential, fk.Code())

	plain := Store(stdErrors.New("timeout"), "list users")
	assert.Equal(t, CodeStore, plain.Code())
}

func TestDumpPlainError(t *testing.T) {
	d := Dump(stdErrors.New("boom"))
	assert.Equal(t, "boom", d.TopMessage)
	assert.Empty(t, d.Code)
	assert.Empty(t, d.PG.Code)
	assert.Equal(t, ErrorDump{}, Dump(nil))
}
