package sqlgraph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codeError struct{ code string }

func (e codeError) Error() string { return "pq: duplicate key value violates unique constraint" }
func (e codeError) Code() string  { return e.code }

type numberError struct{ number uint16 }

func (e numberError) Error() string { return "mysql error" }
func (e numberError) Number() uint16 {
	return e.number
}

func TestIsUniqueConstraintErrorByCode(t *testing.T) {
	assert.True(t, IsUniqueConstraintError(codeError{code: pgUniqueViolation}))
	assert.False(t, IsUniqueConstraintError(codeError{code: pgForeignKeyViolation}))
}

func TestIsUniqueConstraintErrorByNumber(t *testing.T) {
	assert.True(t, IsUniqueConstraintError(numberError{number: mysqlDuplicateEntry}))
	assert.False(t, IsUniqueConstraintError(numberError{number: mysqlForeignKeyParent}))
}

func TestIsUniqueConstraintErrorByStringFallback(t *testing.T) {
	assert.True(t, IsUniqueConstraintError(errors.New("UNIQUE constraint failed: account.email")))
	assert.False(t, IsUniqueConstraintError(errors.New("syntax error near SELECT")))
}

func TestIsForeignKeyConstraintErrorByCode(t *testing.T) {
	assert.True(t, IsForeignKeyConstraintError(codeError{code: pgForeignKeyViolation}))
}

func TestIsForeignKeyConstraintErrorByStringFallback(t *testing.T) {
	assert.True(t, IsForeignKeyConstraintError(errors.New("FOREIGN KEY constraint failed")))
}

func TestIsCheckConstraintErrorByCode(t *testing.T) {
	assert.True(t, IsCheckConstraintError(codeError{code: pgCheckViolation}))
}

func TestIsUniqueConstraintErrorUnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("relgraph: seed account: %w", codeError{code: pgUniqueViolation})
	assert.True(t, IsUniqueConstraintError(wrapped))
}

func TestIsUniqueConstraintErrorNilIsFalse(t *testing.T) {
	assert.False(t, IsUniqueConstraintError(nil))
}
