package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merahputih/kafepos/internal/core"
)

func TestIsLockFailure(t *testing.T) {
	assert.True(t, IsLockFailure(&pgconn.PgError{Code: "40P01"}))
	assert.True(t, IsLockFailure(&pgconn.PgError{Code: "55P03"}))
	assert.False(t, IsLockFailure(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsLockFailure(errors.New("boom")))
	assert.False(t, IsLockFailure(nil))

	// tetap terdeteksi setelah dibungkus
	wrapped := fmt.Errorf("update materials: %w", &pgconn.PgError{Code: "40P01"})
	assert.True(t, IsLockFailure(wrapped))
}

func TestMarkTransient(t *testing.T) {
	deadlock := &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}
	err := MarkTransient(deadlock)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTransient)

	timeout := MarkTransient(&pgconn.PgError{Code: "55P03"})
	assert.ErrorIs(t, timeout, core.ErrTransient)

	// error lain tidak ikut ditandai transient
	plain := errors.New("boom")
	assert.Equal(t, plain, MarkTransient(plain))
	fk := &pgconn.PgError{Code: "23503"}
	assert.NotErrorIs(t, MarkTransient(fk), core.ErrTransient)
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
}
