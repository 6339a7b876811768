package store

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// Integration tests against a live database live in the *_integration_test.go
// pattern; these cover the error mapping and schema invariants.

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unique violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "applications_link_key"},
			want: true,
		},
		{
			name: "wrapped unique violation",
			err:  fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}),
			want: true,
		},
		{
			name: "other pg error",
			err:  &pgconn.PgError{Code: "23502"},
			want: false,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("connection refused"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusSubmitted, StatusProcessing, StatusFailed, StatusHired} {
		assert.True(t, s.Valid(), "status %q should be valid", s)
	}
	assert.False(t, Status("Apply").Valid())
	assert.False(t, Status("").Valid())
}

func TestSchemaEnforcesLinkUniqueness(t *testing.T) {
	// The UNIQUE constraint is the safety mechanism, not the Exists pre-check.
	assert.Contains(t, schemaSQL, "link         TEXT NOT NULL UNIQUE")
}
