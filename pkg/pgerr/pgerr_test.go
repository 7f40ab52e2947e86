package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	unique := &pq.Error{Code: CodeUniqueViolation, Constraint: "users_phone_number_key"}
	exclusion := fmt.Errorf("insert: %w", &pq.Error{Code: CodeExclusionViolation})
	fk := &pq.Error{Code: CodeForeignKey}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsExclusionViolation(unique))
	assert.True(t, IsExclusionViolation(exclusion), "wrapped errors are unwrapped")
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
	assert.False(t, IsUniqueViolation(nil))

	assert.Equal(t, "users_phone_number_key", Constraint(unique))
	assert.Empty(t, Constraint(errors.New("plain")))
}
