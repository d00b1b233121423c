package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}

	assert.True(t, IsSerializationFailure(serialization))
	assert.True(t, IsSerializationFailure(fmt.Errorf("commit transaction: %w", serialization)),
		"%%w-wrapped chains stay recognizable")

	// %v flattens the chain to text; callers that wrap driver errors this
	// way must check the code first and pass the error through instead.
	assert.False(t, IsSerializationFailure(fmt.Errorf("execute insert: %v", serialization)))

	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("connection refused")))
	assert.False(t, IsSerializationFailure(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pq.Error{Code: "23505"}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("execute insert: %w", unique)))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "40001"}))
	assert.False(t, IsUniqueViolation(nil))
}
