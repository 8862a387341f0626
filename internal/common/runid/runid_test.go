package runid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := New()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	assert.NotEqual(t, id, New())
}
