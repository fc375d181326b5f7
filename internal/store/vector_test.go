package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorRoundTrip(t *testing.T) {
	original := []float32{0.5, -1.25, 3.14159, 0, 1e-7}

	blob := SerializeVector(original)
	assert.Len(t, blob, len(original)*4)
	assert.Equal(t, original, DeserializeVector(blob))
}

func TestVectorEmpty(t *testing.T) {
	assert.Empty(t, DeserializeVector(SerializeVector(nil)))
	assert.Empty(t, DeserializeVector(nil))
}
