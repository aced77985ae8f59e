package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDPrefixAndUniqueness(t *testing.T) {
	g := NewIDGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := g.NewID("tr")
		assert.True(t, strings.HasPrefix(id, "tr_"))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewIdempotencyKeyShape(t *testing.T) {
	g := NewIDGenerator()

	key := g.NewIdempotencyKey("ord")
	parts := strings.Split(key, "_")
	assert.Len(t, parts, 3)
	assert.Equal(t, "ord", parts[0])
	assert.Len(t, parts[2], 8)
}

func TestNewIdempotencyKeyCollisionResistance(t *testing.T) {
	g := NewIDGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		key := g.NewIdempotencyKey("ord")
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}
