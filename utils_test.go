package fifo

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertLenEqual[K comparable, V any](t *testing.T, m *Map[K, V], length int) {
	t.Helper()

	assert.Equal(t, length, m.Len())

	// the index and the order list must agree
	count := 0
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		count++
	}
	assert.Equal(t, length, count)
}

func assertOrderedPairsEqual[K comparable, V any](t *testing.T, m *Map[K, V], expectedKeys []K, expectedValues []V) {
	t.Helper()

	require.Equal(t, len(expectedKeys), len(expectedValues))
	assertLenEqual(t, m, len(expectedKeys))

	i := 0
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		require.Less(t, i, len(expectedKeys))
		assert.Equal(t, expectedKeys[i], pair.Key)
		assert.Equal(t, expectedValues[i], pair.Value)
		i++
	}
}

func assertOrderedValuesEqual[V comparable](t *testing.T, s *Set[V], expected []V) {
	t.Helper()

	assert.Equal(t, len(expected), s.Len())

	var got []V
	for elem := s.Oldest(); elem != nil; elem = elem.Next() {
		got = append(got, elem.Value)
	}
	assert.Equal(t, expected, got)
}

func randomHexString(t *testing.T, length int) string {
	t.Helper()

	b := length / 2
	randBytes := make([]byte, b)

	if n, err := rand.Read(randBytes); err != nil || n != b {
		t.Fatalf("failed to generate %d random bytes: %v", b, err)
	}

	return hex.EncodeToString(randBytes)
}
