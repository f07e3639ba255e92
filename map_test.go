package fifo

import (
	"bytes"
	"hash/fnv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	om := New[string, int]()

	pair, inserted := om.Add("a", 1)
	require.NotNil(t, pair)
	assert.True(t, inserted)
	assert.Equal(t, "a", pair.Key)
	assert.Equal(t, 1, pair.Value)

	// adding an existing key mutates nothing: same pair, same value, same order
	again, inserted := om.Add("a", 28)
	assert.False(t, inserted)
	assert.Same(t, pair, again)
	assert.Equal(t, 1, again.Value)
	assertLenEqual(t, om, 1)

	om.Add("b", 2)
	om.Add("c", 3)
	om.Add("a", 100)

	assertOrderedPairsEqual(t, om,
		[]string{"a", "b", "c"},
		[]int{1, 2, 3})
}

func TestAddFront(t *testing.T) {
	om := New[string, int]()

	// front insertion into an empty map also establishes the tail
	pair, inserted := om.AddFront("c", 3)
	assert.True(t, inserted)
	assert.Equal(t, "c", om.Newest().Key)
	assert.Same(t, pair, om.Oldest())

	om.Add("d", 4)
	om.AddFront("b", 2)
	om.AddFront("a", 1)

	// an existing key stays where it is
	_, inserted = om.AddFront("d", 100)
	assert.False(t, inserted)

	assertOrderedPairsEqual(t, om,
		[]string{"a", "b", "c", "d"},
		[]int{1, 2, 3, 4})

	// the previously-first pair must still be erasable: its index entry
	// was rebound when a new pair was pushed in front of it
	value, present := om.Delete("b")
	assert.True(t, present)
	assert.Equal(t, 2, value)
	assertOrderedPairsEqual(t, om,
		[]string{"a", "c", "d"},
		[]int{1, 3, 4})
}

func TestEraseReinsertAppends(t *testing.T) {
	om := New[string, int]()
	om.Add("a", 1)
	om.Add("b", 2)
	om.Add("c", 3)

	om.Delete("b")
	om.Add("b", 2)

	assertOrderedPairsEqual(t, om,
		[]string{"a", "c", "b"},
		[]int{1, 3, 2})
}

func TestAt(t *testing.T) {
	om := New[string, int]()
	om.Set("k", 1)

	value, err := om.At("k")
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	om.Delete("k")
	_, err = om.At("k")
	assert.Equal(t, &KeyNotFoundError[string]{"k"}, err)
	assert.EqualError(t, err, "missing key: k")
}

func TestEntry(t *testing.T) {
	om := New[string, int]()

	// absent key: a zero-valued pair is appended
	om.Entry("k").Value = 1
	value, err := om.At("k")
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	// present key: the same live pair comes back
	assert.Same(t, om.GetPair("k"), om.Entry("k"))
	assert.Equal(t, 1, om.Entry("k").Value)

	om.Entry("zero")
	assert.Equal(t, 0, om.Value("zero"))
	assertOrderedPairsEqual(t, om,
		[]string{"k", "zero"},
		[]int{1, 0})
}

func TestHas(t *testing.T) {
	om := New[int, string]()
	om.Set(1, "one")

	assert.True(t, om.Has(1))
	assert.False(t, om.Has(2))

	om.Delete(1)
	assert.False(t, om.Has(1))
}

func TestRemove(t *testing.T) {
	om := New[string, int]()
	a, _ := om.Add("a", 1)
	b, _ := om.Add("b", 2)
	c, _ := om.Add("c", 3)

	om.Remove(b)
	assertOrderedPairsEqual(t, om,
		[]string{"a", "c"},
		[]int{1, 3})

	// deleting one pair leaves the other handles usable
	om.Remove(c)
	om.Remove(a)
	assertLenEqual(t, om, 0)

	t.Run("removing a deleted pair panics", func(t *testing.T) {
		om := New[string, int]()
		p, _ := om.Add("a", 1)
		om.Delete("a")

		assert.Panics(t, func() { om.Remove(p) })
	})

	t.Run("removing a stale handle panics after reinsertion", func(t *testing.T) {
		om := New[string, int]()
		p, _ := om.Add("a", 1)
		om.Delete("a")
		om.Add("a", 2)

		// the key exists again, but in a different node
		assert.Panics(t, func() { om.Remove(p) })
	})

	t.Run("removing a foreign pair panics", func(t *testing.T) {
		om := New[string, int]()
		other := New[string, int]()
		om.Add("a", 1)
		p, _ := other.Add("a", 1)

		assert.Panics(t, func() { om.Remove(p) })
	})
}

func TestClear(t *testing.T) {
	om := New[string, int]()
	om.Set("a", 1)
	om.Set("b", 2)

	om.Clear()

	assertLenEqual(t, om, 0)
	assert.True(t, om.Empty())
	assert.Nil(t, om.Oldest())
	assert.Nil(t, om.Newest())

	// the cleared map must be fully usable, tail cursor included
	om.Set("c", 3)
	om.Set("a", 1)
	assertOrderedPairsEqual(t, om,
		[]string{"c", "a"},
		[]int{3, 1})
}

func TestClone(t *testing.T) {
	om := New[string, int]()
	om.Set("a", 1)
	om.Set("b", 2)
	om.Set("c", 3)

	clone := om.Clone()
	assertOrderedPairsEqual(t, clone,
		[]string{"a", "b", "c"},
		[]int{1, 2, 3})

	// the clone owns distinct pairs
	assert.NotSame(t, om.GetPair("a"), clone.GetPair("a"))

	// and mutating either side leaves the other alone
	om.Delete("b")
	clone.Set("d", 4)
	assertOrderedPairsEqual(t, om,
		[]string{"a", "c"},
		[]int{1, 3})
	assertOrderedPairsEqual(t, clone,
		[]string{"a", "b", "c", "d"},
		[]int{1, 2, 3, 4})
}

func hashFoldedString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(s)))
	return h.Sum64()
}

func TestCustomStrategies(t *testing.T) {
	t.Run("case-insensitive keys", func(t *testing.T) {
		om := New[string, int](
			WithHash[string, int](hashFoldedString),
			WithEqual[string, int](strings.EqualFold),
		)

		om.Set("Content-Type", 1)
		_, inserted := om.Add("content-type", 2)
		assert.False(t, inserted)
		assertLenEqual(t, om, 1)

		// lookups fold case, the stored key keeps its original shape
		assert.True(t, om.Has("CONTENT-TYPE"))
		assert.Equal(t, "Content-Type", om.GetPair("content-TYPE").Key)

		value, present := om.Delete("CONTENT-type")
		assert.True(t, present)
		assert.Equal(t, 1, value)
		assertLenEqual(t, om, 0)
	})

	t.Run("degenerate hash still behaves", func(t *testing.T) {
		// a constant hash funnels every key into one bucket; correctness
		// must not depend on distribution
		om := New[int, int](WithHash[int, int](func(int) uint64 { return 42 }))

		for i := 0; i < 100; i++ {
			om.Set(i, i*i)
		}
		assertLenEqual(t, om, 100)

		for i := 0; i < 100; i += 2 {
			om.Delete(i)
		}
		assertLenEqual(t, om, 50)

		i := 1
		for pair := om.Oldest(); pair != nil; pair = pair.Next() {
			assert.Equal(t, i, pair.Key)
			assert.Equal(t, i*i, pair.Value)
			i += 2
		}

		om.Clear()
		assertLenEqual(t, om, 0)
	})

	t.Run("clone preserves strategies", func(t *testing.T) {
		om := New[string, int](
			WithHash[string, int](hashFoldedString),
			WithEqual[string, int](strings.EqualFold),
		)
		om.Set("Foo", 1)

		clone := om.Clone()
		assert.True(t, clone.Has("FOO"))
	})
}

func TestNewFunc(t *testing.T) {
	hashBytes := func(b []byte) uint64 {
		h := fnv.New64a()
		_, _ = h.Write(b)
		return h.Sum64()
	}

	// []byte is not comparable; only NewFunc can key a map by it
	om := NewFunc[[]byte, string](hashBytes, bytes.Equal)

	om.Add([]byte("alpha"), "a")
	om.Add([]byte("beta"), "b")
	om.Add([]byte("alpha"), "dup")

	assert.Equal(t, 2, om.Len())
	assert.Equal(t, "a", om.Value([]byte("alpha")))

	var keys []string
	for k := range om.Keys() {
		keys = append(keys, string(k))
	}
	assert.Equal(t, []string{"alpha", "beta"}, keys)

	om.Delete([]byte("alpha"))
	assert.False(t, om.Has([]byte("alpha")))
	assert.Equal(t, 1, om.Len())

	t.Run("nil strategies panic", func(t *testing.T) {
		assert.PanicsWithValue(t, nilStrategyMessage, func() {
			NewFunc[[]byte, string](nil, bytes.Equal)
		})
		assert.PanicsWithValue(t, nilStrategyMessage, func() {
			NewFunc[[]byte, string](hashBytes, nil)
		})
	})
}

func TestMapExample(t *testing.T) {
	// m[k]=1 on an empty map creates k; at(k) then returns 1; after
	// erasing k, at(k) fails again
	m := New[string, int]()

	m.Entry("k").Value = 1

	v, err := m.At("k")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	m.Delete("k")

	_, err = m.At("k")
	var missing *KeyNotFoundError[string]
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "k", missing.MissingKey)
}
