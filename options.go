package fifo

// Options are collected into a config before the container is built, so
// strategy options take effect regardless of their position in the list.

// Option configures a Map created by New.
type Option[K comparable, V any] func(*mapConfig[K, V])

type mapConfig[K comparable, V any] struct {
	hash    func(K) uint64
	equal   func(K, K) bool
	initial []Pair[K, V]
}

// WithHash supplies a custom hash strategy for keys. Supplying either
// strategy moves the index off the built-in map; the missing half defaults
// to the ambient strategy for the key type.
func WithHash[K comparable, V any](hash func(K) uint64) Option[K, V] {
	if hash == nil {
		panic(nilStrategyMessage)
	}
	return func(c *mapConfig[K, V]) {
		c.hash = hash
	}
}

// WithEqual supplies a custom equality strategy for keys.
func WithEqual[K comparable, V any](equal func(K, K) bool) Option[K, V] {
	if equal == nil {
		panic(nilStrategyMessage)
	}
	return func(c *mapConfig[K, V]) {
		c.equal = equal
	}
}

// WithInitialData adds the given pairs, in order, to the new map.
func WithInitialData[K comparable, V any](pairs ...Pair[K, V]) Option[K, V] {
	return func(c *mapConfig[K, V]) {
		c.initial = append(c.initial, pairs...)
	}
}

func (c *mapConfig[K, V]) indexFactory() func() index[K, *Pair[K, V]] {
	if c.hash == nil && c.equal == nil {
		return func() index[K, *Pair[K, V]] {
			return newBuiltinIndex[K, *Pair[K, V]]()
		}
	}
	hash, equal := c.hash, c.equal
	if hash == nil {
		hash = comparableHash[K]()
	}
	if equal == nil {
		equal = func(a, b K) bool { return a == b }
	}
	return func() index[K, *Pair[K, V]] {
		return newFuncIndex[K, *Pair[K, V]](hash, equal)
	}
}

// SetOption configures a Set created by NewSet.
type SetOption[V comparable] func(*setConfig[V])

type setConfig[V comparable] struct {
	hash    func(V) uint64
	equal   func(V, V) bool
	initial []V
}

// WithValueHash supplies a custom hash strategy for set values.
func WithValueHash[V comparable](hash func(V) uint64) SetOption[V] {
	if hash == nil {
		panic(nilStrategyMessage)
	}
	return func(c *setConfig[V]) {
		c.hash = hash
	}
}

// WithValueEqual supplies a custom equality strategy for set values.
func WithValueEqual[V comparable](equal func(V, V) bool) SetOption[V] {
	if equal == nil {
		panic(nilStrategyMessage)
	}
	return func(c *setConfig[V]) {
		c.equal = equal
	}
}

// WithInitialValues adds the given values, in order, to the new set.
func WithInitialValues[V comparable](vs ...V) SetOption[V] {
	return func(c *setConfig[V]) {
		c.initial = append(c.initial, vs...)
	}
}

func (c *setConfig[V]) indexFactory() func() index[V, *Elem[V]] {
	if c.hash == nil && c.equal == nil {
		return func() index[V, *Elem[V]] {
			return newBuiltinIndex[V, *Elem[V]]()
		}
	}
	hash, equal := c.hash, c.equal
	if hash == nil {
		hash = comparableHash[V]()
	}
	if equal == nil {
		equal = func(a, b V) bool { return a == b }
	}
	return func() index[V, *Elem[V]] {
		return newFuncIndex[V, *Elem[V]](hash, equal)
	}
}
