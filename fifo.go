// Package fifo provides generic associative containers that combine
// O(1)-average lookup, insertion and deletion with iteration in strict
// insertion order.
//
// Map[K, V] and Set[V] behave like a built-in map and a map-backed set,
// except that traversal always replays the order in which identities were
// first inserted. Internally both are a singly-linked order list plus a
// hash index that maps each identity to the list position immediately
// before its node; see the package's engine for details.
//
// Containers are not safe for concurrent use, exactly like built-in maps.
package fifo

import (
	"fmt"
	"hash/maphash"
)

const nilStrategyMessage = "fifo: hash and equal functions must be non-nil"

// KeyNotFoundError is returned by checked accessors and move operations
// when the named identity is not in the container.
type KeyNotFoundError[K any] struct {
	MissingKey K
}

func (e *KeyNotFoundError[K]) Error() string {
	return fmt.Sprintf("missing key: %v", e.MissingKey)
}

var hashSeed = maphash.MakeSeed()

// comparableHash is the ambient default hash strategy, used when a caller
// supplies an equality function without a matching hash function.
func comparableHash[K comparable]() func(K) uint64 {
	return func(k K) uint64 {
		return maphash.Comparable(hashSeed, k)
	}
}
