package fifo

import "github.com/PrismAIO/go-fifo/internal/forwardlist"

// index maps an identity to the order-list position immediately before the
// node holding it. Storing the predecessor rather than the node itself is
// what keeps every mutation O(1): the order list can only insert and erase
// after a given position.
type index[K, E any] interface {
	get(id K) (*forwardlist.Node[E], bool)
	set(id K, pred *forwardlist.Node[E])
	delete(id K)
	len() int
	clear()
}

// builtinIndex is the default strategy: a built-in map keyed directly by
// the identity, i.e. Go's ambient hash and equality for comparable types.
type builtinIndex[K comparable, E any] struct {
	m map[K]*forwardlist.Node[E]
}

func newBuiltinIndex[K comparable, E any]() *builtinIndex[K, E] {
	return &builtinIndex[K, E]{m: make(map[K]*forwardlist.Node[E])}
}

func (x *builtinIndex[K, E]) get(id K) (*forwardlist.Node[E], bool) {
	pred, ok := x.m[id]
	return pred, ok
}

func (x *builtinIndex[K, E]) set(id K, pred *forwardlist.Node[E]) {
	x.m[id] = pred
}

func (x *builtinIndex[K, E]) delete(id K) {
	delete(x.m, id)
}

func (x *builtinIndex[K, E]) len() int {
	return len(x.m)
}

func (x *builtinIndex[K, E]) clear() {
	clear(x.m)
}

// funcIndex is the caller-supplied-strategy index: identities are bucketed
// by their hash and resolved within a bucket by the equality function. It
// also serves identity types that are not comparable at all.
type funcIndex[K, E any] struct {
	hash    func(K) uint64
	equal   func(K, K) bool
	buckets map[uint64][]funcEntry[K, E]
	n       int
}

type funcEntry[K, E any] struct {
	id   K
	pred *forwardlist.Node[E]
}

func newFuncIndex[K, E any](hash func(K) uint64, equal func(K, K) bool) *funcIndex[K, E] {
	if hash == nil || equal == nil {
		panic(nilStrategyMessage)
	}
	return &funcIndex[K, E]{
		hash:    hash,
		equal:   equal,
		buckets: make(map[uint64][]funcEntry[K, E]),
	}
}

func (x *funcIndex[K, E]) get(id K) (*forwardlist.Node[E], bool) {
	for _, entry := range x.buckets[x.hash(id)] {
		if x.equal(entry.id, id) {
			return entry.pred, true
		}
	}
	return nil, false
}

func (x *funcIndex[K, E]) set(id K, pred *forwardlist.Node[E]) {
	h := x.hash(id)
	bucket := x.buckets[h]
	for i, entry := range bucket {
		if x.equal(entry.id, id) {
			bucket[i].pred = pred
			return
		}
	}
	x.buckets[h] = append(bucket, funcEntry[K, E]{id: id, pred: pred})
	x.n++
}

func (x *funcIndex[K, E]) delete(id K) {
	h := x.hash(id)
	bucket := x.buckets[h]
	for i, entry := range bucket {
		if x.equal(entry.id, id) {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			if len(bucket) == 0 {
				delete(x.buckets, h)
			} else {
				x.buckets[h] = bucket
			}
			x.n--
			return
		}
	}
}

func (x *funcIndex[K, E]) len() int {
	return x.n
}

func (x *funcIndex[K, E]) clear() {
	clear(x.buckets)
	x.n = 0
}
