package fifo

import (
	"iter"

	"github.com/PrismAIO/go-fifo/internal/forwardlist"
)

// Pair is a key/value entry of a Map. Pairs are handed out by reference
// and remain valid until their entry is deleted; deleting one entry never
// invalidates the others. Value may be mutated freely through the pointer;
// Key must not be (it is what the index hashes).
type Pair[K, V any] struct {
	Key   K
	Value V

	node *forwardlist.Node[*Pair[K, V]]
}

// Next returns the next pair in insertion order, or nil after the last.
func (p *Pair[K, V]) Next() *Pair[K, V] {
	if n := p.node.Next(); n != nil {
		return n.Value
	}
	return nil
}

// Map is a hash map that iterates in the order keys were first inserted.
// It is a drop-in replacement for a built-in map wherever deterministic,
// replayable traversal order matters. The zero value is not usable; use
// New, NewFunc or From. Like built-in maps, a Map is not safe for
// concurrent use.
type Map[K, V any] struct {
	eng      engine[K, *Pair[K, V]]
	newIndex func() index[K, *Pair[K, V]]
}

// New creates an empty Map using the ambient hash and equality strategies
// for K, unless WithHash or WithEqual supply their own.
func New[K comparable, V any](options ...Option[K, V]) *Map[K, V] {
	var cfg mapConfig[K, V]
	for _, option := range options {
		option(&cfg)
	}
	m := newMap[K, V](cfg.indexFactory())
	m.AddPairs(cfg.initial...)
	return m
}

// NewFunc creates an empty Map keyed by arbitrary (possibly
// non-comparable) key types, using the supplied hash and equality
// strategies. Both must be non-nil.
func NewFunc[K, V any](hash func(K) uint64, equal func(K, K) bool) *Map[K, V] {
	return newMap[K, V](func() index[K, *Pair[K, V]] {
		return newFuncIndex[K, *Pair[K, V]](hash, equal)
	})
}

// From creates a Map holding the pairs produced by seq, in sequence order.
func From[K comparable, V any](seq iter.Seq2[K, V]) *Map[K, V] {
	m := New[K, V]()
	for k, v := range seq {
		m.Set(k, v)
	}
	return m
}

func newMap[K, V any](newIndex func() index[K, *Pair[K, V]]) *Map[K, V] {
	m := &Map[K, V]{newIndex: newIndex}
	m.eng = newEngine(newIndex(), func(p *Pair[K, V]) K { return p.Key })
	return m
}

// Add appends a new pair for key unless the key is already present, in
// which case nothing changes. It returns the live pair for key and whether
// this call inserted it.
func (m *Map[K, V]) Add(key K, value V) (*Pair[K, V], bool) {
	p := &Pair[K, V]{Key: key, Value: value}
	n, inserted := m.eng.emplaceBack(key, p)
	if !inserted {
		return n.Value, false
	}
	p.node = n
	return p, true
}

// AddFront is Add at the other end: a new key becomes the first pair in
// iteration order. An existing key is left untouched, wherever it is.
func (m *Map[K, V]) AddFront(key K, value V) (*Pair[K, V], bool) {
	p := &Pair[K, V]{Key: key, Value: value}
	n, inserted := m.eng.emplaceFront(key, p)
	if !inserted {
		return n.Value, false
	}
	p.node = n
	return p, true
}

// Set maps key to value. An existing pair is updated in place and keeps
// its position; a new pair is appended. It returns the previous value, if
// any.
func (m *Map[K, V]) Set(key K, value V) (oldValue V, present bool) {
	if p := m.GetPair(key); p != nil {
		oldValue, p.Value = p.Value, value
		return oldValue, true
	}
	m.Add(key, value)
	return
}

// AddPairs calls Set for each pair, in order.
func (m *Map[K, V]) AddPairs(pairs ...Pair[K, V]) {
	for _, pair := range pairs {
		m.Set(pair.Key, pair.Value)
	}
}

// Get returns the value mapped to key, and whether the key is present.
func (m *Map[K, V]) Get(key K) (value V, present bool) {
	if p := m.GetPair(key); p != nil {
		return p.Value, true
	}
	return
}

// Value returns the value mapped to key, or the zero value.
func (m *Map[K, V]) Value(key K) (value V) {
	value, _ = m.Get(key)
	return
}

// GetPair returns the live pair for key, or nil.
func (m *Map[K, V]) GetPair(key K) *Pair[K, V] {
	n := m.eng.find(key)
	if n == nil {
		return nil
	}
	return n.Value
}

// At returns the value mapped to key, or a KeyNotFoundError.
func (m *Map[K, V]) At(key K) (V, error) {
	p := m.GetPair(key)
	if p == nil {
		var zero V
		return zero, &KeyNotFoundError[K]{key}
	}
	return p.Value, nil
}

// Entry returns the live pair for key, appending one holding the zero
// value first if the key is absent. It never returns nil; m.Entry(k).Value
// is the moral equivalent of an addressable m[k].
func (m *Map[K, V]) Entry(key K) *Pair[K, V] {
	if p := m.GetPair(key); p != nil {
		return p
	}
	var zero V
	p, _ := m.Add(key, zero)
	return p
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	return m.eng.find(key) != nil
}

// Delete removes the pair for key, if any, and returns its value. Deleting
// an absent key is a no-op.
func (m *Map[K, V]) Delete(key K) (value V, present bool) {
	p, ok := m.eng.erase(key)
	if !ok {
		return
	}
	return p.Value, true
}

// Remove deletes the given pair. It panics when p is not a live pair of
// this map, matching the fail-fast contract of deleting a foreign handle.
func (m *Map[K, V]) Remove(p *Pair[K, V]) {
	m.eng.eraseNode(p.node)
}

// Len returns the number of pairs. A nil map has length zero.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.eng.len()
}

// Empty reports whether the map holds no pairs.
func (m *Map[K, V]) Empty() bool {
	return m.Len() == 0
}

// Clear removes all pairs.
func (m *Map[K, V]) Clear() {
	m.eng.clear()
}

// Oldest returns the first-inserted pair, or nil.
func (m *Map[K, V]) Oldest() *Pair[K, V] {
	if m == nil {
		return nil
	}
	if n := m.eng.list.Front(); n != nil {
		return n.Value
	}
	return nil
}

// Newest returns the last-inserted pair, or nil. O(1) via the cached tail
// position.
func (m *Map[K, V]) Newest() *Pair[K, V] {
	if m == nil || m.eng.empty() {
		return nil
	}
	return m.eng.back.Value
}

// All returns an iterator over all pairs in insertion order. Pairs
// appended during iteration are visited; deleting the pair currently being
// visited ends the iteration there.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for n := m.eng.list.Front(); n != nil; n = n.Next() {
			if !yield(n.Value.Key, n.Value.Value) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys in insertion order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over the values in insertion order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Clone returns a new map holding the same pairs in the same order, built
// with the same strategies. Pairs are re-inserted one by one: index
// entries point into per-instance node storage and cannot be shared.
func (m *Map[K, V]) Clone() *Map[K, V] {
	out := newMap[K, V](m.newIndex)
	for k, v := range m.All() {
		out.Add(k, v)
	}
	return out
}

// relinkAfter moves p's node so that it directly follows at. at must
// remain linked after p is unlinked, i.e. it must not be p's own node.
func (m *Map[K, V]) relinkAfter(p *Pair[K, V], at *forwardlist.Node[*Pair[K, V]]) {
	pred, _ := m.eng.idx.get(p.Key)
	m.eng.eraseAfter(p.Key, pred)
	p.node = m.eng.insertAfter(at, p.Key, p)
}

// MoveAfter moves the pair for key to the position right after the pair
// for mark. It returns a KeyNotFoundError if either key is absent.
func (m *Map[K, V]) MoveAfter(key, mark K) error {
	markNode := m.eng.find(mark)
	if markNode == nil {
		return &KeyNotFoundError[K]{mark}
	}
	node := m.eng.find(key)
	if node == nil {
		return &KeyNotFoundError[K]{key}
	}
	if node == markNode {
		return nil
	}
	m.relinkAfter(node.Value, markNode)
	return nil
}

// MoveBefore moves the pair for key to the position right before the pair
// for mark. It returns a KeyNotFoundError if either key is absent.
func (m *Map[K, V]) MoveBefore(key, mark K) error {
	markNode := m.eng.find(mark)
	if markNode == nil {
		return &KeyNotFoundError[K]{mark}
	}
	node := m.eng.find(key)
	if node == nil {
		return &KeyNotFoundError[K]{key}
	}
	if node == markNode {
		return nil
	}
	p := node.Value
	pred, _ := m.eng.idx.get(key)
	m.eng.eraseAfter(key, pred)
	// Look the mark's predecessor up only now: unlinking key may have
	// made it the mark's new predecessor's position.
	markPred, _ := m.eng.idx.get(mark)
	p.node = m.eng.insertAfter(markPred, key, p)
	return nil
}

// MoveToBack moves the pair for key to the end of the iteration order.
func (m *Map[K, V]) MoveToBack(key K) error {
	node := m.eng.find(key)
	if node == nil {
		return &KeyNotFoundError[K]{key}
	}
	if node != m.eng.back {
		m.relinkAfter(node.Value, m.eng.back)
	}
	return nil
}

// MoveToFront moves the pair for key to the front of the iteration order.
func (m *Map[K, V]) MoveToFront(key K) error {
	node := m.eng.find(key)
	if node == nil {
		return &KeyNotFoundError[K]{key}
	}
	if node != m.eng.list.Front() {
		m.relinkAfter(node.Value, m.eng.list.Sentinel())
	}
	return nil
}

// GetAndMoveToBack returns the value for key after moving its pair to the
// end of the iteration order.
func (m *Map[K, V]) GetAndMoveToBack(key K) (V, error) {
	if err := m.MoveToBack(key); err != nil {
		var zero V
		return zero, err
	}
	return m.eng.back.Value.Value, nil
}

// GetAndMoveToFront returns the value for key after moving its pair to the
// front of the iteration order.
func (m *Map[K, V]) GetAndMoveToFront(key K) (V, error) {
	if err := m.MoveToFront(key); err != nil {
		var zero V
		return zero, err
	}
	return m.eng.list.Front().Value.Value, nil
}

// InsertAfter places the pair for key directly after the pair for mark,
// setting its value. An existing key is moved there and updated; an absent
// mark degrades to Set. It returns the live pair for key.
func (m *Map[K, V]) InsertAfter(mark, key K, value V) *Pair[K, V] {
	markNode := m.eng.find(mark)
	if markNode == nil {
		m.Set(key, value)
		return m.GetPair(key)
	}
	if p := m.GetPair(key); p != nil {
		p.Value = value
		if p.node != markNode {
			m.relinkAfter(p, markNode)
		}
		return p
	}
	p := &Pair[K, V]{Key: key, Value: value}
	p.node = m.eng.insertAfter(markNode, key, p)
	return p
}

// InsertBefore places the pair for key directly before the pair for mark,
// setting its value. An existing key is moved there and updated; an absent
// mark degrades to Set. It returns the live pair for key.
func (m *Map[K, V]) InsertBefore(mark, key K, value V) *Pair[K, V] {
	markPred, ok := m.eng.idx.get(mark)
	if !ok {
		m.Set(key, value)
		return m.GetPair(key)
	}
	if p := m.GetPair(key); p != nil {
		p.Value = value
		// no move when key == mark or when key already sits right
		// before mark
		if markPred.Next() != p.node && markPred != p.node {
			pred, _ := m.eng.idx.get(key)
			m.eng.eraseAfter(key, pred)
			markPred, _ = m.eng.idx.get(mark)
			p.node = m.eng.insertAfter(markPred, key, p)
		}
		return p
	}
	p := &Pair[K, V]{Key: key, Value: value}
	p.node = m.eng.insertAfter(markPred, key, p)
	return p
}

// Replace substitutes newKey for oldKey without moving the entry: the pair
// keeps its position in the iteration order and takes the new key and
// value. A pair already held under newKey elsewhere is deleted first. An
// absent oldKey degrades to Set. It returns the live pair for newKey.
func (m *Map[K, V]) Replace(oldKey, newKey K, value V) *Pair[K, V] {
	p := m.GetPair(oldKey)
	if p == nil {
		m.Set(newKey, value)
		return m.GetPair(newKey)
	}
	if existing := m.GetPair(newKey); existing != nil {
		if existing == p {
			p.Value = value
			return p
		}
		m.Delete(newKey)
	}
	// Rebind the index entry in place; the node never moves, so neither
	// the successor's entry nor the tail needs repair.
	pred, _ := m.eng.idx.get(oldKey)
	m.eng.idx.delete(oldKey)
	p.Key = newKey
	p.Value = value
	m.eng.idx.set(newKey, pred)
	return p
}

// Filter deletes every pair the keep function rejects, preserving the
// order of the rest.
func (m *Map[K, V]) Filter(keep func(key K, value V) bool) {
	pred := m.eng.list.Sentinel()
	for {
		n := pred.Next()
		if n == nil {
			return
		}
		if keep(n.Value.Key, n.Value.Value) {
			pred = n
		} else {
			m.eng.eraseAfter(n.Value.Key, pred)
		}
	}
}
