package fifo

import (
	"iter"

	"github.com/PrismAIO/go-fifo/internal/forwardlist"
)

// Elem is an element of a Set. Like Pair, an Elem is handed out by
// reference and stays valid until it is deleted. Value must not be mutated
// through the pointer; it is the element's identity.
type Elem[V any] struct {
	Value V

	node *forwardlist.Node[*Elem[V]]
}

// Next returns the next element in insertion order, or nil after the last.
func (e *Elem[V]) Next() *Elem[V] {
	if n := e.node.Next(); n != nil {
		return n.Value
	}
	return nil
}

// Set is a hash set that iterates in the order values were first inserted.
// Duplicates are rejected: adding a value that is already present changes
// nothing, wherever the addition was aimed. The zero value is not usable;
// use NewSet, NewSetFunc or SetFrom.
type Set[V any] struct {
	eng      engine[V, *Elem[V]]
	newIndex func() index[V, *Elem[V]]
}

// NewSet creates an empty Set using the ambient hash and equality
// strategies for V, unless WithValueHash or WithValueEqual supply their
// own.
func NewSet[V comparable](options ...SetOption[V]) *Set[V] {
	var cfg setConfig[V]
	for _, option := range options {
		option(&cfg)
	}
	s := newSet[V](cfg.indexFactory())
	s.AddAll(cfg.initial...)
	return s
}

// NewSetFunc creates an empty Set of arbitrary (possibly non-comparable)
// value types, using the supplied hash and equality strategies. Both must
// be non-nil.
func NewSetFunc[V any](hash func(V) uint64, equal func(V, V) bool) *Set[V] {
	return newSet[V](func() index[V, *Elem[V]] {
		return newFuncIndex[V, *Elem[V]](hash, equal)
	})
}

// SetFrom creates a Set holding the values produced by seq, in sequence
// order, duplicates dropped.
func SetFrom[V comparable](seq iter.Seq[V]) *Set[V] {
	s := NewSet[V]()
	for v := range seq {
		s.Add(v)
	}
	return s
}

func newSet[V any](newIndex func() index[V, *Elem[V]]) *Set[V] {
	s := &Set[V]{newIndex: newIndex}
	s.eng = newEngine(newIndex(), func(e *Elem[V]) V { return e.Value })
	return s
}

// Add appends v unless it is already present, in which case nothing
// changes. It returns the live element for v and whether this call
// inserted it.
func (s *Set[V]) Add(v V) (*Elem[V], bool) {
	e := &Elem[V]{Value: v}
	n, inserted := s.eng.emplaceBack(v, e)
	if !inserted {
		return n.Value, false
	}
	e.node = n
	return e, true
}

// AddFront is Add at the other end: a new value becomes the first element
// in iteration order. An existing value is left untouched, wherever it is.
func (s *Set[V]) AddFront(v V) (*Elem[V], bool) {
	e := &Elem[V]{Value: v}
	n, inserted := s.eng.emplaceFront(v, e)
	if !inserted {
		return n.Value, false
	}
	e.node = n
	return e, true
}

// AddAll calls Add for each value, in order.
func (s *Set[V]) AddAll(vs ...V) {
	for _, v := range vs {
		s.Add(v)
	}
}

// Has reports whether v is present.
func (s *Set[V]) Has(v V) bool {
	return s.eng.find(v) != nil
}

// Find returns the live element equal to v, or nil. With a custom equality
// strategy this is how the canonical (first-inserted) representative of an
// equivalence class is retrieved.
func (s *Set[V]) Find(v V) *Elem[V] {
	n := s.eng.find(v)
	if n == nil {
		return nil
	}
	return n.Value
}

// Delete removes v and reports whether it was present. Deleting an absent
// value is a no-op.
func (s *Set[V]) Delete(v V) bool {
	_, ok := s.eng.erase(v)
	return ok
}

// Remove deletes the given element. It panics when e is not a live element
// of this set.
func (s *Set[V]) Remove(e *Elem[V]) {
	s.eng.eraseNode(e.node)
}

// MoveToBack moves v to the end of the iteration order.
func (s *Set[V]) MoveToBack(v V) error {
	node := s.eng.find(v)
	if node == nil {
		return &KeyNotFoundError[V]{v}
	}
	if node != s.eng.back {
		s.relinkAfter(node.Value, s.eng.back)
	}
	return nil
}

// MoveToFront moves v to the front of the iteration order.
func (s *Set[V]) MoveToFront(v V) error {
	node := s.eng.find(v)
	if node == nil {
		return &KeyNotFoundError[V]{v}
	}
	if node != s.eng.list.Front() {
		s.relinkAfter(node.Value, s.eng.list.Sentinel())
	}
	return nil
}

func (s *Set[V]) relinkAfter(e *Elem[V], at *forwardlist.Node[*Elem[V]]) {
	pred, _ := s.eng.idx.get(e.Value)
	s.eng.eraseAfter(e.Value, pred)
	e.node = s.eng.insertAfter(at, e.Value, e)
}

// Len returns the number of elements. A nil set has length zero.
func (s *Set[V]) Len() int {
	if s == nil {
		return 0
	}
	return s.eng.len()
}

// Empty reports whether the set holds no elements.
func (s *Set[V]) Empty() bool {
	return s.Len() == 0
}

// Clear removes all elements.
func (s *Set[V]) Clear() {
	s.eng.clear()
}

// Oldest returns the first-inserted element, or nil.
func (s *Set[V]) Oldest() *Elem[V] {
	if s == nil {
		return nil
	}
	if n := s.eng.list.Front(); n != nil {
		return n.Value
	}
	return nil
}

// Newest returns the last-inserted element, or nil.
func (s *Set[V]) Newest() *Elem[V] {
	if s == nil || s.eng.empty() {
		return nil
	}
	return s.eng.back.Value
}

// All returns an iterator over all values in insertion order.
func (s *Set[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		if s == nil {
			return
		}
		for n := s.eng.list.Front(); n != nil; n = n.Next() {
			if !yield(n.Value.Value) {
				return
			}
		}
	}
}

// Clone returns a new set holding the same values in the same order, built
// with the same strategies.
func (s *Set[V]) Clone() *Set[V] {
	out := newSet[V](s.newIndex)
	for v := range s.All() {
		out.Add(v)
	}
	return out
}
