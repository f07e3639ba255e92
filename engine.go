package fifo

import "github.com/PrismAIO/go-fifo/internal/forwardlist"

// engine is the ordered hash-indexed container shared by both facades: a
// singly-linked order list, a predecessor index and a cached tail position.
//
// Invariants, restored before every method returns:
//   - index entries and live nodes are in bijection;
//   - the entry for a node's identity is the position right before it,
//     so advancing an entry one step always lands on its own node;
//   - back is the position of the last node, or the sentinel when empty.
type engine[K, E any] struct {
	list *forwardlist.List[E]
	idx  index[K, E]
	back *forwardlist.Node[E]
	id   func(E) K
}

func newEngine[K, E any](idx index[K, E], id func(E) K) engine[K, E] {
	list := forwardlist.New[E]()
	return engine[K, E]{list: list, idx: idx, back: list.Sentinel(), id: id}
}

// insertAfter links a new node holding elem right after at and records its
// index entry. The node previously following at is now one step further
// from its recorded predecessor, so its entry is rebound to the new node;
// when there is no such node the tail advances instead.
func (e *engine[K, E]) insertAfter(at *forwardlist.Node[E], id K, elem E) *forwardlist.Node[E] {
	n := e.list.InsertAfter(at, elem)
	e.idx.set(id, at)
	if next := n.Next(); next != nil {
		e.idx.set(e.id(next.Value), n)
	} else {
		e.back = n
	}
	return n
}

// emplaceBack appends elem unless its identity is already present, in
// which case nothing is mutated and the existing node is returned.
func (e *engine[K, E]) emplaceBack(id K, elem E) (*forwardlist.Node[E], bool) {
	if pred, ok := e.idx.get(id); ok {
		return pred.Next(), false
	}
	return e.insertAfter(e.back, id, elem), true
}

// emplaceFront is emplaceBack at the other end: the new node goes right
// after the sentinel and becomes first.
func (e *engine[K, E]) emplaceFront(id K, elem E) (*forwardlist.Node[E], bool) {
	if pred, ok := e.idx.get(id); ok {
		return pred.Next(), false
	}
	return e.insertAfter(e.list.Sentinel(), id, elem), true
}

// find returns the node holding id, or nil. The index stores the
// predecessor position, so a hit is always one step forward from it.
func (e *engine[K, E]) find(id K) *forwardlist.Node[E] {
	pred, ok := e.idx.get(id)
	if !ok {
		return nil
	}
	return pred.Next()
}

// eraseAfter removes the node right after pred, which must hold id. The
// node that followed the removed one is now directly after pred, so its
// entry is rebound; when the removed node was last, the tail shrinks to
// pred instead.
func (e *engine[K, E]) eraseAfter(id K, pred *forwardlist.Node[E]) E {
	e.idx.delete(id)
	removed := pred.Next().Value
	if next := e.list.RemoveAfter(pred); next != nil {
		e.idx.set(e.id(next.Value), pred)
	} else {
		e.back = pred
	}
	return removed
}

// erase removes the node holding id. Absent identities are a no-op.
func (e *engine[K, E]) erase(id K) (E, bool) {
	pred, ok := e.idx.get(id)
	if !ok {
		var zero E
		return zero, false
	}
	return e.eraseAfter(id, pred), true
}

// eraseNode removes n, failing fast when n is not a live node of this
// container. The check also catches stale handles whose identity has since
// been re-inserted into a different node.
func (e *engine[K, E]) eraseNode(n *forwardlist.Node[E]) {
	id := e.id(n.Value)
	pred, ok := e.idx.get(id)
	if !ok || pred.Next() != n {
		panic("fifo: remove of a node that is not in this container")
	}
	e.eraseAfter(id, pred)
}

func (e *engine[K, E]) clear() {
	e.list.Init()
	e.idx.clear()
	e.back = e.list.Sentinel()
}

func (e *engine[K, E]) len() int {
	return e.idx.len()
}

func (e *engine[K, E]) empty() bool {
	return e.idx.len() == 0
}
