// Package forwardlist implements a generic singly-linked list.
//
// Unlike container/list it links in one direction only, so the only O(1)
// mutations are relative to a predecessor position: InsertAfter and
// RemoveAfter. The list exposes its before-first sentinel for exactly that
// reason; callers that need to address a node must hold the position in
// front of it.
package forwardlist

// Node is an element of a List. A Node's address is stable from the moment
// it is linked until it is removed.
type Node[E any] struct {
	next  *Node[E]
	Value E
}

// Next returns the following node, or nil at the end of the list.
func (n *Node[E]) Next() *Node[E] {
	return n.next
}

// List is a singly-linked list of E. The zero value held behind a pointer
// from New is an empty list ready to use.
type List[E any] struct {
	// head is the before-first sentinel; head.next is the first element.
	head Node[E]
}

// New returns an empty list.
func New[E any]() *List[E] {
	return new(List[E])
}

// Sentinel returns the before-first position. It never holds a value; it
// exists so that the first element can be inserted and removed with the
// same after-a-position primitives as every other element.
func (l *List[E]) Sentinel() *Node[E] {
	return &l.head
}

// Front returns the first node, or nil if the list is empty.
func (l *List[E]) Front() *Node[E] {
	return l.head.next
}

// InsertAfter links a new node holding v immediately after at and returns
// it. at must be the sentinel or a node of this list.
func (l *List[E]) InsertAfter(at *Node[E], v E) *Node[E] {
	n := &Node[E]{next: at.next, Value: v}
	at.next = n
	return n
}

// RemoveAfter unlinks the node immediately after at and returns the node
// that now follows at, or nil if at became the last position. The removed
// node's next pointer is cleared. at must have a successor.
func (l *List[E]) RemoveAfter(at *Node[E]) *Node[E] {
	n := at.next
	at.next = n.next
	n.next = nil
	return at.next
}

// Init empties the list.
func (l *List[E]) Init() {
	l.head.next = nil
}
