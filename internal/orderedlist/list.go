// Package orderedlist keeps labeled items sorted by their point-in-time key
// as they are inserted one at a time.
//
// Nodes live in an arena owned by the List and link to each other by index,
// so the list holds no pointers into itself. The zero List is empty and
// ready to use.
package orderedlist

import (
	"iter"

	"github.com/roach88/wdlabelbuilder/internal/pointintime"
)

// Record is an input item: an identifier and its existing label.
// Identifiers are opaque and may repeat.
type Record struct {
	ID    string
	Label string
}

// Node is one item with its derived ordering key.
// The key is computed once by NewNode and never recomputed.
type Node struct {
	ID    string
	Label string
	Key   pointintime.Key

	// next is the arena slot of the following node, plus one. Zero means tail.
	next int
}

// NewNode wraps an item and extracts its ordering key from the label.
func NewNode(id, label string) Node {
	return Node{
		ID:    id,
		Label: label,
		Key:   pointintime.Extract(label),
	}
}

// Build inserts every record, in the given order, into a new list.
func Build(records []Record) *List {
	l := &List{arena: make([]Node, 0, len(records))}
	for _, r := range records {
		l.Insert(NewNode(r.ID, r.Label))
	}
	return l
}

// List is a singly-linked sequence of nodes in non-descending key order.
//
// Invariants:
//   - walking from head to tail visits every node exactly once
//   - head and tail are unset iff Len() == 0; head == tail iff Len() == 1
//   - nodes with equal keys stay in insertion order
type List struct {
	arena []Node
	head  int // arena slot + 1, zero when empty
	tail  int
}

// New creates an empty list.
func New() *List {
	return &List{}
}

// Len returns the number of held nodes.
func (l *List) Len() int {
	return len(l.arena)
}

// Head returns the first node in order.
func (l *List) Head() (Node, bool) {
	if l.head == 0 {
		return Node{}, false
	}
	return *l.at(l.head), true
}

// Tail returns the last node in order.
func (l *List) Tail() (Node, bool) {
	if l.tail == 0 {
		return Node{}, false
	}
	return *l.at(l.tail), true
}

// Insert places node at its sorted position. A node whose key equals
// existing keys goes after all of them. Insert never fails and grows the
// list by exactly one.
func (l *List) Insert(node Node) {
	node.next = 0
	l.arena = append(l.arena, node)
	ref := len(l.arena)
	key := node.Key

	switch {
	case l.head == 0:
		// Empty list
		l.head = ref
		l.tail = ref
	case l.head == l.tail:
		// One other node
		if pointintime.Less(key, l.at(l.head).Key) {
			l.pushFront(ref)
		} else {
			l.pushBack(ref)
		}
	case pointintime.Less(key, l.at(l.head).Key):
		l.pushFront(ref)
	case pointintime.Less(l.at(l.tail).Key, key):
		l.pushBack(ref)
	default:
		l.insertInterior(ref)
	}
}

// pushFront makes ref the new head.
func (l *List) pushFront(ref int) {
	l.at(ref).next = l.head
	l.head = ref
}

// pushBack makes ref the new tail.
func (l *List) pushBack(ref int) {
	l.at(l.tail).next = ref
	l.tail = ref
}

// insertInterior scans from the head past every node whose key does not
// exceed the new key, then splices ref in before the first larger one.
func (l *List) insertInterior(ref int) {
	key := l.at(ref).Key

	prev, cur := 0, l.head
	for cur != 0 && pointintime.Compare(l.at(cur).Key, key) <= 0 {
		prev = cur
		cur = l.at(cur).next
	}

	l.at(ref).next = cur
	if prev == 0 {
		l.head = ref
	} else {
		l.at(prev).next = ref
	}
	if cur == 0 {
		l.tail = ref
	}
}

func (l *List) at(ref int) *Node {
	return &l.arena[ref-1]
}

// All yields the nodes from head to tail.
func (l *List) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for ref := l.head; ref != 0; ref = l.at(ref).next {
			if !yield(*l.at(ref)) {
				return
			}
		}
	}
}

// Nodes returns a snapshot of the nodes in list order.
func (l *List) Nodes() []Node {
	nodes := make([]Node, 0, l.Len())
	for n := range l.All() {
		nodes = append(nodes, n)
	}
	return nodes
}
