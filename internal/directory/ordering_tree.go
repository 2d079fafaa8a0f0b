package directory

import (
	"fmt"

	"go.uber.org/zap"
)

// OrderingTree holds the direct children of one storage as a binary search
// tree keyed by Entry.Key. The entries themselves are the nodes: their left
// and right links point at other entries of the same hierarchy.
//
// Insertion colors the root black and every other node red and never
// rotates. This is a plain binary search tree that carries the color bit the
// on-disk record requires; it is not self-balancing.
type OrderingTree struct {
	h     *Hierarchy
	owner EntryID
	root  EntryID
	size  int
}

// Insert attaches e to the tree as a new leaf.
func (t *OrderingTree) Insert(e *Entry) error {
	t.h.mu.Lock()
	defer t.h.mu.Unlock()
	return t.insert(e)
}

func (t *OrderingTree) insert(e *Entry) error {
	switch {
	case t.h.frozen:
		return fmt.Errorf("%w: hierarchy is flattened, cannot attach %q", ErrInvalidOperation, e.name)
	case e.h != t.h:
		return fmt.Errorf("%w: %q belongs to another hierarchy", ErrInvalidOperation, e.name)
	case e.kind == KindRoot:
		return fmt.Errorf("%w: the root entry cannot be attached to a storage", ErrInvalidOperation)
	case e.parent != NoEntry:
		return fmt.Errorf("%w: %q is already attached", ErrInvalidOperation, e.name)
	case t.contains(e.id):
		return fmt.Errorf("%w: %q cannot contain itself", ErrInvalidOperation, e.name)
	}

	key := e.Key()
	if t.root == NoEntry {
		t.attach(e, Black)
		t.root = e.id
		return nil
	}

	current := t.h.entries[t.root]
	for {
		cmp := key.Compare(current.Key())
		if cmp == 0 {
			return fmt.Errorf("%w: an entry named %q already exists", ErrInvalidOperation, e.name)
		}

		link := &current.right
		if cmp < 0 {
			link = &current.left
		}
		if *link == NoEntry {
			t.attach(e, Red)
			*link = e.id
			return nil
		}
		current = t.h.entries[*link]
	}
}

// contains reports whether id is the tree's owner or one of its ancestors.
func (t *OrderingTree) contains(id EntryID) bool {
	for p := t.owner; p != NoEntry; p = t.h.entries[p].parent {
		if p == id {
			return true
		}
	}
	return false
}

func (t *OrderingTree) attach(e *Entry, c Color) {
	e.color = c
	e.parent = t.owner
	e.left = NoEntry
	e.right = NoEntry
	t.size++

	t.h.log.Debug("attached directory entry",
		zap.String("name", e.name),
		zap.Stringer("kind", e.kind),
		zap.Stringer("color", c),
		zap.String("parent", t.h.entries[t.owner].name))
}

// Find returns the entry with the given key.
func (t *OrderingTree) Find(key Key) (*Entry, bool) {
	id := t.root
	for id != NoEntry {
		current := t.h.entries[id]
		cmp := key.Compare(current.Key())
		switch {
		case cmp == 0:
			return current, true
		case cmp < 0:
			id = current.left
		default:
			id = current.right
		}
	}
	return nil, false
}

// Root returns the entry at the root of the tree.
func (t *OrderingTree) Root() (*Entry, bool) {
	if t.root == NoEntry {
		return nil, false
	}
	return t.h.entries[t.root], true
}

// Len returns the number of entries in the tree.
func (t *OrderingTree) Len() int {
	return t.size
}

// Ascend calls fn for each entry in ascending key order until fn returns false.
func (t *OrderingTree) Ascend(fn func(e *Entry) bool) {
	t.ascend(t.root, fn)
}

func (t *OrderingTree) ascend(id EntryID, fn func(e *Entry) bool) bool {
	if id == NoEntry {
		return true
	}
	node := t.h.entries[id]
	if !t.ascend(node.left, fn) {
		return false
	}
	if !fn(node) {
		return false
	}
	return t.ascend(node.right, fn)
}

// All returns the entries in ascending key order.
func (t *OrderingTree) All() []*Entry {
	out := make([]*Entry, 0, t.size)
	t.Ascend(func(e *Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}
