package directory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/deploymenttheory/go-cfb/internal/types"
)

// TreeLinks are the tree fields of one entry's record.
type TreeLinks struct {
	Color Color
	Right types.StreamIDT
	Left  types.StreamIDT
}

// SectorTotals counts the sectors stream content needs, split by where it is stored.
type SectorTotals struct {
	// Mini is the number of mini sectors used by streams below the cutoff.
	Mini uint64

	// Regular is the number of regular sectors used by streams at or above the cutoff.
	Regular uint64
}

// TreeLine is one line of a file tree listing.
type TreeLine struct {
	Depth int
	Entry *Entry
}

// AddChild attaches child to this storage's ordering tree. The child's
// flattened index is left alone.
func (e *Entry) AddChild(child *Entry) error {
	if e.children == nil {
		return fmt.Errorf("%w: %q is a %s and cannot hold children", ErrInvalidOperation, e.name, e.kind)
	}
	e.h.mu.Lock()
	defer e.h.mu.Unlock()
	return e.children.insert(child)
}

// Flatten returns this storage and everything beneath it in directory order
// and assigns each entry its position as its index: the storage first, then
// its children in key order, each storage child followed by its own
// flattened subtree. Flattening the root freezes the hierarchy, and indices
// are not reassigned once it is frozen. Streams have nothing to flatten and
// return nil.
func (e *Entry) Flatten() []*Entry {
	if e.children == nil {
		return nil
	}
	e.h.mu.Lock()
	defer e.h.mu.Unlock()

	flat := e.flatten()
	if e.kind == KindRoot {
		e.h.frozen = true
	}
	return flat
}

func (e *Entry) flatten() []*Entry {
	flat := e.collect(nil)
	if e.h.frozen {
		return flat
	}
	for i, entry := range flat {
		entry.index = uint32(i)
		entry.indexed = true
	}

	e.h.log.Debug("flattened storage",
		zap.String("name", e.name),
		zap.Int("entries", len(flat)))
	return flat
}

func (e *Entry) collect(flat []*Entry) []*Entry {
	flat = append(flat, e)
	e.children.Ascend(func(child *Entry) bool {
		if child.kind.IsStorage() {
			flat = child.collect(flat)
		} else {
			flat = append(flat, child)
		}
		return true
	})
	return flat
}

// ResolveTreeLinks looks child up in this storage's tree and returns its
// color and the indices of its right and left tree children. An entry that
// is not in the tree gets black with no links.
func (e *Entry) ResolveTreeLinks(child *Entry) TreeLinks {
	links := TreeLinks{Color: Black, Right: types.NoStream, Left: types.NoStream}
	if e.children == nil {
		return links
	}
	node, ok := e.children.Find(child.Key())
	if !ok {
		return links
	}

	links.Color = node.color
	links.Right = e.h.streamID(node.right)
	links.Left = e.h.streamID(node.left)
	return links
}

// SubtreeRootIndex returns the index of the root of this storage's tree, or
// NoStream when the storage is empty or is a stream.
func (e *Entry) SubtreeRootIndex() types.StreamIDT {
	if e.children == nil {
		return types.NoStream
	}
	return e.h.streamID(e.children.root)
}

// TotalContentSectors sums the sectors every stream beneath this storage needs.
func (e *Entry) TotalContentSectors(g types.Geometry) (SectorTotals, error) {
	return e.contentSectors(g)
}

func (e *Entry) contentSectors(g types.Geometry) (SectorTotals, error) {
	var totals SectorTotals

	if e.kind == KindStream {
		size, err := e.FileSize()
		if err != nil {
			return totals, err
		}
		if g.UsesMiniStream(size) {
			totals.Mini, err = e.SectorsNeeded(g.MiniSectorSize)
		} else {
			totals.Regular, err = e.SectorsNeeded(g.SectorSize)
		}
		return totals, err
	}

	if e.children == nil {
		return totals, nil
	}

	var err error
	e.children.Ascend(func(child *Entry) bool {
		var sub SectorTotals
		sub, err = child.contentSectors(g)
		if err != nil {
			return false
		}
		totals.Mini += sub.Mini
		totals.Regular += sub.Regular
		return true
	})
	return totals, err
}

// FileTree lists this entry and everything beneath it in directory order,
// with each line one level deeper than its storage.
func (e *Entry) FileTree(depth int) []TreeLine {
	tree := []TreeLine{{Depth: depth, Entry: e}}
	if e.children == nil {
		return tree
	}
	e.children.Ascend(func(child *Entry) bool {
		tree = append(tree, child.FileTree(depth+1)...)
		return true
	})
	return tree
}
