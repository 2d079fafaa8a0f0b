package directory

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/deploymenttheory/go-cfb/internal/interfaces"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// Options configures a new Hierarchy.
type Options struct {
	// Version selects the record layout and sector geometry. Zero means version 3.
	Version types.MajorVersion

	// RootName names the root entry. Empty means "Root Entry".
	RootName string

	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// Hierarchy owns every entry of one compound file directory. Entries refer
// to each other by EntryID rather than by pointer, and the root entry is
// always EntryID 0.
//
// Insertion, flattening and MarshalDirectory hold a single lock over the
// whole hierarchy because flattening rewrites the index of every entry.
// Setters on individual entries are not synchronized.
type Hierarchy struct {
	mu      sync.Mutex
	version types.MajorVersion
	entries []*Entry
	root    *Entry
	frozen  bool
	log     *zap.Logger
}

// NewHierarchy creates a hierarchy holding only its root entry.
func NewHierarchy(opts Options) (*Hierarchy, error) {
	if opts.Version == 0 {
		opts.Version = types.Version3
	}
	if !opts.Version.Valid() {
		return nil, fmt.Errorf("unsupported major version: %d", opts.Version)
	}
	if opts.RootName == "" {
		opts.RootName = types.RootEntryName
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	h := &Hierarchy{
		version: opts.Version,
		log:     opts.Logger,
	}
	root, err := h.add(KindRoot, opts.RootName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create root entry: %w", err)
	}
	h.root = root
	return h, nil
}

func (h *Hierarchy) add(kind Kind, name string, src interfaces.StreamSource) (*Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, err := newEntry(h, kind, name)
	if err != nil {
		return nil, err
	}
	e.source = src
	h.entries = append(h.entries, e)
	return e, nil
}

// Root returns the root entry.
func (h *Hierarchy) Root() *Entry {
	return h.root
}

// Version returns the major version records are encoded for.
func (h *Hierarchy) Version() types.MajorVersion {
	return h.version
}

// Geometry returns the sector geometry of the hierarchy's version.
func (h *Hierarchy) Geometry() types.Geometry {
	return types.GeometryFor(h.version)
}

// Len returns the number of entries created in the hierarchy, attached or not.
func (h *Hierarchy) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entry returns the entry with the given id.
func (h *Hierarchy) Entry(id EntryID) (*Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if id < 0 || int(id) >= len(h.entries) {
		return nil, false
	}
	return h.entries[id], true
}

// NewStorage creates an unattached storage entry.
func (h *Hierarchy) NewStorage(name string) (*Entry, error) {
	return h.add(KindStorage, name, nil)
}

// NewStream creates an unattached stream entry whose content comes from src.
// The source is not read until its size is needed.
func (h *Hierarchy) NewStream(name string, src interfaces.StreamSource) (*Entry, error) {
	return h.add(KindStream, name, src)
}

// Flattened reports whether the root has been flattened. A flattened
// hierarchy accepts no further children.
func (h *Hierarchy) Flattened() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frozen
}

// Flatten flattens the whole hierarchy from the root.
func (h *Hierarchy) Flatten() []*Entry {
	return h.Root().Flatten()
}

// MarshalDirectory flattens the hierarchy and returns the directory stream:
// every record in flattened order followed by unused records up to a whole
// sector.
func (h *Hierarchy) MarshalDirectory() ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	flat := h.Root().flatten()
	h.frozen = true

	perSector := int(h.version.SectorSize()) / types.DirEntrySize
	count := len(flat)
	if rem := count % perSector; rem != 0 {
		count += perSector - rem
	}

	out := make([]byte, 0, count*types.DirEntrySize)
	for _, e := range flat {
		record, err := e.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("failed to encode entry %d (%q): %w", e.index, e.name, err)
		}
		out = append(out, record...)
	}
	for i := len(flat); i < count; i++ {
		out = append(out, UnusedRecord()...)
	}

	h.log.Debug("encoded directory stream",
		zap.Int("entries", len(flat)),
		zap.Int("records", count),
		zap.Int("bytes", len(out)))
	return out, nil
}

// FileTree lists every attached entry with its depth below the root.
func (h *Hierarchy) FileTree() []TreeLine {
	return h.Root().FileTree(0)
}

// Lookup resolves a slash-separated path from the root through each
// storage's ordering tree. The empty path and "/" resolve to the root.
func (h *Hierarchy) Lookup(path string) (*Entry, error) {
	current := h.Root()
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if part == "" {
			continue
		}
		if current.children == nil {
			return nil, fmt.Errorf("%w: %q is a stream, cannot resolve %q", ErrNotFound, current.name, path)
		}
		child, ok := current.children.Find(KeyFor(part))
		if !ok {
			return nil, fmt.Errorf("%w: %q has no child named %q", ErrNotFound, current.name, part)
		}
		current = child
	}
	return current, nil
}

func (h *Hierarchy) streamID(id EntryID) types.StreamIDT {
	if id == NoEntry {
		return types.NoStream
	}
	e := h.entries[id]
	if !e.indexed {
		return types.NoStream
	}
	return types.StreamIDT(e.index)
}
