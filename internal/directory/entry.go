package directory

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"

	"github.com/deploymenttheory/go-cfb/internal/filetime"
	"github.com/deploymenttheory/go-cfb/internal/interfaces"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// EntryID identifies an entry within the Hierarchy that created it.
type EntryID int

// NoEntry is the absent tree link.
const NoEntry EntryID = -1

var _ interfaces.SectorSizer = (*Entry)(nil)

// Entry is one named object in a compound file: the root storage, a storage,
// or a stream. Entries are created by a Hierarchy and double as nodes of their
// parent storage's OrderingTree.
type Entry struct {
	h    *Hierarchy
	id   EntryID
	kind Kind

	name        string
	encodedName []byte

	classID     uuid.UUID
	userFlags   uint32
	created     filetime.Filetime
	modified    filetime.Filetime
	startSector uint32

	// Tree links within the parent's OrderingTree.
	color  Color
	left   EntryID
	right  EntryID
	parent EntryID

	// Only storage and root entries have children.
	children *OrderingTree

	index   uint32
	indexed bool

	source         interfaces.StreamSource
	miniStreamSize uint64
}

func newEntry(h *Hierarchy, kind Kind, name string) (*Entry, error) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().String(name)
	if err != nil {
		return nil, fmt.Errorf("failed to encode name %q: %w", name, err)
	}
	if len(encoded)/2 > types.MaxNameUnits {
		return nil, fmt.Errorf("%w: name %q is %d UTF-16 units, limit is %d", ErrValueTooLarge, name, len(encoded)/2, types.MaxNameUnits)
	}

	e := &Entry{
		h:           h,
		id:          EntryID(len(h.entries)),
		kind:        kind,
		name:        name,
		encodedName: []byte(encoded),
		color:       Black,
		left:        NoEntry,
		right:       NoEntry,
		parent:      NoEntry,
	}
	if kind.IsStorage() {
		e.children = &OrderingTree{h: h, owner: e.id, root: NoEntry}
	}
	return e, nil
}

// ID returns the entry's identifier within its hierarchy.
func (e *Entry) ID() EntryID {
	return e.id
}

// Kind returns the entry's object type.
func (e *Entry) Kind() Kind {
	return e.kind
}

// Name returns the entry's name.
func (e *Entry) Name() string {
	return e.name
}

// NameSize returns the byte length of the encoded name including the terminating null.
func (e *Entry) NameSize() int {
	return len(e.encodedName) + 2
}

// Key returns the entry's ordering key.
func (e *Entry) Key() Key {
	return KeyFor(e.name)
}

// ClassID returns the entry's class identifier.
func (e *Entry) ClassID() uuid.UUID {
	return e.classID
}

// SetClassID stores the class identifier. Streams only accept the nil identifier.
func (e *Entry) SetClassID(id uuid.UUID) error {
	if e.kind == KindStream && id != uuid.Nil {
		return fmt.Errorf("%w: stream %q cannot carry class id %s", ErrInvalidOperation, e.name, id)
	}
	e.classID = id
	return nil
}

// SetClassIDBytes stores a class identifier given in its 16-byte on-disk form.
func (e *Entry) SetClassIDBytes(b []byte) error {
	if len(b) != 16 {
		return fmt.Errorf("%w: class id must be 16 bytes, got %d", ErrTypeMismatch, len(b))
	}
	var raw [16]byte
	copy(raw[:], b)
	return e.SetClassID(classIDFromDisk(raw))
}

// UserFlags returns the opaque user-defined flags.
func (e *Entry) UserFlags() uint32 {
	return e.userFlags
}

// SetUserFlags stores the opaque user-defined flags.
func (e *Entry) SetUserFlags(flags uint32) {
	e.userFlags = flags
}

// Created returns the creation time.
func (e *Entry) Created() filetime.Filetime {
	return e.created
}

// SetCreated stores the creation time.
func (e *Entry) SetCreated(ft filetime.Filetime) error {
	if _, err := ft.Ticks(); err != nil {
		return fmt.Errorf("invalid created time for %q: %w", e.name, err)
	}
	e.created = ft
	return nil
}

// Modified returns the modification time.
func (e *Entry) Modified() filetime.Filetime {
	return e.modified
}

// SetModified stores the modification time.
func (e *Entry) SetModified(ft filetime.Filetime) error {
	if _, err := ft.Ticks(); err != nil {
		return fmt.Errorf("invalid modified time for %q: %w", e.name, err)
	}
	e.modified = ft
	return nil
}

// StartSector returns the first sector of the entry's content.
func (e *Entry) StartSector() uint32 {
	return e.startSector
}

// SetStartSector stores the first sector of the entry's content.
func (e *Entry) SetStartSector(sector uint32) {
	e.startSector = sector
}

// Color returns the entry's node color.
func (e *Entry) Color() Color {
	return e.color
}

// SetColor overrides the entry's node color.
func (e *Entry) SetColor(c Color) {
	e.color = c
}

// Source returns the content backing a stream, or nil.
func (e *Entry) Source() interfaces.StreamSource {
	return e.source
}

// SetMiniStreamSize records the size of the mini stream on the root entry.
func (e *Entry) SetMiniStreamSize(size uint64) error {
	if e.kind != KindRoot {
		return fmt.Errorf("%w: only the root entry holds the mini stream, %q is a %s", ErrInvalidOperation, e.name, e.kind)
	}
	e.miniStreamSize = size
	return nil
}

// Parent returns the storage the entry is attached to.
func (e *Entry) Parent() (*Entry, bool) {
	if e.parent == NoEntry {
		return nil, false
	}
	return e.h.entries[e.parent], true
}

// Children returns the storage's ordering tree, or nil for streams.
func (e *Entry) Children() *OrderingTree {
	return e.children
}

// Index returns the entry's position in the flattened array.
// The second result is false until the entry has been flattened.
func (e *Entry) Index() (uint32, bool) {
	return e.index, e.indexed
}

// FileSize returns the size of the entry's content: the backing source for a
// stream, the mini stream for the root, zero for a storage.
func (e *Entry) FileSize() (uint64, error) {
	switch e.kind {
	case KindStream:
		if e.source == nil {
			return 0, nil
		}
		size, err := e.source.Size()
		if err != nil {
			return 0, fmt.Errorf("failed to size stream %q: %w", e.name, err)
		}
		return size, nil
	case KindRoot:
		return e.miniStreamSize, nil
	default:
		return 0, nil
	}
}

// SectorsNeeded returns the number of sectors of sectorSize bytes the content occupies.
func (e *Entry) SectorsNeeded(sectorSize uint32) (uint64, error) {
	if sectorSize == 0 {
		return 0, fmt.Errorf("%w: sector size must be positive", ErrInvalidOperation)
	}
	size, err := e.FileSize()
	if err != nil {
		return 0, err
	}
	return (size + uint64(sectorSize) - 1) / uint64(sectorSize), nil
}

// MiniSectorsUsed returns the mini sectors the entry's content occupies: its
// own content for a stream, zero when that stream is at or above the cutoff,
// and the total of every stream beneath it for a storage or the root.
func (e *Entry) MiniSectorsUsed() (uint64, error) {
	totals, err := e.contentSectors(e.h.Geometry())
	if err != nil {
		return 0, err
	}
	return totals.Mini, nil
}

func (e *Entry) String() string {
	var b strings.Builder
	b.WriteString(e.name)
	fmt.Fprintf(&b, "\n\tCreated: %s", e.created)
	fmt.Fprintf(&b, "\n\tModified: %s", e.modified)
	fmt.Fprintf(&b, "\n\tGUID: %s", e.classID)
	if e.kind.IsStorage() && e.kind != KindRoot {
		return b.String()
	}
	fmt.Fprintf(&b, "\n\tStart Sector: %d", e.startSector)
	if size, err := e.FileSize(); err == nil {
		fmt.Fprintf(&b, "\n\tSize: %d", size)
	}
	return b.String()
}
