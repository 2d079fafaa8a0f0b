package types

// Compound File Directory Sectors (section 2.6)
// The directory entry array is a linear array of 128-byte records. Each storage
// organizes its direct children as a red-black tree whose links are stream IDs
// into that array.

const (
	// DirEntrySize is the size of one directory entry record.
	DirEntrySize = 128

	// DirEntryNameSize is the size of the name field, including the terminating null.
	DirEntryNameSize = 64

	// MaxNameUnits is the longest name in UTF-16 code units, excluding the terminating null.
	MaxNameUnits = 31

	// RootEntryName is the name the root storage object carries.
	RootEntryName = "Root Entry"
)

// Object Types (section 2.6.1)
const (
	// ObjectTypeUnknown marks an unallocated directory entry.
	ObjectTypeUnknown uint8 = 0x00

	// ObjectTypeStorage marks a storage object.
	ObjectTypeStorage uint8 = 0x01

	// ObjectTypeStream marks a stream object.
	ObjectTypeStream uint8 = 0x02

	// ObjectTypeRootStorage marks the root storage object.
	ObjectTypeRootStorage uint8 = 0x05
)

// Color Flags (section 2.6.1)
const (
	// ColorRed is the red node color.
	ColorRed uint8 = 0x00

	// ColorBlack is the black node color.
	ColorBlack uint8 = 0x01
)

// DirEntryT is a compound file directory entry.
// Reference: section 2.6.1
type DirEntryT struct {
	// The entry name as UTF-16LE, terminated with a null character. (section 2.6.1)
	// Unused bytes after the terminator are zero.
	DeName [DirEntryNameSize]byte

	// The length of the name in bytes, including the terminating null. (section 2.6.1)
	// This value is a multiple of 2 and does not exceed 64.
	DeNameLen uint16

	// The object type. (section 2.6.1)
	// For the values used in this field, see Object Types.
	DeObjectType uint8

	// The node color within the red-black tree of its parent storage. (section 2.6.1)
	DeColorFlag uint8

	// The stream ID of the left sibling, or NoStream. (section 2.6.1)
	DeLeftSiblingID StreamIDT

	// The stream ID of the right sibling, or NoStream. (section 2.6.1)
	DeRightSiblingID StreamIDT

	// The stream ID of the root of the child tree, or NoStream. (section 2.6.1)
	// Only storage and root storage objects have a child tree.
	DeChildID StreamIDT

	// The object class GUID in its mixed-endian on-disk form. (section 2.6.1)
	// Stream objects always carry the all-zero value.
	DeClsid [16]byte

	// User-defined flags. (section 2.6.1)
	DeStateBits uint32

	// Creation time as a FILETIME tick count. (section 2.6.1)
	DeCreationTime uint64

	// Modification time as a FILETIME tick count. (section 2.6.1)
	DeModifiedTime uint64

	// The first sector of the stream content. (section 2.6.1)
	// For the root storage object this is the first sector of the mini stream.
	DeStartingSector SectorT

	// The size of the stream content in bytes. (section 2.6.1)
	// Version 3 writers keep the high 32 bits zero.
	DeStreamSize uint64
}
