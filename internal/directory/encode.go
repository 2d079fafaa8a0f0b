package directory

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-cfb/internal/types"
)

// MarshalBinary encodes the entry as a 128-byte directory record. Links to
// entries that have not been flattened yet are written as NoStream.
func (e *Entry) MarshalBinary() ([]byte, error) {
	record, err := e.Record()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, types.DirEntrySize)
	putDirEntry(buf, record)
	return buf, nil
}

// Record builds the on-disk structure for the entry.
func (e *Entry) Record() (*types.DirEntryT, error) {
	d := &types.DirEntryT{
		DeNameLen:        uint16(e.NameSize()),
		DeObjectType:     uint8(e.kind),
		DeChildID:        e.SubtreeRootIndex(),
		DeClsid:          classIDToDisk(e.classID),
		DeStateBits:      e.userFlags,
		DeStartingSector: types.SectorT(e.startSector),
	}
	copy(d.DeName[:], e.encodedName)

	links := TreeLinks{Color: Black, Right: types.NoStream, Left: types.NoStream}
	if parent, ok := e.Parent(); ok {
		links = parent.ResolveTreeLinks(e)
	}
	d.DeColorFlag = uint8(links.Color)
	d.DeLeftSiblingID = links.Left
	d.DeRightSiblingID = links.Right

	var err error
	if d.DeCreationTime, err = e.created.Ticks(); err != nil {
		return nil, fmt.Errorf("failed to encode created time of %q: %w", e.name, err)
	}
	if d.DeModifiedTime, err = e.modified.Ticks(); err != nil {
		return nil, fmt.Errorf("failed to encode modified time of %q: %w", e.name, err)
	}

	size, err := e.FileSize()
	if err != nil {
		return nil, err
	}
	if limit := e.h.version.MaxStreamSize(); size > limit {
		return nil, fmt.Errorf("%w: %q is %d bytes, version %d allows %d", ErrValueTooLarge, e.name, size, e.h.version, limit)
	}
	d.DeStreamSize = size

	return d, nil
}

// putDirEntry writes d into the first 128 bytes of buf.
func putDirEntry(buf []byte, d *types.DirEntryT) {
	copy(buf[0:64], d.DeName[:])
	binary.LittleEndian.PutUint16(buf[64:66], d.DeNameLen)
	buf[66] = d.DeObjectType
	buf[67] = d.DeColorFlag
	binary.LittleEndian.PutUint32(buf[68:72], uint32(d.DeLeftSiblingID))
	binary.LittleEndian.PutUint32(buf[72:76], uint32(d.DeRightSiblingID))
	binary.LittleEndian.PutUint32(buf[76:80], uint32(d.DeChildID))
	copy(buf[80:96], d.DeClsid[:])
	binary.LittleEndian.PutUint32(buf[96:100], d.DeStateBits)
	binary.LittleEndian.PutUint64(buf[100:108], d.DeCreationTime)
	binary.LittleEndian.PutUint64(buf[108:116], d.DeModifiedTime)
	binary.LittleEndian.PutUint32(buf[116:120], uint32(d.DeStartingSector))
	binary.LittleEndian.PutUint64(buf[120:128], d.DeStreamSize)
}

// UnusedRecord returns the record of an unallocated directory slot.
func UnusedRecord() []byte {
	buf := make([]byte, types.DirEntrySize)
	putDirEntry(buf, &types.DirEntryT{
		DeObjectType:     types.ObjectTypeUnknown,
		DeColorFlag:      types.ColorRed,
		DeLeftSiblingID:  types.NoStream,
		DeRightSiblingID: types.NoStream,
		DeChildID:        types.NoStream,
	})
	return buf
}

// classIDToDisk converts a UUID to the GUID layout used on disk, where the
// first three fields are little-endian.
func classIDToDisk(u uuid.UUID) [16]byte {
	var b [16]byte
	b[0], b[1], b[2], b[3] = u[3], u[2], u[1], u[0]
	b[4], b[5] = u[5], u[4]
	b[6], b[7] = u[7], u[6]
	copy(b[8:], u[8:])
	return b
}

func classIDFromDisk(b [16]byte) uuid.UUID {
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = b[3], b[2], b[1], b[0]
	u[4], u[5] = b[5], b[4]
	u[6], u[7] = b[7], b[6]
	copy(u[8:], b[8:])
	return u
}
