// Package types implements data structures for the Compound File Binary format.
// This package is based on the [MS-CFB] Compound File Binary File Format specification.
package types

// General-Purpose Types (section 2.1)
// Basic types that are used in a variety of contexts, and aren't associated with
// any particular structure.

// SectorT is a sector number within the compound file.
// Values above MaxRegSect are reserved markers used in the FAT.
// Reference: section 2.1
type SectorT uint32

const (
	// MaxRegSect is the maximum regular sector number.
	MaxRegSect SectorT = 0xFFFFFFFA

	// DifSect marks a DIFAT sector in the FAT.
	DifSect SectorT = 0xFFFFFFFC

	// FatSect marks a FAT sector in the FAT.
	FatSect SectorT = 0xFFFFFFFD

	// EndOfChain marks the last sector in a chain.
	EndOfChain SectorT = 0xFFFFFFFE

	// FreeSect marks an unallocated sector.
	FreeSect SectorT = 0xFFFFFFFF
)

// StreamIDT is the index of a directory entry within the directory sector chain.
// Reference: section 2.1
type StreamIDT uint32

const (
	// MaxRegSID is the maximum regular stream ID.
	MaxRegSID StreamIDT = 0xFFFFFFFA

	// NoStream is the terminator or empty pointer for sibling and child links.
	NoStream StreamIDT = 0xFFFFFFFF
)

// IsNull reports whether the stream ID is the empty pointer.
func (s StreamIDT) IsNull() bool {
	return s == NoStream
}

// MajorVersion is the major version of the compound file.
// Reference: section 2.2
type MajorVersion uint16

const (
	// Version3 files use 512-byte sectors and a 32-bit stream size.
	Version3 MajorVersion = 0x0003

	// Version4 files use 4096-byte sectors and a 64-bit stream size.
	Version4 MajorVersion = 0x0004
)

// Valid checks if the major version is one the format defines.
func (v MajorVersion) Valid() bool {
	return v == Version3 || v == Version4
}

// SectorSize returns the regular sector size for the version.
func (v MajorVersion) SectorSize() uint32 {
	if v == Version4 {
		return SectorSizeV4
	}
	return SectorSizeV3
}

// MaxStreamSize returns the largest stream size the version can describe.
// Version 3 readers ignore the high 32 bits of the size field, so streams are capped at 2 GB.
func (v MajorVersion) MaxStreamSize() uint64 {
	if v == Version4 {
		return ^uint64(0)
	}
	return MaxStreamSizeV3
}

const (
	// SectorSizeV3 is the sector size of a version 3 file (sector shift 0x0009).
	SectorSizeV3 uint32 = 512

	// SectorSizeV4 is the sector size of a version 4 file (sector shift 0x000C).
	SectorSizeV4 uint32 = 4096

	// MiniSectorSize is the mini stream sector size (mini sector shift 0x0006).
	MiniSectorSize uint32 = 64

	// MiniStreamCutoff is the size below which a stream lives in the mini stream.
	MiniStreamCutoff uint64 = 4096

	// MaxStreamSizeV3 is the largest stream size permitted in a version 3 file.
	MaxStreamSizeV3 uint64 = 0x80000000
)

// Geometry groups the sector sizes a stream's storage needs are computed against.
type Geometry struct {
	SectorSize       uint32
	MiniSectorSize   uint32
	MiniStreamCutoff uint64
}

// GeometryFor returns the sector geometry of the given major version.
func GeometryFor(v MajorVersion) Geometry {
	return Geometry{
		SectorSize:       v.SectorSize(),
		MiniSectorSize:   MiniSectorSize,
		MiniStreamCutoff: MiniStreamCutoff,
	}
}

// UsesMiniStream reports whether a stream of the given size is stored in the mini stream.
func (g Geometry) UsesMiniStream(size uint64) bool {
	return size < g.MiniStreamCutoff
}
