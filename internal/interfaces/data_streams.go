package interfaces

import "io"

// StreamSource provides the content that backs a stream directory entry
type StreamSource interface {
	// Size returns the length of the content in bytes
	Size() (uint64, error)

	// Open returns a reader over the content
	Open() (io.ReadCloser, error)
}

// SectorSizer reports the storage a directory entry's content needs.
// A sector allocator calls it before assigning the entry's starting sector.
type SectorSizer interface {
	// FileSize returns the length of the backing content in bytes
	FileSize() (uint64, error)

	// SectorsNeeded returns the number of sectors of the given size the content occupies
	SectorsNeeded(sectorSize uint32) (uint64, error)
}
