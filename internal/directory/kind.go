package directory

import (
	"fmt"

	"github.com/deploymenttheory/go-cfb/internal/types"
)

// Kind is the object type of a directory entry.
type Kind uint8

const (
	KindUnused  = Kind(types.ObjectTypeUnknown)
	KindStorage = Kind(types.ObjectTypeStorage)
	KindStream  = Kind(types.ObjectTypeStream)
	KindRoot    = Kind(types.ObjectTypeRootStorage)
)

// IsStorage reports whether entries of this kind own a child tree.
func (k Kind) IsStorage() bool {
	return k == KindStorage || k == KindRoot
}

func (k Kind) String() string {
	switch k {
	case KindUnused:
		return "unused"
	case KindStorage:
		return "storage"
	case KindStream:
		return "stream"
	case KindRoot:
		return "root"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Color is the red-black node color recorded for an entry.
type Color uint8

const (
	Red   = Color(types.ColorRed)
	Black = Color(types.ColorBlack)
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}
