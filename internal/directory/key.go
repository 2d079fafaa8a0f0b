package directory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key orders siblings within a storage: shorter names first, then names of
// equal length by their upper-case form.
type Key struct {
	// Length is the name length in UTF-16 code units.
	Length int

	// Folded is the upper-case form of the name.
	Folded string
}

// KeyFor returns the ordering key of name.
func KeyFor(name string) Key {
	return Key{
		Length: utf16Len(name),
		Folded: cases.Upper(language.Und).String(name),
	}
}

// Compare returns -1, 0 or +1 depending on whether k sorts before, equal to, or after o.
func (k Key) Compare(o Key) int {
	switch {
	case k.Length < o.Length:
		return -1
	case k.Length > o.Length:
		return 1
	}
	return strings.Compare(k.Folded, o.Folded)
}

// Less reports whether k sorts before o.
func (k Key) Less(o Key) bool {
	return k.Compare(o) < 0
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
