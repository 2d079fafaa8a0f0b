package directory

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-cfb/internal/source"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// sizedSource reports a fixed size without holding any content
type sizedSource uint64

func (s sizedSource) Size() (uint64, error) { return uint64(s), nil }
func (s sizedSource) Open() (io.ReadCloser, error) {
	return nil, errors.New("sizedSource has no content")
}

func newTestHierarchy(t *testing.T, version types.MajorVersion) *Hierarchy {
	t.Helper()
	h, err := NewHierarchy(Options{Version: version})
	require.NoError(t, err)
	return h
}

func mustStorage(t *testing.T, h *Hierarchy, parent *Entry, name string) *Entry {
	t.Helper()
	e, err := h.NewStorage(name)
	require.NoError(t, err)
	require.NoError(t, parent.AddChild(e))
	return e
}

func mustStream(t *testing.T, h *Hierarchy, parent *Entry, name string, content string) *Entry {
	t.Helper()
	e, err := h.NewStream(name, source.Bytes(content))
	require.NoError(t, err)
	require.NoError(t, parent.AddChild(e))
	return e
}

func names(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}

// buildSample creates the hierarchy
//
//	Root Entry
//	├── a
//	├── b
//	├── dd/
//	│   ├── x
//	│   └── y
//	└── ccc
//
// inserting the root's children in the order b, a, ccc, dd.
func buildSample(t *testing.T) (*Hierarchy, map[string]*Entry) {
	t.Helper()
	h := newTestHierarchy(t, types.Version3)
	root := h.Root()

	byName := map[string]*Entry{}
	byName["b"] = mustStream(t, h, root, "b", "bb")
	byName["a"] = mustStream(t, h, root, "a", "a")
	byName["ccc"] = mustStream(t, h, root, "ccc", "")
	byName["dd"] = mustStorage(t, h, root, "dd")
	byName["x"] = mustStream(t, h, byName["dd"], "x", "xxxxx")
	byName["y"] = mustStream(t, h, byName["dd"], "y", "yyyyyy")
	return h, byName
}

// failingSource cannot be sized
type failingSource struct{}

func (failingSource) Size() (uint64, error)        { return 0, errors.New("source unavailable") }
func (failingSource) Open() (io.ReadCloser, error) { return nil, errors.New("source unavailable") }
