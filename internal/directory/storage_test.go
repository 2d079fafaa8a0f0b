package directory

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-cfb/internal/types"
)

func TestFlattenOrder(t *testing.T) {
	h, byName := buildSample(t)

	flat := h.Flatten()
	assert.Equal(t, []string{"Root Entry", "a", "b", "dd", "x", "y", "ccc"}, names(flat))

	for i, e := range flat {
		index, ok := e.Index()
		require.True(t, ok, e.Name())
		assert.Equal(t, uint32(i), index, e.Name())
	}

	index, _ := byName["dd"].Index()
	assert.Equal(t, uint32(3), index)
}

func TestFlattenSubtreeIsRelative(t *testing.T) {
	h, byName := buildSample(t)

	flat := byName["dd"].Flatten()
	assert.Equal(t, []string{"dd", "x", "y"}, names(flat))
	index, _ := byName["y"].Index()
	assert.Equal(t, uint32(2), index)

	_, ok := byName["a"].Index()
	assert.False(t, ok, "entries outside the flattened storage keep no index")
	assert.False(t, h.Flattened(), "only flattening the root freezes the hierarchy")

	h.Flatten()
	index, _ = byName["y"].Index()
	assert.Equal(t, uint32(5), index)
}

func TestFlattenAfterFreezeKeepsIndices(t *testing.T) {
	h, byName := buildSample(t)
	root := h.Root()

	h.Flatten()
	require.True(t, h.Flattened())
	assert.Equal(t, types.StreamIDT(3), root.ResolveTreeLinks(byName["ccc"]).Left)

	flat := byName["dd"].Flatten()
	assert.Equal(t, []string{"dd", "x", "y"}, names(flat))

	for name, want := range map[string]uint32{"dd": 3, "x": 4, "y": 5} {
		index, ok := byName[name].Index()
		require.True(t, ok)
		assert.Equal(t, want, index, name)
	}
	assert.Equal(t, types.StreamIDT(3), root.ResolveTreeLinks(byName["ccc"]).Left)
	assert.Equal(t, types.StreamIDT(4), byName["dd"].SubtreeRootIndex())
}

func TestFlattenStreamReturnsNil(t *testing.T) {
	_, byName := buildSample(t)
	assert.Nil(t, byName["a"].Flatten())
}

func TestFlattenAssignsContiguousIndices(t *testing.T) {
	h := newTestHierarchy(t, types.Version4)
	rng := rand.New(rand.NewSource(42))

	storages := []*Entry{h.Root()}
	total := 1
	for i := 0; i < 200; i++ {
		parent := storages[rng.Intn(len(storages))]
		name := fmt.Sprintf("n%d", rng.Intn(1_000_000))
		if _, exists := parent.Children().Find(KeyFor(name)); exists {
			continue
		}
		if rng.Intn(4) == 0 {
			storages = append(storages, mustStorage(t, h, parent, name))
		} else {
			mustStream(t, h, parent, name, "")
		}
		total++
	}

	flat := h.Flatten()
	require.Len(t, flat, total)

	seen := make(map[uint32]bool, total)
	for _, e := range flat {
		index, ok := e.Index()
		require.True(t, ok)
		assert.Less(t, index, uint32(total))
		assert.NotEqual(t, uint32(types.NoStream), index)
		assert.False(t, seen[index], "duplicate index %d", index)
		seen[index] = true
	}

	// Every storage precedes its children.
	for _, e := range flat {
		if parent, ok := e.Parent(); ok {
			pi, _ := parent.Index()
			ci, _ := e.Index()
			assert.Less(t, pi, ci)
		}
	}
}

func TestAddChildErrors(t *testing.T) {
	h, byName := buildSample(t)

	orphan, err := h.NewStream("orphan", nil)
	require.NoError(t, err)

	err = byName["a"].AddChild(orphan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOperation), "streams hold no children")

	h.Flatten()
	require.True(t, h.Flattened())

	err = h.Root().AddChild(orphan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOperation), "flattened hierarchy is frozen")
}

func TestAddChildKeepsIndex(t *testing.T) {
	h := newTestHierarchy(t, types.Version3)
	storage, err := h.NewStorage("s")
	require.NoError(t, err)

	stream := mustStream(t, h, storage, "a", "")
	storage.Flatten()
	before, _ := stream.Index()

	require.NoError(t, h.Root().AddChild(storage))
	after, ok := stream.Index()
	assert.True(t, ok)
	assert.Equal(t, before, after)
}

func TestResolveTreeLinks(t *testing.T) {
	h, byName := buildSample(t)
	h.Flatten()
	root := h.Root()

	testCases := []struct {
		name  string
		owner *Entry
		entry *Entry
		want  TreeLinks
	}{
		{name: "tree root", owner: root, entry: byName["b"], want: TreeLinks{Color: Black, Right: 6, Left: 1}},
		{name: "leaf", owner: root, entry: byName["a"], want: TreeLinks{Color: Red, Right: types.NoStream, Left: types.NoStream}},
		{name: "left child only", owner: root, entry: byName["ccc"], want: TreeLinks{Color: Red, Right: types.NoStream, Left: 3}},
		{name: "nested root", owner: byName["dd"], entry: byName["x"], want: TreeLinks{Color: Black, Right: 5, Left: types.NoStream}},
		{name: "not in tree", owner: root, entry: byName["x"], want: TreeLinks{Color: Black, Right: types.NoStream, Left: types.NoStream}},
		{name: "stream owner", owner: byName["a"], entry: byName["b"], want: TreeLinks{Color: Black, Right: types.NoStream, Left: types.NoStream}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.owner.ResolveTreeLinks(tc.entry))
		})
	}
}

func TestResolveTreeLinksBeforeFlatten(t *testing.T) {
	h, byName := buildSample(t)

	links := h.Root().ResolveTreeLinks(byName["b"])
	assert.Equal(t, Black, links.Color)
	assert.Equal(t, types.NoStream, links.Left)
	assert.Equal(t, types.NoStream, links.Right)
}

func TestSubtreeRootIndex(t *testing.T) {
	h, byName := buildSample(t)
	empty := mustStorage(t, h, byName["dd"], "empty")

	assert.Equal(t, types.NoStream, h.Root().SubtreeRootIndex(), "not flattened yet")

	h.Flatten()
	assert.Equal(t, types.StreamIDT(2), h.Root().SubtreeRootIndex())
	assert.Equal(t, types.StreamIDT(4), byName["dd"].SubtreeRootIndex())
	assert.Equal(t, types.NoStream, empty.SubtreeRootIndex())
	assert.Equal(t, types.NoStream, byName["a"].SubtreeRootIndex())
}

func TestTotalContentSectors(t *testing.T) {
	testCases := []struct {
		name    string
		version types.MajorVersion
		want    SectorTotals
	}{
		{name: "version 3", version: types.Version3, want: SectorTotals{Mini: 4, Regular: 8 + 9}},
		{name: "version 4", version: types.Version4, want: SectorTotals{Mini: 4, Regular: 1 + 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHierarchy(t, tc.version)
			root := h.Root()
			sub := mustStorage(t, h, root, "sub")

			for name, size := range map[string]uint64{"five": 5, "sixty-four": 64, "empty": 0} {
				s, err := h.NewStream(name, sizedSource(size))
				require.NoError(t, err)
				require.NoError(t, root.AddChild(s))
			}
			for name, size := range map[string]uint64{"sixty-five": 65, "cutoff": 4096, "big": 4097} {
				s, err := h.NewStream(name, sizedSource(size))
				require.NoError(t, err)
				require.NoError(t, sub.AddChild(s))
			}

			totals, err := root.TotalContentSectors(h.Geometry())
			require.NoError(t, err)
			assert.Equal(t, tc.want, totals)

			mini, err := root.MiniSectorsUsed()
			require.NoError(t, err)
			assert.Equal(t, tc.want.Mini, mini)
		})
	}
}

func TestTotalContentSectorsPropagatesSourceErrors(t *testing.T) {
	h := newTestHierarchy(t, types.Version3)
	mustStream(t, h, h.Root(), "ok", "1")
	missing, err := h.NewStream("missing", failingSource{})
	require.NoError(t, err)
	require.NoError(t, h.Root().AddChild(missing))

	_, err = h.Root().TotalContentSectors(h.Geometry())
	assert.Error(t, err)
}

func TestFileTree(t *testing.T) {
	h, _ := buildSample(t)

	var got []string
	for _, line := range h.FileTree() {
		got = append(got, fmt.Sprintf("%d:%s", line.Depth, line.Entry.Name()))
	}
	assert.Equal(t, []string{"0:Root Entry", "1:a", "1:b", "1:dd", "2:x", "2:y", "1:ccc"}, got)
}
