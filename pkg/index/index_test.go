package index_test

import (
	"testing"

	"github.com/arthur-debert/bulkmv/pkg/events"
	"github.com/arthur-debert/bulkmv/pkg/index"
	"github.com/arthur-debert/bulkmv/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renamed(old, newPath string, dir bool) types.Renamed {
	return types.Renamed{Old: old, New: types.FileMeta{Path: newPath, IsDir: dir}}
}

func TestIndex_AddKeepsOrderAndSkipsDuplicates(t *testing.T) {
	idx := index.New("/w/b", "/w/a")
	idx.Add("/w/./b", "/w/c")

	assert.Equal(t, []string{"/w/b", "/w/a", "/w/c"}, idx.Paths())
	assert.Equal(t, 3, idx.Len())
}

func TestIndex_RenameChain(t *testing.T) {
	idx := index.New("/w/1", "/w/2", "/w/3")

	// Execution order of the chain 1->2, 2->3, 3->4
	idx.Rename([]types.Renamed{
		renamed("/w/3", "/w/4", false),
		renamed("/w/2", "/w/3", false),
		renamed("/w/1", "/w/2", false),
	})

	assert.Equal(t, []string{"/w/2", "/w/3", "/w/4"}, idx.Paths())

	e, ok := idx.Get("/w/4")
	require.True(t, ok)
	require.NotNil(t, e.Meta)
	assert.Equal(t, "/w/4", e.Meta.Path)

	_, ok = idx.Get("/w/1")
	assert.False(t, ok)
}

func TestIndex_RenameDirectoryMovesChildren(t *testing.T) {
	idx := index.New("/w/docs", "/w/docs/a.md", "/w/docs/sub/b.md", "/w/docsx")
	idx.Rename([]types.Renamed{renamed("/w/docs/sub/b.md", "/w/docs/sub/c.md", false)})

	idx.Rename([]types.Renamed{renamed("/w/docs", "/w/manual", true)})

	assert.Equal(t, []string{"/w/manual", "/w/manual/a.md", "/w/manual/sub/c.md", "/w/docsx"}, idx.Paths())
	e, ok := idx.Get("/w/manual/sub/c.md")
	require.True(t, ok)
	assert.Equal(t, "/w/manual/sub/c.md", e.Meta.Path)
}

func TestIndex_RenameUnknownAdds(t *testing.T) {
	idx := index.New("/w/a")
	idx.Rename([]types.Renamed{renamed("/w/zzz", "/w/b", false)})

	assert.Equal(t, []string{"/w/a", "/w/b"}, idx.Paths())
}

func TestIndex_HandleBulkEvent(t *testing.T) {
	idx := index.New("/w/a")
	bus := events.NewBus()
	bus.Subscribe(events.KindBulk, idx.Handle)

	bus.Publish(events.NewBulkRenamed("/w", []types.Renamed{renamed("/w/a", "/w/b", false)}))

	assert.Equal(t, []string{"/w/b"}, idx.Paths())
}

func TestIndex_RenameOntoIndexedAlias(t *testing.T) {
	idx := index.New("/w/A", "/w/a", "/w/z")

	// Case-only rename where both spellings were indexed
	idx.Rename([]types.Renamed{renamed("/w/a", "/w/A", false)})

	assert.Equal(t, []string{"/w/A", "/w/z"}, idx.Paths())
}
