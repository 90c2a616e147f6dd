package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_Identical(t *testing.T) {
	assert.Empty(t, Diff(chessSidebar(), chessSidebar()))
}

func TestDiff_AddedRemovedRelinked(t *testing.T) {
	from := NewTree([]Entry{
		NewGroup("Documentation", []Entry{
			NewLink("Usage", "/pages/usage"),
			NewLink("Move Generation", "/pages/move-generation"),
			NewLink("PGN Parsing", "/pages/pgn-parsing"),
		}),
	})
	to := NewTree([]Entry{
		NewGroup("Documentation", []Entry{
			NewLink("Usage", "/pages/usage"),
			NewLink("Types", "/pages/types"),
			NewLink("Move Generation", "/pages/move-gen"),
		}),
	})

	changes := Diff(from, to)
	require.Len(t, changes, 3)

	assert.Equal(t, ChangeAdded, changes[0].Kind)
	assert.Equal(t, []string{"Documentation", "Types"}, changes[0].Path)

	assert.Equal(t, ChangeRelinked, changes[1].Kind)
	assert.Equal(t, "/pages/move-generation", changes[1].OldLink)
	assert.Equal(t, "/pages/move-gen", changes[1].NewLink)

	assert.Equal(t, ChangeRemoved, changes[2].Kind)
	assert.Equal(t, []string{"Documentation", "PGN Parsing"}, changes[2].Path)
}

func TestDiff_Moved(t *testing.T) {
	from := NewTree([]Entry{
		NewLink("Usage", "/pages/usage"),
		NewLink("Board", "/pages/board"),
	})
	to := NewTree([]Entry{
		NewLink("Board", "/pages/board"),
		NewLink("Usage", "/pages/usage"),
	})

	changes := Diff(from, to)
	require.Len(t, changes, 2)
	assert.Equal(t, ChangeMoved, changes[0].Kind)
	assert.Equal(t, []string{"Board"}, changes[0].Path)
	assert.Equal(t, ChangeMoved, changes[1].Kind)
}

func TestDiff_InsertionDoesNotMoveFollowingSiblings(t *testing.T) {
	from := NewTree([]Entry{
		NewLink("Usage", "/pages/usage"),
		NewLink("Board", "/pages/board"),
	})
	to := NewTree([]Entry{
		NewLink("Home", "/"),
		NewLink("Usage", "/pages/usage"),
		NewLink("Board", "/pages/board"),
	})

	changes := Diff(from, to)
	require.Len(t, changes, 1)
	assert.Equal(t, ChangeAdded, changes[0].Kind)
}

func TestChange_String(t *testing.T) {
	c := Change{Kind: ChangeRelinked, Path: []string{"Documentation", "Move"}, OldLink: "/a", NewLink: "/b"}
	assert.Equal(t, "~ Documentation > Move /a -> /b", c.String())
}
