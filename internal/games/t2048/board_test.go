package t2048

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace(t *testing.T) {
	var b Board // zero value is usable

	require.NoError(t, b.Place(Tile{ID: 1, Value: 2, Row: 0, Col: 0}))
	assert.Equal(t, 1, b.Len())

	tests := []struct {
		name string
		tile Tile
		err  error
	}{
		{"out of bounds row", Tile{ID: 2, Value: 2, Row: 4, Col: 0}, ErrOutOfBounds},
		{"out of bounds col", Tile{ID: 2, Value: 2, Row: 0, Col: -1}, ErrOutOfBounds},
		{"occupied cell", Tile{ID: 2, Value: 4, Row: 0, Col: 0}, ErrDuplicateTile},
		{"zero value", Tile{ID: 2, Value: 0, Row: 1, Col: 1}, ErrBadValue},
		{"one", Tile{ID: 2, Value: 1, Row: 1, Col: 1}, ErrBadValue},
		{"not a power of two", Tile{ID: 2, Value: 6, Row: 1, Col: 1}, ErrBadValue},
		{"missing id", Tile{Value: 2, Row: 1, Col: 1}, ErrMissingID},
		{"repeated id", Tile{ID: 1, Value: 2, Row: 1, Col: 1}, ErrDuplicateTile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.Place(tt.tile)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 1, b.Len())
		})
	}
}

func TestValidate(t *testing.T) {
	b := mustBoard(t, Grid{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
	})
	require.NoError(t, b.Validate())

	t.Run("coordinate mismatch", func(t *testing.T) {
		bad := b.Clone()
		bad.tiles[Coord{3, 3}] = Tile{ID: 10, Value: 2, Row: 0, Col: 3}
		assert.ErrorIs(t, bad.Validate(), ErrCoordMismatch)
	})

	t.Run("duplicate id", func(t *testing.T) {
		bad := b.Clone()
		bad.tiles[Coord{3, 3}] = Tile{ID: 1, Value: 2, Row: 3, Col: 3}
		assert.ErrorIs(t, bad.Validate(), ErrDuplicateTile)
	})

	t.Run("missing id", func(t *testing.T) {
		bad := b.Clone()
		bad.tiles[Coord{3, 3}] = Tile{Value: 2, Row: 3, Col: 3}
		assert.ErrorIs(t, bad.Validate(), ErrMissingID)
	})

	t.Run("bad value", func(t *testing.T) {
		bad := b.Clone()
		bad.tiles[Coord{3, 3}] = Tile{ID: 10, Value: 3, Row: 3, Col: 3}
		assert.ErrorIs(t, bad.Validate(), ErrBadValue)
	})

	t.Run("out of bounds", func(t *testing.T) {
		bad := b.Clone()
		bad.tiles[Coord{4, 0}] = Tile{ID: 10, Value: 2, Row: 4, Col: 0}
		assert.ErrorIs(t, bad.Validate(), ErrOutOfBounds)
	})
}

func TestFromGrid(t *testing.T) {
	g := Grid{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	}

	b := mustBoard(t, g)
	assert.Equal(t, g, b.Grid())
	assert.Equal(t, 8, b.Len())
	assert.False(t, b.Full())

	// IDs are assigned in row-major order
	tiles := b.Tiles()
	for i, tile := range tiles {
		assert.Equal(t, TileID(i+1), tile.ID)
	}
	assert.Equal(t, TileID(8), b.maxID())

	_, err := FromGrid(Grid{{3}})
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestMaxTile(t *testing.T) {
	b := mustBoard(t, Grid{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	})

	if got := b.MaxTile(); got != 2048 {
		t.Errorf("MaxTile = %d, want 2048", got)
	}
	if !b.Full() {
		t.Error("Board with 16 tiles should be full")
	}
	if got := NewBoard().MaxTile(); got != 0 {
		t.Errorf("MaxTile of empty board = %d, want 0", got)
	}
}

func TestEmptyCells(t *testing.T) {
	b := mustBoard(t, Grid{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	})

	cells := b.EmptyCells()
	if len(cells) != 8 {
		t.Errorf("EmptyCells count = %d, want 8", len(cells))
	}
	assert.Equal(t, Coord{0, 1}, cells[0])
	assert.Equal(t, Coord{3, 2}, cells[len(cells)-1])

	assert.Len(t, NewBoard().EmptyCells(), maxTiles)
}

func TestCloneIsIndependent(t *testing.T) {
	b := mustBoard(t, Grid{{2}})
	clone := b.Clone()
	require.NoError(t, clone.Place(Tile{ID: 2, Value: 4, Row: 1, Col: 1}))

	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 2, clone.Len())
	assert.False(t, b.Equal(clone))
}

func TestGridString(t *testing.T) {
	g := Grid{
		{2, 0, 0, 2048},
		{0, 0, 0, 0},
		{0, 16, 0, 0},
		{0, 0, 0, 4},
	}

	want := "    2     .     .  2048\n" +
		"    .     .     .     .\n" +
		"    .    16     .     .\n" +
		"    .     .     .     4"
	assert.Equal(t, want, g.String())
	assert.Equal(t, want, mustBoard(t, g).String())
}

func TestPlacedBoardRestores(t *testing.T) {
	var b Board
	require.NoError(t, b.Place(Tile{ID: 1, Value: 2, Row: 0, Col: 0}))
	require.NoError(t, b.Place(Tile{ID: 2, Value: 4, Row: 0, Col: 1}))

	// Every board Place accepts also passes Validate
	require.NoError(t, b.Validate())

	c := NewController(DefaultRules(), 1)
	require.NoError(t, c.Restore(b, 0))
	assert.Equal(t, 2, c.Board().Len())

	// Spawned tiles continue after the highest restored ID
	turn := c.ApplyMove(DirRight)
	require.True(t, turn.Legal)
	require.NotNil(t, turn.Spawned)
	assert.Equal(t, TileID(3), turn.Spawned.ID)
}

func TestPlaceRejectsTilesWithoutID(t *testing.T) {
	var b Board
	require.ErrorIs(t, b.Place(Tile{Value: 2}), ErrMissingID)
	assert.Zero(t, b.Len())
}
