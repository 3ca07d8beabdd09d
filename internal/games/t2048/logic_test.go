package t2048

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, g Grid) Board {
	t.Helper()
	b, err := FromGrid(g)
	require.NoError(t, err)
	return b
}

func TestResolveRowLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    [4]int
		expected [4]int
		score    int
		legal    bool
	}{
		{
			name:     "simple merge",
			input:    [4]int{2, 2, 0, 0},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
			legal:    true,
		},
		{
			name:     "merge with trailing tile",
			input:    [4]int{2, 2, 2, 0},
			expected: [4]int{4, 2, 0, 0},
			score:    4,
			legal:    true,
		},
		{
			name:     "double merge",
			input:    [4]int{2, 2, 2, 2},
			expected: [4]int{4, 4, 0, 0},
			score:    8,
			legal:    true,
		},
		{
			name:     "no chain merge",
			input:    [4]int{4, 2, 2, 0},
			expected: [4]int{4, 4, 0, 0},
			score:    4,
			legal:    true,
		},
		{
			name:     "no merge possible",
			input:    [4]int{2, 4, 8, 16},
			expected: [4]int{2, 4, 8, 16},
			score:    0,
			legal:    false,
		},
		{
			name:     "slide with gap",
			input:    [4]int{0, 0, 2, 2},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
			legal:    true,
		},
		{
			name:     "slide with multiple gaps",
			input:    [4]int{2, 0, 0, 2},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
			legal:    true,
		},
		{
			name:     "slide without merge",
			input:    [4]int{2, 0, 4, 0},
			expected: [4]int{2, 4, 0, 0},
			score:    0,
			legal:    true,
		},
		{
			name:     "no change needed",
			input:    [4]int{4, 2, 0, 0},
			expected: [4]int{4, 2, 0, 0},
			score:    0,
			legal:    false,
		},
		{
			name:     "empty row",
			input:    [4]int{0, 0, 0, 0},
			expected: [4]int{0, 0, 0, 0},
			score:    0,
			legal:    false,
		},
		{
			name:     "single tile",
			input:    [4]int{0, 4, 0, 0},
			expected: [4]int{4, 0, 0, 0},
			score:    0,
			legal:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, Grid{tt.input})
			out := Resolve(b, DirLeft)

			if got := out.Board.Grid()[0]; got != tt.expected {
				t.Errorf("Resolve(%v, left) = %v, want %v", tt.input, got, tt.expected)
			}
			if out.Score != tt.score {
				t.Errorf("Resolve(%v, left) score = %d, want %d", tt.input, out.Score, tt.score)
			}
			if out.Legal != tt.legal {
				t.Errorf("Resolve(%v, left) legal = %v, want %v", tt.input, out.Legal, tt.legal)
			}
		})
	}
}

func TestResolveDirections(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		input    Grid
		expected Grid
		score    int
	}{
		{
			name: "left",
			dir:  DirLeft,
			input: Grid{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: Grid{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
			score: 4 + 8 + 4 + 4,
		},
		{
			name: "right",
			dir:  DirRight,
			input: Grid{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: Grid{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
			score: 4 + 8 + 4 + 4,
		},
		{
			name: "up",
			dir:  DirUp,
			input: Grid{
				{2, 4, 2, 0},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 2},
			},
			expected: Grid{
				{4, 8, 4, 2},
				{0, 0, 4, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			score: 4 + 8 + 4 + 4,
		},
		{
			name: "down",
			dir:  DirDown,
			input: Grid{
				{2, 4, 2, 2},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 0},
			},
			expected: Grid{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 4, 0},
				{4, 8, 4, 2},
			},
			score: 4 + 8 + 4 + 4,
		},
		{
			name: "right merges from the leading edge",
			dir:  DirRight,
			input: Grid{
				{2, 2, 2, 0},
			},
			expected: Grid{
				{0, 0, 2, 4},
			},
			score: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resolve(mustBoard(t, tt.input), tt.dir)

			if got := out.Board.Grid(); got != tt.expected {
				t.Errorf("Resolve(%s): got\n%v\nwant\n%v", tt.dir, got, tt.expected)
			}
			if !out.Legal {
				t.Errorf("Resolve(%s) should be legal", tt.dir)
			}
			if out.Score != tt.score {
				t.Errorf("Resolve(%s) score = %d, want %d", tt.dir, out.Score, tt.score)
			}
			require.NoError(t, out.Board.Validate())
		})
	}
}

func TestResolveScenarios(t *testing.T) {
	t.Run("pair merges into leading tile", func(t *testing.T) {
		out := Resolve(mustBoard(t, Grid{{2, 2}}), DirLeft)

		assert.True(t, out.Legal)
		assert.Equal(t, 4, out.Score)
		assert.Equal(t, 1, out.Board.Len())
		tile, ok := out.Board.At(Coord{0, 0})
		require.True(t, ok)
		assert.Equal(t, 4, tile.Value)
	})

	t.Run("different values only slide", func(t *testing.T) {
		out := Resolve(mustBoard(t, Grid{{2, 0, 4}}), DirLeft)

		assert.True(t, out.Legal)
		assert.Zero(t, out.Score)
		assert.Equal(t, Grid{{2, 4}}, out.Board.Grid())
		assert.Empty(t, out.Merges)
	})

	t.Run("tile at leading edge is illegal", func(t *testing.T) {
		in := mustBoard(t, Grid{{2}})
		out := Resolve(in, DirLeft)

		assert.False(t, out.Legal)
		assert.Zero(t, out.Score)
		assert.True(t, out.Board.Equal(in))
		assert.Nil(t, out.Moves)
	})

	t.Run("four equal tiles make two pairs", func(t *testing.T) {
		out := Resolve(mustBoard(t, Grid{{2, 2, 2, 2}}), DirLeft)

		assert.True(t, out.Legal)
		assert.Equal(t, 8, out.Score)
		assert.Equal(t, Grid{{4, 4}}, out.Board.Grid())
		assert.Len(t, out.Merges, 2)
	})
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	in := mustBoard(t, Grid{
		{2, 2, 4, 4},
		{0, 8, 0, 8},
	})
	before := in.Clone()

	for _, d := range Directions {
		Resolve(in, d)
		if !in.Equal(before) {
			t.Fatalf("Resolve(%s) modified its input:\n%v", d, in)
		}
	}
}

func TestResolveIllegalReturnsEqualBoard(t *testing.T) {
	in := mustBoard(t, Grid{
		{2, 4, 0, 0},
		{8, 0, 0, 0},
	})

	out := Resolve(in, DirLeft)
	assert.False(t, out.Legal)
	assert.True(t, out.Board.Equal(in))

	// Illegal results are safe to modify
	require.NoError(t, out.Board.Place(Tile{ID: 99, Value: 2, Row: 3, Col: 3}))
	assert.Equal(t, 3, in.Len())
}

func TestResolveUnknownDirection(t *testing.T) {
	in := mustBoard(t, Grid{{0, 2}})
	out := Resolve(in, Direction(42))

	assert.False(t, out.Legal)
	assert.True(t, out.Board.Equal(in))
}

func TestMergeKeepsSurvivorID(t *testing.T) {
	in := mustBoard(t, Grid{{0, 2, 0, 2}}) // IDs 1 at (0,1), 2 at (0,3)

	out := Resolve(in, DirLeft)
	require.Len(t, out.Merges, 1)

	m := out.Merges[0]
	assert.Equal(t, TileID(1), m.Into)
	assert.Equal(t, TileID(2), m.From)
	assert.Equal(t, Coord{0, 0}, m.At)
	assert.Equal(t, 4, m.Value)

	tile, ok := out.Board.At(Coord{0, 0})
	require.True(t, ok)
	assert.Equal(t, TileID(1), tile.ID)

	var absorbed, survivor TileMove
	for _, mv := range out.Moves {
		switch mv.ID {
		case 1:
			survivor = mv
		case 2:
			absorbed = mv
		}
	}
	assert.True(t, survivor.Merged)
	assert.Equal(t, Coord{0, 1}, survivor.From)
	assert.True(t, absorbed.Absorbed)
	assert.Equal(t, Coord{0, 0}, absorbed.To)
}

func TestStuckBoard(t *testing.T) {
	stuck := mustBoard(t, Grid{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	})

	for _, d := range Directions {
		out := Resolve(stuck, d)
		if out.Legal {
			t.Errorf("Resolve(%s) on a stuck board should be illegal", d)
		}
		if !out.Board.Equal(stuck) {
			t.Errorf("Resolve(%s) on a stuck board changed it", d)
		}
	}

	if CanMove(stuck) {
		t.Error("Stuck board should have no moves")
	}
	if dirs := LegalDirections(stuck); len(dirs) != 0 {
		t.Errorf("LegalDirections = %v, want none", dirs)
	}
}

func TestCanMove(t *testing.T) {
	withMerge := mustBoard(t, Grid{
		{2, 2, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	})
	if !CanMove(withMerge) {
		t.Error("Full board with a merge should be movable")
	}
	assert.ElementsMatch(t, []Direction{DirLeft, DirRight}, LegalDirections(withMerge))

	withEmpty := mustBoard(t, Grid{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 0, 4096},
		{8192, 16384, 32768, 65536},
	})
	if !CanMove(withEmpty) {
		t.Error("Board with an empty cell should be movable")
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}

// randomBoard fills each cell with probability 1/2 using small tile values.
func randomBoard(rng *rand.Rand) Grid {
	var g Grid
	for row := range BoardSize {
		for col := range BoardSize {
			if rng.Intn(2) == 0 {
				g[row][col] = 2 << rng.Intn(4)
			}
		}
	}
	return g
}

func TestResolveProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := range 500 {
		in := mustBoard(t, randomBoard(rng))
		before := in.Clone()

		for _, d := range Directions {
			out := Resolve(in, d)

			require.NoError(t, out.Board.Validate(), "board %d, %s", i, d)
			require.True(t, in.Equal(before), "input mutated: board %d, %s", i, d)

			// Merges conserve value
			require.Equal(t, in.Sum(), out.Board.Sum(), "board %d, %s", i, d)
			require.Equal(t, in.Len()-len(out.Merges), out.Board.Len(), "board %d, %s", i, d)

			scored := 0
			seen := make(map[TileID]bool)
			for _, m := range out.Merges {
				scored += m.Value
				require.False(t, seen[m.Into], "tile %d merged twice: board %d, %s", m.Into, i, d)
				require.False(t, seen[m.From], "tile %d merged twice: board %d, %s", m.From, i, d)
				seen[m.Into], seen[m.From] = true, true
			}
			require.Equal(t, scored, out.Score, "board %d, %s", i, d)

			if !out.Legal {
				require.True(t, out.Board.Equal(in), "illegal move changed board %d, %s", i, d)
				continue
			}

			// Resolving twice in the same direction only continues if merges are left
			again := Resolve(out.Board, d)
			if len(again.Merges) == 0 {
				require.False(t, again.Legal, "slide not complete: board %d, %s\n%v", i, d, out.Board)
			}
		}
	}
}
