package t2048

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// BoardSize is the board dimension.
const BoardSize = 4

// maxTiles is the number of cells on the board.
const maxTiles = BoardSize * BoardSize

// Invariant violations reported by Board.Place and Board.Validate.
var (
	ErrOutOfBounds   = errors.New("t2048: coordinate out of bounds")
	ErrDuplicateTile = errors.New("t2048: duplicate tile")
	ErrMissingID     = errors.New("t2048: tile has no id")
	ErrCoordMismatch = errors.New("t2048: tile coordinates do not match its cell")
	ErrBadValue      = errors.New("t2048: tile value is not a power of two >= 2")
	ErrTooManyTiles  = errors.New("t2048: too many tiles")
)

// Coord addresses a board cell.
type Coord struct {
	Row, Col int
}

// InBounds reports whether the coordinate lies on the board.
func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// TileID identifies a tile for its whole life; merges keep the ID of the
// tile that was merged into.
type TileID uint32

// Tile is a single numbered piece on the board.
type Tile struct {
	ID    TileID
	Value int
	Row   int
	Col   int
}

// Coord returns the cell the tile occupies.
func (t Tile) Coord() Coord {
	return Coord{Row: t.Row, Col: t.Col}
}

// Board maps cells to the tiles occupying them.
// The zero value is an empty board.
type Board struct {
	tiles map[Coord]Tile
}

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{tiles: make(map[Coord]Tile, maxTiles)}
}

// At returns the tile at c, if any.
func (b Board) At(c Coord) (Tile, bool) {
	t, ok := b.tiles[c]
	return t, ok
}

// Len returns the number of tiles on the board.
func (b Board) Len() int {
	return len(b.tiles)
}

// Full reports whether every cell is occupied.
func (b Board) Full() bool {
	return len(b.tiles) == maxTiles
}

// Place puts a tile on the board after checking it against the board invariants.
func (b *Board) Place(t Tile) error {
	c := t.Coord()
	if !c.InBounds() {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, c.Row, c.Col)
	}
	if !isTileValue(t.Value) {
		return fmt.Errorf("%w: %d", ErrBadValue, t.Value)
	}
	if t.ID == 0 {
		return fmt.Errorf("%w: (%d, %d)", ErrMissingID, c.Row, c.Col)
	}
	if _, taken := b.tiles[c]; taken {
		return fmt.Errorf("%w: cell (%d, %d) is occupied", ErrDuplicateTile, c.Row, c.Col)
	}
	for _, other := range b.tiles {
		if other.ID == t.ID {
			return fmt.Errorf("%w: id %d already at (%d, %d)", ErrDuplicateTile, t.ID, other.Row, other.Col)
		}
	}
	if b.tiles == nil {
		b.tiles = make(map[Coord]Tile, maxTiles)
	}
	b.tiles[c] = t
	return nil
}

// Tiles returns all tiles in row-major order.
func (b Board) Tiles() []Tile {
	tiles := make([]Tile, 0, len(b.tiles))
	for _, t := range b.tiles {
		tiles = append(tiles, t)
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Row != tiles[j].Row {
			return tiles[i].Row < tiles[j].Row
		}
		return tiles[i].Col < tiles[j].Col
	})
	return tiles
}

// EmptyCells returns the unoccupied cells in row-major order.
func (b Board) EmptyCells() []Coord {
	cells := make([]Coord, 0, maxTiles-len(b.tiles))
	for row := range BoardSize {
		for col := range BoardSize {
			c := Coord{Row: row, Col: col}
			if _, ok := b.tiles[c]; !ok {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// Clone returns an independent copy of the board.
func (b Board) Clone() Board {
	clone := NewBoard()
	for c, t := range b.tiles {
		clone.tiles[c] = t
	}
	return clone
}

// Equal reports whether both boards hold the same tiles in the same cells.
func (b Board) Equal(other Board) bool {
	if len(b.tiles) != len(other.tiles) {
		return false
	}
	for c, t := range b.tiles {
		if o, ok := other.tiles[c]; !ok || o != t {
			return false
		}
	}
	return true
}

// Sum returns the total of all tile values.
func (b Board) Sum() int {
	sum := 0
	for _, t := range b.tiles {
		sum += t.Value
	}
	return sum
}

// MaxTile returns the highest tile value on the board, or 0 when empty.
func (b Board) MaxTile() int {
	maxVal := 0
	for _, t := range b.tiles {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// maxID returns the highest tile ID on the board.
func (b Board) maxID() TileID {
	var id TileID
	for _, t := range b.tiles {
		if t.ID > id {
			id = t.ID
		}
	}
	return id
}

// Validate checks every board invariant and returns the first violation.
func (b Board) Validate() error {
	if len(b.tiles) > maxTiles {
		return fmt.Errorf("%w: %d", ErrTooManyTiles, len(b.tiles))
	}
	seen := make(map[TileID]Coord, len(b.tiles))
	for c, t := range b.tiles {
		if !c.InBounds() {
			return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, c.Row, c.Col)
		}
		if t.Coord() != c {
			return fmt.Errorf("%w: tile %d stored at (%d, %d) claims (%d, %d)",
				ErrCoordMismatch, t.ID, c.Row, c.Col, t.Row, t.Col)
		}
		if !isTileValue(t.Value) {
			return fmt.Errorf("%w: %d at (%d, %d)", ErrBadValue, t.Value, c.Row, c.Col)
		}
		if t.ID == 0 {
			return fmt.Errorf("%w: (%d, %d)", ErrMissingID, c.Row, c.Col)
		}
		if prev, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: id %d at (%d, %d) and (%d, %d)",
				ErrDuplicateTile, t.ID, prev.Row, prev.Col, c.Row, c.Col)
		}
		seen[t.ID] = c
	}
	return nil
}

// Grid returns the value-only view of the board.
func (b Board) Grid() Grid {
	var g Grid
	for c, t := range b.tiles {
		g[c.Row][c.Col] = t.Value
	}
	return g
}

// String renders the board as rows of values, "." for empty cells.
func (b Board) String() string {
	return b.Grid().String()
}

// Grid is a value-only board view indexed [row][col]; 0 marks an empty cell.
type Grid [BoardSize][BoardSize]int

// FromGrid builds a board from a value grid. Tiles get IDs 1..n in row-major order.
func FromGrid(g Grid) (Board, error) {
	b := NewBoard()
	var id TileID
	for row := range BoardSize {
		for col := range BoardSize {
			if g[row][col] == 0 {
				continue
			}
			id++
			if err := b.Place(Tile{ID: id, Value: g[row][col], Row: row, Col: col}); err != nil {
				return Board{}, err
			}
		}
	}
	return b, nil
}

// String renders the grid as right-aligned rows.
func (g Grid) String() string {
	var sb strings.Builder
	for row := range BoardSize {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range BoardSize {
			cell := "."
			if g[row][col] != 0 {
				cell = strconv.Itoa(g[row][col])
			}
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strings.Repeat(" ", max(0, 5-len(cell))))
			sb.WriteString(cell)
		}
	}
	return sb.String()
}

// isTileValue reports whether v is a power of two >= 2.
func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
