package t2048

import "fmt"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the journal name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts a journal name back into a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("t2048: unknown direction %q", s)
}

// axis describes how a direction walks the board.
type axis struct {
	vertical bool // lines are columns (Up/Down) rather than rows
	reverse  bool // leading edge is the last row/column
}

func (d Direction) axis() (axis, bool) {
	switch d {
	case DirLeft:
		return axis{}, true
	case DirRight:
		return axis{reverse: true}, true
	case DirUp:
		return axis{vertical: true}, true
	case DirDown:
		return axis{vertical: true, reverse: true}, true
	default:
		return axis{}, false
	}
}

// cell maps a line index and a distance from the leading edge to a board cell.
func (a axis) cell(line, pos int) Coord {
	if a.reverse {
		pos = BoardSize - 1 - pos
	}
	if a.vertical {
		return Coord{Row: pos, Col: line}
	}
	return Coord{Row: line, Col: pos}
}

// TileMove records where one tile travelled during a move.
type TileMove struct {
	ID       TileID
	Value    int // Value before the move
	From     Coord
	To       Coord
	Merged   bool // Tile absorbed a neighbour and doubled
	Absorbed bool // Tile was merged away and no longer exists
}

// Merge records one merge: From was absorbed into Into, producing Value at At.
type Merge struct {
	Into  TileID
	From  TileID
	At    Coord
	Value int
}

// Outcome is the result of resolving a move.
type Outcome struct {
	Direction Direction
	Board     Board // Resulting board; equal to the input when !Legal
	Score     int   // Sum of the values produced by merges
	Legal     bool  // The move changed the board
	Moves     []TileMove
	Merges    []Merge
}

// settledTile is a tile that already holds a slot in the line being resolved.
type settledTile struct {
	tile   Tile
	from   Coord
	value  int // value before merging
	merged bool
}

// Resolve slides and merges every tile of b in direction dir.
// The input board is never modified.
//
// Each line is walked from the leading edge. A tile merges into the last
// settled tile when their values match and that tile has not merged yet this
// turn, so [2 2 2 2] becomes [4 4] and [4 2 2] becomes [4 4], never [8].
func Resolve(b Board, dir Direction) Outcome {
	out := Outcome{Direction: dir, Board: b.Clone()}
	ax, ok := dir.axis()
	if !ok {
		return out
	}

	next := NewBoard()
	moved := false

	for line := range BoardSize {
		settled := make([]settledTile, 0, BoardSize)

		for pos := range BoardSize {
			from := ax.cell(line, pos)
			t, ok := b.At(from)
			if !ok {
				continue
			}

			if n := len(settled); n > 0 {
				last := &settled[n-1]
				if !last.merged && last.tile.Value == t.Value {
					last.tile.Value *= 2
					last.merged = true
					out.Score += last.tile.Value

					at := ax.cell(line, n-1)
					out.Merges = append(out.Merges, Merge{
						Into:  last.tile.ID,
						From:  t.ID,
						At:    at,
						Value: last.tile.Value,
					})
					out.Moves = append(out.Moves, TileMove{
						ID:       t.ID,
						Value:    t.Value,
						From:     from,
						To:       at,
						Absorbed: true,
					})
					continue
				}
			}

			settled = append(settled, settledTile{tile: t, from: from, value: t.Value})
		}

		for slot, s := range settled {
			to := ax.cell(line, slot)
			s.tile.Row, s.tile.Col = to.Row, to.Col
			next.tiles[to] = s.tile
			out.Moves = append(out.Moves, TileMove{
				ID:     s.tile.ID,
				Value:  s.value,
				From:   s.from,
				To:     to,
				Merged: s.merged,
			})
			if to != s.from {
				moved = true
			}
		}
	}

	out.Legal = moved || len(out.Merges) > 0
	if !out.Legal {
		out.Moves = nil
		return out
	}
	out.Board = next
	return out
}

// CanMove reports whether any direction would change the board.
func CanMove(b Board) bool {
	for _, d := range Directions {
		if Resolve(b, d).Legal {
			return true
		}
	}
	return false
}

// LegalDirections returns the directions that would change the board.
func LegalDirections(b Board) []Direction {
	var dirs []Direction
	for _, d := range Directions {
		if Resolve(b, d).Legal {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
