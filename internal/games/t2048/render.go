package t2048

import (
	"fmt"
	"math/bits"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 4

	boardW = BoardSize*cellWidth + 1  // +1 for right border
	boardH = BoardSize*cellHeight + 1 // +1 for bottom border

	minScreenW = boardW + 2
	minScreenH = hudHeight + boardH + 2
)

// tilePalette colors tiles by exponent: 2, 4, 8, ... and everything from 512 up.
var tilePalette = []core.Color{
	core.ColorWhite,
	core.ColorBeige,
	core.ColorOrange,
	core.ColorDarkOrange,
	core.ColorRed,
	core.ColorBrightRed,
	core.ColorYellow,
	core.ColorBrightYellow,
	core.ColorGold,
}

// TileColor returns the display color for a tile value.
func TileColor(value int) core.Color {
	if value < 2 {
		return core.ColorDefault
	}
	index := bits.Len(uint(value)) - 2 // log2(value) - 1
	return tilePalette[core.Clamp(index, 0, len(tilePalette)-1)]
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX)
	renderGrid(dst, boardX, boardY)

	if g.anim.phase == PhaseSlide {
		g.renderSlide(dst, boardX, boardY)
	} else {
		g.renderTiles(dst, boardX, boardY)
	}

	g.renderOverlays(dst, boardX, boardY)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws the title, score and turn counter.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	titleX := boardX + (boardW-len(g.title))/2
	dst.DrawTextColored(titleX, 0, g.title, core.ColorGold)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.ctrl.Score()))

	info := fmt.Sprintf("Max: %d", g.ctrl.MaxTile())
	dst.DrawText(boardX+boardW-len(info), 1, info)

	turns := fmt.Sprintf("Turn %d", g.ctrl.Turns())
	dst.DrawTextColored(boardX+(boardW-len(turns))/2, 2, turns, core.ColorGray)
}

// renderGrid draws the 4x4 cell borders.
func renderGrid(dst *core.Screen, boardX, boardY int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == BoardSize:
				corner = '┐'
			case y == BoardSize && x == 0:
				corner = '└'
			case y == BoardSize && x == BoardSize:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == BoardSize:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == BoardSize:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws the committed board.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	var popping *TileAnimation
	if g.anim.phase == PhasePop && len(g.anim.tiles) > 0 {
		popping = &g.anim.tiles[0]
	}

	for _, t := range g.ctrl.board.Tiles() {
		color := TileColor(t.Value)
		if popping != nil && popping.FromX == t.Col && popping.FromY == t.Row && popping.Progress < 0.5 {
			// First half of the pop shows a marker instead of the value
			drawCellText(dst, boardX+t.Col*cellWidth, boardY+t.Row*cellHeight, "•", color)
			continue
		}
		drawCellText(dst, boardX+t.Col*cellWidth, boardY+t.Row*cellHeight, strconv.Itoa(t.Value), color)
	}
}

// renderSlide draws tiles at their interpolated positions.
func (g *Game) renderSlide(dst *core.Screen, boardX, boardY int) {
	for i := range g.anim.tiles {
		a := &g.anim.tiles[i]
		px, py := a.screenPosition()
		drawCellText(dst, boardX+px, boardY+py, strconv.Itoa(a.Value), TileColor(a.Value))
	}
}

// drawCellText centers text inside the cell whose top-left border corner is (cellX, cellY).
func drawCellText(dst *core.Screen, cellX, cellY int, text string, color core.Color) {
	width := len([]rune(text))
	padLeft := core.Max((cellWidth-1-width)/2, 0)
	dst.DrawTextColored(cellX+1+padLeft, cellY+1, text, color)
}

// renderOverlays draws pause and game over boxes.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY int) {
	board := core.NewRect(boardX, boardY, boardW, boardH)

	if g.paused {
		drawOverlay(dst, board, "PAUSED", "Press P to resume")
		return
	}

	if g.ctrl.GameOver() {
		drawOverlay(dst, board,
			"GAME OVER",
			fmt.Sprintf("Final score: %d", g.ctrl.Score()),
			fmt.Sprintf("Max tile: %d", g.ctrl.MaxTile()),
			"Press R to restart",
		)
	}
}

// drawOverlay draws a text box centered over area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	box := core.CenteredRect(area, maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	centerX, _ := box.Center()
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | P: Pause | R: Restart | Q: Quit"
}
